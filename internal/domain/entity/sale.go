package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusCompleted = "completed"
)

// Métodos de pago aceptados.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
)

// Sale representa la cabecera de una venta (una o varias líneas bajo una misma factura).
// Subtotal = suma de LineTotal; FinalAmount = Subtotal - Discount + Tax.
type Sale struct {
	ID             string
	InvoiceNumber  string // INV-YYYYMMDD-NNNN
	CustomerID     string // vacío si es venta de mostrador
	Lines          []SaleLine
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal
	Tax            decimal.Decimal
	FinalAmount    decimal.Decimal
	LoyaltyApplied bool
	PointsEarned   int
	PaymentMethod  string
	AmountPaid     decimal.Decimal
	Change         decimal.Decimal
	Status         string
	Date           time.Time
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SaleLine representa una línea de venta.
type SaleLine struct {
	ID            string
	SaleID        string
	ProductID     string
	Quantity      int
	UnitPrice     decimal.Decimal
	LineTotal     decimal.Decimal
	LoyaltyPriced bool // true si UnitPrice es el precio de fidelización
}

// QuantitiesByProduct suma las cantidades de las líneas por producto.
func (s *Sale) QuantitiesByProduct() map[string]int {
	out := make(map[string]int, len(s.Lines))
	for _, l := range s.Lines {
		out[l.ProductID] += l.Quantity
	}
	return out
}
