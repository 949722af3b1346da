package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una compra.
const (
	PurchaseStatusPending  = "pending"
	PurchaseStatusReceived = "received"
)

// Purchase representa una orden de compra a un proveedor (una o varias líneas).
// El stock se acredita una sola vez, al pasar a "received".
type Purchase struct {
	ID             string
	PurchaseNumber string // PUR-YYYYMMDD-NNNN
	SupplierID     string
	Lines          []PurchaseLine
	TotalAmount    decimal.Decimal
	Status         string
	PurchaseDate   time.Time
	ReceivedAt     *time.Time
	PaymentMethod  string
	Notes          string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PurchaseLine representa una línea de compra.
type PurchaseLine struct {
	ID         string
	PurchaseID string
	ProductID  string
	Quantity   int
	UnitCost   decimal.Decimal
	LineTotal  decimal.Decimal
}

// IsReceived indica si la compra ya fue recibida.
func (p *Purchase) IsReceived() bool {
	return p.Status == PurchaseStatusReceived
}
