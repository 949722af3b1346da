package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del punto de venta.
// StockQuantity es la única fuente de verdad del stock; solo se modifica a través del Ledger.
type Product struct {
	ID            string
	SKU           string // código único
	Name          string
	Description   string
	Price         decimal.Decimal     // precio de lista
	LoyaltyPrice  decimal.NullDecimal // precio para clientes de fidelización (opcional)
	Cost          decimal.Decimal     // costo promedio ponderado (se actualiza al recibir compras)
	StockQuantity int                 // siempre >= 0
	MinimumStock  int                 // umbral para alertas
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasLoyaltyPrice indica si el producto define un precio de fidelización.
func (p *Product) HasLoyaltyPrice() bool {
	return p.LoyaltyPrice.Valid
}
