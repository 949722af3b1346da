package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// InitialStock queda registrado como movimiento de entrada con referencia INITIAL.
type CreateProductRequest struct {
	SKU          string           `json:"sku"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Price        decimal.Decimal  `json:"price"`
	LoyaltyPrice *decimal.Decimal `json:"loyalty_price,omitempty"`
	Cost         decimal.Decimal  `json:"cost"`
	InitialStock int              `json:"initial_stock"`
	MinimumStock int              `json:"minimum_stock"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Cost ni Stock).
// ClearLoyaltyPrice elimina el precio de fidelización.
type UpdateProductRequest struct {
	Name              *string          `json:"name"`
	Description       *string          `json:"description"`
	Price             *decimal.Decimal `json:"price"`
	LoyaltyPrice      *decimal.Decimal `json:"loyalty_price"`
	ClearLoyaltyPrice bool             `json:"clear_loyalty_price"`
	MinimumStock      *int             `json:"minimum_stock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string           `json:"id"`
	SKU           string           `json:"sku"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	LoyaltyPrice  *decimal.Decimal `json:"loyalty_price,omitempty"`
	Cost          decimal.Decimal  `json:"cost"`
	StockQuantity int              `json:"stock_quantity"`
	MinimumStock  int              `json:"minimum_stock"`
	AlertStatus   string           `json:"alert_status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
