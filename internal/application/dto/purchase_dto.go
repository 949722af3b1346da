package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseLineRequest una línea de compra.
type PurchaseLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseRequest body para POST /api/purchases. Varias líneas = compra masiva.
type CreatePurchaseRequest struct {
	SupplierID    string                `json:"supplier_id"`
	Lines         []PurchaseLineRequest `json:"lines"`
	PurchaseDate  *time.Time            `json:"purchase_date,omitempty"`
	PaymentMethod string                `json:"payment_method"`
	Notes         string                `json:"notes"`
}

// PurchaseLineResponse línea de una compra.
type PurchaseLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// PurchaseResponse salida de una compra.
type PurchaseResponse struct {
	ID             string                 `json:"id"`
	PurchaseNumber string                 `json:"purchase_number"`
	SupplierID     string                 `json:"supplier_id"`
	Lines          []PurchaseLineResponse `json:"lines"`
	TotalAmount    decimal.Decimal        `json:"total_amount"`
	Status         string                 `json:"status"`
	PurchaseDate   time.Time              `json:"purchase_date"`
	ReceivedAt     *time.Time             `json:"received_at,omitempty"`
	PaymentMethod  string                 `json:"payment_method"`
	Notes          string                 `json:"notes"`
	CreatedBy      string                 `json:"created_by"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// PurchaseListResponse lista paginada de compras.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
