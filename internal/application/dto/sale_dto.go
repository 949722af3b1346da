package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest una línea de venta. UnitPrice cero toma el precio de lista del producto.
type SaleLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest body para POST /api/sales. Varias líneas = venta masiva bajo una factura.
type CreateSaleRequest struct {
	CustomerID    string            `json:"customer_id,omitempty"`
	Lines         []SaleLineRequest `json:"lines"`
	Discount      decimal.Decimal   `json:"discount"`
	Tax           decimal.Decimal   `json:"tax"`
	PaymentMethod string            `json:"payment_method"`
	AmountPaid    decimal.Decimal   `json:"amount_paid"`
}

// UpdateSaleRequest body para PUT /api/sales/:id. Lines reemplaza todas las líneas.
type UpdateSaleRequest struct {
	Lines      []SaleLineRequest `json:"lines"`
	Discount   *decimal.Decimal  `json:"discount,omitempty"`
	Tax        *decimal.Decimal  `json:"tax,omitempty"`
	AmountPaid *decimal.Decimal  `json:"amount_paid,omitempty"`
}

// SaleLineResponse línea de una venta.
type SaleLineResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	LineTotal     decimal.Decimal `json:"line_total"`
	LoyaltyPriced bool            `json:"loyalty_priced"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID             string             `json:"id"`
	InvoiceNumber  string             `json:"invoice_number"`
	CustomerID     string             `json:"customer_id,omitempty"`
	Lines          []SaleLineResponse `json:"lines"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	Discount       decimal.Decimal    `json:"discount"`
	Tax            decimal.Decimal    `json:"tax"`
	FinalAmount    decimal.Decimal    `json:"final_amount"`
	LoyaltyApplied bool               `json:"loyalty_applied"`
	PointsEarned   int                `json:"points_earned"`
	PaymentMethod  string             `json:"payment_method"`
	AmountPaid     decimal.Decimal    `json:"amount_paid"`
	Change         decimal.Decimal    `json:"change"`
	Status         string             `json:"status"`
	Date           time.Time          `json:"date"`
	CreatedBy      string             `json:"created_by"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
