package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/inventory/adjustments.
// Delta positivo suma, negativo resta. Force recorta la salida al stock disponible.
type AdjustStockRequest struct {
	ProductID string `json:"product_id"`
	Delta     int    `json:"delta"`
	Reason    string `json:"reason"`
	Force     bool   `json:"force"`
}

// MovementResponse un asiento del kardex.
type MovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	Type          string    `json:"type"`
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	Reference     string    `json:"reference"`
	Reason        string    `json:"reason,omitempty"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockAlertResponse estado de alerta de un producto con la sugerencia de reposición.
type StockAlertResponse struct {
	ProductID          string          `json:"product_id"`
	SKU                string          `json:"sku"`
	ProductName        string          `json:"product_name"`
	StockQuantity      int             `json:"stock_quantity"`
	MinimumStock       int             `json:"minimum_stock"`
	Status             string          `json:"status"`
	SuggestedOrderQty  int             `json:"suggested_order_qty"`  // ceil(MinimumStock * 1.5) - StockQuantity
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * costo promedio
}

// AlertSummaryResponse conteo de productos por estado.
type AlertSummaryResponse struct {
	Critical int `json:"critical"`
	Low      int `json:"low"`
	Normal   int `json:"normal"`
	Total    int `json:"total"`
}

// AlertListResponse alertas ordenadas por urgencia.
type AlertListResponse struct {
	Items []StockAlertResponse `json:"items"`
}
