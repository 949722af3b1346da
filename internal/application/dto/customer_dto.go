package dto

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest entrada para crear un cliente. IsLoyalty lo inscribe de inmediato.
type CreateCustomerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	IsLoyalty bool   `json:"is_loyalty"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone"`
	IsLoyalty         bool       `json:"is_loyalty"`
	LoyaltyPoints     int        `json:"loyalty_points"`
	LoyaltyCardNumber string     `json:"loyalty_card_number,omitempty"`
	LoyaltyStartDate  *time.Time `json:"loyalty_start_date,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// AddPointsRequest body para POST /api/customers/:id/loyalty/points.
// Points se recibe como decimal para que una fracción responda INVALID_POINT_AMOUNT.
type AddPointsRequest struct {
	Points decimal.Decimal `json:"points"`
}

// WholePoints devuelve los puntos como entero; false si traen fracción o no caben en int32.
func (r AddPointsRequest) WholePoints() (int, bool) {
	if !r.Points.IsInteger() {
		return 0, false
	}
	if r.Points.GreaterThan(decimal.NewFromInt(math.MaxInt32)) || r.Points.LessThan(decimal.NewFromInt(math.MinInt32)) {
		return 0, false
	}
	return int(r.Points.IntPart()), true
}

// LoyaltyAccountResponse estado de la cuenta de fidelización de un cliente.
type LoyaltyAccountResponse struct {
	CustomerID string     `json:"customer_id"`
	IsLoyalty  bool       `json:"is_loyalty"`
	CardNumber string     `json:"card_number,omitempty"`
	Points     int        `json:"points"`
	StartDate  *time.Time `json:"start_date,omitempty"`
}
