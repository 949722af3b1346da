package entity

import "time"

// Customer representa un cliente del punto de venta.
// Los campos de fidelización se llenan la primera vez que se inscribe al programa.
type Customer struct {
	ID                string
	Name              string
	Email             string
	Phone             string
	IsLoyalty         bool
	LoyaltyPoints     int    // siempre >= 0
	LoyaltyCardNumber string // único; vacío hasta la primera inscripción
	LoyaltyStartDate  *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
