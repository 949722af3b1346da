package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIn            = "in"             // entrada (compra recibida, restitución de venta)
	MovementTypeOut           = "out"            // salida (venta)
	MovementTypeAdjustmentIn  = "adjustment_in"  // ajuste manual positivo
	MovementTypeAdjustmentOut = "adjustment_out" // ajuste manual negativo
)

// InventoryMovement es un asiento inmutable del libro de inventario.
// NewStock = PreviousStock + Quantity para entradas y PreviousStock - Quantity para salidas.
type InventoryMovement struct {
	ID            string
	ProductID     string
	Type          string
	Quantity      int // siempre positivo; el signo lo da Type
	PreviousStock int
	NewStock      int
	Reference     string // número de factura, de compra, o "ADJ"
	Reason        string
	CreatedBy     string
	CreatedAt     time.Time
}

// IsInbound indica si el tipo de movimiento suma stock.
func IsInbound(movementType string) bool {
	return movementType == MovementTypeIn || movementType == MovementTypeAdjustmentIn
}

// ValidMovementType indica si el tipo es uno de los cuatro conocidos.
func ValidMovementType(movementType string) bool {
	switch movementType {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjustmentIn, MovementTypeAdjustmentOut:
		return true
	}
	return false
}
