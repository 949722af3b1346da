package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// MovementFilter filtros opcionales del kardex.
type MovementFilter struct {
	ProductID string
	Type      string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// InventoryMovementRepository define el puerto de persistencia para movimientos de inventario.
// Los movimientos son de solo inserción.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.InventoryMovement, error)
}
