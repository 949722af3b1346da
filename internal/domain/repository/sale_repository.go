package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// SaleFilter filtros opcionales para listar ventas.
type SaleFilter struct {
	From       *time.Time
	To         *time.Time
	CustomerID string
	Limit      int
	Offset     int
}

// SaleRepository define el puerto de persistencia para ventas (cabecera + líneas).
type SaleRepository interface {
	// Create persiste la cabecera y sus líneas.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetForUpdate bloquea la venta; serializa ediciones y anulaciones concurrentes.
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	// Update reemplaza totales y líneas de la venta.
	Update(ctx context.Context, sale *entity.Sale) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
}
