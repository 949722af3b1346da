package repository

import (
	"context"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// PurchaseFilter filtros opcionales para listar compras.
type PurchaseFilter struct {
	Status     string
	SupplierID string
	Limit      int
	Offset     int
}

// PurchaseRepository define el puerto de persistencia para compras a proveedor.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	// GetForUpdate bloquea la compra; serializa recepciones concurrentes.
	GetForUpdate(ctx context.Context, id string) (*entity.Purchase, error)
	// MarkReceived cambia el estado a received y registra la fecha.
	MarkReceived(ctx context.Context, purchase *entity.Purchase) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter PurchaseFilter) ([]*entity.Purchase, error)
}
