package memory

import (
	"context"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*MovementRepo)(nil)

// MovementRepo kardex en memoria (solo inserción).
type MovementRepo struct {
	s    *Store
	inTx bool
}

func (r *MovementRepo) Create(_ context.Context, movement *entity.InventoryMovement) error {
	return r.s.view(r.inTx, func(d *data) error {
		d.movements = append(d.movements, *movement)
		return nil
	})
}

// List devuelve los movimientos más recientes primero.
func (r *MovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	err := r.s.view(r.inTx, func(d *data) error {
		all := make([]*entity.InventoryMovement, 0, len(d.movements))
		for i := len(d.movements) - 1; i >= 0; i-- {
			m := d.movements[i]
			if f.ProductID != "" && m.ProductID != f.ProductID {
				continue
			}
			if f.Type != "" && m.Type != f.Type {
				continue
			}
			if f.From != nil && m.CreatedAt.Before(*f.From) {
				continue
			}
			if f.To != nil && m.CreatedAt.After(*f.To) {
				continue
			}
			all = append(all, &m)
		}
		out = page(all, f.Limit, f.Offset)
		return nil
	})
	return out, err
}
