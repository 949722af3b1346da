package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación en memoria de SupplierRepository.
type SupplierRepo struct {
	s    *Store
	inTx bool
}

func (r *SupplierRepo) Create(_ context.Context, supplier *entity.Supplier) error {
	return r.s.view(r.inTx, func(d *data) error {
		if _, ok := d.suppliers[supplier.ID]; ok {
			return domain.ErrDuplicate
		}
		d.suppliers[supplier.ID] = *supplier
		return nil
	})
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.s.view(r.inTx, func(d *data) error {
		if s, ok := d.suppliers[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SupplierRepo) List(_ context.Context, limit, offset int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	err := r.s.view(r.inTx, func(d *data) error {
		all := make([]*entity.Supplier, 0, len(d.suppliers))
		for _, s := range d.suppliers {
			all = append(all, &s)
		}
		slices.SortFunc(all, func(a, b *entity.Supplier) int {
			if n := strings.Compare(a.Name, b.Name); n != 0 {
				return n
			}
			return strings.Compare(a.ID, b.ID)
		})
		out = page(all, limit, offset)
		return nil
	})
	return out, err
}
