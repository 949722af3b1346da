package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación en memoria de PurchaseRepository.
type PurchaseRepo struct {
	s    *Store
	inTx bool
}

func (r *PurchaseRepo) Create(_ context.Context, purchase *entity.Purchase) error {
	return r.s.view(r.inTx, func(d *data) error {
		if _, ok := d.purchases[purchase.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, p := range d.purchases {
			if p.PurchaseNumber == purchase.PurchaseNumber {
				return domain.ErrDuplicate
			}
		}
		cp := *purchase
		cp.Lines = slices.Clone(purchase.Lines)
		d.purchases[purchase.ID] = cp
		return nil
	})
}

func (r *PurchaseRepo) GetByID(_ context.Context, id string) (*entity.Purchase, error) {
	var out *entity.Purchase
	err := r.s.view(r.inTx, func(d *data) error {
		if p, ok := d.purchases[id]; ok {
			p.Lines = slices.Clone(p.Lines)
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *PurchaseRepo) GetForUpdate(ctx context.Context, id string) (*entity.Purchase, error) {
	return r.GetByID(ctx, id)
}

func (r *PurchaseRepo) MarkReceived(_ context.Context, purchase *entity.Purchase) error {
	return r.s.view(r.inTx, func(d *data) error {
		cur, ok := d.purchases[purchase.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Status = purchase.Status
		cur.ReceivedAt = purchase.ReceivedAt
		cur.UpdatedAt = purchase.UpdatedAt
		d.purchases[purchase.ID] = cur
		return nil
	})
}

func (r *PurchaseRepo) Delete(_ context.Context, id string) error {
	return r.s.view(r.inTx, func(d *data) error {
		if _, ok := d.purchases[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.purchases, id)
		return nil
	})
}

func (r *PurchaseRepo) List(_ context.Context, f repository.PurchaseFilter) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	err := r.s.view(r.inTx, func(d *data) error {
		all := make([]*entity.Purchase, 0, len(d.purchases))
		for _, p := range d.purchases {
			if f.Status != "" && p.Status != f.Status {
				continue
			}
			if f.SupplierID != "" && p.SupplierID != f.SupplierID {
				continue
			}
			p.Lines = slices.Clone(p.Lines)
			all = append(all, &p)
		}
		slices.SortFunc(all, func(a, b *entity.Purchase) int {
			if c := b.PurchaseDate.Compare(a.PurchaseDate); c != 0 {
				return c
			}
			return strings.Compare(b.PurchaseNumber, a.PurchaseNumber)
		})
		out = page(all, f.Limit, f.Offset)
		return nil
	})
	return out, err
}
