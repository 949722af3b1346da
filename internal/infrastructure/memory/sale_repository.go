package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación en memoria de SaleRepository.
type SaleRepo struct {
	s    *Store
	inTx bool
}

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	return r.s.view(r.inTx, func(d *data) error {
		if _, ok := d.sales[sale.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, s := range d.sales {
			if s.InvoiceNumber == sale.InvoiceNumber {
				return domain.ErrDuplicate
			}
		}
		cp := *sale
		cp.Lines = slices.Clone(sale.Lines)
		d.sales[sale.ID] = cp
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.s.view(r.inTx, func(d *data) error {
		if s, ok := d.sales[id]; ok {
			s.Lines = slices.Clone(s.Lines)
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *SaleRepo) Update(_ context.Context, sale *entity.Sale) error {
	return r.s.view(r.inTx, func(d *data) error {
		if _, ok := d.sales[sale.ID]; !ok {
			return domain.ErrNotFound
		}
		cp := *sale
		cp.Lines = slices.Clone(sale.Lines)
		d.sales[sale.ID] = cp
		return nil
	})
}

func (r *SaleRepo) Delete(_ context.Context, id string) error {
	return r.s.view(r.inTx, func(d *data) error {
		if _, ok := d.sales[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.sales, id)
		return nil
	})
}

// List ordena por fecha descendente, como el adaptador PostgreSQL.
func (r *SaleRepo) List(_ context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.s.view(r.inTx, func(d *data) error {
		all := make([]*entity.Sale, 0, len(d.sales))
		for _, s := range d.sales {
			if f.CustomerID != "" && s.CustomerID != f.CustomerID {
				continue
			}
			if f.From != nil && s.Date.Before(*f.From) {
				continue
			}
			if f.To != nil && s.Date.After(*f.To) {
				continue
			}
			s.Lines = slices.Clone(s.Lines)
			all = append(all, &s)
		}
		slices.SortFunc(all, func(a, b *entity.Sale) int {
			if c := b.Date.Compare(a.Date); c != 0 {
				return c
			}
			return strings.Compare(b.InvoiceNumber, a.InvoiceNumber)
		})
		out = page(all, f.Limit, f.Offset)
		return nil
	})
	return out, err
}
