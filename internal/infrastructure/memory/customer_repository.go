package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación en memoria de CustomerRepository.
type CustomerRepo struct {
	s    *Store
	inTx bool
}

func (r *CustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	return r.s.view(r.inTx, func(d *data) error {
		if _, ok := d.customers[customer.ID]; ok {
			return domain.ErrDuplicate
		}
		d.customers[customer.ID] = *customer
		return nil
	})
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.s.view(r.inTx, func(d *data) error {
		if c, ok := d.customers[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepo) GetForUpdate(ctx context.Context, id string) (*entity.Customer, error) {
	return r.GetByID(ctx, id)
}

func (r *CustomerRepo) UpdateLoyalty(_ context.Context, customer *entity.Customer) error {
	return r.s.view(r.inTx, func(d *data) error {
		cur, ok := d.customers[customer.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if customer.LoyaltyCardNumber != "" {
			for id, c := range d.customers {
				if id != customer.ID && c.LoyaltyCardNumber == customer.LoyaltyCardNumber {
					return domain.ErrDuplicate
				}
			}
		}
		cur.IsLoyalty = customer.IsLoyalty
		cur.LoyaltyPoints = customer.LoyaltyPoints
		cur.LoyaltyCardNumber = customer.LoyaltyCardNumber
		cur.LoyaltyStartDate = customer.LoyaltyStartDate
		cur.UpdatedAt = customer.UpdatedAt
		d.customers[customer.ID] = cur
		return nil
	})
}

func (r *CustomerRepo) List(_ context.Context, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	err := r.s.view(r.inTx, func(d *data) error {
		all := make([]*entity.Customer, 0, len(d.customers))
		for _, c := range d.customers {
			all = append(all, &c)
		}
		slices.SortFunc(all, func(a, b *entity.Customer) int {
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
