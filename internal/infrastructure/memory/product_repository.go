package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	s    *Store
	inTx bool
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.s.view(r.inTx, func(d *data) error {
		if _, ok := d.products[product.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, p := range d.products {
			if p.SKU == product.SKU {
				return domain.ErrDuplicate
			}
		}
		d.products[product.ID] = *product
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.view(r.inTx, func(d *data) error {
		if p, ok := d.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate no necesita bloqueo adicional: la transacción ya tiene el almacén exclusivo.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.view(r.inTx, func(d *data) error {
		for _, p := range d.products {
			if p.SKU == sku {
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.s.view(r.inTx, func(d *data) error {
		cur, ok := d.products[product.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Name = product.Name
		cur.Description = product.Description
		cur.Price = product.Price
		cur.LoyaltyPrice = product.LoyaltyPrice
		cur.MinimumStock = product.MinimumStock
		cur.UpdatedAt = product.UpdatedAt
		d.products[product.ID] = cur
		return nil
	})
}

func (r *ProductRepo) UpdateStock(_ context.Context, productID string, quantity int) error {
	return r.s.view(r.inTx, func(d *data) error {
		cur, ok := d.products[productID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.StockQuantity = quantity
		cur.UpdatedAt = time.Now()
		d.products[productID] = cur
		return nil
	})
}

func (r *ProductRepo) UpdateCost(_ context.Context, productID string, cost decimal.Decimal) error {
	return r.s.view(r.inTx, func(d *data) error {
		cur, ok := d.products[productID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Cost = cost
		cur.UpdatedAt = time.Now()
		d.products[productID] = cur
		return nil
	})
}

// List ordena por SKU para que la paginación sea estable.
func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.s.view(r.inTx, func(d *data) error {
		all := make([]*entity.Product, 0, len(d.products))
		for _, p := range d.products {
			all = append(all, &p)
		}
		slices.SortFunc(all, func(a, b *entity.Product) int { return strings.Compare(a.SKU, b.SKU) })
		out = page(all, limit, offset)
		return nil
	})
	return out, err
}
