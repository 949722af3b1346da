package sales

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
	"github.com/jhoicas/Inventario-pos/pkg/numerator"
)

const (
	reasonSale       = "venta"
	reasonSaleEdit   = "edición de venta"
	reasonSaleDelete = "anulación de venta"
)

// SaleUseCase registra, edita y anula ventas. Cada operación corre en una sola
// transacción: stock, puntos de fidelización y numeración se confirman juntos o no se confirman.
type SaleUseCase struct {
	txRunner      repository.TxRunner
	customers     repository.CustomerRepository
	sales         repository.SaleRepository
	ledger        *inventory.Ledger
	invoicePrefix string
	now           func() time.Time
}

// NewSaleUseCase construye el caso de uso de ventas.
func NewSaleUseCase(
	txRunner repository.TxRunner,
	customers repository.CustomerRepository,
	sales repository.SaleRepository,
	ledger *inventory.Ledger,
	invoicePrefix string,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:      txRunner,
		customers:     customers,
		sales:         sales,
		ledger:        ledger,
		invoicePrefix: invoicePrefix,
		now:           time.Now,
	}
}

// CreateSale registra una venta de una o varias líneas bajo un mismo número de factura.
// Si algún producto no alcanza, devuelve *domain.StockShortageError con todos los faltantes.
func (uc *SaleUseCase) CreateSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if err := validateLines(in.Lines); err != nil {
		return nil, err
	}
	if err := validateAdjustments(in.Discount, in.Tax); err != nil {
		return nil, err
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = entity.PaymentCash
	}
	if !validPaymentMethod(in.PaymentMethod) {
		return nil, domain.Invalid("método de pago %q no soportado", in.PaymentMethod)
	}
	if in.CustomerID != "" {
		c, err := uc.customers.GetByID(ctx, in.CustomerID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.CustomerID)
		}
	}

	now := uc.now()
	requested := requestedQuantities(in.Lines)
	var sale *entity.Sale

	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		products, err := inventory.LockProducts(ctx, repos, keys(requested))
		if err != nil {
			return err
		}
		customer, err := lockCustomer(ctx, repos, in.CustomerID)
		if err != nil {
			return err
		}

		if err := checkAvailability(products, requested, nil); err != nil {
			return err
		}

		t, err := price(in.Lines, products, customer != nil && customer.IsLoyalty, in.Discount, in.Tax)
		if err != nil {
			return err
		}
		paid, change, err := settle(in.AmountPaid, t.FinalAmount)
		if err != nil {
			return err
		}

		number, err := numerator.Next(ctx, repos.Sequences, uc.invoicePrefix, now)
		if err != nil {
			return err
		}

		sale = &entity.Sale{
			ID:             newID(),
			InvoiceNumber:  number,
			CustomerID:     in.CustomerID,
			Subtotal:       t.Subtotal,
			Discount:       t.Discount,
			Tax:            t.Tax,
			FinalAmount:    t.FinalAmount,
			LoyaltyApplied: t.LoyaltyApplied,
			PointsEarned:   t.PointsEarned,
			PaymentMethod:  in.PaymentMethod,
			AmountPaid:     paid,
			Change:         change,
			Status:         entity.SaleStatusCompleted,
			Date:           now,
			CreatedBy:      userID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		sale.Lines = withSaleID(t.Lines, sale.ID)
		if err := repos.Sales.Create(ctx, sale); err != nil {
			return err
		}

		for _, l := range sale.Lines {
			if _, err := uc.ledger.Apply(ctx, repos, products[l.ProductID], inventory.MovementInput{
				Type:      entity.MovementTypeOut,
				Quantity:  l.Quantity,
				Reference: number,
				Reason:    reasonSale,
				UserID:    userID,
				At:        now,
			}); err != nil {
				return err
			}
		}

		if customer != nil && sale.PointsEarned > 0 {
			customer.LoyaltyPoints += sale.PointsEarned
			customer.UpdatedAt = now
			if err := repos.Customers.UpdateLoyalty(ctx, customer); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("invoice", sale.InvoiceNumber).
		Int("lines", len(sale.Lines)).
		Str("final_amount", sale.FinalAmount.String()).
		Int("points", sale.PointsEarned).
		Msg("venta registrada")
	return toSaleResponse(sale), nil
}

// UpdateSale reemplaza las líneas de una venta. El inventario se corrige con el delta
// neto por producto (anterior - nuevo), por lo que aplicar dos veces la misma edición
// deja el mismo stock. Totales, precio de fidelización y puntos se recalculan.
func (uc *SaleUseCase) UpdateSale(ctx context.Context, userID, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	if err := validateLines(in.Lines); err != nil {
		return nil, err
	}
	for _, v := range []*decimal.Decimal{in.Discount, in.Tax} {
		if v != nil && v.IsNegative() {
			return nil, domain.Invalid("descuento e impuesto no pueden ser negativos")
		}
	}

	now := uc.now()
	var sale *entity.Sale

	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		sale, err = repos.Sales.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}

		previous := sale.QuantitiesByProduct()
		requested := requestedQuantities(in.Lines)
		products, err := inventory.LockProducts(ctx, repos, union(previous, requested))
		if err != nil {
			return err
		}
		customer, err := lockCustomer(ctx, repos, sale.CustomerID)
		if err != nil && !isNotFound(err) {
			return err
		}

		if err := checkAvailability(products, requested, previous); err != nil {
			return err
		}

		discount, tax := sale.Discount, sale.Tax
		if in.Discount != nil {
			discount = *in.Discount
		}
		if in.Tax != nil {
			tax = *in.Tax
		}
		t, err := price(in.Lines, products, customer != nil && customer.IsLoyalty, discount, tax)
		if err != nil {
			return err
		}

		amountPaid := sale.AmountPaid
		if in.AmountPaid != nil {
			amountPaid = *in.AmountPaid
		} else if amountPaid.LessThan(t.FinalAmount) {
			amountPaid = t.FinalAmount
		}
		paid, change, err := settle(amountPaid, t.FinalAmount)
		if err != nil {
			return err
		}

		for _, pid := range union(previous, requested) {
			delta := previous[pid] - requested[pid]
			if delta == 0 {
				continue
			}
			mv := inventory.MovementInput{
				Type:      entity.MovementTypeIn,
				Quantity:  delta,
				Reference: sale.InvoiceNumber,
				Reason:    reasonSaleEdit,
				UserID:    userID,
				At:        now,
			}
			if delta < 0 {
				mv.Type = entity.MovementTypeOut
				mv.Quantity = -delta
			}
			if _, err := uc.ledger.Apply(ctx, repos, products[pid], mv); err != nil {
				return err
			}
		}

		if customer != nil {
			if diff := t.PointsEarned - sale.PointsEarned; diff != 0 {
				customer.LoyaltyPoints = max(0, customer.LoyaltyPoints+diff)
				customer.UpdatedAt = now
				if err := repos.Customers.UpdateLoyalty(ctx, customer); err != nil {
					return err
				}
			}
		}

		sale.Lines = withSaleID(t.Lines, sale.ID)
		sale.Subtotal = t.Subtotal
		sale.Discount = t.Discount
		sale.Tax = t.Tax
		sale.FinalAmount = t.FinalAmount
		sale.LoyaltyApplied = t.LoyaltyApplied
		sale.PointsEarned = t.PointsEarned
		sale.AmountPaid = paid
		sale.Change = change
		sale.UpdatedAt = now
		return repos.Sales.Update(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("invoice", sale.InvoiceNumber).
		Str("final_amount", sale.FinalAmount.String()).
		Int("points", sale.PointsEarned).
		Msg("venta editada")
	return toSaleResponse(sale), nil
}

// DeleteSale anula una venta: restituye el stock de cada línea y revierte los puntos ganados.
func (uc *SaleUseCase) DeleteSale(ctx context.Context, userID, id string) error {
	now := uc.now()
	var invoice string

	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		sale, err := repos.Sales.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		invoice = sale.InvoiceNumber

		sold := sale.QuantitiesByProduct()
		ids := keys(sold)
		products, err := inventory.LockProducts(ctx, repos, ids)
		if err != nil {
			return err
		}
		for _, pid := range ids {
			if _, err := uc.ledger.Apply(ctx, repos, products[pid], inventory.MovementInput{
				Type:      entity.MovementTypeIn,
				Quantity:  sold[pid],
				Reference: sale.InvoiceNumber,
				Reason:    reasonSaleDelete,
				UserID:    userID,
				At:        now,
			}); err != nil {
				return err
			}
		}

		if sale.PointsEarned > 0 {
			customer, err := lockCustomer(ctx, repos, sale.CustomerID)
			if err != nil && !isNotFound(err) {
				return err
			}
			if customer != nil {
				customer.LoyaltyPoints = max(0, customer.LoyaltyPoints-sale.PointsEarned)
				customer.UpdatedAt = now
				if err := repos.Customers.UpdateLoyalty(ctx, customer); err != nil {
					return err
				}
			}
		}
		return repos.Sales.Delete(ctx, sale.ID)
	})
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().Str("invoice", invoice).Msg("venta anulada")
	return nil
}

// GetSale obtiene una venta con sus líneas.
func (uc *SaleUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return toSaleResponse(sale), nil
}

// ListSales lista ventas por rango de fechas y cliente, las más recientes primero.
func (uc *SaleUseCase) ListSales(ctx context.Context, filter repository.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, domain.Invalid("el rango de fechas es inválido")
	}
	page := dto.PageRequest{Limit: filter.Limit, Offset: filter.Offset}
	page.DefaultPage()
	filter.Limit, filter.Offset = page.Limit, page.Offset

	list, err := uc.sales.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// checkAvailability junta todos los faltantes. previous es lo que la venta ya
// tenía descontado (edición); cuenta como disponible para ese producto.
func checkAvailability(products map[string]*entity.Product, requested, previous map[string]int) error {
	var shortages []domain.StockShortage
	for _, pid := range keys(requested) {
		p := products[pid]
		available := p.StockQuantity + previous[pid]
		if requested[pid] > available {
			shortages = append(shortages, domain.StockShortage{
				ProductID:   pid,
				ProductName: p.Name,
				Requested:   requested[pid],
				Available:   available,
			})
		}
	}
	if len(shortages) > 0 {
		return &domain.StockShortageError{Items: shortages}
	}
	return nil
}

func lockCustomer(ctx context.Context, repos repository.TxRepos, id string) (*entity.Customer, error) {
	if id == "" {
		return nil, nil
	}
	c, err := repos.Customers.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
	}
	return c, nil
}

func isNotFound(err error) bool {
	return err != nil && errors.Is(err, domain.ErrNotFound)
}

func keys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func union(a, b map[string]int) []string {
	set := make(map[string]int, len(a)+len(b))
	for k := range a {
		set[k] = 0
	}
	for k := range b {
		set[k] = 0
	}
	return keys(set)
}

func newID() string { return uuid.New().String() }

func withSaleID(lines []entity.SaleLine, saleID string) []entity.SaleLine {
	for i := range lines {
		lines[i].SaleID = saleID
	}
	return lines
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	lines := make([]dto.SaleLineResponse, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, dto.SaleLineResponse{
			ID:            l.ID,
			ProductID:     l.ProductID,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			LineTotal:     l.LineTotal,
			LoyaltyPriced: l.LoyaltyPriced,
		})
	}
	return &dto.SaleResponse{
		ID:             s.ID,
		InvoiceNumber:  s.InvoiceNumber,
		CustomerID:     s.CustomerID,
		Lines:          lines,
		Subtotal:       s.Subtotal,
		Discount:       s.Discount,
		Tax:            s.Tax,
		FinalAmount:    s.FinalAmount,
		LoyaltyApplied: s.LoyaltyApplied,
		PointsEarned:   s.PointsEarned,
		PaymentMethod:  s.PaymentMethod,
		AmountPaid:     s.AmountPaid,
		Change:         s.Change,
		Status:         s.Status,
		Date:           s.Date,
		CreatedBy:      s.CreatedBy,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
