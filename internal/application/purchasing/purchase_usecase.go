package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	domaininv "github.com/jhoicas/Inventario-pos/internal/domain/inventory"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
	"github.com/jhoicas/Inventario-pos/pkg/numerator"
)

const reasonPurchase = "recepción de compra"

// PurchaseUseCase registra órdenes de compra y su recepción en bodega.
type PurchaseUseCase struct {
	txRunner       repository.TxRunner
	suppliers      repository.SupplierRepository
	products       repository.ProductRepository
	purchases      repository.PurchaseRepository
	ledger         *inventory.Ledger
	purchasePrefix string
	now            func() time.Time
}

// NewPurchaseUseCase construye el caso de uso de compras.
func NewPurchaseUseCase(
	txRunner repository.TxRunner,
	suppliers repository.SupplierRepository,
	products repository.ProductRepository,
	purchases repository.PurchaseRepository,
	ledger *inventory.Ledger,
	purchasePrefix string,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:       txRunner,
		suppliers:      suppliers,
		products:       products,
		purchases:      purchases,
		ledger:         ledger,
		purchasePrefix: purchasePrefix,
		now:            time.Now,
	}
}

// CreatePurchase registra una compra pendiente de una o varias líneas. No mueve stock.
func (uc *PurchaseUseCase) CreatePurchase(ctx context.Context, userID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.SupplierID == "" {
		return nil, domain.Invalid("supplier_id es obligatorio")
	}
	if len(in.Lines) == 0 {
		return nil, domain.Invalid("la compra debe tener al menos una línea")
	}
	for i, l := range in.Lines {
		if l.ProductID == "" {
			return nil, domain.Invalid("línea %d: product_id es obligatorio", i+1)
		}
		if l.Quantity <= 0 {
			return nil, domain.Invalid("línea %d: la cantidad debe ser mayor a cero", i+1)
		}
		if l.UnitCost.IsNegative() {
			return nil, domain.Invalid("línea %d: el costo unitario no puede ser negativo", i+1)
		}
	}

	supplier, err := uc.suppliers.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, in.SupplierID)
	}
	for _, l := range in.Lines {
		p, err := uc.products.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, l.ProductID)
		}
	}

	now := uc.now()
	purchaseDate := now
	if in.PurchaseDate != nil {
		purchaseDate = *in.PurchaseDate
	}
	purchase := &entity.Purchase{
		ID:            uuid.New().String(),
		SupplierID:    in.SupplierID,
		TotalAmount:   decimal.Zero,
		Status:        entity.PurchaseStatusPending,
		PurchaseDate:  purchaseDate,
		PaymentMethod: in.PaymentMethod,
		Notes:         in.Notes,
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	// Costo unitario a 4 decimales; el total de línea a centavos y el total de la compra es su suma exacta.
	for _, l := range in.Lines {
		unitCost := entity.RoundCost(l.UnitCost)
		total := entity.RoundMoney(unitCost.Mul(decimal.NewFromInt(int64(l.Quantity))))
		purchase.Lines = append(purchase.Lines, entity.PurchaseLine{
			ID:         uuid.New().String(),
			PurchaseID: purchase.ID,
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
			UnitCost:   unitCost,
			LineTotal:  total,
		})
		purchase.TotalAmount = purchase.TotalAmount.Add(total)
	}

	err = uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		number, err := numerator.Next(ctx, repos.Sequences, uc.purchasePrefix, now)
		if err != nil {
			return err
		}
		purchase.PurchaseNumber = number
		return repos.Purchases.Create(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("purchase", purchase.PurchaseNumber).
		Int("lines", len(purchase.Lines)).
		Str("total", purchase.TotalAmount.String()).
		Msg("compra registrada")
	return toPurchaseResponse(purchase), nil
}

// ReceivePurchase acredita el stock de cada línea y actualiza el costo promedio ponderado.
// La fila de la compra se bloquea primero: dos recepciones concurrentes se serializan
// y la segunda recibe ErrAlreadyReceived.
func (uc *PurchaseUseCase) ReceivePurchase(ctx context.Context, userID, id string) (*dto.PurchaseResponse, error) {
	now := uc.now()
	var purchase *entity.Purchase

	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		purchase, err = repos.Purchases.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if purchase == nil {
			return domain.ErrNotFound
		}
		if purchase.IsReceived() {
			return domain.ErrAlreadyReceived
		}

		ids := make([]string, 0, len(purchase.Lines))
		for _, l := range purchase.Lines {
			ids = append(ids, l.ProductID)
		}
		products, err := inventory.LockProducts(ctx, repos, ids)
		if err != nil {
			return err
		}

		for _, l := range purchase.Lines {
			p := products[l.ProductID]
			cost := domaininv.WeightedCost(p.StockQuantity, p.Cost, l.Quantity, l.UnitCost)
			if err := repos.Products.UpdateCost(ctx, p.ID, cost); err != nil {
				return err
			}
			p.Cost = cost
			if _, err := uc.ledger.Apply(ctx, repos, p, inventory.MovementInput{
				Type:      entity.MovementTypeIn,
				Quantity:  l.Quantity,
				Reference: purchase.PurchaseNumber,
				Reason:    reasonPurchase,
				UserID:    userID,
				At:        now,
			}); err != nil {
				return err
			}
		}

		purchase.Status = entity.PurchaseStatusReceived
		purchase.ReceivedAt = &now
		purchase.UpdatedAt = now
		return repos.Purchases.MarkReceived(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("purchase", purchase.PurchaseNumber).
		Int("lines", len(purchase.Lines)).
		Msg("compra recibida")
	return toPurchaseResponse(purchase), nil
}

// GetPurchase obtiene una compra con sus líneas.
func (uc *PurchaseUseCase) GetPurchase(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	p, err := uc.purchases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPurchaseResponse(p), nil
}

// ListPurchases lista compras por estado y proveedor.
func (uc *PurchaseUseCase) ListPurchases(ctx context.Context, filter repository.PurchaseFilter) (*dto.PurchaseListResponse, error) {
	switch filter.Status {
	case "", entity.PurchaseStatusPending, entity.PurchaseStatusReceived:
	default:
		return nil, domain.Invalid("estado de compra %q desconocido", filter.Status)
	}
	page := dto.PageRequest{Limit: filter.Limit, Offset: filter.Offset}
	page.DefaultPage()
	filter.Limit, filter.Offset = page.Limit, page.Offset

	list, err := uc.purchases.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPurchaseResponse(p))
	}
	return &dto.PurchaseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// DeletePurchase elimina una compra pendiente. Una compra recibida ya movió stock: ErrConflict.
func (uc *PurchaseUseCase) DeletePurchase(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		p, err := repos.Purchases.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.IsReceived() {
			return fmt.Errorf("%w: la compra %s ya fue recibida", domain.ErrConflict, p.PurchaseNumber)
		}
		return repos.Purchases.Delete(ctx, id)
	})
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	lines := make([]dto.PurchaseLineResponse, 0, len(p.Lines))
	for _, l := range p.Lines {
		lines = append(lines, dto.PurchaseLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitCost:  l.UnitCost,
			LineTotal: l.LineTotal,
		})
	}
	return &dto.PurchaseResponse{
		ID:             p.ID,
		PurchaseNumber: p.PurchaseNumber,
		SupplierID:     p.SupplierID,
		Lines:          lines,
		TotalAmount:    p.TotalAmount,
		Status:         p.Status,
		PurchaseDate:   p.PurchaseDate,
		ReceivedAt:     p.ReceivedAt,
		PaymentMethod:  p.PaymentMethod,
		Notes:          p.Notes,
		CreatedBy:      p.CreatedBy,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
