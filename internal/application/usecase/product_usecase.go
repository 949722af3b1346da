package usecase

import (
	"context"
	"strings"
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
)

// ProductUseCase casos de uso CRUD para productos. El stock solo cambia vía el libro de inventario.
type ProductUseCase struct {
	txRunner repository.TxRunner
	repo     repository.ProductRepository
	ledger   *inventory.Ledger
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner repository.TxRunner, repo repository.ProductRepository, ledger *inventory.Ledger) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo, ledger: ledger, now: time.Now}
}

// Create crea un producto. Un stock inicial queda registrado como entrada con referencia INITIAL.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if in.SKU == "" || in.Name == "" {
		return nil, domain.Invalid("sku y name son obligatorios")
	}
	if in.Price.IsNegative() || in.Cost.IsNegative() {
		return nil, domain.Invalid("precio y costo no pueden ser negativos")
	}
	if in.LoyaltyPrice != nil && in.LoyaltyPrice.IsNegative() {
		return nil, domain.Invalid("el precio de fidelización no puede ser negativo")
	}
	if in.InitialStock < 0 || in.MinimumStock < 0 {
		return nil, domain.Invalid("stock inicial y mínimo no pueden ser negativos")
	}

	existing, err := uc.repo.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := uc.now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		SKU:          in.SKU,
		Name:         in.Name,
		Description:  in.Description,
		Price:        entity.RoundMoney(in.Price),
		Cost:         entity.RoundCost(in.Cost),
		MinimumStock: in.MinimumStock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.LoyaltyPrice != nil {
		product.LoyaltyPrice = decimal.NewNullDecimal(entity.RoundMoney(*in.LoyaltyPrice))
	}

	err = uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
		if in.InitialStock == 0 {
			return nil
		}
		_, err := uc.ledger.Apply(ctx, repos, product, inventory.MovementInput{
			Type:      entity.MovementTypeIn,
			Quantity:  in.InitialStock,
			Reference: inventory.ReferenceInitial,
			Reason:    "stock inicial",
			UserID:    userID,
			At:        now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("sku", product.SKU).Int("initial_stock", product.StockQuantity).Msg("producto creado")
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza datos comerciales. No permite modificar Cost ni Stock (se manejan vía movimientos).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("name no puede quedar vacío")
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.Invalid("el precio no puede ser negativo")
		}
		product.Price = entity.RoundMoney(*in.Price)
	}
	switch {
	case in.ClearLoyaltyPrice:
		product.LoyaltyPrice = decimal.NullDecimal{}
	case in.LoyaltyPrice != nil:
		if in.LoyaltyPrice.IsNegative() {
			return nil, domain.Invalid("el precio de fidelización no puede ser negativo")
		}
		product.LoyaltyPrice = decimal.NewNullDecimal(entity.RoundMoney(*in.LoyaltyPrice))
	}
	if in.MinimumStock != nil {
		if *in.MinimumStock < 0 {
			return nil, domain.Invalid("el stock mínimo no puede ser negativo")
		}
		product.MinimumStock = *in.MinimumStock
	}
	product.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	res := &dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Cost:          p.Cost,
		StockQuantity: p.StockQuantity,
		MinimumStock:  p.MinimumStock,
		AlertStatus:   domaininv.EvaluateAlert(p.StockQuantity, p.MinimumStock),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.HasLoyaltyPrice() {
		lp := p.LoyaltyPrice.Decimal
		res.LoyaltyPrice = &lp
	}
	return res
}
