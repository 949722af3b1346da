package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

// StockUseCase ajustes manuales de stock y consulta del kardex.
type StockUseCase struct {
	txRunner  repository.TxRunner
	movements repository.InventoryMovementRepository
	ledger    *Ledger
	now       func() time.Time
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner repository.TxRunner, movements repository.InventoryMovementRepository, ledger *Ledger) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, movements: movements, ledger: ledger, now: time.Now}
}

// AdjustStock aplica un ajuste manual. delta > 0 registra adjustment_in, delta < 0 adjustment_out.
// Si la salida supera el stock se rechaza con ErrNegativeStock, salvo force: en ese caso
// se retira solo lo disponible y el stock queda en cero.
func (uc *StockUseCase) AdjustStock(ctx context.Context, userID, productID string, delta int, reason string, force bool) (*dto.MovementResponse, error) {
	if productID == "" {
		return nil, domain.Invalid("product_id es obligatorio")
	}
	if delta == 0 {
		return nil, domain.Invalid("el ajuste debe ser distinto de cero")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.Invalid("el motivo del ajuste es obligatorio")
	}

	var mov *entity.InventoryMovement
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		product, err := repos.Products.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		in := MovementInput{
			Type:      entity.MovementTypeAdjustmentIn,
			Quantity:  delta,
			Reference: ReferenceAdjustment,
			Reason:    reason,
			UserID:    userID,
			At:        uc.now(),
		}
		if delta < 0 {
			in.Type = entity.MovementTypeAdjustmentOut
			in.Quantity = -delta
			if in.Quantity > product.StockQuantity && force {
				if product.StockQuantity == 0 {
					return fmt.Errorf("%w: %s no tiene stock para retirar", domain.ErrNegativeStock, product.Name)
				}
				in.Quantity = product.StockQuantity
			}
		}

		mov, err = uc.ledger.Apply(ctx, repos, product, in)
		return err
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("product_id", productID).
		Str("type", mov.Type).
		Int("quantity", mov.Quantity).
		Int("new_stock", mov.NewStock).
		Bool("force", force).
		Msg("ajuste de inventario registrado")
	return toMovementResponse(mov), nil
}

// ListMovements consulta el kardex con filtros opcionales.
func (uc *StockUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) (*dto.MovementListResponse, error) {
	if filter.Type != "" && !entity.ValidMovementType(filter.Type) {
		return nil, domain.Invalid("tipo de movimiento %q desconocido", filter.Type)
	}
	page := dto.PageRequest{Limit: filter.Limit, Offset: filter.Offset}
	page.DefaultPage()
	filter.Limit, filter.Offset = page.Limit, page.Offset

	list, err := uc.movements.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

func toMovementResponse(m *entity.InventoryMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reference:     m.Reference,
		Reason:        m.Reason,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}
