package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	domaininv "github.com/jhoicas/Inventario-pos/internal/domain/inventory"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

const alertScanPage = 500

var idealStockFactor = decimal.NewFromFloat(1.5)

// AlertUseCase deriva alertas de stock bajo a partir del catálogo de productos.
type AlertUseCase struct {
	products repository.ProductRepository
}

// NewAlertUseCase construye el caso de uso de alertas.
func NewAlertUseCase(products repository.ProductRepository) *AlertUseCase {
	return &AlertUseCase{products: products}
}

// EvaluateAlerts cuenta los productos por estado de alerta.
func (uc *AlertUseCase) EvaluateAlerts(ctx context.Context) (*dto.AlertSummaryResponse, error) {
	products, err := uc.allProducts(ctx)
	if err != nil {
		return nil, err
	}
	s := domaininv.Summarize(products)
	return &dto.AlertSummaryResponse{Critical: s.Critical, Low: s.Low, Normal: s.Normal, Total: s.Total}, nil
}

// ListAlerts devuelve los productos en alerta, los más urgentes primero.
// status vacío lista low y critical; "normal" debe pedirse explícitamente.
func (uc *AlertUseCase) ListAlerts(ctx context.Context, status string) ([]dto.StockAlertResponse, error) {
	switch status {
	case "", entity.AlertStatusCritical, entity.AlertStatusLow, entity.AlertStatusNormal:
	default:
		return nil, domain.Invalid("estado de alerta %q desconocido", status)
	}

	products, err := uc.allProducts(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.StockAlertResponse, 0)
	for _, p := range products {
		st := domaininv.EvaluateAlert(p.StockQuantity, p.MinimumStock)
		if status == "" && st == entity.AlertStatusNormal {
			continue
		}
		if status != "" && st != status {
			continue
		}
		out = append(out, toAlertResponse(p, st))
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := domaininv.AlertRank(out[i].Status), domaininv.AlertRank(out[j].Status)
		if ri != rj {
			return ri < rj
		}
		if out[i].StockQuantity != out[j].StockQuantity {
			return out[i].StockQuantity < out[j].StockQuantity
		}
		return out[i].SKU < out[j].SKU
	})
	return out, nil
}

func (uc *AlertUseCase) allProducts(ctx context.Context) ([]*entity.Product, error) {
	var all []*entity.Product
	for offset := 0; ; offset += alertScanPage {
		page, err := uc.products.List(ctx, alertScanPage, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < alertScanPage {
			return all, nil
		}
	}
}

func toAlertResponse(p *entity.Product, status string) dto.StockAlertResponse {
	ideal := decimal.NewFromInt(int64(p.MinimumStock)).Mul(idealStockFactor).Ceil().IntPart()
	suggested := int(ideal) - p.StockQuantity
	if suggested < 0 {
		suggested = 0
	}
	return dto.StockAlertResponse{
		ProductID:          p.ID,
		SKU:                p.SKU,
		ProductName:        p.Name,
		StockQuantity:      p.StockQuantity,
		MinimumStock:       p.MinimumStock,
		Status:             status,
		SuggestedOrderQty:  suggested,
		EstimatedOrderCost: p.Cost.Mul(decimal.NewFromInt(int64(suggested))),
	}
}
