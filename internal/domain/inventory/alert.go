package inventory

import "github.com/jhoicas/Inventario-pos/internal/domain/entity"

// EvaluateAlert deriva el estado de alerta a partir del stock y el mínimo.
//   - critical: sin existencias
//   - low:      0 < stock <= mínimo
//   - normal:   en cualquier otro caso
func EvaluateAlert(stockQuantity, minimumStock int) string {
	switch {
	case stockQuantity <= 0:
		return entity.AlertStatusCritical
	case stockQuantity <= minimumStock:
		return entity.AlertStatusLow
	default:
		return entity.AlertStatusNormal
	}
}

// Summarize cuenta los productos por estado de alerta.
func Summarize(products []*entity.Product) entity.AlertSummary {
	var s entity.AlertSummary
	for _, p := range products {
		switch EvaluateAlert(p.StockQuantity, p.MinimumStock) {
		case entity.AlertStatusCritical:
			s.Critical++
		case entity.AlertStatusLow:
			s.Low++
		default:
			s.Normal++
		}
		s.Total++
	}
	return s
}

// AlertRank ordena estados por urgencia (menor = más urgente).
func AlertRank(status string) int {
	switch status {
	case entity.AlertStatusCritical:
		return 0
	case entity.AlertStatusLow:
		return 1
	default:
		return 2
	}
}
