package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/inventory"
)

func TestEvaluateAlert(t *testing.T) {
	cases := []struct {
		name    string
		stock   int
		minimum int
		want    string
	}{
		{"sin stock es crítico", 0, 5, entity.AlertStatusCritical},
		{"por debajo del mínimo es bajo", 3, 5, entity.AlertStatusLow},
		{"igual al mínimo es bajo", 5, 5, entity.AlertStatusLow},
		{"sobre el mínimo es normal", 10, 5, entity.AlertStatusNormal},
		{"mínimo cero con stock es normal", 1, 0, entity.AlertStatusNormal},
		{"mínimo cero sin stock es crítico", 0, 0, entity.AlertStatusCritical},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.EvaluateAlert(tc.stock, tc.minimum))
		})
	}
}

func TestSummarize(t *testing.T) {
	products := []*entity.Product{
		{ID: "a", StockQuantity: 0, MinimumStock: 5},
		{ID: "b", StockQuantity: 3, MinimumStock: 5},
		{ID: "c", StockQuantity: 10, MinimumStock: 5},
		{ID: "d", StockQuantity: 7, MinimumStock: 2},
	}
	got := inventory.Summarize(products)
	assert.Equal(t, entity.AlertSummary{Critical: 1, Low: 1, Normal: 2, Total: 4}, got)
}

func TestSummarize_Vacio(t *testing.T) {
	assert.Equal(t, entity.AlertSummary{}, inventory.Summarize(nil))
}
