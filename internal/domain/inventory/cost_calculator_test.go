package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-pos/internal/domain/inventory"
)

func TestWeightedCost(t *testing.T) {
	// 10 unidades a 100 + 10 unidades a 200 => 150
	got := inventory.WeightedCost(10, decimal.NewFromInt(100), 10, decimal.NewFromInt(200))
	assert.True(t, got.Equal(decimal.NewFromInt(150)), "got %s", got)
}

func TestWeightedCost_SinStockPrevio(t *testing.T) {
	got := inventory.WeightedCost(0, decimal.Zero, 4, decimal.RequireFromString("12.50"))
	assert.True(t, got.Equal(decimal.RequireFromString("12.5")), "got %s", got)
}

func TestCostCalculator_SumaCero(t *testing.T) {
	got := inventory.CostCalculator(decimal.Zero, decimal.Zero, decimal.Zero, decimal.NewFromInt(10))
	assert.True(t, got.IsZero())
}
