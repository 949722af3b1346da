package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/memory"
)

func newStockUseCase(s *memory.Store) *StockUseCase {
	uc := NewStockUseCase(memory.NewTxRunner(s), s.Repos().Movements, NewLedger())
	uc.now = func() time.Time { return testNow }
	return uc
}

func TestAdjustStock_EntradaYSalida(t *testing.T) {
	s, repos, ctx := newStore(t, product("a", 5, 0))
	uc := newStockUseCase(s)

	res, err := uc.AdjustStock(ctx, "u1", "a", 4, "conteo físico", false)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeAdjustmentIn, res.Type)
	assert.Equal(t, 4, res.Quantity)
	assert.Equal(t, 9, res.NewStock)
	assert.Equal(t, ReferenceAdjustment, res.Reference)

	res, err = uc.AdjustStock(ctx, "u1", "a", -3, "merma", false)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeAdjustmentOut, res.Type)
	assert.Equal(t, 3, res.Quantity)
	assert.Equal(t, 6, res.NewStock)

	p, _ := repos.Products.GetByID(ctx, "a")
	assert.Equal(t, 6, p.StockQuantity)
}

func TestAdjustStock_NegativoRechazado(t *testing.T) {
	s, repos, ctx := newStore(t, product("a", 2, 0))
	uc := newStockUseCase(s)

	_, err := uc.AdjustStock(ctx, "u1", "a", -5, "merma", false)
	assert.ErrorIs(t, err, domain.ErrNegativeStock)

	p, _ := repos.Products.GetByID(ctx, "a")
	assert.Equal(t, 2, p.StockQuantity)
}

func TestAdjustStock_ForzadoRecortaAlDisponible(t *testing.T) {
	s, repos, ctx := newStore(t, product("a", 2, 0))
	uc := newStockUseCase(s)

	res, err := uc.AdjustStock(ctx, "u1", "a", -5, "robo", true)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Quantity)
	assert.Equal(t, 0, res.NewStock)

	p, _ := repos.Products.GetByID(ctx, "a")
	assert.Equal(t, 0, p.StockQuantity)

	// Sin existencias no hay nada que retirar.
	_, err = uc.AdjustStock(ctx, "u1", "a", -1, "robo", true)
	assert.ErrorIs(t, err, domain.ErrNegativeStock)
}

func TestAdjustStock_Validaciones(t *testing.T) {
	s, _, ctx := newStore(t, product("a", 2, 0))
	uc := newStockUseCase(s)

	_, err := uc.AdjustStock(ctx, "u1", "a", 0, "x", false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.AdjustStock(ctx, "u1", "a", 1, "  ", false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.AdjustStock(ctx, "u1", "", 1, "x", false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.AdjustStock(ctx, "u1", "nada", 1, "x", false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListMovements_Filtros(t *testing.T) {
	s, _, ctx := newStore(t, product("a", 10, 0), product("b", 10, 0))
	uc := newStockUseCase(s)

	_, err := uc.AdjustStock(ctx, "u1", "a", 1, "x", false)
	require.NoError(t, err)
	_, err = uc.AdjustStock(ctx, "u1", "a", -2, "x", false)
	require.NoError(t, err)
	_, err = uc.AdjustStock(ctx, "u1", "b", 3, "x", false)
	require.NoError(t, err)

	res, err := uc.ListMovements(ctx, repository.MovementFilter{ProductID: "a"})
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)

	res, err = uc.ListMovements(ctx, repository.MovementFilter{Type: entity.MovementTypeAdjustmentIn})
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)

	res, err = uc.ListMovements(ctx, repository.MovementFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, "b", res.Items[0].ProductID)

	_, err = uc.ListMovements(ctx, repository.MovementFilter{Type: "transfer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
