package loyalty

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/memory"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T, customers ...*entity.Customer) (*LoyaltyUseCase, context.Context) {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	ctx := context.Background()
	for _, c := range customers {
		require.NoError(t, repos.Customers.Create(ctx, c))
	}
	uc := NewLoyaltyUseCase(memory.NewTxRunner(store), repos.Customers)
	uc.now = func() time.Time { return testNow }
	return uc, ctx
}

func TestFormatCardNumber(t *testing.T) {
	assert.Equal(t, "LC0000000001", FormatCardNumber(1))
	assert.Equal(t, "LC0000012345", FormatCardNumber(12345))
}

func TestEnrollLoyalty_PrimeraVez(t *testing.T) {
	uc, ctx := setup(t, &entity.Customer{ID: "c1", Name: "Ana"})

	acc, err := uc.EnrollLoyalty(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, acc.IsLoyalty)
	assert.Equal(t, "LC0000000001", acc.CardNumber)
	assert.Zero(t, acc.Points)
	require.NotNil(t, acc.StartDate)
	assert.Equal(t, testNow, *acc.StartDate)
}

func TestEnrollLoyalty_TarjetasUnicas(t *testing.T) {
	uc, ctx := setup(t, &entity.Customer{ID: "c1"}, &entity.Customer{ID: "c2"})

	a, err := uc.EnrollLoyalty(ctx, "c1")
	require.NoError(t, err)
	b, err := uc.EnrollLoyalty(ctx, "c2")
	require.NoError(t, err)
	assert.NotEqual(t, a.CardNumber, b.CardNumber)
}

func TestEnrollLoyalty_ReinscripcionConservaTarjetaYPuntos(t *testing.T) {
	uc, ctx := setup(t, &entity.Customer{ID: "c1"})

	first, err := uc.EnrollLoyalty(ctx, "c1")
	require.NoError(t, err)
	_, err = uc.AddLoyaltyPoints(ctx, "c1", 40)
	require.NoError(t, err)

	_, err = uc.DisableLoyalty(ctx, "c1")
	require.NoError(t, err)
	again, err := uc.EnrollLoyalty(ctx, "c1")
	require.NoError(t, err)

	assert.True(t, again.IsLoyalty)
	assert.Equal(t, first.CardNumber, again.CardNumber)
	assert.Equal(t, 40, again.Points)

	same, err := uc.EnrollLoyalty(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, again, same)
}

func TestDisableLoyalty_ConservaDatos(t *testing.T) {
	uc, ctx := setup(t, &entity.Customer{ID: "c1"})
	_, err := uc.EnrollLoyalty(ctx, "c1")
	require.NoError(t, err)
	_, err = uc.AddLoyaltyPoints(ctx, "c1", 7)
	require.NoError(t, err)

	acc, err := uc.DisableLoyalty(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, acc.IsLoyalty)
	assert.Equal(t, "LC0000000001", acc.CardNumber)
	assert.Equal(t, 7, acc.Points)
}

func TestAddLoyaltyPoints(t *testing.T) {
	uc, ctx := setup(t, &entity.Customer{ID: "c1", LoyaltyPoints: 3})

	acc, err := uc.AddLoyaltyPoints(ctx, "c1", 10)
	require.NoError(t, err)
	assert.Equal(t, 13, acc.Points)

	for _, bad := range []int{0, -5} {
		_, err = uc.AddLoyaltyPoints(ctx, "c1", bad)
		assert.ErrorIs(t, err, domain.ErrInvalidPointAmount)
	}

	_, err = uc.AddLoyaltyPoints(ctx, "nadie", 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	acc, err = uc.GetLoyaltyAccount(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 13, acc.Points)
}

func TestLoyalty_ClienteNoExiste(t *testing.T) {
	uc, ctx := setup(t)

	_, err := uc.EnrollLoyalty(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.DisableLoyalty(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.GetLoyaltyAccount(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
