package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/memory"
)

func newStore() (*memory.Store, repository.TxRepos, context.Context) {
	s := memory.NewStore()
	return s, s.Repos(), context.Background()
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_StockInicialComoMovimiento(t *testing.T) {
	store, repos, ctx := newStore()
	uc := NewProductUseCase(memory.NewTxRunner(store), repos.Products, inventory.NewLedger())

	lp := decimal.NewFromInt(8)
	res, err := uc.Create(ctx, "u1", dto.CreateProductRequest{
		SKU: "CAF-01", Name: "Café", Price: decimal.NewFromInt(10), LoyaltyPrice: &lp,
		InitialStock: 12, MinimumStock: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, res.StockQuantity)
	require.NotNil(t, res.LoyaltyPrice)
	assert.True(t, res.LoyaltyPrice.Equal(lp))
	assert.Equal(t, entity.AlertStatusNormal, res.AlertStatus)

	movs, err := repos.Movements.List(ctx, repository.MovementFilter{ProductID: res.ID})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, inventory.ReferenceInitial, movs[0].Reference)
	assert.Equal(t, 0, movs[0].PreviousStock)
	assert.Equal(t, 12, movs[0].NewStock)
}

func TestProductCreate_SinStockNoGeneraMovimiento(t *testing.T) {
	store, repos, ctx := newStore()
	uc := NewProductUseCase(memory.NewTxRunner(store), repos.Products, inventory.NewLedger())

	res, err := uc.Create(ctx, "u1", dto.CreateProductRequest{SKU: "X", Name: "X"})
	require.NoError(t, err)
	assert.Equal(t, entity.AlertStatusCritical, res.AlertStatus)

	movs, err := repos.Movements.List(ctx, repository.MovementFilter{ProductID: res.ID})
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestProductCreate_Validaciones(t *testing.T) {
	store, repos, ctx := newStore()
	uc := NewProductUseCase(memory.NewTxRunner(store), repos.Products, inventory.NewLedger())

	_, err := uc.Create(ctx, "u1", dto.CreateProductRequest{SKU: "", Name: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, "u1", dto.CreateProductRequest{SKU: "X", Name: "X", InitialStock: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, "u1", dto.CreateProductRequest{SKU: "X", Name: "X", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, "u1", dto.CreateProductRequest{SKU: "X", Name: "X"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, "u1", dto.CreateProductRequest{SKU: "X", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUpdate_NoTocaStock(t *testing.T) {
	store, repos, ctx := newStore()
	uc := NewProductUseCase(memory.NewTxRunner(store), repos.Products, inventory.NewLedger())

	created, err := uc.Create(ctx, "u1", dto.CreateProductRequest{SKU: "A", Name: "A", InitialStock: 5})
	require.NoError(t, err)

	name := "Nuevo"
	lp := decimal.NewFromInt(3)
	minimum := 6
	res, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Name: &name, LoyaltyPrice: &lp, MinimumStock: &minimum})
	require.NoError(t, err)
	assert.Equal(t, "Nuevo", res.Name)
	assert.Equal(t, 5, res.StockQuantity)
	assert.Equal(t, entity.AlertStatusLow, res.AlertStatus)
	require.NotNil(t, res.LoyaltyPrice)

	res, err = uc.Update(ctx, created.ID, dto.UpdateProductRequest{ClearLoyaltyPrice: true})
	require.NoError(t, err)
	assert.Nil(t, res.LoyaltyPrice)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.LoyaltyPrice)
	assert.Equal(t, 5, got.StockQuantity)

	_, err = uc.Update(ctx, "nada", dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductList_Paginacion(t *testing.T) {
	store, repos, ctx := newStore()
	uc := NewProductUseCase(memory.NewTxRunner(store), repos.Products, inventory.NewLedger())
	for _, sku := range []string{"A", "B", "C"} {
		_, err := uc.Create(ctx, "u1", dto.CreateProductRequest{SKU: sku, Name: sku})
		require.NoError(t, err)
	}

	res, err := uc.List(ctx, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, 2, res.Page.Limit)

	res, err = uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, res.Items, 3)
	assert.Equal(t, 20, res.Page.Limit)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes y proveedores
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomerCreate_ConFidelizacion(t *testing.T) {
	store, repos, ctx := newStore()
	uc := NewCustomerUseCase(memory.NewTxRunner(store), repos.Customers)

	res, err := uc.Create(ctx, dto.CreateCustomerRequest{Name: "Ana", IsLoyalty: true})
	require.NoError(t, err)
	assert.True(t, res.IsLoyalty)
	assert.Equal(t, "LC0000000001", res.LoyaltyCardNumber)
	assert.NotNil(t, res.LoyaltyStartDate)

	plain, err := uc.Create(ctx, dto.CreateCustomerRequest{Name: "Luis"})
	require.NoError(t, err)
	assert.False(t, plain.IsLoyalty)
	assert.Empty(t, plain.LoyaltyCardNumber)

	got, err := uc.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.LoyaltyCardNumber, got.LoyaltyCardNumber)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)

	_, err = uc.Create(ctx, dto.CreateCustomerRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.GetByID(ctx, "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSupplierCRUD(t *testing.T) {
	_, repos, ctx := newStore()
	uc := NewSupplierUseCase(repos.Suppliers)

	res, err := uc.Create(ctx, dto.CreateSupplierRequest{Name: "Distribuidora", ContactName: "Marta"})
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "Marta", got.ContactName)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	_, err = uc.Create(ctx, dto.CreateSupplierRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.GetByID(ctx, "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
