package purchasing

import (
	"context"
	"sync"
	"testing"
	"time"

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

var testDay = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*PurchaseUseCase, repository.TxRepos, context.Context) {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	ctx := context.Background()
	uc := NewPurchaseUseCase(memory.NewTxRunner(store), repos.Suppliers, repos.Products, repos.Purchases, inventory.NewLedger(), "PUR")
	uc.now = func() time.Time { return testDay }

	require.NoError(t, repos.Suppliers.Create(ctx, &entity.Supplier{ID: "s1", Name: "Distribuidora"}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "a", SKU: "A", Name: "A", Cost: decimal.NewFromInt(100), StockQuantity: 10}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "b", SKU: "B", Name: "B", StockQuantity: 0}))
	return uc, repos, ctx
}

func bulkRequest() dto.CreatePurchaseRequest {
	return dto.CreatePurchaseRequest{
		SupplierID: "s1",
		Lines: []dto.PurchaseLineRequest{
			{ProductID: "a", Quantity: 10, UnitCost: decimal.NewFromInt(200)},
			{ProductID: "b", Quantity: 4, UnitCost: decimal.RequireFromString("2.5")},
		},
	}
}

func stockOf(t *testing.T, repos repository.TxRepos, id string) *entity.Product {
	t.Helper()
	p, err := repos.Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// CreatePurchase
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePurchase_PendienteSinMoverStock(t *testing.T) {
	uc, repos, ctx := setup(t)

	res, err := uc.CreatePurchase(ctx, "u1", bulkRequest())
	require.NoError(t, err)

	assert.Equal(t, "PUR-20240501-0001", res.PurchaseNumber)
	assert.Equal(t, entity.PurchaseStatusPending, res.Status)
	assert.True(t, res.TotalAmount.Equal(decimal.NewFromInt(2010)))
	assert.Len(t, res.Lines, 2)
	assert.Nil(t, res.ReceivedAt)
	assert.Equal(t, 10, stockOf(t, repos, "a").StockQuantity)
	assert.Equal(t, 0, stockOf(t, repos, "b").StockQuantity)
}

func TestCreatePurchase_RedondeaMontos(t *testing.T) {
	uc, _, ctx := setup(t)

	res, err := uc.CreatePurchase(ctx, "u1", dto.CreatePurchaseRequest{
		SupplierID: "s1",
		Lines: []dto.PurchaseLineRequest{
			{ProductID: "a", Quantity: 3, UnitCost: decimal.RequireFromString("0.33335")},
			{ProductID: "b", Quantity: 1, UnitCost: decimal.RequireFromString("0.005")},
		},
	})
	require.NoError(t, err)

	require.Len(t, res.Lines, 2)
	assert.Equal(t, "0.3334", res.Lines[0].UnitCost.String())
	assert.Equal(t, "1", res.Lines[0].LineTotal.String())
	assert.Equal(t, "0.01", res.Lines[1].LineTotal.String())

	sum := decimal.Zero
	for _, l := range res.Lines {
		sum = sum.Add(l.LineTotal)
	}
	assert.True(t, res.TotalAmount.Equal(sum))
	assert.Equal(t, "1.01", res.TotalAmount.StringFixed(2))
}

func TestCreatePurchase_Validaciones(t *testing.T) {
	uc, _, ctx := setup(t)

	_, err := uc.CreatePurchase(ctx, "u1", dto.CreatePurchaseRequest{SupplierID: "s1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreatePurchase(ctx, "u1", dto.CreatePurchaseRequest{SupplierID: "s1", Lines: []dto.PurchaseLineRequest{{ProductID: "a", Quantity: 0}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreatePurchase(ctx, "u1", dto.CreatePurchaseRequest{SupplierID: "s1", Lines: []dto.PurchaseLineRequest{{ProductID: "a", Quantity: 1, UnitCost: decimal.NewFromInt(-1)}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req := bulkRequest()
	req.SupplierID = "nadie"
	_, err = uc.CreatePurchase(ctx, "u1", req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	req = bulkRequest()
	req.Lines[1].ProductID = "zzz"
	_, err = uc.CreatePurchase(ctx, "u1", req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ReceivePurchase
// ──────────────────────────────────────────────────────────────────────────────

func TestReceivePurchase_AcreditaStockYCosto(t *testing.T) {
	uc, repos, ctx := setup(t)
	created, err := uc.CreatePurchase(ctx, "u1", bulkRequest())
	require.NoError(t, err)

	res, err := uc.ReceivePurchase(ctx, "u2", created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusReceived, res.Status)
	require.NotNil(t, res.ReceivedAt)
	assert.Equal(t, testDay, *res.ReceivedAt)

	a := stockOf(t, repos, "a")
	assert.Equal(t, 20, a.StockQuantity)
	assert.True(t, a.Cost.Equal(decimal.NewFromInt(150)), "costo promedio %s", a.Cost)
	b := stockOf(t, repos, "b")
	assert.Equal(t, 4, b.StockQuantity)
	assert.True(t, b.Cost.Equal(decimal.RequireFromString("2.5")))

	movs, err := repos.Movements.List(ctx, repository.MovementFilter{ProductID: "a"})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeIn, movs[0].Type)
	assert.Equal(t, created.PurchaseNumber, movs[0].Reference)
	assert.Equal(t, "u2", movs[0].CreatedBy)
}

func TestReceivePurchase_SoloUnaVez(t *testing.T) {
	uc, repos, ctx := setup(t)
	created, err := uc.CreatePurchase(ctx, "u1", bulkRequest())
	require.NoError(t, err)

	_, err = uc.ReceivePurchase(ctx, "u1", created.ID)
	require.NoError(t, err)
	_, err = uc.ReceivePurchase(ctx, "u1", created.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyReceived)
	assert.Equal(t, 20, stockOf(t, repos, "a").StockQuantity)
}

func TestReceivePurchase_ConcurrenteSoloUnaVez(t *testing.T) {
	uc, repos, ctx := setup(t)
	created, err := uc.CreatePurchase(ctx, "u1", bulkRequest())
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, already := 0, 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.ReceivePurchase(ctx, "u1", created.ID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if assert.ErrorIs(t, err, domain.ErrAlreadyReceived) {
				already++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, 9, already)
	assert.Equal(t, 20, stockOf(t, repos, "a").StockQuantity)
	assert.Equal(t, 4, stockOf(t, repos, "b").StockQuantity)
}

func TestReceivePurchase_NoExiste(t *testing.T) {
	uc, _, ctx := setup(t)
	_, err := uc.ReceivePurchase(ctx, "u1", "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// DeletePurchase / consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestDeletePurchase_SoloPendientes(t *testing.T) {
	uc, _, ctx := setup(t)

	pending, err := uc.CreatePurchase(ctx, "u1", bulkRequest())
	require.NoError(t, err)
	require.NoError(t, uc.DeletePurchase(ctx, pending.ID))
	_, err = uc.GetPurchase(ctx, pending.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	received, err := uc.CreatePurchase(ctx, "u1", bulkRequest())
	require.NoError(t, err)
	_, err = uc.ReceivePurchase(ctx, "u1", received.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, uc.DeletePurchase(ctx, received.ID), domain.ErrConflict)
}

func TestListPurchases_PorEstado(t *testing.T) {
	uc, _, ctx := setup(t)

	first, err := uc.CreatePurchase(ctx, "u1", bulkRequest())
	require.NoError(t, err)
	_, err = uc.CreatePurchase(ctx, "u1", bulkRequest())
	require.NoError(t, err)
	_, err = uc.ReceivePurchase(ctx, "u1", first.ID)
	require.NoError(t, err)

	pending, err := uc.ListPurchases(ctx, repository.PurchaseFilter{Status: entity.PurchaseStatusPending})
	require.NoError(t, err)
	require.Len(t, pending.Items, 1)
	assert.Equal(t, "PUR-20240501-0002", pending.Items[0].PurchaseNumber)

	all, err := uc.ListPurchases(ctx, repository.PurchaseFilter{SupplierID: "s1"})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	_, err = uc.ListPurchases(ctx, repository.PurchaseFilter{Status: "cancelada"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
