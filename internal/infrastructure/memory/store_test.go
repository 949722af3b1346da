package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

func seedProduct(t *testing.T, s *Store, id, sku string, stock int) {
	t.Helper()
	err := s.Repos().Products.Create(context.Background(), &entity.Product{
		ID: id, SKU: sku, Name: sku, Price: decimal.NewFromInt(10), StockQuantity: stock,
	})
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner
// ──────────────────────────────────────────────────────────────────────────────

func TestTxRunner_RollbackRestauraEstado(t *testing.T) {
	s := NewStore()
	seedProduct(t, s, "p1", "SKU-1", 10)
	ctx := context.Background()
	boom := errors.New("falla")

	err := NewTxRunner(s).Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		require.NoError(t, repos.Products.UpdateStock(ctx, "p1", 3))
		require.NoError(t, repos.Movements.Create(ctx, &entity.InventoryMovement{ID: "m1", ProductID: "p1"}))
		_, err := repos.Sequences.Next(ctx, "INV-20240501")
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := s.Repos().Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.StockQuantity)

	movs, err := s.Repos().Movements.List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, movs)

	n, err := s.Repos().Sequences.Next(ctx, "INV-20240501")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "el contador no debe dejar huecos tras un rollback")
}

func TestTxRunner_CommitPersiste(t *testing.T) {
	s := NewStore()
	seedProduct(t, s, "p1", "SKU-1", 10)
	ctx := context.Background()

	err := NewTxRunner(s).Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		return repos.Products.UpdateStock(ctx, "p1", 4)
	})
	require.NoError(t, err)

	p, _ := s.Repos().Products.GetByID(ctx, "p1")
	assert.Equal(t, 4, p.StockQuantity)
}

func TestTxRunner_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := NewTxRunner(NewStore()).Run(ctx, func(context.Context, repository.TxRepos) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestTxRunner_SerializaTransacciones(t *testing.T) {
	s := NewStore()
	seedProduct(t, s, "p1", "SKU-1", 0)
	ctx := context.Background()
	runner := NewTxRunner(s)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = runner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
				p, err := repos.Products.GetForUpdate(ctx, "p1")
				if err != nil {
					return err
				}
				return repos.Products.UpdateStock(ctx, "p1", p.StockQuantity+1)
			})
		}()
	}
	wg.Wait()

	p, _ := s.Repos().Products.GetByID(ctx, "p1")
	assert.Equal(t, 100, p.StockQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios
// ──────────────────────────────────────────────────────────────────────────────

func TestProductRepo_SKUDuplicado(t *testing.T) {
	s := NewStore()
	seedProduct(t, s, "p1", "SKU-1", 0)
	err := s.Repos().Products.Create(context.Background(), &entity.Product{ID: "p2", SKU: "SKU-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// El SKU distingue mayúsculas, igual que el índice UNIQUE de PostgreSQL.
func TestProductRepo_SKUDistingueMayusculas(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedProduct(t, s, "p1", "SKU-1", 0)

	require.NoError(t, s.Repos().Products.Create(ctx, &entity.Product{ID: "p2", SKU: "sku-1"}))

	got, err := s.Repos().Products.GetBySKU(ctx, "sku-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "p2", got.ID)
}

func TestProductRepo_CopiasIndependientes(t *testing.T) {
	s := NewStore()
	seedProduct(t, s, "p1", "SKU-1", 5)
	ctx := context.Background()

	p, _ := s.Repos().Products.GetByID(ctx, "p1")
	p.StockQuantity = 999

	again, _ := s.Repos().Products.GetByID(ctx, "p1")
	assert.Equal(t, 5, again.StockQuantity)
}

func TestProductRepo_NoExiste(t *testing.T) {
	p, err := NewStore().Repos().Products.GetByID(context.Background(), "nada")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProductRepo_ListPaginado(t *testing.T) {
	s := NewStore()
	seedProduct(t, s, "p3", "C", 0)
	seedProduct(t, s, "p1", "A", 0)
	seedProduct(t, s, "p2", "B", 0)
	ctx := context.Background()

	list, err := s.Repos().Products.List(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[0].SKU)
	assert.Equal(t, "C", list[1].SKU)

	empty, err := s.Repos().Products.List(ctx, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCustomerRepo_TarjetaDuplicada(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repos := s.Repos()
	require.NoError(t, repos.Customers.Create(ctx, &entity.Customer{ID: "c1", LoyaltyCardNumber: "LC0000000001"}))
	require.NoError(t, repos.Customers.Create(ctx, &entity.Customer{ID: "c2"}))

	err := repos.Customers.UpdateLoyalty(ctx, &entity.Customer{ID: "c2", LoyaltyCardNumber: "LC0000000001"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestMovementRepo_FiltrosYOrden(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repos := s.Repos()
	require.NoError(t, repos.Movements.Create(ctx, &entity.InventoryMovement{ID: "m1", ProductID: "p1", Type: entity.MovementTypeIn}))
	require.NoError(t, repos.Movements.Create(ctx, &entity.InventoryMovement{ID: "m2", ProductID: "p2", Type: entity.MovementTypeOut}))
	require.NoError(t, repos.Movements.Create(ctx, &entity.InventoryMovement{ID: "m3", ProductID: "p1", Type: entity.MovementTypeOut}))

	all, err := repos.Movements.List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "m3", all[0].ID)

	p1, err := repos.Movements.List(ctx, repository.MovementFilter{ProductID: "p1", Type: entity.MovementTypeOut})
	require.NoError(t, err)
	require.Len(t, p1, 1)
	assert.Equal(t, "m3", p1[0].ID)
}
