// Package memory implementa los puertos de persistencia en memoria.
// Se usa en modo desarrollo (STORAGE_DRIVER=memory) y en las pruebas de casos de uso.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

type data struct {
	products  map[string]entity.Product
	customers map[string]entity.Customer
	suppliers map[string]entity.Supplier
	sales     map[string]entity.Sale
	purchases map[string]entity.Purchase
	movements []entity.InventoryMovement
	sequences map[string]int64
}

func newData() *data {
	return &data{
		products:  make(map[string]entity.Product),
		customers: make(map[string]entity.Customer),
		suppliers: make(map[string]entity.Supplier),
		sales:     make(map[string]entity.Sale),
		purchases: make(map[string]entity.Purchase),
		movements: make([]entity.InventoryMovement, 0, 64),
		sequences: make(map[string]int64),
	}
}

// clone copia profunda: las líneas de ventas y compras no se comparten con el snapshot.
func (d *data) clone() *data {
	c := &data{
		products:  maps.Clone(d.products),
		customers: maps.Clone(d.customers),
		suppliers: maps.Clone(d.suppliers),
		sales:     make(map[string]entity.Sale, len(d.sales)),
		purchases: make(map[string]entity.Purchase, len(d.purchases)),
		movements: slices.Clone(d.movements),
		sequences: maps.Clone(d.sequences),
	}
	for id, s := range d.sales {
		s.Lines = slices.Clone(s.Lines)
		c.sales[id] = s
	}
	for id, p := range d.purchases {
		p.Lines = slices.Clone(p.Lines)
		c.purchases[id] = p
	}
	return c
}

// Store guarda todo el estado detrás de un único mutex. Las transacciones
// toman el mutex completo, lo que las serializa.
type Store struct {
	mu sync.Mutex
	d  *data
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{d: newData()}
}

// view ejecuta fn con acceso exclusivo a los datos. Dentro de una transacción
// el mutex ya está tomado y no se vuelve a bloquear.
func (s *Store) view(inTx bool, fn func(d *data) error) error {
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.d)
}

// Repos devuelve repositorios sin transacción (cada llamada es atómica por sí sola).
func (s *Store) Repos() repository.TxRepos {
	return s.repos(false)
}

func (s *Store) repos(inTx bool) repository.TxRepos {
	return repository.TxRepos{
		Products:  &ProductRepo{s: s, inTx: inTx},
		Customers: &CustomerRepo{s: s, inTx: inTx},
		Suppliers: &SupplierRepo{s: s, inTx: inTx},
		Sales:     &SaleRepo{s: s, inTx: inTx},
		Purchases: &PurchaseRepo{s: s, inTx: inTx},
		Movements: &MovementRepo{s: s, inTx: inTx},
		Sequences: &SequenceRepo{s: s, inTx: inTx},
	}
}

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta fn con el almacén bloqueado; si fn falla restaura el snapshot previo.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run equivale a BEGIN ... COMMIT/ROLLBACK.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snapshot := r.s.d.clone()
	if err := fn(ctx, r.s.repos(true)); err != nil {
		r.s.d = snapshot
		return err
	}
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
