package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

// Referencias fijas de movimientos que no provienen de un documento.
const (
	ReferenceAdjustment = "ADJ"
	ReferenceInitial    = "INITIAL"
)

// MovementInput datos de un asiento del libro. Quantity siempre positiva.
type MovementInput struct {
	Type      string
	Quantity  int
	Reference string
	Reason    string
	UserID    string
	At        time.Time
}

// Ledger es el único componente que escribe stock. Debe usarse dentro de una
// transacción y con la fila del producto bloqueada (GetForUpdate).
type Ledger struct{}

// NewLedger construye el libro de inventario.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Apply calcula el nuevo stock, rechaza resultados negativos, persiste el stock y
// agrega el movimiento. Actualiza product.StockQuantity para que aplicaciones
// sucesivas dentro de la misma tx partan del valor vigente.
func (l *Ledger) Apply(ctx context.Context, repos repository.TxRepos, product *entity.Product, in MovementInput) (*entity.InventoryMovement, error) {
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.ValidMovementType(in.Type) {
		return nil, domain.Invalid("tipo de movimiento %q desconocido", in.Type)
	}
	if in.Quantity <= 0 {
		return nil, domain.Invalid("la cantidad del movimiento debe ser positiva")
	}

	prev := product.StockQuantity
	next := prev + in.Quantity
	if !entity.IsInbound(in.Type) {
		next = prev - in.Quantity
	}
	if next < 0 {
		return nil, fmt.Errorf("%w: %s (stock %d, salida %d)", domain.ErrNegativeStock, product.Name, prev, in.Quantity)
	}

	if err := repos.Products.UpdateStock(ctx, product.ID, next); err != nil {
		return nil, err
	}
	product.StockQuantity = next

	at := in.At
	if at.IsZero() {
		at = time.Now()
	}
	mov := &entity.InventoryMovement{
		ID:            uuid.New().String(),
		ProductID:     product.ID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		PreviousStock: prev,
		NewStock:      next,
		Reference:     in.Reference,
		Reason:        in.Reason,
		CreatedBy:     in.UserID,
		CreatedAt:     at,
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// LockProducts bloquea los productos en orden ascendente de ID (evita interbloqueos
// entre transacciones concurrentes) y los devuelve indexados por ID.
func LockProducts(ctx context.Context, repos repository.TxRepos, ids []string) (map[string]*entity.Product, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	sort.Strings(unique)

	out := make(map[string]*entity.Product, len(unique))
	for _, id := range unique {
		p, err := repos.Products.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		out[id] = p
	}
	return out, nil
}
