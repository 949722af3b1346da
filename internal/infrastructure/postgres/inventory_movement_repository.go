package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

const movementColumns = `id, product_id, type, quantity, previous_stock, new_stock, reference, reason, created_by, created_at`

type movementRow struct {
	ID            string    `db:"id"`
	ProductID     string    `db:"product_id"`
	Type          string    `db:"type"`
	Quantity      int       `db:"quantity"`
	PreviousStock int       `db:"previous_stock"`
	NewStock      int       `db:"new_stock"`
	Reference     string    `db:"reference"`
	Reason        *string   `db:"reason"`
	CreatedBy     *string   `db:"created_by"`
	CreatedAt     time.Time `db:"created_at"`
}

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla es de solo inserción.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(ctx context.Context, movement *entity.InventoryMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		movement.PreviousStock, movement.NewStock, movement.Reference,
		nullString(movement.Reason), nullString(movement.CreatedBy), movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// List devuelve el kardex filtrado, más reciente primero.
func (r *InventoryMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	sql, args, err := movementListQuery(f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []movementRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	out := make([]*entity.InventoryMovement, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entity.InventoryMovement{
			ID:            row.ID,
			ProductID:     row.ProductID,
			Type:          row.Type,
			Quantity:      row.Quantity,
			PreviousStock: row.PreviousStock,
			NewStock:      row.NewStock,
			Reference:     row.Reference,
			Reason:        fromNull(row.Reason),
			CreatedBy:     fromNull(row.CreatedBy),
			CreatedAt:     row.CreatedAt,
		})
	}
	return out, nil
}

func movementListQuery(f repository.MovementFilter) squirrel.SelectBuilder {
	q := psql.Select(movementColumns).From("inventory_movements")
	if f.ProductID != "" {
		q = q.Where(squirrel.Eq{"product_id": f.ProductID})
	}
	if f.Type != "" {
		q = q.Where(squirrel.Eq{"type": f.Type})
	}
	if f.From != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *f.From})
	}
	if f.To != nil {
		q = q.Where(squirrel.LtOrEq{"created_at": *f.To})
	}
	return page(q.OrderBy("created_at DESC", "seq DESC"), f.Limit, f.Offset)
}
