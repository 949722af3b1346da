package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

const (
	purchaseColumns = `id, purchase_number, supplier_id, total_amount, status, purchase_date, received_at,
		payment_method, notes, created_by, created_at, updated_at`
	purchaseLineColumns = `id, purchase_id, product_id, quantity, unit_cost, line_total`
)

type purchaseRow struct {
	ID             string          `db:"id"`
	PurchaseNumber string          `db:"purchase_number"`
	SupplierID     string          `db:"supplier_id"`
	TotalAmount    decimal.Decimal `db:"total_amount"`
	Status         string          `db:"status"`
	PurchaseDate   time.Time       `db:"purchase_date"`
	ReceivedAt     *time.Time      `db:"received_at"`
	PaymentMethod  *string         `db:"payment_method"`
	Notes          *string         `db:"notes"`
	CreatedBy      *string         `db:"created_by"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

func (row *purchaseRow) toEntity() *entity.Purchase {
	return &entity.Purchase{
		ID:             row.ID,
		PurchaseNumber: row.PurchaseNumber,
		SupplierID:     row.SupplierID,
		TotalAmount:    row.TotalAmount,
		Status:         row.Status,
		PurchaseDate:   row.PurchaseDate,
		ReceivedAt:     row.ReceivedAt,
		PaymentMethod:  fromNull(row.PaymentMethod),
		Notes:          fromNull(row.Notes),
		CreatedBy:      fromNull(row.CreatedBy),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

type purchaseLineRow struct {
	ID         string          `db:"id"`
	PurchaseID string          `db:"purchase_id"`
	ProductID  string          `db:"product_id"`
	Quantity   int             `db:"quantity"`
	UnitCost   decimal.Decimal `db:"unit_cost"`
	LineTotal  decimal.Decimal `db:"line_total"`
}

// PurchaseRepo persiste compras en purchases + purchase_lines (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create inserta la cabecera y sus líneas. Debe llamarse dentro de una tx.
func (r *PurchaseRepo) Create(ctx context.Context, purchase *entity.Purchase) error {
	query := `
		INSERT INTO purchases (` + purchaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		purchase.ID, purchase.PurchaseNumber, purchase.SupplierID, purchase.TotalAmount, purchase.Status,
		purchase.PurchaseDate, purchase.ReceivedAt, nullString(purchase.PaymentMethod), nullString(purchase.Notes),
		nullString(purchase.CreatedBy), purchase.CreatedAt, purchase.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	if len(purchase.Lines) == 0 {
		return nil
	}

	q := psql.Insert("purchase_lines").
		Columns("id", "purchase_id", "line_no", "product_id", "quantity", "unit_cost", "line_total")
	for i, l := range purchase.Lines {
		q = q.Values(l.ID, purchase.ID, i+1, l.ProductID, l.Quantity, l.UnitCost, l.LineTotal)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert purchase lines: %w", err)
	}
	return nil
}

// GetByID obtiene la compra con sus líneas.
func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	return r.getOne(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1`, id)
}

// GetForUpdate bloquea la compra; dos recepciones concurrentes se serializan aquí.
func (r *PurchaseRepo) GetForUpdate(ctx context.Context, id string) (*entity.Purchase, error) {
	return r.getOne(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1 FOR UPDATE`, id)
}

func (r *PurchaseRepo) getOne(ctx context.Context, query, id string) (*entity.Purchase, error) {
	var row purchaseRow
	if err := pgxscan.Get(ctx, r.q, &row, query, id); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	p := row.toEntity()
	lines, err := r.linesByPurchase(ctx, []string{p.ID})
	if err != nil {
		return nil, err
	}
	p.Lines = lines[p.ID]
	return p, nil
}

func (r *PurchaseRepo) linesByPurchase(ctx context.Context, ids []string) (map[string][]entity.PurchaseLine, error) {
	out := make(map[string][]entity.PurchaseLine, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	sql, args, err := psql.Select(purchaseLineColumns).From("purchase_lines").
		Where(squirrel.Eq{"purchase_id": ids}).
		OrderBy("purchase_id", "line_no").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []purchaseLineRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("get purchase lines: %w", err)
	}
	for _, l := range rows {
		out[l.PurchaseID] = append(out[l.PurchaseID], entity.PurchaseLine{
			ID:         l.ID,
			PurchaseID: l.PurchaseID,
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
			UnitCost:   l.UnitCost,
			LineTotal:  l.LineTotal,
		})
	}
	return out, nil
}

// MarkReceived cambia el estado. El WHERE sobre status evita una segunda recepción aunque falte el lock.
func (r *PurchaseRepo) MarkReceived(ctx context.Context, purchase *entity.Purchase) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE purchases SET status = $2, received_at = $3, updated_at = $4 WHERE id = $1 AND status = $5`,
		purchase.ID, purchase.Status, purchase.ReceivedAt, purchase.UpdatedAt, entity.PurchaseStatusPending,
	)
	if err != nil {
		return fmt.Errorf("mark purchase received: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrAlreadyReceived
	}
	return nil
}

// Delete elimina la compra; las líneas caen por ON DELETE CASCADE.
func (r *PurchaseRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM purchases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve compras filtradas por estado y proveedor, más recientes primero.
func (r *PurchaseRepo) List(ctx context.Context, f repository.PurchaseFilter) ([]*entity.Purchase, error) {
	sql, args, err := purchaseListQuery(f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []purchaseRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	purchases := make([]*entity.Purchase, 0, len(rows))
	ids := make([]string, 0, len(rows))
	for i := range rows {
		purchases = append(purchases, rows[i].toEntity())
		ids = append(ids, rows[i].ID)
	}
	lines, err := r.linesByPurchase(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range purchases {
		p.Lines = lines[p.ID]
	}
	return purchases, nil
}

func purchaseListQuery(f repository.PurchaseFilter) squirrel.SelectBuilder {
	q := psql.Select(purchaseColumns).From("purchases")
	if f.Status != "" {
		q = q.Where(squirrel.Eq{"status": f.Status})
	}
	if f.SupplierID != "" {
		q = q.Where(squirrel.Eq{"supplier_id": f.SupplierID})
	}
	return page(q.OrderBy("purchase_date DESC", "purchase_number DESC"), f.Limit, f.Offset)
}
