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

var _ repository.SaleRepository = (*SaleRepo)(nil)

const (
	salesTable     = "sales"
	saleLinesTable = "sale_lines"
	saleColumns    = `id, invoice_number, customer_id, subtotal, discount, tax, final_amount, loyalty_applied, points_earned,
		payment_method, amount_paid, change_amount, status, date, created_by, created_at, updated_at`
	saleLineColumns = `id, sale_id, product_id, quantity, unit_price, line_total, loyalty_priced`
)

type saleRow struct {
	ID             string          `db:"id"`
	InvoiceNumber  string          `db:"invoice_number"`
	CustomerID     *string         `db:"customer_id"`
	Subtotal       decimal.Decimal `db:"subtotal"`
	Discount       decimal.Decimal `db:"discount"`
	Tax            decimal.Decimal `db:"tax"`
	FinalAmount    decimal.Decimal `db:"final_amount"`
	LoyaltyApplied bool            `db:"loyalty_applied"`
	PointsEarned   int             `db:"points_earned"`
	PaymentMethod  string          `db:"payment_method"`
	AmountPaid     decimal.Decimal `db:"amount_paid"`
	ChangeAmount   decimal.Decimal `db:"change_amount"`
	Status         string          `db:"status"`
	Date           time.Time       `db:"date"`
	CreatedBy      *string         `db:"created_by"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

func (row *saleRow) toEntity() *entity.Sale {
	return &entity.Sale{
		ID:             row.ID,
		InvoiceNumber:  row.InvoiceNumber,
		CustomerID:     fromNull(row.CustomerID),
		Subtotal:       row.Subtotal,
		Discount:       row.Discount,
		Tax:            row.Tax,
		FinalAmount:    row.FinalAmount,
		LoyaltyApplied: row.LoyaltyApplied,
		PointsEarned:   row.PointsEarned,
		PaymentMethod:  row.PaymentMethod,
		AmountPaid:     row.AmountPaid,
		Change:         row.ChangeAmount,
		Status:         row.Status,
		Date:           row.Date,
		CreatedBy:      fromNull(row.CreatedBy),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

type saleLineRow struct {
	ID            string          `db:"id"`
	SaleID        string          `db:"sale_id"`
	ProductID     string          `db:"product_id"`
	Quantity      int             `db:"quantity"`
	UnitPrice     decimal.Decimal `db:"unit_price"`
	LineTotal     decimal.Decimal `db:"line_total"`
	LoyaltyPriced bool            `db:"loyalty_priced"`
}

// SaleRepo persiste ventas en sales + sale_lines (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera y sus líneas. Debe llamarse dentro de una tx.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.InvoiceNumber, nullString(sale.CustomerID),
		sale.Subtotal, sale.Discount, sale.Tax, sale.FinalAmount, sale.LoyaltyApplied, sale.PointsEarned,
		sale.PaymentMethod, sale.AmountPaid, sale.Change, sale.Status, sale.Date,
		nullString(sale.CreatedBy), sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return r.insertLines(ctx, sale.ID, sale.Lines)
}

func (r *SaleRepo) insertLines(ctx context.Context, saleID string, lines []entity.SaleLine) error {
	if len(lines) == 0 {
		return nil
	}
	q := psql.Insert(saleLinesTable).
		Columns("id", "sale_id", "line_no", "product_id", "quantity", "unit_price", "line_total", "loyalty_priced")
	for i, l := range lines {
		q = q.Values(l.ID, saleID, i+1, l.ProductID, l.Quantity, l.UnitPrice, l.LineTotal, l.LoyaltyPriced)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert sale lines: %w", err)
	}
	return nil
}

// GetByID obtiene la venta con sus líneas.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.getOne(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
}

// GetForUpdate bloquea la cabecera de la venta hasta el fin de la tx.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.getOne(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1 FOR UPDATE`, id)
}

func (r *SaleRepo) getOne(ctx context.Context, query, id string) (*entity.Sale, error) {
	var row saleRow
	if err := pgxscan.Get(ctx, r.q, &row, query, id); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	sale := row.toEntity()
	lines, err := r.linesBySale(ctx, []string{sale.ID})
	if err != nil {
		return nil, err
	}
	sale.Lines = lines[sale.ID]
	return sale, nil
}

// linesBySale carga las líneas de varias ventas en una sola consulta.
func (r *SaleRepo) linesBySale(ctx context.Context, saleIDs []string) (map[string][]entity.SaleLine, error) {
	out := make(map[string][]entity.SaleLine, len(saleIDs))
	if len(saleIDs) == 0 {
		return out, nil
	}
	sql, args, err := psql.Select(saleLineColumns).From(saleLinesTable).
		Where(squirrel.Eq{"sale_id": saleIDs}).
		OrderBy("sale_id", "line_no").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []saleLineRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("get sale lines: %w", err)
	}
	for _, l := range rows {
		out[l.SaleID] = append(out[l.SaleID], entity.SaleLine{
			ID:            l.ID,
			SaleID:        l.SaleID,
			ProductID:     l.ProductID,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			LineTotal:     l.LineTotal,
			LoyaltyPriced: l.LoyaltyPriced,
		})
	}
	return out, nil
}

// Update reemplaza totales y líneas. Debe llamarse dentro de una tx.
func (r *SaleRepo) Update(ctx context.Context, sale *entity.Sale) error {
	query := `
		UPDATE sales SET subtotal = $2, discount = $3, tax = $4, final_amount = $5, loyalty_applied = $6,
			points_earned = $7, amount_paid = $8, change_amount = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		sale.ID, sale.Subtotal, sale.Discount, sale.Tax, sale.FinalAmount, sale.LoyaltyApplied,
		sale.PointsEarned, sale.AmountPaid, sale.Change, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM sale_lines WHERE sale_id = $1`, sale.ID); err != nil {
		return fmt.Errorf("delete sale lines: %w", err)
	}
	return r.insertLines(ctx, sale.ID, sale.Lines)
}

// Delete elimina la venta; las líneas caen por ON DELETE CASCADE.
func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve ventas filtradas por rango de fecha y cliente, más recientes primero.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	sql, args, err := saleListQuery(f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []saleRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	sales := make([]*entity.Sale, 0, len(rows))
	ids := make([]string, 0, len(rows))
	for i := range rows {
		sales = append(sales, rows[i].toEntity())
		ids = append(ids, rows[i].ID)
	}
	lines, err := r.linesBySale(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, s := range sales {
		s.Lines = lines[s.ID]
	}
	return sales, nil
}

func saleListQuery(f repository.SaleFilter) squirrel.SelectBuilder {
	q := psql.Select(saleColumns).From(salesTable)
	if f.CustomerID != "" {
		q = q.Where(squirrel.Eq{"customer_id": f.CustomerID})
	}
	if f.From != nil {
		q = q.Where(squirrel.GtOrEq{"date": *f.From})
	}
	if f.To != nil {
		q = q.Where(squirrel.LtOrEq{"date": *f.To})
	}
	return page(q.OrderBy("date DESC", "invoice_number DESC"), f.Limit, f.Offset)
}
