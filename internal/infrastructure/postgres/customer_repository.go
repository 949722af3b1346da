package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, name, email, phone, is_loyalty, loyalty_points, loyalty_card_number, loyalty_start_date, created_at, updated_at`

type customerRow struct {
	ID                string     `db:"id"`
	Name              string     `db:"name"`
	Email             *string    `db:"email"`
	Phone             *string    `db:"phone"`
	IsLoyalty         bool       `db:"is_loyalty"`
	LoyaltyPoints     int        `db:"loyalty_points"`
	LoyaltyCardNumber *string    `db:"loyalty_card_number"`
	LoyaltyStartDate  *time.Time `db:"loyalty_start_date"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
}

func (row *customerRow) toEntity() *entity.Customer {
	return &entity.Customer{
		ID:                row.ID,
		Name:              row.Name,
		Email:             fromNull(row.Email),
		Phone:             fromNull(row.Phone),
		IsLoyalty:         row.IsLoyalty,
		LoyaltyPoints:     row.LoyaltyPoints,
		LoyaltyCardNumber: fromNull(row.LoyaltyCardNumber),
		LoyaltyStartDate:  row.LoyaltyStartDate,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		customer.ID, customer.Name, nullString(customer.Email), nullString(customer.Phone),
		customer.IsLoyalty, customer.LoyaltyPoints, nullString(customer.LoyaltyCardNumber), customer.LoyaltyStartDate,
		customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	return r.getOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila del cliente (puntos y tarjeta) hasta el fin de la tx.
func (r *CustomerRepo) GetForUpdate(ctx context.Context, id string) (*entity.Customer, error) {
	return r.getOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1 FOR UPDATE`, id)
}

func (r *CustomerRepo) getOne(ctx context.Context, query string, id string) (*entity.Customer, error) {
	var row customerRow
	if err := pgxscan.Get(ctx, r.q, &row, query, id); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return row.toEntity(), nil
}

// UpdateLoyalty persiste el estado de fidelización. La tarjeta tiene índice único.
func (r *CustomerRepo) UpdateLoyalty(ctx context.Context, customer *entity.Customer) error {
	query := `
		UPDATE customers SET is_loyalty = $2, loyalty_points = $3, loyalty_card_number = $4, loyalty_start_date = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		customer.ID, customer.IsLoyalty, customer.LoyaltyPoints, nullString(customer.LoyaltyCardNumber),
		customer.LoyaltyStartDate, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer loyalty: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista clientes por nombre con paginación.
func (r *CustomerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	q := page(psql.Select(customerColumns).From("customers").OrderBy("name", "id"), limit, offset)
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []customerRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	out := make([]*entity.Customer, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}
