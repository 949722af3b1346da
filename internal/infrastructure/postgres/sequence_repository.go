package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contadores persistentes en la tabla sequences(key PK, current_value).
// El upsert toma el lock de la fila: dentro de una tx, el número queda reservado hasta el Commit
// y un Rollback lo libera sin dejar huecos.
type SequenceRepo struct {
	q Querier
}

func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrementa y devuelve el contador de key (1 para una clave nueva).
func (r *SequenceRepo) Next(ctx context.Context, key string) (int64, error) {
	query := `
		INSERT INTO sequences (key, current_value) VALUES ($1, 1)
		ON CONFLICT (key) DO UPDATE SET current_value = sequences.current_value + 1
		RETURNING current_value`
	var n int64
	if err := r.q.QueryRow(ctx, query, key).Scan(&n); err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", key, err)
	}
	return n, nil
}
