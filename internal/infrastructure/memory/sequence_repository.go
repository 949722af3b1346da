package memory

import (
	"context"

	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador por clave. Dentro de una tx fallida el valor se revierte con el snapshot.
type SequenceRepo struct {
	s    *Store
	inTx bool
}

func (r *SequenceRepo) Next(_ context.Context, key string) (int64, error) {
	var n int64
	err := r.s.view(r.inTx, func(d *data) error {
		d.sequences[key]++
		n = d.sequences[key]
		return nil
	})
	return n, err
}
