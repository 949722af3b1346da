package repository

import "context"

// SequenceRepository entrega el siguiente valor de un contador persistente.
// Debe ser atómico: dos llamadas concurrentes con la misma clave nunca reciben el mismo valor.
type SequenceRepository interface {
	Next(ctx context.Context, key string) (int64, error)
}
