// Package numerator genera números de documento con contador diario:
// PREFIJO-AAAAMMDD-NNNN (ej. INV-20240501-0001).
package numerator

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	dayLayout = "20060102"
	padWidth  = 4
)

// Counter entrega valores crecientes por clave. La implementación debe ser atómica
// (en PostgreSQL: INSERT ... ON CONFLICT DO UPDATE ... RETURNING).
type Counter interface {
	Next(ctx context.Context, key string) (int64, error)
}

// Key construye la clave del contador para un prefijo y día: INV-20240501.
func Key(prefix string, day time.Time) string {
	return prefix + "-" + day.Format(dayLayout)
}

// Format arma el número final. Secuencias mayores a 9999 se imprimen sin truncar.
func Format(prefix string, day time.Time, seq int64) string {
	return fmt.Sprintf("%s-%0*d", Key(prefix, day), padWidth, seq)
}

// Next obtiene el siguiente número del día para el prefijo.
func Next(ctx context.Context, c Counter, prefix string, day time.Time) (string, error) {
	if c == nil {
		return "", errors.New("numerator: contador no inicializado")
	}
	seq, err := c.Next(ctx, Key(prefix, day))
	if err != nil {
		return "", fmt.Errorf("next %s: %w", prefix, err)
	}
	return Format(prefix, day, seq), nil
}
