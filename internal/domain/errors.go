package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrAlreadyReceived    = errors.New("la compra ya fue recibida")
	ErrNegativeStock      = errors.New("el movimiento dejaría el stock en negativo")
	ErrInvalidPointAmount = errors.New("la cantidad de puntos debe ser un entero positivo")
)

// Invalid envuelve ErrInvalidInput con un mensaje legible para el cliente.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// StockShortage describe un producto cuya existencia no alcanza para la cantidad pedida.
type StockShortage struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Requested   int    `json:"requested"`
	Available   int    `json:"available"`
}

// StockShortageError agrupa todos los faltantes detectados en una operación.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type StockShortageError struct {
	Items []StockShortage
}

func (e *StockShortageError) Error() string {
	parts := make([]string, 0, len(e.Items))
	for _, it := range e.Items {
		parts = append(parts, fmt.Sprintf("%s (solicitado %d, disponible %d)", it.ProductName, it.Requested, it.Available))
	}
	return ErrInsufficientStock.Error() + ": " + strings.Join(parts, ", ")
}

func (e *StockShortageError) Unwrap() error { return ErrInsufficientStock }
