package entity

import "github.com/shopspring/decimal"

// Escalas de almacenamiento: montos en NUMERIC(14,2), costos unitarios en NUMERIC(14,4).
const (
	MoneyPlaces = 2
	CostPlaces  = 4
)

// RoundMoney redondea un monto a centavos (mitad alejada de cero, igual que NUMERIC).
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// RoundCost redondea un costo unitario.
func RoundCost(d decimal.Decimal) decimal.Decimal {
	return d.Round(CostPlaces)
}
