package sales

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// totals resultado del cálculo de una venta.
type totals struct {
	Lines          []entity.SaleLine
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal
	Tax            decimal.Decimal
	FinalAmount    decimal.Decimal
	LoyaltyApplied bool
	PointsEarned   int
}

// validateLines valida las líneas antes de tocar inventario.
func validateLines(lines []dto.SaleLineRequest) error {
	if len(lines) == 0 {
		return domain.Invalid("la venta debe tener al menos una línea")
	}
	for i, l := range lines {
		if l.ProductID == "" {
			return domain.Invalid("línea %d: product_id es obligatorio", i+1)
		}
		if l.Quantity <= 0 {
			return domain.Invalid("línea %d: la cantidad debe ser mayor a cero", i+1)
		}
		if l.UnitPrice.IsNegative() {
			return domain.Invalid("línea %d: el precio unitario no puede ser negativo", i+1)
		}
	}
	return nil
}

func validateAdjustments(discount, tax decimal.Decimal) error {
	if discount.IsNegative() {
		return domain.Invalid("el descuento no puede ser negativo")
	}
	if tax.IsNegative() {
		return domain.Invalid("el impuesto no puede ser negativo")
	}
	return nil
}

// requestedQuantities suma las cantidades pedidas por producto.
func requestedQuantities(lines []dto.SaleLineRequest) map[string]int {
	out := make(map[string]int, len(lines))
	for _, l := range lines {
		out[l.ProductID] += l.Quantity
	}
	return out
}

// price arma las líneas y los totales.
//   - precios, descuento e impuesto se redondean a centavos antes de sumar
//   - precio unitario cero toma el precio de lista
//   - cliente de fidelización + producto con precio de fidelización: se usa ese precio
//   - puntos = piso(FinalAmount) si alguna línea usó precio de fidelización
func price(lines []dto.SaleLineRequest, products map[string]*entity.Product, loyal bool, discount, tax decimal.Decimal) (*totals, error) {
	discount = entity.RoundMoney(discount)
	tax = entity.RoundMoney(tax)
	t := &totals{
		Lines:    make([]entity.SaleLine, 0, len(lines)),
		Subtotal: decimal.Zero,
		Discount: discount,
		Tax:      tax,
	}
	for _, l := range lines {
		p, ok := products[l.ProductID]
		if !ok {
			return nil, domain.ErrNotFound
		}
		unit := l.UnitPrice
		if unit.IsZero() {
			unit = p.Price
		}
		loyaltyPriced := false
		if loyal && p.HasLoyaltyPrice() {
			unit = p.LoyaltyPrice.Decimal
			loyaltyPriced = true
			t.LoyaltyApplied = true
		}
		unit = entity.RoundMoney(unit)
		lineTotal := unit.Mul(decimal.NewFromInt(int64(l.Quantity)))
		t.Lines = append(t.Lines, entity.SaleLine{
			ID:            uuid.New().String(),
			ProductID:     l.ProductID,
			Quantity:      l.Quantity,
			UnitPrice:     unit,
			LineTotal:     lineTotal,
			LoyaltyPriced: loyaltyPriced,
		})
		t.Subtotal = t.Subtotal.Add(lineTotal)
	}
	if discount.GreaterThan(t.Subtotal) {
		return nil, domain.Invalid("el descuento (%s) supera el subtotal (%s)", discount.StringFixed(2), t.Subtotal.StringFixed(2))
	}
	t.FinalAmount = t.Subtotal.Sub(discount).Add(tax)
	if t.LoyaltyApplied {
		t.PointsEarned = int(t.FinalAmount.Floor().IntPart())
	}
	return t, nil
}

// settle valida el pago. amountPaid cero equivale a pago exacto.
func settle(amountPaid, finalAmount decimal.Decimal) (paid, change decimal.Decimal, err error) {
	if amountPaid.IsNegative() {
		return decimal.Zero, decimal.Zero, domain.Invalid("el monto pagado no puede ser negativo")
	}
	amountPaid = entity.RoundMoney(amountPaid)
	if amountPaid.IsZero() {
		return finalAmount, decimal.Zero, nil
	}
	if amountPaid.LessThan(finalAmount) {
		return decimal.Zero, decimal.Zero, domain.Invalid("el monto pagado (%s) no cubre el total (%s)", amountPaid.StringFixed(2), finalAmount.StringFixed(2))
	}
	return amountPaid, amountPaid.Sub(finalAmount), nil
}

func validPaymentMethod(m string) bool {
	switch m {
	case entity.PaymentCash, entity.PaymentCard, entity.PaymentTransfer:
		return true
	}
	return false
}
