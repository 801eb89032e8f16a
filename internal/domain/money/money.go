// Package money implementa el cálculo monetario de cotizaciones y facturas
// como funciones puras (servicio de dominio, sin dependencias de
// infraestructura).
//
// Todos los montos persistidos son centavos enteros; el redondeo a centavo es
// half-up en el punto de conversión:
//
//	subtotal  = Σ (precio_i * cantidad_i)
//	descuento = round(subtotal * d / 100)
//	base      = subtotal - descuento
//	iva       = round(base * t / 100)
//	total     = base + iva
package money

import (
	"github.com/jhoicas/Cotiza-api/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LineItem es una línea {precio en unidades de moneda, cantidad}.
type LineItem struct {
	Name        string
	Description string
	Price       decimal.Decimal // unidades de moneda (ej. 125.50)
	Quantity    int64
}

// Totals resultado del cálculo, todo en centavos enteros.
type Totals struct {
	SubtotalCents int64
	DiscountCents int64
	VatCents      int64
	TotalCents    int64
}

// ToCents convierte unidades de moneda a centavos con redondeo half-up.
// decimal.Round redondea half away from zero, que para montos no negativos
// equivale a half-up.
func ToCents(v decimal.Decimal) int64 {
	return v.Mul(hundred).Round(0).IntPart()
}

// FromCents convierte centavos a unidades de moneda (para presentación).
func FromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(hundred)
}

// ClampPercent acota un porcentaje al rango [0,100].
func ClampPercent(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}

// PercentOfCents calcula round(cents * pct / 100) en centavos.
func PercentOfCents(cents int64, pct decimal.Decimal) int64 {
	return decimal.NewFromInt(cents).Mul(pct).Div(hundred).Round(0).IntPart()
}

// SubtotalCents suma las líneas en centavos. Valida la lista: mínimo una
// línea, precio no negativo, cantidad >= 1.
func SubtotalCents(items []LineItem) (int64, error) {
	if len(items) == 0 {
		return 0, domain.ErrInvalidInput
	}
	var subtotal int64
	for _, it := range items {
		if it.Price.IsNegative() || it.Quantity < 1 {
			return 0, domain.ErrInvalidInput
		}
		subtotal += ToCents(it.Price) * it.Quantity
	}
	return subtotal, nil
}

// ComputeTotals calcula subtotal/descuento/IVA/total para una lista de líneas,
// un porcentaje de descuento d y una tasa de IVA t (ambos 0-100; d se acota).
//
// Invariante: TotalCents == SubtotalCents - DiscountCents + VatCents.
func ComputeTotals(items []LineItem, discountPct, vatPct decimal.Decimal) (Totals, error) {
	subtotal, err := SubtotalCents(items)
	if err != nil {
		return Totals{}, err
	}
	return RecomputeTotals(subtotal, discountPct, vatPct), nil
}

// RecomputeTotals recalcula descuento/IVA/total contra un subtotal ya conocido
// (en centavos). Se usa cuando cambian descuento o IVA de un documento
// existente: el subtotal es un snapshot congelado y no se vuelve a derivar.
func RecomputeTotals(subtotalCents int64, discountPct, vatPct decimal.Decimal) Totals {
	d := ClampPercent(discountPct)
	discount := PercentOfCents(subtotalCents, d)
	base := subtotalCents - discount
	vat := PercentOfCents(base, vatPct)
	return Totals{
		SubtotalCents: subtotalCents,
		DiscountCents: discount,
		VatCents:      vat,
		TotalCents:    base + vat,
	}
}

// RecomputeWithAmount recalcula con un descuento de monto fijo en centavos
// (acotado a [0, subtotal]); deriva el porcentaje equivalente para persistirlo.
func RecomputeWithAmount(subtotalCents, discountCents int64, vatPct decimal.Decimal) (Totals, decimal.Decimal) {
	if discountCents < 0 {
		discountCents = 0
	}
	if discountCents > subtotalCents {
		discountCents = subtotalCents
	}
	base := subtotalCents - discountCents
	vat := PercentOfCents(base, vatPct)
	pct := decimal.Zero
	if subtotalCents > 0 {
		pct = decimal.NewFromInt(discountCents).Mul(hundred).Div(decimal.NewFromInt(subtotalCents)).Round(2)
	}
	return Totals{
		SubtotalCents: subtotalCents,
		DiscountCents: discountCents,
		VatCents:      vat,
		TotalCents:    base + vat,
	}, pct
}
