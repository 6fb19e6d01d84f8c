package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestion-api/internal/domain/pricing"
)

// ──────────────────────────────────────────────────────────────────────────────
// La cascada es el único punto del sistema donde se derivan precios; estos
// tests son el vector de regresión. Si alguien cambia el orden de las etapas o
// el momento del redondeo, el fixture exacto falla de inmediato.
// ──────────────────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// TestCascade_VectorExacto valida el desglose completo para el vector conocido
// (costo 100, IVA compra 19%, utilidad 30%, IVA venta 19%).
func TestCascade_VectorExacto(t *testing.T) {
	b := pricing.Cascade(d("100"), d("19"), d("30"), d("19"))

	assert.True(t, b.PurchaseIvaValue.Equal(d("19.00")), "IVA compra debe ser 19.00, fue %s", b.PurchaseIvaValue)
	assert.True(t, b.PurchasePriceWithIva.Equal(d("119.00")), "costo con IVA debe ser 119.00, fue %s", b.PurchasePriceWithIva)
	assert.True(t, b.UtilityValue.Equal(d("35.70")), "utilidad debe ser 35.70, fue %s", b.UtilityValue)
	assert.True(t, b.SellingPriceNet.Equal(d("154.70")), "precio venta neto debe ser 154.70, fue %s", b.SellingPriceNet)
	assert.True(t, b.SalesIvaValue.Equal(d("29.39")), "IVA venta debe ser 29.39, fue %s", b.SalesIvaValue)
	assert.True(t, b.SellingPriceGross.Equal(d("184.09")), "precio venta bruto debe ser 184.09, fue %s", b.SellingPriceGross)
}

// TestCascade_RedondeoPorEtapa verifica que cada etapa redondea ANTES de
// alimentar la siguiente: el IVA venta se calcula sobre el neto ya redondeado.
func TestCascade_RedondeoPorEtapa(t *testing.T) {
	// 10.01 * 19% = 1.9019 → 1.90 (no 1.9019 arrastrado a la siguiente etapa)
	b := pricing.Cascade(d("10.01"), d("19"), d("0"), d("0"))
	assert.True(t, b.PurchaseIvaValue.Equal(d("1.90")), "el IVA de etapa debe quedar redondeado a 2 decimales, fue %s", b.PurchaseIvaValue)
	assert.True(t, b.PurchasePriceWithIva.Equal(d("11.91")), "costo con IVA debe sumar sobre el valor redondeado, fue %s", b.PurchasePriceWithIva)
}

// TestCascade_PorcentajesCero valida que 0% es entrada válida y no un caso especial.
func TestCascade_PorcentajesCero(t *testing.T) {
	b := pricing.Cascade(d("250.50"), decimal.Zero, decimal.Zero, decimal.Zero)

	assert.True(t, b.PurchaseIvaValue.IsZero(), "con 0%% el IVA compra debe ser 0")
	assert.True(t, b.SellingPriceGross.Equal(d("250.50")), "con todos los porcentajes en 0 el bruto es el costo, fue %s", b.SellingPriceGross)
}

// TestCascade_PorcentajesAltos valida porcentajes de 100% o más (válidos, no error).
func TestCascade_PorcentajesAltos(t *testing.T) {
	b := pricing.Cascade(d("100"), d("100"), d("150"), d("100"))

	assert.True(t, b.PurchasePriceWithIva.Equal(d("200.00")), "IVA compra 100%% duplica el costo, fue %s", b.PurchasePriceWithIva)
	assert.True(t, b.SellingPriceNet.Equal(d("500.00")), "utilidad 150%% sobre 200, fue %s", b.SellingPriceNet)
	assert.True(t, b.SellingPriceGross.Equal(d("1000.00")), "IVA venta 100%% duplica el neto, fue %s", b.SellingPriceGross)
}

// TestCascade_Monotonia verifica que subir cualquiera de los tres porcentajes
// nunca baja el precio de venta bruto (a costo fijo).
func TestCascade_Monotonia(t *testing.T) {
	base := d("137.43")
	percents := []decimal.Decimal{d("0"), d("5"), d("19"), d("33.3"), d("100")}

	for _, pIva := range percents {
		for _, util := range percents {
			prev := decimal.NewFromInt(-1)
			for _, sIva := range percents {
				gross := pricing.Cascade(base, pIva, util, sIva).SellingPriceGross
				assert.True(t, gross.GreaterThanOrEqual(prev),
					"subir IVA venta de %s no puede bajar el bruto (pIva=%s util=%s): %s < %s",
					sIva, pIva, util, gross, prev)
				prev = gross
			}
		}
	}
}

// TestCascade_Determinista: mismo input, mismo desglose, siempre.
func TestCascade_Determinista(t *testing.T) {
	b1 := pricing.Cascade(d("99.99"), d("19"), d("27.5"), d("19"))
	b2 := pricing.Cascade(d("99.99"), d("19"), d("27.5"), d("19"))
	assert.True(t, b1.SellingPriceGross.Equal(b2.SellingPriceGross), "la cascada debe ser determinista")
}

// ── inversa ──────────────────────────────────────────────────────────────────

// TestPurchasePriceFromWithIva_Inversa valida la recuperación del costo neto
// desde el total con IVA.
func TestPurchasePriceFromWithIva_Inversa(t *testing.T) {
	got := pricing.PurchasePriceFromWithIva(d("119.00"), d("19"))
	assert.True(t, got.Equal(d("100.00")), "119 con IVA 19%% debe volver a 100, fue %s", got)
}

// TestPurchasePriceFromWithIva_IvaCero: con 0% la inversa es identidad (sin
// división por caso especial).
func TestPurchasePriceFromWithIva_IvaCero(t *testing.T) {
	got := pricing.PurchasePriceFromWithIva(d("84.37"), decimal.Zero)
	assert.True(t, got.Equal(d("84.37")), "con IVA 0%% la inversa es identidad, fue %s", got)
}

// TestPurchasePriceFromWithIva_IdaYVueltaConDeriva documenta que el viaje
// ida-vuelta es lossy: se tolera hasta 1 centavo de deriva, nunca se asume
// igualdad exacta.
func TestPurchasePriceFromWithIva_IdaYVueltaConDeriva(t *testing.T) {
	cent := d("0.01")
	prices := []decimal.Decimal{d("10.01"), d("33.33"), d("99.99"), d("1234.56"), d("0.07")}

	for _, price := range prices {
		b := pricing.Cascade(price, d("19"), d("30"), d("19"))
		back := pricing.PurchasePriceFromWithIva(b.PurchasePriceWithIva, d("19"))

		drift := back.Sub(price).Abs()
		require.True(t, drift.LessThanOrEqual(cent),
			"la deriva ida-vuelta para %s debe ser <= 1 centavo, fue %s", price, drift)
	}
}
