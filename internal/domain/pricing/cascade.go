package pricing

import "github.com/shopspring/decimal"

// Breakdown es el desglose completo de precios de un producto, derivado del
// costo de compra neto por la cascada de cuatro etapas:
// costo → IVA compra → utilidad → IVA venta.
type Breakdown struct {
	PurchasePrice        decimal.Decimal `json:"purchase_price"`
	PurchaseIvaValue     decimal.Decimal `json:"purchase_iva_value"`
	PurchasePriceWithIva decimal.Decimal `json:"purchase_price_with_iva"`
	UtilityValue         decimal.Decimal `json:"utility_value"`
	SellingPriceNet      decimal.Decimal `json:"selling_price_net"`
	SalesIvaValue        decimal.Decimal `json:"sales_iva_value"`
	SellingPriceGross    decimal.Decimal `json:"selling_price_gross"`
}

var hundred = decimal.NewFromInt(100)

// Cascade deriva el desglose de precios desde el costo de compra neto y los
// tres porcentajes. Cada etapa monetaria se redondea a 2 decimales ANTES de
// alimentar la siguiente; ese orden es parte del contrato: todos los llamadores
// (catálogo, compras, cotizaciones, vistas de detalle) deben ver exactamente
// los mismos valores. Un porcentaje de 0 es válido.
func Cascade(purchasePrice, purchaseIvaPercent, utilityPercent, salesIvaPercent decimal.Decimal) Breakdown {
	purchaseIvaValue := purchasePrice.Mul(purchaseIvaPercent).Div(hundred).Round(2)
	purchasePriceWithIva := purchasePrice.Add(purchaseIvaValue)

	utilityValue := purchasePriceWithIva.Mul(utilityPercent).Div(hundred).Round(2)
	sellingPriceNet := purchasePriceWithIva.Add(utilityValue)

	salesIvaValue := sellingPriceNet.Mul(salesIvaPercent).Div(hundred).Round(2)
	sellingPriceGross := sellingPriceNet.Add(salesIvaValue)

	return Breakdown{
		PurchasePrice:        purchasePrice,
		PurchaseIvaValue:     purchaseIvaValue,
		PurchasePriceWithIva: purchasePriceWithIva,
		UtilityValue:         utilityValue,
		SellingPriceNet:      sellingPriceNet,
		SalesIvaValue:        salesIvaValue,
		SellingPriceGross:    sellingPriceGross,
	}
}

// PurchasePriceFromWithIva recupera el costo neto cuando el usuario digita el
// total de compra CON IVA. Es la inversa de las dos primeras etapas de la
// cascada y es lossy por construcción (redondeo en ambos sentidos): ida y
// vuelta repetidas pueden derivar hasta 1 centavo por etapa, los llamadores no
// deben asumir igualdad exacta.
func PurchasePriceFromWithIva(purchasePriceWithIva, purchaseIvaPercent decimal.Decimal) decimal.Decimal {
	divisor := decimal.NewFromInt(1).Add(purchaseIvaPercent.Div(hundred))
	return purchasePriceWithIva.DivRound(divisor, 2)
}
