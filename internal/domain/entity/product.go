package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// El stock NUNCA se guarda aquí: se proyecta sumando los ítems de compras,
// ventas y movimientos internos (ver application/stock). Los cuatro parámetros
// de precio alimentan la cascada (pricing.Cascade); cambiarlos no altera los
// precios capturados en documentos históricos.
type Product struct {
	ID                 string
	Code               string // código único
	Name               string
	Description        string
	PurchasePrice      decimal.Decimal // costo unitario neto (sin IVA)
	PurchaseIvaPercent decimal.Decimal // IVA compra, porcentaje (19 = 19%)
	UtilityPercent     decimal.Decimal // margen de utilidad, porcentaje
	SalesIvaPercent    decimal.Decimal // IVA venta, porcentaje
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
