package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase representa una compra a proveedor. Sus ítems son la única entrada
// positiva de stock del sistema. Editar una compra reemplaza el conjunto
// completo de ítems, nunca ítems individuales.
type Purchase struct {
	ID         string
	SupplierID string
	Date       time.Time
	Total      decimal.Decimal // siempre derivado: Σ cantidad × precio unitario
	Items      []PurchaseItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PurchaseItem ítem de compra: entrada de stock de Quantity unidades al precio
// capturado en el momento de la transacción.
type PurchaseItem struct {
	ID                string
	PurchaseID        string
	ProductID         string
	Quantity          decimal.Decimal // > 0
	UnitPurchasePrice decimal.Decimal // >= 0, neto (sin IVA)
}
