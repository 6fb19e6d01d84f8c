package entity

import "github.com/shopspring/decimal"

// CashFlowTotals totales de flujo de caja en un rango de fechas.
// Las ventas CANCELLED quedan fuera de todos los agregados.
type CashFlowTotals struct {
	PurchasesTotal decimal.Decimal // egresos por compras
	SalesTotal     decimal.Decimal // ingresos por ventas (sin CANCELLED)
	InternalCost   decimal.Decimal // costo de movimientos internos
	Net            decimal.Decimal // SalesTotal - PurchasesTotal - InternalCost
}

// ValuationRow valor de inventario de un producto: stock proyectado × costo vigente.
type ValuationRow struct {
	ProductID     string
	Code          string
	Name          string
	Stock         decimal.Decimal
	PurchasePrice decimal.Decimal
	Value         decimal.Decimal
}
