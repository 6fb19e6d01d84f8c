package dto

import "github.com/shopspring/decimal"

// CashFlowResponse flujo de caja del rango consultado (ventas sin CANCELLED).
type CashFlowResponse struct {
	From           string          `json:"from"`
	To             string          `json:"to"`
	PurchasesTotal decimal.Decimal `json:"purchases_total"`
	SalesTotal     decimal.Decimal `json:"sales_total"`
	InternalCost   decimal.Decimal `json:"internal_cost"`
	Net            decimal.Decimal `json:"net"`
}

// ValuationRowResponse valor de inventario por producto.
type ValuationRowResponse struct {
	ProductID     string          `json:"product_id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Stock         decimal.Decimal `json:"stock"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Value         decimal.Decimal `json:"value"`
}

// ValuationResponse reporte completo de valoración.
type ValuationResponse struct {
	Rows  []ValuationRowResponse `json:"rows"`
	Total decimal.Decimal        `json:"total"`
}
