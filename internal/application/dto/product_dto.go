package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/domain/pricing"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Code               string          `json:"code"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	PurchasePrice      decimal.Decimal `json:"purchase_price"`
	PurchaseIvaPercent decimal.Decimal `json:"purchase_iva_percent"`
	UtilityPercent     decimal.Decimal `json:"utility_percent"`
	SalesIvaPercent    decimal.Decimal `json:"sales_iva_percent"`
	// PurchasePriceWithIva opcional: si viene y PurchasePrice es 0, el costo
	// neto se recupera con la cascada inversa.
	PurchasePriceWithIva *decimal.Decimal `json:"purchase_price_with_iva,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id. La identidad (code) no cambia.
type UpdateProductRequest struct {
	Name                 string           `json:"name"`
	Description          string           `json:"description,omitempty"`
	PurchasePrice        decimal.Decimal  `json:"purchase_price"`
	PurchaseIvaPercent   decimal.Decimal  `json:"purchase_iva_percent"`
	UtilityPercent       decimal.Decimal  `json:"utility_percent"`
	SalesIvaPercent      decimal.Decimal  `json:"sales_iva_percent"`
	PurchasePriceWithIva *decimal.Decimal `json:"purchase_price_with_iva,omitempty"`
}

// ProductResponse producto con su stock proyectado y el desglose de precios
// derivado por la cascada (nunca se calcula en la vista).
type ProductResponse struct {
	ID                 string            `json:"id"`
	Code               string            `json:"code"`
	Name               string            `json:"name"`
	Description        string            `json:"description,omitempty"`
	PurchaseIvaPercent decimal.Decimal   `json:"purchase_iva_percent"`
	UtilityPercent     decimal.Decimal   `json:"utility_percent"`
	SalesIvaPercent    decimal.Decimal   `json:"sales_iva_percent"`
	Stock              decimal.Decimal   `json:"stock"`
	Prices             pricing.Breakdown `json:"prices"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}
