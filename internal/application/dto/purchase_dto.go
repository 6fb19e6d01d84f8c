package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemRequest línea de compra en el body. Si UnitPriceWithIva viene y
// UnitPurchasePrice es 0, el neto se recupera con la cascada inversa usando el
// IVA de compra del producto.
type PurchaseItemRequest struct {
	ProductID         string           `json:"product_id"`
	Quantity          decimal.Decimal  `json:"quantity"`
	UnitPurchasePrice decimal.Decimal  `json:"unit_purchase_price"`
	UnitPriceWithIva  *decimal.Decimal `json:"unit_price_with_iva,omitempty"`
}

// CreatePurchaseRequest body para POST /api/purchases.
type CreatePurchaseRequest struct {
	SupplierID string                `json:"supplier_id"`
	Date       time.Time             `json:"date"`
	Items      []PurchaseItemRequest `json:"items"`
}

// UpdatePurchaseRequest body para PUT /api/purchases/:id (reemplaza ítems).
type UpdatePurchaseRequest struct {
	SupplierID string                `json:"supplier_id"`
	Date       time.Time             `json:"date"`
	Items      []PurchaseItemRequest `json:"items"`
}

// PurchaseItemResponse línea de compra en la respuesta.
type PurchaseItemResponse struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	UnitPurchasePrice decimal.Decimal `json:"unit_purchase_price"`
	Subtotal          decimal.Decimal `json:"subtotal"`
}

// PurchaseResponse compra con ítems y total derivado.
type PurchaseResponse struct {
	ID         string                 `json:"id"`
	SupplierID string                 `json:"supplier_id"`
	Date       time.Time              `json:"date"`
	Total      decimal.Decimal        `json:"total"`
	Items      []PurchaseItemResponse `json:"items"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}
