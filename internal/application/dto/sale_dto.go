package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta en el body.
type SaleItemRequest struct {
	ProductID     string          `json:"product_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitSalePrice decimal.Decimal `json:"unit_sale_price"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	ClientID string            `json:"client_id"`
	Date     time.Time         `json:"date"`
	Items    []SaleItemRequest `json:"items"`
}

// UpdateSaleRequest body para PUT /api/sales/:id. Reemplaza el conjunto
// completo de ítems; la disponibilidad se revalida sumando de vuelta las
// cantidades previas de esta misma venta.
type UpdateSaleRequest struct {
	ClientID string            `json:"client_id"`
	Date     time.Time         `json:"date"`
	Items    []SaleItemRequest `json:"items"`
}

// UpdateSaleStatusRequest body para PATCH /api/sales/:id/status.
type UpdateSaleStatusRequest struct {
	Status string `json:"status"`
}

// SaleItemResponse línea de venta en la respuesta.
type SaleItemResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitSalePrice decimal.Decimal `json:"unit_sale_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta con ítems y total derivado.
type SaleResponse struct {
	ID        string             `json:"id"`
	ClientID  string             `json:"client_id"`
	Date      time.Time          `json:"date"`
	Status    string             `json:"status"`
	Total     decimal.Decimal    `json:"total"`
	Items     []SaleItemResponse `json:"items"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// StockErrorResponse cuerpo 409 cuando la proyección no alcanza para la
// cantidad solicitada. Message conserva el formato que la UI muestra tal cual.
type StockErrorResponse struct {
	Code      string          `json:"code"`
	Message   string          `json:"message"`
	ProductID string          `json:"product_id"`
	Available decimal.Decimal `json:"available"`
	Requested decimal.Decimal `json:"requested"`
}
