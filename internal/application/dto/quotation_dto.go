package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuotationItemRequest línea de cotización en el body de back-office.
type QuotationItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateQuotationRequest body para POST /api/quotations (back-office).
type CreateQuotationRequest struct {
	ClientName  string                 `json:"client_name"`
	ClientEmail string                 `json:"client_email,omitempty"`
	ClientPhone string                 `json:"client_phone,omitempty"`
	Items       []QuotationItemRequest `json:"items"`
}

// PublicQuotationItemRequest línea de la vitrina pública: solo producto y
// cantidad, el precio lo fija la cascada del catálogo.
type PublicQuotationItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// PublicQuotationRequest body para POST /public/quotations (sin autenticación).
type PublicQuotationRequest struct {
	ClientName  string                       `json:"client_name"`
	ClientEmail string                       `json:"client_email"`
	ClientPhone string                       `json:"client_phone,omitempty"`
	Items       []PublicQuotationItemRequest `json:"items"`
}

// UpdateQuotationStatusRequest body para PATCH /api/quotations/:id/status.
type UpdateQuotationStatusRequest struct {
	Status string `json:"status"`
}

// QuotationItemResponse línea de cotización en la respuesta.
type QuotationItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// QuotationResponse cotización con número consecutivo y total derivado.
type QuotationResponse struct {
	ID          string                  `json:"id"`
	Number      string                  `json:"number"`
	Status      string                  `json:"status"`
	ClientName  string                  `json:"client_name"`
	ClientEmail string                  `json:"client_email,omitempty"`
	ClientPhone string                  `json:"client_phone,omitempty"`
	Total       decimal.Decimal         `json:"total"`
	Items       []QuotationItemResponse `json:"items"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}
