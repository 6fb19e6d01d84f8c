package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cotización.
const (
	QuotationStatusPending  = "PENDING"
	QuotationStatusApproved = "APPROVED"
	QuotationStatusRejected = "REJECTED"
	QuotationStatusExpired  = "EXPIRED"
)

// ValidQuotationStatus indica si s es un estado de cotización conocido.
func ValidQuotationStatus(s string) bool {
	switch s {
	case QuotationStatusPending, QuotationStatusApproved, QuotationStatusRejected, QuotationStatusExpired:
		return true
	}
	return false
}

// Quotation representa una cotización. Number es el consecutivo legible
// (ej. COT-0001) asignado una sola vez por el asignador de números; nunca se
// reutiliza ni se reasigna. Las cotizaciones no afectan stock.
type Quotation struct {
	ID          string
	Number      string
	Status      string
	ClientName  string // datos de contacto del solicitante (vitrina pública)
	ClientEmail string
	ClientPhone string
	Total       decimal.Decimal // siempre derivado: Σ cantidad × precio unitario
	Items       []QuotationItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// QuotationItem ítem de cotización con el precio ofrecido al momento de crearla.
type QuotationItem struct {
	ID          string
	QuotationID string
	ProductID   string
	Quantity    decimal.Decimal // > 0
	UnitPrice   decimal.Decimal // >= 0
}
