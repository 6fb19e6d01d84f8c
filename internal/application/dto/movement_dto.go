package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementItemRequest línea de movimiento interno. El costo unitario NO se
// recibe: se captura del producto al momento de crear el movimiento.
type MovementItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateMovementRequest body para POST /api/movements.
type CreateMovementRequest struct {
	Date   time.Time             `json:"date"`
	Reason string                `json:"reason"` // WITHDRAWAL | CONSUMPTION
	Notes  string                `json:"notes,omitempty"`
	Items  []MovementItemRequest `json:"items"`
}

// MovementItemResponse línea de movimiento en la respuesta.
type MovementItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// MovementResponse movimiento interno con ítems.
type MovementResponse struct {
	ID        string                 `json:"id"`
	Date      time.Time              `json:"date"`
	Reason    string                 `json:"reason"`
	Notes     string                 `json:"notes,omitempty"`
	Items     []MovementItemResponse `json:"items"`
	CreatedAt time.Time              `json:"created_at"`
}
