package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Motivos de movimiento interno.
const (
	MovementReasonWithdrawal  = "WITHDRAWAL"  // retiro del dueño
	MovementReasonConsumption = "CONSUMPTION" // consumo interno
)

// InternalMovement representa una salida de stock sin venta asociada
// (retiro del dueño o consumo interno). Siempre disminuye stock y nunca
// genera ingreso.
type InternalMovement struct {
	ID        string
	Date      time.Time
	Reason    string
	Notes     string
	Items     []InternalMovementItem
	CreatedAt time.Time
}

// InternalMovementItem ítem de movimiento interno. UnitCost se captura del
// producto al momento de crear el movimiento (PurchasePrice vigente).
type InternalMovementItem struct {
	ID         string
	MovementID string
	ProductID  string
	Quantity   decimal.Decimal // > 0, siempre salida
	UnitCost   decimal.Decimal
}
