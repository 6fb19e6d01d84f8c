package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusPending    = "PENDING"
	SaleStatusProcessing = "PROCESSING"
	SaleStatusCompleted  = "COMPLETED"
	SaleStatusCancelled  = "CANCELLED" // excluida de la proyección de stock y de los reportes
)

// ValidSaleStatus indica si s es un estado de venta conocido.
func ValidSaleStatus(s string) bool {
	switch s {
	case SaleStatusPending, SaleStatusProcessing, SaleStatusCompleted, SaleStatusCancelled:
		return true
	}
	return false
}

// Sale representa una venta. Sus ítems son salidas de stock; el coordinador
// transaccional (application/sales) valida disponibilidad antes de persistir.
type Sale struct {
	ID        string
	ClientID  string
	Date      time.Time
	Status    string
	Total     decimal.Decimal // siempre derivado: Σ cantidad × precio unitario
	Items     []SaleItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SaleItem ítem de venta: salida de stock de Quantity unidades al precio
// capturado en el momento de la transacción.
type SaleItem struct {
	ID            string
	SaleID        string
	ProductID     string
	Quantity      decimal.Decimal // > 0
	UnitSalePrice decimal.Decimal // >= 0
}
