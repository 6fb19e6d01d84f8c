package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// ReportRepository consultas agregadas para reportes. Los agregados excluyen
// ventas CANCELLED; la valoración de inventario reutiliza la misma proyección
// derivada que StockReader (nunca aritmética de stock propia).
type ReportRepository interface {
	CashFlow(ctx context.Context, from, to time.Time) (*entity.CashFlowTotals, error)
	InventoryValuation(ctx context.Context) ([]*entity.ValuationRow, error)
}
