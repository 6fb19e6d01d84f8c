package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// UseCase reportes de flujo de caja y valoración de inventario. Los agregados
// excluyen ventas CANCELLED y toda cifra de stock sale de la misma proyección
// derivada del resto del sistema.
type UseCase struct {
	reportRepo repository.ReportRepository
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(reportRepo repository.ReportRepository) *UseCase {
	return &UseCase{reportRepo: reportRepo}
}

// CashFlow totales de compras, ventas y consumo interno en el rango [from, to].
func (uc *UseCase) CashFlow(ctx context.Context, from, to time.Time) (*dto.CashFlowResponse, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	totals, err := uc.reportRepo.CashFlow(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.CashFlowResponse{
		From:           from.Format("2006-01-02"),
		To:             to.Format("2006-01-02"),
		PurchasesTotal: totals.PurchasesTotal.Round(2),
		SalesTotal:     totals.SalesTotal.Round(2),
		InternalCost:   totals.InternalCost.Round(2),
		Net:            totals.Net.Round(2),
	}, nil
}

// InventoryValuation stock proyectado × costo vigente, por producto.
func (uc *UseCase) InventoryValuation(ctx context.Context) (*dto.ValuationResponse, error) {
	rows, err := uc.reportRepo.InventoryValuation(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.ValuationResponse{Rows: make([]dto.ValuationRowResponse, 0, len(rows))}
	total := decimal.Zero
	for _, row := range rows {
		value := row.Value.Round(2)
		total = total.Add(value)
		resp.Rows = append(resp.Rows, dto.ValuationRowResponse{
			ProductID:     row.ProductID,
			Code:          row.Code,
			Name:          row.Name,
			Stock:         row.Stock,
			PurchasePrice: row.PurchasePrice,
			Value:         value,
		})
	}
	resp.Total = total.Round(2)
	return resp, nil
}
