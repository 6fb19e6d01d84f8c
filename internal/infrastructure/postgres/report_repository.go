package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas para reportes. Los agregados excluyen ventas
// CANCELLED y la valoración reutiliza la misma proyección UNION ALL del
// StockReader en vez de aritmética propia.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// CashFlow totaliza compras, ventas (sin CANCELLED) y costo de movimientos
// internos en el rango [from, to].
func (r *ReportRepo) CashFlow(ctx context.Context, from, to time.Time) (*entity.CashFlowTotals, error) {
	query := `
		SELECT
			COALESCE((SELECT SUM(total) FROM purchases WHERE date BETWEEN $1 AND $2), 0),
			COALESCE((SELECT SUM(total) FROM sales WHERE date BETWEEN $1 AND $2 AND status <> $3), 0),
			COALESCE((
				SELECT SUM(mi.quantity * mi.unit_cost)
				FROM internal_movement_items mi
				JOIN internal_movements m ON m.id = mi.movement_id
				WHERE m.date BETWEEN $1 AND $2
			), 0)`
	var totals entity.CashFlowTotals
	err := r.q.QueryRow(ctx, query, from, to, entity.SaleStatusCancelled).Scan(
		&totals.PurchasesTotal, &totals.SalesTotal, &totals.InternalCost,
	)
	if err != nil {
		return nil, fmt.Errorf("cash flow totals: %w", err)
	}
	totals.Net = totals.SalesTotal.Sub(totals.PurchasesTotal).Sub(totals.InternalCost)
	return &totals, nil
}

// InventoryValuation devuelve por producto el stock proyectado y su valor al
// costo de compra vigente.
func (r *ReportRepo) InventoryValuation(ctx context.Context) ([]*entity.ValuationRow, error) {
	query := `
		SELECT p.id, p.code, p.name, COALESCE(moves.stock, 0), p.purchase_price
		FROM products p
		LEFT JOIN (
			SELECT product_id, SUM(qty) AS stock FROM (
				SELECT product_id, quantity AS qty FROM purchase_items
				UNION ALL
				SELECT si.product_id, -si.quantity
				FROM sale_items si
				JOIN sales s ON s.id = si.sale_id
				WHERE s.status <> $1
				UNION ALL
				SELECT product_id, -quantity FROM internal_movement_items
			) m
			GROUP BY product_id
		) moves ON moves.product_id = p.id
		ORDER BY p.name`
	rows, err := r.q.Query(ctx, query, entity.SaleStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("inventory valuation: %w", err)
	}
	defer rows.Close()

	var list []*entity.ValuationRow
	for rows.Next() {
		var row entity.ValuationRow
		if err := rows.Scan(&row.ProductID, &row.Code, &row.Name, &row.Stock, &row.PurchasePrice); err != nil {
			return nil, fmt.Errorf("scan valuation row: %w", err)
		}
		row.Value = row.Stock.Mul(row.PurchasePrice).Round(2)
		list = append(list, &row)
	}
	return list, rows.Err()
}
