package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

var _ repository.StockReader = (*StockReader)(nil)

// StockReader proyecta el stock derivado directamente en SQL:
// Σ purchase_items − Σ sale_items (sin ventas CANCELLED) − Σ internal_movement_items.
// No hay columna de stock en ninguna tabla; esta consulta ES el stock.
// Usable con pool (catálogo) o tx (validación de ventas con filas bloqueadas).
type StockReader struct {
	q Querier
}

// NewStockReader construye el lector de stock. Pasar pool o tx (Querier).
func NewStockReader(q Querier) *StockReader {
	return &StockReader{q: q}
}

// SumForProduct proyecta el stock actual de un producto. Sin movimientos → 0, no error.
func (r *StockReader) SumForProduct(ctx context.Context, productID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(qty), 0) FROM (
			SELECT quantity AS qty
			FROM purchase_items WHERE product_id = $1
			UNION ALL
			SELECT -si.quantity
			FROM sale_items si
			JOIN sales s ON s.id = si.sale_id
			WHERE si.product_id = $1 AND s.status <> $2
			UNION ALL
			SELECT -quantity
			FROM internal_movement_items WHERE product_id = $1
		) moves`
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, query, productID, entity.SaleStatusCancelled).Scan(&total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Decimal{}, fmt.Errorf("project stock: %w", err)
	}
	return total, nil
}

// SumAll proyecta el stock de todos los productos en una sola pasada por cada
// fuente (un GROUP BY, no una consulta por producto).
func (r *StockReader) SumAll(ctx context.Context) (map[string]decimal.Decimal, error) {
	query := `
		SELECT product_id, COALESCE(SUM(qty), 0) FROM (
			SELECT product_id, quantity AS qty
			FROM purchase_items
			UNION ALL
			SELECT si.product_id, -si.quantity
			FROM sale_items si
			JOIN sales s ON s.id = si.sale_id
			WHERE s.status <> $1
			UNION ALL
			SELECT product_id, -quantity
			FROM internal_movement_items
		) moves
		GROUP BY product_id`
	rows, err := r.q.Query(ctx, query, entity.SaleStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("project stock for all: %w", err)
	}
	defer rows.Close()

	stocks := make(map[string]decimal.Decimal)
	for rows.Next() {
		var productID string
		var total decimal.Decimal
		if err := rows.Scan(&productID, &total); err != nil {
			return nil, fmt.Errorf("scan stock row: %w", err)
		}
		stocks[productID] = total
	}
	return stocks, rows.Err()
}
