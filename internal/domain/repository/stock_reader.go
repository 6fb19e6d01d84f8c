package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// StockReader proyecta el stock derivado desde el historial de ítems:
// Σ compras − Σ ventas (sin CANCELLED) − Σ movimientos internos.
// No existe campo de stock almacenado; esta lectura es la única autoridad.
type StockReader interface {
	// SumForProduct proyecta el stock actual de un producto. Un producto sin
	// movimientos proyecta 0, nunca error.
	SumForProduct(ctx context.Context, productID string) (decimal.Decimal, error)
	// SumAll proyecta el stock de todos los productos en una sola pasada por
	// cada fuente (una consulta, no una por producto).
	SumAll(ctx context.Context) (map[string]decimal.Decimal, error)
}
