package stock

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// Projector calcula el stock derivado bajo demanda. Es puro y sin estado: cada
// lectura recorre el historial de ítems (compras − ventas − movimientos
// internos) a través del StockReader. Nunca se cachea un valor entre requests;
// la frescura de esta proyección es lo que evita sobreventas y precios viejos.
type Projector struct {
	reader repository.StockReader
}

// NewProjector construye el proyector sobre cualquier StockReader
// (pool para lecturas de catálogo, tx para validaciones de venta).
func NewProjector(reader repository.StockReader) *Projector {
	return &Projector{reader: reader}
}

// CurrentStock proyecta el stock actual de un producto. Un productID sin
// movimientos (o desconocido) proyecta 0; no es un error.
func (p *Projector) CurrentStock(ctx context.Context, productID string) (decimal.Decimal, error) {
	return p.reader.SumForProduct(ctx, productID)
}

// CurrentStockForAll proyecta el stock de todos los productos en una sola
// pasada por cada colección fuente, para las vistas de catálogo e inventario.
func (p *Projector) CurrentStockForAll(ctx context.Context) (map[string]decimal.Decimal, error) {
	return p.reader.SumAll(ctx)
}
