package sales

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La secuencia bloquear-productos → proyectar
// stock → escribir venta debe ser atómica como unidad: es la única defensa
// contra la sobreventa bajo creación concurrente.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		stockReader repository.StockReader,
	) error) error
}
