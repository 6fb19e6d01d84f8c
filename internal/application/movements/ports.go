package movements

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD. Los
// movimientos internos también descuentan stock, así que reciben la misma
// secuencia atómica bloquear → proyectar → escribir que las ventas.
type TxRunner interface {
	RunMovement(ctx context.Context, fn func(
		movementRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		stockReader repository.StockReader,
	) error) error
}
