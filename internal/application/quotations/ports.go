package quotations

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con el
// repositorio de cotizaciones atado a esa tx (cabecera + ítems atómicos).
type TxRunner interface {
	RunQuotation(ctx context.Context, fn func(
		quotationRepo repository.QuotationRepository,
	) error) error
}
