package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                = errors.New("recurso no encontrado")
	ErrUserNotFound            = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists      = errors.New("el email ya está registrado")
	ErrInvalidInput            = errors.New("entrada inválida")
	ErrDuplicate               = errors.New("recurso duplicado")
	ErrUnauthorized            = errors.New("no autorizado")
	ErrForbidden               = errors.New("acceso denegado")
	ErrConflict                = errors.New("conflicto con el estado actual")
	ErrInsufficientStock       = errors.New("stock insuficiente")
	ErrDuplicateDocumentNumber = errors.New("número de documento duplicado")
	ErrInvalidStatusTransition = errors.New("transición de estado inválida")
)

// InsufficientStockError indica que una operación solicitó más unidades de las
// disponibles según la proyección de stock. Siempre nombra el producto
// ofensor con su cantidad disponible exacta para que el usuario corrija sin adivinar.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   decimal.Decimal
	Requested   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	name := e.ProductName
	if name == "" {
		name = e.ProductID
	}
	return fmt.Sprintf("Stock insuficiente para %s. Disponible: %s, Solicitado: %s",
		name, e.Available.String(), e.Requested.String())
}

// Is permite errors.Is(err, domain.ErrInsufficientStock) sobre el error enriquecido.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
