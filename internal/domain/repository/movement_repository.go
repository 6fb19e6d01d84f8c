package repository

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// MovementRepository puerto de persistencia de movimientos internos.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.InternalMovement) error
	GetByID(ctx context.Context, id string) (*entity.InternalMovement, error)
	List(ctx context.Context, limit, offset int) ([]*entity.InternalMovement, error)
	Delete(ctx context.Context, id string) error
}
