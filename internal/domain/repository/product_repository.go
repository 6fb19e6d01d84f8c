package repository

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia de productos.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	// List lista productos; search filtra por nombre o código ya normalizado
	// (sin tildes, minúsculas) contra las columnas normalizadas.
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Product, error)
	// LockByIDs bloquea las filas de producto (SELECT ... FOR UPDATE) en orden
	// de id para serializar la validación de stock. Solo tiene sentido dentro
	// de una transacción.
	LockByIDs(ctx context.Context, ids []string) error
}
