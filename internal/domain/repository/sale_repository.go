package repository

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// SaleRepository puerto de persistencia de ventas (cabecera + ítems).
type SaleRepository interface {
	// Create persiste cabecera e ítems. El caller garantiza atomicidad vía TxRunner.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Sale, error)
	// ReplaceItems borra el conjunto de ítems y lo sustituye completo.
	ReplaceItems(ctx context.Context, saleID string, items []entity.SaleItem) error
	UpdateHeader(ctx context.Context, sale *entity.Sale) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}
