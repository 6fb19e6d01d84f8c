package repository

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// PurchaseRepository puerto de persistencia de compras (cabecera + ítems).
type PurchaseRepository interface {
	// Create persiste cabecera e ítems. El caller garantiza atomicidad vía TxRunner.
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Purchase, error)
	// ReplaceItems borra el conjunto de ítems y lo sustituye completo
	// (las ediciones nunca tocan ítems individuales).
	ReplaceItems(ctx context.Context, purchaseID string, items []entity.PurchaseItem) error
	UpdateHeader(ctx context.Context, purchase *entity.Purchase) error
	Delete(ctx context.Context, id string) error
}
