package contacts

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// UseCase CRUD delgado de clientes y proveedores (referenciados por ventas y compras).
type UseCase struct {
	clientRepo   repository.ClientRepository
	supplierRepo repository.SupplierRepository
}

// NewUseCase construye el caso de uso de contactos.
func NewUseCase(clientRepo repository.ClientRepository, supplierRepo repository.SupplierRepository) *UseCase {
	return &UseCase{clientRepo: clientRepo, supplierRepo: supplierRepo}
}

// CreateClient registra un cliente.
func (uc *UseCase) CreateClient(ctx context.Context, client *entity.Client) (*entity.Client, error) {
	if client.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	client.ID = uuid.New().String()
	client.CreatedAt = now
	client.UpdatedAt = now
	if err := uc.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// GetClient obtiene un cliente por id.
func (uc *UseCase) GetClient(ctx context.Context, id string) (*entity.Client, error) {
	client, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return client, nil
}

// ListClients lista clientes paginados.
func (uc *UseCase) ListClients(ctx context.Context, limit, offset int) ([]*entity.Client, error) {
	return uc.clientRepo.List(ctx, limit, offset)
}

// UpdateClient actualiza los datos de contacto de un cliente.
func (uc *UseCase) UpdateClient(ctx context.Context, client *entity.Client) error {
	existing, err := uc.clientRepo.GetByID(ctx, client.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	client.UpdatedAt = time.Now()
	return uc.clientRepo.Update(ctx, client)
}

// DeleteClient elimina un cliente.
func (uc *UseCase) DeleteClient(ctx context.Context, id string) error {
	existing, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return uc.clientRepo.Delete(ctx, id)
}

// CreateSupplier registra un proveedor.
func (uc *UseCase) CreateSupplier(ctx context.Context, supplier *entity.Supplier) (*entity.Supplier, error) {
	if supplier.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	supplier.ID = uuid.New().String()
	supplier.CreatedAt = now
	supplier.UpdatedAt = now
	if err := uc.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// GetSupplier obtiene un proveedor por id.
func (uc *UseCase) GetSupplier(ctx context.Context, id string) (*entity.Supplier, error) {
	supplier, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	return supplier, nil
}

// ListSuppliers lista proveedores paginados.
func (uc *UseCase) ListSuppliers(ctx context.Context, limit, offset int) ([]*entity.Supplier, error) {
	return uc.supplierRepo.List(ctx, limit, offset)
}

// UpdateSupplier actualiza los datos de contacto de un proveedor.
func (uc *UseCase) UpdateSupplier(ctx context.Context, supplier *entity.Supplier) error {
	existing, err := uc.supplierRepo.GetByID(ctx, supplier.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	supplier.UpdatedAt = time.Now()
	return uc.supplierRepo.Update(ctx, supplier)
}

// DeleteSupplier elimina un proveedor.
func (uc *UseCase) DeleteSupplier(ctx context.Context, id string) error {
	existing, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return uc.supplierRepo.Delete(ctx, id)
}
