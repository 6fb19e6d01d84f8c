package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/stock"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/pricing"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/jhoicas/Gestion-api/pkg/normalize"
)

// UseCase maneja el catálogo: CRUD de productos y las vistas de inventario.
// Toda vista sale de aquí con el stock proyectado y el desglose de la cascada;
// ningún llamador hace su propia aritmética de stock ni de precios.
type UseCase struct {
	productRepo repository.ProductRepository
	projector   *stock.Projector
}

// NewUseCase construye el caso de uso de catálogo.
func NewUseCase(productRepo repository.ProductRepository, projector *stock.Projector) *UseCase {
	return &UseCase{productRepo: productRepo, projector: projector}
}

// Create registra un producto con sus cuatro parámetros de precio.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	price, err := resolvePurchasePrice(in.PurchasePrice, in.PurchasePriceWithIva, in.PurchaseIvaPercent)
	if err != nil {
		return nil, err
	}
	if anyNegative(in.PurchaseIvaPercent, in.UtilityPercent, in.SalesIvaPercent) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.productRepo.GetByCode(ctx, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:                 uuid.New().String(),
		Code:               in.Code,
		Name:               in.Name,
		Description:        in.Description,
		PurchasePrice:      price,
		PurchaseIvaPercent: in.PurchaseIvaPercent,
		UtilityPercent:     in.UtilityPercent,
		SalesIvaPercent:    in.SalesIvaPercent,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return uc.toResponse(product, decimal.Zero), nil
}

// Update cambia nombre, descripción y parámetros de precio. La identidad
// (id, code) es inmutable y los documentos históricos conservan sus precios
// capturados: cambiar la cascada solo afecta lecturas futuras.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	price, err := resolvePurchasePrice(in.PurchasePrice, in.PurchasePriceWithIva, in.PurchaseIvaPercent)
	if err != nil {
		return nil, err
	}
	if in.Name == "" || anyNegative(in.PurchaseIvaPercent, in.UtilityPercent, in.SalesIvaPercent) {
		return nil, domain.ErrInvalidInput
	}

	product.Name = in.Name
	product.Description = in.Description
	product.PurchasePrice = price
	product.PurchaseIvaPercent = in.PurchaseIvaPercent
	product.UtilityPercent = in.UtilityPercent
	product.SalesIvaPercent = in.SalesIvaPercent
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	current, err := uc.projector.CurrentStock(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(product, current), nil
}

// GetByID obtiene un producto con stock proyectado y desglose de precios.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	current, err := uc.projector.CurrentStock(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(product, current), nil
}

// List lista el catálogo con búsqueda insensible a tildes y mayúsculas.
// El stock de toda la página sale de UNA proyección batcheada, no de una
// consulta por producto.
func (uc *UseCase) List(ctx context.Context, search string, limit, offset int) ([]*dto.ProductResponse, error) {
	products, err := uc.productRepo.List(ctx, normalize.Fold(search), limit, offset)
	if err != nil {
		return nil, err
	}
	stocks, err := uc.projector.CurrentStockForAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, uc.toResponse(p, stocks[p.ID]))
	}
	return out, nil
}

// Delete elimina un producto sin historial de movimientos.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	current, err := uc.projector.CurrentStock(ctx, id)
	if err != nil {
		return err
	}
	if !current.IsZero() {
		return domain.ErrConflict // con historial de stock no se borra, se deja de vender
	}
	return uc.productRepo.Delete(ctx, id)
}

func resolvePurchasePrice(price decimal.Decimal, withIva *decimal.Decimal, ivaPercent decimal.Decimal) (decimal.Decimal, error) {
	if price.IsZero() && withIva != nil {
		price = pricing.PurchasePriceFromWithIva(*withIva, ivaPercent)
	}
	if price.LessThan(decimal.Zero) {
		return decimal.Decimal{}, domain.ErrInvalidInput
	}
	return price, nil
}

func anyNegative(values ...decimal.Decimal) bool {
	for _, v := range values {
		if v.LessThan(decimal.Zero) {
			return true
		}
	}
	return false
}

func (uc *UseCase) toResponse(p *entity.Product, current decimal.Decimal) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                 p.ID,
		Code:               p.Code,
		Name:               p.Name,
		Description:        p.Description,
		PurchaseIvaPercent: p.PurchaseIvaPercent,
		UtilityPercent:     p.UtilityPercent,
		SalesIvaPercent:    p.SalesIvaPercent,
		Stock:              current,
		Prices:             pricing.Cascade(p.PurchasePrice, p.PurchaseIvaPercent, p.UtilityPercent, p.SalesIvaPercent),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
