package purchases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/pricing"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// UseCase maneja compras: la única entrada positiva de stock. Los ítems
// capturan el precio unitario neto al momento de la transacción; si el usuario
// digita el precio CON IVA, el neto se recupera con la cascada inversa usando
// el IVA de compra del producto.
type UseCase struct {
	txRunner     TxRunner
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
}

// NewUseCase construye el caso de uso de compras.
func NewUseCase(
	txRunner TxRunner,
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
	}
}

// Create registra una compra (cabecera + ítems, atómico).
func (uc *UseCase) Create(ctx context.Context, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.SupplierID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.resolveItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	purchase := &entity.Purchase{
		ID:         uuid.New().String(),
		SupplierID: in.SupplierID,
		Date:       date,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for i := range items {
		items[i].PurchaseID = purchase.ID
	}
	purchase.Items = items
	purchase.Total = deriveTotal(items)

	err = uc.txRunner.RunPurchase(ctx, func(purchaseRepo repository.PurchaseRepository) error {
		return purchaseRepo.Create(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(purchase), nil
}

// Update reemplaza el conjunto completo de ítems de la compra (nunca ítems
// individuales) y recalcula el total derivado.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if id == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.resolveItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	supplierID := in.SupplierID
	if supplierID == "" {
		supplierID = existing.SupplierID
	}
	date := in.Date
	if date.IsZero() {
		date = existing.Date
	}
	updated := &entity.Purchase{
		ID:         existing.ID,
		SupplierID: supplierID,
		Date:       date,
		CreatedAt:  existing.CreatedAt,
		UpdatedAt:  time.Now(),
	}
	for i := range items {
		items[i].PurchaseID = existing.ID
	}
	updated.Items = items
	updated.Total = deriveTotal(items)

	err = uc.txRunner.RunPurchase(ctx, func(purchaseRepo repository.PurchaseRepository) error {
		if err := purchaseRepo.UpdateHeader(ctx, updated); err != nil {
			return err
		}
		return purchaseRepo.ReplaceItems(ctx, existing.ID, items)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(updated), nil
}

// Delete elimina la compra y sus ítems; el stock proyectado baja solo en la
// siguiente lectura, por construcción del invariante derivado.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	existing, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return uc.purchaseRepo.Delete(ctx, id)
}

// GetByID obtiene una compra con sus ítems.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(purchase), nil
}

// List lista compras paginadas.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*dto.PurchaseResponse, error) {
	list, err := uc.purchaseRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toResponse(p))
	}
	return out, nil
}

// resolveItems valida cada línea y resuelve el precio neto: directo, o desde
// el precio con IVA vía la cascada inversa (lossy; se acepta la deriva de
// redondeo documentada en pricing).
func (uc *UseCase) resolveItems(ctx context.Context, in []dto.PurchaseItemRequest) ([]entity.PurchaseItem, error) {
	items := make([]entity.PurchaseItem, 0, len(in))
	for _, item := range in {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		price := item.UnitPurchasePrice
		if price.IsZero() && item.UnitPriceWithIva != nil {
			price = pricing.PurchasePriceFromWithIva(*item.UnitPriceWithIva, product.PurchaseIvaPercent)
		}
		if price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		items = append(items, entity.PurchaseItem{
			ID:                uuid.New().String(),
			ProductID:         item.ProductID,
			Quantity:          item.Quantity,
			UnitPurchasePrice: price,
		})
	}
	return items, nil
}

func deriveTotal(items []entity.PurchaseItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Quantity.Mul(item.UnitPurchasePrice))
	}
	return total.Round(2)
}

func toResponse(p *entity.Purchase) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:         p.ID,
		SupplierID: p.SupplierID,
		Date:       p.Date,
		Total:      p.Total,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		Items:      make([]dto.PurchaseItemResponse, 0, len(p.Items)),
	}
	for _, item := range p.Items {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			ID:                item.ID,
			ProductID:         item.ProductID,
			Quantity:          item.Quantity,
			UnitPurchasePrice: item.UnitPurchasePrice,
			Subtotal:          item.Quantity.Mul(item.UnitPurchasePrice).Round(2),
		})
	}
	return resp
}
