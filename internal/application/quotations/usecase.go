package quotations

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/application/docnum"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/pricing"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// UseCase maneja cotizaciones: creación de back-office, recepción desde la
// vitrina pública y el ciclo de estados. El total siempre es derivado y el
// número consecutivo lo entrega el asignador (una sola vez, nunca se reasigna).
type UseCase struct {
	txRunner      TxRunner
	quotationRepo repository.QuotationRepository
	productRepo   repository.ProductRepository
	allocator     *docnum.Allocator
}

// NewUseCase construye el caso de uso de cotizaciones.
func NewUseCase(
	txRunner TxRunner,
	quotationRepo repository.QuotationRepository,
	productRepo repository.ProductRepository,
	allocator *docnum.Allocator,
) *UseCase {
	return &UseCase{txRunner: txRunner, quotationRepo: quotationRepo, productRepo: productRepo, allocator: allocator}
}

// Create crea una cotización desde el back-office. Un precio unitario en 0 se
// completa con el precio de venta bruto de la cascada del producto.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateQuotationRequest) (*dto.QuotationResponse, error) {
	if in.ClientName == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	items := make([]entity.QuotationItem, 0, len(in.Items))
	for _, item := range in.Items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) || item.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		price := item.UnitPrice
		if price.IsZero() {
			product, err := uc.productRepo.GetByID(ctx, item.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil {
				return nil, domain.ErrNotFound
			}
			price = cascadeGross(product)
		}
		items = append(items, entity.QuotationItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: price,
		})
	}
	return uc.persist(ctx, in.ClientName, in.ClientEmail, in.ClientPhone, items)
}

// SubmitPublic recibe una solicitud de cotización desde la vitrina pública
// (sin autenticación): solo producto + cantidad, el precio lo fija siempre la
// cascada vigente del catálogo.
func (uc *UseCase) SubmitPublic(ctx context.Context, in dto.PublicQuotationRequest) (*dto.QuotationResponse, error) {
	if in.ClientName == "" || in.ClientEmail == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	items := make([]entity.QuotationItem, 0, len(in.Items))
	for _, item := range in.Items {
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
		items = append(items, entity.QuotationItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: cascadeGross(product),
		})
	}
	return uc.persist(ctx, in.ClientName, in.ClientEmail, in.ClientPhone, items)
}

// persist asigna número, deriva el total y guarda. Si el constraint UNIQUE del
// número detecta una colisión (red de seguridad del asignador) se reintenta
// UNA vez con un consecutivo fresco; una segunda colisión se reporta como
// ErrDuplicateDocumentNumber, nunca se ignora.
func (uc *UseCase) persist(ctx context.Context, name, email, phone string, items []entity.QuotationItem) (*dto.QuotationResponse, error) {
	now := time.Now()
	q := &entity.Quotation{
		ID:          uuid.New().String(),
		Status:      entity.QuotationStatusPending,
		ClientName:  name,
		ClientEmail: email,
		ClientPhone: phone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	total := decimal.Zero
	for i := range items {
		items[i].ID = uuid.New().String()
		items[i].QuotationID = q.ID
		total = total.Add(items[i].Quantity.Mul(items[i].UnitPrice))
	}
	q.Items = items
	q.Total = total.Round(2)

	for attempt := 0; attempt < 2; attempt++ {
		number, err := uc.allocator.NextNumber(ctx, docnum.PrefixQuotation)
		if err != nil {
			return nil, err
		}
		q.Number = number
		err = uc.txRunner.RunQuotation(ctx, func(quotationRepo repository.QuotationRepository) error {
			return quotationRepo.Create(ctx, q)
		})
		if err == nil {
			return toResponse(q), nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
	}
	return nil, domain.ErrDuplicateDocumentNumber
}

// UpdateStatus mueve la cotización en su ciclo de vida. Solo una cotización
// PENDING puede aprobarse, rechazarse o expirar; los estados finales no cambian.
func (uc *UseCase) UpdateStatus(ctx context.Context, id, status string) error {
	if !entity.ValidQuotationStatus(status) {
		return domain.ErrInvalidStatusTransition
	}
	existing, err := uc.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	if existing.Status != entity.QuotationStatusPending && existing.Status != status {
		return domain.ErrInvalidStatusTransition
	}
	return uc.quotationRepo.UpdateStatus(ctx, id, status)
}

// GetByID obtiene una cotización con sus ítems.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.QuotationResponse, error) {
	q, err := uc.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(q), nil
}

// List lista cotizaciones, opcionalmente por estado.
func (uc *UseCase) List(ctx context.Context, status string, limit, offset int) ([]*dto.QuotationResponse, error) {
	if status != "" && !entity.ValidQuotationStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.quotationRepo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.QuotationResponse, 0, len(list))
	for _, q := range list {
		out = append(out, toResponse(q))
	}
	return out, nil
}

// cascadeGross precio de venta bruto vigente del producto, derivado por la
// única cascada del sistema.
func cascadeGross(p *entity.Product) decimal.Decimal {
	return pricing.Cascade(p.PurchasePrice, p.PurchaseIvaPercent, p.UtilityPercent, p.SalesIvaPercent).SellingPriceGross
}

func toResponse(q *entity.Quotation) *dto.QuotationResponse {
	resp := &dto.QuotationResponse{
		ID:          q.ID,
		Number:      q.Number,
		Status:      q.Status,
		ClientName:  q.ClientName,
		ClientEmail: q.ClientEmail,
		ClientPhone: q.ClientPhone,
		Total:       q.Total,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
		Items:       make([]dto.QuotationItemResponse, 0, len(q.Items)),
	}
	for _, item := range q.Items {
		resp.Items = append(resp.Items, dto.QuotationItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Quantity.Mul(item.UnitPrice).Round(2),
		})
	}
	return resp
}
