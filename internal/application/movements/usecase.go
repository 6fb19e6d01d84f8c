package movements

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// UseCase maneja movimientos internos: salidas de stock sin venta (retiro del
// dueño, consumo interno). El costo unitario se captura del producto en el
// momento de la creación y no cambia después.
type UseCase struct {
	txRunner     TxRunner
	movementRepo repository.MovementRepository
	productRepo  repository.ProductRepository
}

// NewUseCase construye el caso de uso de movimientos internos.
func NewUseCase(
	txRunner TxRunner,
	movementRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, movementRepo: movementRepo, productRepo: productRepo}
}

// Create registra un movimiento interno validando la proyección de stock
// dentro de la transacción (mismas garantías que una venta: sin salidas que
// dejen stock negativo).
func (uc *UseCase) Create(ctx context.Context, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Reason != entity.MovementReasonWithdrawal && in.Reason != entity.MovementReasonConsumption {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	movement := &entity.InternalMovement{
		ID:        uuid.New().String(),
		Date:      date,
		Reason:    in.Reason,
		Notes:     in.Notes,
		CreatedAt: now,
	}

	requested := map[string]decimal.Decimal{}
	products := map[string]*entity.Product{}
	for _, item := range in.Items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if _, ok := products[item.ProductID]; !ok {
			product, err := uc.productRepo.GetByID(ctx, item.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil {
				return nil, domain.ErrNotFound
			}
			products[item.ProductID] = product
		}
		requested[item.ProductID] = requested[item.ProductID].Add(item.Quantity)
		movement.Items = append(movement.Items, entity.InternalMovementItem{
			ID:         uuid.New().String(),
			MovementID: movement.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			// costo capturado del producto al crear el movimiento
			UnitCost: products[item.ProductID].PurchasePrice,
		})
	}

	ids := make([]string, 0, len(requested))
	for id := range requested {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	err := uc.txRunner.RunMovement(ctx, func(
		movementRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		stockReader repository.StockReader,
	) error {
		if err := productRepo.LockByIDs(ctx, ids); err != nil {
			return err
		}
		for _, id := range ids {
			projected, err := stockReader.SumForProduct(ctx, id)
			if err != nil {
				return err
			}
			if requested[id].GreaterThan(projected) {
				return &domain.InsufficientStockError{
					ProductID:   id,
					ProductName: products[id].Name,
					Available:   projected,
					Requested:   requested[id],
				}
			}
		}
		return movementRepo.Create(ctx, movement)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(movement), nil
}

// Delete elimina el movimiento; el stock se restaura en la siguiente
// proyección sin contabilidad adicional.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	existing, err := uc.movementRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return uc.movementRepo.Delete(ctx, id)
}

// GetByID obtiene un movimiento con sus ítems.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.MovementResponse, error) {
	movement, err := uc.movementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(movement), nil
}

// List lista movimientos paginados.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*dto.MovementResponse, error) {
	list, err := uc.movementRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toResponse(m))
	}
	return out, nil
}

func toResponse(m *entity.InternalMovement) *dto.MovementResponse {
	resp := &dto.MovementResponse{
		ID:        m.ID,
		Date:      m.Date,
		Reason:    m.Reason,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		Items:     make([]dto.MovementItemResponse, 0, len(m.Items)),
	}
	for _, item := range m.Items {
		resp.Items = append(resp.Items, dto.MovementItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
		})
	}
	return resp
}
