package sales

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

// UseCase coordina las ventas: valida la proyección de stock para cada línea y
// persiste cabecera + ítems como una sola unidad atómica. Es el único
// componente que rechaza escrituras con base en la salida del proyector.
//
// La validación corre DENTRO de la transacción, con las filas de producto
// bloqueadas (SELECT FOR UPDATE en orden de id): dos ventas concurrentes del
// mismo producto se serializan y la segunda ve el stock ya descontado.
type UseCase struct {
	txRunner    TxRunner
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
}

// NewUseCase construye el coordinador de ventas.
func NewUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		saleRepo:    saleRepo,
		productRepo: productRepo,
		clientRepo:  clientRepo,
	}
}

// CreateSale valida stock por línea y persiste la venta completa, o la rechaza
// entera con InsufficientStockError (sin ventas parciales).
func (uc *UseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.ClientID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	products, err := uc.validateItems(ctx, toItemInputs(in.Items))
	if err != nil {
		return nil, err
	}
	client, err := uc.clientRepo.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	sale := &entity.Sale{
		ID:        uuid.New().String(),
		ClientID:  in.ClientID,
		Date:      date,
		Status:    entity.SaleStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, item := range in.Items {
		sale.Items = append(sale.Items, entity.SaleItem{
			ID:            uuid.New().String(),
			SaleID:        sale.ID,
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			UnitSalePrice: item.UnitSalePrice,
		})
	}
	sale.Total = deriveTotal(sale.Items)

	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		stockReader repository.StockReader,
	) error {
		if err := uc.checkStock(ctx, productRepo, stockReader, sale.Items, nil, products); err != nil {
			return err
		}
		return saleRepo.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(sale), nil
}

// UpdateSale reemplaza el conjunto de ítems de una venta existente y revalida
// stock para las cantidades NUEVAS. La disponibilidad suma de vuelta la
// contribución previa de esta misma venta: sin ese ajuste, editar una venta
// con stock justo fallaría artificialmente.
func (uc *UseCase) UpdateSale(ctx context.Context, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	if id == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	products, err := uc.validateItems(ctx, toItemInputs(in.Items))
	if err != nil {
		return nil, err
	}

	clientID := in.ClientID
	if clientID == "" {
		clientID = existing.ClientID
	}
	date := in.Date
	if date.IsZero() {
		date = existing.Date
	}

	updated := &entity.Sale{
		ID:        existing.ID,
		ClientID:  clientID,
		Date:      date,
		Status:    existing.Status,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: time.Now(),
	}
	for _, item := range in.Items {
		updated.Items = append(updated.Items, entity.SaleItem{
			ID:            uuid.New().String(),
			SaleID:        existing.ID,
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			UnitSalePrice: item.UnitSalePrice,
		})
	}
	updated.Total = deriveTotal(updated.Items)

	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		stockReader repository.StockReader,
	) error {
		// La contribución previa se relee DENTRO de la tx: una edición
		// concurrente de la misma venta entre la lectura inicial y el bloqueo
		// dejaría el ajuste desactualizado.
		current, err := saleRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		// Una venta CANCELLED no aporta a la proyección, así que tampoco se
		// suma de vuelta.
		prior := map[string]decimal.Decimal{}
		if current.Status != entity.SaleStatusCancelled {
			for _, item := range current.Items {
				prior[item.ProductID] = prior[item.ProductID].Add(item.Quantity)
			}
		}
		updated.Status = current.Status
		if err := uc.checkStock(ctx, productRepo, stockReader, updated.Items, prior, products); err != nil {
			return err
		}
		if err := saleRepo.UpdateHeader(ctx, updated); err != nil {
			return err
		}
		return saleRepo.ReplaceItems(ctx, existing.ID, updated.Items)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(updated), nil
}

// UpdateStatus cambia el estado de una venta. Cancelar una venta devuelve su
// stock por construcción: la proyección excluye ventas CANCELLED. El camino
// inverso reincorpora las cantidades a la proyección, así que se revalida
// stock bajo bloqueo igual que en una creación.
func (uc *UseCase) UpdateStatus(ctx context.Context, id, status string) error {
	if !entity.ValidSaleStatus(status) {
		return domain.ErrInvalidStatusTransition
	}
	existing, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	if existing.Status != entity.SaleStatusCancelled || status == entity.SaleStatusCancelled {
		return uc.saleRepo.UpdateStatus(ctx, id, status)
	}

	products, err := uc.validateItems(ctx, fromSaleItems(existing.Items))
	if err != nil {
		return err
	}
	return uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		stockReader repository.StockReader,
	) error {
		current, err := saleRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if current.Status != entity.SaleStatusCancelled {
			return saleRepo.UpdateStatus(ctx, id, status)
		}
		if err := uc.checkStock(ctx, productRepo, stockReader, current.Items, nil, products); err != nil {
			return err
		}
		return saleRepo.UpdateStatus(ctx, id, status)
	})
}

// Delete elimina la venta y sus ítems del historial; el proyector recalcula el
// stock correcto en la siguiente lectura sin contabilidad adicional.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	existing, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return uc.saleRepo.Delete(ctx, id)
}

// GetSale obtiene una venta con sus ítems.
func (uc *UseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(sale), nil
}

// ListSales lista ventas, opcionalmente filtradas por estado.
func (uc *UseCase) ListSales(ctx context.Context, status string, limit, offset int) ([]*dto.SaleResponse, error) {
	if status != "" && !entity.ValidSaleStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.saleRepo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toResponse(s))
	}
	return out, nil
}

// ── internos ─────────────────────────────────────────────────────────────────

type itemInput struct {
	productID string
	quantity  decimal.Decimal
	unitPrice decimal.Decimal
}

func toItemInputs(items []dto.SaleItemRequest) []itemInput {
	out := make([]itemInput, 0, len(items))
	for _, it := range items {
		out = append(out, itemInput{productID: it.ProductID, quantity: it.Quantity, unitPrice: it.UnitSalePrice})
	}
	return out
}

func fromSaleItems(items []entity.SaleItem) []itemInput {
	out := make([]itemInput, 0, len(items))
	for _, it := range items {
		out = append(out, itemInput{productID: it.ProductID, quantity: it.Quantity, unitPrice: it.UnitSalePrice})
	}
	return out
}

// validateItems valida cantidades y precios y resuelve los productos (para
// nombrar al ofensor en InsufficientStockError). Lectura fuera de la tx.
func (uc *UseCase) validateItems(ctx context.Context, items []itemInput) (map[string]*entity.Product, error) {
	products := make(map[string]*entity.Product, len(items))
	for _, item := range items {
		if item.productID == "" || !item.quantity.GreaterThan(decimal.Zero) || item.unitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if _, seen := products[item.productID]; seen {
			continue
		}
		product, err := uc.productRepo.GetByID(ctx, item.productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		products[item.productID] = product
	}
	return products, nil
}

// checkStock bloquea las filas de producto y compara lo solicitado (agregado
// por producto, por si la venta repite líneas) contra la proyección más la
// contribución previa de la propia venta. Debe llamarse dentro de la tx.
func (uc *UseCase) checkStock(
	ctx context.Context,
	productRepo repository.ProductRepository,
	stockReader repository.StockReader,
	items []entity.SaleItem,
	prior map[string]decimal.Decimal,
	products map[string]*entity.Product,
) error {
	requested := map[string]decimal.Decimal{}
	for _, item := range items {
		requested[item.ProductID] = requested[item.ProductID].Add(item.Quantity)
	}
	ids := make([]string, 0, len(requested))
	for id := range requested {
		ids = append(ids, id)
	}
	for id := range prior {
		if _, ok := requested[id]; !ok {
			ids = append(ids, id)
		}
	}
	// Orden estable de bloqueo para que dos ventas concurrentes no se
	// interbloqueen al cruzar productos.
	sort.Strings(ids)
	if err := productRepo.LockByIDs(ctx, ids); err != nil {
		return err
	}

	for _, id := range ids {
		req, ok := requested[id]
		if !ok {
			continue
		}
		projected, err := stockReader.SumForProduct(ctx, id)
		if err != nil {
			return err
		}
		available := projected.Add(prior[id])
		if req.GreaterThan(available) {
			name := id
			if p := products[id]; p != nil {
				name = p.Name
			}
			return &domain.InsufficientStockError{
				ProductID:   id,
				ProductName: name,
				Available:   available,
				Requested:   req,
			}
		}
	}
	return nil
}

// deriveTotal aplica la regla única de totales: Σ cantidad × precio unitario,
// redondeado a 2 decimales solo en la frontera de almacenamiento.
func deriveTotal(items []entity.SaleItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Quantity.Mul(item.UnitSalePrice))
	}
	return total.Round(2)
}

func toResponse(sale *entity.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:        sale.ID,
		ClientID:  sale.ClientID,
		Date:      sale.Date,
		Status:    sale.Status,
		Total:     sale.Total,
		CreatedAt: sale.CreatedAt,
		UpdatedAt: sale.UpdatedAt,
		Items:     make([]dto.SaleItemResponse, 0, len(sale.Items)),
	}
	for _, item := range sale.Items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:            item.ID,
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			UnitSalePrice: item.UnitSalePrice,
			Subtotal:      item.Quantity.Mul(item.UnitSalePrice).Round(2),
		})
	}
	return resp
}
