package purchases_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/purchases"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: las compras son las entradas del libro; la proyección de
// un producto aquí es simplemente la suma de sus ítems de compra.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	txMu      sync.Mutex
	products  map[string]*entity.Product
	suppliers map[string]*entity.Supplier
	purchases map[string]*entity.Purchase
}

func newMemStore() *memStore {
	return &memStore{
		products:  map[string]*entity.Product{},
		suppliers: map[string]*entity.Supplier{},
		purchases: map[string]*entity.Purchase{},
	}
}

// projection deriva el stock aportado por compras.
func (s *memStore) projection(productID string) decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.purchases {
		for _, item := range p.Items {
			if item.ProductID == productID {
				total = total.Add(item.Quantity)
			}
		}
	}
	return total
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(ctx context.Context, p *entity.Product) error { return nil }
func (r *memProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.products[id], nil
}
func (r *memProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) Update(ctx context.Context, p *entity.Product) error { return nil }
func (r *memProductRepo) Delete(ctx context.Context, id string) error         { return nil }
func (r *memProductRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) LockByIDs(ctx context.Context, ids []string) error { return nil }

type memSupplierRepo struct{ s *memStore }

func (r *memSupplierRepo) Create(ctx context.Context, supplier *entity.Supplier) error { return nil }
func (r *memSupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.suppliers[id], nil
}
func (r *memSupplierRepo) List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error) {
	return nil, nil
}
func (r *memSupplierRepo) Update(ctx context.Context, supplier *entity.Supplier) error { return nil }
func (r *memSupplierRepo) Delete(ctx context.Context, id string) error                 { return nil }

type memPurchaseRepo struct{ s *memStore }

func (r *memPurchaseRepo) Create(ctx context.Context, purchase *entity.Purchase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *purchase
	cp.Items = append([]entity.PurchaseItem(nil), purchase.Items...)
	r.s.purchases[purchase.ID] = &cp
	return nil
}
func (r *memPurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.purchases[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.Items = append([]entity.PurchaseItem(nil), p.Items...)
	return &cp, nil
}
func (r *memPurchaseRepo) List(ctx context.Context, limit, offset int) ([]*entity.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Purchase
	for _, p := range r.s.purchases {
		out = append(out, p)
	}
	return out, nil
}
func (r *memPurchaseRepo) ReplaceItems(ctx context.Context, purchaseID string, items []entity.PurchaseItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.purchases[purchaseID].Items = append([]entity.PurchaseItem(nil), items...)
	return nil
}
func (r *memPurchaseRepo) UpdateHeader(ctx context.Context, purchase *entity.Purchase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing := r.s.purchases[purchase.ID]
	existing.SupplierID = purchase.SupplierID
	existing.Date = purchase.Date
	existing.Total = purchase.Total
	existing.UpdatedAt = purchase.UpdatedAt
	return nil
}
func (r *memPurchaseRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.purchases, id)
	return nil
}

type memTxRunner struct{ s *memStore }

func (t *memTxRunner) RunPurchase(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()
	return fn(&memPurchaseRepo{t.s})
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func newPurchaseUseCase(s *memStore) *purchases.UseCase {
	s.suppliers["prov-1"] = &entity.Supplier{ID: "prov-1", Name: "Proveedor Uno"}
	return purchases.NewUseCase(&memTxRunner{s}, &memPurchaseRepo{s}, &memProductRepo{s}, &memSupplierRepo{s})
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_DerivaElTotal(t *testing.T) {
	store := newMemStore()
	store.products["p1"] = &entity.Product{ID: "p1", Name: "Café"}
	store.products["p2"] = &entity.Product{ID: "p2", Name: "Azúcar"}
	uc := newPurchaseUseCase(store)

	out, err := uc.Create(context.Background(), dto.CreatePurchaseRequest{
		SupplierID: "prov-1",
		Items: []dto.PurchaseItemRequest{
			{ProductID: "p1", Quantity: d("4"), UnitPurchasePrice: d("25.50")},
			{ProductID: "p2", Quantity: d("2"), UnitPurchasePrice: d("10")},
		},
	})
	require.NoError(t, err)
	assert.True(t, out.Total.Equal(d("122.00")), "total derivado: 4×25.50 + 2×10 = 122.00, got %s", out.Total)
	assert.True(t, store.projection("p1").Equal(d("4")), "la compra es la entrada de stock")
	assert.True(t, store.projection("p2").Equal(d("2")))
}

func TestCreate_PrecioConIvaUsaLaCascadaInversa(t *testing.T) {
	// El usuario digita 119 CON IVA (19%): el ítem guarda el neto 100.
	store := newMemStore()
	store.products["p1"] = &entity.Product{ID: "p1", Name: "Café", PurchaseIvaPercent: d("19")}
	uc := newPurchaseUseCase(store)

	withIva := d("119")
	out, err := uc.Create(context.Background(), dto.CreatePurchaseRequest{
		SupplierID: "prov-1",
		Items: []dto.PurchaseItemRequest{
			{ProductID: "p1", Quantity: d("1"), UnitPriceWithIva: &withIva},
		},
	})
	require.NoError(t, err)
	assert.True(t, out.Items[0].UnitPurchasePrice.Equal(d("100")),
		"119 / 1.19 = 100, got %s", out.Items[0].UnitPurchasePrice)
	assert.True(t, out.Total.Equal(d("100.00")))
}

func TestCreate_ValidaEntrada(t *testing.T) {
	store := newMemStore()
	store.products["p1"] = &entity.Product{ID: "p1", Name: "Café"}
	uc := newPurchaseUseCase(store)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreatePurchaseRequest{SupplierID: "", Items: []dto.PurchaseItemRequest{
		{ProductID: "p1", Quantity: d("1"), UnitPurchasePrice: d("10")},
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin proveedor")

	_, err = uc.Create(ctx, dto.CreatePurchaseRequest{SupplierID: "prov-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin ítems")

	_, err = uc.Create(ctx, dto.CreatePurchaseRequest{SupplierID: "prov-1", Items: []dto.PurchaseItemRequest{
		{ProductID: "p1", Quantity: d("0"), UnitPurchasePrice: d("10")},
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = uc.Create(ctx, dto.CreatePurchaseRequest{SupplierID: "no-existe", Items: []dto.PurchaseItemRequest{
		{ProductID: "p1", Quantity: d("1"), UnitPurchasePrice: d("10")},
	}})
	assert.ErrorIs(t, err, domain.ErrNotFound, "proveedor desconocido")

	_, err = uc.Create(ctx, dto.CreatePurchaseRequest{SupplierID: "prov-1", Items: []dto.PurchaseItemRequest{
		{ProductID: "no-existe", Quantity: d("1"), UnitPurchasePrice: d("10")},
	}})
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto desconocido")
}

func TestUpdate_ReemplazaItemsYRecalculaElTotal(t *testing.T) {
	store := newMemStore()
	store.products["p1"] = &entity.Product{ID: "p1", Name: "Café"}
	store.products["p2"] = &entity.Product{ID: "p2", Name: "Azúcar"}
	uc := newPurchaseUseCase(store)
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreatePurchaseRequest{
		SupplierID: "prov-1",
		Items: []dto.PurchaseItemRequest{
			{ProductID: "p1", Quantity: d("5"), UnitPurchasePrice: d("10")},
		},
	})
	require.NoError(t, err)
	require.True(t, store.projection("p1").Equal(d("5")))

	out, err := uc.Update(ctx, created.ID, dto.UpdatePurchaseRequest{
		Items: []dto.PurchaseItemRequest{
			{ProductID: "p2", Quantity: d("3"), UnitPurchasePrice: d("7")},
		},
	})
	require.NoError(t, err)
	assert.True(t, out.Total.Equal(d("21.00")), "el total se recalcula del conjunto nuevo")
	assert.True(t, store.projection("p1").Equal(d("0")), "los ítems viejos salen del historial")
	assert.True(t, store.projection("p2").Equal(d("3")))
}

func TestDelete_RevierteLaProyeccion(t *testing.T) {
	store := newMemStore()
	store.products["p1"] = &entity.Product{ID: "p1", Name: "Café"}
	uc := newPurchaseUseCase(store)
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreatePurchaseRequest{
		SupplierID: "prov-1",
		Items: []dto.PurchaseItemRequest{
			{ProductID: "p1", Quantity: d("5"), UnitPurchasePrice: d("10")},
		},
	})
	require.NoError(t, err)
	require.True(t, store.projection("p1").Equal(d("5")))

	require.NoError(t, uc.Delete(ctx, created.ID))
	assert.True(t, store.projection("p1").Equal(d("0")),
		"borrar la compra elimina su entrada del historial")

	err = uc.Delete(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
