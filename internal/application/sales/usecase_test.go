package sales_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/sales"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: un libro de movimientos (entradas por compras, salidas por
// ventas) del que el stock SIEMPRE se deriva, igual que en la proyección SQL.
// El TxRunner serializa las transacciones con un mutex, emulando el SELECT FOR
// UPDATE sobre las filas de producto.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu       sync.Mutex
	txMu     sync.Mutex
	products map[string]*entity.Product
	clients  map[string]*entity.Client
	entries  map[string]decimal.Decimal // entradas acumuladas por compras
	sales    map[string]*entity.Sale
}

func newMemStore() *memStore {
	return &memStore{
		products: map[string]*entity.Product{},
		clients:  map[string]*entity.Client{},
		entries:  map[string]decimal.Decimal{},
		sales:    map[string]*entity.Sale{},
	}
}

func (s *memStore) addProduct(id, name string, initialStock decimal.Decimal) {
	s.products[id] = &entity.Product{ID: id, Code: id, Name: name}
	s.entries[id] = initialStock
}

// projection deriva el stock: entradas − salidas de ventas no canceladas.
func (s *memStore) projection(productID string) decimal.Decimal {
	total := s.entries[productID]
	for _, sale := range s.sales {
		if sale.Status == entity.SaleStatusCancelled {
			continue
		}
		for _, item := range sale.Items {
			if item.ProductID == productID {
				total = total.Sub(item.Quantity)
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
func (r *memProductRepo) LockByIDs(ctx context.Context, ids []string) error {
	// la serialización la da el mutex del TxRunner
	return nil
}

type memSaleRepo struct{ s *memStore }

func (r *memSaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *sale
	cp.Items = append([]entity.SaleItem(nil), sale.Items...)
	r.s.sales[sale.ID] = &cp
	return nil
}
func (r *memSaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *sale
	cp.Items = append([]entity.SaleItem(nil), sale.Items...)
	return &cp, nil
}
func (r *memSaleRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Sale
	for _, sale := range r.s.sales {
		if status == "" || sale.Status == status {
			out = append(out, sale)
		}
	}
	return out, nil
}
func (r *memSaleRepo) ReplaceItems(ctx context.Context, saleID string, items []entity.SaleItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sales[saleID].Items = append([]entity.SaleItem(nil), items...)
	return nil
}
func (r *memSaleRepo) UpdateHeader(ctx context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing := r.s.sales[sale.ID]
	existing.ClientID = sale.ClientID
	existing.Date = sale.Date
	existing.Status = sale.Status
	existing.Total = sale.Total
	existing.UpdatedAt = sale.UpdatedAt
	return nil
}
func (r *memSaleRepo) UpdateStatus(ctx context.Context, id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sales[id].Status = status
	return nil
}
func (r *memSaleRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.sales, id)
	return nil
}

type memStockReader struct{ s *memStore }

func (r *memStockReader) SumForProduct(ctx context.Context, productID string) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.projection(productID), nil
}
func (r *memStockReader) SumAll(ctx context.Context) (map[string]decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]decimal.Decimal{}
	for id := range r.s.products {
		out[id] = r.s.projection(id)
	}
	return out, nil
}

type memClientRepo struct{ s *memStore }

func (r *memClientRepo) Create(ctx context.Context, c *entity.Client) error { return nil }
func (r *memClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	return r.s.clients[id], nil
}
func (r *memClientRepo) List(ctx context.Context, limit, offset int) ([]*entity.Client, error) {
	return nil, nil
}
func (r *memClientRepo) Update(ctx context.Context, c *entity.Client) error { return nil }
func (r *memClientRepo) Delete(ctx context.Context, id string) error        { return nil }

type memTxRunner struct {
	s *memStore
	// beforeTx corre una sola vez antes de la siguiente "transacción", para
	// simular una escritura concurrente ya comprometida.
	beforeTx func()
}

func (t *memTxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	stockReader repository.StockReader,
) error) error {
	if t.beforeTx != nil {
		hook := t.beforeTx
		t.beforeTx = nil
		hook()
	}
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()
	return fn(&memSaleRepo{t.s}, &memProductRepo{t.s}, &memStockReader{t.s})
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func newSaleUseCase(s *memStore) *sales.UseCase {
	uc, _ := newSaleUseCaseWithRunner(s)
	return uc
}

func newSaleUseCaseWithRunner(s *memStore) (*sales.UseCase, *memTxRunner) {
	s.clients["cliente-1"] = &entity.Client{ID: "cliente-1", Name: "Cliente Uno"}
	runner := &memTxRunner{s: s}
	return sales.NewUseCase(runner, &memSaleRepo{s}, &memProductRepo{s}, &memClientRepo{s}), runner
}

func saleRequest(items ...dto.SaleItemRequest) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{ClientID: "cliente-1", Items: items}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_DescuentaDeLaProyeccion(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", "Café Premium", d("10"))
	uc := newSaleUseCase(store)

	out, err := uc.CreateSale(context.Background(), saleRequest(
		dto.SaleItemRequest{ProductID: "p1", Quantity: d("4"), UnitSalePrice: d("25.50")},
	))
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusPending, out.Status)
	assert.True(t, out.Total.Equal(d("102.00")), "total derivado: 4 × 25.50 = 102.00, got %s", out.Total)

	assert.True(t, store.projection("p1").Equal(d("6")), "tras vender 4 de 10 deben quedar 6")
}

func TestCreateSale_StockInsuficiente_Rechaza(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", "Café Premium", d("6"))
	uc := newSaleUseCase(store)

	_, err := uc.CreateSale(context.Background(), saleRequest(
		dto.SaleItemRequest{ProductID: "p1", Quantity: d("7"), UnitSalePrice: d("25.50")},
	))
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "p1", stockErr.ProductID)
	assert.True(t, stockErr.Available.Equal(d("6")))
	assert.True(t, stockErr.Requested.Equal(d("7")))
	assert.Equal(t, "Stock insuficiente para Café Premium. Disponible: 6, Solicitado: 7", err.Error())

	assert.Empty(t, store.sales, "una venta rechazada no deja nada persistido")
}

func TestCreateSale_SinVentasParciales(t *testing.T) {
	// Dos líneas: la primera alcanza, la segunda no. No debe persistirse NADA.
	store := newMemStore()
	store.addProduct("p1", "Café", d("10"))
	store.addProduct("p2", "Azúcar", d("1"))
	uc := newSaleUseCase(store)

	_, err := uc.CreateSale(context.Background(), saleRequest(
		dto.SaleItemRequest{ProductID: "p1", Quantity: d("2"), UnitSalePrice: d("10")},
		dto.SaleItemRequest{ProductID: "p2", Quantity: d("5"), UnitSalePrice: d("3")},
	))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, store.sales)
	assert.True(t, store.projection("p1").Equal(d("10")), "el stock de p1 no debe haberse tocado")
}

func TestCreateSale_LineasRepetidasSeAgreganPorProducto(t *testing.T) {
	// 3 + 3 del mismo producto con stock 5: el agregado (6) debe rechazarse
	// aunque cada línea individual quepa.
	store := newMemStore()
	store.addProduct("p1", "Café", d("5"))
	uc := newSaleUseCase(store)

	_, err := uc.CreateSale(context.Background(), saleRequest(
		dto.SaleItemRequest{ProductID: "p1", Quantity: d("3"), UnitSalePrice: d("10")},
		dto.SaleItemRequest{ProductID: "p1", Quantity: d("3"), UnitSalePrice: d("10")},
	))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.True(t, stockErr.Requested.Equal(d("6")), "lo solicitado se agrega por producto")
}

func TestCreateSale_ValidaEntrada(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", "Café", d("10"))
	uc := newSaleUseCase(store)
	ctx := context.Background()

	_, err := uc.CreateSale(ctx, dto.CreateSaleRequest{ClientID: "", Items: []dto.SaleItemRequest{
		{ProductID: "p1", Quantity: d("1"), UnitSalePrice: d("10")},
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin cliente")

	_, err = uc.CreateSale(ctx, saleRequest())
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin ítems")

	_, err = uc.CreateSale(ctx, saleRequest(
		dto.SaleItemRequest{ProductID: "p1", Quantity: d("0"), UnitSalePrice: d("10")},
	))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = uc.CreateSale(ctx, saleRequest(
		dto.SaleItemRequest{ProductID: "p1", Quantity: d("1"), UnitSalePrice: d("-1")},
	))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio negativo")

	_, err = uc.CreateSale(ctx, saleRequest(
		dto.SaleItemRequest{ProductID: "no-existe", Quantity: d("1"), UnitSalePrice: d("10")},
	))
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto desconocido")
}

func TestUpdateSale_SumaDeVueltaLaContribucionPrevia(t *testing.T) {
	// Entradas 12, dos ventas de 5 → proyección 2. Editar la primera venta a 7
	// debe pasar (disponible = 2 + 5 previos = 7); editarla a 10 debe fallar
	// reportando disponible 7.
	store := newMemStore()
	store.addProduct("p1", "Café", d("12"))
	uc := newSaleUseCase(store)
	ctx := context.Background()

	first, err := uc.CreateSale(ctx, saleRequest(
		dto.SaleItemRequest{ProductID: "p1", Quantity: d("5"), UnitSalePrice: d("10")},
	))
	require.NoError(t, err)
	_, err = uc.CreateSale(ctx, saleRequest(
		dto.SaleItemRequest{ProductID: "p1", Quantity: d("5"), UnitSalePrice: d("10")},
	))
	require.NoError(t, err)
	require.True(t, store.projection("p1").Equal(d("2")))

	_, err = uc.UpdateSale(ctx, first.ID, dto.UpdateSaleRequest{Items: []dto.SaleItemRequest{
		{ProductID: "p1", Quantity: d("7"), UnitSalePrice: d("10")},
	}})
	require.NoError(t, err, "editar 5 → 7 cabe porque los 5 previos se suman de vuelta")
	assert.True(t, store.projection("p1").Equal(d("0")))

	_, err = uc.UpdateSale(ctx, first.ID, dto.UpdateSaleRequest{Items: []dto.SaleItemRequest{
		{ProductID: "p1", Quantity: d("10"), UnitSalePrice: d("10")},
	}})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.True(t, stockErr.Available.Equal(d("7")), "disponible = proyección 0 + 7 previos")
	assert.True(t, store.projection("p1").Equal(d("0")), "la edición fallida no cambia nada")
}

func TestUpdateSale_VentaCanceladaNoSumaDeVuelta(t *testing.T) {
	// Una venta CANCELLED no aporta a la proyección, así que su contribución
	// previa tampoco se suma al disponible al editarla.
	store := newMemStore()
	store.addProduct("p1", "Café", d("5"))
	uc := newSaleUseCase(store)
	ctx := context.Background()

	sale, err := uc.CreateSale(ctx, saleRequest(
		dto.SaleItemRequest{ProductID: "p1", Quantity: d("5"), UnitSalePrice: d("10")},
	))
	require.NoError(t, err)
	require.NoError(t, uc.UpdateStatus(ctx, sale.ID, entity.SaleStatusCancelled))
	require.True(t, store.projection("p1").Equal(d("5")), "cancelar devuelve el stock")

	_, err = uc.UpdateSale(ctx, sale.ID, dto.UpdateSaleRequest{Items: []dto.SaleItemRequest{
		{ProductID: "p1", Quantity: d("6"), UnitSalePrice: d("10")},
	}})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.True(t, stockErr.Available.Equal(d("5")), "sin ajuste previo: la venta está cancelada")
}

func TestUpdateStatus_CancelarDevuelveElStock(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", "Café", d("10"))
	uc := newSaleUseCase(store)
	ctx := context.Background()

	sale, err := uc.CreateSale(ctx, saleRequest(
		dto.SaleItemRequest{ProductID: "p1", Quantity: d("4"), UnitSalePrice: d("10")},
	))
	require.NoError(t, err)
	require.True(t, store.projection("p1").Equal(d("6")))

	require.NoError(t, uc.UpdateStatus(ctx, sale.ID, entity.SaleStatusCancelled))
	assert.True(t, store.projection("p1").Equal(d("10")),
		"la proyección excluye ventas CANCELLED: el stock vuelve solo")

	err = uc.UpdateStatus(ctx, sale.ID, "INVENTADO")
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
}

func TestUpdateStatus_ReactivarRevalidaStock(t *testing.T) {
	// Stock 5: la venta A de 5 se cancela y la venta B de 5 ocupa el stock
	// liberado. Reactivar A debe rechazarse; aceptarla dejaría la proyección
	// en −5.
	store := newMemStore()
	store.addProduct("p1", "Café", d("5"))
	uc := newSaleUseCase(store)
	ctx := context.Background()

	a, err := uc.CreateSale(ctx, saleRequest(
		dto.SaleItemRequest{ProductID: "p1", Quantity: d("5"), UnitSalePrice: d("10")},
	))
	require.NoError(t, err)
	require.NoError(t, uc.UpdateStatus(ctx, a.ID, entity.SaleStatusCancelled))

	_, err = uc.CreateSale(ctx, saleRequest(
		dto.SaleItemRequest{ProductID: "p1", Quantity: d("5"), UnitSalePrice: d("10")},
	))
	require.NoError(t, err)
	require.True(t, store.projection("p1").Equal(d("0")))

	err = uc.UpdateStatus(ctx, a.ID, entity.SaleStatusCompleted)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, entity.SaleStatusCancelled, store.sales[a.ID].Status,
		"la venta sigue cancelada tras el rechazo")
	assert.True(t, store.projection("p1").Equal(d("0")))
	assert.False(t, store.projection("p1").IsNegative(), "la proyección nunca queda negativa")

	// Con stock suficiente la reactivación sí pasa y vuelve a descontar.
	store.mu.Lock()
	store.entries["p1"] = store.entries["p1"].Add(d("5"))
	store.mu.Unlock()
	require.NoError(t, uc.UpdateStatus(ctx, a.ID, entity.SaleStatusCompleted))
	assert.Equal(t, entity.SaleStatusCompleted, store.sales[a.ID].Status)
	assert.True(t, store.projection("p1").Equal(d("0")))
}

func TestUpdateSale_ContribucionPreviaSeLeeDentroDeLaTransaccion(t *testing.T) {
	// Entre la lectura inicial de la venta y la transacción, una edición
	// concurrente ya comprometida la reduce de 5 a 1 unidad. El ajuste de
	// contribución previa debe usar el estado vigente (1), no el leído afuera
	// (5): con el valor viejo, pedir 6 pasaría y sobrevendería.
	store := newMemStore()
	store.addProduct("p1", "Café", d("5"))
	uc, runner := newSaleUseCaseWithRunner(store)
	ctx := context.Background()

	sale, err := uc.CreateSale(ctx, saleRequest(
		dto.SaleItemRequest{ProductID: "p1", Quantity: d("5"), UnitSalePrice: d("10")},
	))
	require.NoError(t, err)

	runner.beforeTx = func() {
		store.mu.Lock()
		defer store.mu.Unlock()
		store.sales[sale.ID].Items = []entity.SaleItem{
			{ID: "it-1", SaleID: sale.ID, ProductID: "p1", Quantity: d("1"), UnitSalePrice: d("10")},
		}
	}

	_, err = uc.UpdateSale(ctx, sale.ID, dto.UpdateSaleRequest{Items: []dto.SaleItemRequest{
		{ProductID: "p1", Quantity: d("6"), UnitSalePrice: d("10")},
	}})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.True(t, stockErr.Available.Equal(d("5")),
		"disponible = proyección 4 + contribución vigente 1, no la leída afuera")
}

func TestDelete_RestauraLaProyeccion(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", "Café", d("10"))
	uc := newSaleUseCase(store)
	ctx := context.Background()

	sale, err := uc.CreateSale(ctx, saleRequest(
		dto.SaleItemRequest{ProductID: "p1", Quantity: d("4"), UnitSalePrice: d("10")},
	))
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, sale.ID))
	assert.True(t, store.projection("p1").Equal(d("10")),
		"borrar la venta elimina su salida del historial")
}

func TestCreateSale_ConcurrenciaNoSobrevende(t *testing.T) {
	// Stock 10, 8 ventas concurrentes de 3 unidades: solo pueden pasar 3
	// (3×3=9 ≤ 10) y la proyección jamás queda negativa.
	store := newMemStore()
	store.addProduct("p1", "Café", d("10"))
	uc := newSaleUseCase(store)

	const goroutines = 8
	var wg sync.WaitGroup
	var okCount, stockErrCount int32
	var countMu sync.Mutex

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.CreateSale(context.Background(), saleRequest(
				dto.SaleItemRequest{ProductID: "p1", Quantity: d("3"), UnitSalePrice: d("10")},
			))
			countMu.Lock()
			defer countMu.Unlock()
			switch {
			case err == nil:
				okCount++
			case errors.Is(err, domain.ErrInsufficientStock):
				stockErrCount++
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 3, okCount, "con stock 10 y ventas de 3 solo caben 3 ventas")
	assert.EqualValues(t, goroutines-3, stockErrCount)
	assert.True(t, store.projection("p1").Equal(d("1")), "10 − 3×3 = 1")
	assert.False(t, store.projection("p1").IsNegative(), "la proyección nunca es negativa")
}

func TestProyeccion_ConservacionBajoSecuenciasAleatorias(t *testing.T) {
	// Secuencia aleatoria (semilla fija) de compras, ventas, cancelaciones,
	// reactivaciones y borrados. Al final, la proyección de cada producto debe
	// coincidir con una recontabilización ingenua que el test lleva aparte,
	// operación por operación, y nunca quedar negativa.
	rng := rand.New(rand.NewSource(42))
	store := newMemStore()
	productIDs := []string{"p1", "p2", "p3"}
	for _, id := range productIDs {
		store.addProduct(id, "Producto "+id, decimal.Zero)
	}
	uc := newSaleUseCase(store)
	ctx := context.Background()

	expected := map[string]decimal.Decimal{}
	saleProduct := map[string]string{}
	saleAmount := map[string]decimal.Decimal{}
	active := map[string]bool{}
	var saleIDs []string
	var created int

	for op := 0; op < 400; op++ {
		pid := productIDs[rng.Intn(len(productIDs))]
		qty := decimal.NewFromInt(int64(rng.Intn(5) + 1))

		switch rng.Intn(5) {
		case 0: // compra: entrada directa al libro
			store.mu.Lock()
			store.entries[pid] = store.entries[pid].Add(qty)
			store.mu.Unlock()
			expected[pid] = expected[pid].Add(qty)

		case 1: // crear venta
			out, err := uc.CreateSale(ctx, saleRequest(
				dto.SaleItemRequest{ProductID: pid, Quantity: qty, UnitSalePrice: d("10")},
			))
			if err != nil {
				require.ErrorIs(t, err, domain.ErrInsufficientStock,
					"op %d: el único rechazo válido es por stock", op)
				continue
			}
			created++
			saleIDs = append(saleIDs, out.ID)
			saleProduct[out.ID] = pid
			saleAmount[out.ID] = qty
			active[out.ID] = true
			expected[pid] = expected[pid].Sub(qty)

		case 2: // cancelar una venta activa
			if len(saleIDs) == 0 {
				continue
			}
			id := saleIDs[rng.Intn(len(saleIDs))]
			if !active[id] {
				continue
			}
			require.NoError(t, uc.UpdateStatus(ctx, id, entity.SaleStatusCancelled))
			active[id] = false
			expected[saleProduct[id]] = expected[saleProduct[id]].Add(saleAmount[id])

		case 3: // reactivar una venta cancelada (puede no caber)
			if len(saleIDs) == 0 {
				continue
			}
			id := saleIDs[rng.Intn(len(saleIDs))]
			if active[id] {
				continue
			}
			err := uc.UpdateStatus(ctx, id, entity.SaleStatusCompleted)
			if err != nil {
				require.ErrorIs(t, err, domain.ErrInsufficientStock, "op %d", op)
				continue
			}
			active[id] = true
			expected[saleProduct[id]] = expected[saleProduct[id]].Sub(saleAmount[id])

		case 4: // borrar una venta
			if len(saleIDs) == 0 {
				continue
			}
			idx := rng.Intn(len(saleIDs))
			id := saleIDs[idx]
			require.NoError(t, uc.Delete(ctx, id))
			if active[id] {
				expected[saleProduct[id]] = expected[saleProduct[id]].Add(saleAmount[id])
			}
			saleIDs = append(saleIDs[:idx], saleIDs[idx+1:]...)
			delete(saleProduct, id)
			delete(saleAmount, id)
			delete(active, id)
		}
	}

	require.Greater(t, created, 0, "la semilla debe producir ventas reales")
	for _, pid := range productIDs {
		got := store.projection(pid)
		assert.True(t, got.Equal(expected[pid]),
			fmt.Sprintf("%s: proyección %s, recontabilización %s", pid, got, expected[pid]))
		assert.False(t, got.IsNegative(), "%s: la proyección nunca es negativa", pid)
	}
}
