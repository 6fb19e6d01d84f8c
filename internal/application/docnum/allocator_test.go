package docnum_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestion-api/internal/application/docnum"
)

// memSequenceRepo contador en memoria con la misma garantía del contador
// persistente: el incremento es atómico por prefijo.
type memSequenceRepo struct {
	mu     sync.Mutex
	values map[string]int64
}

func newMemSequenceRepo() *memSequenceRepo {
	return &memSequenceRepo{values: map[string]int64{}}
}

func (r *memSequenceRepo) NextValue(ctx context.Context, prefix string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[prefix]++
	return r.values[prefix], nil
}

func TestNextNumber_FormatoConsecutivo(t *testing.T) {
	alloc := docnum.NewAllocator(newMemSequenceRepo())
	ctx := context.Background()

	first, err := alloc.NextNumber(ctx, docnum.PrefixQuotation)
	require.NoError(t, err)
	assert.Equal(t, "COT-0001", first)

	second, err := alloc.NextNumber(ctx, docnum.PrefixQuotation)
	require.NoError(t, err)
	assert.Equal(t, "COT-0002", second)
}

func TestNextNumber_PrefijosIndependientes(t *testing.T) {
	alloc := docnum.NewAllocator(newMemSequenceRepo())
	ctx := context.Background()

	cot, err := alloc.NextNumber(ctx, "COT")
	require.NoError(t, err)
	fac, err := alloc.NextNumber(ctx, "FAC")
	require.NoError(t, err)

	assert.Equal(t, "COT-0001", cot)
	assert.Equal(t, "FAC-0001", fac, "cada prefijo lleva su propio contador")
}

func TestNextNumber_CreceMasAllaDe4Digitos(t *testing.T) {
	seq := newMemSequenceRepo()
	seq.values[docnum.PrefixQuotation] = 9999
	alloc := docnum.NewAllocator(seq)

	number, err := alloc.NextNumber(context.Background(), docnum.PrefixQuotation)
	require.NoError(t, err)
	assert.Equal(t, "COT-10000", number, "el relleno es mínimo 4 dígitos, no un tope")
}

func TestNextNumber_ConcurrenciaSinDuplicados(t *testing.T) {
	alloc := docnum.NewAllocator(newMemSequenceRepo())

	const goroutines = 100
	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[string]bool, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			number, err := alloc.NextNumber(context.Background(), docnum.PrefixQuotation)
			assert.NoError(t, err)
			mu.Lock()
			defer mu.Unlock()
			assert.False(t, seen[number], "número repetido: %s", number)
			seen[number] = true
		}()
	}
	wg.Wait()

	assert.Len(t, seen, goroutines, "cada asignación concurrente recibe un número distinto")
}
