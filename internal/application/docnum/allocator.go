package docnum

import (
	"context"
	"fmt"

	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// Prefijos de documento conocidos.
const (
	PrefixQuotation = "COT"
)

// Allocator genera el siguiente número legible de documento (ej. COT-0001).
// El estado vive en un contador persistente incrementado atómicamente en la
// base de datos, nunca en memoria: el proceso corre como múltiples instancias
// sin estado y dos asignaciones concurrentes jamás leen el mismo último valor.
type Allocator struct {
	seq repository.SequenceRepository
}

// NewAllocator construye el asignador sobre el contador persistente.
func NewAllocator(seq repository.SequenceRepository) *Allocator {
	return &Allocator{seq: seq}
}

// NextNumber devuelve el siguiente consecutivo para el prefijo, con relleno de
// ceros a 4 dígitos (COT-0001, COT-0002, ...). Secuencias de más de 9999
// documentos siguen creciendo sin colisión (COT-10000).
func (a *Allocator) NextNumber(ctx context.Context, prefix string) (string, error) {
	n, err := a.seq.NextValue(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("siguiente consecutivo %s: %w", prefix, err)
	}
	return fmt.Sprintf("%s-%04d", prefix, n), nil
}
