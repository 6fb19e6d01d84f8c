package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador persistente por prefijo de documento. El incremento es
// una sola sentencia con RETURNING: dos asignaciones concurrentes del mismo
// prefijo se serializan en la fila del contador y jamás devuelven el mismo valor.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// NextValue incrementa y devuelve el consecutivo del prefijo (1 si no existía).
func (r *SequenceRepo) NextValue(ctx context.Context, prefix string) (int64, error) {
	query := `
		INSERT INTO document_sequences (prefix, last_value)
		VALUES ($1, 1)
		ON CONFLICT (prefix)
		DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value`
	var value int64
	if err := r.q.QueryRow(ctx, query, prefix).Scan(&value); err != nil {
		return 0, fmt.Errorf("next sequence value: %w", err)
	}
	return value, nil
}
