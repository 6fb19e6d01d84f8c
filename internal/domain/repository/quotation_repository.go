package repository

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// QuotationRepository puerto de persistencia de cotizaciones.
// Create retorna domain.ErrDuplicate si el número consecutivo ya existe
// (constraint UNIQUE sobre quotations.number, red de seguridad del asignador).
type QuotationRepository interface {
	Create(ctx context.Context, quotation *entity.Quotation) error
	GetByID(ctx context.Context, id string) (*entity.Quotation, error)
	GetByNumber(ctx context.Context, number string) (*entity.Quotation, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Quotation, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

// SequenceRepository contador persistente y atómico por prefijo de documento.
// NextValue incrementa y devuelve el consecutivo en una sola sentencia, de modo
// que dos instancias del proceso nunca leen el mismo "último número".
type SequenceRepository interface {
	NextValue(ctx context.Context, prefix string) (int64, error)
}
