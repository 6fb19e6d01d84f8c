package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

// QuotationRepo implementación del puerto QuotationRepository sobre PostgreSQL.
// quotations.number tiene constraint UNIQUE: si dos procesos llegaran a asignar
// el mismo consecutivo, Create devuelve domain.ErrDuplicate y el asignador reintenta.
type QuotationRepo struct {
	q Querier
}

// NewQuotationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuotationRepository(q Querier) *QuotationRepo {
	return &QuotationRepo{q: q}
}

const quotationColumns = `id, number, status, client_name, client_email, client_phone, total, created_at, updated_at`

// Create persiste la cotización con sus ítems. El caller garantiza atomicidad
// vía TxRunner.RunQuotation.
func (r *QuotationRepo) Create(ctx context.Context, quotation *entity.Quotation) error {
	query := `
		INSERT INTO quotations (id, number, status, client_name, client_email, client_phone, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		quotation.ID, quotation.Number, quotation.Status,
		quotation.ClientName, quotation.ClientEmail, quotation.ClientPhone,
		quotation.Total, quotation.CreatedAt, quotation.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert quotation: %w", err)
	}
	itemQuery := `
		INSERT INTO quotation_items (id, quotation_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)`
	for _, item := range quotation.Items {
		_, err := r.q.Exec(ctx, itemQuery, item.ID, quotation.ID, item.ProductID, item.Quantity, item.UnitPrice)
		if err != nil {
			return fmt.Errorf("insert quotation item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una cotización con sus ítems.
func (r *QuotationRepo) GetByID(ctx context.Context, id string) (*entity.Quotation, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

// GetByNumber obtiene una cotización por su consecutivo (ej. COT-0001).
func (r *QuotationRepo) GetByNumber(ctx context.Context, number string) (*entity.Quotation, error) {
	return r.getBy(ctx, `WHERE number = $1`, number)
}

func (r *QuotationRepo) getBy(ctx context.Context, where string, arg any) (*entity.Quotation, error) {
	query := `SELECT ` + quotationColumns + ` FROM quotations ` + where
	var q entity.Quotation
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&q.ID, &q.Number, &q.Status, &q.ClientName, &q.ClientEmail, &q.ClientPhone,
		&q.Total, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	items, err := r.itemsFor(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	q.Items = items
	return &q, nil
}

// List lista cotizaciones con sus ítems, opcionalmente filtradas por estado.
func (r *QuotationRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.Quotation, error) {
	query := `SELECT ` + quotationColumns + ` FROM quotations`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Quotation
	for rows.Next() {
		var q entity.Quotation
		if err := rows.Scan(
			&q.ID, &q.Number, &q.Status, &q.ClientName, &q.ClientEmail, &q.ClientPhone,
			&q.Total, &q.CreatedAt, &q.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan quotation: %w", err)
		}
		list = append(list, &q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, q := range list {
		items, err := r.itemsFor(ctx, q.ID)
		if err != nil {
			return nil, err
		}
		q.Items = items
	}
	return list, nil
}

// UpdateStatus cambia el estado de la cotización. Number y los ítems son inmutables.
func (r *QuotationRepo) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.q.Exec(ctx, `UPDATE quotations SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update quotation status: %w", err)
	}
	return nil
}

// Delete elimina la cotización. El consecutivo no se reutiliza: la secuencia
// nunca retrocede.
func (r *QuotationRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM quotations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete quotation: %w", err)
	}
	return nil
}

func (r *QuotationRepo) itemsFor(ctx context.Context, quotationID string) ([]entity.QuotationItem, error) {
	query := `
		SELECT id, quotation_id, product_id, quantity, unit_price
		FROM quotation_items WHERE quotation_id = $1`
	rows, err := r.q.Query(ctx, query, quotationID)
	if err != nil {
		return nil, fmt.Errorf("list quotation items: %w", err)
	}
	defer rows.Close()

	var items []entity.QuotationItem
	for rows.Next() {
		var it entity.QuotationItem
		if err := rows.Scan(&it.ID, &it.QuotationID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan quotation item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
