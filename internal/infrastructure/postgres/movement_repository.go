package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste el movimiento interno con sus ítems.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.InternalMovement) error {
	query := `
		INSERT INTO internal_movements (id, date, reason, notes, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.Date, movement.Reason, movement.Notes, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	itemQuery := `
		INSERT INTO internal_movement_items (id, movement_id, product_id, quantity, unit_cost)
		VALUES ($1, $2, $3, $4, $5)`
	for _, item := range movement.Items {
		_, err := r.q.Exec(ctx, itemQuery, item.ID, movement.ID, item.ProductID, item.Quantity, item.UnitCost)
		if err != nil {
			return fmt.Errorf("insert movement item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un movimiento con sus ítems.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.InternalMovement, error) {
	query := `SELECT id, date, reason, notes, created_at FROM internal_movements WHERE id = $1`
	var m entity.InternalMovement
	err := r.q.QueryRow(ctx, query, id).Scan(&m.ID, &m.Date, &m.Reason, &m.Notes, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	items, err := r.itemsFor(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	m.Items = items
	return &m, nil
}

// List lista movimientos internos con sus ítems, más reciente primero.
func (r *MovementRepo) List(ctx context.Context, limit, offset int) ([]*entity.InternalMovement, error) {
	query := `
		SELECT id, date, reason, notes, created_at
		FROM internal_movements
		ORDER BY date DESC, created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.InternalMovement
	for rows.Next() {
		var m entity.InternalMovement
		if err := rows.Scan(&m.ID, &m.Date, &m.Reason, &m.Notes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, m := range list {
		items, err := r.itemsFor(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		m.Items = items
	}
	return list, nil
}

// Delete elimina el movimiento y sus ítems (cascade en la FK); el stock que
// descontaba reaparece en la siguiente proyección.
func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM internal_movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	return nil
}

func (r *MovementRepo) itemsFor(ctx context.Context, movementID string) ([]entity.InternalMovementItem, error) {
	query := `
		SELECT id, movement_id, product_id, quantity, unit_cost
		FROM internal_movement_items WHERE movement_id = $1`
	rows, err := r.q.Query(ctx, query, movementID)
	if err != nil {
		return nil, fmt.Errorf("list movement items: %w", err)
	}
	defer rows.Close()

	var items []entity.InternalMovementItem
	for rows.Next() {
		var it entity.InternalMovementItem
		if err := rows.Scan(&it.ID, &it.MovementID, &it.ProductID, &it.Quantity, &it.UnitCost); err != nil {
			return nil, fmt.Errorf("scan movement item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
