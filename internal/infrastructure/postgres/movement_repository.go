package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, item_id, user_id, movement_type, quantity, quantity_before, quantity_after,
	unit_cost, total_cost, reason_code, destination_ref, notes, created_at`

// MovementRepo libro de movimientos: solo inserción y lectura.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO movements (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		m.ID, m.ItemID, m.UserID, m.Type, m.Quantity, m.QuantityBefore, m.QuantityAfter,
		m.UnitCost, m.TotalCost, m.ReasonCode, m.DestinationRef, m.Notes, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	return queryOne(ctx, r.q, scanMovement, "movement",
		`SELECT `+movementColumns+` FROM movements WHERE id = $1`, id)
}

// ListByItem historial del item en orden de registro (seq).
func (r *MovementRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.Movement, error) {
	return queryAll(ctx, r.q, scanMovement, "movements",
		`SELECT `+movementColumns+` FROM movements WHERE item_id = $1 ORDER BY seq`, itemID)
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	if err := row.Scan(&m.ID, &m.ItemID, &m.UserID, &m.Type, &m.Quantity, &m.QuantityBefore, &m.QuantityAfter,
		&m.UnitCost, &m.TotalCost, &m.ReasonCode, &m.DestinationRef, &m.Notes, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
