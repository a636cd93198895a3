package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var (
	_ repository.LocationRepository = (*LocationRepo)(nil)
	_ repository.BinRepository      = (*BinRepo)(nil)
)

const (
	locationColumns = `id, warehouse_id, code, name, is_active, created_at, updated_at`
	binColumns      = `id, location_id, code, capacity, occupancy, created_at, updated_at`
)

// LocationRepo ubicaciones físicas dentro de una bodega.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO locations (`+locationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		l.ID, l.WarehouseID, l.Code, l.Name, l.IsActive, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return domain.Duplicate("code", l.Code)
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	return queryOne(ctx, r.q, scanLocation, "location", `SELECT `+locationColumns+` FROM locations WHERE id = $1`, id)
}

func (r *LocationRepo) GetByCode(ctx context.Context, code string) (*entity.Location, error) {
	return queryOne(ctx, r.q, scanLocation, "location by code", `SELECT `+locationColumns+` FROM locations WHERE code = $1`, code)
}

func (r *LocationRepo) ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.Location, error) {
	return queryAll(ctx, r.q, scanLocation, "locations",
		`SELECT `+locationColumns+` FROM locations WHERE warehouse_id = $1 ORDER BY code`, warehouseID)
}

func scanLocation(row pgx.Row) (*entity.Location, error) {
	var l entity.Location
	if err := row.Scan(&l.ID, &l.WarehouseID, &l.Code, &l.Name, &l.IsActive, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

// BinRepo bins con capacidad. La ocupación solo cambia con actualizaciones
// condicionales (Occupy/Release).
type BinRepo struct {
	q Querier
}

// NewBinRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBinRepository(q Querier) *BinRepo {
	return &BinRepo{q: q}
}

func (r *BinRepo) Create(ctx context.Context, b *entity.Bin) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO bins (`+binColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID, b.LocationID, b.Code, b.Capacity, b.Occupancy, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return domain.Duplicate("code", b.Code)
		}
		return fmt.Errorf("insert bin: %w", err)
	}
	return nil
}

func (r *BinRepo) GetByID(ctx context.Context, id string) (*entity.Bin, error) {
	return queryOne(ctx, r.q, scanBin, "bin", `SELECT `+binColumns+` FROM bins WHERE id = $1`, id)
}

func (r *BinRepo) GetByCode(ctx context.Context, code string) (*entity.Bin, error) {
	return queryOne(ctx, r.q, scanBin, "bin by code", `SELECT `+binColumns+` FROM bins WHERE code = $1`, code)
}

func (r *BinRepo) ListByLocation(ctx context.Context, locationID string) ([]*entity.Bin, error) {
	return queryAll(ctx, r.q, scanBin, "bins",
		`SELECT `+binColumns+` FROM bins WHERE location_id = $1 ORDER BY code`, locationID)
}

// Occupy suma uno a la ocupación si hay lugar (capacity 0 = sin límite).
func (r *BinRepo) Occupy(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE bins SET occupancy = occupancy + 1, updated_at = now()
		WHERE id = $1 AND (capacity = 0 OR occupancy < capacity)`, id)
	if err != nil {
		return false, fmt.Errorf("occupy bin: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// Release resta uno a la ocupación sin bajar de cero.
func (r *BinRepo) Release(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE bins SET occupancy = GREATEST(occupancy - 1, 0), updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("release bin: %w", err)
	}
	return nil
}

func scanBin(row pgx.Row) (*entity.Bin, error) {
	var b entity.Bin
	if err := row.Scan(&b.ID, &b.LocationID, &b.Code, &b.Capacity, &b.Occupancy, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}
