package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var (
	_ repository.SupplierRepository     = (*SupplierRepo)(nil)
	_ repository.ManufacturerRepository = (*ManufacturerRepo)(nil)
)

// SupplierRepo proveedores sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO suppliers (id, name, tax_id, created_at) VALUES ($1, $2, $3, $4)`,
		s.ID, s.Name, s.TaxID, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	return queryOne(ctx, r.q, func(row pgx.Row) (*entity.Supplier, error) {
		var s entity.Supplier
		if err := row.Scan(&s.ID, &s.Name, &s.TaxID, &s.CreatedAt); err != nil {
			return nil, err
		}
		return &s, nil
	}, "supplier", `SELECT id, name, tax_id, created_at FROM suppliers WHERE id = $1`, id)
}

// ManufacturerRepo fabricantes; su secuencial forma el segmento central del fullCode de producto.
type ManufacturerRepo struct {
	q Querier
}

// NewManufacturerRepository construye el adaptador.
func NewManufacturerRepository(q Querier) *ManufacturerRepo {
	return &ManufacturerRepo{q: q}
}

func (r *ManufacturerRepo) Create(ctx context.Context, m *entity.Manufacturer) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO manufacturers (id, name, sequential_code, created_at) VALUES ($1, $2, $3, $4)`,
		m.ID, m.Name, m.SequentialCode, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert manufacturer: %w", err)
	}
	return nil
}

func (r *ManufacturerRepo) GetByID(ctx context.Context, id string) (*entity.Manufacturer, error) {
	return queryOne(ctx, r.q, func(row pgx.Row) (*entity.Manufacturer, error) {
		var m entity.Manufacturer
		if err := row.Scan(&m.ID, &m.Name, &m.SequentialCode, &m.CreatedAt); err != nil {
			return nil, err
		}
		return &m, nil
	}, "manufacturer", `SELECT id, name, sequential_code, created_at FROM manufacturers WHERE id = $1`, id)
}

// NextSequentialCode siguiente valor de la secuencia de fabricantes.
func (r *ManufacturerRepo) NextSequentialCode(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('manufacturer_sequential_code_seq')`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next manufacturer sequence: %w", err)
	}
	return seq, nil
}
