package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var _ repository.TemplateRepository = (*TemplateRepo)(nil)

const templateColumns = `id, name, description, sequential_code, product_attributes, variant_attributes, item_attributes, created_at, updated_at`

// TemplateRepo plantillas de atributos sobre PostgreSQL. Los tres esquemas se guardan como JSONB.
type TemplateRepo struct {
	q Querier
}

// NewTemplateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTemplateRepository(q Querier) *TemplateRepo {
	return &TemplateRepo{q: q}
}

func (r *TemplateRepo) Create(ctx context.Context, t *entity.Template) error {
	product, variant, item, err := templateSchemas(t)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO templates (`+templateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.Name, t.Description, t.SequentialCode, product, variant, item, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return domain.Duplicate("name", t.Name)
		}
		return fmt.Errorf("insert template: %w", err)
	}
	return nil
}

func (r *TemplateRepo) GetByID(ctx context.Context, id string) (*entity.Template, error) {
	return queryOne(ctx, r.q, scanTemplate, "template",
		`SELECT `+templateColumns+` FROM templates WHERE id = $1`, id)
}

// GetByName búsqueda sin distinguir mayúsculas (índice único sobre lower(name)).
func (r *TemplateRepo) GetByName(ctx context.Context, name string) (*entity.Template, error) {
	return queryOne(ctx, r.q, scanTemplate, "template by name",
		`SELECT `+templateColumns+` FROM templates WHERE lower(name) = lower($1)`, name)
}

// Update no modifica sequential_code.
func (r *TemplateRepo) Update(ctx context.Context, t *entity.Template) error {
	product, variant, item, err := templateSchemas(t)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		UPDATE templates SET name = $2, description = $3, product_attributes = $4,
			variant_attributes = $5, item_attributes = $6, updated_at = $7
		WHERE id = $1`,
		t.ID, t.Name, t.Description, product, variant, item, t.UpdatedAt,
	)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return domain.Duplicate("name", t.Name)
		}
		return fmt.Errorf("update template: %w", err)
	}
	return nil
}

func (r *TemplateRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM templates WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

// List ordena por secuencial. limit 0 = sin límite.
func (r *TemplateRepo) List(ctx context.Context, limit, offset int) ([]*entity.Template, error) {
	return queryAll(ctx, r.q, scanTemplate, "templates",
		`SELECT `+templateColumns+` FROM templates ORDER BY sequential_code LIMIT NULLIF($1, 0) OFFSET $2`,
		limit, offset)
}

// NextSequentialCode toma el siguiente valor de la secuencia de plantillas.
func (r *TemplateRepo) NextSequentialCode(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('template_sequential_code_seq')`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next template sequence: %w", err)
	}
	return seq, nil
}

func templateSchemas(t *entity.Template) (product, variant, item []byte, err error) {
	if product, err = jsonb(t.ProductAttributes); err != nil {
		return
	}
	if variant, err = jsonb(t.VariantAttributes); err != nil {
		return
	}
	item, err = jsonb(t.ItemAttributes)
	return
}

func scanTemplate(row pgx.Row) (*entity.Template, error) {
	var t entity.Template
	var product, variant, item []byte
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.SequentialCode,
		&product, &variant, &item, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	for _, s := range []struct {
		data []byte
		dst  any
	}{
		{product, &t.ProductAttributes},
		{variant, &t.VariantAttributes},
		{item, &t.ItemAttributes},
	} {
		if err := fromJSONB(s.data, s.dst); err != nil {
			return nil, err
		}
	}
	return &t, nil
}
