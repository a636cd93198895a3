package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, code, description, status, template_id,
	COALESCE(supplier_id, ''), COALESCE(manufacturer_id, ''), sequential_code, full_code, attributes, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto con su secuencial y fullCode ya asignados.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	attrs, err := jsonb(p.Attributes)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO products (id, name, code, description, status, template_id, supplier_id, manufacturer_id,
			sequential_code, full_code, attributes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10, $11, $12, $13)`,
		p.ID, p.Name, p.Code, p.Description, p.Status, p.TemplateID, p.SupplierID, p.ManufacturerID,
		p.SequentialCode, p.FullCode, attrs, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			return productDuplicate(constraint, p)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return queryOne(ctx, r.q, scanProduct, "product",
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByName búsqueda sin distinguir mayúsculas.
func (r *ProductRepo) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	return queryOne(ctx, r.q, scanProduct, "product by name",
		`SELECT `+productColumns+` FROM products WHERE lower(name) = lower($1)`, name)
}

// Update actualiza los campos editables. Plantilla, secuencial y fullCode no cambian.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	attrs, err := jsonb(p.Attributes)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		UPDATE products SET name = $2, code = $3, description = $4, status = $5,
			supplier_id = NULLIF($6, ''), manufacturer_id = NULLIF($7, ''), attributes = $8, updated_at = $9
		WHERE id = $1`,
		p.ID, p.Name, p.Code, p.Description, p.Status, p.SupplierID, p.ManufacturerID, attrs, p.UpdatedAt,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			return productDuplicate(constraint, p)
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// ListByTemplate productos de una plantilla por secuencial.
func (r *ProductRepo) ListByTemplate(ctx context.Context, templateID string, limit, offset int) ([]*entity.Product, error) {
	return queryAll(ctx, r.q, scanProduct, "products", `
		SELECT `+productColumns+` FROM products WHERE template_id = $1
		ORDER BY sequential_code LIMIT NULLIF($2, 0) OFFSET $3`,
		templateID, limit, offset)
}

// NextSequentialCode bloquea la fila de la plantilla y devuelve MAX+1 de sus
// productos. Debe ejecutarse dentro de una transacción.
func (r *ProductRepo) NextSequentialCode(ctx context.Context, templateID string) (int64, error) {
	if err := lockRow(ctx, r.q, "templates", "template", templateID); err != nil {
		return 0, err
	}
	var seq int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(MAX(sequential_code), 0) + 1 FROM products WHERE template_id = $1`, templateID,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next product sequence: %w", err)
	}
	return seq, nil
}

func productDuplicate(constraint string, p *entity.Product) error {
	switch constraint {
	case "products_full_code_key", "products_template_seq_key":
		return domain.Duplicate("full_code", p.FullCode)
	default:
		return domain.Duplicate("name", p.Name)
	}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var attrs []byte
	if err := row.Scan(&p.ID, &p.Name, &p.Code, &p.Description, &p.Status, &p.TemplateID,
		&p.SupplierID, &p.ManufacturerID, &p.SequentialCode, &p.FullCode, &attrs,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := fromJSONB(attrs, &p.Attributes); err != nil {
		return nil, err
	}
	return &p, nil
}
