package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

const variantColumns = `id, product_id, sku, name, description, sequential_code, full_code,
	price, cost_price, profit_margin, COALESCE(barcode, ''), COALESCE(ean_code, ''), COALESCE(upc_code, ''),
	color_hex, min_stock, max_stock, reorder_point, reorder_quantity, is_active, attributes, created_at, updated_at`

// VariantRepo variantes sobre PostgreSQL. barcode/ean/upc vacíos se guardan como NULL
// para que los índices únicos solo apliquen a códigos informados.
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

func (r *VariantRepo) Create(ctx context.Context, v *entity.Variant) error {
	attrs, err := jsonb(v.Attributes)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO variants (id, product_id, sku, name, description, sequential_code, full_code,
			price, cost_price, profit_margin, barcode, ean_code, upc_code, color_hex,
			min_stock, max_stock, reorder_point, reorder_quantity, is_active, attributes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''), NULLIF($12, ''), NULLIF($13, ''), $14,
			$15, $16, $17, $18, $19, $20, $21, $22)`,
		v.ID, v.ProductID, v.SKU, v.Name, v.Description, v.SequentialCode, v.FullCode,
		v.Price, v.CostPrice, v.ProfitMargin, v.Barcode, v.EANCode, v.UPCCode, v.ColorHex,
		v.MinStock, v.MaxStock, v.ReorderPoint, v.ReorderQuantity, v.IsActive, attrs, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			return variantDuplicate(constraint, v)
		}
		return fmt.Errorf("insert variant: %w", err)
	}
	return nil
}

func (r *VariantRepo) GetByID(ctx context.Context, id string) (*entity.Variant, error) {
	return r.getBy(ctx, "id", id)
}

func (r *VariantRepo) GetBySKU(ctx context.Context, sku string) (*entity.Variant, error) {
	return r.getBy(ctx, "sku", sku)
}

func (r *VariantRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Variant, error) {
	return r.getBy(ctx, "barcode", barcode)
}

func (r *VariantRepo) GetByEAN(ctx context.Context, ean string) (*entity.Variant, error) {
	return r.getBy(ctx, "ean_code", ean)
}

func (r *VariantRepo) GetByUPC(ctx context.Context, upc string) (*entity.Variant, error) {
	return r.getBy(ctx, "upc_code", upc)
}

// getBy column es siempre una constante de este archivo.
func (r *VariantRepo) getBy(ctx context.Context, column, value string) (*entity.Variant, error) {
	return queryOne(ctx, r.q, scanVariant, "variant by "+column,
		`SELECT `+variantColumns+` FROM variants WHERE `+column+` = $1`, value)
}

// Update no modifica producto, secuencial ni fullCode.
func (r *VariantRepo) Update(ctx context.Context, v *entity.Variant) error {
	attrs, err := jsonb(v.Attributes)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		UPDATE variants SET sku = $2, name = $3, description = $4, price = $5, cost_price = $6, profit_margin = $7,
			barcode = NULLIF($8, ''), ean_code = NULLIF($9, ''), upc_code = NULLIF($10, ''), color_hex = $11,
			min_stock = $12, max_stock = $13, reorder_point = $14, reorder_quantity = $15, is_active = $16,
			attributes = $17, updated_at = $18
		WHERE id = $1`,
		v.ID, v.SKU, v.Name, v.Description, v.Price, v.CostPrice, v.ProfitMargin,
		v.Barcode, v.EANCode, v.UPCCode, v.ColorHex,
		v.MinStock, v.MaxStock, v.ReorderPoint, v.ReorderQuantity, v.IsActive, attrs, v.UpdatedAt,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			return variantDuplicate(constraint, v)
		}
		return fmt.Errorf("update variant: %w", err)
	}
	return nil
}

// UpdateCost actualiza solo el costo promedio (usado por el libro de inventario).
func (r *VariantRepo) UpdateCost(ctx context.Context, variantID string, cost decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE variants SET cost_price = $2, updated_at = now() WHERE id = $1`,
		variantID, cost,
	)
	if err != nil {
		return fmt.Errorf("update variant cost: %w", err)
	}
	return nil
}

func (r *VariantRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.Variant, error) {
	return queryAll(ctx, r.q, scanVariant, "variants", `
		SELECT `+variantColumns+` FROM variants WHERE product_id = $1
		ORDER BY sequential_code LIMIT NULLIF($2, 0) OFFSET $3`,
		productID, limit, offset)
}

// NextSequentialCode bloquea el producto y devuelve MAX+1 de sus variantes.
// Debe ejecutarse dentro de una transacción.
func (r *VariantRepo) NextSequentialCode(ctx context.Context, productID string) (int64, error) {
	if err := lockRow(ctx, r.q, "products", "product", productID); err != nil {
		return 0, err
	}
	var seq int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(MAX(sequential_code), 0) + 1 FROM variants WHERE product_id = $1`, productID,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next variant sequence: %w", err)
	}
	return seq, nil
}

// ListBelowReorderPoint variantes activas cuyo stock (suma de current_quantity de
// sus items) está por debajo de reorder_point.
func (r *VariantRepo) ListBelowReorderPoint(ctx context.Context) ([]repository.ReplenishmentRow, error) {
	rows, err := r.q.Query(ctx, `
		SELECT v.id, v.sku, v.name, COALESCE(SUM(i.current_quantity), 0), v.reorder_point, v.reorder_quantity, v.max_stock
		FROM variants v
		LEFT JOIN items i ON i.variant_id = v.id
		WHERE v.is_active
		GROUP BY v.id
		HAVING COALESCE(SUM(i.current_quantity), 0) < v.reorder_point
		ORDER BY v.full_code`)
	if err != nil {
		return nil, fmt.Errorf("list below reorder point: %w", err)
	}
	defer rows.Close()
	var list []repository.ReplenishmentRow
	for rows.Next() {
		var row repository.ReplenishmentRow
		if err := rows.Scan(&row.VariantID, &row.SKU, &row.VariantName, &row.CurrentStock,
			&row.ReorderPoint, &row.ReorderQuantity, &row.MaxStock); err != nil {
			return nil, fmt.Errorf("scan replenishment row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

func variantDuplicate(constraint string, v *entity.Variant) error {
	switch constraint {
	case "variants_barcode_key":
		return domain.Duplicate("barcode", v.Barcode)
	case "variants_ean_code_key":
		return domain.Duplicate("ean_code", v.EANCode)
	case "variants_upc_code_key":
		return domain.Duplicate("upc_code", v.UPCCode)
	case "variants_full_code_key", "variants_product_seq_key":
		return domain.Duplicate("full_code", v.FullCode)
	default:
		return domain.Duplicate("sku", v.SKU)
	}
}

func scanVariant(row pgx.Row) (*entity.Variant, error) {
	var v entity.Variant
	var attrs []byte
	if err := row.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Name, &v.Description, &v.SequentialCode, &v.FullCode,
		&v.Price, &v.CostPrice, &v.ProfitMargin, &v.Barcode, &v.EANCode, &v.UPCCode,
		&v.ColorHex, &v.MinStock, &v.MaxStock, &v.ReorderPoint, &v.ReorderQuantity, &v.IsActive,
		&attrs, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	if err := fromJSONB(attrs, &v.Attributes); err != nil {
		return nil, err
	}
	return &v, nil
}
