package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, code, slug, variant_id, location_id, COALESCE(bin_id, ''), sequential_code, full_code,
	barcode, ean_code, upc_code, initial_quantity, current_quantity, unit_cost, status, batch_number,
	manufacturing_date, expiry_date, attributes, created_by, created_at, updated_at`

// ItemRepo items físicos sobre PostgreSQL. Los códigos derivados no tienen
// ruta de actualización: solo cantidad, ubicación y updated_at cambian.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	attrs, err := jsonb(it.Attributes)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO items (id, code, slug, variant_id, location_id, bin_id, sequential_code, full_code,
			barcode, ean_code, upc_code, initial_quantity, current_quantity, unit_cost, status, batch_number,
			manufacturing_date, expiry_date, attributes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22)`,
		it.ID, it.Code, it.Slug, it.VariantID, it.LocationID, it.BinID, it.SequentialCode, it.FullCode,
		it.Barcode, it.EANCode, it.UPCCode, it.InitialQuantity, it.CurrentQuantity, it.UnitCost, it.Status,
		it.BatchNumber, it.ManufacturingDate, it.ExpiryDate, attrs, it.CreatedBy, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			return itemDuplicate(constraint, it)
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return queryOne(ctx, r.q, scanItem, "item", `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
}

func (r *ItemRepo) GetByCode(ctx context.Context, code string) (*entity.Item, error) {
	return queryOne(ctx, r.q, scanItem, "item by code", `SELECT `+itemColumns+` FROM items WHERE code = $1`, code)
}

func (r *ItemRepo) GetByEAN(ctx context.Context, ean string) (*entity.Item, error) {
	return queryOne(ctx, r.q, scanItem, "item by ean", `SELECT `+itemColumns+` FROM items WHERE ean_code = $1`, ean)
}

// GetForUpdate lee el item con bloqueo de fila. Solo dentro de una transacción.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return queryOne(ctx, r.q, scanItem, "item for update",
		`SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id)
}

// LockVariantScope bloquea la fila de la variante; serializa la asignación del
// secuencial de items de esa variante.
func (r *ItemRepo) LockVariantScope(ctx context.Context, variantID string) error {
	return lockRow(ctx, r.q, "variants", "variant", variantID)
}

func (r *ItemRepo) GetLastByVariant(ctx context.Context, variantID string) (*entity.Item, error) {
	return queryOne(ctx, r.q, scanItem, "last item", `
		SELECT `+itemColumns+` FROM items WHERE variant_id = $1
		ORDER BY sequential_code DESC LIMIT 1`, variantID)
}

// DecrementQuantity resta qty solo si current_quantity >= qty. ok=false indica
// que la cantidad no alcanzaba y no se escribió nada.
func (r *ItemRepo) NextScanSequence(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('item_scan_seq')`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next item scan sequence: %w", err)
	}
	return seq, nil
}

func (r *ItemRepo) DecrementQuantity(ctx context.Context, id string, qty decimal.Decimal, now time.Time) (decimal.Decimal, bool, error) {
	var after decimal.Decimal
	err := r.q.QueryRow(ctx, `
		UPDATE items SET current_quantity = current_quantity - $2, updated_at = $3
		WHERE id = $1 AND current_quantity >= $2
		RETURNING current_quantity`,
		id, qty, now,
	).Scan(&after)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("decrement item quantity: %w", err)
	}
	return after, true, nil
}

func (r *ItemRepo) UpdateLocation(ctx context.Context, id, locationID, binID string, now time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE items SET location_id = $2, bin_id = NULLIF($3, ''), updated_at = $4 WHERE id = $1`,
		id, locationID, binID, now,
	)
	if err != nil {
		return fmt.Errorf("update item location: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("item", id)
	}
	return nil
}

func (r *ItemRepo) ListByVariant(ctx context.Context, variantID string, limit, offset int) ([]*entity.Item, error) {
	return queryAll(ctx, r.q, scanItem, "items", `
		SELECT `+itemColumns+` FROM items WHERE variant_id = $1
		ORDER BY sequential_code LIMIT NULLIF($2, 0) OFFSET $3`,
		variantID, limit, offset)
}

func (r *ItemRepo) SumQuantityByVariant(ctx context.Context, variantID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(current_quantity), 0) FROM items WHERE variant_id = $1`, variantID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum item quantity: %w", err)
	}
	return sum, nil
}

func itemDuplicate(constraint string, it *entity.Item) error {
	switch constraint {
	case "items_code_key":
		return domain.Duplicate("code", it.Code)
	case "items_slug_key":
		return domain.Duplicate("slug", it.Slug)
	case "items_barcode_key":
		return domain.Duplicate("barcode", it.Barcode)
	case "items_ean_code_key":
		return domain.Duplicate("ean_code", it.EANCode)
	case "items_upc_code_key":
		return domain.Duplicate("upc_code", it.UPCCode)
	default:
		return domain.Duplicate("full_code", it.FullCode)
	}
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	var attrs []byte
	if err := row.Scan(&it.ID, &it.Code, &it.Slug, &it.VariantID, &it.LocationID, &it.BinID,
		&it.SequentialCode, &it.FullCode, &it.Barcode, &it.EANCode, &it.UPCCode,
		&it.InitialQuantity, &it.CurrentQuantity, &it.UnitCost, &it.Status, &it.BatchNumber,
		&it.ManufacturingDate, &it.ExpiryDate, &attrs, &it.CreatedBy, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	if err := fromJSONB(attrs, &it.Attributes); err != nil {
		return nil, err
	}
	return &it, nil
}
