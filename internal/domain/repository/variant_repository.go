package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// ReplenishmentRow resultado crudo para una variante bajo su punto de reorden.
type ReplenishmentRow struct {
	VariantID       string
	SKU             string
	VariantName     string
	CurrentStock    decimal.Decimal
	ReorderPoint    decimal.Decimal
	ReorderQuantity decimal.Decimal
	MaxStock        decimal.Decimal
}

// VariantRepository define el puerto de persistencia para Variant (DIP).
type VariantRepository interface {
	Create(ctx context.Context, variant *entity.Variant) error
	GetByID(ctx context.Context, id string) (*entity.Variant, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Variant, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Variant, error)
	GetByEAN(ctx context.Context, ean string) (*entity.Variant, error)
	GetByUPC(ctx context.Context, upc string) (*entity.Variant, error)
	Update(ctx context.Context, variant *entity.Variant) error
	// UpdateCost actualiza solo el costo promedio (usado por el libro de inventario).
	UpdateCost(ctx context.Context, variantID string, cost decimal.Decimal) error
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.Variant, error)
	// NextSequentialCode bloquea el producto y devuelve el siguiente secuencial de variante.
	NextSequentialCode(ctx context.Context, productID string) (int64, error)
	// ListBelowReorderPoint variantes cuyo stock sumado está bajo el punto de reorden.
	ListBelowReorderPoint(ctx context.Context) ([]ReplenishmentRow, error)
}
