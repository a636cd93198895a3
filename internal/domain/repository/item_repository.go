package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
// No expone actualización de fullCode ni de los códigos derivados.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	GetByCode(ctx context.Context, code string) (*entity.Item, error)
	GetByEAN(ctx context.Context, ean string) (*entity.Item, error)
	// GetForUpdate obtiene el item y bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)
	// LockVariantScope bloquea la fila de la variante para serializar la asignación
	// de secuenciales dentro de la transacción en curso.
	LockVariantScope(ctx context.Context, variantID string) error
	// GetLastByVariant item con mayor sequential_code de la variante, o nil.
	GetLastByVariant(ctx context.Context, variantID string) (*entity.Item, error)
	// NextScanSequence siguiente secuencial global del que se derivan EAN y UPC del item.
	NextScanSequence(ctx context.Context) (int64, error)
	// DecrementQuantity resta qty solo si current_quantity >= qty (actualización condicional).
	// ok=false si no se afectó ninguna fila; after es la cantidad resultante.
	DecrementQuantity(ctx context.Context, id string, qty decimal.Decimal, now time.Time) (after decimal.Decimal, ok bool, err error)
	UpdateLocation(ctx context.Context, id, locationID, binID string, now time.Time) error
	ListByVariant(ctx context.Context, variantID string, limit, offset int) ([]*entity.Item, error)
	SumQuantityByVariant(ctx context.Context, variantID string) (decimal.Decimal, error)
}
