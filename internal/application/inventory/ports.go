package inventory

import (
	"context"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad del libro: item, movimiento, ocupación de bins y costo de la variante
// se escriben juntos o no se escribe nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
		bins repository.BinRepository,
		variants repository.VariantRepository,
	) error) error
}

// LabelRenderer genera el documento imprimible de la etiqueta de un item.
type LabelRenderer interface {
	RenderItemLabel(label dto.ItemLabel) ([]byte, error)
}
