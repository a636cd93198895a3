package repository

import (
	"context"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
}

// ManufacturerRepository define el puerto de persistencia para Manufacturer.
type ManufacturerRepository interface {
	Create(ctx context.Context, manufacturer *entity.Manufacturer) error
	GetByID(ctx context.Context, id string) (*entity.Manufacturer, error)
	// NextSequentialCode toma el siguiente valor de la secuencia de fabricantes.
	NextSequentialCode(ctx context.Context) (int64, error)
}
