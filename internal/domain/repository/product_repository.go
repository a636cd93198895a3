package repository

import (
	"context"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	ListByTemplate(ctx context.Context, templateID string, limit, offset int) ([]*entity.Product, error)
	// NextSequentialCode bloquea la plantilla y devuelve el siguiente secuencial de producto.
	NextSequentialCode(ctx context.Context, templateID string) (int64, error)
}
