package repository

import (
	"context"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// TemplateRepository define el puerto de persistencia para Template (DIP).
// Los Get* devuelven (nil, nil) si no existe.
type TemplateRepository interface {
	Create(ctx context.Context, template *entity.Template) error
	GetByID(ctx context.Context, id string) (*entity.Template, error)
	GetByName(ctx context.Context, name string) (*entity.Template, error)
	Update(ctx context.Context, template *entity.Template) error
	// Delete borrado físico sin verificar productos que aún la referencian.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*entity.Template, error)
	// NextSequentialCode toma el siguiente valor de la secuencia global de plantillas.
	NextSequentialCode(ctx context.Context) (int64, error)
}
