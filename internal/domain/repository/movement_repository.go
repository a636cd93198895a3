package repository

import (
	"context"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// MovementRepository puerto del libro de movimientos: solo inserción y lectura.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	// ListByItem devuelve los movimientos del item en orden total de creación.
	ListByItem(ctx context.Context, itemID string) ([]*entity.Movement, error)
}
