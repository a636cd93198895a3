package repository

import (
	"context"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para Location (DIP).
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	GetByCode(ctx context.Context, code string) (*entity.Location, error)
	ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.Location, error)
}

// BinRepository define el puerto de persistencia para Bin (DIP).
type BinRepository interface {
	Create(ctx context.Context, bin *entity.Bin) error
	GetByID(ctx context.Context, id string) (*entity.Bin, error)
	GetByCode(ctx context.Context, code string) (*entity.Bin, error)
	ListByLocation(ctx context.Context, locationID string) ([]*entity.Bin, error)
	// Occupy suma 1 a occupancy solo si hay capacidad (condicional); ok=false si está lleno.
	Occupy(ctx context.Context, id string) (ok bool, err error)
	// Release resta 1 a occupancy (nunca por debajo de 0).
	Release(ctx context.Context, id string) error
}
