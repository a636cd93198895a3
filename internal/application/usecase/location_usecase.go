package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

const maxPlaceCode = 64

// LocationUseCase ubicaciones y bins dentro de las bodegas.
type LocationUseCase struct {
	locations  repository.LocationRepository
	bins       repository.BinRepository
	warehouses repository.WarehouseRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(
	locations repository.LocationRepository,
	bins repository.BinRepository,
	warehouses repository.WarehouseRepository,
) *LocationUseCase {
	return &LocationUseCase{locations: locations, bins: bins, warehouses: warehouses}
}

// CreateLocation crea una ubicación con código único dentro de una bodega existente.
func (uc *LocationUseCase) CreateLocation(ctx context.Context, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	code, err := domain.RequiredText("code", in.Code, maxPlaceCode)
	if err != nil {
		return nil, err
	}
	if err := domain.MaxLength("name", in.Name, 200); err != nil {
		return nil, err
	}
	warehouse, err := uc.warehouses.GetByID(ctx, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.NotFound("warehouse", in.WarehouseID)
	}
	existing, err := uc.locations.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Duplicate("code", code)
	}
	now := time.Now()
	location := &entity.Location{
		ID:          uuid.New().String(),
		WarehouseID: warehouse.ID,
		Code:        code,
		Name:        in.Name,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.locations.Create(ctx, location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetLocation obtiene una ubicación por ID.
func (uc *LocationUseCase) GetLocation(ctx context.Context, id string) (*dto.LocationResponse, error) {
	location, err := uc.locations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.NotFound("location", id)
	}
	return toLocationResponse(location), nil
}

// ListLocations ubicaciones de una bodega.
func (uc *LocationUseCase) ListLocations(ctx context.Context, warehouseID string) ([]dto.LocationResponse, error) {
	list, err := uc.locations.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		out = append(out, *toLocationResponse(l))
	}
	return out, nil
}

// CreateBin crea un bin. Capacity 0 = sin límite; occupancy nunca supera capacity.
func (uc *LocationUseCase) CreateBin(ctx context.Context, in dto.CreateBinRequest) (*dto.BinResponse, error) {
	code, err := domain.RequiredText("code", in.Code, maxPlaceCode)
	if err != nil {
		return nil, err
	}
	if in.Capacity < 0 {
		return nil, domain.Invalid("capacity", "no puede ser negativo")
	}
	if in.Occupancy < 0 {
		return nil, domain.Invalid("occupancy", "no puede ser negativo")
	}
	if in.Capacity > 0 && in.Occupancy > in.Capacity {
		return nil, domain.Invalid("occupancy", "no puede superar la capacidad (%d)", in.Capacity)
	}
	location, err := uc.locations.GetByID(ctx, in.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.NotFound("location", in.LocationID)
	}
	existing, err := uc.bins.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Duplicate("code", code)
	}
	now := time.Now()
	bin := &entity.Bin{
		ID:         uuid.New().String(),
		LocationID: location.ID,
		Code:       code,
		Capacity:   in.Capacity,
		Occupancy:  in.Occupancy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.bins.Create(ctx, bin); err != nil {
		return nil, err
	}
	return toBinResponse(bin), nil
}

// GetBin obtiene un bin por ID.
func (uc *LocationUseCase) GetBin(ctx context.Context, id string) (*dto.BinResponse, error) {
	bin, err := uc.bins.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bin == nil {
		return nil, domain.NotFound("bin", id)
	}
	return toBinResponse(bin), nil
}

// ListBins bins de una ubicación.
func (uc *LocationUseCase) ListBins(ctx context.Context, locationID string) ([]dto.BinResponse, error) {
	list, err := uc.bins.ListByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BinResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *toBinResponse(b))
	}
	return out, nil
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:          l.ID,
		WarehouseID: l.WarehouseID,
		Code:        l.Code,
		Name:        l.Name,
		IsActive:    l.IsActive,
		CreatedAt:   l.CreatedAt,
	}
}

func toBinResponse(b *entity.Bin) *dto.BinResponse {
	return &dto.BinResponse{
		ID:         b.ID,
		LocationID: b.LocationID,
		Code:       b.Code,
		Capacity:   b.Capacity,
		Occupancy:  b.Occupancy,
		CreatedAt:  b.CreatedAt,
	}
}
