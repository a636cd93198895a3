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

// PartnerUseCase alta y consulta de proveedores y fabricantes.
type PartnerUseCase struct {
	suppliers     repository.SupplierRepository
	manufacturers repository.ManufacturerRepository
}

// NewPartnerUseCase construye el caso de uso.
func NewPartnerUseCase(suppliers repository.SupplierRepository, manufacturers repository.ManufacturerRepository) *PartnerUseCase {
	return &PartnerUseCase{suppliers: suppliers, manufacturers: manufacturers}
}

// CreateSupplier registra un proveedor.
func (uc *PartnerUseCase) CreateSupplier(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name, err := domain.RequiredText("name", in.Name, 200)
	if err != nil {
		return nil, err
	}
	s := &entity.Supplier{ID: uuid.New().String(), Name: name, TaxID: in.TaxID, CreatedAt: time.Now()}
	if err := uc.suppliers.Create(ctx, s); err != nil {
		return nil, err
	}
	return &dto.SupplierResponse{ID: s.ID, Name: s.Name, TaxID: s.TaxID, CreatedAt: s.CreatedAt}, nil
}

// GetSupplier obtiene un proveedor por ID.
func (uc *PartnerUseCase) GetSupplier(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	s, err := uc.suppliers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NotFound("supplier", id)
	}
	return &dto.SupplierResponse{ID: s.ID, Name: s.Name, TaxID: s.TaxID, CreatedAt: s.CreatedAt}, nil
}

// CreateManufacturer registra un fabricante y le asigna el siguiente secuencial,
// segundo segmento del fullCode de sus productos.
func (uc *PartnerUseCase) CreateManufacturer(ctx context.Context, in dto.CreateManufacturerRequest) (*dto.ManufacturerResponse, error) {
	name, err := domain.RequiredText("name", in.Name, 200)
	if err != nil {
		return nil, err
	}
	seq, err := uc.manufacturers.NextSequentialCode(ctx)
	if err != nil {
		return nil, err
	}
	m := &entity.Manufacturer{ID: uuid.New().String(), Name: name, SequentialCode: seq, CreatedAt: time.Now()}
	if err := uc.manufacturers.Create(ctx, m); err != nil {
		return nil, err
	}
	return toManufacturerResponse(m), nil
}

// GetManufacturer obtiene un fabricante por ID.
func (uc *PartnerUseCase) GetManufacturer(ctx context.Context, id string) (*dto.ManufacturerResponse, error) {
	m, err := uc.manufacturers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.NotFound("manufacturer", id)
	}
	return toManufacturerResponse(m), nil
}

func toManufacturerResponse(m *entity.Manufacturer) *dto.ManufacturerResponse {
	return &dto.ManufacturerResponse{ID: m.ID, Name: m.Name, SequentialCode: m.SequentialCode, CreatedAt: m.CreatedAt}
}
