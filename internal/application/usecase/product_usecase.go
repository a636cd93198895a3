package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/attribute"
	"github.com/jhoicas/inventario-stock/internal/domain/codes"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

const (
	maxProductName = 200
	maxProductCode = 100
)

// ProductUseCase registro de productos. Cada producto referencia una plantilla
// y sus atributos se validan contra el nivel product de esa plantilla.
type ProductUseCase struct {
	tx            CatalogTxRunner
	repo          repository.ProductRepository
	templates     repository.TemplateRepository
	suppliers     repository.SupplierRepository
	manufacturers repository.ManufacturerRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	tx CatalogTxRunner,
	repo repository.ProductRepository,
	templates repository.TemplateRepository,
	suppliers repository.SupplierRepository,
	manufacturers repository.ManufacturerRepository,
) *ProductUseCase {
	return &ProductUseCase{
		tx:            tx,
		repo:          repo,
		templates:     templates,
		suppliers:     suppliers,
		manufacturers: manufacturers,
	}
}

// Create crea un producto. Status por defecto DRAFT. El secuencial se asigna
// bajo bloqueo de la plantilla y forma el fullCode "{plantilla}.{fabricante}.{secuencial}".
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name, err := domain.RequiredText("name", in.Name, maxProductName)
	if err != nil {
		return nil, err
	}
	code := strings.TrimSpace(in.Code)
	if err := domain.MaxLength("code", code, maxProductCode); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = entity.ProductStatusDraft
	}
	if !entity.ValidProductStatus(status) {
		return nil, domain.Invalid("status", "estado inválido %q", status)
	}
	if strings.TrimSpace(in.TemplateID) == "" {
		return nil, domain.Invalid("template_id", "es obligatorio")
	}
	template, err := uc.templates.GetByID(ctx, in.TemplateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, domain.NotFound("template", in.TemplateID)
	}
	if err := uc.resolveSupplier(ctx, in.SupplierID); err != nil {
		return nil, err
	}
	manufacturer, err := uc.resolveManufacturer(ctx, in.ManufacturerID)
	if err != nil {
		return nil, err
	}
	attrs, err := attribute.ParseJSON(in.Attributes, template.ProductAttributes, attribute.TierProduct)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureUniqueName(ctx, name, ""); err != nil {
		return nil, err
	}

	var mfrSeq int64
	if manufacturer != nil {
		mfrSeq = manufacturer.SequentialCode
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		Name:           name,
		Code:           code,
		Description:    in.Description,
		Status:         status,
		TemplateID:     template.ID,
		SupplierID:     in.SupplierID,
		ManufacturerID: in.ManufacturerID,
		Attributes:     attrs,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err = uc.tx.RunCatalog(ctx, func(products repository.ProductRepository, _ repository.VariantRepository) error {
		seq, err := products.NextSequentialCode(ctx, template.ID)
		if err != nil {
			return err
		}
		product.SequentialCode = seq
		product.FullCode = codes.ProductFullCode(template.SequentialCode, mfrSeq, seq)
		return products.Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza campo a campo. Los atributos se revalidan contra la plantilla
// del producto, que no cambia; el fullCode tampoco.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name, err := domain.RequiredText("name", *in.Name, maxProductName)
		if err != nil {
			return nil, err
		}
		if err := uc.ensureUniqueName(ctx, name, product.ID); err != nil {
			return nil, err
		}
		product.Name = name
	}
	if in.Code != nil {
		code := strings.TrimSpace(*in.Code)
		if err := domain.MaxLength("code", code, maxProductCode); err != nil {
			return nil, err
		}
		product.Code = code
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Status != nil {
		if !entity.ValidProductStatus(*in.Status) {
			return nil, domain.Invalid("status", "estado inválido %q", *in.Status)
		}
		product.Status = *in.Status
	}
	if in.SupplierID != nil {
		if err := uc.resolveSupplier(ctx, *in.SupplierID); err != nil {
			return nil, err
		}
		product.SupplierID = *in.SupplierID
	}
	if in.ManufacturerID != nil {
		if _, err := uc.resolveManufacturer(ctx, *in.ManufacturerID); err != nil {
			return nil, err
		}
		product.ManufacturerID = *in.ManufacturerID
	}
	if len(in.Attributes) > 0 {
		template, err := uc.templates.GetByID(ctx, product.TemplateID)
		if err != nil {
			return nil, err
		}
		if template == nil {
			return nil, domain.NotFound("template", product.TemplateID)
		}
		attrs, err := attribute.ParseJSON(in.Attributes, template.ProductAttributes, attribute.TierProduct)
		if err != nil {
			return nil, err
		}
		product.Attributes = attrs
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// ListByTemplate lista productos de una plantilla con paginación.
func (uc *ProductUseCase) ListByTemplate(ctx context.Context, templateID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByTemplate(ctx, templateID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *ProductUseCase) get(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("product", id)
	}
	return product, nil
}

func (uc *ProductUseCase) ensureUniqueName(ctx context.Context, name, selfID string) error {
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.Duplicate("name", name)
	}
	return nil
}

func (uc *ProductUseCase) resolveSupplier(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	supplier, err := uc.suppliers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.NotFound("supplier", id)
	}
	return nil
}

func (uc *ProductUseCase) resolveManufacturer(ctx context.Context, id string) (*entity.Manufacturer, error) {
	if id == "" {
		return nil, nil
	}
	manufacturer, err := uc.manufacturers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if manufacturer == nil {
		return nil, domain.NotFound("manufacturer", id)
	}
	return manufacturer, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Code:           p.Code,
		Description:    p.Description,
		Status:         p.Status,
		TemplateID:     p.TemplateID,
		SupplierID:     p.SupplierID,
		ManufacturerID: p.ManufacturerID,
		SequentialCode: p.SequentialCode,
		FullCode:       p.FullCode,
		Attributes:     p.Attributes,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
