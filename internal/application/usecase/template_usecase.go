package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/attribute"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

const maxTemplateName = 200

// TemplateUseCase casos de uso del catálogo de plantillas de atributos.
type TemplateUseCase struct {
	repo repository.TemplateRepository
}

// NewTemplateUseCase construye el caso de uso.
func NewTemplateUseCase(repo repository.TemplateRepository) *TemplateUseCase {
	return &TemplateUseCase{repo: repo}
}

// Create crea una plantilla. El nombre es único y al menos uno de los tres
// niveles debe definir atributos.
func (uc *TemplateUseCase) Create(ctx context.Context, in dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	name, err := domain.RequiredText("name", in.Name, maxTemplateName)
	if err != nil {
		return nil, err
	}
	if err := checkSchemas(in.ProductAttributes, in.VariantAttributes, in.ItemAttributes); err != nil {
		return nil, err
	}
	if err := uc.ensureUniqueName(ctx, name, ""); err != nil {
		return nil, err
	}
	seq, err := uc.repo.NextSequentialCode(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	template := &entity.Template{
		ID:                uuid.New().String(),
		Name:              name,
		Description:       in.Description,
		SequentialCode:    seq,
		ProductAttributes: nonNilSchema(in.ProductAttributes),
		VariantAttributes: nonNilSchema(in.VariantAttributes),
		ItemAttributes:    nonNilSchema(in.ItemAttributes),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(ctx, template); err != nil {
		return nil, err
	}
	return toTemplateResponse(template), nil
}

// GetByID obtiene una plantilla por ID.
func (uc *TemplateUseCase) GetByID(ctx context.Context, id string) (*dto.TemplateResponse, error) {
	template, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTemplateResponse(template), nil
}

// Update aplica una actualización parcial con las mismas reglas que Create;
// la propia plantilla queda excluida del chequeo de unicidad.
func (uc *TemplateUseCase) Update(ctx context.Context, id string, in dto.UpdateTemplateRequest) (*dto.TemplateResponse, error) {
	template, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name, err := domain.RequiredText("name", *in.Name, maxTemplateName)
		if err != nil {
			return nil, err
		}
		if err := uc.ensureUniqueName(ctx, name, template.ID); err != nil {
			return nil, err
		}
		template.Name = name
	}
	if in.Description != nil {
		template.Description = *in.Description
	}
	if in.ProductAttributes != nil {
		template.ProductAttributes = nonNilSchema(*in.ProductAttributes)
	}
	if in.VariantAttributes != nil {
		template.VariantAttributes = nonNilSchema(*in.VariantAttributes)
	}
	if in.ItemAttributes != nil {
		template.ItemAttributes = nonNilSchema(*in.ItemAttributes)
	}
	if err := checkSchemas(template.ProductAttributes, template.VariantAttributes, template.ItemAttributes); err != nil {
		return nil, err
	}
	template.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, template); err != nil {
		return nil, err
	}
	return toTemplateResponse(template), nil
}

// List lista plantillas con paginación.
func (uc *TemplateUseCase) List(ctx context.Context, limit, offset int) (*dto.TemplateListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TemplateResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTemplateResponse(t))
	}
	return &dto.TemplateListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete borrado físico. No verifica productos que aún apunten a la plantilla.
func (uc *TemplateUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *TemplateUseCase) get(ctx context.Context, id string) (*entity.Template, error) {
	template, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, domain.NotFound("template", id)
	}
	return template, nil
}

func (uc *TemplateUseCase) ensureUniqueName(ctx context.Context, name, selfID string) error {
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.Duplicate("name", name)
	}
	return nil
}

// checkSchemas valida la forma de cada nivel y exige al menos uno no vacío.
func checkSchemas(product, variant, item attribute.Schema) error {
	if err := product.Check(attribute.TierProduct); err != nil {
		return err
	}
	if err := variant.Check(attribute.TierVariant); err != nil {
		return err
	}
	if err := item.Check(attribute.TierItem); err != nil {
		return err
	}
	if product.IsEmpty() && variant.IsEmpty() && item.IsEmpty() {
		return domain.Invalid("attributes", "la plantilla debe definir al menos un atributo en algún nivel")
	}
	return nil
}

func nonNilSchema(s attribute.Schema) attribute.Schema {
	if s == nil {
		return attribute.Schema{}
	}
	return s
}

func toTemplateResponse(t *entity.Template) *dto.TemplateResponse {
	if t == nil {
		return nil
	}
	return &dto.TemplateResponse{
		ID:                t.ID,
		Name:              t.Name,
		Description:       t.Description,
		SequentialCode:    t.SequentialCode,
		ProductAttributes: t.ProductAttributes,
		VariantAttributes: t.VariantAttributes,
		ItemAttributes:    t.ItemAttributes,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}
