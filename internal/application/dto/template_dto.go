package dto

import (
	"time"

	"github.com/jhoicas/inventario-stock/internal/domain/attribute"
)

// CreateTemplateRequest entrada para crear una plantilla de atributos.
type CreateTemplateRequest struct {
	Name              string           `json:"name" yaml:"name" validate:"required,min=1,max=200"`
	Description       string           `json:"description" yaml:"description"`
	ProductAttributes attribute.Schema `json:"product_attributes" yaml:"product_attributes"`
	VariantAttributes attribute.Schema `json:"variant_attributes" yaml:"variant_attributes"`
	ItemAttributes    attribute.Schema `json:"item_attributes" yaml:"item_attributes"`
}

// UpdateTemplateRequest actualización parcial; un mapa nil no se toca.
type UpdateTemplateRequest struct {
	Name              *string           `json:"name" validate:"omitempty,min=1,max=200"`
	Description       *string           `json:"description"`
	ProductAttributes *attribute.Schema `json:"product_attributes"`
	VariantAttributes *attribute.Schema `json:"variant_attributes"`
	ItemAttributes    *attribute.Schema `json:"item_attributes"`
}

// TemplateResponse salida de una plantilla.
type TemplateResponse struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	SequentialCode    int64            `json:"sequential_code"`
	ProductAttributes attribute.Schema `json:"product_attributes"`
	VariantAttributes attribute.Schema `json:"variant_attributes"`
	ItemAttributes    attribute.Schema `json:"item_attributes"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// TemplateListResponse lista paginada de plantillas.
type TemplateListResponse struct {
	Items []TemplateResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
