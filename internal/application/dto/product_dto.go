package dto

import (
	"encoding/json"
	"time"

	"github.com/jhoicas/inventario-stock/internal/domain/attribute"
)

// CreateProductRequest entrada para crear un producto bajo una plantilla.
type CreateProductRequest struct {
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	Code           string          `json:"code" validate:"max=100"`
	Description    string          `json:"description"`
	Status         string          `json:"status"` // por defecto DRAFT
	TemplateID     string          `json:"template_id" validate:"required"`
	SupplierID     string          `json:"supplier_id"`
	ManufacturerID string          `json:"manufacturer_id"`
	Attributes     json.RawMessage `json:"attributes"`
}

// UpdateProductRequest actualización parcial. La plantilla no cambia; los
// atributos se revalidan contra ella.
type UpdateProductRequest struct {
	Name           *string         `json:"name" validate:"omitempty,min=1,max=200"`
	Code           *string         `json:"code"`
	Description    *string         `json:"description"`
	Status         *string         `json:"status"`
	SupplierID     *string         `json:"supplier_id"`
	ManufacturerID *string         `json:"manufacturer_id"`
	Attributes     json.RawMessage `json:"attributes"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Code           string           `json:"code"`
	Description    string           `json:"description"`
	Status         string           `json:"status"`
	TemplateID     string           `json:"template_id"`
	SupplierID     string           `json:"supplier_id,omitempty"`
	ManufacturerID string           `json:"manufacturer_id,omitempty"`
	SequentialCode int64            `json:"sequential_code"`
	FullCode       string           `json:"full_code"`
	Attributes     attribute.Values `json:"attributes"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
