package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-stock/internal/domain/attribute"
)

// CreateVariantRequest entrada para crear una variante. SKU vacío = autogenerado.
type CreateVariantRequest struct {
	ProductID       string           `json:"product_id" validate:"required"`
	SKU             string           `json:"sku" validate:"max=64"`
	Name            string           `json:"name" validate:"required,max=256"`
	Description     string           `json:"description"`
	Price           decimal.Decimal  `json:"price"`
	CostPrice       *decimal.Decimal `json:"cost_price"`
	ProfitMargin    *decimal.Decimal `json:"profit_margin"`
	Barcode         string           `json:"barcode" validate:"max=128"`
	EANCode         string           `json:"ean_code" validate:"max=13"`
	UPCCode         string           `json:"upc_code" validate:"max=12"`
	ColorHex        string           `json:"color_hex"`
	MinStock        decimal.Decimal  `json:"min_stock"`
	MaxStock        decimal.Decimal  `json:"max_stock"`
	ReorderPoint    decimal.Decimal  `json:"reorder_point"`
	ReorderQuantity decimal.Decimal  `json:"reorder_quantity"`
	Attributes      json.RawMessage  `json:"attributes"`
}

// UpdateVariantRequest actualización parcial de una variante.
type UpdateVariantRequest struct {
	SKU             *string          `json:"sku"`
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	CostPrice       *decimal.Decimal `json:"cost_price"`
	ProfitMargin    *decimal.Decimal `json:"profit_margin"`
	Barcode         *string          `json:"barcode"`
	EANCode         *string          `json:"ean_code"`
	UPCCode         *string          `json:"upc_code"`
	ColorHex        *string          `json:"color_hex"`
	MinStock        *decimal.Decimal `json:"min_stock"`
	MaxStock        *decimal.Decimal `json:"max_stock"`
	ReorderPoint    *decimal.Decimal `json:"reorder_point"`
	ReorderQuantity *decimal.Decimal `json:"reorder_quantity"`
	IsActive        *bool            `json:"is_active"`
	Attributes      json.RawMessage  `json:"attributes"`
}

// VariantResponse salida de una variante.
type VariantResponse struct {
	ID              string           `json:"id"`
	ProductID       string           `json:"product_id"`
	SKU             string           `json:"sku"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	SequentialCode  int64            `json:"sequential_code"`
	FullCode        string           `json:"full_code"`
	Price           decimal.Decimal  `json:"price"`
	CostPrice       *decimal.Decimal `json:"cost_price,omitempty"`
	ProfitMargin    *decimal.Decimal `json:"profit_margin,omitempty"`
	Barcode         string           `json:"barcode,omitempty"`
	EANCode         string           `json:"ean_code,omitempty"`
	UPCCode         string           `json:"upc_code,omitempty"`
	ColorHex        string           `json:"color_hex,omitempty"`
	MinStock        decimal.Decimal  `json:"min_stock"`
	MaxStock        decimal.Decimal  `json:"max_stock"`
	ReorderPoint    decimal.Decimal  `json:"reorder_point"`
	ReorderQuantity decimal.Decimal  `json:"reorder_quantity"`
	IsActive        bool             `json:"is_active"`
	Attributes      attribute.Values `json:"attributes"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// VariantListResponse lista paginada de variantes.
type VariantListResponse struct {
	Items []VariantResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
