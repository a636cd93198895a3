package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-stock/internal/domain/attribute"
)

// RegisterEntryRequest body para POST /api/inventory/entries.
// Se requiere BinID o LocationID; Code vacío = se usa el fullCode.
type RegisterEntryRequest struct {
	VariantID         string           `json:"variant_id"`
	Code              string           `json:"code,omitempty"`
	BinID             string           `json:"bin_id,omitempty"`
	LocationID        string           `json:"location_id,omitempty"`
	Quantity          decimal.Decimal  `json:"quantity"`
	UnitCost          *decimal.Decimal `json:"unit_cost,omitempty"`
	MovementType      string           `json:"movement_type,omitempty"` // PURCHASE (defecto) | CUSTOMER_RETURN
	Attributes        json.RawMessage  `json:"attributes,omitempty"`
	BatchNumber       string           `json:"batch_number,omitempty"`
	ManufacturingDate *time.Time       `json:"manufacturing_date,omitempty"`
	ExpiryDate        *time.Time       `json:"expiry_date,omitempty"`
	ReasonCode        string           `json:"reason_code,omitempty"`
	Notes             string           `json:"notes,omitempty"`
}

// RegisterExitRequest body para POST /api/inventory/items/:id/exits.
type RegisterExitRequest struct {
	Quantity       decimal.Decimal `json:"quantity"`
	MovementType   string          `json:"movement_type"` // SALE | PRODUCTION | SAMPLE | LOSS
	ReasonCode     string          `json:"reason_code,omitempty"`
	DestinationRef string          `json:"destination_ref,omitempty"`
	Notes          string          `json:"notes,omitempty"`
}

// TransferItemRequest body para POST /api/inventory/items/:id/transfers.
// Se requiere DestinationBinID o DestinationLocationID.
type TransferItemRequest struct {
	DestinationLocationID string `json:"destination_location_id,omitempty"`
	DestinationBinID      string `json:"destination_bin_id,omitempty"`
	ReasonCode            string `json:"reason_code,omitempty"`
	Notes                 string `json:"notes,omitempty"`
}

// ItemResponse salida de un item.
type ItemResponse struct {
	ID                string           `json:"id"`
	Code              string           `json:"code"`
	Slug              string           `json:"slug"`
	VariantID         string           `json:"variant_id"`
	LocationID        string           `json:"location_id"`
	BinID             string           `json:"bin_id,omitempty"`
	SequentialCode    int64            `json:"sequential_code"`
	FullCode          string           `json:"full_code"`
	Barcode           string           `json:"barcode"`
	EANCode           string           `json:"ean_code"`
	UPCCode           string           `json:"upc_code"`
	InitialQuantity   decimal.Decimal  `json:"initial_quantity"`
	CurrentQuantity   decimal.Decimal  `json:"current_quantity"`
	UnitCost          decimal.Decimal  `json:"unit_cost"`
	Status            string           `json:"status"`
	BatchNumber       string           `json:"batch_number,omitempty"`
	ManufacturingDate *time.Time       `json:"manufacturing_date,omitempty"`
	ExpiryDate        *time.Time       `json:"expiry_date,omitempty"`
	Attributes        attribute.Values `json:"attributes"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID             string          `json:"id"`
	ItemID         string          `json:"item_id"`
	UserID         string          `json:"user_id"`
	MovementType   string          `json:"movement_type"`
	Quantity       decimal.Decimal `json:"quantity"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	ReasonCode     string          `json:"reason_code,omitempty"`
	DestinationRef string          `json:"destination_ref,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// LedgerResult estado del item tras una operación y el movimiento que la registró.
type LedgerResult struct {
	Item     ItemResponse     `json:"item"`
	Movement MovementResponse `json:"movement"`
}

// ItemListResponse lista paginada de items.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// MovementListResponse historial de un item en orden de creación.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para una variante bajo su punto de reorden.
type ReplenishmentSuggestionDTO struct {
	VariantID         string          `json:"variant_id"`
	SKU               string          `json:"sku"`
	VariantName       string          `json:"variant_name"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	ReorderPoint      decimal.Decimal `json:"reorder_point"`
	Deficit           decimal.Decimal `json:"deficit"`             // ReorderPoint - CurrentStock
	SuggestedOrderQty decimal.Decimal `json:"suggested_order_qty"` // ReorderQuantity o MaxStock - CurrentStock
	Priority          int             `json:"priority"`            // 1 = más urgente
}

// LabelAttribute atributo impreso en la etiqueta.
type LabelAttribute struct {
	Key   string
	Value string
	Unit  string
}

// ItemLabel datos para renderizar la etiqueta de un item.
type ItemLabel struct {
	ProductName string
	VariantName string
	SKU         string
	FullCode    string
	Barcode     string
	EANCode     string
	UPCCode     string
	BatchNumber string
	ExpiryDate  *time.Time
	Attributes  []LabelAttribute
}
