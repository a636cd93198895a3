package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-stock/internal/domain/attribute"
)

// Estados de item. No hay transición automática al agotarse (ver DESIGN.md).
const (
	ItemStatusActive   = "ACTIVE"
	ItemStatusInactive = "INACTIVE"
)

// Item unidad física (o lote) trazable de una Variant.
// FullCode, Barcode, EANCode y UPCCode se asignan una sola vez al crearse y no
// tienen camino de actualización; CurrentQuantity solo decrece (salidas).
type Item struct {
	ID                string
	Code              string // único, <=128; por defecto FullCode
	Slug              string
	VariantID         string
	LocationID        string
	BinID             string // vacío si el item está en la ubicación sin bin
	SequentialCode    int64
	FullCode          string
	Barcode           string
	EANCode           string
	UPCCode           string
	InitialQuantity   decimal.Decimal
	CurrentQuantity   decimal.Decimal
	UnitCost          decimal.Decimal
	Status            string
	BatchNumber       string
	ManufacturingDate *time.Time
	ExpiryDate        *time.Time
	Attributes        attribute.Values
	CreatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
