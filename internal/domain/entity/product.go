package entity

import (
	"time"

	"github.com/jhoicas/inventario-stock/internal/domain/attribute"
)

// Estados de producto.
const (
	ProductStatusDraft        = "DRAFT"
	ProductStatusActive       = "ACTIVE"
	ProductStatusInactive     = "INACTIVE"
	ProductStatusDiscontinued = "DISCONTINUED"
	ProductStatusOutOfStock   = "OUT_OF_STOCK"
)

// ValidProductStatus indica si s pertenece al conjunto enumerado.
func ValidProductStatus(s string) bool {
	switch s {
	case ProductStatusDraft, ProductStatusActive, ProductStatusInactive,
		ProductStatusDiscontinued, ProductStatusOutOfStock:
		return true
	}
	return false
}

// Product entrada de catálogo; referencia exactamente una Template.
// FullCode = "{plantilla}.{fabricante}.{secuencial}", fijo desde la creación.
type Product struct {
	ID             string
	Name           string // único, 1-200
	Code           string // opcional, <=100
	Description    string
	Status         string
	TemplateID     string
	SupplierID     string // vacío si no aplica
	ManufacturerID string // vacío si no aplica
	SequentialCode int64  // monotónico por plantilla
	FullCode       string
	Attributes     attribute.Values
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
