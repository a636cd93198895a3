package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-stock/internal/domain/attribute"
)

// Variant especialización vendible de un Product con campos comerciales.
// Barcode/EANCode/UPCCode los puede proveer el usuario y son únicos globalmente.
type Variant struct {
	ID              string
	ProductID       string
	SKU             string // único, <=64
	Name            string // <=256
	Description     string
	SequentialCode  int64 // monotónico por producto
	FullCode        string
	Price           decimal.Decimal
	CostPrice       *decimal.Decimal
	ProfitMargin    *decimal.Decimal // porcentaje 0-100
	Barcode         string
	EANCode         string
	UPCCode         string
	ColorHex        string // #RRGGBB
	MinStock        decimal.Decimal
	MaxStock        decimal.Decimal
	ReorderPoint    decimal.Decimal
	ReorderQuantity decimal.Decimal
	IsActive        bool
	Attributes      attribute.Values
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
