package entity

import (
	"time"

	"github.com/jhoicas/inventario-stock/internal/domain/attribute"
)

// Template esquema de atributos con nombre para los tres niveles del catálogo.
// SequentialCode es el primer segmento del fullCode de sus productos.
type Template struct {
	ID                string
	Name              string // único, 1-200
	Description       string
	SequentialCode    int64
	ProductAttributes attribute.Schema
	VariantAttributes attribute.Schema
	ItemAttributes    attribute.Schema
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SchemaFor devuelve el esquema del nivel indicado (attribute.Tier*).
func (t *Template) SchemaFor(tier string) attribute.Schema {
	switch tier {
	case attribute.TierProduct:
		return t.ProductAttributes
	case attribute.TierVariant:
		return t.VariantAttributes
	case attribute.TierItem:
		return t.ItemAttributes
	}
	return nil
}
