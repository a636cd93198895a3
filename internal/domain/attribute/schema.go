// Package attribute implementa el motor de esquemas de atributos dinámicos:
// cada plantilla define, por nivel (producto, variante, item), qué claves son
// legales, cuáles son obligatorias y de qué tipo es cada valor.
package attribute

import (
	"sort"
	"strings"

	"github.com/jhoicas/inventario-stock/internal/domain"
)

// Type tipo declarado de un atributo.
type Type string

// Tipos de atributo soportados.
const (
	TypeString Type = "string"
	TypeNumber Type = "number"
	TypeSelect Type = "select"
)

// Niveles de una plantilla.
const (
	TierProduct = "product"
	TierVariant = "variant"
	TierItem    = "item"
)

// Def definición de un atributo dentro de un nivel de la plantilla.
type Def struct {
	Type          Type     `json:"type" yaml:"type"`
	Required      bool     `json:"required,omitempty" yaml:"required,omitempty"`
	Options       []string `json:"options,omitempty" yaml:"options,omitempty"`         // solo select
	UnitOfMeasure string   `json:"unit_of_measure,omitempty" yaml:"unit_of_measure,omitempty"`
	ShowInList    bool     `json:"show_in_list,omitempty" yaml:"show_in_list,omitempty"`
	ShowInLabel   bool     `json:"show_in_label,omitempty" yaml:"show_in_label,omitempty"` // se imprime en la etiqueta del item
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// Schema mapa clave → definición de un nivel.
type Schema map[string]Def

// Keys devuelve las claves ordenadas (salida determinista en mensajes de error).
func (s Schema) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsEmpty indica si el nivel no define ningún atributo.
func (s Schema) IsEmpty() bool { return len(s) == 0 }

// Check valida la forma del propio esquema: claves no vacías, tipo conocido y
// opciones no vacías (y sin repetir) para select.
func (s Schema) Check(tier string) error {
	field := tier + "_attributes"
	for _, key := range s.Keys() {
		def := s[key]
		if strings.TrimSpace(key) == "" {
			return domain.Invalid(field, "clave de atributo vacía")
		}
		switch def.Type {
		case TypeString, TypeNumber:
			if len(def.Options) > 0 {
				return domain.Invalid(field, "el atributo %q solo admite opciones si es de tipo select", key)
			}
		case TypeSelect:
			if len(def.Options) == 0 {
				return domain.Invalid(field, "el atributo select %q requiere opciones", key)
			}
			seen := make(map[string]struct{}, len(def.Options))
			for _, opt := range def.Options {
				if opt == "" {
					return domain.Invalid(field, "el atributo %q tiene una opción vacía", key)
				}
				if _, dup := seen[opt]; dup {
					return domain.Invalid(field, "el atributo %q repite la opción %q", key, opt)
				}
				seen[opt] = struct{}{}
			}
		default:
			return domain.Invalid(field, "el atributo %q tiene un tipo desconocido %q", key, def.Type)
		}
	}
	return nil
}

// LabelKeys claves marcadas para imprimirse en etiquetas.
func (s Schema) LabelKeys() []string {
	var keys []string
	for _, k := range s.Keys() {
		if s[k].ShowInLabel {
			keys = append(keys, k)
		}
	}
	return keys
}
