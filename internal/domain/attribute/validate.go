package attribute

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-stock/internal/domain"
)

// Validate comprueba values contra schema sin efectos secundarios.
// Es válido sii keys(values) ⊆ keys(schema), toda clave requerida está presente
// y cada valor coincide con el tipo de su definición.
func Validate(values map[string]any, schema Schema, tier string) error {
	_, err := Parse(values, schema, tier)
	return err
}

// Parse valida y convierte la entrada cruda a su forma tipada.
// Orden de las comprobaciones: claves desconocidas, requeridas faltantes, tipos.
func Parse(values map[string]any, schema Schema, tier string) (Values, error) {
	field := tier + "_attributes"

	var unknown []string
	for k := range values {
		if _, ok := schema[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, domain.Invalid(field, "atributos desconocidos [%s]; permitidos: [%s]",
			strings.Join(unknown, ", "), strings.Join(schema.Keys(), ", "))
	}

	for _, k := range schema.Keys() {
		if !schema[k].Required {
			continue
		}
		if _, ok := values[k]; !ok {
			return nil, domain.Invalid(field, "falta el atributo requerido %q", k)
		}
	}

	out := make(Values, len(values))
	for _, k := range sortedKeys(values) {
		v, err := convert(k, values[k], schema[k])
		if err != nil {
			return nil, domain.Invalid(field, "%s", err.Error())
		}
		out[k] = v
	}
	return out, nil
}

// ParseJSON decodifica JSON crudo (frontera HTTP/CLI) y lo valida contra schema.
// Formas no convertibles (no-objeto, JSON roto) se rechazan como ValidationError.
func ParseJSON(data []byte, schema Schema, tier string) (Values, error) {
	raw, err := Decode(data)
	if err != nil {
		return nil, domain.Invalid(tier+"_attributes", "%s", err.Error())
	}
	return Parse(raw, schema, tier)
}

func convert(key string, raw any, def Def) (Value, error) {
	switch def.Type {
	case TypeString:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("el atributo %q debe ser de tipo string", key)
		}
		return String(s), nil
	case TypeNumber:
		d, ok := toDecimal(raw)
		if !ok {
			return nil, fmt.Errorf("el atributo %q debe ser de tipo number", key)
		}
		return Number(d), nil
	case TypeSelect:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("el atributo %q debe ser una opción (string)", key)
		}
		for _, opt := range def.Options {
			if opt == s {
				return Select(s), nil
			}
		}
		return nil, fmt.Errorf("el atributo %q debe ser una de [%s]", key, strings.Join(def.Options, ", "))
	}
	return nil, fmt.Errorf("el atributo %q tiene un tipo desconocido %q", key, def.Type)
}

// toDecimal acepta los números que producen encoding/json y yaml.v3, nunca strings.
func toDecimal(raw any) (decimal.Decimal, bool) {
	switch n := raw.(type) {
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case decimal.Decimal:
		return n, true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt32(n), true
	case int64:
		return decimal.NewFromInt(n), true
	case uint:
		return decimal.NewFromInt(int64(n)), true
	case uint64:
		if n > math.MaxInt64 {
			return decimal.Zero, false
		}
		return decimal.NewFromInt(int64(n)), true
	}
	return decimal.Zero, false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
