package attribute

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Value es un valor de atributo ya tipado. Interfaz sellada: solo String, Number y Select.
type Value interface {
	attributeValue()
	Type() Type
	Raw() any
}

// String valor de texto libre.
type String string

func (String) attributeValue() {}
func (String) Type() Type      { return TypeString }
func (v String) Raw() any      { return string(v) }

// Number valor numérico (decimal exacto, nunca float).
type Number decimal.Decimal

func (Number) attributeValue() {}
func (Number) Type() Type      { return TypeNumber }
func (v Number) Raw() any      { return json.Number(decimal.Decimal(v).String()) }

// Decimal devuelve el valor como decimal.Decimal.
func (v Number) Decimal() decimal.Decimal { return decimal.Decimal(v) }

// Select una de las opciones declaradas por la definición.
type Select string

func (Select) attributeValue() {}
func (Select) Type() Type      { return TypeSelect }
func (v Select) Raw() any      { return string(v) }

// Values mapa de atributos tipados de una entidad.
type Values map[string]Value

// Raw convierte a un mapa plano (string / json.Number) apto para JSON.
func (v Values) Raw() map[string]any {
	out := make(map[string]any, len(v))
	for k, val := range v {
		out[k] = val.Raw()
	}
	return out
}

// MarshalJSON serializa como objeto plano: {"color":"rojo","peso":1.5}.
func (v Values) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(v.Raw())
}

// UnmarshalJSON lee un objeto plano persistido. Sin esquema a mano no se puede
// distinguir select de string, así que todo texto se lee como String; la
// validación contra la plantilla ocurre siempre en la escritura (Parse).
func (v *Values) UnmarshalJSON(data []byte) error {
	raw, err := Decode(data)
	if err != nil {
		return err
	}
	out := make(Values, len(raw))
	for k, r := range raw {
		switch t := r.(type) {
		case string:
			out[k] = String(t)
		case json.Number:
			d, err := decimal.NewFromString(t.String())
			if err != nil {
				return fmt.Errorf("atributo %q: %w", k, err)
			}
			out[k] = Number(d)
		default:
			return fmt.Errorf("atributo %q: tipo persistido no soportado %T", k, r)
		}
	}
	*v = out
	return nil
}

// Decode convierte JSON crudo en un mapa sin tipar preservando los números
// (json.Number). null o vacío equivalen a un mapa vacío.
func Decode(data []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return map[string]any{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("los atributos deben ser un objeto JSON: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}
