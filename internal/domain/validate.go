package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// RequiredText recorta value y exige entre 1 y max caracteres.
func RequiredText(field, value string, max int) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", Invalid(field, "es obligatorio")
	}
	if err := MaxLength(field, v, max); err != nil {
		return "", err
	}
	return v, nil
}

// MaxLength rechaza value si supera max caracteres.
func MaxLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return Invalid(field, "no puede superar %d caracteres", max)
	}
	return nil
}

// Cantidades y montos se almacenan como NUMERIC(18,4).
const (
	DecimalScale    = 4
	decimalIntegers = 14
)

var decimalLimit = decimal.New(1, decimalIntegers)

// Storable rechaza valores con más de DecimalScale decimales o más de 14 dígitos
// enteros, que el almacén redondearía o no podría guardar.
func Storable(field string, d decimal.Decimal) error {
	if !d.Equal(d.Truncate(DecimalScale)) {
		return Invalid(field, "admite como máximo %d decimales", DecimalScale)
	}
	if d.Abs().GreaterThanOrEqual(decimalLimit) {
		return Invalid(field, "admite como máximo %d dígitos enteros", decimalIntegers)
	}
	return nil
}

// NonNegative rechaza valores negativos o no almacenables.
func NonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return Invalid(field, "no puede ser negativo")
	}
	return Storable(field, d)
}

// Positive exige un valor estrictamente mayor que cero y almacenable.
func Positive(field string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return Invalid(field, "debe ser mayor que cero")
	}
	return Storable(field, d)
}
