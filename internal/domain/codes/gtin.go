package codes

import (
	"fmt"
	"strings"
)

// Prefijos de circulación restringida (uso interno de la empresa): GS1 reserva
// 20-29 para EAN-13 y el sistema numérico 4 para UPC-A.
const (
	eanPrefix = "2"
	upcPrefix = "4"
)

// MaxScanSequence mayor secuencial global que cabe en los 10 dígitos de datos
// de un UPC-A tras el prefijo. El EAN-13 se limita al mismo rango.
const MaxScanSequence int64 = 9_999_999_999

// gtinCheckDigit calcula el dígito de control GS1 (módulo 10) sobre payload.
// Pesos 3,1,3,... empezando por el dígito más a la derecha del payload; sirve
// tanto para EAN-13 (12 dígitos) como para UPC-A (11 dígitos).
func gtinCheckDigit(payload string) (byte, error) {
	sum := 0
	weight := 3
	for i := len(payload) - 1; i >= 0; i-- {
		c := payload[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("dígito inválido %q", c)
		}
		sum += int(c-'0') * weight
		weight = 4 - weight
	}
	return byte('0' + (10-sum%10)%10), nil
}

// EANCheckDigit dígito de control de los 12 primeros dígitos de un EAN-13.
func EANCheckDigit(first12 string) (byte, error) {
	if len(first12) != 12 {
		return 0, fmt.Errorf("EAN-13 requiere 12 dígitos de datos, recibió %d", len(first12))
	}
	return gtinCheckDigit(first12)
}

// UPCCheckDigit dígito de control de los 11 primeros dígitos de un UPC-A.
func UPCCheckDigit(first11 string) (byte, error) {
	if len(first11) != 11 {
		return 0, fmt.Errorf("UPC-A requiere 11 dígitos de datos, recibió %d", len(first11))
	}
	return gtinCheckDigit(first11)
}

// ValidEAN13 indica si code tiene 13 dígitos y dígito de control correcto.
func ValidEAN13(code string) bool {
	if len(code) != 13 {
		return false
	}
	d, err := EANCheckDigit(code[:12])
	return err == nil && d == code[12]
}

// ValidUPCA indica si code tiene 12 dígitos y dígito de control correcto.
func ValidUPCA(code string) bool {
	if len(code) != 12 {
		return false
	}
	d, err := UPCCheckDigit(code[:11])
	return err == nil && d == code[11]
}

// EAN13 codifica el secuencial global de escaneo del item: prefijo "2", el
// secuencial en 11 dígitos y dígito de control. Secuenciales distintos dan
// códigos distintos.
func EAN13(scanSeq int64) (string, error) {
	if err := checkScanSequence(scanSeq); err != nil {
		return "", err
	}
	payload := eanPrefix + Pad(scanSeq, 11)
	d, err := EANCheckDigit(payload)
	if err != nil {
		return "", err
	}
	return payload + string(d), nil
}

// UPCA codifica el secuencial global de escaneo: prefijo "4", 10 dígitos y
// dígito de control.
func UPCA(scanSeq int64) (string, error) {
	if err := checkScanSequence(scanSeq); err != nil {
		return "", err
	}
	payload := upcPrefix + Pad(scanSeq, 10)
	d, err := UPCCheckDigit(payload)
	if err != nil {
		return "", err
	}
	return payload + string(d), nil
}

// ScanSequence recupera el secuencial de un EAN-13 o UPC-A emitido por EAN13/UPCA.
func ScanSequence(code string) (int64, bool) {
	var digits string
	switch {
	case len(code) == 13 && strings.HasPrefix(code, eanPrefix) && ValidEAN13(code):
		digits = code[1:12]
	case len(code) == 12 && strings.HasPrefix(code, upcPrefix) && ValidUPCA(code):
		digits = code[1:11]
	default:
		return 0, false
	}
	var n int64
	for i := 0; i < len(digits); i++ {
		n = n*10 + int64(digits[i]-'0')
	}
	return n, n >= 1 && n <= MaxScanSequence
}

// ReservedEAN13 indica si code cae en el rango que EAN13 asigna a items, o en el
// UPC-A de items leído como EAN-13 ("0" + UPC).
func ReservedEAN13(code string) bool {
	return strings.HasPrefix(code, eanPrefix) || strings.HasPrefix(code, "0"+upcPrefix)
}

// ReservedUPCA indica si code cae en el rango que UPCA asigna a items.
func ReservedUPCA(code string) bool {
	return strings.HasPrefix(code, upcPrefix)
}

func checkScanSequence(n int64) error {
	if n < 1 || n > MaxScanSequence {
		return fmt.Errorf("secuencial de escaneo %d fuera de rango [1, %d]", n, MaxScanSequence)
	}
	return nil
}
