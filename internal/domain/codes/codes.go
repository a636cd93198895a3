// Package codes deriva los identificadores jerárquicos y los códigos legibles por
// máquina (barcode, EAN-13, UPC-A) de productos, variantes e items.
//
// Separadores: los niveles producto/variante se separan con "." y el nivel item
// con "-". Los consumidores parsean el nivel por separador, no cambiar.
package codes

import (
	"fmt"
	"strings"
)

const (
	// TierSeparator separa segmentos de producto y variante.
	TierSeparator = "."
	// ItemSeparator separa el código de variante del secuencial del item.
	ItemSeparator = "-"
)

// Anchos de relleno por segmento.
const (
	templateWidth     = 3
	manufacturerWidth = 3
	productWidth      = 4
	variantWidth      = 3
	itemWidth         = 5
)

// Pad rellena n con ceros a la izquierda hasta width dígitos.
func Pad(n int64, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}

// ProductFullCode "{plantilla}.{fabricante}.{secuencial}", ej. "001.001.0001".
// manufacturerSeq 0 significa sin fabricante ("000").
func ProductFullCode(templateSeq, manufacturerSeq, productSeq int64) string {
	return strings.Join([]string{
		Pad(templateSeq, templateWidth),
		Pad(manufacturerSeq, manufacturerWidth),
		Pad(productSeq, productWidth),
	}, TierSeparator)
}

// VariantFullCode "{producto}.{secuencial}", ej. "001.001.0001.001".
func VariantFullCode(productFullCode string, variantSeq int64) string {
	return productFullCode + TierSeparator + Pad(variantSeq, variantWidth)
}

// ItemFullCode "{variante}-{secuencial:05}", ej. "001.001.0001.001-00001".
func ItemFullCode(variantFullCode string, itemSeq int64) string {
	return variantFullCode + ItemSeparator + Pad(itemSeq, itemWidth)
}

// SplitItemFullCode separa un fullCode de item en (variante, secuencial).
func SplitItemFullCode(fullCode string) (variantCode, itemSeq string, ok bool) {
	i := strings.LastIndex(fullCode, ItemSeparator)
	if i <= 0 || i == len(fullCode)-1 {
		return "", "", false
	}
	return fullCode[:i], fullCode[i+1:], true
}

// IsItemFullCode indica si s tiene la forma "{d}.{d}.{d}.{d}-{d}" de un fullCode
// de item (segmentos solo dígitos, de cualquier ancho).
func IsItemFullCode(s string) bool {
	variantCode, seq, ok := SplitItemFullCode(s)
	if !ok || !allDigits(seq) {
		return false
	}
	segments := strings.Split(variantCode, TierSeparator)
	if len(segments) != 4 {
		return false
	}
	for _, seg := range segments {
		if !allDigits(seg) {
			return false
		}
	}
	return true
}

// Barcode código imprimible (Code128) derivado del fullCode: prefijo "I" y el
// fullCode completo. Los separadores se conservan porque los segmentos crecen
// más allá de su relleno.
func Barcode(fullCode string) string {
	return "I" + fullCode
}

// IsItemBarcode indica si s tiene la forma que Barcode produce para un item.
func IsItemBarcode(s string) bool {
	return strings.HasPrefix(s, "I") && IsItemFullCode(s[1:])
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
