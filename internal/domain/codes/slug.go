package codes

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxSlugBase = 80

// Slugify normaliza un texto legible a [a-z0-9-]: quita tildes (NFD + marcas),
// pasa a minúsculas y colapsa cualquier otro carácter en un guion.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		default:
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Slug combina el nombre con la sal (fullCode + secuencial) para que dos items
// con el mismo nombre nunca colisionen a nivel slug.
func Slug(name, fullCode string, seq int64) string {
	base := Slugify(name)
	if len(base) > maxSlugBase {
		base = strings.TrimSuffix(base[:maxSlugBase], "-")
	}
	salt := Slugify(fullCode) + "-" + strconv.FormatInt(seq, 10)
	if base == "" {
		return salt
	}
	return base + "-" + salt
}
