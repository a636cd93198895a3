package codes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/internal/domain/codes"
)

// ── fullCode jerárquico ─────────────────────────────────────────────────────

func TestProductYVariantFullCode(t *testing.T) {
	product := codes.ProductFullCode(1, 1, 1)
	assert.Equal(t, "001.001.0001", product)
	assert.Equal(t, "001.000.0012", codes.ProductFullCode(1, 0, 12), "sin fabricante usa 000")
	assert.Equal(t, "001.001.0001.001", codes.VariantFullCode(product, 1))
}

func TestItemFullCode_SecuencialesDeUnaVariante(t *testing.T) {
	variant := "001.001.0001.001"
	assert.Equal(t, "001.001.0001.001-00001", codes.ItemFullCode(variant, 1))
	assert.Equal(t, "001.001.0001.001-00002", codes.ItemFullCode(variant, 2))
	assert.Equal(t, "001.001.0001.001-123456", codes.ItemFullCode(variant, 123456), "el relleno no trunca")
}

func TestSplitItemFullCode(t *testing.T) {
	v, seq, ok := codes.SplitItemFullCode("001.001.0001.001-00007")
	require.True(t, ok)
	assert.Equal(t, "001.001.0001.001", v)
	assert.Equal(t, "00007", seq)

	_, _, ok = codes.SplitItemFullCode("001.001.0001.001")
	assert.False(t, ok)
	_, _, ok = codes.SplitItemFullCode("001-")
	assert.False(t, ok)
}

func TestBarcode_DerivadoDelFullCode(t *testing.T) {
	assert.Equal(t, "I001.001.0001.001-00001", codes.Barcode("001.001.0001.001-00001"))

	// segmentos más anchos que su relleno no se confunden
	a := codes.ItemFullCode(codes.VariantFullCode(codes.ProductFullCode(100, 1000, 1), 1), 1)
	b := codes.ItemFullCode(codes.VariantFullCode(codes.ProductFullCode(1001, 0, 1), 1), 1)
	assert.NotEqual(t, codes.Barcode(a), codes.Barcode(b))
	assert.True(t, codes.IsItemBarcode(codes.Barcode(a)))
	assert.False(t, codes.IsItemBarcode("BC-1"))
}

func TestIsItemFullCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"001.001.0001.001-00001", true},
		{"1000.001.0001.001-123456", true},
		{"001.001.0001.001", false},
		{"LOTE-2024-00002", false},
		{"001.001.0001-00001", false},
		{"001.001.0001.0A1-00001", false},
		{"001.001.0001.001-", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, codes.IsItemFullCode(tt.code), tt.code)
	}
}

// ── EAN-13 / UPC-A ──────────────────────────────────────────────────────────

func TestCheckDigits_VectoresConocidos(t *testing.T) {
	d, err := codes.EANCheckDigit("400638133393")
	require.NoError(t, err)
	assert.Equal(t, byte('1'), d)

	d, err = codes.UPCCheckDigit("03600029145")
	require.NoError(t, err)
	assert.Equal(t, byte('2'), d)

	assert.True(t, codes.ValidEAN13("4006381333931"))
	assert.True(t, codes.ValidEAN13("5901234123457"))
	assert.False(t, codes.ValidEAN13("4006381333932"))
	assert.True(t, codes.ValidUPCA("036000291452"))
	assert.True(t, codes.ValidUPCA("042100005264"))
	assert.False(t, codes.ValidUPCA("036000291453"))
	assert.False(t, codes.ValidUPCA("03600029145X"))
}

func TestCheckDigits_LongitudIncorrecta(t *testing.T) {
	_, err := codes.EANCheckDigit("123")
	assert.Error(t, err)
	_, err = codes.UPCCheckDigit("123456789012")
	assert.Error(t, err)
}

func TestEAN13yUPCA_DelSecuencialDeEscaneo(t *testing.T) {
	ean, err := codes.EAN13(1)
	require.NoError(t, err)
	assert.Equal(t, "2000000000015", ean)
	upc, err := codes.UPCA(1)
	require.NoError(t, err)
	assert.Equal(t, "400000000015", upc)

	for _, code := range []string{ean, upc} {
		seq, ok := codes.ScanSequence(code)
		assert.True(t, ok)
		assert.Equal(t, int64(1), seq)
	}
	assert.True(t, codes.ReservedEAN13(ean))
	assert.True(t, codes.ReservedEAN13("0"+upc))
	assert.True(t, codes.ReservedUPCA(upc))
	assert.False(t, codes.ReservedEAN13("5901234123457"))
	assert.False(t, codes.ReservedUPCA("036000291452"))

	_, ok := codes.ScanSequence("5901234123457")
	assert.False(t, ok, "EAN externo")
}

func TestEAN13yUPCA_FueraDeRango(t *testing.T) {
	for _, n := range []int64{0, -1, codes.MaxScanSequence + 1} {
		_, err := codes.EAN13(n)
		assert.Error(t, err)
		_, err = codes.UPCA(n)
		assert.Error(t, err)
	}
	upc, err := codes.UPCA(codes.MaxScanSequence)
	require.NoError(t, err)
	assert.Len(t, upc, 12)
}

// Todos los secuenciales de una variante (5 dígitos) y su vecindad dan códigos
// distintos y válidos.
func TestEAN13yUPCA_SinColisiones(t *testing.T) {
	const n = 100_000
	eans := make(map[string]struct{}, n)
	upcs := make(map[string]struct{}, n)
	for seq := int64(1); seq <= n; seq++ {
		ean, err := codes.EAN13(seq)
		require.NoError(t, err)
		upc, err := codes.UPCA(seq)
		require.NoError(t, err)
		if !codes.ValidEAN13(ean) || !codes.ValidUPCA(upc) {
			t.Fatalf("checksum inválido para %d: %s %s", seq, ean, upc)
		}
		eans[ean] = struct{}{}
		upcs[upc] = struct{}{}
	}
	assert.Len(t, eans, n)
	assert.Len(t, upcs, n)
}

// ── slug ────────────────────────────────────────────────────────────────────

func TestSlugify(t *testing.T) {
	assert.Equal(t, "camisa-azul-nandu-100", codes.Slugify("  Camisa Azúl Ñandú 100% "))
	assert.Equal(t, "", codes.Slugify("!!!"))
}

func TestSlug_NombresIgualesNoColisionan(t *testing.T) {
	a := codes.Slug("Camisa", "001.001.0001.001-00001", 1)
	b := codes.Slug("Camisa", "001.001.0001.001-00002", 2)
	assert.Equal(t, "camisa-001-001-0001-001-00001-1", a)
	assert.NotEqual(t, a, b)
	assert.Equal(t, "001-001-0001-001-00001-1", codes.Slug("", "001.001.0001.001-00001", 1))
}
