package usecase_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/application/usecase"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/attribute"
	"github.com/jhoicas/inventario-stock/internal/domain/codes"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/memory"
)

type catalog struct {
	templates *usecase.TemplateUseCase
	products  *usecase.ProductUseCase
	variants  *usecase.VariantUseCase
	partners  *usecase.PartnerUseCase
	places    *usecase.LocationUseCase
	warehouse *usecase.WarehouseUseCase
}

func newCatalog() *catalog {
	s := memory.NewStore()
	tx := memory.NewTxRunner(s)
	templates := memory.NewTemplateRepository(s)
	products := memory.NewProductRepository(s)
	variants := memory.NewVariantRepository(s)
	suppliers := memory.NewSupplierRepository(s)
	manufacturers := memory.NewManufacturerRepository(s)
	warehouses := memory.NewWarehouseRepository(s)
	return &catalog{
		templates: usecase.NewTemplateUseCase(templates),
		products:  usecase.NewProductUseCase(tx, products, templates, suppliers, manufacturers),
		variants:  usecase.NewVariantUseCase(tx, variants, products, templates),
		partners:  usecase.NewPartnerUseCase(suppliers, manufacturers),
		places:    usecase.NewLocationUseCase(memory.NewLocationRepository(s), memory.NewBinRepository(s), warehouses),
		warehouse: usecase.NewWarehouseUseCase(warehouses),
	}
}

var ropa = dto.CreateTemplateRequest{
	Name: "Ropa",
	ProductAttributes: attribute.Schema{
		"material": {Type: attribute.TypeString, Required: true},
	},
	VariantAttributes: attribute.Schema{
		"talla": {Type: attribute.TypeSelect, Options: []string{"S", "M", "L"}, Required: true},
		"peso":  {Type: attribute.TypeNumber, UnitOfMeasure: "g"},
	},
}

func raw(t *testing.T, m map[string]any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(m)
	require.NoError(t, err)
	return b
}

func schemaPtr(s attribute.Schema) *attribute.Schema { return &s }
func strPtr(s string) *string                         { return &s }
func decPtr(n int64) *decimal.Decimal                 { d := decimal.NewFromInt(n); return &d }

// ── plantillas ──────────────────────────────────────────────────────────────

func TestTemplate_Create(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()

	tpl, err := c.templates.Create(ctx, ropa)
	require.NoError(t, err)
	assert.Equal(t, int64(1), tpl.SequentialCode)
	assert.NotNil(t, tpl.ItemAttributes, "niveles vacíos se devuelven como mapa vacío")

	second, err := c.templates.Create(ctx, dto.CreateTemplateRequest{Name: "Alimentos", ItemAttributes: attribute.Schema{"lote": {Type: attribute.TypeString}}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.SequentialCode)

	_, err = c.templates.Create(ctx, dto.CreateTemplateRequest{Name: "  ropa ", ProductAttributes: ropa.ProductAttributes})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "nombre único sin distinguir mayúsculas")
}

func TestTemplate_CreateRechazos(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()

	tests := []struct {
		name string
		in   dto.CreateTemplateRequest
	}{
		{"sin atributos", dto.CreateTemplateRequest{Name: "Vacía"}},
		{"nombre vacío", dto.CreateTemplateRequest{Name: "   ", ItemAttributes: attribute.Schema{"a": {Type: attribute.TypeString}}}},
		{"nombre largo", dto.CreateTemplateRequest{Name: strings.Repeat("x", 201), ItemAttributes: attribute.Schema{"a": {Type: attribute.TypeString}}}},
		{"select sin opciones", dto.CreateTemplateRequest{Name: "Mala", ItemAttributes: attribute.Schema{"a": {Type: attribute.TypeSelect}}}},
		{"tipo desconocido", dto.CreateTemplateRequest{Name: "Mala", ItemAttributes: attribute.Schema{"a": {Type: "date"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.templates.Create(ctx, tt.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	list, err := c.templates.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestTemplate_Update(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()
	tpl, err := c.templates.Create(ctx, ropa)
	require.NoError(t, err)
	_, err = c.templates.Create(ctx, dto.CreateTemplateRequest{Name: "Calzado", ItemAttributes: attribute.Schema{"lote": {Type: attribute.TypeString}}})
	require.NoError(t, err)

	got, err := c.templates.Update(ctx, tpl.ID, dto.UpdateTemplateRequest{Name: strPtr("Ropa")})
	require.NoError(t, err, "la propia plantilla no cuenta como duplicado")
	assert.Equal(t, "Ropa", got.Name)

	_, err = c.templates.Update(ctx, tpl.ID, dto.UpdateTemplateRequest{Name: strPtr("Calzado")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = c.templates.Update(ctx, tpl.ID, dto.UpdateTemplateRequest{
		ProductAttributes: schemaPtr(attribute.Schema{}),
		VariantAttributes: schemaPtr(nil),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "no puede quedar sin atributos en ningún nivel")

	got, err = c.templates.Update(ctx, tpl.ID, dto.UpdateTemplateRequest{ProductAttributes: schemaPtr(attribute.Schema{})})
	require.NoError(t, err)
	assert.Empty(t, got.ProductAttributes)
	assert.Len(t, got.VariantAttributes, 2)

	_, err = c.templates.Update(ctx, "nope", dto.UpdateTemplateRequest{Name: strPtr("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTemplate_Delete(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()
	tpl, err := c.templates.Create(ctx, ropa)
	require.NoError(t, err)

	require.NoError(t, c.templates.Delete(ctx, tpl.ID))
	_, err = c.templates.GetByID(ctx, tpl.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, c.templates.Delete(ctx, tpl.ID), domain.ErrNotFound)
}

// ── productos ───────────────────────────────────────────────────────────────

func TestProduct_Create(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()
	tpl, err := c.templates.Create(ctx, ropa)
	require.NoError(t, err)
	mfr, err := c.partners.CreateManufacturer(ctx, dto.CreateManufacturerRequest{Name: "Ñandú S.A."})
	require.NoError(t, err)

	p, err := c.products.Create(ctx, dto.CreateProductRequest{
		Name: "Camisa", TemplateID: tpl.ID, ManufacturerID: mfr.ID,
		Attributes: raw(t, map[string]any{"material": "algodón"}),
	})
	require.NoError(t, err)
	assert.Equal(t, "DRAFT", p.Status)
	assert.Equal(t, "001.001.0001", p.FullCode)
	assert.Equal(t, attribute.String("algodón"), p.Attributes["material"])

	sin, err := c.products.Create(ctx, dto.CreateProductRequest{
		Name: "Pantalón", TemplateID: tpl.ID,
		Attributes: raw(t, map[string]any{"material": "lino"}),
	})
	require.NoError(t, err)
	assert.Equal(t, "001.000.0002", sin.FullCode, "sin fabricante el segmento es 000")
}

func TestProduct_CreateRechazos(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()
	tpl, err := c.templates.Create(ctx, ropa)
	require.NoError(t, err)
	ok := raw(t, map[string]any{"material": "lana"})
	_, err = c.products.Create(ctx, dto.CreateProductRequest{Name: "Saco", TemplateID: tpl.ID, Attributes: ok})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   dto.CreateProductRequest
		want error
	}{
		{"plantilla inexistente", dto.CreateProductRequest{Name: "A", TemplateID: "nope", Attributes: ok}, domain.ErrNotFound},
		{"sin plantilla", dto.CreateProductRequest{Name: "A", Attributes: ok}, domain.ErrInvalidInput},
		{"falta requerido", dto.CreateProductRequest{Name: "A", TemplateID: tpl.ID}, domain.ErrInvalidInput},
		{"atributo de otro nivel", dto.CreateProductRequest{Name: "A", TemplateID: tpl.ID, Attributes: raw(t, map[string]any{"material": "x", "talla": "S"})}, domain.ErrInvalidInput},
		{"tipo incorrecto", dto.CreateProductRequest{Name: "A", TemplateID: tpl.ID, Attributes: raw(t, map[string]any{"material": 3})}, domain.ErrInvalidInput},
		{"estado inválido", dto.CreateProductRequest{Name: "A", TemplateID: tpl.ID, Status: "BORRADO", Attributes: ok}, domain.ErrInvalidInput},
		{"nombre duplicado", dto.CreateProductRequest{Name: "saco", TemplateID: tpl.ID, Attributes: ok}, domain.ErrDuplicate},
		{"proveedor inexistente", dto.CreateProductRequest{Name: "A", TemplateID: tpl.ID, SupplierID: "nope", Attributes: ok}, domain.ErrNotFound},
		{"fabricante inexistente", dto.CreateProductRequest{Name: "A", TemplateID: tpl.ID, ManufacturerID: "nope", Attributes: ok}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.products.Create(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestProduct_UpdateConservaFullCode(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()
	tpl, err := c.templates.Create(ctx, ropa)
	require.NoError(t, err)
	p, err := c.products.Create(ctx, dto.CreateProductRequest{Name: "Camisa", TemplateID: tpl.ID, Attributes: raw(t, map[string]any{"material": "seda"})})
	require.NoError(t, err)

	got, err := c.products.Update(ctx, p.ID, dto.UpdateProductRequest{
		Name:       strPtr("Camisa larga"),
		Status:     strPtr("ACTIVE"),
		Attributes: raw(t, map[string]any{"material": "lino"}),
	})
	require.NoError(t, err)
	assert.Equal(t, p.FullCode, got.FullCode)
	assert.Equal(t, "ACTIVE", got.Status)
	assert.Equal(t, attribute.String("lino"), got.Attributes["material"])

	_, err = c.products.Update(ctx, p.ID, dto.UpdateProductRequest{Attributes: raw(t, map[string]any{"color": "rojo"})})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	again, err := c.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, attribute.String("lino"), again.Attributes["material"], "un rechazo no modifica el producto")
}

// ── variantes ───────────────────────────────────────────────────────────────

func newProduct(t *testing.T, c *catalog) *dto.ProductResponse {
	t.Helper()
	ctx := context.Background()
	tpl, err := c.templates.Create(ctx, ropa)
	require.NoError(t, err)
	p, err := c.products.Create(ctx, dto.CreateProductRequest{Name: "Camisa", TemplateID: tpl.ID, Attributes: raw(t, map[string]any{"material": "algodón"})})
	require.NoError(t, err)
	return p
}

func TestVariant_Create(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()
	p := newProduct(t, c)

	v, err := c.variants.Create(ctx, dto.CreateVariantRequest{
		ProductID: p.ID, Name: "Camisa Azul Talla M", Price: decimal.NewFromInt(100),
		Attributes: raw(t, map[string]any{"talla": "M", "peso": 180.5}),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(v.SKU, "CAMISA-AZUL-TALLA-M-"), v.SKU)
	assert.Len(t, v.SKU, len("CAMISA-AZUL-TALLA-M-")+8)
	assert.Equal(t, p.FullCode+".001", v.FullCode)
	assert.True(t, v.IsActive)
	assert.Equal(t, "180.5", v.Attributes["peso"].(attribute.Number).Decimal().String())

	v2, err := c.variants.Create(ctx, dto.CreateVariantRequest{
		ProductID: p.ID, Name: "Camisa Azul Talla M", Attributes: raw(t, map[string]any{"talla": "M"}),
	})
	require.NoError(t, err)
	assert.NotEqual(t, v.SKU, v2.SKU)
	assert.Equal(t, p.FullCode+".002", v2.FullCode)

	long, err := c.variants.Create(ctx, dto.CreateVariantRequest{
		ProductID: p.ID, Name: strings.Repeat("abc ", 40), Attributes: raw(t, map[string]any{"talla": "S"}),
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(long.SKU), 64)
}

func TestVariant_CreateRechazos(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()
	p := newProduct(t, c)
	talla := raw(t, map[string]any{"talla": "L"})
	_, err := c.variants.Create(ctx, dto.CreateVariantRequest{
		ProductID: p.ID, Name: "Base", SKU: "CAM-001", Barcode: "BC-1", EANCode: "4006381333931", Attributes: talla,
	})
	require.NoError(t, err)

	ten := decimal.NewFromInt(10)
	tests := []struct {
		name string
		in   dto.CreateVariantRequest
		want error
	}{
		{"producto inexistente", dto.CreateVariantRequest{ProductID: "nope", Name: "V", Attributes: talla}, domain.ErrNotFound},
		{"sku duplicado", dto.CreateVariantRequest{ProductID: p.ID, Name: "V", SKU: "CAM-001", Attributes: talla}, domain.ErrDuplicate},
		{"barcode duplicado", dto.CreateVariantRequest{ProductID: p.ID, Name: "V", Barcode: "BC-1", Attributes: talla}, domain.ErrDuplicate},
		{"ean duplicado", dto.CreateVariantRequest{ProductID: p.ID, Name: "V", EANCode: "4006381333931", Attributes: talla}, domain.ErrDuplicate},
		{"ean con control inválido", dto.CreateVariantRequest{ProductID: p.ID, Name: "V", EANCode: "4006381333932", Attributes: talla}, domain.ErrInvalidInput},
		{"ean con letras", dto.CreateVariantRequest{ProductID: p.ID, Name: "V", EANCode: "40063A1333931", Attributes: talla}, domain.ErrInvalidInput},
		{"upc con control inválido", dto.CreateVariantRequest{ProductID: p.ID, Name: "V", UPCCode: "036000291453", Attributes: talla}, domain.ErrInvalidInput},
		{"color mal formado", dto.CreateVariantRequest{ProductID: p.ID, Name: "V", ColorHex: "azul", Attributes: talla}, domain.ErrInvalidInput},
		{"precio negativo", dto.CreateVariantRequest{ProductID: p.ID, Name: "V", Price: decimal.NewFromInt(-1), Attributes: talla}, domain.ErrInvalidInput},
		{"mínimo mayor que máximo", dto.CreateVariantRequest{ProductID: p.ID, Name: "V", MinStock: ten, Attributes: talla}, domain.ErrInvalidInput},
		{"margen fuera de rango", dto.CreateVariantRequest{ProductID: p.ID, Name: "V", ProfitMargin: decPtr(101), Attributes: talla}, domain.ErrInvalidInput},
		{"opción inválida", dto.CreateVariantRequest{ProductID: p.ID, Name: "V", Attributes: raw(t, map[string]any{"talla": "XL"})}, domain.ErrInvalidInput},
		{"falta requerido", dto.CreateVariantRequest{ProductID: p.ID, Name: "V"}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.variants.Create(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	list, err := c.variants.ListByProduct(ctx, p.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

func TestVariant_CodigosReservadosParaItems(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()
	p := newProduct(t, c)
	talla := raw(t, map[string]any{"talla": "L"})

	itemEAN, err := codes.EAN13(1)
	require.NoError(t, err)
	itemUPC, err := codes.UPCA(1)
	require.NoError(t, err)
	require.True(t, codes.ValidEAN13("0"+itemUPC), "un UPC-A con 0 delante es un EAN-13 válido")

	tests := []struct {
		name string
		in   dto.CreateVariantRequest
	}{
		{"ean de item", dto.CreateVariantRequest{ProductID: p.ID, Name: "V", EANCode: itemEAN, Attributes: talla}},
		{"upc de item leído como ean", dto.CreateVariantRequest{ProductID: p.ID, Name: "V", EANCode: "0" + itemUPC, Attributes: talla}},
		{"upc de item", dto.CreateVariantRequest{ProductID: p.ID, Name: "V", UPCCode: itemUPC, Attributes: talla}},
		{"barcode de item", dto.CreateVariantRequest{ProductID: p.ID, Name: "V", Barcode: codes.Barcode("001.001.0001.001-00001"), Attributes: talla}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.variants.Create(ctx, tt.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err = c.variants.Create(ctx, dto.CreateVariantRequest{
		ProductID: p.ID, Name: "V", EANCode: "5901234123457", UPCCode: "036000291452", Barcode: "I-PROPIO", Attributes: talla,
	})
	assert.NoError(t, err, "códigos fuera de los rangos de items se aceptan")
}

func TestVariant_Update(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()
	p := newProduct(t, c)
	talla := raw(t, map[string]any{"talla": "S"})
	a, err := c.variants.Create(ctx, dto.CreateVariantRequest{ProductID: p.ID, Name: "A", SKU: "A-1", EANCode: "5901234123457", Attributes: talla})
	require.NoError(t, err)
	b, err := c.variants.Create(ctx, dto.CreateVariantRequest{ProductID: p.ID, Name: "B", SKU: "B-1", Attributes: talla})
	require.NoError(t, err)

	got, err := c.variants.Update(ctx, a.ID, dto.UpdateVariantRequest{SKU: strPtr("A-1"), EANCode: strPtr("5901234123457"), ColorHex: strPtr("#00aaFF")})
	require.NoError(t, err, "sus propios códigos no son duplicados")
	assert.Equal(t, "#00aaFF", got.ColorHex)
	assert.Equal(t, a.FullCode, got.FullCode)

	_, err = c.variants.Update(ctx, b.ID, dto.UpdateVariantRequest{SKU: strPtr("A-1")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = c.variants.Update(ctx, b.ID, dto.UpdateVariantRequest{EANCode: strPtr("5901234123457")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	inactive := false
	got, err = c.variants.Update(ctx, b.ID, dto.UpdateVariantRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	_, err = c.variants.Update(ctx, "nope", dto.UpdateVariantRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── bodegas, ubicaciones y bins ─────────────────────────────────────────────

func TestLocations(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()
	wh, err := c.warehouse.Create(ctx, dto.CreateWarehouseRequest{Name: "Central"})
	require.NoError(t, err)

	loc, err := c.places.CreateLocation(ctx, dto.CreateLocationRequest{WarehouseID: wh.ID, Code: "A-01"})
	require.NoError(t, err)
	assert.True(t, loc.IsActive)

	_, err = c.places.CreateLocation(ctx, dto.CreateLocationRequest{WarehouseID: wh.ID, Code: "A-01"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = c.places.CreateLocation(ctx, dto.CreateLocationRequest{WarehouseID: "nope", Code: "A-02"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	bin, err := c.places.CreateBin(ctx, dto.CreateBinRequest{LocationID: loc.ID, Code: "B-1", Capacity: 3})
	require.NoError(t, err)
	assert.Equal(t, 0, bin.Occupancy)

	_, err = c.places.CreateBin(ctx, dto.CreateBinRequest{LocationID: loc.ID, Code: "B-2", Capacity: 1, Occupancy: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = c.places.CreateBin(ctx, dto.CreateBinRequest{LocationID: loc.ID, Code: "B-3", Capacity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bins, err := c.places.ListBins(ctx, loc.ID)
	require.NoError(t, err)
	assert.Len(t, bins, 1)
	locs, err := c.places.ListLocations(ctx, wh.ID)
	require.NoError(t, err)
	assert.Len(t, locs, 1)
}
