package inventory_test

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/application/usecase"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/attribute"
	"github.com/jhoicas/inventario-stock/internal/domain/codes"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-stock/pkg/logger"
)

// ── fixture ─────────────────────────────────────────────────────────────────

type fixture struct {
	ctx       context.Context
	ledger    *inventory.LedgerUseCase
	templates *usecase.TemplateUseCase
	products  *usecase.ProductUseCase
	variants  *usecase.VariantUseCase
	places    *usecase.LocationUseCase
	warehouse *usecase.WarehouseUseCase
	partners  *usecase.PartnerUseCase
	replenish *inventory.ReplenishmentUseCase
	labels    *inventory.LabelUseCase
	log       *bytes.Buffer
}

type fakeRenderer struct{ last dto.ItemLabel }

func (f *fakeRenderer) RenderItemLabel(label dto.ItemLabel) ([]byte, error) {
	f.last = label
	return []byte("%PDF-fake"), nil
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	tx := memory.NewTxRunner(s)
	templates := memory.NewTemplateRepository(s)
	products := memory.NewProductRepository(s)
	variants := memory.NewVariantRepository(s)
	items := memory.NewItemRepository(s)
	movements := memory.NewMovementRepository(s)
	warehouses := memory.NewWarehouseRepository(s)
	locations := memory.NewLocationRepository(s)
	bins := memory.NewBinRepository(s)
	suppliers := memory.NewSupplierRepository(s)
	manufacturers := memory.NewManufacturerRepository(s)

	var buf bytes.Buffer
	return &fixture{
		ctx:       context.Background(),
		ledger:    inventory.NewLedgerUseCase(tx, items, movements, variants, products, templates, locations, bins, logger.NewWriter(&buf, "info")),
		templates: usecase.NewTemplateUseCase(templates),
		products:  usecase.NewProductUseCase(tx, products, templates, suppliers, manufacturers),
		variants:  usecase.NewVariantUseCase(tx, variants, products, templates),
		places:    usecase.NewLocationUseCase(locations, bins, warehouses),
		warehouse: usecase.NewWarehouseUseCase(warehouses),
		partners:  usecase.NewPartnerUseCase(suppliers, manufacturers),
		replenish: inventory.NewReplenishmentUseCase(variants),
		labels:    inventory.NewLabelUseCase(items, variants, products, templates, &fakeRenderer{}),
		log:       &buf,
	}
}

// catalog crea plantilla → fabricante → producto → variante y devuelve la variante.
func (f *fixture) catalog(t *testing.T, itemAttrs attribute.Schema, variant dto.CreateVariantRequest) *dto.VariantResponse {
	t.Helper()
	tpl, err := f.templates.Create(f.ctx, dto.CreateTemplateRequest{Name: "T-" + t.Name(), ItemAttributes: itemAttrs})
	require.NoError(t, err)
	mfr, err := f.partners.CreateManufacturer(f.ctx, dto.CreateManufacturerRequest{Name: "Fabricante"})
	require.NoError(t, err)
	p, err := f.products.Create(f.ctx, dto.CreateProductRequest{Name: "P-" + t.Name(), TemplateID: tpl.ID, ManufacturerID: mfr.ID})
	require.NoError(t, err)
	variant.ProductID = p.ID
	if variant.Name == "" {
		variant.Name = "Variante"
	}
	v, err := f.variants.Create(f.ctx, variant)
	require.NoError(t, err)
	return v
}

// bins crea una bodega, una ubicación L1 y dos bins B1 (capacidad cap1) y B2.
func (f *fixture) bins(t *testing.T, cap1 int) (*dto.LocationResponse, *dto.BinResponse, *dto.BinResponse) {
	t.Helper()
	wh, err := f.warehouse.Create(f.ctx, dto.CreateWarehouseRequest{Name: "Central"})
	require.NoError(t, err)
	loc, err := f.places.CreateLocation(f.ctx, dto.CreateLocationRequest{WarehouseID: wh.ID, Code: "L1", Name: "Pasillo 1"})
	require.NoError(t, err)
	b1, err := f.places.CreateBin(f.ctx, dto.CreateBinRequest{LocationID: loc.ID, Code: "B1", Capacity: cap1})
	require.NoError(t, err)
	b2, err := f.places.CreateBin(f.ctx, dto.CreateBinRequest{LocationID: loc.ID, Code: "B2"})
	require.NoError(t, err)
	return loc, b1, b2
}

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func serialSchema(required bool) attribute.Schema {
	return attribute.Schema{"serialNumber": {Type: attribute.TypeString, Required: required}}
}

func attrs(t *testing.T, m map[string]any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(m)
	require.NoError(t, err)
	return b
}

// ── escenario completo entrada / salida / traslado ──────────────────────────

func TestLedger_EntradaSalidaTraslado(t *testing.T) {
	f := newFixture(t)
	v := f.catalog(t, serialSchema(true), dto.CreateVariantRequest{Price: dec(100)})
	require.NotEmpty(t, v.SKU, "sku autogenerado")
	loc, b1, b2 := f.bins(t, 0)

	entry, err := f.ledger.RegisterEntry(f.ctx, "user-1", dto.RegisterEntryRequest{
		VariantID:  v.ID,
		BinID:      b1.ID,
		Quantity:   dec(100),
		Attributes: attrs(t, map[string]any{"serialNumber": "SN1"}),
	})
	require.NoError(t, err)
	item := entry.Item
	assert.True(t, dec(100).Equal(item.CurrentQuantity))
	assert.True(t, item.InitialQuantity.Equal(item.CurrentQuantity))
	assert.Equal(t, loc.ID, item.LocationID)
	assert.Equal(t, "PURCHASE", entry.Movement.MovementType)
	assert.True(t, entry.Movement.QuantityBefore.IsZero())
	assert.True(t, dec(100).Equal(entry.Movement.QuantityAfter))
	assert.Equal(t, "user-1", entry.Movement.UserID)

	exit, err := f.ledger.RegisterExit(f.ctx, "user-1", item.ID, dto.RegisterExitRequest{Quantity: dec(30), MovementType: "SALE"})
	require.NoError(t, err)
	assert.True(t, dec(70).Equal(exit.Item.CurrentQuantity))
	assert.True(t, dec(100).Equal(exit.Movement.QuantityBefore))
	assert.True(t, dec(70).Equal(exit.Movement.QuantityAfter))

	tr, err := f.ledger.TransferItem(f.ctx, "user-1", item.ID, dto.TransferItemRequest{DestinationBinID: b2.ID})
	require.NoError(t, err)
	assert.True(t, dec(70).Equal(tr.Item.CurrentQuantity))
	assert.Equal(t, b2.ID, tr.Item.BinID)
	assert.Equal(t, "TRANSFER", tr.Movement.MovementType)
	assert.True(t, dec(70).Equal(tr.Movement.Quantity))
	assert.True(t, tr.Movement.QuantityBefore.Equal(tr.Movement.QuantityAfter))
	assert.Contains(t, tr.Movement.DestinationRef, "B2")

	_, err = f.ledger.RegisterExit(f.ctx, "user-1", item.ID, dto.RegisterExitRequest{Quantity: dec(71), MovementType: "SALE"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la carrera de cantidad es un ValidationError")

	got, err := f.ledger.GetItem(f.ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, dec(70).Equal(got.CurrentQuantity))

	movs, err := f.ledger.ListMovements(f.ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, movs.Items, 3, "el rechazo no agrega movimiento")
	assert.Equal(t, []string{"PURCHASE", "SALE", "TRANSFER"},
		[]string{movs.Items[0].MovementType, movs.Items[1].MovementType, movs.Items[2].MovementType})

	// códigos fijos desde la creación
	assert.Equal(t, item.FullCode, got.FullCode)
	assert.Equal(t, item.Barcode, got.Barcode)
	assert.Equal(t, item.EANCode, got.EANCode)
	assert.Equal(t, item.UPCCode, got.UPCCode)

	// ocupación: B1 liberado, B2 ocupado
	bin1, _ := f.places.GetBin(f.ctx, b1.ID)
	bin2, _ := f.places.GetBin(f.ctx, b2.ID)
	assert.Equal(t, 0, bin1.Occupancy)
	assert.Equal(t, 1, bin2.Occupancy)
}

func TestLedger_AtributoDesconocidoNoCreaNada(t *testing.T) {
	f := newFixture(t)
	v := f.catalog(t, serialSchema(false), dto.CreateVariantRequest{})
	_, b1, _ := f.bins(t, 0)

	_, err := f.ledger.RegisterEntry(f.ctx, "u", dto.RegisterEntryRequest{
		VariantID:  v.ID,
		BinID:      b1.ID,
		Quantity:   dec(1),
		Attributes: attrs(t, map[string]any{"serialNumber": "X", "extra": "Y"}),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "extra")

	list, err := f.ledger.ListItemsByVariant(f.ctx, v.ID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	bin, _ := f.places.GetBin(f.ctx, b1.ID)
	assert.Equal(t, 0, bin.Occupancy)
}

func TestLedger_FullCodeSecuencialPorVariante(t *testing.T) {
	f := newFixture(t)
	v := f.catalog(t, serialSchema(false), dto.CreateVariantRequest{})
	require.Equal(t, "001.001.0001.001", v.FullCode)
	loc, _, _ := f.bins(t, 0)

	var got []dto.ItemResponse
	for i := 0; i < 2; i++ {
		res, err := f.ledger.RegisterEntry(f.ctx, "u", dto.RegisterEntryRequest{VariantID: v.ID, LocationID: loc.ID, Quantity: dec(5)})
		require.NoError(t, err)
		got = append(got, res.Item)
	}
	assert.Equal(t, "001.001.0001.001-00001", got[0].FullCode)
	assert.Equal(t, "001.001.0001.001-00002", got[1].FullCode)
	for _, it := range got {
		assert.Len(t, it.EANCode, 13)
		assert.True(t, codes.ValidEAN13(it.EANCode))
		assert.True(t, codes.ValidUPCA(it.UPCCode))
		assert.Equal(t, it.FullCode, it.Code, "code por defecto = fullCode")
	}
	assert.NotEqual(t, got[0].Slug, got[1].Slug)
	assert.Empty(t, got[0].BinID)
}

// ── entradas ────────────────────────────────────────────────────────────────

func TestRegisterEntry_Validaciones(t *testing.T) {
	f := newFixture(t)
	v := f.catalog(t, serialSchema(false), dto.CreateVariantRequest{})
	loc, _, _ := f.bins(t, 0)
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(24 * time.Hour)
	later := future.Add(time.Hour)
	negative := dec(-1)

	tests := []struct {
		name string
		in   dto.RegisterEntryRequest
		want error
	}{
		{"cantidad cero", dto.RegisterEntryRequest{VariantID: v.ID, LocationID: loc.ID}, domain.ErrInvalidInput},
		{"tipo de salida", dto.RegisterEntryRequest{VariantID: v.ID, LocationID: loc.ID, Quantity: dec(1), MovementType: "SALE"}, domain.ErrInvalidInput},
		{"costo negativo", dto.RegisterEntryRequest{VariantID: v.ID, LocationID: loc.ID, Quantity: dec(1), UnitCost: &negative}, domain.ErrInvalidInput},
		{"vencimiento pasado", dto.RegisterEntryRequest{VariantID: v.ID, LocationID: loc.ID, Quantity: dec(1), ExpiryDate: &past}, domain.ErrInvalidInput},
		{"vencimiento antes de fabricación", dto.RegisterEntryRequest{VariantID: v.ID, LocationID: loc.ID, Quantity: dec(1), ExpiryDate: &future, ManufacturingDate: &later}, domain.ErrInvalidInput},
		{"sin ubicación", dto.RegisterEntryRequest{VariantID: v.ID, Quantity: dec(1)}, domain.ErrInvalidInput},
		{"variante inexistente", dto.RegisterEntryRequest{VariantID: "nope", LocationID: loc.ID, Quantity: dec(1)}, domain.ErrNotFound},
		{"ubicación inexistente", dto.RegisterEntryRequest{VariantID: v.ID, LocationID: "nope", Quantity: dec(1)}, domain.ErrNotFound},
		{"bin inexistente", dto.RegisterEntryRequest{VariantID: v.ID, BinID: "nope", Quantity: dec(1)}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.ledger.RegisterEntry(f.ctx, "u", tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	list, _ := f.ledger.ListItemsByVariant(f.ctx, v.ID, 0, 0)
	assert.Empty(t, list.Items)
}

func TestRegisterEntry_CodigoDuplicado(t *testing.T) {
	f := newFixture(t)
	v := f.catalog(t, serialSchema(false), dto.CreateVariantRequest{})
	loc, _, _ := f.bins(t, 0)
	in := dto.RegisterEntryRequest{VariantID: v.ID, LocationID: loc.ID, Quantity: dec(1), Code: "LOTE-1", MovementType: "CUSTOMER_RETURN"}

	first, err := f.ledger.RegisterEntry(f.ctx, "u", in)
	require.NoError(t, err)
	assert.Equal(t, "LOTE-1", first.Item.Code)
	assert.Equal(t, "CUSTOMER_RETURN", first.Movement.MovementType)

	_, err = f.ledger.RegisterEntry(f.ctx, "u", in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegisterEntry_CodigoConFormaDeFullCode(t *testing.T) {
	f := newFixture(t)
	v := f.catalog(t, serialSchema(false), dto.CreateVariantRequest{})
	loc, _, _ := f.bins(t, 0)

	for _, code := range []string{v.FullCode + "-00002", "009.009.0009.009-1"} {
		_, err := f.ledger.RegisterEntry(f.ctx, "u", dto.RegisterEntryRequest{VariantID: v.ID, LocationID: loc.ID, Quantity: dec(1), Code: code})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, code)
	}

	libre, err := f.ledger.RegisterEntry(f.ctx, "u", dto.RegisterEntryRequest{VariantID: v.ID, LocationID: loc.ID, Quantity: dec(1), Code: "LOTE-2024-00002"})
	require.NoError(t, err, "un código con guiones que no es fullCode se acepta")
	assert.Equal(t, "LOTE-2024-00002", libre.Item.Code)

	for i := 2; i <= 4; i++ {
		res, err := f.ledger.RegisterEntry(f.ctx, "u", dto.RegisterEntryRequest{VariantID: v.ID, LocationID: loc.ID, Quantity: dec(1)})
		require.NoError(t, err)
		assert.Equal(t, codes.ItemFullCode(v.FullCode, int64(i)), res.Item.Code)
	}
}

func TestRegisterEntry_CodigosEscaneablesUnicos(t *testing.T) {
	f := newFixture(t)
	v1 := f.catalog(t, serialSchema(false), dto.CreateVariantRequest{Name: "Uno"})
	v2, err := f.variants.Create(f.ctx, dto.CreateVariantRequest{ProductID: v1.ProductID, Name: "Dos"})
	require.NoError(t, err)
	loc, _, _ := f.bins(t, 0)

	eans := map[string]bool{}
	upcs := map[string]bool{}
	for i := 0; i < 20; i++ {
		variantID := v1.ID
		if i%2 == 1 {
			variantID = v2.ID
		}
		res, err := f.ledger.RegisterEntry(f.ctx, "u", dto.RegisterEntryRequest{VariantID: variantID, LocationID: loc.ID, Quantity: dec(1)})
		require.NoError(t, err)
		assert.False(t, eans[res.Item.EANCode], "EAN repetido %s", res.Item.EANCode)
		assert.False(t, upcs[res.Item.UPCCode], "UPC repetido %s", res.Item.UPCCode)
		eans[res.Item.EANCode] = true
		upcs[res.Item.UPCCode] = true

		seq, ok := codes.ScanSequence(res.Item.EANCode)
		require.True(t, ok)
		assert.Equal(t, int64(i+1), seq)
		upcSeq, ok := codes.ScanSequence(res.Item.UPCCode)
		require.True(t, ok)
		assert.Equal(t, seq, upcSeq, "EAN y UPC del item codifican el mismo secuencial")
	}
}

func TestLedger_CantidadesConMasDecimalesQueElAlmacen(t *testing.T) {
	f := newFixture(t)
	v := f.catalog(t, serialSchema(false), dto.CreateVariantRequest{})
	loc, _, _ := f.bins(t, 0)

	_, err := f.ledger.RegisterEntry(f.ctx, "u", dto.RegisterEntryRequest{
		VariantID: v.ID, LocationID: loc.ID, Quantity: decimal.RequireFromString("0.00004"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	cost := decimal.RequireFromString("1.00001")
	_, err = f.ledger.RegisterEntry(f.ctx, "u", dto.RegisterEntryRequest{VariantID: v.ID, LocationID: loc.ID, Quantity: dec(1), UnitCost: &cost})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	res, err := f.ledger.RegisterEntry(f.ctx, "u", dto.RegisterEntryRequest{VariantID: v.ID, LocationID: loc.ID, Quantity: dec(100)})
	require.NoError(t, err)
	_, err = f.ledger.RegisterExit(f.ctx, "u", res.Item.ID, dto.RegisterExitRequest{Quantity: decimal.RequireFromString("1.00004"), MovementType: "SALE"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.ledger.GetItem(f.ctx, res.Item.ID)
	require.NoError(t, err)
	assert.True(t, dec(100).Equal(got.CurrentQuantity))
	movs, err := f.ledger.ListMovements(f.ctx, res.Item.ID)
	require.NoError(t, err)
	assert.Len(t, movs.Items, 1)
}

func TestRegisterEntry_BinLleno(t *testing.T) {
	f := newFixture(t)
	v := f.catalog(t, serialSchema(false), dto.CreateVariantRequest{})
	_, b1, _ := f.bins(t, 1)

	_, err := f.ledger.RegisterEntry(f.ctx, "u", dto.RegisterEntryRequest{VariantID: v.ID, BinID: b1.ID, Quantity: dec(1)})
	require.NoError(t, err)
	_, err = f.ledger.RegisterEntry(f.ctx, "u", dto.RegisterEntryRequest{VariantID: v.ID, BinID: b1.ID, Quantity: dec(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, _ := f.ledger.ListItemsByVariant(f.ctx, v.ID, 0, 0)
	assert.Len(t, list.Items, 1, "el secuencial consumido se revierte con la tx")
}

func TestRegisterEntry_CostoPromedioPonderado(t *testing.T) {
	f := newFixture(t)
	v := f.catalog(t, serialSchema(false), dto.CreateVariantRequest{})
	loc, _, _ := f.bins(t, 0)

	for _, c := range []int64{4, 6} {
		cost := dec(c)
		res, err := f.ledger.RegisterEntry(f.ctx, "u", dto.RegisterEntryRequest{VariantID: v.ID, LocationID: loc.ID, Quantity: dec(10), UnitCost: &cost})
		require.NoError(t, err)
		assert.True(t, dec(10*c).Equal(res.Movement.TotalCost))
	}
	got, err := f.variants.GetByID(f.ctx, v.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CostPrice)
	assert.True(t, dec(5).Equal(*got.CostPrice), "((10*4)+(10*6))/20")
}

// ── salidas ─────────────────────────────────────────────────────────────────

func TestRegisterExit_Validaciones(t *testing.T) {
	f := newFixture(t)
	v := f.catalog(t, serialSchema(false), dto.CreateVariantRequest{})
	loc, _, _ := f.bins(t, 0)
	cost := dec(2)
	res, err := f.ledger.RegisterEntry(f.ctx, "u", dto.RegisterEntryRequest{VariantID: v.ID, LocationID: loc.ID, Quantity: dec(10), UnitCost: &cost})
	require.NoError(t, err)
	id := res.Item.ID

	_, err = f.ledger.RegisterExit(f.ctx, "u", id, dto.RegisterExitRequest{Quantity: dec(1), MovementType: "PURCHASE"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.ledger.RegisterExit(f.ctx, "u", id, dto.RegisterExitRequest{Quantity: dec(-1), MovementType: "LOSS"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.ledger.RegisterExit(f.ctx, "u", "nope", dto.RegisterExitRequest{Quantity: dec(1), MovementType: "LOSS"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	out, err := f.ledger.RegisterExit(f.ctx, "u", id, dto.RegisterExitRequest{Quantity: dec(10), MovementType: "PRODUCTION", ReasonCode: "OP-7"})
	require.NoError(t, err)
	assert.True(t, out.Item.CurrentQuantity.IsZero(), "se puede agotar exactamente")
	assert.Equal(t, "ACTIVE", out.Item.Status, "sin transición automática al agotarse")
	assert.True(t, dec(20).Equal(out.Movement.TotalCost), "salida al costo del item")

	_, err = f.ledger.TransferItem(f.ctx, "u", id, dto.TransferItemRequest{DestinationLocationID: loc.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterExit_Concurrente(t *testing.T) {
	f := newFixture(t)
	v := f.catalog(t, serialSchema(false), dto.CreateVariantRequest{})
	loc, _, _ := f.bins(t, 0)
	res, err := f.ledger.RegisterEntry(f.ctx, "u", dto.RegisterEntryRequest{VariantID: v.ID, LocationID: loc.ID, Quantity: dec(100)})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.ledger.RegisterExit(f.ctx, "u", res.Item.ID, dto.RegisterExitRequest{Quantity: dec(10), MovementType: "SALE"}); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	item, err := f.ledger.GetItem(f.ctx, res.Item.ID)
	require.NoError(t, err)
	assert.True(t, item.CurrentQuantity.IsZero())
	movs, err := f.ledger.ListMovements(f.ctx, res.Item.ID)
	require.NoError(t, err)
	assert.Len(t, movs.Items, 11)
	for i := 1; i < len(movs.Items); i++ {
		assert.True(t, movs.Items[i].QuantityBefore.Equal(movs.Items[i-1].QuantityAfter), "historial reproducible en orden")
	}
}

func TestRegisterEntry_SecuencialesConcurrentes(t *testing.T) {
	f := newFixture(t)
	v := f.catalog(t, serialSchema(false), dto.CreateVariantRequest{})
	loc, _, _ := f.bins(t, 0)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.ledger.RegisterEntry(f.ctx, "u", dto.RegisterEntryRequest{VariantID: v.ID, LocationID: loc.ID, Quantity: dec(1)})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := f.ledger.ListItemsByVariant(f.ctx, v.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 10)
	for i, it := range list.Items {
		assert.Equal(t, int64(i+1), it.SequentialCode)
	}
}

// ── traslados ───────────────────────────────────────────────────────────────

func TestTransferItem_Validaciones(t *testing.T) {
	f := newFixture(t)
	v := f.catalog(t, serialSchema(false), dto.CreateVariantRequest{})
	loc, b1, b2 := f.bins(t, 0)
	res, err := f.ledger.RegisterEntry(f.ctx, "u", dto.RegisterEntryRequest{VariantID: v.ID, BinID: b1.ID, Quantity: dec(3)})
	require.NoError(t, err)
	id := res.Item.ID

	_, err = f.ledger.TransferItem(f.ctx, "u", id, dto.TransferItemRequest{DestinationBinID: b1.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "mismo destino")
	_, err = f.ledger.TransferItem(f.ctx, "u", id, dto.TransferItemRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin destino")
	_, err = f.ledger.TransferItem(f.ctx, "u", id, dto.TransferItemRequest{DestinationBinID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.ledger.TransferItem(f.ctx, "u", "nope", dto.TransferItemRequest{DestinationBinID: b2.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	out, err := f.ledger.TransferItem(f.ctx, "u", id, dto.TransferItemRequest{DestinationLocationID: loc.ID, Notes: "al piso"})
	require.NoError(t, err)
	assert.Empty(t, out.Item.BinID)
	assert.Equal(t, "L1", out.Movement.DestinationRef)
	bin1, _ := f.places.GetBin(f.ctx, b1.ID)
	assert.Equal(t, 0, bin1.Occupancy)
}

// ── log ─────────────────────────────────────────────────────────────────────

func TestLedger_RegistraMovimientosEnLog(t *testing.T) {
	f := newFixture(t)
	v := f.catalog(t, serialSchema(false), dto.CreateVariantRequest{})
	loc, _, _ := f.bins(t, 0)
	res, err := f.ledger.RegisterEntry(f.ctx, "u", dto.RegisterEntryRequest{VariantID: v.ID, LocationID: loc.ID, Quantity: dec(2)})
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(f.log.Bytes()), &line))
	assert.Equal(t, "movimiento registrado", line["message"])
	assert.Equal(t, res.Item.ID, line["item_id"])
	assert.Equal(t, "0", line["quantity_before"])
	assert.Equal(t, "2", line["quantity_after"])
}

// ── reposición y etiquetas ──────────────────────────────────────────────────

func TestReplenishment(t *testing.T) {
	f := newFixture(t)
	v := f.catalog(t, serialSchema(false), dto.CreateVariantRequest{
		MaxStock: dec(50), ReorderPoint: dec(10),
	})
	loc, _, _ := f.bins(t, 0)
	_, err := f.ledger.RegisterEntry(f.ctx, "u", dto.RegisterEntryRequest{VariantID: v.ID, LocationID: loc.ID, Quantity: dec(4)})
	require.NoError(t, err)

	list, err := f.replenish.GenerateReplenishmentList(f.ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, v.ID, list[0].VariantID)
	assert.True(t, dec(6).Equal(list[0].Deficit))
	assert.True(t, dec(46).Equal(list[0].SuggestedOrderQty), "sin reorder_quantity se completa hasta max_stock")
	assert.Equal(t, 1, list[0].Priority)
}

func TestLabel_AtributosMarcados(t *testing.T) {
	f := newFixture(t)
	schema := attribute.Schema{
		"serialNumber": {Type: attribute.TypeString, ShowInLabel: true},
		"weight":       {Type: attribute.TypeNumber, UnitOfMeasure: "kg", ShowInLabel: true},
		"internal":     {Type: attribute.TypeString},
	}
	v := f.catalog(t, schema, dto.CreateVariantRequest{Name: "Rollo"})
	loc, _, _ := f.bins(t, 0)
	res, err := f.ledger.RegisterEntry(f.ctx, "u", dto.RegisterEntryRequest{
		VariantID: v.ID, LocationID: loc.ID, Quantity: dec(1),
		Attributes: attrs(t, map[string]any{"serialNumber": "SN9", "weight": 2.5, "internal": "x"}),
	})
	require.NoError(t, err)

	label, err := f.labels.BuildLabel(f.ctx, res.Item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rollo", label.VariantName)
	assert.Equal(t, res.Item.EANCode, label.EANCode)
	assert.Equal(t, []dto.LabelAttribute{
		{Key: "serialNumber", Value: "SN9"},
		{Key: "weight", Value: "2.5", Unit: "kg"},
	}, label.Attributes)

	pdf, err := f.labels.RenderLabel(f.ctx, res.Item.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	_, err = f.labels.BuildLabel(f.ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
