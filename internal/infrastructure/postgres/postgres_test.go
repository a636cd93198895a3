package postgres_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/attribute"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-stock/pkg/config"
)

// Requiere TEST_DATABASE_URL apuntando a una base desechable: las tablas se vacían.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 10})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.EnsureSchema(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE movements, items, bins, locations, warehouses, variants, products, manufacturers, suppliers, templates`)
	require.NoError(t, err)
	return pool
}

type seeded struct {
	variant  *entity.Variant
	location *entity.Location
	bin      *entity.Bin
}

func seed(t *testing.T, pool *pgxpool.Pool, binCapacity int) seeded {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	tx := postgres.NewTxRunner(pool)

	templates := postgres.NewTemplateRepository(pool)
	seq, err := templates.NextSequentialCode(ctx)
	require.NoError(t, err)
	tpl := &entity.Template{
		ID: uuid.NewString(), Name: "T-" + uuid.NewString()[:8], SequentialCode: seq,
		ProductAttributes: attribute.Schema{},
		VariantAttributes: attribute.Schema{},
		ItemAttributes:    attribute.Schema{"serialNumber": {Type: attribute.TypeString, Required: true}},
		CreatedAt:         now, UpdatedAt: now,
	}
	require.NoError(t, templates.Create(ctx, tpl))

	product := &entity.Product{ID: uuid.NewString(), Name: "P-" + tpl.Name, Status: entity.ProductStatusDraft, TemplateID: tpl.ID, CreatedAt: now, UpdatedAt: now}
	variant := &entity.Variant{ID: uuid.NewString(), ProductID: product.ID, SKU: "SKU-" + tpl.Name, Name: "V", IsActive: true,
		ReorderPoint: decimal.NewFromInt(10), MaxStock: decimal.NewFromInt(50), CreatedAt: now, UpdatedAt: now}
	err = tx.RunCatalog(ctx, func(products repository.ProductRepository, variants repository.VariantRepository) error {
		pseq, err := products.NextSequentialCode(ctx, tpl.ID)
		if err != nil {
			return err
		}
		product.SequentialCode, product.FullCode = pseq, "001.000."+uuid.NewString()[:4]
		if err := products.Create(ctx, product); err != nil {
			return err
		}
		vseq, err := variants.NextSequentialCode(ctx, product.ID)
		if err != nil {
			return err
		}
		variant.SequentialCode, variant.FullCode = vseq, product.FullCode+".001"
		return variants.Create(ctx, variant)
	})
	require.NoError(t, err)

	wh := &entity.Warehouse{ID: uuid.NewString(), Name: "Central", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, postgres.NewWarehouseRepository(pool).Create(ctx, wh))
	loc := &entity.Location{ID: uuid.NewString(), WarehouseID: wh.ID, Code: "L-" + tpl.Name, IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, postgres.NewLocationRepository(pool).Create(ctx, loc))
	bin := &entity.Bin{ID: uuid.NewString(), LocationID: loc.ID, Code: "B-" + tpl.Name, Capacity: binCapacity, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, postgres.NewBinRepository(pool).Create(ctx, bin))
	return seeded{variant: variant, location: loc, bin: bin}
}

func newItem(s seeded, seq int64, qty int64) *entity.Item {
	now := time.Now().UTC().Truncate(time.Microsecond)
	code := s.variant.FullCode + "-" + uuid.NewString()[:5]
	return &entity.Item{
		ID: uuid.NewString(), Code: code, Slug: code, VariantID: s.variant.ID, LocationID: s.location.ID,
		SequentialCode: seq, FullCode: code, Barcode: "I" + code, EANCode: uuid.NewString()[:13], UPCCode: uuid.NewString()[:12],
		InitialQuantity: decimal.NewFromInt(qty), CurrentQuantity: decimal.NewFromInt(qty),
		Status: entity.ItemStatusActive, Attributes: attribute.Values{"serialNumber": attribute.String("SN1")},
		CreatedAt: now, UpdatedAt: now,
	}
}

func TestPostgres_PlantillaRoundTrip(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	seed(t, pool, 0)

	repo := postgres.NewTemplateRepository(pool)
	list, err := repo.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	got, err := repo.GetByName(ctx, list[0].Name)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.ItemAttributes["serialNumber"].Required)

	dup := *got
	dup.ID = uuid.NewString()
	dup.SequentialCode = got.SequentialCode + 100
	assert.ErrorIs(t, repo.Create(ctx, &dup), domain.ErrDuplicate)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPostgres_DecrementoCondicionalConcurrente(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	s := seed(t, pool, 0)
	items := postgres.NewItemRepository(pool)
	item := newItem(s, 1, 100)
	require.NoError(t, items.Create(ctx, item))

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := items.DecrementQuantity(ctx, item.ID, decimal.NewFromInt(10), time.Now())
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, accepted)
	got, err := items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentQuantity.IsZero())
	assert.Equal(t, attribute.String("SN1"), got.Attributes["serialNumber"])
}

func TestPostgres_SecuencialBajoBloqueo(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	s := seed(t, pool, 0)
	tx := postgres.NewTxRunner(pool)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := tx.Run(ctx, func(items repository.ItemRepository, _ repository.MovementRepository, _ repository.BinRepository, _ repository.VariantRepository) error {
				if err := items.LockVariantScope(ctx, s.variant.ID); err != nil {
					return err
				}
				last, err := items.GetLastByVariant(ctx, s.variant.ID)
				if err != nil {
					return err
				}
				seq := int64(1)
				if last != nil {
					seq = last.SequentialCode + 1
				}
				return items.Create(ctx, newItem(s, seq, 1))
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := postgres.NewItemRepository(pool).ListByVariant(ctx, s.variant.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 8)
	for i, it := range list {
		assert.Equal(t, int64(i+1), it.SequentialCode)
	}
}

func TestPostgres_NextScanSequenceSinRepetidos(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	items := postgres.NewItemRepository(pool)

	var mu sync.Mutex
	seen := map[int64]bool{}
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq, err := items.NextScanSequence(ctx)
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			assert.False(t, seen[seq], "secuencial repetido %d", seq)
			seen[seq] = true
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 16)
}

func TestPostgres_BinYMovimientos(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	s := seed(t, pool, 1)
	bins := postgres.NewBinRepository(pool)

	ok, err := bins.Occupy(ctx, s.bin.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = bins.Occupy(ctx, s.bin.ID)
	require.NoError(t, err)
	assert.False(t, ok, "bin lleno")
	require.NoError(t, bins.Release(ctx, s.bin.ID))
	require.NoError(t, bins.Release(ctx, s.bin.ID))
	got, err := bins.GetByID(ctx, s.bin.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Occupancy)

	items := postgres.NewItemRepository(pool)
	item := newItem(s, 1, 5)
	require.NoError(t, items.Create(ctx, item))
	movements := postgres.NewMovementRepository(pool)
	for i, typ := range []string{entity.MovementPurchase, entity.MovementSale, entity.MovementTransfer} {
		require.NoError(t, movements.Create(ctx, &entity.Movement{
			ID: uuid.NewString(), ItemID: item.ID, Type: typ, Quantity: decimal.NewFromInt(int64(i + 1)),
			CreatedAt: time.Now(),
		}))
	}
	list, err := movements.ListByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, entity.MovementTransfer, list[2].Type)

	rows, err := postgres.NewVariantRepository(pool).ListBelowReorderPoint(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, decimal.NewFromInt(5).Equal(rows[0].CurrentStock))
}
