package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/application/usecase"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/inventario-stock/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/inventario-stock/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/inventario-stock/internal/interfaces/http"
	"github.com/jhoicas/inventario-stock/pkg/config"
	"github.com/jhoicas/inventario-stock/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// txRunner cubre las dos formas de transacción que usan los casos de uso.
type txRunner interface {
	inventory.TxRunner
	usecase.CatalogTxRunner
}

// stores repositorios del backend elegido con STORE_BACKEND.
type stores struct {
	tx            txRunner
	templates     repository.TemplateRepository
	products      repository.ProductRepository
	variants      repository.VariantRepository
	items         repository.ItemRepository
	movements     repository.MovementRepository
	warehouses    repository.WarehouseRepository
	locations     repository.LocationRepository
	bins          repository.BinRepository
	suppliers     repository.SupplierRepository
	manufacturers repository.ManufacturerRepository
	close         func()
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.Store.Backend == config.BackendMemory {
		log.Warn().Msg("backend en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &stores{
			tx:            memory.NewTxRunner(s),
			templates:     memory.NewTemplateRepository(s),
			products:      memory.NewProductRepository(s),
			variants:      memory.NewVariantRepository(s),
			items:         memory.NewItemRepository(s),
			movements:     memory.NewMovementRepository(s),
			warehouses:    memory.NewWarehouseRepository(s),
			locations:     memory.NewLocationRepository(s),
			bins:          memory.NewBinRepository(s),
			suppliers:     memory.NewSupplierRepository(s),
			manufacturers: memory.NewManufacturerRepository(s),
			close:         func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &stores{
		tx:            postgres.NewTxRunner(pool),
		templates:     postgres.NewTemplateRepository(pool),
		products:      postgres.NewProductRepository(pool),
		variants:      postgres.NewVariantRepository(pool),
		items:         postgres.NewItemRepository(pool),
		movements:     postgres.NewMovementRepository(pool),
		warehouses:    postgres.NewWarehouseRepository(pool),
		locations:     postgres.NewLocationRepository(pool),
		bins:          postgres.NewBinRepository(pool),
		suppliers:     postgres.NewSupplierRepository(pool),
		manufacturers: postgres.NewManufacturerRepository(pool),
		close:         pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Store.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer st.close()

	templateUC := usecase.NewTemplateUseCase(st.templates)
	productUC := usecase.NewProductUseCase(st.tx, st.products, st.templates, st.suppliers, st.manufacturers)
	variantUC := usecase.NewVariantUseCase(st.tx, st.variants, st.products, st.templates)
	warehouseUC := usecase.NewWarehouseUseCase(st.warehouses)
	locationUC := usecase.NewLocationUseCase(st.locations, st.bins, st.warehouses)
	partnerUC := usecase.NewPartnerUseCase(st.suppliers, st.manufacturers)
	ledger := inventory.NewLedgerUseCase(
		st.tx, st.items, st.movements, st.variants, st.products, st.templates, st.locations, st.bins, log,
	)
	replenishmentUC := inventory.NewReplenishmentUseCase(st.variants)
	labelUC := inventory.NewLabelUseCase(
		st.items, st.variants, st.products, st.templates, infrapdf.NewMarotoLabelRenderer(),
	)

	deps := httpRouter.RouterDeps{
		TemplateUC:    templateUC,
		ProductUC:     productUC,
		VariantUC:     variantUC,
		WarehouseUC:   warehouseUC,
		LocationUC:    locationUC,
		PartnerUC:     partnerUC,
		Ledger:        ledger,
		Replenishment: replenishmentUC,
		Labels:        labelUC,
		Logger:        log,
		JWTSecret:     cfg.JWT.Secret,
	}

	// Idempotency-Key solo si hay Redis configurado.
	if cfg.Redis.Enabled() {
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		deps.Idempotency = infraredis.NewIdempotencyStore(client, cfg.Redis.IdempotencyTTL)
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: Idempotency-Key desactivado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Inventario Stock API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("sin especificación swagger, /docs desactivado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
