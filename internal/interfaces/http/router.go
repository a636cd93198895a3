package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/application/usecase"
	"github.com/jhoicas/inventario-stock/pkg/logger"
)

// RouterDeps dependencias para el router.
// Idempotency nil desactiva el control de Idempotency-Key.
type RouterDeps struct {
	TemplateUC    *usecase.TemplateUseCase
	ProductUC     *usecase.ProductUseCase
	VariantUC     *usecase.VariantUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	LocationUC    *usecase.LocationUseCase
	PartnerUC     *usecase.PartnerUseCase
	Ledger        *inventory.LedgerUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Labels        *inventory.LabelUseCase
	Idempotency   IdempotencyStore
	Logger        *logger.Logger
	JWTSecret     string
}

// Router registra las rutas de la API. Todas requieren Bearer Token; las
// escrituras del catálogo son de admin y las del libro de admin o bodeguero.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	catalogWrite := RequireRole(RoleAdmin)
	ledgerWrite := RequireRole(RoleAdmin, RoleBodeguero)
	idem := func(c *fiber.Ctx) error { return c.Next() }
	if deps.Idempotency != nil {
		idem = Idempotent(deps.Idempotency, log.Named("idempotency"))
	}

	// Plantillas
	templateHandler := NewTemplateHandler(deps.TemplateUC, deps.ProductUC)
	templates := api.Group("/templates")
	templates.Post("/", catalogWrite, templateHandler.Create)
	templates.Get("/", templateHandler.List)
	templates.Get("/:id", templateHandler.GetByID)
	templates.Put("/:id", catalogWrite, templateHandler.Update)
	templates.Delete("/:id", catalogWrite, templateHandler.Delete)
	templates.Get("/:id/products", templateHandler.ListProducts)

	// Productos
	productHandler := NewProductHandler(deps.ProductUC, deps.VariantUC)
	products := api.Group("/products")
	products.Post("/", catalogWrite, productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", catalogWrite, productHandler.Update)
	products.Get("/:id/variants", productHandler.ListVariants)

	// Variantes
	variantHandler := NewVariantHandler(deps.VariantUC, deps.Ledger)
	variants := api.Group("/variants")
	variants.Post("/", catalogWrite, variantHandler.Create)
	variants.Get("/:id", variantHandler.GetByID)
	variants.Put("/:id", catalogWrite, variantHandler.Update)
	variants.Get("/:id/items", variantHandler.ListItems)

	// Bodegas, ubicaciones y bins
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, deps.LocationUC)
	warehouses := api.Group("/warehouses")
	warehouses.Post("/", catalogWrite, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", catalogWrite, warehouseHandler.Update)
	warehouses.Delete("/:id", catalogWrite, warehouseHandler.Delete)
	warehouses.Get("/:id/locations", warehouseHandler.ListLocations)

	locations := api.Group("/locations")
	locations.Post("/", catalogWrite, warehouseHandler.CreateLocation)
	locations.Get("/:id", warehouseHandler.GetLocation)
	locations.Get("/:id/bins", warehouseHandler.ListBins)

	bins := api.Group("/bins")
	bins.Post("/", catalogWrite, warehouseHandler.CreateBin)
	bins.Get("/:id", warehouseHandler.GetBin)

	// Proveedores y fabricantes
	partnerHandler := NewPartnerHandler(deps.PartnerUC)
	api.Post("/suppliers", catalogWrite, partnerHandler.CreateSupplier)
	api.Get("/suppliers/:id", partnerHandler.GetSupplier)
	api.Post("/manufacturers", catalogWrite, partnerHandler.CreateManufacturer)
	api.Get("/manufacturers/:id", partnerHandler.GetManufacturer)

	// Libro de inventario
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.Replenishment, deps.Labels)
	inv := api.Group("/inventory")
	inv.Post("/entries", ledgerWrite, idem, inventoryHandler.RegisterEntry)
	inv.Get("/items/:id", inventoryHandler.GetItem)
	inv.Post("/items/:id/exits", ledgerWrite, idem, inventoryHandler.RegisterExit)
	inv.Post("/items/:id/transfers", ledgerWrite, idem, inventoryHandler.TransferItem)
	inv.Get("/items/:id/movements", inventoryHandler.ListMovements)
	inv.Get("/items/:id/label", inventoryHandler.GetLabel)
	inv.Get("/replenishment-list", inventoryHandler.GetReplenishmentList)
}
