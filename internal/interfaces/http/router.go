package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-api/internal/application/warehousing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WarehouseUC    *warehousing.WarehouseUseCase
	LocationUC     *warehousing.LocationUseCase
	InternalMoveUC *warehousing.InternalMoveUseCase
	PutawayUC      *warehousing.PutawayUseCase
	AdjustmentUC   *warehousing.AdjustmentUseCase
	StockUC        *warehousing.StockUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Warehouses
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Get("/:id/virtual-bins", warehouseHandler.VirtualBins)
	warehouses.Post("/:id/virtual-bins", warehouseHandler.ProvisionBins)

	// Putaway (por bodega)
	putawayHandler := NewPutawayHandler(deps.PutawayUC, deps.StockUC)
	warehouses.Get("/:id/putaway", putawayHandler.List)
	warehouses.Get("/:id/putaway/kpis", putawayHandler.KPIs)
	warehouses.Post("/:id/putaway", putawayHandler.Confirm)

	// Locations
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Patch("/:id/status", locationHandler.UpdateStatus)

	// Stock y kardex
	stockHandler := NewStockHandler(deps.StockUC)
	stock := protected.Group("/stock")
	stock.Get("/on-hand", stockHandler.OnHand)
	locations.Get("/:id/ledger", stockHandler.LedgerByLocation)
	items := protected.Group("/items")
	items.Get("/:id/ledger", stockHandler.LedgerByItem)

	// Traslados internos
	moves := protected.Group("/internal-moves")
	internalMoveHandler := NewInternalMoveHandler(deps.InternalMoveUC)
	moves.Post("/", internalMoveHandler.Execute)

	// Solicitudes de ajuste
	adjustments := protected.Group("/adjustments")
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC)
	adjustments.Post("/", adjustmentHandler.Create)
	adjustments.Get("/", adjustmentHandler.List)
	adjustments.Get("/:id", adjustmentHandler.GetByID)
	// Aprobar o declinar es decisión de supervisión, no del operario que reporta.
	adjustments.Post("/:id/approve", RequireRole("admin", "supervisor"), adjustmentHandler.Approve)
	adjustments.Post("/:id/decline", RequireRole("admin", "supervisor"), adjustmentHandler.Decline)
	adjustments.Delete("/:id", adjustmentHandler.Delete)
}
