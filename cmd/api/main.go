package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/kardex-api/internal/application/warehousing"
	"github.com/jhoicas/kardex-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/kardex-api/internal/interfaces/http"
	"github.com/jhoicas/kardex-api/pkg/config"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	warehouseRepo := postgres.NewWarehouseRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	adjustmentRepo := postgres.NewAdjustmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	warehouseUC := warehousing.NewWarehouseUseCase(warehouseRepo, locationRepo)
	locationUC := warehousing.NewLocationUseCase(warehouseRepo, locationRepo, ledgerRepo)
	internalMoveUC := warehousing.NewInternalMoveUseCase(txRunner)
	putawayUC := warehousing.NewPutawayUseCase(txRunner)
	adjustmentUC := warehousing.NewAdjustmentUseCase(txRunner, adjustmentRepo)
	stockUC := warehousing.NewStockUseCase(ledgerRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		WarehouseUC:    warehouseUC,
		LocationUC:     locationUC,
		InternalMoveUC: internalMoveUC,
		PutawayUC:      putawayUC,
		AdjustmentUC:   adjustmentUC,
		StockUC:        stockUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	httpLog := log.WithComponent("http")
	go func() {
		httpLog.Info().Str("addr", cfg.HTTP.Addr()).Msg("escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			httpLog.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		httpLog.Error().Err(err).Msg("shutdown del servidor HTTP")
	}
	log.Info().Msg("servidor detenido")
}
