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

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memcache"
	infrapdf "github.com/jhoicas/almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/internal/infrastructure/rediscache"
	httpRouter "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Cache de stock: Redis si hay REDIS_URL; si no, en memoria (modo degradado:
	// sirve para una sola instancia y se pierde al reiniciar).
	var cache inventory.StockCache
	if cfg.Redis.URL != "" {
		redisCache, err := rediscache.New(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisCache.Close()
		cache = redisCache
		log.Info().Msg("cache de stock sobre Redis")
	} else {
		cache = memcache.New()
		log.Warn().Msg("REDIS_URL no definido; cache de stock en memoria")
	}

	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	entityTTL := time.Duration(cfg.Cache.EntityTTLSeconds) * time.Second
	syncer := inventory.NewCacheSyncer(inventoryRepo, cache, log)

	recordMovementUC := inventory.NewRecordMovementUseCase(txRunner, productRepo, warehouseRepo, syncer, log)
	transferUC := inventory.NewTransferUseCase(txRunner, productRepo, warehouseRepo, syncer, log)
	stockQueryUC := inventory.NewStockQueryUseCase(movementRepo, inventoryRepo, productRepo, warehouseRepo, cache, log)
	alertsUC := inventory.NewAlertsUseCase(cache, productRepo, inventoryRepo, log)
	productUC := usecase.NewProductUseCase(productRepo, warehouseRepo, cache, entityTTL, log)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo, cache, entityTTL, log)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// PDF: reporte de productos bajo su umbral mínimo
	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := reports.NewReportUseCase(alertsUC, pdfGenerator)

	// Pase de reconciliación cache↔ledger en segundo plano
	reconciler := inventory.NewReconciler(
		productRepo, syncer,
		time.Duration(cfg.Cache.ReconcileInterval)*time.Second,
		log,
	)
	go reconciler.Run(ctx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.SetupRoutes(app, httpRouter.Handlers{
		Auth:      httpRouter.NewAuthHandler(authUC),
		Product:   httpRouter.NewProductHandler(productUC),
		Warehouse: httpRouter.NewWarehouseHandler(warehouseUC),
		Inventory: httpRouter.NewInventoryHandler(recordMovementUC, transferUC, stockQueryUC, alertsUC),
		Report:    httpRouter.NewReportHandler(reportUC),
	}, cfg.JWT.Secret)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	cancel() // detiene el reconciliador

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
