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
	"github.com/redis/go-redis/v9"

	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/application/ledger"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/application/orders"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/infrastructure/postgres"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/infrastructure/rediscache"
	httpRouter "github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/interfaces/http"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/pkg/config"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/pkg/logger"
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

	// Caché de saldos opcional: REDIS_ADDR vacío lo deshabilita.
	var balanceCache ledger.BalanceCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, caché de saldos deshabilitado")
		} else {
			balanceCache = rediscache.NewBalanceCache(rdb)
			defer rdb.Close()
		}
	}

	movementRepo := postgres.NewStockMovementRepository(pool)
	balanceRepo := postgres.NewStockBalanceRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	eventRepo := postgres.NewOrderEventRepository(pool)

	ledgerTx := postgres.NewLedgerTxRunner(pool)
	orderTx := postgres.NewOrderTxRunner(pool)

	ledgerUC := ledger.NewLedgerUseCase(ledgerTx, movementRepo, balanceRepo, balanceCache)
	reconcileUC := ledger.NewReconcileUseCase(ledgerTx, balanceCache)
	eventLogUC := orders.NewEventLogUseCase(orderTx, orderRepo, eventRepo)
	projectorUC := orders.NewProjectorUseCase(orderRepo, eventRepo)

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
		Title:    "Smartbuy Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:    ledgerUC,
		ReconcileUC: reconcileUC,
		EventLogUC:  eventLogUC,
		ProjectorUC: projectorUC,
	})

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
