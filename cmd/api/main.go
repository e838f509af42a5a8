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

	appanalytics "github.com/genxsop/genxsop/internal/application/analytics"
	"github.com/genxsop/genxsop/internal/application/auth"
	"github.com/genxsop/genxsop/internal/application/usecase"
	infrapdf "github.com/genxsop/genxsop/internal/infrastructure/pdf"
	"github.com/genxsop/genxsop/internal/infrastructure/postgres"
	httpRouter "github.com/genxsop/genxsop/internal/interfaces/http"
	"github.com/genxsop/genxsop/pkg/config"
	"github.com/genxsop/genxsop/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	if err := postgres.Migrate(cfg.DB, log); err != nil {
		log.Fatal().Err(err).Msg("database migration")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	demandRepo := postgres.NewDemandPlanRepository(pool)
	supplyRepo := postgres.NewSupplyPlanRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	forecastRepo := postgres.NewForecastRepository(pool)
	scenarioRepo := postgres.NewScenarioRepository(pool)
	cycleRepo := postgres.NewSOPCycleRepository(pool)
	kpiRepo := postgres.NewKPIRepository(pool)
	forecastTx := postgres.NewForecastTxRunner(pool)

	authUC := auth.NewUseCase(userRepo, cfg.JWT)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo)
	demandUC := usecase.NewDemandUseCase(demandRepo)
	supplyUC := usecase.NewSupplyUseCase(supplyRepo, demandRepo, productRepo)
	inventoryUC := usecase.NewInventoryUseCase(inventoryRepo)
	forecastUC := usecase.NewForecastUseCase(forecastRepo, demandRepo, productRepo, forecastTx)
	scenarioUC := usecase.NewScenarioUseCase(scenarioRepo)
	sopUC := usecase.NewSOPCycleUseCase(cycleRepo, infrapdf.NewCycleReportGenerator())
	kpiUC := usecase.NewKPIUseCase(kpiRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(demandRepo, inventoryRepo, kpiRepo, cycleRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "GenX S&OP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		DemandUC:    demandUC,
		SupplyUC:    supplyUC,
		InventoryUC: inventoryUC,
		ForecastUC:  forecastUC,
		ScenarioUC:  scenarioUC,
		SOPUC:       sopUC,
		KPIUC:       kpiUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
