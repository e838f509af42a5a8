package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/genxsop/genxsop/internal/application/analytics"
	"github.com/genxsop/genxsop/internal/application/auth"
	"github.com/genxsop/genxsop/internal/application/usecase"
	"github.com/genxsop/genxsop/pkg/rbac"
)

// RouterDeps are the dependencies for the router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	ProductUC   *usecase.ProductUseCase
	DemandUC    *usecase.DemandUseCase
	SupplyUC    *usecase.SupplyUseCase
	InventoryUC *usecase.InventoryUseCase
	ForecastUC  *usecase.ForecastUseCase
	ScenarioUC  *usecase.ScenarioUseCase
	SOPUC       *usecase.SOPCycleUseCase
	KPIUC       *usecase.KPIUseCase
	DashboardUC *analytics.DashboardUseCase
	JWTSecret   string
}

// Router registers the API routes. Static paths (active, models, compare...)
// are registered before the :id routes so Fiber matches them first.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Auth (public)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Everything else requires a Bearer token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Account self-management
	protected.Get("/auth/me", authHandler.Me)
	protected.Put("/auth/me", authHandler.UpdateMe)
	protected.Put("/auth/password", authHandler.ChangePassword)
	protected.Get("/users", RequirePermission(rbac.PermUsersManage), authHandler.ListUsers)

	// Dashboard
	dashboard := protected.Group("/dashboard", RequireModule(rbac.ModuleDashboard))
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.Summary)
	dashboard.Get("/alerts", dashboardHandler.Alerts)
	dashboard.Get("/sop-status", dashboardHandler.SOPStatus)

	// Products (admin only)
	products := protected.Group("/products", RequireModule(rbac.ModuleProducts))
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/categories", productHandler.ListCategories)
	products.Post("/categories", RequirePermission(rbac.PermProductsManage), productHandler.CreateCategory)
	products.Get("/", productHandler.List)
	products.Post("/", RequirePermission(rbac.PermProductsManage), productHandler.Create)
	products.Get("/:id", productHandler.Get)
	products.Put("/:id", RequirePermission(rbac.PermProductsManage), productHandler.Update)
	products.Delete("/:id", RequirePermission(rbac.PermProductsManage), productHandler.Delete)

	// Demand plans
	demand := protected.Group("/demand-plans", RequireModule(rbac.ModuleDemand))
	demandHandler := NewDemandHandler(deps.DemandUC)
	demand.Get("/", demandHandler.List)
	demand.Post("/", RequirePermission(rbac.PermDemandPlanWrite), demandHandler.Create)
	demand.Get("/:id", demandHandler.Get)
	demand.Put("/:id", RequirePermission(rbac.PermDemandPlanWrite), demandHandler.Update)
	demand.Delete("/:id", RequirePermission(rbac.PermDemandPlanWrite), demandHandler.Delete)
	demand.Post("/:id/adjust", RequirePermission(rbac.PermDemandPlanWrite), demandHandler.Adjust)
	demand.Post("/:id/submit", RequirePermission(rbac.PermDemandPlanWrite), demandHandler.Submit)
	demand.Post("/:id/approve", RequirePermission(rbac.PermDemandPlanApprove), demandHandler.Approve)
	demand.Post("/:id/reject", RequirePermission(rbac.PermDemandPlanApprove), demandHandler.Reject)

	// Supply plans + gap analysis
	supply := protected.Group("/supply-plans", RequireModule(rbac.ModuleSupply))
	supplyHandler := NewSupplyHandler(deps.SupplyUC)
	supply.Get("/gap-analysis", supplyHandler.GapAnalysis)
	supply.Get("/", supplyHandler.List)
	supply.Post("/", RequirePermission(rbac.PermSupplyPlanWrite), supplyHandler.Create)
	supply.Get("/:id", supplyHandler.Get)
	supply.Put("/:id", RequirePermission(rbac.PermSupplyPlanWrite), supplyHandler.Update)
	supply.Delete("/:id", RequirePermission(rbac.PermSupplyPlanWrite), supplyHandler.Delete)
	supply.Post("/:id/submit", RequirePermission(rbac.PermSupplyPlanWrite), supplyHandler.Submit)
	supply.Post("/:id/approve", RequirePermission(rbac.PermSupplyPlanApprove), supplyHandler.Approve)

	// Inventory
	inventory := protected.Group("/inventory", RequireModule(rbac.ModuleInventory))
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inventory.Get("/health", inventoryHandler.Health)
	inventory.Get("/alerts", inventoryHandler.Alerts)
	inventory.Get("/", inventoryHandler.List)
	inventory.Post("/", RequirePermission(rbac.PermInventoryUpdate), inventoryHandler.Create)
	inventory.Get("/:id", inventoryHandler.Get)
	inventory.Put("/:id", RequirePermission(rbac.PermInventoryUpdate), inventoryHandler.Update)

	// Forecasting
	forecasts := protected.Group("/forecasts", RequireModule(rbac.ModuleForecasting))
	forecastHandler := NewForecastHandler(deps.ForecastUC)
	forecasts.Get("/models", forecastHandler.Models)
	forecasts.Get("/accuracy", forecastHandler.Accuracy)
	forecasts.Get("/anomalies", forecastHandler.Anomalies)
	forecasts.Post("/generate", RequirePermission(rbac.PermForecastGenerate), forecastHandler.Generate)
	forecasts.Get("/", forecastHandler.List)
	forecasts.Get("/:id", forecastHandler.Get)

	// Scenarios
	scenarios := protected.Group("/scenarios", RequireModule(rbac.ModuleScenarios))
	scenarioHandler := NewScenarioHandler(deps.ScenarioUC)
	scenarios.Post("/compare", scenarioHandler.Compare)
	scenarios.Get("/", scenarioHandler.List)
	scenarios.Post("/", RequirePermission(rbac.PermScenarioWrite), scenarioHandler.Create)
	scenarios.Get("/:id", scenarioHandler.Get)
	scenarios.Put("/:id", RequirePermission(rbac.PermScenarioWrite), scenarioHandler.Update)
	scenarios.Delete("/:id", RequirePermission(rbac.PermScenarioWrite), scenarioHandler.Delete)
	scenarios.Post("/:id/run", RequirePermission(rbac.PermScenarioWrite), scenarioHandler.Run)
	scenarios.Post("/:id/submit", RequirePermission(rbac.PermScenarioWrite), scenarioHandler.Submit)
	scenarios.Post("/:id/approve", RequirePermission(rbac.PermScenarioApprove), scenarioHandler.Approve)
	scenarios.Post("/:id/reject", RequirePermission(rbac.PermScenarioApprove), scenarioHandler.Reject)

	// S&OP cycles
	sop := protected.Group("/sop-cycles", RequireModule(rbac.ModuleSOPCycle))
	sopHandler := NewSOPHandler(deps.SOPUC)
	sop.Get("/active", sopHandler.GetActive)
	sop.Get("/", sopHandler.List)
	sop.Post("/", RequirePermission(rbac.PermSOPManage), sopHandler.Create)
	sop.Get("/:id", sopHandler.Get)
	sop.Put("/:id", RequirePermission(rbac.PermSOPManage), sopHandler.Update)
	sop.Post("/:id/advance", RequirePermission(rbac.PermSOPManage), sopHandler.AdvanceStep)
	sop.Post("/:id/complete", RequirePermission(rbac.PermSOPManage), sopHandler.Complete)
	sop.Get("/:id/report", sopHandler.Report)

	// KPIs
	kpis := protected.Group("/kpis", RequireModule(rbac.ModuleKPI))
	kpiHandler := NewKPIHandler(deps.KPIUC)
	kpis.Get("/dashboard", kpiHandler.Dashboard)
	kpis.Get("/summary", kpiHandler.Dashboard) // legacy alias used by older clients
	kpis.Get("/trends", kpiHandler.Trends)
	kpis.Get("/alerts", kpiHandler.Alerts)
	kpis.Put("/targets", RequirePermission(rbac.PermKPIManage), kpiHandler.SetTarget)
	kpis.Get("/", kpiHandler.List)
	kpis.Post("/", RequirePermission(rbac.PermKPIManage), kpiHandler.Create)
	kpis.Get("/:id", kpiHandler.Get)
}
