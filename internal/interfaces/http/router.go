package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appanalytics "github.com/jhoicas/eventos-erp/internal/application/analytics"
	"github.com/jhoicas/eventos-erp/internal/application/auth"
	"github.com/jhoicas/eventos-erp/internal/application/events"
	"github.com/jhoicas/eventos-erp/internal/application/finance"
	"github.com/jhoicas/eventos-erp/internal/application/inventory"
	"github.com/jhoicas/eventos-erp/internal/application/usecase"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	TeamUC        *auth.TeamUseCase
	CompanyUC     *usecase.CompanyUseCase
	ProductUC     *usecase.ProductUseCase
	StockLedger   *inventory.StockLedger
	Replenishment *inventory.ReplenishmentUseCase
	Ledger        *finance.Ledger
	Events        *events.Orchestrator
	EmployeeUC    *usecase.EmployeeUseCase
	TaskUC        *usecase.TaskUseCase
	CalendarUC    *usecase.CalendarUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	Permissions   *usecase.PermissionService
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret)

	// Auth (registro y login públicos)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/profile", requireAuth, authHandler.Profile)

	// Team: aceptar invitación es público, el resto requiere token
	team := api.Group("/team")
	teamHandler := NewTeamHandler(deps.TeamUC)
	team.Post("/accept-invite", teamHandler.AcceptInvite)
	team.Post("/invite", requireAuth, RequireRole(entity.RoleOwner, entity.RoleAdmin), teamHandler.Invite)
	team.Get("/", requireAuth, teamHandler.Members)
	team.Get("/invites", requireAuth, teamHandler.PendingInvitations)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", requireAuth)

	// Company
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	company := protected.Group("/company")
	company.Get("/settings", companyHandler.GetSettings)
	company.Put("/settings", RequireRole(entity.RoleOwner, entity.RoleAdmin), companyHandler.UpdateSettings)

	// Stock (módulo stock)
	stock := protected.Group("/stock", RequireModule(entity.ModuleStock, deps.Permissions))
	productHandler := NewProductHandler(deps.ProductUC)
	inventoryHandler := NewInventoryHandler(deps.StockLedger, deps.Replenishment)
	stock.Get("/", productHandler.List)
	stock.Get("/search", productHandler.Search)
	stock.Get("/report", productHandler.Report)
	stock.Get("/report/pdf", productHandler.ReportPDF)
	stock.Get("/replenishment", inventoryHandler.GetReplenishmentList)
	stock.Post("/", productHandler.Create)
	stock.Get("/:id", productHandler.GetByID)
	stock.Put("/:id", productHandler.Update)
	stock.Delete("/:id", productHandler.Delete)
	stock.Patch("/:id/adjust", inventoryHandler.Adjust)
	stock.Get("/:id/movements", inventoryHandler.Movements)

	// Finance (módulo finance)
	fin := protected.Group("/finance", RequireModule(entity.ModuleFinance, deps.Permissions))
	financeHandler := NewFinanceHandler(deps.Ledger)
	fin.Get("/", financeHandler.List)
	fin.Post("/", financeHandler.Create)
	fin.Get("/balance", financeHandler.Balance)
	fin.Get("/report", financeHandler.Report)
	fin.Get("/projection", financeHandler.Projection)
	fin.Get("/recurring", financeHandler.Recurring)
	fin.Get("/:id", financeHandler.Get)
	fin.Put("/:id", financeHandler.Update)
	fin.Delete("/:id", financeHandler.Delete)

	// Events: lectura para cualquier usuario, escritura manager o superior
	ev := protected.Group("/events")
	eventHandler := NewEventHandler(deps.Events)
	ev.Get("/", eventHandler.List)
	ev.Get("/report", eventHandler.Report)
	ev.Get("/form-data", eventHandler.FormData)
	ev.Get("/:id", eventHandler.Get)
	ev.Post("/", RequireManagerOrAbove(), eventHandler.Create)
	ev.Put("/:id", RequireManagerOrAbove(), eventHandler.Update)
	ev.Delete("/:id", RequireManagerOrAbove(), eventHandler.Delete)

	// HR (módulo hr)
	hr := protected.Group("/hr", RequireModule(entity.ModuleHR, deps.Permissions))
	hrHandler := NewHRHandler(deps.EmployeeUC)
	hr.Get("/", hrHandler.List)
	hr.Post("/", hrHandler.Create)
	hr.Get("/payroll", hrHandler.Payroll)
	hr.Get("/birthdays", hrHandler.Birthdays)
	hr.Put("/:id", hrHandler.Update)
	hr.Patch("/:id/deactivate", hrHandler.Deactivate)

	// Tasks (módulo tasks)
	tasks := protected.Group("/tasks", RequireModule(entity.ModuleTasks, deps.Permissions))
	taskHandler := NewTaskHandler(deps.TaskUC)
	tasks.Get("/", taskHandler.List)
	tasks.Post("/", taskHandler.Create)
	tasks.Put("/:id", taskHandler.Update)
	tasks.Delete("/:id", taskHandler.Delete)
	tasks.Patch("/:id/complete", taskHandler.Complete)

	// Calendar
	cal := protected.Group("/calendar")
	calendarHandler := NewCalendarHandler(deps.CalendarUC)
	cal.Get("/blocks", calendarHandler.ListBlocks)
	cal.Post("/blocks", calendarHandler.CreateBlock)
	cal.Delete("/blocks/:id", calendarHandler.RemoveBlock)
	cal.Get("/export", calendarHandler.Export)

	// Dashboard
	dash := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dash.Get("/metrics", dashboardHandler.GetMetrics)
	dash.Get("/revenue-chart", dashboardHandler.GetRevenueChart)
	dash.Get("/upcoming-events", dashboardHandler.GetUpcomingEvents)
}
