package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	appanalytics "github.com/jhoicas/eventos-erp/internal/application/analytics"
	"github.com/jhoicas/eventos-erp/internal/application/auth"
	"github.com/jhoicas/eventos-erp/internal/application/events"
	"github.com/jhoicas/eventos-erp/internal/application/finance"
	"github.com/jhoicas/eventos-erp/internal/application/inventory"
	"github.com/jhoicas/eventos-erp/internal/application/ports"
	"github.com/jhoicas/eventos-erp/internal/application/usecase"
	infracache "github.com/jhoicas/eventos-erp/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/eventos-erp/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/eventos-erp/internal/interfaces/http"
	"github.com/jhoicas/eventos-erp/pkg/config"
	"github.com/jhoicas/eventos-erp/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	metricsCache, closeCache := openCache(ctx, cfg, log)
	defer closeCache()

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	authUC := auth.NewAuthUseCase(st.users, st.companies, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Zerolog())
	teamUC := auth.NewTeamUseCase(st.users, st.invitations, authUC, log.Zerolog())
	companyUC := usecase.NewCompanyUseCase(st.companies)
	permissions := usecase.NewPermissionService(st.users)

	productUC := usecase.NewProductUseCase(st.products, st.companies, pdfGenerator, metricsCache, log.Zerolog())
	stockLedger := inventory.NewStockLedger(st.tx, st.products, st.movements, metricsCache, log.Zerolog())
	replenishmentUC := inventory.NewReplenishmentUseCase(st.products, st.events)

	ledger := finance.NewLedger(st.transactions, metricsCache, log.Zerolog())
	orchestrator := events.NewOrchestrator(
		st.tx, st.events, st.products, st.users,
		stockLedger, ledger, metricsCache,
		events.Options{ReturnStockOnDelete: cfg.Events.ReturnStockOnDelete},
		log.Zerolog(),
	)

	employeeUC := usecase.NewEmployeeUseCase(st.employees)
	taskUC := usecase.NewTaskUseCase(st.tasks)
	calendarUC := usecase.NewCalendarUseCase(st.blocks, st.events, st.companies, pdfGenerator)
	dashboardUC := appanalytics.NewDashboardUseCase(st.dashboard, st.events, ledger, metricsCache, log.Zerolog())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.MetricsMiddleware())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	if cfg.HTTP.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: strings.TrimSpace(cfg.HTTP.CORSOrigins),
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		}))
	}

	// Swagger UI: http://localhost:<port>/docs (requiere docs/swagger.json generado con `go tool swag init -g cmd/api/main.go`)
	if cfg.HTTP.EnableSwagger {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Eventos ERP API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := st.ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		TeamUC:        teamUC,
		CompanyUC:     companyUC,
		ProductUC:     productUC,
		StockLedger:   stockLedger,
		Replenishment: replenishmentUC,
		Ledger:        ledger,
		Events:        orchestrator,
		EmployeeUC:    employeeUC,
		TaskUC:        taskUC,
		CalendarUC:    calendarUC,
		DashboardUC:   dashboardUC,
		Permissions:   permissions,
		JWTSecret:     cfg.JWT.Secret,
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

// openCache usa Redis si hay REDIS_URL; si no conecta, sigue con la caché en proceso.
func openCache(ctx context.Context, cfg *config.Config, log *logger.Logger) (ports.MetricsCache, func()) {
	if cfg.Redis.URL == "" {
		return infracache.NewTTLCache(cfg.Redis.TTL), func() {}
	}
	rdb, err := infracache.NewRedisClient(ctx, cfg.Redis.URL)
	if err != nil {
		log.Warn().Err(err).Msg("redis no disponible, usando caché en proceso")
		return infracache.NewTTLCache(cfg.Redis.TTL), func() {}
	}
	log.Info().Dur("ttl", cfg.Redis.TTL).Msg("caché de métricas en redis")
	return infracache.NewRedisCache(rdb, cfg.Redis.TTL), func() { _ = rdb.Close() }
}
