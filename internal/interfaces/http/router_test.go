package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/eventos-erp/internal/application/analytics"
	"github.com/jhoicas/eventos-erp/internal/application/auth"
	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/application/events"
	"github.com/jhoicas/eventos-erp/internal/application/finance"
	"github.com/jhoicas/eventos-erp/internal/application/inventory"
	"github.com/jhoicas/eventos-erp/internal/application/usecase"
	"github.com/jhoicas/eventos-erp/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/eventos-erp/internal/interfaces/http"
)

// newRouterApp arma la API completa sobre el almacén en memoria.
func newRouterApp(t *testing.T) *fiber.App {
	t.Helper()
	s := memory.NewStore()
	log := zerolog.Nop()

	users := memory.NewUserRepository(s)
	companies := memory.NewCompanyRepository(s)
	products := memory.NewProductRepository(s)
	eventRepo := memory.NewEventRepository(s)
	runner := memory.NewTxRunner(s)

	authUC := auth.NewAuthUseCase(users, companies, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	}, log)
	stock := inventory.NewStockLedger(runner, products, memory.NewStockMovementRepository(s), nil, log)
	ledger := finance.NewLedger(memory.NewTransactionRepository(s), nil, log)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        authUC,
		TeamUC:        auth.NewTeamUseCase(users, memory.NewInvitationRepository(s), authUC, log),
		CompanyUC:     usecase.NewCompanyUseCase(companies),
		ProductUC:     usecase.NewProductUseCase(products, companies, nil, nil, zerolog.Nop()),
		StockLedger:   stock,
		Replenishment: inventory.NewReplenishmentUseCase(products, eventRepo),
		Ledger:        ledger,
		Events: events.NewOrchestrator(runner, eventRepo, products, users, stock, ledger, nil,
			events.Options{}, log),
		EmployeeUC:  usecase.NewEmployeeUseCase(memory.NewEmployeeRepository(s)),
		TaskUC:      usecase.NewTaskUseCase(memory.NewTaskRepository(s)),
		CalendarUC:  usecase.NewCalendarUseCase(memory.NewBlockedDateRepository(s), eventRepo, companies, nil),
		DashboardUC: appanalytics.NewDashboardUseCase(memory.NewDashboardRepository(s), eventRepo, ledger, nil, log),
		Permissions: usecase.NewPermissionService(users),
		JWTSecret:   testJWTSecret,
	})
	return app
}

// call envía una petición JSON y devuelve status y cuerpo.
func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func register(t *testing.T, app *fiber.App, in dto.RegisterRequest) dto.LoginResponse {
	t.Helper()
	status, body := call(t, app, http.MethodPost, "/api/auth/register", "", in)
	require.Equal(t, http.StatusCreated, status, string(body))
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_RegistroLoginYPerfil(t *testing.T) {
	app := newRouterApp(t)
	owner := register(t, app, dto.RegisterRequest{
		Email: "duena@eventos.test", Password: "secreto1", Name: "Dueña", CompanyName: "Eventos SA",
	})
	assert.Equal(t, "owner", owner.User.Role)

	status, body := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email: "DUENA@Eventos.test", Password: "secreto1",
	})
	require.Equal(t, http.StatusOK, status, string(body))

	status, body = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email: "duena@eventos.test", Password: "incorrecta",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, string(body), "INVALID_CREDENTIALS")

	status, _ = call(t, app, http.MethodGet, "/api/auth/profile", owner.Token, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestRouter_PermisosPorModuloYRol(t *testing.T) {
	app := newRouterApp(t)
	owner := register(t, app, dto.RegisterRequest{
		Email: "owner@eventos.test", Password: "secreto1", Name: "Owner", CompanyName: "Eventos SA",
	})
	employee := register(t, app, dto.RegisterRequest{
		Email: "emp@eventos.test", Password: "secreto1", Name: "Emp", CompanyID: owner.User.CompanyID,
	})
	require.Equal(t, "employee", employee.User.Role)

	// El owner entra a todos los módulos.
	status, body := call(t, app, http.MethodGet, "/api/stock/", owner.Token, nil)
	assert.Equal(t, http.StatusOK, status, string(body))

	// Un empleado sin departamento solo tiene tareas.
	status, body = call(t, app, http.MethodGet, "/api/stock/", employee.Token, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, string(body), "MODULE_ACCESS_DENIED")

	status, _ = call(t, app, http.MethodGet, "/api/tasks/", employee.Token, nil)
	assert.Equal(t, http.StatusOK, status)

	// Los eventos se leen con cualquier rol, pero crear exige manager o superior.
	status, _ = call(t, app, http.MethodGet, "/api/events/", employee.Token, nil)
	assert.Equal(t, http.StatusOK, status)

	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	ev := dto.CreateEventRequest{Title: "Boda", Location: "Quinta", StartDate: start, EndDate: start.Add(4 * time.Hour)}
	status, body = call(t, app, http.MethodPost, "/api/events/", employee.Token, ev)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, string(body), "INSUFFICIENT_PERMISSIONS")

	status, body = call(t, app, http.MethodPost, "/api/events/", owner.Token, ev)
	assert.Equal(t, http.StatusCreated, status, string(body))
}

func TestRouter_StockYAjustes(t *testing.T) {
	app := newRouterApp(t)
	owner := register(t, app, dto.RegisterRequest{
		Email: "owner@eventos.test", Password: "secreto1", Name: "Owner", CompanyName: "Eventos SA",
	})

	status, body := call(t, app, http.MethodPost, "/api/stock/", owner.Token, map[string]any{
		"sku": "SIL-01", "name": "Silla Tiffany", "category": "home", "cost": "10", "price": "25", "quantity": 4,
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var product dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &product))

	status, body = call(t, app, http.MethodPatch, "/api/stock/"+product.ID+"/adjust", owner.Token,
		dto.AdjustStockRequest{Operation: "subtract", Quantity: 10})
	require.Equal(t, http.StatusOK, status, string(body))
	var adj dto.AdjustStockResponse
	require.NoError(t, json.Unmarshal(body, &adj))
	assert.Equal(t, 4, adj.OldQuantity)
	assert.Equal(t, 0, adj.NewQuantity, "la cantidad no queda negativa")

	status, body = call(t, app, http.MethodPatch, "/api/stock/"+product.ID+"/adjust", owner.Token,
		dto.AdjustStockRequest{Operation: "multiply", Quantity: 1})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "VALIDATION")

	status, _ = call(t, app, http.MethodGet, "/api/stock/"+product.ID+"/movements", owner.Token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, body = call(t, app, http.MethodPost, "/api/stock/", owner.Token, map[string]any{
		"sku": "SIL-01", "name": "Duplicada", "category": "home",
	})
	assert.Equal(t, http.StatusConflict, status, string(body))
}

func TestRouter_BloqueoEnConflictoConEvento(t *testing.T) {
	app := newRouterApp(t)
	owner := register(t, app, dto.RegisterRequest{
		Email: "owner@eventos.test", Password: "secreto1", Name: "Owner", CompanyName: "Eventos SA",
	})
	start := time.Date(2031, 5, 10, 18, 0, 0, 0, time.UTC)
	status, body := call(t, app, http.MethodPost, "/api/events/", owner.Token, dto.CreateEventRequest{
		Title: "Gala", Location: "Hotel", StartDate: start, EndDate: start.Add(5 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = call(t, app, http.MethodPost, "/api/calendar/blocks", owner.Token, dto.CreateBlockedDateRequest{
		Title: "Mantenimiento", StartDate: start.Add(-time.Hour), EndDate: start.Add(time.Hour), Type: "maintenance",
	})
	assert.Equal(t, http.StatusConflict, status)
	var conflict dto.ConflictResponse
	require.NoError(t, json.Unmarshal(body, &conflict))
	assert.Equal(t, "EVENT_CONFLICT", conflict.Code)
	require.Len(t, conflict.Events, 1)
	assert.Equal(t, "Gala", conflict.Events[0].Title)

	status, _ = call(t, app, http.MethodPost, "/api/calendar/blocks", owner.Token, dto.CreateBlockedDateRequest{
		Title: "Vacaciones", StartDate: start.AddDate(0, 1, 0), EndDate: start.AddDate(0, 1, 3), Type: "vacation",
	})
	assert.Equal(t, http.StatusCreated, status)
}

func TestRouter_ErroresGenericos(t *testing.T) {
	app := newRouterApp(t)

	status, body := call(t, app, http.MethodGet, "/no-existe", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, string(body), "ROUTE_NOT_FOUND")

	status, _ = call(t, app, http.MethodGet, "/api/dashboard/metrics", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: "sin-empresa@eventos.test", Password: "secreto1", Name: "X",
	})
	assert.Equal(t, http.StatusBadRequest, status, string(body))
}
