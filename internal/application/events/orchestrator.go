// Package events orquesta el ciclo de vida de los eventos: persiste el registro y dispara
// los efectos en el libro de stock y en el libro financiero según las transiciones de estado.
package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/application/finance"
	"github.com/jhoicas/eventos-erp/internal/application/inventory"
	"github.com/jhoicas/eventos-erp/internal/application/ports"
	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
	"github.com/jhoicas/eventos-erp/pkg/metrics"
)

// Efectos observables de una transición (etiquetas de métricas y logs).
const (
	effectDeduct = "deduct"
	effectReturn = "return"
	effectPost   = "post"
	effectPurge  = "purge"
)

// Options comportamiento configurable del orquestador.
type Options struct {
	// ReturnStockOnDelete devuelve al stock las líneas de un evento confirmado al eliminarlo.
	ReturnStockOnDelete bool
}

// Orchestrator es el dueño de los registros Event.
type Orchestrator struct {
	txRunner    TxRunner
	eventRepo   repository.EventRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	stock       *inventory.StockLedger
	ledger      *finance.Ledger
	cache       ports.CacheInvalidator
	opts        Options
	log         zerolog.Logger
}

// NewOrchestrator construye el orquestador. cache puede ser nil.
func NewOrchestrator(
	txRunner TxRunner,
	eventRepo repository.EventRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	stock *inventory.StockLedger,
	ledger *finance.Ledger,
	cache ports.CacheInvalidator,
	opts Options,
	log zerolog.Logger,
) *Orchestrator {
	if cache == nil {
		cache = ports.NopCache{}
	}
	return &Orchestrator{
		txRunner:    txRunner,
		eventRepo:   eventRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		stock:       stock,
		ledger:      ledger,
		cache:       cache,
		opts:        opts,
		log:         log.With().Str("component", "event_orchestrator").Logger(),
	}
}

// Create valida y persiste el evento. Siempre genera los postings financieros; si nace
// confirmado también descuenta stock.
func (o *Orchestrator) Create(ctx context.Context, companyID, userID string, in dto.CreateEventRequest) (*dto.EventResponse, error) {
	now := time.Now()
	ev := &entity.Event{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Location:    strings.TrimSpace(in.Location),
		Status:      in.Status,
		Items:       toLineItems(in.Items),
		Staff:       toStaff(in.Staff),
		Expenses:    toExpenses(in.Expenses),
		Revenue:     in.Revenue,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if ev.Status == "" {
		ev.Status = entity.EventStatusPlanned
	}
	if err := validate(ev); err != nil {
		return nil, err
	}

	var skipped []string
	effects := make([]string, 0, 2)
	err := o.txRunner.RunEvents(ctx, func(
		eventRepo repository.EventRepository,
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
		movRepo repository.StockMovementRepository,
	) error {
		if err := eventRepo.Create(ctx, ev); err != nil {
			return fmt.Errorf("crear evento: %w", err)
		}
		if ev.Status == entity.EventStatusConfirmed {
			res, err := o.stock.DeductInTx(ctx, productRepo, movRepo, companyID, userID, ev.ID, ev.Items)
			if err != nil {
				return err
			}
			skipped = res.Skipped
			effects = append(effects, effectDeduct)
		}
		if err := o.post(ctx, txRepo, ev, userID, now); err != nil {
			return err
		}
		effects = append(effects, effectPost)
		return nil
	})
	if err != nil {
		return nil, err
	}
	o.afterCommit(ctx, ev, "create", effects)
	resp := ToEventResponse(ev)
	resp.SkippedItems = skipped
	return resp, nil
}

// Update aplica el parche y evalúa la transición prior.status → new.status:
// entrar en confirmed descuenta stock; confirmed → cancelled lo devuelve.
// Ambos efectos usan las líneas ya parcheadas.
func (o *Orchestrator) Update(ctx context.Context, companyID, userID, id string, in dto.UpdateEventRequest) (*dto.EventResponse, error) {
	var (
		ev      *entity.Event
		skipped []string
		effects []string
	)
	err := o.txRunner.RunEvents(ctx, func(
		eventRepo repository.EventRepository,
		productRepo repository.ProductRepository,
		_ repository.TransactionRepository,
		movRepo repository.StockMovementRepository,
	) error {
		prior, err := eventRepo.GetByID(ctx, companyID, id)
		if err != nil {
			return err
		}
		if prior == nil {
			return domain.ErrNotFound
		}
		ev = applyPatch(prior, in)
		if err := validate(ev); err != nil {
			return err
		}
		ev.UpdatedAt = time.Now()
		if err := eventRepo.Update(ctx, ev); err != nil {
			return fmt.Errorf("actualizar evento: %w", err)
		}

		switch {
		case ev.Status == entity.EventStatusConfirmed && prior.Status != entity.EventStatusConfirmed:
			res, err := o.stock.DeductInTx(ctx, productRepo, movRepo, companyID, userID, ev.ID, ev.Items)
			if err != nil {
				return err
			}
			skipped = res.Skipped
			effects = append(effects, effectDeduct)
		case prior.Status == entity.EventStatusConfirmed && ev.Status == entity.EventStatusCancelled:
			res, err := o.stock.ReturnInTx(ctx, productRepo, movRepo, companyID, userID, ev.ID, ev.Items)
			if err != nil {
				return err
			}
			skipped = res.Skipped
			effects = append(effects, effectReturn)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	o.afterCommit(ctx, ev, "update", effects)
	resp := ToEventResponse(ev)
	resp.SkippedItems = skipped
	return resp, nil
}

// Delete elimina el evento y todas las transacciones que lo referencian.
// El stock descontado no se devuelve salvo que Options.ReturnStockOnDelete esté activo.
func (o *Orchestrator) Delete(ctx context.Context, companyID, userID, id string) error {
	var (
		ev      *entity.Event
		effects []string
		purged  int64
	)
	err := o.txRunner.RunEvents(ctx, func(
		eventRepo repository.EventRepository,
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
		movRepo repository.StockMovementRepository,
	) error {
		var err error
		ev, err = eventRepo.GetByID(ctx, companyID, id)
		if err != nil {
			return err
		}
		if ev == nil {
			return domain.ErrNotFound
		}
		purged, err = txRepo.DeleteByReference(ctx, companyID, ev.ID)
		if err != nil {
			return fmt.Errorf("eliminar transacciones del evento: %w", err)
		}
		effects = append(effects, effectPurge)
		if o.opts.ReturnStockOnDelete && ev.Status == entity.EventStatusConfirmed {
			if _, err := o.stock.ReturnInTx(ctx, productRepo, movRepo, companyID, userID, ev.ID, ev.Items); err != nil {
				return err
			}
			effects = append(effects, effectReturn)
		}
		return eventRepo.Delete(ctx, companyID, ev.ID)
	})
	if err != nil {
		return err
	}
	o.log.Debug().Str("event_id", ev.ID).Int64("transactions", purged).Msg("transacciones del evento eliminadas")
	o.afterCommit(ctx, ev, "delete", effects)
	return nil
}

// Get obtiene un evento de la empresa.
func (o *Orchestrator) Get(ctx context.Context, companyID, id string) (*dto.EventResponse, error) {
	ev, err := o.eventRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, domain.ErrNotFound
	}
	return ToEventResponse(ev), nil
}

// List eventos de la empresa ordenados por fecha de inicio ascendente.
func (o *Orchestrator) List(ctx context.Context, companyID string, filter repository.EventFilter) ([]dto.EventResponse, error) {
	if filter.Status != "" && !entity.IsValidEventStatus(filter.Status) {
		return nil, domain.Invalid("status", "estado inválido")
	}
	list, err := o.eventRepo.List(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EventResponse, 0, len(list))
	for _, ev := range list {
		out = append(out, *ToEventResponse(ev))
	}
	return out, nil
}

// Report totales de todos los eventos de la empresa.
func (o *Orchestrator) Report(ctx context.Context, companyID string) (*dto.EventReportDTO, error) {
	list, err := o.eventRepo.List(ctx, companyID, repository.EventFilter{})
	if err != nil {
		return nil, err
	}
	now := time.Now()
	report := &dto.EventReportDTO{
		TotalEvents:    len(list),
		TotalRevenue:   decimal.Zero,
		TotalCost:      decimal.Zero,
		TotalProfit:    decimal.Zero,
		EventsByStatus: map[string]int{},
	}
	for _, ev := range list {
		report.TotalRevenue = report.TotalRevenue.Add(ev.Revenue)
		report.TotalCost = report.TotalCost.Add(ev.TotalCost())
		report.TotalProfit = report.TotalProfit.Add(ev.Profit())
		report.EventsByStatus[ev.Status]++
		if ev.StartDate.After(now) && ev.Status != entity.EventStatusCancelled {
			report.UpcomingEvents++
		}
	}
	report.AverageProfitMargin = "0.00"
	if report.TotalRevenue.GreaterThan(decimal.Zero) {
		report.AverageProfitMargin = report.TotalProfit.
			Div(report.TotalRevenue).
			Mul(decimal.NewFromInt(100)).
			StringFixed(2)
	}
	return report, nil
}

// FormData productos activos y usuarios activos para armar el formulario de eventos.
func (o *Orchestrator) FormData(ctx context.Context, companyID string) (*dto.EventFormDataDTO, error) {
	products, err := o.productRepo.List(ctx, companyID, repository.ProductFilter{SortBy: "name"})
	if err != nil {
		return nil, err
	}
	users, err := o.userRepo.ListByCompany(ctx, companyID, true)
	if err != nil {
		return nil, err
	}
	out := &dto.EventFormDataDTO{
		Products: make([]dto.ProductSummary, 0, len(products)),
		Staff:    make([]dto.StaffOptionDTO, 0, len(users)),
	}
	for _, p := range products {
		out.Products = append(out.Products, dto.ProductSummary{
			ID: p.ID, SKU: p.SKU, Name: p.Name, Cost: p.Cost, Price: p.Price, Quantity: p.Quantity,
		})
	}
	for _, u := range users {
		out.Staff = append(out.Staff, dto.StaffOptionDTO{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	return out, nil
}

// post registra en el libro financiero un gasto por cada gasto del evento y el ingreso
// si revenue > 0. Los gastos con monto 0 no generan transacción.
func (o *Orchestrator) post(ctx context.Context, txRepo repository.TransactionRepository, ev *entity.Event, userID string, now time.Time) error {
	for _, x := range ev.Expenses {
		if !x.Amount.GreaterThan(decimal.Zero) {
			continue
		}
		t := &entity.Transaction{
			ID:          uuid.New().String(),
			CompanyID:   ev.CompanyID,
			Type:        entity.TransactionTypeExpense,
			Category:    entity.TransactionCategoryOther,
			Description: fmt.Sprintf("%s - Evento: %s", x.Description, ev.Title),
			Amount:      x.Amount,
			Date:        now,
			Status:      entity.TransactionStatusPaid,
			Reference:   ev.ID,
			CreatedBy:   userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := o.ledger.PostInTx(ctx, txRepo, t); err != nil {
			return err
		}
		metrics.ObservePosting(t.Type)
	}
	if ev.Revenue.GreaterThan(decimal.Zero) {
		t := &entity.Transaction{
			ID:          uuid.New().String(),
			CompanyID:   ev.CompanyID,
			Type:        entity.TransactionTypeIncome,
			Category:    entity.TransactionCategorySales,
			Description: "Ingreso del evento: " + ev.Title,
			Amount:      ev.Revenue,
			Date:        ev.StartDate,
			Status:      entity.TransactionStatusPaid,
			Reference:   ev.ID,
			CreatedBy:   userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := o.ledger.PostInTx(ctx, txRepo, t); err != nil {
			return err
		}
		metrics.ObservePosting(t.Type)
	}
	return nil
}

func (o *Orchestrator) afterCommit(ctx context.Context, ev *entity.Event, op string, effects []string) {
	for _, e := range effects {
		metrics.ObserveEventTransition(e)
	}
	if err := o.cache.Invalidate(ctx, ev.CompanyID); err != nil {
		o.log.Warn().Err(err).Str("company_id", ev.CompanyID).Msg("no se pudo invalidar la caché del dashboard")
	}
	o.log.Info().
		Str("company_id", ev.CompanyID).
		Str("event_id", ev.ID).
		Str("op", op).
		Str("status", ev.Status).
		Strs("effects", effects).
		Msg("evento")
}

func applyPatch(prior *entity.Event, in dto.UpdateEventRequest) *entity.Event {
	ev := *prior
	if in.Title != nil {
		ev.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		ev.Description = *in.Description
	}
	if in.StartDate != nil {
		ev.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		ev.EndDate = *in.EndDate
	}
	if in.Location != nil {
		ev.Location = strings.TrimSpace(*in.Location)
	}
	if in.Status != nil {
		ev.Status = *in.Status
	}
	if in.Items != nil {
		ev.Items = toLineItems(in.Items)
	}
	if in.Staff != nil {
		ev.Staff = toStaff(in.Staff)
	}
	if in.Expenses != nil {
		ev.Expenses = toExpenses(in.Expenses)
	}
	if in.Revenue != nil {
		ev.Revenue = *in.Revenue
	}
	return &ev
}

func validate(ev *entity.Event) error {
	if ev.Title == "" {
		return domain.Invalid("title", "es requerido")
	}
	if ev.Location == "" {
		return domain.Invalid("location", "es requerida")
	}
	if ev.StartDate.IsZero() {
		return domain.Invalid("start_date", "es requerida")
	}
	if ev.EndDate.IsZero() {
		return domain.Invalid("end_date", "es requerida")
	}
	if ev.EndDate.Before(ev.StartDate) {
		return domain.Invalid("end_date", "no puede ser anterior a start_date")
	}
	if !entity.IsValidEventStatus(ev.Status) {
		return domain.Invalid("status", "estado inválido")
	}
	if ev.Revenue.IsNegative() {
		return domain.Invalid("revenue", "no puede ser negativo")
	}
	for i, it := range ev.Items {
		if it.ProductID == "" {
			return domain.Invalid(fmt.Sprintf("items[%d].product_id", i), "es requerido")
		}
		if it.Quantity < 1 {
			return domain.Invalid(fmt.Sprintf("items[%d].quantity", i), "debe ser al menos 1")
		}
		if it.UnitCost.IsNegative() {
			return domain.Invalid(fmt.Sprintf("items[%d].unit_cost", i), "no puede ser negativo")
		}
	}
	for i, s := range ev.Staff {
		if s.EmployeeID == "" {
			return domain.Invalid(fmt.Sprintf("staff[%d].employee_id", i), "es requerido")
		}
		if s.Payment.IsNegative() {
			return domain.Invalid(fmt.Sprintf("staff[%d].payment", i), "no puede ser negativo")
		}
	}
	for i, x := range ev.Expenses {
		if strings.TrimSpace(x.Description) == "" {
			return domain.Invalid(fmt.Sprintf("expenses[%d].description", i), "es requerida")
		}
		if x.Amount.IsNegative() {
			return domain.Invalid(fmt.Sprintf("expenses[%d].amount", i), "no puede ser negativo")
		}
		if !entity.IsValidExpenseCategory(x.Category) {
			return domain.Invalid(fmt.Sprintf("expenses[%d].category", i), "categoría inválida")
		}
	}
	return nil
}
