// Package finance contiene el libro financiero: registro de transacciones, balance,
// proyección de recurrentes y desgloses por categoría y medio de pago.
package finance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/application/ports"
	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
	"github.com/jhoicas/eventos-erp/pkg/metrics"
)

const (
	listLimit          = 100
	defaultProjection  = 6
	maxProjection      = 36
	defaultReportRange = 30 * 24 * time.Hour
)

// Ledger es el dueño de los registros Transaction.
type Ledger struct {
	repo  repository.TransactionRepository
	cache ports.CacheInvalidator
	log   zerolog.Logger
}

// NewLedger construye el libro financiero. cache puede ser nil.
func NewLedger(repo repository.TransactionRepository, cache ports.CacheInvalidator, log zerolog.Logger) *Ledger {
	if cache == nil {
		cache = ports.NopCache{}
	}
	return &Ledger{repo: repo, cache: cache, log: log}
}

// invalidate descarta las métricas de la empresa. Un fallo de la caché no revierte la escritura.
func (l *Ledger) invalidate(ctx context.Context, companyID string) {
	if err := l.cache.Invalidate(ctx, companyID); err != nil {
		l.log.Warn().Err(err).Str("company_id", companyID).Msg("no se pudo invalidar la caché del dashboard")
	}
}

// Record valida y persiste una transacción creada por un usuario.
func (l *Ledger) Record(ctx context.Context, companyID, userID string, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	now := time.Now()
	t := &entity.Transaction{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		Type:          in.Type,
		Category:      in.Category,
		Description:   strings.TrimSpace(in.Description),
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		Status:        in.Status,
		IsRecurring:   in.IsRecurring,
		RecurringDay:  in.RecurringDay,
		Reference:     in.Reference,
		Notes:         in.Notes,
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.Date != nil {
		t.Date = *in.Date
	}
	if err := l.PostInTx(ctx, l.repo, t); err != nil {
		return nil, err
	}
	metrics.ObservePosting(t.Type)
	l.invalidate(ctx, companyID)
	return ToTransactionResponse(t, now), nil
}

// PostInTx aplica valores por defecto, valida y persiste la transacción con el repo indicado
// (pool o tx del llamador). Lo usan tanto el registro manual como los postings de eventos.
func (l *Ledger) PostInTx(ctx context.Context, repo repository.TransactionRepository, t *entity.Transaction) error {
	applyDefaults(t)
	if err := validate(t); err != nil {
		return err
	}
	if err := repo.Create(ctx, t); err != nil {
		return fmt.Errorf("registrar transacción: %w", err)
	}
	return nil
}

// Get obtiene una transacción de la empresa.
func (l *Ledger) Get(ctx context.Context, companyID, id string) (*dto.TransactionResponse, error) {
	t, err := l.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return ToTransactionResponse(t, time.Now()), nil
}

// Update aplica el parche y vuelve a validar.
func (l *Ledger) Update(ctx context.Context, companyID, id string, in dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	t, err := l.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if in.Type != nil {
		t.Type = *in.Type
	}
	if in.Category != nil {
		t.Category = *in.Category
	}
	if in.Description != nil {
		t.Description = strings.TrimSpace(*in.Description)
	}
	if in.Amount != nil {
		t.Amount = *in.Amount
	}
	if in.Date != nil {
		t.Date = *in.Date
	}
	if in.PaymentMethod != nil {
		t.PaymentMethod = *in.PaymentMethod
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.IsRecurring != nil {
		t.IsRecurring = *in.IsRecurring
	}
	if in.RecurringDay != nil {
		t.RecurringDay = *in.RecurringDay
	}
	if in.Notes != nil {
		t.Notes = *in.Notes
	}
	applyDefaults(t)
	if err := validate(t); err != nil {
		return nil, err
	}
	now := time.Now()
	t.UpdatedAt = now
	if err := l.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	l.invalidate(ctx, companyID)
	return ToTransactionResponse(t, now), nil
}

// Delete elimina una transacción de la empresa.
func (l *Ledger) Delete(ctx context.Context, companyID, id string) error {
	if err := l.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	l.invalidate(ctx, companyID)
	return nil
}

// List transacciones filtradas, fecha descendente, máximo 100.
func (l *Ledger) List(ctx context.Context, companyID string, q dto.TransactionListQuery) ([]dto.TransactionResponse, error) {
	f := repository.TransactionFilter{
		Type:     q.Type,
		Category: q.Category,
		Status:   q.Status,
		Limit:    listLimit,
	}
	if q.StartDate != nil {
		s := startOfDay(*q.StartDate)
		f.From = &s
	}
	if q.EndDate != nil {
		e := endOfDay(*q.EndDate)
		f.To = &e
	}
	list, err := l.repo.List(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *ToTransactionResponse(t, now))
	}
	return out, nil
}

// CalculateBalance suma las transacciones pagadas por tipo dentro de la ventana inclusiva.
// start se normaliza a 00:00:00 y end al último nanosegundo del día; nil = sin límite.
func (l *Ledger) CalculateBalance(ctx context.Context, companyID string, start, end *time.Time) (*dto.BalanceDTO, error) {
	var from, to *time.Time
	if start != nil {
		s := startOfDay(*start)
		from = &s
	}
	if end != nil {
		e := endOfDay(*end)
		to = &e
	}
	income, expense, err := l.repo.SumPaid(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("calcular balance: %w", err)
	}
	return &dto.BalanceDTO{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}, nil
}

// CalculateProjection proyecta el saldo de los próximos meses a partir del balance actual.
// Cada recurrente no cancelada aporta su monto completo en todos los meses (sin prorrateo).
func (l *Ledger) CalculateProjection(ctx context.Context, companyID string, months int) (*dto.ProjectionDTO, error) {
	if months <= 0 {
		months = defaultProjection
	}
	if months > maxProjection {
		months = maxProjection
	}
	now := time.Now()
	current, err := l.CalculateBalance(ctx, companyID, nil, &now)
	if err != nil {
		return nil, err
	}
	recurring, err := l.repo.ListRecurring(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("listar recurrentes: %w", err)
	}

	monthlyIncome, monthlyExpense := decimal.Zero, decimal.Zero
	for _, t := range recurring {
		if t.Status == entity.TransactionStatusCancelled {
			continue
		}
		switch t.Type {
		case entity.TransactionTypeIncome:
			monthlyIncome = monthlyIncome.Add(t.Amount)
		case entity.TransactionTypeExpense:
			monthlyExpense = monthlyExpense.Add(t.Amount)
		}
	}

	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	running := current.Balance
	out := make([]dto.ProjectionMonthDTO, 0, months)
	for i := 0; i < months; i++ {
		month := firstOfMonth.AddDate(0, i+1, 0)
		running = running.Add(monthlyIncome).Sub(monthlyExpense)
		out = append(out, dto.ProjectionMonthDTO{
			Month:    month.Format("2006-01"),
			Income:   monthlyIncome,
			Expenses: monthlyExpense,
			Balance:  running,
		})
	}
	return &dto.ProjectionDTO{CurrentBalance: current.Balance, Months: out}, nil
}

// Report balance y desgloses del período; por defecto los últimos 30 días.
func (l *Ledger) Report(ctx context.Context, companyID string, start, end *time.Time) (*dto.FinanceReportDTO, error) {
	now := time.Now()
	if end == nil {
		end = &now
	}
	if start == nil {
		s := end.Add(-defaultReportRange)
		start = &s
	}
	from, to := startOfDay(*start), endOfDay(*end)

	balance, err := l.CalculateBalance(ctx, companyID, start, end)
	if err != nil {
		return nil, err
	}
	byCategory, err := l.repo.SumByCategory(ctx, companyID, &from, &to)
	if err != nil {
		return nil, fmt.Errorf("desglose por categoría: %w", err)
	}
	byMethod, err := l.repo.SumByPaymentMethod(ctx, companyID, &from, &to)
	if err != nil {
		return nil, fmt.Errorf("desglose por medio de pago: %w", err)
	}

	report := &dto.FinanceReportDTO{
		StartDate:              from,
		EndDate:                to,
		Balance:                *balance,
		CategoryBreakdown:      make([]dto.CategoryBreakdownDTO, 0, len(byCategory)),
		PaymentMethodBreakdown: make([]dto.PaymentMethodBreakdownDTO, 0, len(byMethod)),
	}
	for _, c := range byCategory {
		report.CategoryBreakdown = append(report.CategoryBreakdown, dto.CategoryBreakdownDTO{
			Type: c.Type, Category: c.Category, Total: c.Total, Count: c.Count,
		})
	}
	for _, m := range byMethod {
		report.PaymentMethodBreakdown = append(report.PaymentMethodBreakdown, dto.PaymentMethodBreakdownDTO{
			PaymentMethod: m.PaymentMethod, Total: m.Total, Count: m.Count,
		})
	}
	return report, nil
}

// Recurring transacciones recurrentes no canceladas, más recientes primero.
func (l *Ledger) Recurring(ctx context.Context, companyID string) ([]dto.TransactionResponse, error) {
	list, err := l.repo.ListRecurring(ctx, companyID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *ToTransactionResponse(t, now))
	}
	return out, nil
}

func applyDefaults(t *entity.Transaction) {
	if t.Category == "" {
		t.Category = entity.TransactionCategoryOther
	}
	if t.PaymentMethod == "" {
		t.PaymentMethod = entity.PaymentMethodCash
	}
	if t.Status == "" {
		t.Status = entity.TransactionStatusPaid
	}
	if t.RecurringDay == 0 {
		t.RecurringDay = 1
	}
	if t.Date.IsZero() {
		t.Date = time.Now()
	}
}

func validate(t *entity.Transaction) error {
	if !entity.IsValidTransactionType(t.Type) {
		return domain.Invalid("type", "debe ser income o expense")
	}
	if !entity.IsValidTransactionCategory(t.Category) {
		return domain.Invalid("category", "categoría inválida")
	}
	if t.Description == "" {
		return domain.Invalid("description", "es requerida")
	}
	if !t.Amount.GreaterThan(decimal.Zero) {
		return domain.Invalid("amount", "debe ser mayor que 0")
	}
	if !entity.IsValidPaymentMethod(t.PaymentMethod) {
		return domain.Invalid("payment_method", "medio de pago inválido")
	}
	if !entity.IsValidTransactionStatus(t.Status) {
		return domain.Invalid("status", "estado inválido")
	}
	if t.RecurringDay < 1 || t.RecurringDay > 31 {
		return domain.Invalid("recurring_day", "debe estar entre 1 y 31")
	}
	return nil
}

// ToTransactionResponse convierte la entidad en DTO calculando la próxima fecha de vencimiento.
func ToTransactionResponse(t *entity.Transaction, now time.Time) *dto.TransactionResponse {
	resp := &dto.TransactionResponse{
		ID:            t.ID,
		Type:          t.Type,
		Category:      t.Category,
		Description:   t.Description,
		Amount:        t.Amount,
		Date:          t.Date,
		PaymentMethod: t.PaymentMethod,
		Status:        t.Status,
		IsRecurring:   t.IsRecurring,
		Reference:     t.Reference,
		Notes:         t.Notes,
		CreatedBy:     t.CreatedBy,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
	if t.IsRecurring {
		resp.RecurringDay = t.RecurringDay
		if due, ok := t.NextDueDate(now); ok {
			resp.NextDueDate = &due
		}
	}
	return resp
}

// Hoy: 00:00:00.000 – 23:59:59.999999999
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).Add(24*time.Hour - time.Nanosecond)
}
