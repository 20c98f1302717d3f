package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del puerto TransactionRepository sobre PostgreSQL.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, company_id, type, category, description, amount, date, payment_method, status,
	is_recurring, recurring_day, reference, notes, created_by, created_at, updated_at`

// paidWindow filtra por estado pagado y ventana de fechas opcional ($2, $3 pueden ser NULL).
const paidWindow = `company_id = $1 AND status = 'paid'
	AND ($2::timestamptz IS NULL OR date >= $2)
	AND ($3::timestamptz IS NULL OR date <= $3)`

func scanTransaction(s rowScanner) (*entity.Transaction, error) {
	var t entity.Transaction
	if err := s.Scan(&t.ID, &t.CompanyID, &t.Type, &t.Category, &t.Description, &t.Amount, &t.Date,
		&t.PaymentMethod, &t.Status, &t.IsRecurring, &t.RecurringDay, &t.Reference, &t.Notes,
		&t.CreatedBy, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste una transacción.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		t.ID, t.CompanyID, t.Type, t.Category, t.Description, t.Amount, t.Date, t.PaymentMethod, t.Status,
		t.IsRecurring, t.RecurringDay, t.Reference, t.Notes, t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción de la empresa.
func (r *TransactionRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Transaction, error) {
	if !validID(id) {
		return nil, nil
	}
	t, err := scanTransaction(r.q.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// Update reemplaza los campos editables.
func (r *TransactionRepo) Update(ctx context.Context, t *entity.Transaction) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE transactions SET type = $3, category = $4, description = $5, amount = $6, date = $7,
			payment_method = $8, status = $9, is_recurring = $10, recurring_day = $11, notes = $12, updated_at = $13
		WHERE company_id = $1 AND id = $2`,
		t.CompanyID, t.ID, t.Type, t.Category, t.Description, t.Amount, t.Date, t.PaymentMethod, t.Status,
		t.IsRecurring, t.RecurringDay, t.Notes, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una transacción de la empresa.
func (r *TransactionRepo) Delete(ctx context.Context, companyID, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByReference elimina los postings de un evento. Devuelve la cantidad eliminada.
func (r *TransactionRepo) DeleteByReference(ctx context.Context, companyID, reference string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE company_id = $1 AND reference = $2`, companyID, reference)
	if err != nil {
		return 0, fmt.Errorf("delete transactions by reference: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// List transacciones con filtros, más recientes primero.
func (r *TransactionRepo) List(ctx context.Context, companyID string, f repository.TransactionFilter) ([]*entity.Transaction, error) {
	w := newWhere(companyID)
	if f.Type != "" {
		w.add("type = ?", f.Type)
	}
	if f.Category != "" {
		w.add("category = ?", f.Category)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.From != nil {
		w.add("date >= ?", *f.From)
	}
	if f.To != nil {
		w.add("date <= ?", *f.To)
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions` + w.sql() + ` ORDER BY date DESC, created_at DESC`
	if f.Limit > 0 {
		query += ` LIMIT ` + w.next(f.Limit)
	}
	return r.query(ctx, query, w.args...)
}

// SumPaid suma ingresos y gastos pagados en la ventana.
func (r *TransactionRepo) SumPaid(ctx context.Context, companyID string, from, to *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var income, expense decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)
		FROM transactions WHERE `+paidWindow,
		companyID, from, to,
	).Scan(&income, &expense)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("sum paid transactions: %w", err)
	}
	return income, expense, nil
}

// ListRecurring recurrentes no canceladas, más recientes primero.
func (r *TransactionRepo) ListRecurring(ctx context.Context, companyID string) ([]*entity.Transaction, error) {
	return r.query(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE company_id = $1 AND is_recurring = TRUE AND status <> $2
		ORDER BY created_at DESC, id`,
		companyID, entity.TransactionStatusCancelled)
}

// SumByCategory totales pagados por (tipo, categoría), mayor total primero.
func (r *TransactionRepo) SumByCategory(ctx context.Context, companyID string, from, to *time.Time) ([]repository.CategoryTotal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT type, category, COALESCE(SUM(amount), 0), COUNT(*)
		FROM transactions WHERE `+paidWindow+`
		GROUP BY type, category
		ORDER BY SUM(amount) DESC, type, category`,
		companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("sum by category: %w", err)
	}
	defer rows.Close()
	out := make([]repository.CategoryTotal, 0)
	for rows.Next() {
		var c repository.CategoryTotal
		if err := rows.Scan(&c.Type, &c.Category, &c.Total, &c.Count); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SumByPaymentMethod totales pagados por medio de pago, mayor total primero.
func (r *TransactionRepo) SumByPaymentMethod(ctx context.Context, companyID string, from, to *time.Time) ([]repository.PaymentMethodTotal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT payment_method, COALESCE(SUM(amount), 0), COUNT(*)
		FROM transactions WHERE `+paidWindow+`
		GROUP BY payment_method
		ORDER BY SUM(amount) DESC, payment_method`,
		companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("sum by payment method: %w", err)
	}
	defer rows.Close()
	out := make([]repository.PaymentMethodTotal, 0)
	for rows.Next() {
		var p repository.PaymentMethodTotal
		if err := rows.Scan(&p.PaymentMethod, &p.Total, &p.Count); err != nil {
			return nil, fmt.Errorf("scan payment method total: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *TransactionRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Transaction, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
