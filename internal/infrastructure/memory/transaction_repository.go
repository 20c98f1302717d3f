package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo transacciones en memoria.
type TransactionRepo struct{ view }

// NewTransactionRepository construye el repo sobre el almacén.
func NewTransactionRepository(s *Store) *TransactionRepo { return &TransactionRepo{view{s: s}} }

func (r *TransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	defer r.write()()
	r.s.transactions[t.ID] = *t
	return nil
}

func (r *TransactionRepo) GetByID(_ context.Context, companyID, id string) (*entity.Transaction, error) {
	defer r.read()()
	t, ok := r.s.transactions[id]
	if !ok || t.CompanyID != companyID {
		return nil, nil
	}
	return &t, nil
}

func (r *TransactionRepo) Update(_ context.Context, t *entity.Transaction) error {
	defer r.write()()
	cur, ok := r.s.transactions[t.ID]
	if !ok || cur.CompanyID != t.CompanyID {
		return domain.ErrNotFound
	}
	next := *t
	next.Reference = cur.Reference
	next.CreatedBy = cur.CreatedBy
	next.CreatedAt = cur.CreatedAt
	r.s.transactions[t.ID] = next
	return nil
}

func (r *TransactionRepo) Delete(_ context.Context, companyID, id string) error {
	defer r.write()()
	t, ok := r.s.transactions[id]
	if !ok || t.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.s.transactions, id)
	return nil
}

func (r *TransactionRepo) DeleteByReference(_ context.Context, companyID, reference string) (int64, error) {
	defer r.write()()
	var n int64
	for id, t := range r.s.transactions {
		if t.CompanyID == companyID && t.Reference == reference {
			delete(r.s.transactions, id)
			n++
		}
	}
	return n, nil
}

func (r *TransactionRepo) List(_ context.Context, companyID string, f repository.TransactionFilter) ([]*entity.Transaction, error) {
	defer r.read()()
	out := make([]*entity.Transaction, 0)
	for _, t := range r.s.transactions {
		if t.CompanyID != companyID {
			continue
		}
		if (f.Type != "" && t.Type != f.Type) || (f.Category != "" && t.Category != f.Category) ||
			(f.Status != "" && t.Status != f.Status) || !inWindow(t.Date, f.From, f.To) {
			continue
		}
		out = append(out, &t)
	}
	sortNewestFirst(out)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *TransactionRepo) SumPaid(_ context.Context, companyID string, from, to *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	defer r.read()()
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range r.paid(companyID, from, to) {
		if t.Type == entity.TransactionTypeIncome {
			income = income.Add(t.Amount)
		} else {
			expense = expense.Add(t.Amount)
		}
	}
	return income, expense, nil
}

func (r *TransactionRepo) ListRecurring(_ context.Context, companyID string) ([]*entity.Transaction, error) {
	defer r.read()()
	out := make([]*entity.Transaction, 0)
	for _, t := range r.s.transactions {
		if t.CompanyID == companyID && t.IsRecurring && t.Status != entity.TransactionStatusCancelled {
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *TransactionRepo) SumByCategory(_ context.Context, companyID string, from, to *time.Time) ([]repository.CategoryTotal, error) {
	defer r.read()()
	idx := make(map[[2]string]int)
	out := make([]repository.CategoryTotal, 0)
	for _, t := range r.paid(companyID, from, to) {
		key := [2]string{t.Type, t.Category}
		i, ok := idx[key]
		if !ok {
			i = len(out)
			idx[key] = i
			out = append(out, repository.CategoryTotal{Type: t.Type, Category: t.Category, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(t.Amount)
		out[i].Count++
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

func (r *TransactionRepo) SumByPaymentMethod(_ context.Context, companyID string, from, to *time.Time) ([]repository.PaymentMethodTotal, error) {
	defer r.read()()
	idx := make(map[string]int)
	out := make([]repository.PaymentMethodTotal, 0)
	for _, t := range r.paid(companyID, from, to) {
		i, ok := idx[t.PaymentMethod]
		if !ok {
			i = len(out)
			idx[t.PaymentMethod] = i
			out = append(out, repository.PaymentMethodTotal{PaymentMethod: t.PaymentMethod, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(t.Amount)
		out[i].Count++
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].PaymentMethod < out[j].PaymentMethod
	})
	return out, nil
}

// paid transacciones pagadas en la ventana; el llamador tiene el lock.
func (r *TransactionRepo) paid(companyID string, from, to *time.Time) []entity.Transaction {
	out := make([]entity.Transaction, 0)
	for _, t := range r.s.transactions {
		if t.CompanyID == companyID && t.IsPaid() && inWindow(t.Date, from, to) {
			out = append(out, t)
		}
	}
	return out
}

func inWindow(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func sortNewestFirst(list []*entity.Transaction) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
}
