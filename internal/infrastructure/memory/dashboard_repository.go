package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo conteos de solo lectura sobre el almacén en memoria.
type DashboardRepo struct{ view }

// NewDashboardRepository construye el repo sobre el almacén.
func NewDashboardRepository(s *Store) *DashboardRepo { return &DashboardRepo{view{s: s}} }

func (r *DashboardRepo) CountEvents(_ context.Context, companyID string, since *time.Time) (int, error) {
	defer r.read()()
	n := 0
	for _, ev := range r.s.events {
		if ev.CompanyID == companyID && (since == nil || !ev.CreatedAt.Before(*since)) {
			n++
		}
	}
	return n, nil
}

func (r *DashboardRepo) CountUpcomingEvents(_ context.Context, companyID string, from time.Time, statuses []string) (int, error) {
	defer r.read()()
	n := 0
	for _, ev := range r.s.events {
		if ev.CompanyID == companyID && !ev.StartDate.Before(from) && contains(statuses, ev.Status) {
			n++
		}
	}
	return n, nil
}

func (r *DashboardRepo) CountLowStock(_ context.Context, companyID string) (int, error) {
	defer r.read()()
	n := 0
	for _, p := range r.s.products {
		if p.CompanyID == companyID && p.IsActive && p.IsLowStock() {
			n++
		}
	}
	return n, nil
}

func (r *DashboardRepo) MonthlyPaidIncome(_ context.Context, companyID string, from, to time.Time) ([]repository.MonthlyAmount, error) {
	defer r.read()()
	byMonth := make(map[[2]int]*repository.MonthlyAmount)
	for _, t := range r.s.transactions {
		if t.CompanyID != companyID || !t.IsPaid() || t.Type != entity.TransactionTypeIncome {
			continue
		}
		if t.Date.Before(from) || t.Date.After(to) {
			continue
		}
		key := [2]int{t.Date.Year(), int(t.Date.Month())}
		m, ok := byMonth[key]
		if !ok {
			m = &repository.MonthlyAmount{Year: key[0], Month: key[1], Amount: decimal.Zero}
			byMonth[key] = m
		}
		m.Amount = m.Amount.Add(t.Amount)
		m.Transactions++
	}
	out := make([]repository.MonthlyAmount, 0, len(byMonth))
	for _, m := range byMonth {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}
