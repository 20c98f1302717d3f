package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
)

var _ repository.EventRepository = (*EventRepo)(nil)

// EventRepo eventos en memoria. Las listas se copian al entrar y al salir.
type EventRepo struct{ view }

// NewEventRepository construye el repo sobre el almacén.
func NewEventRepository(s *Store) *EventRepo { return &EventRepo{view{s: s}} }

func copyEvent(ev entity.Event) entity.Event {
	ev.Items = append([]entity.LineItem{}, ev.Items...)
	ev.Staff = append([]entity.StaffAssignment{}, ev.Staff...)
	ev.Expenses = append([]entity.Expense{}, ev.Expenses...)
	return ev
}

func (r *EventRepo) Create(_ context.Context, ev *entity.Event) error {
	defer r.write()()
	r.s.events[ev.ID] = copyEvent(*ev)
	return nil
}

func (r *EventRepo) GetByID(_ context.Context, companyID, id string) (*entity.Event, error) {
	defer r.read()()
	ev, ok := r.s.events[id]
	if !ok || ev.CompanyID != companyID {
		return nil, nil
	}
	out := copyEvent(ev)
	return &out, nil
}

func (r *EventRepo) Update(_ context.Context, ev *entity.Event) error {
	defer r.write()()
	cur, ok := r.s.events[ev.ID]
	if !ok || cur.CompanyID != ev.CompanyID {
		return domain.ErrNotFound
	}
	r.s.events[ev.ID] = copyEvent(*ev)
	return nil
}

func (r *EventRepo) Delete(_ context.Context, companyID, id string) error {
	defer r.write()()
	ev, ok := r.s.events[id]
	if !ok || ev.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.s.events, id)
	return nil
}

func (r *EventRepo) List(_ context.Context, companyID string, f repository.EventFilter) ([]*entity.Event, error) {
	defer r.read()()
	return r.filter(companyID, func(ev entity.Event) bool {
		if f.Status != "" && ev.Status != f.Status {
			return false
		}
		return inWindow(ev.StartDate, f.From, f.To)
	}), nil
}

func (r *EventRepo) ListUpcoming(_ context.Context, companyID string, from, to time.Time, statuses []string, limit int) ([]*entity.Event, error) {
	defer r.read()()
	out := r.filter(companyID, func(ev entity.Event) bool {
		return inWindow(ev.StartDate, &from, &to) && contains(statuses, ev.Status)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *EventRepo) ListOverlapping(_ context.Context, companyID string, start, end time.Time) ([]*entity.Event, error) {
	defer r.read()()
	return r.filter(companyID, func(ev entity.Event) bool { return ev.Overlaps(start, end) }), nil
}

// filter eventos de la empresa que cumplen keep, por fecha de inicio ascendente.
func (r *EventRepo) filter(companyID string, keep func(entity.Event) bool) []*entity.Event {
	out := make([]*entity.Event, 0)
	for _, ev := range r.s.events {
		if ev.CompanyID != companyID || !keep(ev) {
			continue
		}
		c := copyEvent(ev)
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
