package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
)

var _ repository.EventRepository = (*EventRepo)(nil)

// EventRepo implementación del puerto EventRepository sobre PostgreSQL.
// Ítems, equipo y gastos se guardan como JSONB; los totales no se persisten.
type EventRepo struct {
	q Querier
}

// NewEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEventRepository(q Querier) *EventRepo {
	return &EventRepo{q: q}
}

const eventColumns = `id, company_id, title, description, start_date, end_date, location, status,
	items, staff, expenses, revenue, created_by, created_at, updated_at`

func scanEvent(s rowScanner) (*entity.Event, error) {
	var ev entity.Event
	var items, staff, expenses []byte
	if err := s.Scan(&ev.ID, &ev.CompanyID, &ev.Title, &ev.Description, &ev.StartDate, &ev.EndDate,
		&ev.Location, &ev.Status, &items, &staff, &expenses, &ev.Revenue, &ev.CreatedBy,
		&ev.CreatedAt, &ev.UpdatedAt); err != nil {
		return nil, err
	}
	if err := decodeEventLists(&ev, items, staff, expenses); err != nil {
		return nil, err
	}
	return &ev, nil
}

// Create persiste un evento.
func (r *EventRepo) Create(ctx context.Context, ev *entity.Event) error {
	items, staff, expenses, err := encodeEventLists(ev)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO events (`+eventColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		ev.ID, ev.CompanyID, ev.Title, ev.Description, ev.StartDate, ev.EndDate, ev.Location, ev.Status,
		items, staff, expenses, ev.Revenue, ev.CreatedBy, ev.CreatedAt, ev.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// GetByID obtiene un evento de la empresa.
func (r *EventRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Event, error) {
	if !validID(id) {
		return nil, nil
	}
	ev, err := scanEvent(r.q.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return ev, nil
}

// Update reemplaza el evento completo.
func (r *EventRepo) Update(ctx context.Context, ev *entity.Event) error {
	items, staff, expenses, err := encodeEventLists(ev)
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE events SET title = $3, description = $4, start_date = $5, end_date = $6, location = $7,
			status = $8, items = $9, staff = $10, expenses = $11, revenue = $12, updated_at = $13
		WHERE company_id = $1 AND id = $2`,
		ev.CompanyID, ev.ID, ev.Title, ev.Description, ev.StartDate, ev.EndDate, ev.Location, ev.Status,
		items, staff, expenses, ev.Revenue, ev.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un evento de la empresa.
func (r *EventRepo) Delete(ctx context.Context, companyID, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM events WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List eventos con filtros por estado y rango de inicio, ascendente por fecha de inicio.
func (r *EventRepo) List(ctx context.Context, companyID string, f repository.EventFilter) ([]*entity.Event, error) {
	w := newWhere(companyID)
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.From != nil {
		w.add("start_date >= ?", *f.From)
	}
	if f.To != nil {
		w.add("start_date <= ?", *f.To)
	}
	return r.query(ctx, `SELECT `+eventColumns+` FROM events`+w.sql()+` ORDER BY start_date, id`, w.args...)
}

// ListUpcoming eventos con inicio en [from, to] y estado en statuses.
func (r *EventRepo) ListUpcoming(ctx context.Context, companyID string, from, to time.Time, statuses []string, limit int) ([]*entity.Event, error) {
	w := newWhere(companyID)
	w.add("start_date >= ?", from)
	w.add("start_date <= ?", to)
	w.add("status = ANY(?)", statuses)
	query := `SELECT ` + eventColumns + ` FROM events` + w.sql() + ` ORDER BY start_date, id`
	if limit > 0 {
		query += ` LIMIT ` + w.next(limit)
	}
	return r.query(ctx, query, w.args...)
}

// ListOverlapping eventos que se cruzan con [start, end].
func (r *EventRepo) ListOverlapping(ctx context.Context, companyID string, start, end time.Time) ([]*entity.Event, error) {
	return r.query(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE company_id = $1 AND start_date <= $3 AND end_date >= $2
		ORDER BY start_date, id`,
		companyID, start, end)
}

func (r *EventRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Event, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Event, 0)
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		list = append(list, ev)
	}
	return list, rows.Err()
}
