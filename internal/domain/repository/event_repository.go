package repository

import (
	"context"
	"time"

	"github.com/jhoicas/eventos-erp/internal/domain/entity"
)

// EventFilter criterios de listado de eventos (orden por fecha de inicio ascendente).
type EventFilter struct {
	Status string
	From   *time.Time // startDate >= From
	To     *time.Time // startDate <= To
}

// EventRepository define el puerto de persistencia para Event (DIP).
// Los totales derivados no se persisten.
type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, companyID, id string) error
	List(ctx context.Context, companyID string, filter EventFilter) ([]*entity.Event, error)
	// ListUpcoming eventos con startDate en [from, to] y estado en statuses, ascendente.
	// limit <= 0 = sin límite.
	ListUpcoming(ctx context.Context, companyID string, from, to time.Time, statuses []string, limit int) ([]*entity.Event, error)
	// ListOverlapping eventos con startDate <= end y endDate >= start.
	ListOverlapping(ctx context.Context, companyID string, start, end time.Time) ([]*entity.Event, error)
}
