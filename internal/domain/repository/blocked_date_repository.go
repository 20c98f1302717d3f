package repository

import (
	"context"
	"time"

	"github.com/jhoicas/eventos-erp/internal/domain/entity"
)

// BlockedDateRepository define el puerto de persistencia para BlockedDate (DIP).
type BlockedDateRepository interface {
	Create(ctx context.Context, block *entity.BlockedDate) error
	Delete(ctx context.Context, companyID, id string) error
	List(ctx context.Context, companyID string) ([]*entity.BlockedDate, error)
	ListOverlapping(ctx context.Context, companyID string, start, end time.Time) ([]*entity.BlockedDate, error)
}
