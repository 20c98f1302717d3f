package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
)

var _ repository.BlockedDateRepository = (*BlockedDateRepo)(nil)

// BlockedDateRepo bloqueos de agenda sobre PostgreSQL.
type BlockedDateRepo struct {
	q Querier
}

// NewBlockedDateRepository construye el adaptador.
func NewBlockedDateRepository(q Querier) *BlockedDateRepo {
	return &BlockedDateRepo{q: q}
}

const blockedDateColumns = `id, company_id, title, start_date, end_date, type, description, created_by, created_at, updated_at`

// Create persiste un bloqueo.
func (r *BlockedDateRepo) Create(ctx context.Context, b *entity.BlockedDate) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO blocked_dates (`+blockedDateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		b.ID, b.CompanyID, b.Title, b.StartDate, b.EndDate, b.Type, b.Description, b.CreatedBy,
		b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert blocked date: %w", err)
	}
	return nil
}

// Delete elimina un bloqueo de la empresa.
func (r *BlockedDateRepo) Delete(ctx context.Context, companyID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM blocked_dates WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete blocked date: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List bloqueos de la empresa por fecha de inicio.
func (r *BlockedDateRepo) List(ctx context.Context, companyID string) ([]*entity.BlockedDate, error) {
	return r.query(ctx, `SELECT `+blockedDateColumns+` FROM blocked_dates WHERE company_id = $1 ORDER BY start_date, id`,
		companyID)
}

// ListOverlapping bloqueos que se cruzan con [start, end].
func (r *BlockedDateRepo) ListOverlapping(ctx context.Context, companyID string, start, end time.Time) ([]*entity.BlockedDate, error) {
	return r.query(ctx, `
		SELECT `+blockedDateColumns+` FROM blocked_dates
		WHERE company_id = $1 AND start_date <= $3 AND end_date >= $2
		ORDER BY start_date, id`,
		companyID, start, end)
}

func (r *BlockedDateRepo) query(ctx context.Context, query string, args ...any) ([]*entity.BlockedDate, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list blocked dates: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.BlockedDate, 0)
	for rows.Next() {
		var b entity.BlockedDate
		if err := rows.Scan(&b.ID, &b.CompanyID, &b.Title, &b.StartDate, &b.EndDate, &b.Type, &b.Description,
			&b.CreatedBy, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan blocked date: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
