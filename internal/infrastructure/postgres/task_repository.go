package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

// TaskRepo implementación del puerto TaskRepository sobre PostgreSQL. Tags es TEXT[].
type TaskRepo struct {
	q Querier
}

// NewTaskRepository construye el adaptador de persistencia para tareas.
func NewTaskRepository(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

const taskColumns = `id, company_id, title, description, status, priority, category, tags, assigned_to,
	created_by, due_date, completed_at, created_at, updated_at`

func scanTask(s rowScanner) (*entity.Task, error) {
	var t entity.Task
	if err := s.Scan(&t.ID, &t.CompanyID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.Category,
		&t.Tags, &t.AssignedTo, &t.CreatedBy, &t.DueDate, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return &t, nil
}

// Create persiste una tarea.
func (r *TaskRepo) Create(ctx context.Context, t *entity.Task) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		t.ID, t.CompanyID, t.Title, t.Description, t.Status, t.Priority, t.Category, t.Tags, t.AssignedTo,
		t.CreatedBy, t.DueDate, t.CompletedAt, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// GetByID obtiene una tarea de la empresa.
func (r *TaskRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Task, error) {
	if !validID(id) {
		return nil, nil
	}
	t, err := scanTask(r.q.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// Update reemplaza la tarea.
func (r *TaskRepo) Update(ctx context.Context, t *entity.Task) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE tasks SET title = $3, description = $4, status = $5, priority = $6, category = $7, tags = $8,
			assigned_to = $9, due_date = $10, completed_at = $11, updated_at = $12
		WHERE company_id = $1 AND id = $2`,
		t.CompanyID, t.ID, t.Title, t.Description, t.Status, t.Priority, t.Category, t.Tags,
		t.AssignedTo, t.DueDate, t.CompletedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una tarea de la empresa.
func (r *TaskRepo) Delete(ctx context.Context, companyID, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM tasks WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List tareas con filtros, más recientes primero.
func (r *TaskRepo) List(ctx context.Context, companyID string, f repository.TaskFilter) ([]*entity.Task, error) {
	w := newWhere(companyID)
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.Priority != "" {
		w.add("priority = ?", f.Priority)
	}
	if f.AssignedTo != "" {
		w.add("assigned_to = ?", f.AssignedTo)
	}
	rows, err := r.q.Query(ctx, `SELECT `+taskColumns+` FROM tasks`+w.sql()+` ORDER BY created_at DESC, id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
