package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

// TaskRepo tareas en memoria.
type TaskRepo struct{ view }

// NewTaskRepository construye el repo sobre el almacén.
func NewTaskRepository(s *Store) *TaskRepo { return &TaskRepo{view{s: s}} }

func copyTask(t entity.Task) entity.Task {
	t.Tags = append([]string{}, t.Tags...)
	return t
}

func (r *TaskRepo) Create(_ context.Context, t *entity.Task) error {
	defer r.write()()
	r.s.tasks[t.ID] = copyTask(*t)
	return nil
}

func (r *TaskRepo) GetByID(_ context.Context, companyID, id string) (*entity.Task, error) {
	defer r.read()()
	t, ok := r.s.tasks[id]
	if !ok || t.CompanyID != companyID {
		return nil, nil
	}
	out := copyTask(t)
	return &out, nil
}

func (r *TaskRepo) Update(_ context.Context, t *entity.Task) error {
	defer r.write()()
	cur, ok := r.s.tasks[t.ID]
	if !ok || cur.CompanyID != t.CompanyID {
		return domain.ErrNotFound
	}
	r.s.tasks[t.ID] = copyTask(*t)
	return nil
}

func (r *TaskRepo) Delete(_ context.Context, companyID, id string) error {
	defer r.write()()
	t, ok := r.s.tasks[id]
	if !ok || t.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.s.tasks, id)
	return nil
}

func (r *TaskRepo) List(_ context.Context, companyID string, f repository.TaskFilter) ([]*entity.Task, error) {
	defer r.read()()
	out := make([]*entity.Task, 0)
	for _, t := range r.s.tasks {
		if t.CompanyID != companyID {
			continue
		}
		if (f.Status != "" && t.Status != f.Status) || (f.Priority != "" && t.Priority != f.Priority) ||
			(f.AssignedTo != "" && t.AssignedTo != f.AssignedTo) {
			continue
		}
		c := copyTask(t)
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
