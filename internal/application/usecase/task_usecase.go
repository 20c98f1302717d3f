package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
)

// TaskUseCase tareas internas de la empresa.
type TaskUseCase struct {
	repo repository.TaskRepository
}

// NewTaskUseCase construye el caso de uso.
func NewTaskUseCase(repo repository.TaskRepository) *TaskUseCase {
	return &TaskUseCase{repo: repo}
}

// Create crea una tarea. Sin responsable explícito se asigna al creador.
func (uc *TaskUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	now := time.Now()
	t := &entity.Task{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Status:      entity.TaskStatusPending,
		Priority:    in.Priority,
		Category:    in.Category,
		Tags:        in.Tags,
		AssignedTo:  in.AssignedTo,
		CreatedBy:   userID,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if t.Priority == "" {
		t.Priority = entity.TaskPriorityMedium
	}
	if t.Category == "" {
		t.Category = entity.TaskCategoryGeneral
	}
	if t.AssignedTo == "" {
		t.AssignedTo = userID
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if in.Status != "" {
		if !entity.IsValidTaskStatus(in.Status) {
			return nil, domain.Invalid("status", "estado inválido")
		}
		t.SetStatus(in.Status, now)
	}
	if err := validateTask(t); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return toTaskResponse(t, now), nil
}

// Update aplica el parche. completedAt se fija solo la primera vez que entra en completed.
func (uc *TaskUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	t, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	if in.Title != nil {
		t.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.Category != nil {
		t.Category = *in.Category
	}
	if in.Tags != nil {
		t.Tags = in.Tags
	}
	if in.AssignedTo != nil {
		t.AssignedTo = *in.AssignedTo
	}
	if in.DueDate != nil {
		t.DueDate = in.DueDate
	}
	if in.Status != nil {
		if !entity.IsValidTaskStatus(*in.Status) {
			return nil, domain.Invalid("status", "estado inválido")
		}
		t.SetStatus(*in.Status, now)
	}
	if err := validateTask(t); err != nil {
		return nil, err
	}
	t.UpdatedAt = now
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return toTaskResponse(t, now), nil
}

// Complete atajo para pasar la tarea a completed.
func (uc *TaskUseCase) Complete(ctx context.Context, companyID, id string) (*dto.TaskResponse, error) {
	status := entity.TaskStatusCompleted
	return uc.Update(ctx, companyID, id, dto.UpdateTaskRequest{Status: &status})
}

// Delete elimina una tarea de la empresa.
func (uc *TaskUseCase) Delete(ctx context.Context, companyID, id string) error {
	return uc.repo.Delete(ctx, companyID, id)
}

// List tareas con filtros por estado, prioridad y responsable.
func (uc *TaskUseCase) List(ctx context.Context, companyID string, filter repository.TaskFilter) ([]dto.TaskResponse, error) {
	if filter.Status != "" && !entity.IsValidTaskStatus(filter.Status) {
		return nil, domain.Invalid("status", "estado inválido")
	}
	if filter.Priority != "" && !entity.IsValidTaskPriority(filter.Priority) {
		return nil, domain.Invalid("priority", "prioridad inválida")
	}
	list, err := uc.repo.List(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.TaskResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *toTaskResponse(t, now))
	}
	return out, nil
}

func validateTask(t *entity.Task) error {
	if t.Title == "" {
		return domain.Invalid("title", "es requerido")
	}
	if !entity.IsValidTaskPriority(t.Priority) {
		return domain.Invalid("priority", "prioridad inválida")
	}
	if !entity.IsValidTaskCategory(t.Category) {
		return domain.Invalid("category", "categoría inválida")
	}
	return nil
}

func toTaskResponse(t *entity.Task, now time.Time) *dto.TaskResponse {
	return &dto.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		Category:    t.Category,
		Tags:        t.Tags,
		AssignedTo:  t.AssignedTo,
		CreatedBy:   t.CreatedBy,
		DueDate:     t.DueDate,
		CompletedAt: t.CompletedAt,
		IsOverdue:   t.IsOverdue(now),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
