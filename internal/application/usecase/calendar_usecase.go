package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/application/ports"
	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
)

// EventConflictError el período a bloquear se cruza con eventos existentes.
type EventConflictError struct {
	Events []*entity.Event
}

func (e *EventConflictError) Error() string {
	return fmt.Sprintf("existen %d eventos agendados en este período", len(e.Events))
}

// Unwrap clasifica la falla como domain.ErrConflict.
func (e *EventConflictError) Unwrap() error { return domain.ErrConflict }

// CalendarUseCase bloqueos de agenda y exportación mensual.
type CalendarUseCase struct {
	blockRepo   repository.BlockedDateRepository
	eventRepo   repository.EventRepository
	companyRepo repository.CompanyRepository
	pdf         ports.CalendarPDFGenerator
}

// NewCalendarUseCase construye el caso de uso. pdf puede ser nil si no se exporta.
func NewCalendarUseCase(
	blockRepo repository.BlockedDateRepository,
	eventRepo repository.EventRepository,
	companyRepo repository.CompanyRepository,
	pdf ports.CalendarPDFGenerator,
) *CalendarUseCase {
	return &CalendarUseCase{blockRepo: blockRepo, eventRepo: eventRepo, companyRepo: companyRepo, pdf: pdf}
}

// ListBlocks bloqueos de la empresa ordenados por fecha de inicio.
func (uc *CalendarUseCase) ListBlocks(ctx context.Context, companyID string) ([]dto.BlockedDateResponse, error) {
	list, err := uc.blockRepo.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BlockedDateResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *toBlockedDateResponse(b))
	}
	return out, nil
}

// CreateBlock bloquea un período. Si algún evento se cruza (start ≤ end del bloqueo y
// end ≥ start del bloqueo) devuelve *EventConflictError con los eventos.
func (uc *CalendarUseCase) CreateBlock(ctx context.Context, companyID, userID string, in dto.CreateBlockedDateRequest) (*dto.BlockedDateResponse, error) {
	now := time.Now()
	b := &entity.BlockedDate{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Title:       strings.TrimSpace(in.Title),
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Type:        in.Type,
		Description: in.Description,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if b.Type == "" {
		b.Type = entity.BlockTypeUnavailable
	}
	switch {
	case b.Title == "":
		return nil, domain.Invalid("title", "es requerido")
	case b.StartDate.IsZero():
		return nil, domain.Invalid("start_date", "es requerida")
	case b.EndDate.IsZero():
		return nil, domain.Invalid("end_date", "es requerida")
	case b.EndDate.Before(b.StartDate):
		return nil, domain.Invalid("end_date", "no puede ser anterior a start_date")
	case !entity.IsValidBlockType(b.Type):
		return nil, domain.Invalid("type", "tipo inválido")
	}

	conflicts, err := uc.eventRepo.ListOverlapping(ctx, companyID, b.StartDate, b.EndDate)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &EventConflictError{Events: conflicts}
	}
	if err := uc.blockRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	return toBlockedDateResponse(b), nil
}

// RemoveBlock elimina un bloqueo de la empresa.
func (uc *CalendarUseCase) RemoveBlock(ctx context.Context, companyID, id string) error {
	return uc.blockRepo.Delete(ctx, companyID, id)
}

// ExportMonth genera el PDF con los eventos y bloqueos del mes. month 1..12; 0 = mes actual.
func (uc *CalendarUseCase) ExportMonth(ctx context.Context, companyID string, year, month int) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("calendario: generador pdf no configurado")
	}
	now := time.Now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return nil, "", domain.Invalid("month", "debe estar entre 1 y 12")
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, 0).Add(-time.Nanosecond)

	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("calendario: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}
	events, err := uc.eventRepo.ListOverlapping(ctx, companyID, first, last)
	if err != nil {
		return nil, "", fmt.Errorf("calendario: eventos del mes: %w", err)
	}
	blocks, err := uc.blockRepo.ListOverlapping(ctx, companyID, first, last)
	if err != nil {
		return nil, "", fmt.Errorf("calendario: bloqueos del mes: %w", err)
	}

	b, err := uc.pdf.GenerateCalendarPDF(ctx, ports.CalendarMonth{
		Company: company,
		Month:   first,
		Events:  events,
		Blocks:  blocks,
	})
	if err != nil {
		return nil, "", fmt.Errorf("calendario: generación fallida: %w", err)
	}
	return b, fmt.Sprintf("calendario_%04d_%02d.pdf", year, month), nil
}

func toBlockedDateResponse(b *entity.BlockedDate) *dto.BlockedDateResponse {
	return &dto.BlockedDateResponse{
		ID:          b.ID,
		Title:       b.Title,
		StartDate:   b.StartDate,
		EndDate:     b.EndDate,
		Type:        b.Type,
		Description: b.Description,
		CreatedBy:   b.CreatedBy,
		CreatedAt:   b.CreatedAt,
	}
}
