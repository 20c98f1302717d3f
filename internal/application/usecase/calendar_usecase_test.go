package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/application/ports"
	"github.com/jhoicas/eventos-erp/internal/application/usecase"
	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/infrastructure/memory"
)

// fakeCalendarPDF guarda el último mes recibido.
type fakeCalendarPDF struct{ got ports.CalendarMonth }

func (f *fakeCalendarPDF) GenerateCalendarPDF(_ context.Context, data ports.CalendarMonth) ([]byte, error) {
	f.got = data
	return []byte("%PDF-1.4"), nil
}

type calendarFixture struct {
	uc     *usecase.CalendarUseCase
	events *memory.EventRepo
	pdf    *fakeCalendarPDF
}

func newCalendarFixture(t *testing.T) *calendarFixture {
	t.Helper()
	s := memory.NewStore()
	companies := memory.NewCompanyRepository(s)
	require.NoError(t, companies.Create(context.Background(), &entity.Company{
		ID: companyID, Name: "Eventos Sur", Currency: "BRL", Status: entity.CompanyStatusActive,
	}))
	pdf := &fakeCalendarPDF{}
	events := memory.NewEventRepository(s)
	return &calendarFixture{
		uc:     usecase.NewCalendarUseCase(memory.NewBlockedDateRepository(s), events, companies, pdf),
		events: events,
		pdf:    pdf,
	}
}

func (f *calendarFixture) addEvent(t *testing.T, title string, start, end time.Time) {
	t.Helper()
	require.NoError(t, f.events.Create(context.Background(), &entity.Event{
		ID: title, CompanyID: companyID, Title: title, Location: "x",
		StartDate: start, EndDate: end, Status: entity.EventStatusConfirmed,
	}))
}

func TestCreateBlock_ConflictoConEventos(t *testing.T) {
	f := newCalendarFixture(t)
	day := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	f.addEvent(t, "fiesta", day.Add(18*time.Hour), day.Add(23*time.Hour))

	_, err := f.uc.CreateBlock(context.Background(), companyID, userID, dto.CreateBlockedDateRequest{
		Title: "Mantenimiento", StartDate: day, EndDate: day.Add(24*time.Hour - time.Second),
	})
	var conflict *usecase.EventConflictError
	require.True(t, errors.As(err, &conflict))
	require.Len(t, conflict.Events, 1)
	assert.Equal(t, "fiesta", conflict.Events[0].Title)
	assert.ErrorIs(t, err, domain.ErrConflict)

	blocks, err := f.uc.ListBlocks(context.Background(), companyID)
	require.NoError(t, err)
	assert.Empty(t, blocks, "con conflicto no se crea el bloqueo")
}

func TestCreateBlock_SinConflicto(t *testing.T) {
	f := newCalendarFixture(t)
	day := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	f.addEvent(t, "fiesta", day, day.Add(5*time.Hour))

	b, err := f.uc.CreateBlock(context.Background(), companyID, userID, dto.CreateBlockedDateRequest{
		Title: "Feriado", StartDate: day.AddDate(0, 0, 1), EndDate: day.AddDate(0, 0, 2), Type: entity.BlockTypeHoliday,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BlockTypeHoliday, b.Type)

	require.NoError(t, f.uc.RemoveBlock(context.Background(), companyID, b.ID))
	assert.ErrorIs(t, f.uc.RemoveBlock(context.Background(), companyID, b.ID), domain.ErrNotFound)
}

func TestCreateBlock_Validaciones(t *testing.T) {
	f := newCalendarFixture(t)
	day := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	_, err := f.uc.CreateBlock(context.Background(), companyID, userID, dto.CreateBlockedDateRequest{
		Title: "Al revés", StartDate: day, EndDate: day.Add(-time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.CreateBlock(context.Background(), companyID, userID, dto.CreateBlockedDateRequest{
		Title: "Tipo raro", StartDate: day, EndDate: day, Type: "siesta",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExportMonth(t *testing.T) {
	f := newCalendarFixture(t)
	f.addEvent(t, "julio", time.Date(2026, 7, 3, 10, 0, 0, 0, time.Local), time.Date(2026, 7, 3, 12, 0, 0, 0, time.Local))
	f.addEvent(t, "agosto", time.Date(2026, 8, 3, 10, 0, 0, 0, time.Local), time.Date(2026, 8, 3, 12, 0, 0, 0, time.Local))

	b, name, err := f.uc.ExportMonth(context.Background(), companyID, 2026, 7)
	require.NoError(t, err)
	assert.NotEmpty(t, b)
	assert.Equal(t, "calendario_2026_07.pdf", name)
	require.Len(t, f.pdf.got.Events, 1)
	assert.Equal(t, "julio", f.pdf.got.Events[0].Title)
	assert.Equal(t, "Eventos Sur", f.pdf.got.Company.Name)

	_, _, err = f.uc.ExportMonth(context.Background(), companyID, 2026, 13)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
