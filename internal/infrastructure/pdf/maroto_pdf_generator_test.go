package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/application/ports"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
)

func TestMoney(t *testing.T) {
	cases := map[string]string{
		"25000.5":  "BRL 25.000,50",
		"0":        "BRL 0,00",
		"999.999":  "BRL 1.000,00",
		"-1234567": "BRL -1.234.567,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, money("BRL", decimal.RequireFromString(in)), in)
	}
	assert.Equal(t, "12,30", money("", decimal.RequireFromString("12.3")))
}

func TestFormatThousands(t *testing.T) {
	assert.Equal(t, "999", formatThousands("999"))
	assert.Equal(t, "1.000", formatThousands("1000"))
	assert.Equal(t, "1.000.000", formatThousands("1000000"))
}

func TestGeneratePDFs(t *testing.T) {
	g := NewMarotoPDFGenerator()
	company := &entity.Company{ID: "c1", Name: "Eventos SA", Currency: "BRL"}
	start := time.Date(2026, 7, 4, 19, 0, 0, 0, time.UTC)

	cal, err := g.GenerateCalendarPDF(context.Background(), ports.CalendarMonth{
		Company: company,
		Month:   time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		Events: []*entity.Event{{
			ID: "e1", Title: "Boda", Location: "Quinta", Status: entity.EventStatusConfirmed,
			StartDate: start, EndDate: start.Add(5 * time.Hour),
		}},
		Blocks: []*entity.BlockedDate{{
			ID: "b1", Title: "Vacaciones", Type: entity.BlockTypeVacation,
			StartDate: start.AddDate(0, 0, 10), EndDate: start.AddDate(0, 0, 14),
		}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(cal, []byte("%PDF")), "debe ser un PDF")

	report, err := g.GenerateStockReportPDF(context.Background(), company, &dto.StockReportDTO{
		TotalProducts: 1,
		TotalValue:    decimal.NewFromInt(500),
		GeneratedAt:   time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(report, []byte("%PDF")))

	_, err = g.GenerateCalendarPDF(context.Background(), ports.CalendarMonth{})
	assert.Error(t, err, "sin empresa no se genera")
}
