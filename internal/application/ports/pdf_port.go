package ports

import (
	"context"
	"time"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
)

// CalendarMonth datos de un mes de agenda listos para renderizar.
type CalendarMonth struct {
	Company *entity.Company
	Month   time.Time // primer día del mes
	Events  []*entity.Event
	Blocks  []*entity.BlockedDate
}

// CalendarPDFGenerator renderiza la agenda mensual en PDF.
type CalendarPDFGenerator interface {
	GenerateCalendarPDF(ctx context.Context, data CalendarMonth) ([]byte, error)
}

// StockReportPDFGenerator renderiza el reporte de inventario en PDF.
type StockReportPDFGenerator interface {
	GenerateStockReportPDF(ctx context.Context, company *entity.Company, report *dto.StockReportDTO) ([]byte, error)
}
