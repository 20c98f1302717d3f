// Package pdf genera los documentos PDF de la aplicación con Maroto v2:
// la agenda mensual (eventos + períodos bloqueados) y el reporte de inventario.
//
// Layout de la página A4 (ambos documentos):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + documento   │  Título + período          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SECCIÓN: título + tabla (cabecera azul, una fila por ítem) │
//	│  SECCIÓN: ...                                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: fecha de generación                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/application/ports"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorAlert   = &props.Color{Red: 176, Green: 32, Blue: 32}
)

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

var (
	_ ports.CalendarPDFGenerator    = (*MarotoPDFGenerator)(nil)
	_ ports.StockReportPDFGenerator = (*MarotoPDFGenerator)(nil)
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa los generadores de PDF usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateCalendarPDF agenda del mes: eventos agendados y períodos bloqueados.
func (g *MarotoPDFGenerator) GenerateCalendarPDF(ctx context.Context, data ports.CalendarMonth) ([]byte, error) {
	if data.Company == nil {
		return nil, fmt.Errorf("pdf: empresa requerida")
	}
	period := fmt.Sprintf("%s %d", monthNames[data.Month.Month()-1], data.Month.Year())
	m := newDocument(data.Company, "Calendario de eventos")

	m.AddRows(headerRow(data.Company, "CALENDARIO DE EVENTOS", period))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitleRow(fmt.Sprintf("Eventos agendados (%d)", len(data.Events))))
	if len(data.Events) == 0 {
		m.AddRows(emptyRow("Ningún evento agendado para este mes."))
	} else {
		m.AddRows(tableHeaderRow([]column{
			{"Fecha", 3, align.Left},
			{"Evento", 4, align.Left},
			{"Lugar", 3, align.Left},
			{"Estado", 2, align.Center},
		}))
		for _, ev := range data.Events {
			m.AddRows(eventRow(ev))
		}
	}

	m.AddRows(line.NewRow(4))
	m.AddRows(sectionTitleRow(fmt.Sprintf("Períodos bloqueados (%d)", len(data.Blocks))))
	if len(data.Blocks) == 0 {
		m.AddRows(emptyRow("Ningún período bloqueado para este mes."))
	} else {
		m.AddRows(tableHeaderRow([]column{
			{"Período", 4, align.Left},
			{"Motivo", 5, align.Left},
			{"Tipo", 3, align.Center},
		}))
		for _, b := range data.Blocks {
			m.AddRows(blockRow(b))
		}
	}

	m.AddRows(footerRows(time.Now())...)
	return generate(ctx, m)
}

// GenerateStockReportPDF reporte de inventario: resumen, stock bajo, categorías y top por valor.
func (g *MarotoPDFGenerator) GenerateStockReportPDF(ctx context.Context, company *entity.Company, report *dto.StockReportDTO) ([]byte, error) {
	if company == nil || report == nil {
		return nil, fmt.Errorf("pdf: empresa y reporte requeridos")
	}
	m := newDocument(company, "Reporte de inventario")

	m.AddRows(headerRow(company, "REPORTE DE INVENTARIO", report.GeneratedAt.Format("02/01/2006")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(company.Currency, report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitleRow(fmt.Sprintf("Productos con stock bajo (%d)", len(report.LowStockItems))))
	if len(report.LowStockItems) == 0 {
		m.AddRows(emptyRow("Sin productos en o bajo su stock mínimo."))
	} else {
		m.AddRows(tableHeaderRow([]column{
			{"SKU", 3, align.Left},
			{"Producto", 5, align.Left},
			{"Cantidad", 2, align.Center},
			{"Costo", 2, align.Right},
		}))
		for _, p := range report.LowStockItems {
			m.AddRows(row.New(7).Add(
				cell(p.SKU, 3, align.Left, nil),
				cell(p.Name, 5, align.Left, nil),
				cell(fmt.Sprintf("%d", p.Quantity), 2, align.Center, colorAlert),
				cell(money(company.Currency, p.Cost), 2, align.Right, nil),
			))
		}
	}

	m.AddRows(line.NewRow(4))
	m.AddRows(sectionTitleRow("Stock por categoría"))
	m.AddRows(tableHeaderRow([]column{
		{"Categoría", 6, align.Left},
		{"Productos", 2, align.Center},
		{"Valor", 4, align.Right},
	}))
	for _, c := range report.CategoryBreakdown {
		m.AddRows(row.New(7).Add(
			cell(c.Category, 6, align.Left, nil),
			cell(fmt.Sprintf("%d", c.Count), 2, align.Center, nil),
			cell(money(company.Currency, c.TotalValue), 4, align.Right, nil),
		))
	}

	m.AddRows(line.NewRow(4))
	m.AddRows(sectionTitleRow("Productos de mayor valor"))
	m.AddRows(tableHeaderRow([]column{
		{"SKU", 3, align.Left},
		{"Producto", 5, align.Left},
		{"Cantidad", 2, align.Center},
		{"Valor", 2, align.Right},
	}))
	for _, p := range report.TopProducts {
		m.AddRows(row.New(7).Add(
			cell(p.SKU, 3, align.Left, nil),
			cell(p.Name, 5, align.Left, nil),
			cell(fmt.Sprintf("%d", p.Quantity), 2, align.Center, nil),
			cell(money(company.Currency, p.Value), 2, align.Right, nil),
		))
	}

	m.AddRows(footerRows(report.GeneratedAt)...)
	return generate(ctx, m)
}

func newDocument(company *entity.Company, title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(company.Name, true).
		Build()
	return maroto.New(cfg)
}

func generate(ctx context.Context, m core.Maroto) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + documento (izq) y título + período (der).
func headerRow(company *entity.Company, title, period string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(company.Document, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(period, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2}),
	))
}

func emptyRow(msg string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1}),
	))
}

// summaryRow: totales del reporte de inventario.
func summaryRow(currency string, report *dto.StockReportDTO) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Top: top, Right: 1})
	}
	return row.New(20).Add(
		col.New(6).Add(
			label("Productos activos:", 2),
			label("Valor total en stock:", 8),
			label("Productos con stock bajo:", 14),
		),
		col.New(6).Add(
			value(fmt.Sprintf("%d", report.TotalProducts), 2),
			value(money(currency, report.TotalValue), 8),
			value(fmt.Sprintf("%d", len(report.LowStockItems)), 14),
		),
	)
}

type column struct {
	label string
	size  int
	align align.Type
}

// tableHeaderRow: cabecera de tabla con texto blanco sobre el color primario.
func tableHeaderRow(cols []column) core.Row {
	out := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		out = append(out, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(out...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func cell(s string, size int, a align.Type, color *props.Color) core.Col {
	return col.New(size).Add(text.New(s, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: color,
	}))
}

func eventRow(ev *entity.Event) core.Row {
	when := ev.StartDate.Format("02/01/2006 15:04")
	if !sameDay(ev.StartDate, ev.EndDate) {
		when = ev.StartDate.Format("02/01") + " al " + ev.EndDate.Format("02/01/2006")
	}
	var color *props.Color
	if ev.Status == entity.EventStatusCancelled {
		color = colorGray
	}
	return row.New(7).Add(
		cell(when, 3, align.Left, color),
		cell(ev.Title, 4, align.Left, color),
		cell(nonEmpty(ev.Location, "—"), 3, align.Left, color),
		cell(ev.Status, 2, align.Center, color),
	)
}

func blockRow(b *entity.BlockedDate) core.Row {
	period := b.StartDate.Format("02/01/2006") + " al " + b.EndDate.Format("02/01/2006")
	reason := b.Title
	if b.Description != "" {
		reason += ": " + b.Description
	}
	return row.New(7).Add(
		cell(period, 4, align.Left, nil),
		cell(reason, 5, align.Left, nil),
		cell(b.Type, 3, align.Center, nil),
	)
}

func footerRows(at time.Time) []core.Row {
	return []core.Row{
		line.NewRow(3),
		line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}),
		row.New(8).Add(col.New(12).Add(
			text.New("Generado el "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 7, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// money formatea un monto con dos decimales y separador de miles: 25000.5 → "BRL 25.000,50".
func money(currency string, d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	out := sign + formatThousands(intPart) + "," + frac
	if currency != "" {
		out = currency + " " + out
	}
	return out
}

// formatThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
