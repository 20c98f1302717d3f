package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/eventos-erp/internal/domain"
)

// queryDate lee un parámetro de fecha en formato YYYY-MM-DD o RFC3339.
// Vacío → nil. Con endOfDay, una fecha sin hora se lleva al último instante del día.
func queryDate(c *fiber.Ctx, key string, endOfDay bool) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil, domain.Invalid(key, "fecha inválida, use YYYY-MM-DD")
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// sendPDF responde con el documento como adjunto.
func sendPDF(c *fiber.Ctx, b []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(b)
}
