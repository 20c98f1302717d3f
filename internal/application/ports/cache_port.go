package ports

import (
	"context"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
)

// MetricsCache puerto de salida para cachear las métricas del dashboard por empresa.
// Adaptadores: Redis (go-redis) y caché TTL en proceso.
type MetricsCache interface {
	// Get devuelve (nil, false, nil) cuando no hay entrada vigente.
	Get(ctx context.Context, companyID string) (*dto.DashboardMetricsDTO, bool, error)
	Set(ctx context.Context, companyID string, m *dto.DashboardMetricsDTO) error
	CacheInvalidator
}

// CacheInvalidator lo usan los casos de uso que mutan eventos, transacciones o stock.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, companyID string) error
}

// NopCache no guarda nada. Sirve cuando no se configuró caché y en pruebas.
type NopCache struct{}

func (NopCache) Get(context.Context, string) (*dto.DashboardMetricsDTO, bool, error) {
	return nil, false, nil
}
func (NopCache) Set(context.Context, string, *dto.DashboardMetricsDTO) error { return nil }
func (NopCache) Invalidate(context.Context, string) error                    { return nil }
