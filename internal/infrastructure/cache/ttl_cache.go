package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/application/ports"
)

var _ ports.MetricsCache = (*TTLCache)(nil)

type entry struct {
	metrics   dto.DashboardMetricsDTO
	expiresAt time.Time
}

// TTLCache caché en proceso. Las entradas vencidas se descartan al leerlas.
type TTLCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

// NewTTLCache construye la caché. ttl <= 0 desactiva el almacenamiento.
func NewTTLCache(ttl time.Duration) *TTLCache {
	return &TTLCache{ttl: ttl, now: time.Now, entries: make(map[string]entry)}
}

func (c *TTLCache) Get(_ context.Context, companyID string) (*dto.DashboardMetricsDTO, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[companyID]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, companyID)
		c.mu.Unlock()
		return nil, false, nil
	}
	m := e.metrics
	return &m, true, nil
}

func (c *TTLCache) Set(_ context.Context, companyID string, m *dto.DashboardMetricsDTO) error {
	if c.ttl <= 0 || m == nil {
		return nil
	}
	c.mu.Lock()
	c.entries[companyID] = entry{metrics: *m, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

func (c *TTLCache) Invalidate(_ context.Context, companyID string) error {
	c.mu.Lock()
	delete(c.entries, companyID)
	c.mu.Unlock()
	return nil
}
