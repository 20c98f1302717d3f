package cache

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
)

func TestTTLCache_GuardaYVence(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	c := NewTTLCache(time.Minute)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "c1", &dto.DashboardMetricsDTO{TotalEvents: 4, RevenueThisMonth: decimal.NewFromInt(100)}))

	got, ok, err := c.Get(ctx, "c1")
	require.NoError(t, err)
	require.True(t, ok, "la entrada recién guardada debe estar vigente")
	assert.Equal(t, 4, got.TotalEvents)

	_, ok, _ = c.Get(ctx, "c2")
	assert.False(t, ok, "otra empresa no comparte la entrada")

	now = now.Add(time.Minute)
	_, ok, err = c.Get(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, ok, "al cumplirse el TTL la entrada vence")
}

func TestTTLCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	c := NewTTLCache(time.Hour)
	require.NoError(t, c.Set(ctx, "c1", &dto.DashboardMetricsDTO{TotalEvents: 1}))
	require.NoError(t, c.Invalidate(ctx, "c1"))

	_, ok, err := c.Get(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTTLCache_TTLCeroNoGuarda(t *testing.T) {
	ctx := context.Background()
	c := NewTTLCache(0)
	require.NoError(t, c.Set(ctx, "c1", &dto.DashboardMetricsDTO{TotalEvents: 1}))
	_, ok, _ := c.Get(ctx, "c1")
	assert.False(t, ok)
}

func TestTTLCache_DevuelveCopia(t *testing.T) {
	ctx := context.Background()
	c := NewTTLCache(time.Hour)
	require.NoError(t, c.Set(ctx, "c1", &dto.DashboardMetricsDTO{TotalEvents: 1}))

	got, _, _ := c.Get(ctx, "c1")
	got.TotalEvents = 99

	again, _, _ := c.Get(ctx, "c1")
	assert.Equal(t, 1, again.TotalEvents, "mutar el resultado no altera la caché")
}
