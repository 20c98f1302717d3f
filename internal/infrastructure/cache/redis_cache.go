// Package cache implementa ports.MetricsCache: Redis cuando hay REDIS_URL y un mapa con TTL en proceso si no.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/application/ports"
)

const keyPrefix = "erp:dashboard:metrics:"

var _ ports.MetricsCache = (*RedisCache)(nil)

// RedisCache guarda el DashboardMetricsDTO serializado en JSON, una clave por empresa.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisClient abre la conexión y verifica que Redis responda.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: url inválida: %w", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return rdb, nil
}

// NewRedisCache construye el adaptador sobre un cliente ya conectado.
func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, companyID string) (*dto.DashboardMetricsDTO, bool, error) {
	data, err := c.rdb.Get(ctx, keyPrefix+companyID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis: get: %w", err)
	}
	var m dto.DashboardMetricsDTO
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, false, fmt.Errorf("redis: decodificar métricas: %w", err)
	}
	return &m, true, nil
}

func (c *RedisCache) Set(ctx context.Context, companyID string, m *dto.DashboardMetricsDTO) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("redis: codificar métricas: %w", err)
	}
	if err := c.rdb.Set(ctx, keyPrefix+companyID, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis: set: %w", err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context, companyID string) error {
	if err := c.rdb.Del(ctx, keyPrefix+companyID).Err(); err != nil {
		return fmt.Errorf("redis: del: %w", err)
	}
	return nil
}
