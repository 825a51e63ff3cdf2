package application

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/loanpal/loanpal-api/pkg/helpers"
)

// ViewCache is the cache boundary for rendered dashboard projections.
type ViewCache interface {
	GetView(ctx context.Context, key string, dest *DashboardView) (bool, error)
	SetView(ctx context.Context, key string, view *DashboardView, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RedisViewCache backs ViewCache with the shared Redis client.
type RedisViewCache struct {
	Client *redis.Client
}

func (c *RedisViewCache) GetView(ctx context.Context, key string, dest *DashboardView) (bool, error) {
	return helpers.RedisGetJSON(ctx, c.Client, key, dest)
}

func (c *RedisViewCache) SetView(ctx context.Context, key string, view *DashboardView, ttl time.Duration) error {
	return helpers.RedisSetJSON(ctx, c.Client, key, view, ttl)
}

func (c *RedisViewCache) Delete(ctx context.Context, key string) error {
	return helpers.RedisDel(ctx, c.Client, key)
}
