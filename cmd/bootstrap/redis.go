package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"telescope-scheduler/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const redisPingTimeout = 2 * time.Second

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedisClient,
	),
)

// NewRedisClient returns nil when rate limiting is off or Redis is
// unreachable at startup; the limiter then lets every request through.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) *redis.Client {
	if !cfg.RateLimit.Enabled {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, rate limiting disabled", "addr", cfg.Redis.Addr, "error", err.Error())
		_ = rdb.Close()
		return nil
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})
	return rdb
}
