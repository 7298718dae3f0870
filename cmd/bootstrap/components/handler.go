package components

import (
	"telescope-scheduler/internal/handler"
	"telescope-scheduler/internal/handler/api"
	"telescope-scheduler/internal/handler/middleware"
	"telescope-scheduler/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAppointmentHandler,
		api.NewTelescopeHandler,
		api.NewUserHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
		NewRateLimiter,
	),
	fx.Invoke(handler.NewRouter),
)

func NewRateLimiter(cfg config.Config, rdb *redis.Client) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.RateLimit, rdb)
}
