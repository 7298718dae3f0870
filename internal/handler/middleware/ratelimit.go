package middleware

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"telescope-scheduler/internal/handler/httperr"
	"telescope-scheduler/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

var errRateLimited = errors.New("rate limit exceeded")

// tokenBucketScript refills in whole intervals and takes one token per call.
// Returns {allowed, remaining, retry_after_ms}.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local refill_tokens = tonumber(ARGV[3])
local interval_ms = tonumber(ARGV[4])
local ttl_seconds = tonumber(ARGV[5])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
    tokens = capacity
    last_refill = now_ms
end

local elapsed = math.max(0, now_ms - last_refill)
local intervals = math.floor(elapsed / interval_ms)
if intervals > 0 then
    tokens = math.min(capacity, tokens + (intervals * refill_tokens))
    last_refill = last_refill + (intervals * interval_ms)
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
    allowed = 1
    tokens = tokens - 1
else
    retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, tokens, retry_after_ms }
`)

// RateLimiter guards write routes with a Redis token bucket. A nil client
// or a disabled config lets every request through.
type RateLimiter struct {
	cfg config.RateLimitConfig
	rdb redis.Scripter
	now func() time.Time
}

func NewRateLimiter(cfg config.RateLimitConfig, rdb *redis.Client) *RateLimiter {
	cfg.Normalize()
	rl := &RateLimiter{cfg: cfg, now: time.Now}
	if cfg.Enabled && rdb != nil {
		rl.rdb = rdb
	}
	return rl
}

func (r *RateLimiter) Handler() gin.HandlerFunc {
	if r.rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := r.key(c)
		args := []any{
			r.now().UnixMilli(),
			r.cfg.Capacity,
			r.cfg.RefillTokens,
			r.cfg.RefillInterval.Milliseconds(),
			int64(r.cfg.TTL / time.Second),
		}

		vals, err := tokenBucketScript.Run(c.Request.Context(), r.rdb, []string{key}, args...).Int64Slice()
		if err != nil || len(vals) != 3 {
			// fail open
			slog.Warn("rate limiter unavailable", "key", key, "error", errString(err))
			c.Next()
			return
		}

		allowed, remaining, retryMs := vals[0] == 1, vals[1], vals[2]
		c.Header("X-RateLimit-Limit", strconv.Itoa(r.cfg.Capacity))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if !allowed {
			secs := int(math.Ceil(float64(retryMs) / 1000.0))
			c.Header("Retry-After", strconv.Itoa(secs))
			httperr.AbortWithError(c, http.StatusTooManyRequests, errRateLimited, "Rate limit exceeded",
				gin.H{"retry_after": secs})
			return
		}
		c.Next()
	}
}

func (r *RateLimiter) key(c *gin.Context) string {
	parts := []string{r.cfg.Prefix}

	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	uid := "anon"
	if id, ok := GetUserID(c); ok {
		uid = id.String()
	}
	route := c.Request.Method + " " + c.FullPath()

	switch strings.ToLower(r.cfg.KeyStrategy) {
	case "ip":
		parts = append(parts, "ip", ip)
	case "user":
		parts = append(parts, "user", uid)
	case "route":
		parts = append(parts, "route", route)
	case "ip_user":
		parts = append(parts, "ip", ip, "user", uid)
	case "ip_route":
		parts = append(parts, "ip", ip, "route", route)
	case "user_route":
		parts = append(parts, "user", uid, "route", route)
	default:
		parts = append(parts, "ip", ip, "user", uid, "route", route)
	}
	return strings.Join(parts, ":")
}

func errString(err error) string {
	if err == nil {
		return "unexpected script result"
	}
	return err.Error()
}
