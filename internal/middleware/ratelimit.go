package middleware

import (
    "fmt"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/credchain/credential-registry/internal/config"
)

// NewRateLimiter returns a fixed-window rate limiter backed by Redis,
// applied to the public verification route. The window is keyed by client IP
// and route so one scanner cannot exhaust the budget for everyone. When the
// limiter is disabled, the Redis client is nil, or Redis itself fails, the
// middleware lets requests through: availability of verification wins over
// strict limiting.
func NewRateLimiter(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc {
            return func(c echo.Context) error { return next(c) }
        }
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            ctx := c.Request().Context()
            window := time.Now().Unix() / int64(cfg.Window/time.Second)
            key := fmt.Sprintf("%s:%s:%s:%d", cfg.Prefix, c.RealIP(), c.Path(), window)

            n, err := rdb.Incr(ctx, key).Result()
            if err != nil {
                c.Logger().Warnf("ratelimit: redis incr failed for %s: %v", key, err)
                return next(c)
            }
            if n == 1 {
                // First hit in this window owns the expiry.
                _ = rdb.Expire(ctx, key, cfg.Window).Err()
            }

            remaining := int64(cfg.Limit) - n
            if remaining < 0 {
                remaining = 0
            }
            c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
            c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

            if n > int64(cfg.Limit) {
                c.Response().Header().Set("Retry-After", strconv.Itoa(int(cfg.Window/time.Second)))
                return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "too many requests"})
            }
            return next(c)
        }
    }
}
