package middleware

import (
    "bytes"
    "net/http"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/credchain/credential-registry/internal/config"
)

// cacheWriter tees the response body into a buffer while forwarding it to
// the client, so a 200 response can be stored after the handler runs.
type cacheWriter struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
}

func (w *cacheWriter) WriteHeader(code int) {
    w.status = code
    w.ResponseWriter.WriteHeader(code)
}

func (w *cacheWriter) Write(b []byte) (int, error) {
    w.buf.Write(b)
    return w.ResponseWriter.Write(b)
}

// NewResponseCache returns a middleware caching successful GET responses in
// Redis for a short TTL. It is applied only to the system-wide listing
// routes, whose payload is identical for every caller the role gate lets
// through, so the key is derived from the route path alone. Runs after
// JWTAuth/RequireRole in the chain; unauthorized callers never reach it.
func NewResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc {
            return func(c echo.Context) error { return next(c) }
        }
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if c.Request().Method != http.MethodGet {
                return next(c)
            }
            ctx := c.Request().Context()
            key := cfg.Prefix + ":" + c.Path()

            if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
                c.Response().Header().Set("X-Cache", "HIT")
                return c.JSONBlob(http.StatusOK, body)
            }

            cw := &cacheWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
            c.Response().Writer = cw
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }
            if cw.status == http.StatusOK && cw.buf.Len() > 0 {
                if err := rdb.SetEx(ctx, key, cw.buf.Bytes(), cfg.TTL).Err(); err != nil {
                    c.Logger().Warnf("cache: store failed for %s: %v", key, err)
                }
            }
            return nil
        }
    }
}
