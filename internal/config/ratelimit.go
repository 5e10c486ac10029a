package config

import (
    "os"
    "strconv"
    "time"
)

// RateLimitConfig controls the fixed-window limiter applied to the public
// verification route. The limiter is distributed (backed by Redis) so the
// budget holds across replicas; with no Redis client it is disabled.
type RateLimitConfig struct {
    Enabled bool          // master switch
    Limit   int           // requests allowed per window, per key
    Window  time.Duration // window length
    Prefix  string        // redis key namespace
}

// LoadRateLimitConfig reads RATE_LIMIT_* environment variables with defaults
// suitable for an unauthenticated verification endpoint.
func LoadRateLimitConfig() RateLimitConfig {
    cfg := RateLimitConfig{
        Enabled: envBool("RATE_LIMIT_ENABLED", true),
        Limit:   envInt("RATE_LIMIT_PER_WINDOW", 30),
        Window:  envDur("RATE_LIMIT_WINDOW", time.Minute),
        Prefix:  envStr("RATE_LIMIT_PREFIX", "rl"),
    }
    if cfg.Limit < 1 {
        cfg.Limit = 1
    }
    if cfg.Window <= 0 {
        cfg.Window = time.Minute
    }
    return cfg
}

func envStr(k, d string) string {
    if v := os.Getenv(k); v != "" {
        return v
    }
    return d
}

func envBool(k string, d bool) bool {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    b, err := strconv.ParseBool(v)
    if err != nil {
        return d
    }
    return b
}

func envDur(k string, d time.Duration) time.Duration {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    if dur, err := time.ParseDuration(v); err == nil && dur > 0 {
        return dur
    }
    return d
}
