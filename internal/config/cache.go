package config

import "time"

// CacheConfig defines settings for the response cache middleware. Only
// routes whose payload is identical for every authorized caller (the
// system-wide listings) are cached, so the key is derived from the route
// alone. When Enabled is false or no Redis client is configured, caching is
// a no-op.
type CacheConfig struct {
    Enabled bool          // master switch
    TTL     time.Duration // lifetime of a cached response
    Prefix  string        // redis key namespace
}

// LoadCacheConfig reads CACHE_* environment variables. The default TTL is
// short: listings tolerate a few seconds of staleness, issuance must show up
// promptly.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled: envBool("CACHE_ENABLED", true),
        TTL:     envDur("CACHE_TTL", 15*time.Second),
        Prefix:  envStr("CACHE_PREFIX", "cache"),
    }
}
