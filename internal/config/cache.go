package config

import "time"

// CacheConfig defines settings for the response cache middleware that fronts
// the public car browse endpoints.  When Enabled is false or no Redis client
// is configured, caching is disabled.  Only GET responses are cached; TTL
// defines the lifetime of cache entries and MaxBodyBytes caps the size of a
// cached response body.
type CacheConfig struct {
    Enabled      bool
    TTL          time.Duration
    Prefix       string
    MaxBodyBytes int
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
    cfg := CacheConfig{
        Enabled:      envBool("CACHE_ENABLED", true),
        TTL:          envDur("CACHE_TTL", 30*time.Second),
        Prefix:       envStr("CACHE_PREFIX", "cache"),
        MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
    }
    if cfg.TTL <= 0 {
        cfg.TTL = 30 * time.Second
    }
    if cfg.MaxBodyBytes < 1 {
        cfg.MaxBodyBytes = 1 << 20
    }
    return cfg
}
