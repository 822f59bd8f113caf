package config

import "time"

// RateLimitConfig drives the Redis token-bucket limiter applied to the
// auth endpoints.  Capacity is the bucket size; RefillTokens are added
// every RefillInterval.  TTL bounds how long idle buckets survive.
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int
    RefillTokens   int
    RefillInterval time.Duration
    TTL            time.Duration
    KeyStrategy    string
    Prefix         string
    Debug          bool
}

// LoadRateLimitConfig reads environment variables to build a
// RateLimitConfig.  The defaults allow five login attempts per minute per
// client IP, matching the brute-force protection of the login form.
func LoadRateLimitConfig() RateLimitConfig {
    return RateLimitConfig{
        Enabled:        getenv("RATE_LIMIT_ENABLED", "true") == "true",
        Capacity:       atoiDef(getenv("RATE_LIMIT_CAPACITY", "5"), 5),
        RefillTokens:   atoiDef(getenv("RATE_LIMIT_REFILL_TOKENS", "5"), 5),
        RefillInterval: parseDurDef(getenv("RATE_LIMIT_REFILL_INTERVAL", "1m"), time.Minute),
        TTL:            parseDurDef(getenv("RATE_LIMIT_TTL", "10m"), 10*time.Minute),
        KeyStrategy:    getenv("RATE_LIMIT_KEY_STRATEGY", "ip_route"),
        Prefix:         getenv("RATE_LIMIT_PREFIX", "rl"),
        Debug:          getenv("RATE_LIMIT_DEBUG", "false") == "true",
    }
}

func atoiDef(s string, def int) int {
    if n := atoi(s); n > 0 {
        return n
    }
    return def
}

func parseDurDef(s string, def time.Duration) time.Duration {
    if d, err := time.ParseDuration(s); err == nil && d > 0 {
        return d
    }
    return def
}
