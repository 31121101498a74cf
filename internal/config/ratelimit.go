package config

import (
    "os"
    "strconv"
    "time"
)

// RateLimitConfig defines settings for the Redis token-bucket limiter that
// guards the hold and reserve endpoints.  Capacity is the bucket size,
// RefillTokens/RefillInterval the refill rate, TTL how long an idle bucket
// key survives in Redis.  KeyStrategy decides which request attributes form
// the bucket key (client IP, authenticated customer, route, or a mix).
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

// LoadRateLimitConfig reads the BOXOFFICE_RATE_LIMIT_* environment variables
// into a RateLimitConfig, applying defaults and clamping nonsensical values.
func LoadRateLimitConfig() RateLimitConfig {
    def := RateLimitConfig{
        Enabled:        envBool("BOXOFFICE_RATE_LIMIT_ENABLED", true),
        Capacity:       envInt("BOXOFFICE_RATE_LIMIT_CAPACITY", 30),
        RefillTokens:   envInt("BOXOFFICE_RATE_LIMIT_REFILL_TOKENS", 1),
        RefillInterval: envDur("BOXOFFICE_RATE_LIMIT_REFILL_INTERVAL", time.Second),
        TTL:            envDur("BOXOFFICE_RATE_LIMIT_TTL", 10*time.Minute),
        KeyStrategy:    envStr("BOXOFFICE_RATE_LIMIT_KEY_STRATEGY", "ip_user_route"),
        Prefix:         envStr("BOXOFFICE_RATE_LIMIT_PREFIX", "rl"),
        Debug:          envBool("BOXOFFICE_RATE_LIMIT_DEBUG", false),
    }
    if def.Capacity < 1 {
        def.Capacity = 1
    }
    if def.RefillTokens < 1 {
        def.RefillTokens = 1
    }
    if def.RefillInterval <= 0 {
        def.RefillInterval = time.Second
    }
    // Keep bucket keys alive across at least a few refill cycles.
    minTTL := 5 * def.RefillInterval
    if def.TTL < minTTL {
        def.TTL = minTTL
    }
    return def
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
    switch v {
    case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
        return true
    case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
        return false
    }
    return d
}

func envInt(k string, d int) int {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    if n, err := strconv.Atoi(v); err == nil {
        return n
    }
    return d
}

func envDur(k string, d time.Duration) time.Duration {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    if dur, err := time.ParseDuration(v); err == nil {
        return dur
    }
    return d
}
