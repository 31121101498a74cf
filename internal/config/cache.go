package config

import (
    "strings"
    "time"
)

// CacheConfig defines settings for the availability-response cache
// middleware.  When Enabled is false or no Redis client is configured,
// caching is disabled.  Methods lists the HTTP methods to cache.  TTL
// defines the lifetime of cache entries — availability is safe to serve a
// few seconds stale, so the default is deliberately short.  KeyStrategy
// determines which parts of the request contribute to the cache key.
// Prefix and MaxBodyBytes control namespacing and the maximum size of
// responses to cache.
type CacheConfig struct {
    Enabled      bool
    Methods      map[string]bool
    TTL          time.Duration
    KeyStrategy  string
    Prefix       string
    MaxBodyBytes int
}

// LoadCacheConfig reads the BOXOFFICE_CACHE_* environment variables to build
// a CacheConfig.  Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled:      envBool("BOXOFFICE_CACHE_ENABLED", true),
        Methods:      parseMethods(envStr("BOXOFFICE_CACHE_METHODS", "GET")),
        TTL:          envDur("BOXOFFICE_CACHE_TTL", 2*time.Second),
        KeyStrategy:  envStr("BOXOFFICE_CACHE_KEY_STRATEGY", "route_query"),
        Prefix:       envStr("BOXOFFICE_CACHE_PREFIX", "cache"),
        MaxBodyBytes: envInt("BOXOFFICE_CACHE_MAX_BODY_BYTES", 1<<20),
    }
}

func parseMethods(s string) map[string]bool {
    m := map[string]bool{}
    for _, p := range strings.Split(s, ",") {
        p = strings.TrimSpace(strings.ToUpper(p))
        if p != "" {
            m[p] = true
        }
    }
    return m
}
