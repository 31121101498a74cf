package config

// This file defines a Redis client constructor for the application.  Redis is
// used for distributed rate limiting, availability-response caching and the
// hold-expiration pub/sub channel.  The client parameters are loaded from
// environment variables.  If connection fails during startup, the function
// returns nil and callers should degrade gracefully by disabling caching,
// rate limiting and expiration fan-out.

import (
    "context"
    "crypto/tls"
    "os"
    "strconv"
    "strings"
    "time"

    "github.com/redis/go-redis/v9"
)

// NewRedisClient instantiates a Redis client using environment variables.
// Supported variables are:
//   BOXOFFICE_REDIS_HOST and BOXOFFICE_REDIS_PORT – hostname and port of the server
//   BOXOFFICE_REDIS_ADDR – host:port shorthand (host/port take precedence when both are set)
//   BOXOFFICE_REDIS_PASSWORD – optional password
//   BOXOFFICE_REDIS_DB – database number (default 0)
//   BOXOFFICE_REDIS_TLS – enable TLS when "true" or "1"
// The returned client may be nil if a connection cannot be established.
func NewRedisClient() *redis.Client {
    host := os.Getenv("BOXOFFICE_REDIS_HOST")
    port := os.Getenv("BOXOFFICE_REDIS_PORT")
    addr := os.Getenv("BOXOFFICE_REDIS_ADDR")
    if host != "" && port != "" {
        addr = host + ":" + port
    }
    if addr == "" {
        addr = "localhost:6379"
    }
    pwd := os.Getenv("BOXOFFICE_REDIS_PASSWORD")
    dbNum := 0
    if dbStr := os.Getenv("BOXOFFICE_REDIS_DB"); dbStr != "" {
        if n, err := strconv.Atoi(dbStr); err == nil {
            dbNum = n
        }
    }
    var tlsConf *tls.Config
    if tlsEnv := os.Getenv("BOXOFFICE_REDIS_TLS"); strings.EqualFold(tlsEnv, "true") || tlsEnv == "1" {
        tlsConf = &tls.Config{InsecureSkipVerify: true}
    }
    client := redis.NewClient(&redis.Options{
        Addr:      addr,
        Password:  pwd,
        DB:        dbNum,
        TLSConfig: tlsConf,
    })
    // Ping the server with a short timeout.  Return nil on failure.
    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        return nil
    }
    return client
}
