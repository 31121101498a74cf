// Package httpapi exposes the seating engine's three operations over HTTP.
// It resolves the customer identity from a verified bearer token, calls
// straight into the engine, and only then touches the audit database and
// the message broker — always as side effects of a result the engine has
// already committed to under its own mutex.
package httpapi

import (
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/seatcraft/boxoffice/internal/audit"
    "github.com/seatcraft/boxoffice/internal/config"
    "github.com/seatcraft/boxoffice/internal/middleware"
    "github.com/seatcraft/boxoffice/internal/notify"
    "github.com/seatcraft/boxoffice/internal/seating"
)

// Server wires the engine and its host-side collaborators to an Echo
// instance.  All request handling funnels through the one *seating.Service,
// whose exported methods already serialize internally, so this layer adds
// no locking of its own.
type Server struct {
    engine *seating.Service
    audits *audit.Repo // nil disables the audit trail

    // publish sends a confirmed-reservation event to the broker.  The
    // handler invokes it on a separate goroutine after a successful
    // reserve; nil disables publishing (tests, broker-less deployments).
    publish func(notify.ReservationConfirmedEvent)
}

// NewServer constructs a Server.  audits and publish may be nil.
func NewServer(engine *seating.Service, audits *audit.Repo, publish func(notify.ReservationConfirmedEvent)) *Server {
    return &Server{engine: engine, audits: audits, publish: publish}
}

// Register installs the API routes on e.  The availability endpoint is
// optionally cached; the hold and reserve endpoints require a bearer token
// and sit behind the rate limiter.  rdb may be nil, which disables both the
// cache and the limiter.
func (s *Server) Register(e *echo.Echo, jwtSecret string, rdb *redis.Client, rlCfg config.RateLimitConfig, cacheCfg config.CacheConfig) {
    e.GET("/healthz", Health)
    e.GET("/v1/availability", s.GetAvailability, middleware.NewRedisCache(cacheCfg, rdb))

    v1 := e.Group("/v1")
    v1.Use(middleware.JWTAuth(jwtSecret))
    v1.Use(middleware.NewTokenBucket(rlCfg, rdb))
    v1.POST("/holds", s.CreateHold)
    v1.DELETE("/holds/:id", s.CancelHold)
    v1.POST("/holds/:id/reserve", s.ReserveHold)
}
