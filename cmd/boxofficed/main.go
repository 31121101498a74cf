package main // Entry point package

import (
    "context"
    "log"
    "time"

    "github.com/joho/godotenv"    // optional .env loading for local development
    "github.com/labstack/echo/v4" // Echo web framework
    "github.com/redis/go-redis/v9"

    "github.com/seatcraft/boxoffice/internal/audit"
    "github.com/seatcraft/boxoffice/internal/config"
    "github.com/seatcraft/boxoffice/internal/httpapi"
    "github.com/seatcraft/boxoffice/internal/identity"
    "github.com/seatcraft/boxoffice/internal/notify"
    "github.com/seatcraft/boxoffice/internal/seating"
)

func main() {
    // Load a local .env if present; real deployments set env vars directly.
    _ = godotenv.Load()

    cfg := config.Load()

    layout, err := seating.NewLayout(cfg.Rows, cfg.Cols)
    if err != nil {
        log.Fatalf("layout: %v", err)
    }

    var allocator seating.Allocator
    switch cfg.Allocator {
    case "threepass":
        allocator = seating.NewThreePassAllocator(layout)
    default:
        allocator = seating.NewDivideAndConquerAllocator(layout)
    }

    salt, err := identity.DeriveSalt(cfg.IDSecret)
    if err != nil {
        log.Fatalf("identity salt: %v", err)
    }

    // Redis backs the rate limiter, the availability cache and the
    // expiration fan-out.  A nil client disables all three.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Printf("redis unavailable; rate limiting, caching and expiration fan-out disabled")
    }

    // The audit trail is optional: without a database host the engine runs
    // purely in memory and only the write-only history is lost.
    var audits *audit.Repo
    if cfg.DBHost != "" {
        db, err := audit.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
        if err != nil {
            log.Fatalf("audit database: %v", err)
        }
        audits = audit.NewRepo(db)
    } else {
        log.Printf("audit database not configured; audit trail disabled")
    }

    engine := seating.NewService(layout, allocator, cfg.HoldDuration,
        seating.WithIDSalt(salt),
        seating.WithExpirationObserver(expirationSink(rdb, audits)),
    )

    publish := func(ev notify.ReservationConfirmedEvent) {
        _ = notify.PublishReservationConfirmed(context.Background(), cfg.AMQPURL, ev)
    }

    // Tail the confirmed-reservation queue into logs/reservations.log.
    go func() {
        if err := notify.StartReservationConsumer(cfg.AMQPURL); err != nil {
            log.Printf("reservation consumer stopped: %v", err)
        }
    }()

    e := echo.New()
    srv := httpapi.NewServer(engine, audits, publish)
    srv.Register(e, cfg.JWTSecret, rdb, config.LoadRateLimitConfig(), config.LoadCacheConfig())

    addr := ":" + cfg.Port
    log.Printf("boxoffice listening on %s (env=%s, grid=%dx%d, hold=%s, allocator=%s)",
        addr, cfg.Env, cfg.Rows, cfg.Cols, cfg.HoldDuration, cfg.Allocator)

    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}

// expirationSink combines the Redis pub/sub observer with the audit trail.
// The engine invokes the observer under its mutex, so both targets do their
// real work off this call stack: the Redis observer enqueues onto its own
// buffered pipeline and the audit write runs on a fresh goroutine.
func expirationSink(rdb *redis.Client, audits *audit.Repo) seating.ExpirationObserver {
    redisObs := notify.NewRedisExpirationObserver(rdb)
    return func(h *seating.Hold) {
        redisObs(h)
        if audits != nil {
            id, seatCount := h.ID(), h.SeatCount()
            go func() {
                ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
                defer cancel()
                if err := audits.HoldExpired(ctx, id, seatCount); err != nil {
                    log.Printf("audit: hold expired write failed: %v", err)
                }
            }()
        }
    }
}
