package notify

import (
    "context"
    "encoding/json"
    "log"
    "time"

    "github.com/redis/go-redis/v9"

    "github.com/seatcraft/boxoffice/internal/seating"
)

// expirationsChannel is the Redis pub/sub channel expiration events are
// broadcast on.
const expirationsChannel = "boxoffice:expirations"

// publishTimeout bounds each fire-and-forget publish so a slow Redis can
// never back up the goroutine draining the observer queue.
const publishTimeout = 2 * time.Second

// NewRedisExpirationObserver returns a seating.ExpirationObserver that
// broadcasts an ExpirationEvent for every released hold.
//
// The engine invokes its observer under the service mutex and requires it
// to be non-blocking, so the observer only enqueues onto a buffered channel
// here; a single background goroutine performs the actual Redis publishes.
// If the buffer fills (Redis down, massive expiry burst) events are dropped
// with a log line — the channel is a cache-invalidation hint, not a ledger;
// the audit trail is the durable record.
func NewRedisExpirationObserver(rdb *redis.Client) seating.ExpirationObserver {
    if rdb == nil {
        return func(*seating.Hold) {}
    }
    events := make(chan ExpirationEvent, 256)
    go func() {
        for ev := range events {
            body, err := json.Marshal(ev)
            if err != nil {
                log.Printf("expiration-observer: marshal event failed: %v", err)
                continue
            }
            ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
            if err := rdb.Publish(ctx, expirationsChannel, body).Err(); err != nil {
                log.Printf("expiration-observer: publish failed: %v", err)
            }
            cancel()
        }
    }()
    return func(h *seating.Hold) {
        ev := ExpirationEvent{
            HoldID:    h.ID(),
            SeatCount: h.SeatCount(),
            SeatHash:  h.HashSeats(),
            ExpiredAt: h.ExpiresAt().UTC().Format(time.RFC3339),
        }
        select {
        case events <- ev:
        default:
            log.Printf("expiration-observer: buffer full, dropping event for hold %d", ev.HoldID)
        }
    }
}
