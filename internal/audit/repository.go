// Package audit persists an append-only history of hold, reservation and
// expiration events for reporting and customer service.  The engine never
// reads this store back — on restart it starts empty and the audit log is
// write-only history.  Every method tolerates a nil receiver so the host
// can run with auditing disabled entirely.
package audit

import (
    "context"
    "database/sql"
    "time"
)

// Repo provides data access to the audit tables.  All timestamps are
// written in UTC; callers must not rely on local time round-tripping.
type Repo struct {
    db *sql.DB
}

// NewRepo returns a new Repo bound to the provided database.
func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

// HoldCreated appends a hold_events row recording that a hold was placed.
func (r *Repo) HoldCreated(ctx context.Context, holdID int32, email string, seatCount int, seatHash string, expiresAt time.Time) error {
    if r == nil {
        return nil
    }
    _, err := r.db.ExecContext(ctx,
        `INSERT INTO hold_events (hold_id, email, seat_count, seat_hash, expires_at, created_at)
         VALUES (?, ?, ?, ?, ?, UTC_TIMESTAMP())`,
        holdID, email, seatCount, seatHash, expiresAt.UTC(),
    )
    return err
}

// ReservationConfirmed appends a reservation_events row recording a
// successful reserve together with its confirmation code.
func (r *Repo) ReservationConfirmed(ctx context.Context, holdID int32, email, confirmationCode string) error {
    if r == nil {
        return nil
    }
    _, err := r.db.ExecContext(ctx,
        `INSERT INTO reservation_events (hold_id, email, confirmation_code, confirmed_at)
         VALUES (?, ?, ?, UTC_TIMESTAMP())`,
        holdID, email, confirmationCode,
    )
    return err
}

// HoldExpired appends an expiration_events row recording that the lazy
// sweep released a hold and returned its seats to availability.
func (r *Repo) HoldExpired(ctx context.Context, holdID int32, seatCount int) error {
    if r == nil {
        return nil
    }
    _, err := r.db.ExecContext(ctx,
        `INSERT INTO expiration_events (hold_id, seat_count, expired_at)
         VALUES (?, ?, UTC_TIMESTAMP())`,
        holdID, seatCount,
    )
    return err
}
