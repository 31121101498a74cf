package httpapi

import (
    "context"
    "log"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/seatcraft/boxoffice/internal/middleware"
    "github.com/seatcraft/boxoffice/internal/notify"
)

// auditTimeout bounds each fire-and-forget audit write so a slow database
// never ties up goroutines indefinitely.
const auditTimeout = 5 * time.Second

// holdResponse is the JSON shape returned for a freshly placed hold.
type holdResponse struct {
    HoldID    int32  `json:"hold_id"`
    SeatCount int    `json:"seat_count"`
    SeatHash  string `json:"seat_hash"`
    ExpiresAt string `json:"expires_at"`
}

// createHoldRequest carries the only client-supplied input to a hold; the
// customer identity comes from the verified token, never the body.
type createHoldRequest struct {
    NumSeats int `json:"num_seats"`
}

// GetAvailability handles GET /v1/availability.  The count is already
// stale the moment it is serialized, which is why the route tolerates the
// short response cache in front of it.
func (s *Server) GetAvailability(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"available": s.engine.NumAvailable()})
}

// CreateHold handles POST /v1/holds.  A nil hold from the engine means not
// enough seats are currently available, which maps to 409; argument
// violations map to 400.
func (s *Server) CreateHold(c echo.Context) error {
    email := middleware.CustomerEmail(c)

    var req createHoldRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "malformed request body"})
    }

    hold, err := s.engine.FindAndHold(req.NumSeats, email)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    if hold == nil {
        return c.JSON(http.StatusConflict, echo.Map{"error": "not enough seats available"})
    }

    // Audit write happens off the request path; a failure is logged and
    // swallowed so it never fails the customer-facing request.
    if s.audits != nil {
        h := hold
        go func() {
            ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
            defer cancel()
            if err := s.audits.HoldCreated(ctx, h.ID(), h.Email(), h.SeatCount(), h.HashSeats(), h.ExpiresAt()); err != nil {
                log.Printf("audit: hold created write failed: %v", err)
            }
        }()
    }

    return c.JSON(http.StatusCreated, holdResponse{
        HoldID:    hold.ID(),
        SeatCount: hold.SeatCount(),
        SeatHash:  hold.HashSeats(),
        ExpiresAt: hold.ExpiresAt().UTC().Format(time.RFC3339),
    })
}

// CancelHold handles DELETE /v1/holds/:id.  Holds cannot be cancelled
// early — they lapse on their own — so the route answers 405 rather than
// pretending the operation exists.
func (s *Server) CancelHold(c echo.Context) error {
    return c.JSON(http.StatusMethodNotAllowed, echo.Map{"error": "holds cannot be cancelled; they expire on their own"})
}

// ReserveHold handles POST /v1/holds/:id/reserve.  An empty code from the
// engine covers not-found, wrong-owner and expired alike; all three map to
// one 404 so the wire discloses nothing about which it was.
func (s *Server) ReserveHold(c echo.Context) error {
    email := middleware.CustomerEmail(c)

    id64, err := strconv.ParseInt(c.Param("id"), 10, 32)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "hold id must be a 32-bit integer"})
    }
    holdID := int32(id64)

    code, err := s.engine.Reserve(holdID, email)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    if code == "" {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "hold not found"})
    }

    if s.audits != nil {
        go func() {
            ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
            defer cancel()
            if err := s.audits.ReservationConfirmed(ctx, holdID, email, code); err != nil {
                log.Printf("audit: reservation confirmed write failed: %v", err)
            }
        }()
    }
    if s.publish != nil {
        ev := notify.ReservationConfirmedEvent{
            HoldID:           holdID,
            Email:            email,
            ConfirmationCode: code,
            ConfirmedAt:      time.Now().UTC().Format(time.RFC3339),
        }
        go s.publish(ev)
    }

    return c.JSON(http.StatusOK, echo.Map{"confirmation_code": code})
}
