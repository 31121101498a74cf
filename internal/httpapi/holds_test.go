package httpapi

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "regexp"
    "strconv"
    "strings"
    "testing"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/seatcraft/boxoffice/internal/auth"
    "github.com/seatcraft/boxoffice/internal/config"
    "github.com/seatcraft/boxoffice/internal/seating"
)

const testJWTSecret = "test-secret"

// newTestServer builds an Echo instance around a real engine with a fake
// clock.  Redis is absent, so the cache and rate limiter run as
// pass-throughs, and neither auditing nor publishing is wired.
func newTestServer(t *testing.T, rows, cols int, holdDuration time.Duration, clock seating.Clock) *echo.Echo {
    t.Helper()
    layout, err := seating.NewLayout(rows, cols)
    if err != nil {
        t.Fatal(err)
    }
    engine := seating.NewService(layout, seating.NewThreePassAllocator(layout), holdDuration,
        seating.WithClock(clock))
    e := echo.New()
    srv := NewServer(engine, nil, nil)
    srv.Register(e, testJWTSecret, nil, config.RateLimitConfig{}, config.CacheConfig{})
    return e
}

func bearer(t *testing.T, email string) string {
    t.Helper()
    tok, err := auth.NewAccessToken(testJWTSecret, email, 5)
    if err != nil {
        t.Fatal(err)
    }
    return "Bearer " + tok.Token
}

func doJSON(e *echo.Echo, method, path, authHeader, body string) *httptest.ResponseRecorder {
    req := httptest.NewRequest(method, path, strings.NewReader(body))
    if body != "" {
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    }
    if authHeader != "" {
        req.Header.Set(echo.HeaderAuthorization, authHeader)
    }
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    return rec
}

func TestHealthz(t *testing.T) {
    e := newTestServer(t, 1, 7, time.Minute, seating.NewFakeClock(time.Unix(0, 0)))
    rec := doJSON(e, http.MethodGet, "/healthz", "", "")
    if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
        t.Errorf("GET /healthz = %d %q, want 200 \"ok\"", rec.Code, rec.Body.String())
    }
}

func TestHoldThenReserveOverHTTP(t *testing.T) {
    e := newTestServer(t, 1, 7, time.Minute, seating.NewFakeClock(time.Unix(0, 0)))
    alice := bearer(t, "alice@example.com")

    rec := doJSON(e, http.MethodGet, "/v1/availability", "", "")
    if rec.Code != http.StatusOK {
        t.Fatalf("GET /v1/availability = %d", rec.Code)
    }
    var avail struct {
        Available int `json:"available"`
    }
    if err := json.Unmarshal(rec.Body.Bytes(), &avail); err != nil {
        t.Fatal(err)
    }
    if avail.Available != 7 {
        t.Fatalf("available = %d, want 7", avail.Available)
    }

    rec = doJSON(e, http.MethodPost, "/v1/holds", alice, `{"num_seats":2}`)
    if rec.Code != http.StatusCreated {
        t.Fatalf("POST /v1/holds = %d: %s", rec.Code, rec.Body.String())
    }
    var hold struct {
        HoldID    int32  `json:"hold_id"`
        SeatCount int    `json:"seat_count"`
        SeatHash  string `json:"seat_hash"`
    }
    if err := json.Unmarshal(rec.Body.Bytes(), &hold); err != nil {
        t.Fatal(err)
    }
    if hold.SeatCount != 2 || hold.SeatHash != "0:0-1" {
        t.Errorf("hold = %+v, want 2 seats at 0:0-1", hold)
    }

    rec = doJSON(e, http.MethodPost, "/v1/holds/"+strconv.Itoa(int(hold.HoldID))+"/reserve", alice, "")
    if rec.Code != http.StatusOK {
        t.Fatalf("reserve = %d: %s", rec.Code, rec.Body.String())
    }
    var res struct {
        ConfirmationCode string `json:"confirmation_code"`
    }
    if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
        t.Fatal(err)
    }
    if !regexp.MustCompile(`^[0-9A-F]{8}-[0-9A-F]{2}$`).MatchString(res.ConfirmationCode) {
        t.Errorf("confirmation code %q does not match the expected shape", res.ConfirmationCode)
    }

    // A second reserve of the same hold is no longer live: 404.
    rec = doJSON(e, http.MethodPost, "/v1/holds/"+strconv.Itoa(int(hold.HoldID))+"/reserve", alice, "")
    if rec.Code != http.StatusNotFound {
        t.Errorf("second reserve = %d, want 404", rec.Code)
    }
}

func TestCreateHoldStatusMapping(t *testing.T) {
    e := newTestServer(t, 1, 4, time.Minute, seating.NewFakeClock(time.Unix(0, 0)))
    alice := bearer(t, "alice@example.com")

    // num_seats outside [1, capacity]: 400.
    rec := doJSON(e, http.MethodPost, "/v1/holds", alice, `{"num_seats":0}`)
    if rec.Code != http.StatusBadRequest {
        t.Errorf("hold(0) = %d, want 400", rec.Code)
    }
    rec = doJSON(e, http.MethodPost, "/v1/holds", alice, `{"num_seats":5}`)
    if rec.Code != http.StatusBadRequest {
        t.Errorf("hold(5) on 1x4 = %d, want 400", rec.Code)
    }

    // In range but over what's currently free: 409.
    if rec = doJSON(e, http.MethodPost, "/v1/holds", alice, `{"num_seats":3}`); rec.Code != http.StatusCreated {
        t.Fatalf("hold(3) = %d", rec.Code)
    }
    rec = doJSON(e, http.MethodPost, "/v1/holds", alice, `{"num_seats":2}`)
    if rec.Code != http.StatusConflict {
        t.Errorf("hold(2) with 1 free = %d, want 409", rec.Code)
    }
}

func TestReserveDoesNotDiscloseWhyItFailed(t *testing.T) {
    clock := seating.NewFakeClock(time.Unix(0, 0))
    e := newTestServer(t, 1, 4, 5*time.Second, clock)
    alice := bearer(t, "alice@example.com")
    mallory := bearer(t, "mallory@example.com")

    // Unknown id.
    rec := doJSON(e, http.MethodPost, "/v1/holds/12345/reserve", alice, "")
    if rec.Code != http.StatusNotFound {
        t.Errorf("reserve(unknown) = %d, want 404", rec.Code)
    }
    notFoundBody := rec.Body.String()

    rec = doJSON(e, http.MethodPost, "/v1/holds", alice, `{"num_seats":2}`)
    if rec.Code != http.StatusCreated {
        t.Fatal(rec.Code)
    }
    var hold struct {
        HoldID int32 `json:"hold_id"`
    }
    if err := json.Unmarshal(rec.Body.Bytes(), &hold); err != nil {
        t.Fatal(err)
    }
    path := "/v1/holds/" + strconv.Itoa(int(hold.HoldID)) + "/reserve"

    // Wrong owner: identical status and body as unknown id.
    rec = doJSON(e, http.MethodPost, path, mallory, "")
    if rec.Code != http.StatusNotFound || rec.Body.String() != notFoundBody {
        t.Errorf("reserve(wrong owner) = %d %q, want the not-found response", rec.Code, rec.Body.String())
    }

    // Expired: still identical.
    clock.Advance(6 * time.Second)
    rec = doJSON(e, http.MethodPost, path, alice, "")
    if rec.Code != http.StatusNotFound || rec.Body.String() != notFoundBody {
        t.Errorf("reserve(expired) = %d %q, want the not-found response", rec.Code, rec.Body.String())
    }
}

func TestHoldsRequireBearerToken(t *testing.T) {
    e := newTestServer(t, 1, 4, time.Minute, seating.NewFakeClock(time.Unix(0, 0)))

    rec := doJSON(e, http.MethodPost, "/v1/holds", "", `{"num_seats":1}`)
    if rec.Code != http.StatusUnauthorized {
        t.Errorf("no token = %d, want 401", rec.Code)
    }
    rec = doJSON(e, http.MethodPost, "/v1/holds", "Bearer not-a-token", `{"num_seats":1}`)
    if rec.Code != http.StatusUnauthorized {
        t.Errorf("garbage token = %d, want 401", rec.Code)
    }
}

func TestCancelHoldIsNotAllowed(t *testing.T) {
    e := newTestServer(t, 1, 4, time.Minute, seating.NewFakeClock(time.Unix(0, 0)))
    alice := bearer(t, "alice@example.com")
    rec := doJSON(e, http.MethodDelete, "/v1/holds/1", alice, "")
    if rec.Code != http.StatusMethodNotAllowed {
        t.Errorf("DELETE /v1/holds/1 = %d, want 405", rec.Code)
    }
}
