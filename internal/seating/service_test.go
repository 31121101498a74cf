package seating

import (
	"testing"
	"time"
)

func newTestService(t *testing.T, rows, cols int, holdDuration time.Duration, clock Clock) *Service {
	t.Helper()
	layout, err := NewLayout(rows, cols)
	if err != nil {
		t.Fatal(err)
	}
	return NewService(layout, NewThreePassAllocator(layout), holdDuration, WithClock(clock))
}

// TestStageScenario1x7 walks a 1x7 stage with a 10s hold duration through
// hold/reserve/expire steps, driving expiration via the fake clock.
func TestStageScenario1x7(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	svc := newTestService(t, 1, 7, 10*time.Second, clock)

	h1, err := svc.FindAndHold(2, "a@example.com")
	if err != nil || h1 == nil {
		t.Fatalf("hold(2): %v, %v", h1, err)
	}
	if got, want := h1.HashSeats(), "0:0-1"; got != want {
		t.Fatalf("hold(2) = %q, want %q", got, want)
	}

	h2, err := svc.FindAndHold(4, "b@example.com")
	if err != nil || h2 == nil {
		t.Fatalf("hold(4): %v, %v", h2, err)
	}
	if got, want := h2.HashSeats(), "0:2-5"; got != want {
		t.Fatalf("hold(4) = %q, want %q", got, want)
	}
	if _, err := svc.Reserve(h2.ID(), "b@example.com"); err != nil {
		t.Fatal(err)
	}

	clock.Advance(11 * time.Second) // expires h1, not the reservation
	h3, err := svc.FindAndHold(3, "c@example.com")
	if err != nil || h3 == nil {
		t.Fatalf("hold(3): %v, %v", h3, err)
	}
	if got, want := h3.HashSeats(), "0:0-1,6"; got != want {
		t.Fatalf("hold(3) = %q, want %q", got, want)
	}

	clock.Advance(11 * time.Second) // expires h3
	h4, err := svc.FindAndHold(1, "d@example.com")
	if err != nil || h4 == nil {
		t.Fatalf("hold(1): %v, %v", h4, err)
	}
	if got, want := h4.HashSeats(), "0:0"; got != want {
		t.Fatalf("hold(1) = %q, want %q", got, want)
	}

	h5, err := svc.FindAndHold(2, "e@example.com")
	if err != nil || h5 == nil {
		t.Fatalf("hold(2): %v, %v", h5, err)
	}
	if got, want := h5.HashSeats(), "0:1,6"; got != want {
		t.Fatalf("hold(2) = %q, want %q", got, want)
	}
}

// TestStageScenario2x10Interleaved alternates permanent reservations with
// expirable holds in the same row, then checks that a contiguous request
// skips the fragmented row entirely while a fragmented one mops up the
// freed pairs front to back.
func TestStageScenario2x10Interleaved(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	svc := newTestService(t, 2, 10, 10*time.Second, clock)

	reserve := func(n int, email string) string {
		t.Helper()
		h, err := svc.FindAndHold(n, email)
		if err != nil || h == nil {
			t.Fatalf("hold(%d): %v, %v", n, h, err)
		}
		if _, err := svc.Reserve(h.ID(), email); err != nil {
			t.Fatal(err)
		}
		return h.HashSeats()
	}
	hold := func(n int, email string) (*Hold, string) {
		t.Helper()
		h, err := svc.FindAndHold(n, email)
		if err != nil || h == nil {
			t.Fatalf("hold(%d): %v, %v", n, h, err)
		}
		return h, h.HashSeats()
	}

	if got := reserve(2, "a@example.com"); got != "0:0-1" {
		t.Fatalf("reserve(2) = %q", got)
	}
	if _, got := hold(2, "b@example.com"); got != "0:2-3" {
		t.Fatalf("hold(2) = %q", got)
	}
	if got := reserve(2, "c@example.com"); got != "0:4-5" {
		t.Fatalf("reserve(2) = %q", got)
	}
	if _, got := hold(2, "d@example.com"); got != "0:6-7" {
		t.Fatalf("hold(2) = %q", got)
	}
	if got := reserve(1, "e@example.com"); got != "0:8" {
		t.Fatalf("reserve(1) = %q", got)
	}

	clock.Advance(11 * time.Second) // expires the two unreserved holds

	if got := reserve(6, "f@example.com"); got != "1:0-5" {
		t.Fatalf("reserve(6) = %q", got)
	}
	if _, got := hold(5, "g@example.com"); got != "0:2-3,6-7,9" {
		t.Fatalf("hold(5) = %q", got)
	}
}

func TestFindAndHoldRejectsBadArguments(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	svc := newTestService(t, 2, 3, time.Minute, clock)

	if _, err := svc.FindAndHold(0, "a@example.com"); !IsBadArgument(err) {
		t.Errorf("FindAndHold(0,...): want BadArgument, got %v", err)
	}
	if _, err := svc.FindAndHold(7, "a@example.com"); !IsBadArgument(err) {
		t.Errorf("FindAndHold(7,...): want BadArgument, got %v", err)
	}
	if _, err := svc.FindAndHold(1, ""); !IsNullArgument(err) {
		t.Errorf("FindAndHold(1,\"\"): want NullArgument, got %v", err)
	}
	if _, err := svc.Reserve(1, ""); !IsNullArgument(err) {
		t.Errorf("Reserve(1,\"\"): want NullArgument, got %v", err)
	}
}

func TestFindAndHoldOutOfCapacityReturnsNilNil(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	svc := newTestService(t, 1, 4, time.Minute, clock)
	if _, err := svc.FindAndHold(3, "a@example.com"); err != nil {
		t.Fatal(err)
	}
	h, err := svc.FindAndHold(2, "b@example.com")
	if h != nil || err != nil {
		t.Errorf("FindAndHold over capacity: want (nil,nil), got (%v,%v)", h, err)
	}
}

func TestReserveCollapsesNotFoundAuthMismatchAndExpired(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	svc := newTestService(t, 1, 4, 5*time.Second, clock)

	// NotFound: an id that was never issued.
	if code, err := svc.Reserve(12345, "a@example.com"); code != "" || err != nil {
		t.Errorf("Reserve(unknown id): want (\"\",nil), got (%q,%v)", code, err)
	}

	h, err := svc.FindAndHold(2, "a@example.com")
	if err != nil || h == nil {
		t.Fatal(err)
	}

	// AuthMismatch: right id, wrong email.
	if code, err := svc.Reserve(h.ID(), "mallory@example.com"); code != "" || err != nil {
		t.Errorf("Reserve(wrong email): want (\"\",nil), got (%q,%v)", code, err)
	}

	clock.Advance(6 * time.Second)
	// Expired: right id and email, but the hold has lapsed.
	if code, err := svc.Reserve(h.ID(), "a@example.com"); code != "" || err != nil {
		t.Errorf("Reserve(expired): want (\"\",nil), got (%q,%v)", code, err)
	}
}

func TestReserveSucceedsAndRemovesHold(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	svc := newTestService(t, 1, 4, time.Minute, clock)
	h, err := svc.FindAndHold(2, "a@example.com")
	if err != nil || h == nil {
		t.Fatal(err)
	}
	code, err := svc.Reserve(h.ID(), "a@example.com")
	if err != nil || code == "" {
		t.Fatalf("Reserve: %q, %v", code, err)
	}
	// reserving the same id again fails: it's no longer a live hold.
	if code2, err := svc.Reserve(h.ID(), "a@example.com"); code2 != "" || err != nil {
		t.Errorf("Reserve(already reserved): want (\"\",nil), got (%q,%v)", code2, err)
	}
}

func TestNumAvailableAccountsForLiveAndExpiredHolds(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	svc := newTestService(t, 2, 3, 5*time.Second, clock)
	if got, want := svc.NumAvailable(), 6; got != want {
		t.Fatalf("NumAvailable() = %d, want %d", got, want)
	}
	if _, err := svc.FindAndHold(4, "a@example.com"); err != nil {
		t.Fatal(err)
	}
	if got, want := svc.NumAvailable(), 2; got != want {
		t.Fatalf("NumAvailable() = %d, want %d", got, want)
	}
	clock.Advance(6 * time.Second)
	if got, want := svc.NumAvailable(), 6; got != want {
		t.Fatalf("NumAvailable() after expiration = %d, want %d", got, want)
	}
}

func TestExpirationObserverFiresOncePerExpiredHold(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	layout, _ := NewLayout(1, 10)
	var expired []int32
	svc := NewService(layout, NewThreePassAllocator(layout), 5*time.Second,
		WithClock(clock),
		WithExpirationObserver(func(h *Hold) { expired = append(expired, h.ID()) }))

	h1, _ := svc.FindAndHold(2, "a@example.com")
	h2, _ := svc.FindAndHold(2, "b@example.com")
	clock.Advance(6 * time.Second)
	svc.NumAvailable()

	if len(expired) != 2 {
		t.Fatalf("expected 2 expired holds, got %d: %v", len(expired), expired)
	}
	if expired[0] != h1.ID() || expired[1] != h2.ID() {
		t.Errorf("expired holds in wrong order: %v", expired)
	}
}

// TestCollisionFreeIdentifiers: two customers at the same millisecond get
// distinct ids, and so does one customer holding twice at the same
// millisecond (salt-and-increment on collision).
func TestCollisionFreeIdentifiers(t *testing.T) {
	clock := NewFakeClock(time.Unix(1000, 0))
	svc := newTestService(t, 10, 10, time.Minute, clock)

	h1, err := svc.FindAndHold(1, "a@example.com")
	if err != nil {
		t.Fatal(err)
	}
	h2, err := svc.FindAndHold(1, "b@example.com")
	if err != nil {
		t.Fatal(err)
	}
	h3, err := svc.FindAndHold(1, "a@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if h1.ID() == h2.ID() {
		t.Errorf("distinct customers at the same instant got the same id: %d", h1.ID())
	}
	if h1.ID() == h3.ID() {
		t.Errorf("the same customer holding twice at the same instant got the same id: %d", h1.ID())
	}
}

// TestConfirmationCodeFixture pins encodeConfirmation to a known
// holdId/code pair so the mask and checksum scheme can never drift without
// a test catching it.
func TestConfirmationCodeFixture(t *testing.T) {
	const holdID int32 = 0x0010F50F
	if got, want := encodeConfirmation(holdID), "CAEE4FB1-6E"; got != want {
		t.Fatalf("encodeConfirmation(%#x) = %q, want %q", holdID, got, want)
	}
}

func TestDecodeConfirmationRoundTrip(t *testing.T) {
	for _, id := range []int32{0, 1, -1, 0x0010F50F, 1 << 30, -(1 << 30)} {
		code := encodeConfirmation(id)
		got, err := DecodeConfirmation(code)
		if err != nil {
			t.Fatalf("DecodeConfirmation(%q): %v", code, err)
		}
		if got != id {
			t.Errorf("DecodeConfirmation(encodeConfirmation(%d)) = %d, want %d", id, got, id)
		}
	}
}

func TestDecodeConfirmationRejectsMalformedInput(t *testing.T) {
	for _, bad := range []string{"", "not-a-code", "CAEE4FB1", "CAEE4FB1-6E-EXTRA"} {
		if _, err := DecodeConfirmation(bad); err == nil {
			t.Errorf("DecodeConfirmation(%q): want error, got nil", bad)
		}
	}
}

func TestAvailabilityConservationAcrossHoldsAndReservations(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	svc := newTestService(t, 4, 5, time.Minute, clock)
	const capacity = 20

	var live []*Hold
	for _, n := range []int{3, 4, 2, 5} {
		h, err := svc.FindAndHold(n, "a@example.com")
		if err != nil || h == nil {
			t.Fatalf("FindAndHold(%d): %v, %v", n, h, err)
		}
		live = append(live, h)
	}

	held := 0
	for _, h := range live {
		held += h.SeatCount()
	}
	if got, want := svc.NumAvailable(), capacity-held; got != want {
		t.Errorf("NumAvailable() = %d, want %d", got, want)
	}

	if _, err := svc.Reserve(live[0].ID(), "a@example.com"); err != nil {
		t.Fatal(err)
	}
	// reserving doesn't change total occupied seats, only who owns them.
	if got, want := svc.NumAvailable(), capacity-held; got != want {
		t.Errorf("NumAvailable() after reserve = %d, want %d", got, want)
	}
}
