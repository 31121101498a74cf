package seating

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Hold is a time-limited, not-yet-committed claim on a set of seats by a
// customer: an identifier, the ordered set of assigned seats, the owning
// customer identity and an expiration instant. Once returned from FindAndHold, a
// Hold is a value snapshot — callers should treat it as immutable; the
// service never hands out the same *Hold pointer it mutates internally.
type Hold struct {
	id        int32
	seats     []Seat // always kept sorted by (row, col), no duplicates
	email     string
	expiresAt time.Time
	createdAt time.Time
}

// ID returns the hold's 32-bit identifier.
func (h *Hold) ID() int32 { return h.id }

// SeatCount returns the number of seats in the hold.
func (h *Hold) SeatCount() int { return len(h.seats) }

// Seats returns the hold's seats in (row, col) order. The returned slice
// must not be mutated by the caller.
func (h *Hold) Seats() []Seat { return h.seats }

// Email returns the owning customer's identity.
func (h *Hold) Email() string { return h.email }

// ExpiresAt returns the instant at which the hold expires.
func (h *Hold) ExpiresAt() time.Time { return h.expiresAt }

// Equal reports whether two holds are equal by (identifier, seat set).
func (h *Hold) Equal(other *Hold) bool {
	if h == nil || other == nil {
		return h == other
	}
	if h.id != other.id || len(h.seats) != len(other.seats) {
		return false
	}
	for i, s := range h.seats {
		if s != other.seats[i] {
			return false
		}
	}
	return true
}

// addRange inserts seats [colLo, colHi] (inclusive) of row into the hold's
// seat set, validating each seat against layout. This is the sole mutation
// primitive an Allocator implementation is permitted to use.
func (h *Hold) addRange(layout Layout, row, colLo, colHi int) error {
	block := make([]Seat, 0, colHi-colLo+1)
	for col := colLo; col <= colHi; col++ {
		s, err := layout.At(row, col)
		if err != nil {
			return err
		}
		block = append(block, s)
	}
	h.seats = mergeSortedSeats(h.seats, block)
	return nil
}

// mergeSortedSeats merges a sorted, already-internally-ordered block of
// seats into an existing sorted seat slice, preserving order. Both inputs
// are assumed free of mutual duplicates (the allocator never offers the
// same seat twice to a single hold).
func mergeSortedSeats(existing, block []Seat) []Seat {
	if len(existing) == 0 {
		return block
	}
	out := make([]Seat, 0, len(existing)+len(block))
	i, j := 0, 0
	for i < len(existing) && j < len(block) {
		if existing[i].Less(block[j]) {
			out = append(out, existing[i])
			i++
		} else {
			out = append(out, block[j])
			j++
		}
	}
	out = append(out, existing[i:]...)
	out = append(out, block[j:]...)
	return out
}

// HashSeats renders the hold's seats as a debugging hash-string of the form
// row1:colA-colB,colC|row2:colD-colE — contiguous columns within a row
// collapse into lo-hi ranges, non-contiguous columns in the same row join
// with commas, and rows join with pipes. Example: seats
// {(2,5),(2,6),(2,9),(3,6),(3,7),(3,8),(3,9)} render as "2:5-6,9|3:6-9".
func (h *Hold) HashSeats() string {
	var sb strings.Builder
	lastRow, lastCol := -1, -1
	pendingRange := false
	first := true
	for _, seat := range h.seats {
		if seat.Row == lastRow {
			oldPendingRange := pendingRange
			pendingRange = seat.Col == lastCol+1
			if !pendingRange {
				maybeAppendDashAndNum(&sb, oldPendingRange, lastCol)
				sb.WriteByte(',')
				sb.WriteString(strconv.Itoa(seat.Col))
			}
		} else {
			maybeAppendDashAndNum(&sb, pendingRange, lastCol)
			pendingRange = false
			if !first {
				sb.WriteByte('|')
			}
			sb.WriteString(strconv.Itoa(seat.Row))
			sb.WriteByte(':')
			sb.WriteString(strconv.Itoa(seat.Col))
		}
		lastRow, lastCol = seat.Row, seat.Col
		first = false
	}
	maybeAppendDashAndNum(&sb, pendingRange, lastCol)
	return sb.String()
}

func maybeAppendDashAndNum(sb *strings.Builder, pendingRange bool, lastNum int) {
	if pendingRange {
		sb.WriteByte('-')
		sb.WriteString(strconv.Itoa(lastNum))
	}
}

// sortSeats is used only by tests that build holds out of band; production
// code always keeps h.seats sorted via addRange/mergeSortedSeats.
func sortSeats(seats []Seat) {
	sort.Slice(seats, func(i, j int) bool { return seats[i].Less(seats[j]) })
}
