package seating

// Allocator is the capability contract every seat-placement strategy
// implements. It is not thread-safe: the Service's
// mutex gates all access, and the allocator need not be re-entrant.
type Allocator interface {
	// Allocate deterministically chooses numSeats seats according to the
	// strategy, marks them used in the allocator's private state, and adds
	// them to hold via addRange. It returns false only if the strategy
	// cannot place numSeats seats; the caller (Service) only ever invokes
	// Allocate after confirming numSeats seats are available, so a false
	// return is a contract violation, not an expected outcome.
	Allocate(numSeats int, hold *Hold) bool

	// Release clears every seat in hold from the allocator's private state,
	// making those seats available for future Allocate calls.
	Release(hold *Hold)
}
