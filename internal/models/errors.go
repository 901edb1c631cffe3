package models

import "errors"

// Application-level outcomes returned to callers. These are recoverable and
// matched with errors.Is; storage failures are wrapped separately and are
// safe to retry as whole operations.
var (
	// ErrNotFound means the referenced entity is absent or inactive.
	ErrNotFound = errors.New("not found")

	// ErrRouteMismatch means the entity graph is inconsistent, e.g. the seat
	// does not belong to the supplied wagon.
	ErrRouteMismatch = errors.New("route mismatch")

	// ErrSeatUnavailable is the routine contention outcome: someone else
	// holds the seat. Callers retry with a different seat, not the same one.
	ErrSeatUnavailable = errors.New("seat unavailable")

	// ErrInvalidFareInput means a non-positive base fare or multiplier.
	ErrInvalidFareInput = errors.New("invalid fare input")

	// ErrInvalidState means a state-machine transition was attempted from the
	// wrong state, e.g. releasing a free seat.
	ErrInvalidState = errors.New("invalid state")

	// ErrAlreadyPaid means the ticket is already paid; the call changes nothing.
	ErrAlreadyPaid = errors.New("ticket already paid")
)
