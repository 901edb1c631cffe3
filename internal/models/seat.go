package models

import (
	"time"

	"github.com/google/uuid"
)

// SeatStatus is the per-seat availability state.
//
// free -> held is a compare-and-swap; held -> free happens on cancellation or
// hold expiry; held -> sold happens on payment and is terminal.
type SeatStatus string

const (
	SeatStatusFree SeatStatus = "free"
	SeatStatusHeld SeatStatus = "held"
	SeatStatusSold SeatStatus = "sold"
)

// Seat belongs to exactly one wagon. Seat numbers are a contiguous range
// starting at 1 within the wagon.
type Seat struct {
	ID         int64      `json:"id" db:"id"`
	WagonID    int64      `json:"wagon_id" db:"wagon_id"`
	SeatNumber int        `json:"seat_number" db:"seat_number"`
	Status     SeatStatus `json:"status" db:"status"`
	ClaimToken *uuid.UUID `json:"claim_token,omitempty" db:"claim_token"`
	HeldAt     *time.Time `json:"held_at,omitempty" db:"held_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
