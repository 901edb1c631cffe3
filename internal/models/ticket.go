package models

import (
	"fmt"
	"strings"
	"time"
)

// DiscountClass is the closed set of discount categories. Callers must pass
// an explicit "none"; unknown values are rejected, never defaulted.
type DiscountClass string

const (
	DiscountNone      DiscountClass = "none"
	DiscountChild     DiscountClass = "child"
	DiscountStudent   DiscountClass = "student"
	DiscountPensioner DiscountClass = "pensioner"
)

// ParseDiscountClass validates a discount class string (case-insensitive).
func ParseDiscountClass(s string) (DiscountClass, error) {
	switch DiscountClass(strings.ToLower(strings.TrimSpace(s))) {
	case DiscountNone:
		return DiscountNone, nil
	case DiscountChild:
		return DiscountChild, nil
	case DiscountStudent:
		return DiscountStudent, nil
	case DiscountPensioner:
		return DiscountPensioner, nil
	default:
		return "", fmt.Errorf("unknown discount class: %q", s)
	}
}

// TicketStatus is the ticket lifecycle state.
//
// pending -> paid is terminal; pending -> released (seat freed) is terminal.
// There is no transition out of paid.
type TicketStatus string

const (
	TicketStatusPending  TicketStatus = "pending"
	TicketStatusPaid     TicketStatus = "paid"
	TicketStatusReleased TicketStatus = "released"
)

// Ticket references exactly one train, wagon and seat. Departure and arrival
// times are snapshots taken at booking so later schedule edits never alter an
// issued ticket.
type Ticket struct {
	ID              int64         `json:"id" db:"id"`
	TrainID         int64         `json:"train_id" db:"train_id"`
	WagonID         int64         `json:"wagon_id" db:"wagon_id"`
	SeatID          int64         `json:"seat_id" db:"seat_id"`
	PassengerName   string        `json:"passenger_name" db:"passenger_name"`
	PassengerEmail  string        `json:"passenger_email" db:"passenger_email"`
	PassengerPhone  string        `json:"passenger_phone" db:"passenger_phone"`
	DiscountClass   DiscountClass `json:"discount_class" db:"discount_class"`
	DiscountPercent float64       `json:"discount_percent" db:"discount_percent"`
	BaseFare        float64       `json:"base_fare" db:"base_fare"`
	FinalFare       float64       `json:"final_fare" db:"final_fare"`
	TicketNumber    string        `json:"ticket_number" db:"ticket_number"`
	Status          TicketStatus  `json:"status" db:"status"`
	DepartureTime   time.Time     `json:"departure_time" db:"departure_time"`
	ArrivalTime     time.Time     `json:"arrival_time" db:"arrival_time"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	PaidAt          *time.Time    `json:"paid_at,omitempty" db:"paid_at"`
}

// IsPaid reports whether the ticket has reached its terminal paid state.
func (t *Ticket) IsPaid() bool {
	return t.Status == TicketStatusPaid
}

// FareQuote is the result of pricing a train/wagon/discount combination.
type FareQuote struct {
	BaseFare        float64       `json:"base_fare"`
	FareMultiplier  float64       `json:"fare_multiplier"`
	DiscountClass   DiscountClass `json:"discount_class"`
	DiscountPercent float64       `json:"discount_percent"`
	FinalFare       float64       `json:"final_fare"`
	Currency        string        `json:"currency"`
}

// DiscountRate pairs a discount class with its percent-off rate.
type DiscountRate struct {
	Class   DiscountClass `json:"class"`
	Percent float64       `json:"percent"`
}

// QuoteFareRequest prices a train/wagon combination without reserving anything.
type QuoteFareRequest struct {
	TrainID       int64  `json:"train_id" binding:"required"`
	WagonID       int64  `json:"wagon_id" binding:"required"`
	DiscountClass string `json:"discount_class" binding:"required"`
}

// BookSeatRequest creates a pending ticket and claims the seat.
type BookSeatRequest struct {
	TrainID        int64  `json:"train_id" binding:"required"`
	WagonID        int64  `json:"wagon_id" binding:"required"`
	SeatID         int64  `json:"seat_id" binding:"required"`
	PassengerName  string `json:"passenger_name" binding:"required,min=1,max=200"`
	PassengerEmail string `json:"passenger_email" binding:"required,email"`
	PassengerPhone string `json:"passenger_phone" binding:"required,min=10,max=20"`
	DiscountClass  string `json:"discount_class" binding:"required"`
}

// TicketItinerary is the read-only projection handed to rendering and
// notification collaborators.
type TicketItinerary struct {
	Ticket
	TrainNumber string     `json:"train_number" db:"train_number"`
	RouteFrom   string     `json:"route_from" db:"route_from"`
	RouteTo     string     `json:"route_to" db:"route_to"`
	WagonNumber int        `json:"wagon_number" db:"wagon_number"`
	WagonClass  WagonClass `json:"wagon_class" db:"wagon_class"`
	SeatNumber  int        `json:"seat_number" db:"seat_number"`
}
