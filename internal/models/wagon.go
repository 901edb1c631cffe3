package models

import (
	"fmt"
	"strings"
	"time"
)

// WagonClass is the closed set of wagon classes. Values outside the set are
// rejected at the boundary rather than defaulted.
type WagonClass string

const (
	WagonClassPlatzkart WagonClass = "platzkart"
	WagonClassCoupe     WagonClass = "coupe"
	WagonClassSuite     WagonClass = "suite"
)

// ParseWagonClass validates a wagon class string (case-insensitive).
func ParseWagonClass(s string) (WagonClass, error) {
	switch WagonClass(strings.ToLower(strings.TrimSpace(s))) {
	case WagonClassPlatzkart:
		return WagonClassPlatzkart, nil
	case WagonClassCoupe:
		return WagonClassCoupe, nil
	case WagonClassSuite:
		return WagonClassSuite, nil
	default:
		return "", fmt.Errorf("unknown wagon class: %q", s)
	}
}

// Wagon belongs to exactly one train. WagonNumber is unique within its train.
type Wagon struct {
	ID             int64      `json:"id" db:"id"`
	TrainID        int64      `json:"train_id" db:"train_id"`
	WagonNumber    int        `json:"wagon_number" db:"wagon_number"`
	WagonClass     WagonClass `json:"wagon_class" db:"wagon_class"`
	TotalSeats     int        `json:"total_seats" db:"total_seats"`
	FareMultiplier float64    `json:"fare_multiplier" db:"fare_multiplier"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

// WagonLayout is a wagon together with all of its seats in number order.
type WagonLayout struct {
	Wagon
	Seats []Seat `json:"seats"`
}
