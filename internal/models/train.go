package models

import (
	"time"
)

// Train represents a scheduled departure. The schedule record is immutable
// after creation except for the active flag.
type Train struct {
	ID            int64     `json:"id" db:"id"`
	TrainNumber   string    `json:"train_number" db:"train_number"`
	RouteFrom     string    `json:"route_from" db:"route_from"`
	RouteTo       string    `json:"route_to" db:"route_to"`
	DepartureTime time.Time `json:"departure_time" db:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time" db:"arrival_time"`
	DurationHours int       `json:"duration_hours" db:"duration_hours"`
	BaseFare      float64   `json:"base_fare" db:"base_fare"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// TripSummary is the search result projection: a train plus its wagons and
// the aggregate count of free seats across them.
type TripSummary struct {
	Train
	AvailableSeatCount int     `json:"available_seat_count"`
	Wagons             []Wagon `json:"wagons"`
}

// SearchTrainsRequest carries the route endpoints for a trip search.
type SearchTrainsRequest struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}
