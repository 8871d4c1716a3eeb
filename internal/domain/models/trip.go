package models

import "time"

type TripStatus string

const (
	TripScheduled  TripStatus = "SCHEDULED"
	TripInProgress TripStatus = "IN_PROGRESS"
	TripCompleted  TripStatus = "COMPLETED"
	TripCancelled  TripStatus = "CANCELLED"
	TripDelayed    TripStatus = "DELAYED"
)

// Trip is one concrete dated departure of a route. Price is a snapshot of the
// schedule's base price at generation time; schedule edits never touch it.
type Trip struct {
	ID            int64      `json:"id"`
	RouteID       int64      `json:"routeId"`
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	BusID         *int64     `json:"busId,omitempty"`
	DriverID      *int64     `json:"driverId,omitempty"`
	DepartureTime time.Time  `json:"departureTime"`
	ArrivalTime   time.Time  `json:"arrivalTime"`
	Price         int64      `json:"price"`
	Status        TripStatus `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
}
