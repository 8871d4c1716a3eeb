package models

// Route is reference data owned by route management; the trip core only reads it.
type Route struct {
	ID              int64       `json:"id"`
	Code            string      `json:"code"`
	Name            string      `json:"name"`
	DurationMinutes int         `json:"durationMinutes"`
	Active          bool        `json:"active"`
	Stops           []RouteStop `json:"stops,omitempty"`
	Schedule        *Schedule   `json:"schedule,omitempty"`
}

// RouteStop: stop_order is contiguous starting at 1; first/last stops define
// trip origin/destination.
type RouteStop struct {
	ID          int64   `json:"id"`
	RouteID     int64   `json:"routeId"`
	StopOrder   int     `json:"stopOrder"`
	StationName string  `json:"stationName"`
	DistanceKM  float64 `json:"distanceKm"`
}

// Schedule is a route's recurring daily operating window.
type Schedule struct {
	ID              int64  `json:"id"`
	RouteID         int64  `json:"routeId"`
	StartTime       string `json:"startTime"` // HH:MM
	EndTime         string `json:"endTime"`   // HH:MM
	IntervalMinutes int    `json:"intervalMinutes"`
	BasePrice       int64  `json:"basePrice"`
	Active          bool   `json:"active"`
}
