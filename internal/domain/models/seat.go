package models

type SeatStatus string

const (
	SeatAvailable SeatStatus = "AVAILABLE"
	SeatOccupied  SeatStatus = "OCCUPIED"
)

// Seat belongs to exactly one trip. Status is OCCUPIED iff BookingID points at
// a non-cancelled booking.
type Seat struct {
	ID         int64      `json:"id"`
	TripID     int64      `json:"tripId"`
	SeatNumber int        `json:"seatNumber"`
	Status     SeatStatus `json:"status"`
	BookingID  *int64     `json:"bookingId,omitempty"`
}
