package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

// Booking captures a passenger's reservation of one or more seats on a trip.
type Booking struct {
	ID              int64         `json:"id"`
	TripID          int64         `json:"tripId"`
	PassengerName   string        `json:"passengerName"`
	PassengerPhone  string        `json:"passengerPhone"`
	PickupLocation  string        `json:"pickupLocation,omitempty"`
	DropoffLocation string        `json:"dropoffLocation,omitempty"`
	SeatCount       int           `json:"seatCount"`
	PricePerSeat    int64         `json:"pricePerSeat"`
	Total           int64         `json:"total"`
	Status          BookingStatus `json:"status"`
	PaymentMethod   string        `json:"paymentMethod,omitempty"`
	PaymentStatus   string        `json:"paymentStatus,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	Seats           []int         `json:"seats,omitempty"`
}

// PassengerInfo is the contact payload supplied when creating a booking.
type PassengerInfo struct {
	Name            string
	Phone           string
	PickupLocation  string
	DropoffLocation string
	PaymentMethod   string
}
