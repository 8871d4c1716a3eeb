package services

import (
	"database/sql"
	"fmt"

	intconfig "fleetportal/internal/config"
	"fleetportal/internal/domain"
	"fleetportal/internal/domain/models"
	"fleetportal/internal/repositories"
	"fleetportal/internal/utils"
)

// TripService drives trip status changes and availability queries. Only the
// scheduler or an administrator reaches UpdateStatus; bookings never move a
// trip's status.
type TripService struct {
	TripRepo    repositories.TripRepo
	SeatRepo    repositories.SeatRepo
	BookingRepo repositories.BookingRepo
	DB          *sql.DB
	RequestID   string
}

func (s TripService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s TripService) trips() repositories.TripRepo {
	if s.TripRepo.DB != nil {
		return s.TripRepo
	}
	return repositories.TripRepo{DB: s.db()}
}

func (s TripService) seats() repositories.SeatRepo {
	if s.SeatRepo.DB != nil {
		return s.SeatRepo
	}
	return repositories.SeatRepo{DB: s.db()}
}

func (s TripService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

func (s TripService) GetByID(tripID int64) (models.Trip, error) {
	trip, err := s.trips().GetByID(tripID)
	if err == sql.ErrNoRows {
		return trip, domain.NotFoundError{Resource: "trip"}
	}
	if err != nil {
		return trip, domain.TransientError{Op: "load_trip", Err: err}
	}
	return trip, nil
}

// UpdateStatus validates the transition, then applies it together with its
// side effects in one transaction. Cancelling a trip cascade-cancels its
// bookings and releases every seat atomically.
func (s TripService) UpdateStatus(tripID int64, newStatus models.TripStatus) (models.Trip, error) {
	trip, err := s.GetByID(tripID)
	if err != nil {
		return trip, err
	}

	plan, err := domain.PlanTripTransition(trip.Status, newStatus)
	if err != nil {
		return trip, err
	}

	tx, err := s.db().Begin()
	if err != nil {
		return trip, domain.TransientError{Op: "update_trip_status", Err: err}
	}
	defer tx.Rollback()

	if plan.CancelBookings {
		if err := s.bookings().CancelAllByTrip(tx, tripID); err != nil {
			return trip, domain.TransientError{Op: "cascade_cancel_bookings", Err: err}
		}
	}
	if plan.ReleaseSeats {
		if err := s.seats().ReleaseAllOccupied(tx, tripID); err != nil {
			return trip, domain.TransientError{Op: "cascade_release_seats", Err: err}
		}
	}
	if err := s.trips().SetStatus(tx, tripID, plan.NewStatus); err != nil {
		return trip, domain.TransientError{Op: "update_trip_status", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return trip, domain.TransientError{Op: "update_trip_status", Err: err}
	}

	utils.LogEvent(s.RequestID, "trip", "update_status",
		fmt.Sprintf("trip_id=%d from=%s to=%s cascade=%v", tripID, trip.Status, newStatus, plan.CancelBookings))

	trip.Status = plan.NewStatus
	return trip, nil
}

// TripAvailability answers the passenger-facing question: can this trip be
// booked right now, and which seats are free.
type TripAvailability struct {
	TripID         int64 `json:"tripId"`
	IsBookable     bool  `json:"isBookable"`
	AvailableSeats []int `json:"availableSeatNumbers"`
}

func (s TripService) Availability(tripID int64) (TripAvailability, error) {
	out := TripAvailability{TripID: tripID, AvailableSeats: []int{}}

	trip, err := s.GetByID(tripID)
	if err != nil {
		return out, err
	}

	seats, err := s.seats().AvailableNumbers(tripID)
	if err != nil {
		return out, domain.TransientError{Op: "trip_availability", Err: err}
	}

	out.AvailableSeats = seats
	out.IsBookable = domain.IsBookable(trip, len(seats))
	return out, nil
}

// SeatMap returns every seat row of a trip, occupied ones included.
func (s TripService) SeatMap(tripID int64) ([]models.Seat, error) {
	if _, err := s.GetByID(tripID); err != nil {
		return nil, err
	}
	seats, err := s.seats().ListByTrip(tripID)
	if err != nil {
		return nil, domain.TransientError{Op: "trip_seat_map", Err: err}
	}
	return seats, nil
}

// ActiveBookings lists a trip's PENDING/CONFIRMED bookings for the admin view.
func (s TripService) ActiveBookings(tripID int64) ([]models.Booking, error) {
	if _, err := s.GetByID(tripID); err != nil {
		return nil, err
	}
	bookings, err := s.bookings().ListActiveByTrip(s.db(), tripID)
	if err != nil {
		return nil, domain.TransientError{Op: "trip_bookings", Err: err}
	}
	return bookings, nil
}

func (s TripService) ListActive(f repositories.TripFilter, upcomingOnly bool) ([]models.Trip, error) {
	trips, err := s.trips().ListActive(f)
	if err != nil {
		return nil, domain.TransientError{Op: "list_trips", Err: err}
	}
	if !upcomingOnly {
		return trips, nil
	}
	now := utils.NowLocal()
	out := make([]models.Trip, 0, len(trips))
	for _, t := range trips {
		if domain.IsUpcoming(t, now) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s TripService) ListHistory(f repositories.TripFilter) ([]models.Trip, error) {
	trips, err := s.trips().ListHistory(f)
	if err != nil {
		return nil, domain.TransientError{Op: "list_trip_history", Err: err}
	}
	return trips, nil
}
