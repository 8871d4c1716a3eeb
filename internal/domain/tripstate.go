package domain

import (
	"time"

	"fleetportal/internal/domain/models"
)

// tripTransitions is the full lifecycle:
// SCHEDULED -> IN_PROGRESS -> COMPLETED, SCHEDULED -> CANCELLED,
// SCHEDULED/IN_PROGRESS -> DELAYED -> IN_PROGRESS.
// A status never regresses to an earlier lifecycle state.
var tripTransitions = map[models.TripStatus][]models.TripStatus{
	models.TripScheduled:  {models.TripInProgress, models.TripCancelled, models.TripDelayed},
	models.TripInProgress: {models.TripCompleted, models.TripDelayed},
	models.TripDelayed:    {models.TripInProgress},
	models.TripCompleted:  {},
	models.TripCancelled:  {},
}

func CanTransitionTrip(from, to models.TripStatus) bool {
	for _, next := range tripTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionPlan lists the side effects a status change requires. The caller
// applies them in the same transaction as the status write.
type TransitionPlan struct {
	NewStatus      models.TripStatus
	CancelBookings bool
	ReleaseSeats   bool
}

// PlanTripTransition validates the transition and returns the side effects.
// Cancelling a trip is the one status change that touches bookings: every
// non-cancelled booking is cancelled and its seats released.
func PlanTripTransition(from, to models.TripStatus) (TransitionPlan, error) {
	if !CanTransitionTrip(from, to) {
		return TransitionPlan{}, InvalidTransitionError{Entity: "trip", From: string(from), To: string(to)}
	}
	plan := TransitionPlan{NewStatus: to}
	if to == models.TripCancelled {
		plan.CancelBookings = true
		plan.ReleaseSeats = true
	}
	return plan, nil
}

// IsBookable is the single availability predicate: a trip can take bookings
// only when it is SCHEDULED, fully assigned, and has at least one free seat.
func IsBookable(t models.Trip, availableSeats int) bool {
	return t.Status == models.TripScheduled &&
		t.BusID != nil &&
		t.DriverID != nil &&
		availableSeats > 0
}

// IsUpcoming defines "upcoming trip" once, for search, booking, and reports.
func IsUpcoming(t models.Trip, now time.Time) bool {
	if t.Status == models.TripCompleted || t.Status == models.TripCancelled {
		return false
	}
	return t.DepartureTime.After(now)
}

// Overlaps is the half-open interval test: touching boundaries do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// CanCancelBooking: a booking may only be cancelled while it is CONFIRMED and
// its trip has not moved past SCHEDULED.
func CanCancelBooking(b models.Booking, trip models.Trip) error {
	if b.Status != models.BookingConfirmed {
		return InvalidTransitionError{Entity: "booking", From: string(b.Status), To: string(models.BookingCancelled)}
	}
	if trip.Status != models.TripScheduled {
		return InvalidTransitionError{Entity: "booking", From: string(b.Status), To: string(models.BookingCancelled)}
	}
	return nil
}
