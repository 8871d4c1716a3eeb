package domain

import (
	"testing"
	"time"

	"fleetportal/internal/domain/models"
)

func TestTripTransitions(t *testing.T) {
	cases := []struct {
		from, to models.TripStatus
		ok       bool
	}{
		{models.TripScheduled, models.TripInProgress, true},
		{models.TripScheduled, models.TripCancelled, true},
		{models.TripScheduled, models.TripDelayed, true},
		{models.TripScheduled, models.TripCompleted, false},
		{models.TripInProgress, models.TripCompleted, true},
		{models.TripInProgress, models.TripDelayed, true},
		{models.TripInProgress, models.TripScheduled, false},
		{models.TripInProgress, models.TripCancelled, false},
		{models.TripDelayed, models.TripInProgress, true},
		{models.TripDelayed, models.TripCancelled, false},
		{models.TripCompleted, models.TripInProgress, false},
		{models.TripCancelled, models.TripScheduled, false},
	}
	for _, tc := range cases {
		if got := CanTransitionTrip(tc.from, tc.to); got != tc.ok {
			t.Errorf("CanTransitionTrip(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestPlanTripTransitionCancelCascades(t *testing.T) {
	plan, err := PlanTripTransition(models.TripScheduled, models.TripCancelled)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !plan.CancelBookings || !plan.ReleaseSeats {
		t.Fatalf("cancel plan should cascade to bookings and seats, got %+v", plan)
	}

	plan, err = PlanTripTransition(models.TripInProgress, models.TripCompleted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.CancelBookings || plan.ReleaseSeats {
		t.Fatalf("completing a trip must not touch bookings, got %+v", plan)
	}
}

func TestPlanTripTransitionRejectsRegression(t *testing.T) {
	_, err := PlanTripTransition(models.TripCompleted, models.TripScheduled)
	if !IsInvalidTransition(err) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
}

func TestIsBookable(t *testing.T) {
	busID, driverID := int64(1), int64(2)
	trip := models.Trip{Status: models.TripScheduled, BusID: &busID, DriverID: &driverID}

	if !IsBookable(trip, 3) {
		t.Fatal("assigned SCHEDULED trip with free seats should be bookable")
	}
	if IsBookable(trip, 0) {
		t.Fatal("trip with no free seat should not be bookable")
	}

	noBus := trip
	noBus.BusID = nil
	if IsBookable(noBus, 3) {
		t.Fatal("trip without bus should not be bookable")
	}

	delayed := trip
	delayed.Status = models.TripDelayed
	if IsBookable(delayed, 3) {
		t.Fatal("non-SCHEDULED trip should not be bookable")
	}
}

func TestIsUpcoming(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local)
	trip := models.Trip{Status: models.TripScheduled, DepartureTime: now.Add(time.Hour)}

	if !IsUpcoming(trip, now) {
		t.Fatal("future SCHEDULED trip should be upcoming")
	}

	departed := trip
	departed.DepartureTime = now.Add(-time.Hour)
	if IsUpcoming(departed, now) {
		t.Fatal("past trip should not be upcoming")
	}

	cancelled := trip
	cancelled.Status = models.TripCancelled
	if IsUpcoming(cancelled, now) {
		t.Fatal("cancelled trip should not be upcoming")
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	at := func(h int) time.Time { return time.Date(2024, 6, 1, h, 0, 0, 0, time.Local) }

	// 10:00-12:00 vs 11:00-13:00 overlap
	if !Overlaps(at(10), at(12), at(11), at(13)) {
		t.Fatal("expected overlap")
	}
	// 10:00-12:00 vs 12:00-14:00: touching boundary is not overlap
	if Overlaps(at(10), at(12), at(12), at(14)) {
		t.Fatal("touching intervals must not overlap")
	}
	if !Overlaps(at(10), at(14), at(11), at(12)) {
		t.Fatal("contained interval should overlap")
	}
}

func TestCanCancelBooking(t *testing.T) {
	trip := models.Trip{Status: models.TripScheduled}
	booking := models.Booking{Status: models.BookingConfirmed}

	if err := CanCancelBooking(booking, trip); err != nil {
		t.Fatalf("confirmed booking on scheduled trip should be cancellable: %v", err)
	}

	departedTrip := models.Trip{Status: models.TripInProgress}
	if err := CanCancelBooking(booking, departedTrip); !IsInvalidTransition(err) {
		t.Fatalf("expected InvalidTransitionError after departure, got %v", err)
	}

	cancelled := models.Booking{Status: models.BookingCancelled}
	if err := CanCancelBooking(cancelled, trip); !IsInvalidTransition(err) {
		t.Fatalf("expected InvalidTransitionError for cancelled booking, got %v", err)
	}
}
