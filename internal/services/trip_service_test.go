package services

import (
	"testing"
	"time"

	intconfig "fleetportal/internal/config"
	"fleetportal/internal/domain"
	"fleetportal/internal/domain/models"
	"fleetportal/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func tripRowWithStatus(tripID int64, status string, dep time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "route_id", "origin", "destination", "bus_id", "driver_id",
		"departure_time", "arrival_time", "price", "status", "created_at",
	}).AddRow(tripID, 1, "Jakarta", "Bandung", int64(3), int64(5),
		dep, dep.Add(2*time.Hour), 2500, status, dep.Add(-24*time.Hour))
}

func TestUpdateStatusCancelCascades(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	dep := time.Now().Add(48 * time.Hour)
	mock.ExpectQuery("FROM trips WHERE id").WithArgs(int64(10)).
		WillReturnRows(tripRowWithStatus(10, "SCHEDULED", dep))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bookings").
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec("UPDATE trip_seats").
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 12))
	mock.ExpectExec("UPDATE trips SET status").
		WithArgs("CANCELLED", int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := TripService{
		TripRepo:    repositories.TripRepo{DB: db},
		SeatRepo:    repositories.SeatRepo{DB: db},
		BookingRepo: repositories.BookingRepo{DB: db},
		DB:          db,
	}

	trip, err := svc.UpdateStatus(10, models.TripCancelled)
	if err != nil {
		t.Fatalf("update status error: %v", err)
	}
	if trip.Status != models.TripCancelled {
		t.Fatalf("status = %s, want CANCELLED", trip.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateStatusNonCancelSkipsCascade(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	dep := time.Now().Add(time.Hour)
	mock.ExpectQuery("FROM trips WHERE id").WithArgs(int64(10)).
		WillReturnRows(tripRowWithStatus(10, "SCHEDULED", dep))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE trips SET status").
		WithArgs("IN_PROGRESS", int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := TripService{
		TripRepo:    repositories.TripRepo{DB: db},
		SeatRepo:    repositories.SeatRepo{DB: db},
		BookingRepo: repositories.BookingRepo{DB: db},
		DB:          db,
	}

	trip, err := svc.UpdateStatus(10, models.TripInProgress)
	if err != nil {
		t.Fatalf("update status error: %v", err)
	}
	if trip.Status != models.TripInProgress {
		t.Fatalf("status = %s, want IN_PROGRESS", trip.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateStatusRejectsTerminalTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	dep := time.Now().Add(-48 * time.Hour)
	mock.ExpectQuery("FROM trips WHERE id").WithArgs(int64(10)).
		WillReturnRows(tripRowWithStatus(10, "COMPLETED", dep))

	svc := TripService{
		TripRepo:    repositories.TripRepo{DB: db},
		SeatRepo:    repositories.SeatRepo{DB: db},
		BookingRepo: repositories.BookingRepo{DB: db},
		DB:          db,
	}

	_, err = svc.UpdateStatus(10, models.TripCancelled)
	if !domain.IsInvalidTransition(err) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAvailabilityListsFreeSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	dep := time.Now().Add(48 * time.Hour)
	mock.ExpectQuery("FROM trips WHERE id").WithArgs(int64(10)).
		WillReturnRows(tripRowWithStatus(10, "SCHEDULED", dep))
	mock.ExpectQuery("SELECT seat_number FROM trip_seats").WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow(1).AddRow(2).AddRow(4))

	svc := TripService{
		TripRepo: repositories.TripRepo{DB: db},
		SeatRepo: repositories.SeatRepo{DB: db},
		DB:       db,
	}

	av, err := svc.Availability(10)
	if err != nil {
		t.Fatalf("availability error: %v", err)
	}
	if !av.IsBookable {
		t.Fatalf("expected bookable trip: %+v", av)
	}
	if len(av.AvailableSeats) != 3 || av.AvailableSeats[2] != 4 {
		t.Fatalf("available seats = %v, want [1 2 4]", av.AvailableSeats)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAvailabilityFullTripNotBookable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	dep := time.Now().Add(48 * time.Hour)
	mock.ExpectQuery("FROM trips WHERE id").WithArgs(int64(10)).
		WillReturnRows(tripRowWithStatus(10, "SCHEDULED", dep))
	mock.ExpectQuery("SELECT seat_number FROM trip_seats").WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}))

	svc := TripService{
		TripRepo: repositories.TripRepo{DB: db},
		SeatRepo: repositories.SeatRepo{DB: db},
		DB:       db,
	}

	av, err := svc.Availability(10)
	if err != nil {
		t.Fatalf("availability error: %v", err)
	}
	if av.IsBookable {
		t.Fatalf("full trip must not be bookable: %+v", av)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
