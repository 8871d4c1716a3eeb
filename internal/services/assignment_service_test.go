package services

import (
	"errors"
	"testing"
	"time"

	intconfig "fleetportal/internal/config"
	"fleetportal/internal/domain"
	"fleetportal/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func tripRowForAssignment(tripID int64, dep, arr time.Time, busID, driverID any) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "route_id", "origin", "destination", "bus_id", "driver_id",
		"departure_time", "arrival_time", "price", "status", "created_at",
	}).AddRow(tripID, 1, "Jakarta", "Bandung", busID, driverID,
		dep, arr, 2500, "SCHEDULED", dep.Add(-24*time.Hour))
}

func TestAssignBusMaterializesSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	dep := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	arr := dep.Add(2 * time.Hour)

	mock.ExpectQuery("FROM trips WHERE id").WithArgs(int64(10)).
		WillReturnRows(tripRowForAssignment(10, dep, arr, nil, nil))
	mock.ExpectQuery("FROM buses WHERE id").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "bus_code", "plate_number", "capacity", "active"}).
			AddRow(3, "BUS-03", "D 1234 XY", 3, true))
	// overlap check: argumen urutannya arrival lalu departure
	mock.ExpectQuery("SELECT id FROM trips").
		WithArgs(int64(3), int64(10), arr, dep).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE trips SET bus_id").
		WithArgs(int64(3), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	for n := 1; n <= 3; n++ {
		mock.ExpectExec("INSERT IGNORE INTO trip_seats").
			WithArgs(int64(10), n).
			WillReturnResult(sqlmock.NewResult(int64(n), 1))
	}
	mock.ExpectExec("DELETE FROM trip_seats").
		WithArgs(int64(10), 3).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	// reload setelah commit
	mock.ExpectQuery("FROM trips WHERE id").WithArgs(int64(10)).
		WillReturnRows(tripRowForAssignment(10, dep, arr, int64(3), nil))

	svc := AssignmentService{
		TripRepo:  repositories.TripRepo{DB: db},
		FleetRepo: repositories.FleetRepo{DB: db},
		SeatRepo:  repositories.SeatRepo{DB: db},
		DB:        db,
	}

	trip, err := svc.AssignBus(10, 3)
	if err != nil {
		t.Fatalf("assign bus error: %v", err)
	}
	if trip.BusID == nil || *trip.BusID != 3 {
		t.Fatalf("bus_id not set on reloaded trip: %+v", trip)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAssignBusRejectsOverlap(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	dep := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	arr := dep.Add(2 * time.Hour)

	mock.ExpectQuery("FROM trips WHERE id").WithArgs(int64(10)).
		WillReturnRows(tripRowForAssignment(10, dep, arr, nil, nil))
	mock.ExpectQuery("FROM buses WHERE id").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "bus_code", "plate_number", "capacity", "active"}).
			AddRow(3, "BUS-03", "D 1234 XY", 40, true))
	mock.ExpectQuery("SELECT id FROM trips").
		WithArgs(int64(3), int64(10), arr, dep).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

	svc := AssignmentService{
		TripRepo:  repositories.TripRepo{DB: db},
		FleetRepo: repositories.FleetRepo{DB: db},
		SeatRepo:  repositories.SeatRepo{DB: db},
		DB:        db,
	}

	_, err = svc.AssignBus(10, 3)
	var rcErr domain.ResourceConflictError
	if !errors.As(err, &rcErr) {
		t.Fatalf("expected ResourceConflictError, got %v", err)
	}
	if rcErr.Resource != "bus" || rcErr.ConflictingTripID != 9 {
		t.Fatalf("conflict payload = %+v", rcErr)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAssignDriverNoOverlap(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	dep := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	arr := dep.Add(2 * time.Hour)

	mock.ExpectQuery("FROM trips WHERE id").WithArgs(int64(10)).
		WillReturnRows(tripRowForAssignment(10, dep, arr, int64(3), nil))
	mock.ExpectQuery("FROM drivers WHERE id").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "license_number", "active"}).
			AddRow(5, "Pak Asep", "0813", "SIM-B2-123", true))
	mock.ExpectQuery("SELECT id FROM trips").
		WithArgs(int64(5), int64(10), arr, dep).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("UPDATE trips SET driver_id").
		WithArgs(int64(5), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM trips WHERE id").WithArgs(int64(10)).
		WillReturnRows(tripRowForAssignment(10, dep, arr, int64(3), int64(5)))

	svc := AssignmentService{
		TripRepo:  repositories.TripRepo{DB: db},
		FleetRepo: repositories.FleetRepo{DB: db},
		SeatRepo:  repositories.SeatRepo{DB: db},
		DB:        db,
	}

	trip, err := svc.AssignDriver(10, 5)
	if err != nil {
		t.Fatalf("assign driver error: %v", err)
	}
	if trip.DriverID == nil || *trip.DriverID != 5 {
		t.Fatalf("driver_id not set on reloaded trip: %+v", trip)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAssignBusRejectsInactiveBus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	dep := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	mock.ExpectQuery("FROM trips WHERE id").WithArgs(int64(10)).
		WillReturnRows(tripRowForAssignment(10, dep, dep.Add(2*time.Hour), nil, nil))
	mock.ExpectQuery("FROM buses WHERE id").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "bus_code", "plate_number", "capacity", "active"}).
			AddRow(3, "BUS-03", "D 1234 XY", 40, false))

	svc := AssignmentService{
		TripRepo:  repositories.TripRepo{DB: db},
		FleetRepo: repositories.FleetRepo{DB: db},
		SeatRepo:  repositories.SeatRepo{DB: db},
		DB:        db,
	}

	_, err = svc.AssignBus(10, 3)
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
