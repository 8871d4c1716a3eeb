package repositories

import (
	"errors"
	"testing"

	intconfig "fleetportal/internal/config"
	"fleetportal/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSeatReserveWinsAllSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	mock.ExpectExec("UPDATE trip_seats").
		WithArgs(int64(7), int64(10), 5, 6).
		WillReturnResult(sqlmock.NewResult(0, 2))

	repo := SeatRepo{DB: db}
	if err := repo.Reserve(db, 10, 7, []int{5, 6}); err != nil {
		t.Fatalf("reserve error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSeatReserveNamesLosingSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	mock.ExpectExec("UPDATE trip_seats").
		WithArgs(int64(7), int64(10), 5, 6).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT seat_number FROM trip_seats").
		WithArgs(int64(10), int64(7), 5, 6).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow(6))

	repo := SeatRepo{DB: db}
	err = repo.Reserve(db, 10, 7, []int{5, 6})

	var suErr domain.SeatUnavailableError
	if !errors.As(err, &suErr) {
		t.Fatalf("expected SeatUnavailableError, got %v", err)
	}
	if suErr.TripID != 10 {
		t.Fatalf("trip id = %d, want 10", suErr.TripID)
	}
	if len(suErr.Seats) != 1 || suErr.Seats[0] != 6 {
		t.Fatalf("losing seats = %v, want [6]", suErr.Seats)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSeatReleaseGuardsByBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	// seat orang lain tidak tersentuh: 0 row affected tetap sukses
	mock.ExpectExec("UPDATE trip_seats").
		WithArgs(int64(10), int64(7), 5).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := SeatRepo{DB: db}
	if err := repo.Release(db, 10, 7, []int{5}); err != nil {
		t.Fatalf("release error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
