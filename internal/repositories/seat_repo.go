package repositories

import (
	"database/sql"
	"strings"

	intconfig "fleetportal/internal/config"
	intdb "fleetportal/internal/db"
	"fleetportal/internal/domain"
	"fleetportal/internal/domain/models"
)

type SeatRepo struct {
	DB *sql.DB
}

func (r SeatRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Materialize creates seat rows 1..capacity for a trip. INSERT IGNORE keeps
// it idempotent against rows that already exist (reassignment case).
func (r SeatRepo) Materialize(q intdb.Queryer, tripID int64, capacity int) error {
	for n := 1; n <= capacity; n++ {
		if _, err := q.Exec(`
			INSERT IGNORE INTO trip_seats (trip_id, seat_number, status)
			VALUES (?, ?, 'AVAILABLE')`, tripID, n); err != nil {
			return err
		}
	}
	return nil
}

// TrimAbove removes AVAILABLE seats above the new capacity after a bus swap.
// Occupied seats are never deleted, whatever their number.
func (r SeatRepo) TrimAbove(q intdb.Queryer, tripID int64, capacity int) error {
	_, err := q.Exec(`
		DELETE FROM trip_seats
		WHERE trip_id = ? AND seat_number > ? AND status = 'AVAILABLE'`, tripID, capacity)
	return err
}

func (r SeatRepo) ListByTrip(tripID int64) ([]models.Seat, error) {
	rows, err := r.db().Query(`
		SELECT id, trip_id, seat_number, status, booking_id
		FROM trip_seats
		WHERE trip_id = ?
		ORDER BY seat_number ASC`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Seat{}
	for rows.Next() {
		var s models.Seat
		var bookingID sql.NullInt64
		if err := rows.Scan(&s.ID, &s.TripID, &s.SeatNumber, &s.Status, &bookingID); err != nil {
			return out, err
		}
		if bookingID.Valid {
			v := bookingID.Int64
			s.BookingID = &v
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r SeatRepo) AvailableNumbers(tripID int64) ([]int, error) {
	rows, err := r.db().Query(`
		SELECT seat_number FROM trip_seats
		WHERE trip_id = ? AND status = 'AVAILABLE'
		ORDER BY seat_number ASC`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []int{}
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return out, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r SeatRepo) CountAvailable(tripID int64) (int, error) {
	var n int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM trip_seats
		WHERE trip_id = ? AND status = 'AVAILABLE'`, tripID).Scan(&n)
	return n, err
}

// ExistingNumbers reports which of the requested seat numbers exist for the
// trip, so unknown seats are rejected before any write.
func (r SeatRepo) ExistingNumbers(q intdb.Queryer, tripID int64, seats []int) (map[int]bool, error) {
	if len(seats) == 0 {
		return map[int]bool{}, nil
	}
	query := `SELECT seat_number FROM trip_seats WHERE trip_id = ? AND seat_number IN ` + seatPlaceholders(len(seats))
	rows, err := q.Query(query, seatArgs(tripID, seats)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int]bool{}
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return out, err
		}
		out[n] = true
	}
	return out, rows.Err()
}

// Reserve flips the requested seats AVAILABLE -> OCCUPIED in one conditional
// statement. The row count tells whether every seat was won; on a shortfall
// the losing seats are named so the caller can roll back and retry with the
// rest. Contention is serialized by the storage layer, not in-process.
func (r SeatRepo) Reserve(q intdb.Queryer, tripID, bookingID int64, seats []int) error {
	query := `UPDATE trip_seats SET status = 'OCCUPIED', booking_id = ?
		WHERE trip_id = ? AND status = 'AVAILABLE' AND seat_number IN ` + seatPlaceholders(len(seats))
	args := append([]any{bookingID, tripID}, toAnySlice(seats)...)
	res, err := q.Exec(query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if int(affected) == len(seats) {
		return nil
	}

	lost, err := r.lostSeats(q, tripID, bookingID, seats)
	if err != nil {
		return err
	}
	return domain.SeatUnavailableError{TripID: tripID, Seats: lost}
}

// lostSeats names the requested seats now occupied by someone else.
func (r SeatRepo) lostSeats(q intdb.Queryer, tripID, bookingID int64, seats []int) ([]int, error) {
	query := `SELECT seat_number FROM trip_seats
		WHERE trip_id = ? AND status = 'OCCUPIED'
		  AND (booking_id IS NULL OR booking_id <> ?)
		  AND seat_number IN ` + seatPlaceholders(len(seats)) + `
		ORDER BY seat_number ASC`
	args := append([]any{tripID, bookingID}, toAnySlice(seats)...)
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []int{}
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return out, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Release frees a booking's seats. Releasing an already-AVAILABLE seat is a
// no-op: the booking_id guard makes the statement idempotent.
func (r SeatRepo) Release(q intdb.Queryer, tripID, bookingID int64, seats []int) error {
	if len(seats) == 0 {
		return nil
	}
	query := `UPDATE trip_seats SET status = 'AVAILABLE', booking_id = NULL
		WHERE trip_id = ? AND booking_id = ? AND seat_number IN ` + seatPlaceholders(len(seats))
	args := append([]any{tripID, bookingID}, toAnySlice(seats)...)
	_, err := q.Exec(query, args...)
	return err
}

// ReleaseByBooking frees every seat a booking holds (cancellation path).
func (r SeatRepo) ReleaseByBooking(q intdb.Queryer, tripID, bookingID int64) error {
	_, err := q.Exec(`
		UPDATE trip_seats SET status = 'AVAILABLE', booking_id = NULL
		WHERE trip_id = ? AND booking_id = ?`, tripID, bookingID)
	return err
}

// ReleaseAllOccupied frees every seat on a trip (trip cancellation cascade).
func (r SeatRepo) ReleaseAllOccupied(q intdb.Queryer, tripID int64) error {
	_, err := q.Exec(`
		UPDATE trip_seats SET status = 'AVAILABLE', booking_id = NULL
		WHERE trip_id = ? AND status = 'OCCUPIED'`, tripID)
	return err
}

// NumbersByBooking lists the seat numbers a booking currently holds.
func (r SeatRepo) NumbersByBooking(q intdb.Queryer, bookingID int64) ([]int, error) {
	rows, err := q.Query(`
		SELECT seat_number FROM trip_seats
		WHERE booking_id = ?
		ORDER BY seat_number ASC`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []int{}
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return out, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func seatPlaceholders(n int) string {
	return "(" + strings.TrimSuffix(strings.Repeat("?,", n), ",") + ")"
}

func seatArgs(tripID int64, seats []int) []any {
	return append([]any{tripID}, toAnySlice(seats)...)
}

func toAnySlice(seats []int) []any {
	out := make([]any, 0, len(seats))
	for _, s := range seats {
		out = append(out, s)
	}
	return out
}
