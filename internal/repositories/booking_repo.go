package repositories

import (
	"database/sql"
	"strings"

	intconfig "fleetportal/internal/config"
	intdb "fleetportal/internal/db"
	"fleetportal/internal/domain/models"
)

type BookingRepo struct {
	DB *sql.DB
}

func (r BookingRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `id, trip_id, passenger_name, passenger_phone, pickup_location, dropoff_location,
	seat_count, price_per_seat, total, status, payment_method, payment_status, created_at`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	var pickup, dropoff, payMethod, payStatus sql.NullString
	var createdAt sql.NullTime
	err := row.Scan(
		&b.ID, &b.TripID, &b.PassengerName, &b.PassengerPhone,
		&pickup, &dropoff,
		&b.SeatCount, &b.PricePerSeat, &b.Total, &b.Status,
		&payMethod, &payStatus, &createdAt,
	)
	if err != nil {
		return b, err
	}
	b.PickupLocation = strings.TrimSpace(pickup.String)
	b.DropoffLocation = strings.TrimSpace(dropoff.String)
	b.PaymentMethod = strings.TrimSpace(payMethod.String)
	b.PaymentStatus = strings.TrimSpace(payStatus.String)
	if createdAt.Valid {
		b.CreatedAt = createdAt.Time
	}
	return b, nil
}

// Insert runs inside the booking transaction; seats are linked to the
// returned id before commit.
func (r BookingRepo) Insert(q intdb.Queryer, b models.Booking) (int64, error) {
	res, err := q.Exec(`
		INSERT INTO bookings (trip_id, passenger_name, passenger_phone, pickup_location, dropoff_location,
			seat_count, price_per_seat, total, status, payment_method, payment_status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`,
		b.TripID, b.PassengerName, b.PassengerPhone,
		intdb.NullIfEmpty(b.PickupLocation), intdb.NullIfEmpty(b.DropoffLocation),
		b.SeatCount, b.PricePerSeat, b.Total, b.Status,
		intdb.NullIfEmpty(b.PaymentMethod), intdb.NullIfEmpty(b.PaymentStatus))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r BookingRepo) GetByID(id int64) (models.Booking, error) {
	return r.GetByIDTx(r.db(), id)
}

func (r BookingRepo) GetByIDTx(q intdb.Queryer, id int64) (models.Booking, error) {
	row := q.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id)
	return scanBooking(row)
}

func (r BookingRepo) SetStatus(q intdb.Queryer, id int64, status models.BookingStatus) error {
	_, err := q.Exec(`UPDATE bookings SET status = ? WHERE id = ?`, status, id)
	return err
}

// ListActiveByTrip returns non-cancelled bookings (PENDING/CONFIRMED).
func (r BookingRepo) ListActiveByTrip(q intdb.Queryer, tripID int64) ([]models.Booking, error) {
	rows, err := q.Query(`
		SELECT `+bookingColumns+` FROM bookings
		WHERE trip_id = ? AND status IN ('PENDING', 'CONFIRMED')
		ORDER BY id ASC`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// CancelAllByTrip is the trip-cancellation cascade on bookings.
func (r BookingRepo) CancelAllByTrip(q intdb.Queryer, tripID int64) error {
	_, err := q.Exec(`
		UPDATE bookings SET status = 'CANCELLED'
		WHERE trip_id = ? AND status IN ('PENDING', 'CONFIRMED')`, tripID)
	return err
}
