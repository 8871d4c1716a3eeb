package repositories

import (
	"database/sql"
	"fmt"
	"time"

	intconfig "fleetportal/internal/config"
	intdb "fleetportal/internal/db"
	"fleetportal/internal/domain/models"
)

type TripRepo struct {
	DB *sql.DB
}

func (r TripRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const tripColumns = `id, route_id, origin, destination, bus_id, driver_id, departure_time, arrival_time, price, status, created_at`

func scanTrip(row interface{ Scan(...any) error }) (models.Trip, error) {
	var t models.Trip
	var busID, driverID sql.NullInt64
	var createdAt sql.NullTime
	err := row.Scan(
		&t.ID, &t.RouteID, &t.Origin, &t.Destination,
		&busID, &driverID,
		&t.DepartureTime, &t.ArrivalTime,
		&t.Price, &t.Status, &createdAt,
	)
	if err != nil {
		return t, err
	}
	if busID.Valid {
		v := busID.Int64
		t.BusID = &v
	}
	if driverID.Valid {
		v := driverID.Int64
		t.DriverID = &v
	}
	if createdAt.Valid {
		t.CreatedAt = createdAt.Time
	}
	return t, nil
}

func (r TripRepo) GetByID(id int64) (models.Trip, error) {
	return r.GetByIDTx(r.db(), id)
}

func (r TripRepo) GetByIDTx(q intdb.Queryer, id int64) (models.Trip, error) {
	row := q.QueryRow(`SELECT `+tripColumns+` FROM trips WHERE id = ?`, id)
	return scanTrip(row)
}

// ExistsByRouteAndDeparture is the generator's idempotency check.
func (r TripRepo) ExistsByRouteAndDeparture(routeID int64, departure time.Time) (bool, error) {
	var id int64
	err := r.db().QueryRow(`
		SELECT id FROM trips
		WHERE route_id = ? AND departure_time = ?
		LIMIT 1`, routeID, departure).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r TripRepo) Insert(t models.Trip) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO trips (route_id, origin, destination, departure_time, arrival_time, price, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW())`,
		t.RouteID, t.Origin, t.Destination, t.DepartureTime, t.ArrivalTime, t.Price, t.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// FindOverlapping looks for another SCHEDULED/IN_PROGRESS trip of the same
// resource whose [departure, arrival) window overlaps (half-open test).
func (r TripRepo) FindOverlapping(resource string, resourceID, excludeTripID int64, departure, arrival time.Time) (int64, bool, error) {
	var col string
	switch resource {
	case "bus":
		col = "bus_id"
	case "driver":
		col = "driver_id"
	default:
		return 0, false, fmt.Errorf("resource tidak dikenal: %s", resource)
	}

	var conflictID int64
	err := r.db().QueryRow(`
		SELECT id FROM trips
		WHERE `+col+` = ?
		  AND id <> ?
		  AND status IN ('SCHEDULED', 'IN_PROGRESS', 'DELAYED')
		  AND departure_time < ?
		  AND ? < arrival_time
		LIMIT 1`,
		resourceID, excludeTripID, arrival, departure).Scan(&conflictID)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return conflictID, true, nil
}

func (r TripRepo) SetBus(q intdb.Queryer, tripID, busID int64) error {
	_, err := q.Exec(`UPDATE trips SET bus_id = ? WHERE id = ?`, busID, tripID)
	return err
}

func (r TripRepo) SetDriver(q intdb.Queryer, tripID, driverID int64) error {
	_, err := q.Exec(`UPDATE trips SET driver_id = ? WHERE id = ?`, driverID, tripID)
	return err
}

func (r TripRepo) SetStatus(q intdb.Queryer, tripID int64, status models.TripStatus) error {
	_, err := q.Exec(`UPDATE trips SET status = ? WHERE id = ?`, status, tripID)
	return err
}

// TripFilter narrows trip listings.
type TripFilter struct {
	Date    string // YYYY-MM-DD on departure_time
	RouteID int64
	Status  string
}

// ListActive excludes archived trips (COMPLETED) and CANCELLED ones; this is
// the query management UIs consume.
func (r TripRepo) ListActive(f TripFilter) ([]models.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE status NOT IN ('COMPLETED', 'CANCELLED')`
	args := []any{}
	if f.Date != "" {
		query += ` AND DATE(departure_time) = ?`
		args = append(args, f.Date)
	}
	if f.RouteID > 0 {
		query += ` AND route_id = ?`
		args = append(args, f.RouteID)
	}
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, f.Status)
	}
	query += ` ORDER BY departure_time ASC`
	return r.listTrips(query, args...)
}

// ListHistory queries all trips regardless of status, newest departures first.
func (r TripRepo) ListHistory(f TripFilter) ([]models.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE 1=1`
	args := []any{}
	if f.Date != "" {
		query += ` AND DATE(departure_time) = ?`
		args = append(args, f.Date)
	}
	if f.RouteID > 0 {
		query += ` AND route_id = ?`
		args = append(args, f.RouteID)
	}
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, f.Status)
	}
	query += ` ORDER BY departure_time DESC LIMIT 500`
	return r.listTrips(query, args...)
}

func (r TripRepo) listTrips(query string, args ...any) ([]models.Trip, error) {
	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
