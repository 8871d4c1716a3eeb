package repositories

import (
	"database/sql"
	"strings"

	intconfig "fleetportal/internal/config"
	"fleetportal/internal/domain/models"
)

type RouteRepo struct {
	DB *sql.DB
}

func (r RouteRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ListActiveWithSchedule returns active routes joined with their active
// schedule; routes without one are not generation candidates.
func (r RouteRepo) ListActiveWithSchedule() ([]models.Route, error) {
	rows, err := r.db().Query(`
		SELECT r.id, r.code, r.name, r.duration_minutes,
		       s.id, s.start_time, s.end_time, s.interval_minutes, s.base_price
		FROM routes r
		JOIN schedules s ON s.route_id = r.id AND s.active = 1
		WHERE r.active = 1
		ORDER BY r.id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		var route models.Route
		var sched models.Schedule
		if err := rows.Scan(
			&route.ID, &route.Code, &route.Name, &route.DurationMinutes,
			&sched.ID, &sched.StartTime, &sched.EndTime, &sched.IntervalMinutes, &sched.BasePrice,
		); err != nil {
			return out, err
		}
		route.Active = true
		sched.RouteID = route.ID
		sched.Active = true
		route.Schedule = &sched
		out = append(out, route)
	}
	return out, rows.Err()
}

// ListStops returns a route's stops ordered by stop_order.
func (r RouteRepo) ListStops(routeID int64) ([]models.RouteStop, error) {
	rows, err := r.db().Query(`
		SELECT id, route_id, stop_order, station_name, distance_km
		FROM route_stops
		WHERE route_id = ?
		ORDER BY stop_order ASC`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.RouteStop{}
	for rows.Next() {
		var s models.RouteStop
		if err := rows.Scan(&s.ID, &s.RouteID, &s.StopOrder, &s.StationName, &s.DistanceKM); err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r RouteRepo) List() ([]models.Route, error) {
	rows, err := r.db().Query(`
		SELECT id, code, name, duration_minutes, active
		FROM routes
		ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		var route models.Route
		if err := rows.Scan(&route.ID, &route.Code, &route.Name, &route.DurationMinutes, &route.Active); err != nil {
			return out, err
		}
		out = append(out, route)
	}
	return out, rows.Err()
}

// GetByID loads the route plus stops and its active schedule if any.
func (r RouteRepo) GetByID(id int64) (models.Route, error) {
	var route models.Route
	err := r.db().QueryRow(`
		SELECT id, code, name, duration_minutes, active
		FROM routes
		WHERE id = ?`, id).
		Scan(&route.ID, &route.Code, &route.Name, &route.DurationMinutes, &route.Active)
	if err != nil {
		return route, err
	}

	if stops, err := r.ListStops(id); err == nil {
		route.Stops = stops
	}

	var sched models.Schedule
	err = r.db().QueryRow(`
		SELECT id, route_id, start_time, end_time, interval_minutes, base_price, active
		FROM schedules
		WHERE route_id = ? AND active = 1
		ORDER BY id DESC
		LIMIT 1`, id).
		Scan(&sched.ID, &sched.RouteID, &sched.StartTime, &sched.EndTime, &sched.IntervalMinutes, &sched.BasePrice, &sched.Active)
	if err == nil {
		route.Schedule = &sched
	} else if err != sql.ErrNoRows {
		return route, err
	}
	return route, nil
}

// Create inserts the route and its stops in one transaction.
func (r RouteRepo) Create(route models.Route) (int64, error) {
	tx, err := r.db().Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO routes (code, name, duration_minutes, active)
		VALUES (?, ?, ?, ?)`,
		strings.TrimSpace(route.Code), strings.TrimSpace(route.Name), route.DurationMinutes, route.Active)
	if err != nil {
		return 0, err
	}
	id, _ := res.LastInsertId()

	for _, stop := range route.Stops {
		if _, err := tx.Exec(`
			INSERT INTO route_stops (route_id, stop_order, station_name, distance_km)
			VALUES (?, ?, ?, ?)`,
			id, stop.StopOrder, strings.TrimSpace(stop.StationName), stop.DistanceKM); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// UpsertSchedule deactivates previous schedules and inserts the new one, so a
// route owns at most one active schedule.
func (r RouteRepo) UpsertSchedule(routeID int64, sched models.Schedule) (int64, error) {
	tx, err := r.db().Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE schedules SET active = 0 WHERE route_id = ?`, routeID); err != nil {
		return 0, err
	}

	res, err := tx.Exec(`
		INSERT INTO schedules (route_id, start_time, end_time, interval_minutes, base_price, active)
		VALUES (?, ?, ?, ?, ?, ?)`,
		routeID, strings.TrimSpace(sched.StartTime), strings.TrimSpace(sched.EndTime),
		sched.IntervalMinutes, sched.BasePrice, sched.Active)
	if err != nil {
		return 0, err
	}
	id, _ := res.LastInsertId()

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}
