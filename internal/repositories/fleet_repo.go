package repositories

import (
	"database/sql"
	"strings"

	intconfig "fleetportal/internal/config"
	"fleetportal/internal/domain/models"
)

// FleetRepo covers bus and driver reference data. The trip core only reads
// capacity and active flags; the CRUD exists for the management screens.
type FleetRepo struct {
	DB *sql.DB
}

func (r FleetRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r FleetRepo) GetBus(id int64) (models.Bus, error) {
	var b models.Bus
	err := r.db().QueryRow(`
		SELECT id, bus_code, plate_number, capacity, active
		FROM buses WHERE id = ?`, id).
		Scan(&b.ID, &b.BusCode, &b.PlateNumber, &b.Capacity, &b.Active)
	return b, err
}

func (r FleetRepo) ListBuses() ([]models.Bus, error) {
	rows, err := r.db().Query(`
		SELECT id, bus_code, plate_number, capacity, active
		FROM buses ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Bus{}
	for rows.Next() {
		var b models.Bus
		if err := rows.Scan(&b.ID, &b.BusCode, &b.PlateNumber, &b.Capacity, &b.Active); err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r FleetRepo) CreateBus(b models.Bus) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO buses (bus_code, plate_number, capacity, active)
		VALUES (?, ?, ?, ?)`,
		strings.TrimSpace(b.BusCode), strings.TrimSpace(b.PlateNumber), b.Capacity, b.Active)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r FleetRepo) UpdateBus(b models.Bus) error {
	_, err := r.db().Exec(`
		UPDATE buses SET bus_code = ?, plate_number = ?, capacity = ?, active = ?
		WHERE id = ?`,
		strings.TrimSpace(b.BusCode), strings.TrimSpace(b.PlateNumber), b.Capacity, b.Active, b.ID)
	return err
}

func (r FleetRepo) DeleteBus(id int64) error {
	_, err := r.db().Exec(`DELETE FROM buses WHERE id = ?`, id)
	return err
}

func (r FleetRepo) GetDriver(id int64) (models.Driver, error) {
	var d models.Driver
	var phone, license sql.NullString
	err := r.db().QueryRow(`
		SELECT id, name, phone, license_number, active
		FROM drivers WHERE id = ?`, id).
		Scan(&d.ID, &d.Name, &phone, &license, &d.Active)
	if err != nil {
		return d, err
	}
	d.Phone = strings.TrimSpace(phone.String)
	d.LicenseNumber = strings.TrimSpace(license.String)
	return d, nil
}

func (r FleetRepo) ListDrivers() ([]models.Driver, error) {
	rows, err := r.db().Query(`
		SELECT id, name, phone, license_number, active
		FROM drivers ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Driver{}
	for rows.Next() {
		var d models.Driver
		var phone, license sql.NullString
		if err := rows.Scan(&d.ID, &d.Name, &phone, &license, &d.Active); err != nil {
			return out, err
		}
		d.Phone = strings.TrimSpace(phone.String)
		d.LicenseNumber = strings.TrimSpace(license.String)
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r FleetRepo) CreateDriver(d models.Driver) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO drivers (name, phone, license_number, active)
		VALUES (?, ?, ?, ?)`,
		strings.TrimSpace(d.Name), strings.TrimSpace(d.Phone), strings.TrimSpace(d.LicenseNumber), d.Active)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r FleetRepo) UpdateDriver(d models.Driver) error {
	_, err := r.db().Exec(`
		UPDATE drivers SET name = ?, phone = ?, license_number = ?, active = ?
		WHERE id = ?`,
		strings.TrimSpace(d.Name), strings.TrimSpace(d.Phone), strings.TrimSpace(d.LicenseNumber), d.Active, d.ID)
	return err
}

func (r FleetRepo) DeleteDriver(id int64) error {
	_, err := r.db().Exec(`DELETE FROM drivers WHERE id = ?`, id)
	return err
}
