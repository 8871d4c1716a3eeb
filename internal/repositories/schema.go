package repositories

import (
	"database/sql"
	"fmt"

	intdb "fleetportal/internal/db"
)

// coreTables is executed at startup; every statement is IF NOT EXISTS so the
// bootstrap stays idempotent against an existing schema.
var coreTables = []string{
	`CREATE TABLE IF NOT EXISTS routes (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	code VARCHAR(50) NOT NULL,
	name VARCHAR(255) NOT NULL,
	duration_minutes INT NOT NULL DEFAULT 0,
	active TINYINT(1) NOT NULL DEFAULT 1,
	UNIQUE KEY uniq_route_code (code)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS route_stops (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	route_id BIGINT NOT NULL,
	stop_order INT NOT NULL,
	station_name VARCHAR(255) NOT NULL,
	distance_km DECIMAL(8,2) NOT NULL DEFAULT 0,
	UNIQUE KEY uniq_route_stop (route_id, stop_order),
	KEY idx_route (route_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS schedules (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	route_id BIGINT NOT NULL,
	start_time VARCHAR(5) NOT NULL,
	end_time VARCHAR(5) NOT NULL,
	interval_minutes INT NOT NULL,
	base_price BIGINT NOT NULL DEFAULT 0,
	active TINYINT(1) NOT NULL DEFAULT 1,
	KEY idx_route (route_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS buses (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	bus_code VARCHAR(50) NOT NULL,
	plate_number VARCHAR(50) NOT NULL,
	capacity INT NOT NULL,
	active TINYINT(1) NOT NULL DEFAULT 1,
	UNIQUE KEY uniq_bus_code (bus_code)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS drivers (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	phone VARCHAR(100),
	license_number VARCHAR(100),
	active TINYINT(1) NOT NULL DEFAULT 1
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS trips (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	route_id BIGINT NOT NULL,
	origin VARCHAR(255) NOT NULL,
	destination VARCHAR(255) NOT NULL,
	bus_id BIGINT NULL,
	driver_id BIGINT NULL,
	departure_time DATETIME NOT NULL,
	arrival_time DATETIME NOT NULL,
	price BIGINT NOT NULL DEFAULT 0,
	status VARCHAR(20) NOT NULL DEFAULT 'SCHEDULED',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_route_departure (route_id, departure_time),
	KEY idx_bus (bus_id),
	KEY idx_driver (driver_id),
	KEY idx_status_departure (status, departure_time)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS trip_seats (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	trip_id BIGINT NOT NULL,
	seat_number INT NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'AVAILABLE',
	booking_id BIGINT NULL,
	UNIQUE KEY uniq_trip_seat (trip_id, seat_number),
	KEY idx_booking (booking_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	trip_id BIGINT NOT NULL,
	passenger_name VARCHAR(255) NOT NULL,
	passenger_phone VARCHAR(100) NOT NULL,
	pickup_location VARCHAR(255),
	dropoff_location VARCHAR(255),
	seat_count INT NOT NULL,
	price_per_seat BIGINT NOT NULL,
	total BIGINT NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'CONFIRMED',
	payment_method VARCHAR(50),
	payment_status VARCHAR(50),
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_trip (trip_id),
	KEY idx_trip_status (trip_id, status)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	username VARCHAR(100) NOT NULL,
	email VARCHAR(255) NOT NULL,
	phone VARCHAR(100),
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(50) NOT NULL DEFAULT 'staff',
	status VARCHAR(50) NOT NULL DEFAULT 'active',
	UNIQUE KEY uniq_username (username),
	UNIQUE KEY uniq_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
}

// EnsureCoreTables bootstraps the schema on startup.
func EnsureCoreTables(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("db tidak tersedia")
	}
	for _, ddl := range coreTables {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	return migrateLegacyColumns(db)
}

// migrateLegacyColumns patches databases created before payment tracking was
// added; CREATE TABLE IF NOT EXISTS skips existing tables so the columns have
// to be checked separately.
func migrateLegacyColumns(db *sql.DB) error {
	if !intdb.HasTable(db, "bookings") {
		return nil
	}
	for col, ddl := range map[string]string{
		"payment_method": `ALTER TABLE bookings ADD COLUMN payment_method VARCHAR(50)`,
		"payment_status": `ALTER TABLE bookings ADD COLUMN payment_status VARCHAR(50)`,
	} {
		if intdb.HasColumn(db, "bookings", col) {
			continue
		}
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}
