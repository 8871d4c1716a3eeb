package services

import (
	"testing"

	intconfig "fleetportal/internal/config"
	"fleetportal/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestGenerateDailyTripsIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	routeRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{
			"id", "code", "name", "duration_minutes",
			"sid", "start_time", "end_time", "interval_minutes", "base_price",
		}).AddRow(1, "JKT-BDG", "Jakarta - Bandung", 120, 1, "07:00", "09:00", 60, 2500)
	}
	stopRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "route_id", "stop_order", "station_name", "distance_km"}).
			AddRow(1, 1, 1, "Terminal Jakarta", 0).
			AddRow(2, 1, 2, "Terminal Bandung", 150)
	}

	// Hari pertama: 07:00, 08:00, 09:00 -> 3 trips baru.
	mock.ExpectQuery("JOIN schedules").WillReturnRows(routeRows())
	mock.ExpectQuery("FROM route_stops").WillReturnRows(stopRows())
	for i := 0; i < 3; i++ {
		mock.ExpectQuery("SELECT id FROM trips").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectExec("INSERT INTO trips").
			WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
	}

	// Rerun tanggal yang sama: semua slot sudah ada -> 0 trip.
	mock.ExpectQuery("JOIN schedules").WillReturnRows(routeRows())
	mock.ExpectQuery("FROM route_stops").WillReturnRows(stopRows())
	for i := 0; i < 3; i++ {
		mock.ExpectQuery("SELECT id FROM trips").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(i + 1)))
	}

	svc := GeneratorService{
		RouteRepo: repositories.RouteRepo{DB: db},
		TripRepo:  repositories.TripRepo{DB: db},
		DB:        db,
	}

	first, err := svc.GenerateDailyTrips("2026-09-01")
	if err != nil {
		t.Fatalf("first run error: %v", err)
	}
	if first.Created != 3 {
		t.Fatalf("first run created = %d, want 3", first.Created)
	}
	if len(first.RouteErrors) != 0 {
		t.Fatalf("first run route errors: %v", first.RouteErrors)
	}

	second, err := svc.GenerateDailyTrips("2026-09-01")
	if err != nil {
		t.Fatalf("second run error: %v", err)
	}
	if second.Created != 0 {
		t.Fatalf("second run created = %d, want 0", second.Created)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGenerateDailyTripsRouteErrorIsolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	// Rute pertama interval 0 (rusak), rute kedua normal dengan satu slot.
	mock.ExpectQuery("JOIN schedules").WillReturnRows(sqlmock.NewRows([]string{
		"id", "code", "name", "duration_minutes",
		"sid", "start_time", "end_time", "interval_minutes", "base_price",
	}).
		AddRow(1, "RUSAK", "Rute Rusak", 90, 1, "07:00", "08:00", 0, 2000).
		AddRow(2, "SEHAT", "Rute Sehat", 60, 2, "10:00", "10:00", 30, 3000))

	mock.ExpectQuery("FROM route_stops").
		WillReturnRows(sqlmock.NewRows([]string{"id", "route_id", "stop_order", "station_name", "distance_km"}).
			AddRow(3, 2, 1, "A", 0).
			AddRow(4, 2, 2, "B", 40))
	mock.ExpectQuery("SELECT id FROM trips").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO trips").
		WillReturnResult(sqlmock.NewResult(10, 1))

	svc := GeneratorService{
		RouteRepo: repositories.RouteRepo{DB: db},
		TripRepo:  repositories.TripRepo{DB: db},
		DB:        db,
	}

	result, err := svc.GenerateDailyTrips("2026-09-01")
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if result.Created != 1 {
		t.Fatalf("created = %d, want 1", result.Created)
	}
	if _, ok := result.RouteErrors["RUSAK"]; !ok {
		t.Fatalf("expected route error for RUSAK, got %v", result.RouteErrors)
	}
	if _, ok := result.RouteErrors["SEHAT"]; ok {
		t.Fatalf("healthy route must not carry an error: %v", result.RouteErrors)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGenerateDailyTripsDuplicateKeyRace(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("JOIN schedules").WillReturnRows(sqlmock.NewRows([]string{
		"id", "code", "name", "duration_minutes",
		"sid", "start_time", "end_time", "interval_minutes", "base_price",
	}).AddRow(1, "JKT-BDG", "Jakarta - Bandung", 120, 1, "07:00", "07:00", 60, 2500))
	mock.ExpectQuery("FROM route_stops").
		WillReturnRows(sqlmock.NewRows([]string{"id", "route_id", "stop_order", "station_name", "distance_km"}).
			AddRow(1, 1, 1, "A", 0).
			AddRow(2, 1, 2, "B", 150))

	// Slot kosong saat dicek, tapi generator lain menang saat insert.
	mock.ExpectQuery("SELECT id FROM trips").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO trips").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	svc := GeneratorService{
		RouteRepo: repositories.RouteRepo{DB: db},
		TripRepo:  repositories.TripRepo{DB: db},
		DB:        db,
	}

	result, err := svc.GenerateDailyTrips("2026-09-01")
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if result.Created != 0 {
		t.Fatalf("created = %d, want 0", result.Created)
	}
	if len(result.RouteErrors) != 0 {
		t.Fatalf("duplicate key must not become a route error: %v", result.RouteErrors)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
