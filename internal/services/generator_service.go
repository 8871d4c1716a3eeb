package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	intconfig "fleetportal/internal/config"
	"fleetportal/internal/domain"
	"fleetportal/internal/domain/models"
	"fleetportal/internal/metrics"
	"fleetportal/internal/repositories"
	"fleetportal/internal/utils"

	"github.com/go-sql-driver/mysql"
)

// GeneratorService turns route schedules into concrete trips for a date.
// Re-running for the same date creates nothing new, and one broken route
// never blocks the others.
type GeneratorService struct {
	RouteRepo repositories.RouteRepo
	TripRepo  repositories.TripRepo
	DB        *sql.DB
	RequestID string
}

type GenerationResult struct {
	Created     int               `json:"created"`
	RouteErrors map[string]string `json:"perRouteErrors,omitempty"`
}

func (s GeneratorService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s GeneratorService) routes() repositories.RouteRepo {
	if s.RouteRepo.DB != nil {
		return s.RouteRepo
	}
	return repositories.RouteRepo{DB: s.db()}
}

func (s GeneratorService) trips() repositories.TripRepo {
	if s.TripRepo.DB != nil {
		return s.TripRepo
	}
	return repositories.TripRepo{DB: s.db()}
}

func (s GeneratorService) GenerateDailyTrips(dateStr string) (GenerationResult, error) {
	result := GenerationResult{RouteErrors: map[string]string{}}

	date, err := utils.ParseDate(dateStr)
	if err != nil {
		return result, domain.ValidationError{Field: "date", Msg: "format tanggal tidak valid (YYYY-MM-DD)"}
	}

	routes, err := s.routes().ListActiveWithSchedule()
	if err != nil {
		return result, domain.TransientError{Op: "generate_trips", Err: err}
	}

	for _, route := range routes {
		created, err := s.generateForRoute(route, date)
		result.Created += created
		if err != nil {
			// isolasi error per rute: rute lain tetap jalan
			result.RouteErrors[route.Code] = err.Error()
		}
	}

	metrics.TripsGenerated.Add(float64(result.Created))
	utils.LogEvent(s.RequestID, "generator", "generate_daily_trips",
		fmt.Sprintf("date=%s created=%d route_errors=%d", dateStr, result.Created, len(result.RouteErrors)))
	return result, nil
}

func (s GeneratorService) generateForRoute(route models.Route, date time.Time) (int, error) {
	sched := route.Schedule
	if sched == nil {
		return 0, fmt.Errorf("schedule aktif tidak ditemukan")
	}
	if sched.IntervalMinutes <= 0 {
		return 0, fmt.Errorf("interval schedule tidak valid: %d", sched.IntervalMinutes)
	}
	if route.DurationMinutes <= 0 {
		return 0, fmt.Errorf("durasi rute tidak valid: %d", route.DurationMinutes)
	}

	start, err := utils.CombineDateClock(date, sched.StartTime)
	if err != nil {
		return 0, err
	}
	end, err := utils.CombineDateClock(date, sched.EndTime)
	if err != nil {
		return 0, err
	}
	if end.Before(start) {
		return 0, fmt.Errorf("jam akhir sebelum jam mulai (%s > %s)", sched.StartTime, sched.EndTime)
	}

	stops, err := s.routes().ListStops(route.ID)
	if err != nil {
		return 0, err
	}
	if len(stops) < 2 {
		return 0, fmt.Errorf("rute butuh minimal 2 stop")
	}
	origin := stops[0].StationName
	destination := stops[len(stops)-1].StationName

	interval := time.Duration(sched.IntervalMinutes) * time.Minute
	duration := time.Duration(route.DurationMinutes) * time.Minute

	created := 0
	for t := start; !t.After(end); t = t.Add(interval) {
		exists, err := s.trips().ExistsByRouteAndDeparture(route.ID, t)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		trip := models.Trip{
			RouteID:       route.ID,
			Origin:        origin,
			Destination:   destination,
			DepartureTime: t,
			ArrivalTime:   t.Add(duration),
			Price:         sched.BasePrice,
			Status:        models.TripScheduled,
		}
		if _, err := s.trips().Insert(trip); err != nil {
			// uniq_route_departure: generator lain menang duluan, bukan error
			var me *mysql.MySQLError
			if errors.As(err, &me) && me.Number == 1062 {
				continue
			}
			return created, err
		}
		created++
	}
	return created, nil
}
