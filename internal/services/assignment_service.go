package services

import (
	"database/sql"
	"fmt"

	intconfig "fleetportal/internal/config"
	"fleetportal/internal/domain"
	"fleetportal/internal/domain/models"
	"fleetportal/internal/metrics"
	"fleetportal/internal/repositories"
	"fleetportal/internal/utils"
)

// AssignmentService guards bus/driver assignment against overlapping trips.
// The overlap check always runs for the target trip before anything is
// written, so moving a bus between trips can never leave a window where both
// hold it.
type AssignmentService struct {
	TripRepo  repositories.TripRepo
	FleetRepo repositories.FleetRepo
	SeatRepo  repositories.SeatRepo
	DB        *sql.DB
	RequestID string
}

func (s AssignmentService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s AssignmentService) trips() repositories.TripRepo {
	if s.TripRepo.DB != nil {
		return s.TripRepo
	}
	return repositories.TripRepo{DB: s.db()}
}

func (s AssignmentService) fleet() repositories.FleetRepo {
	if s.FleetRepo.DB != nil {
		return s.FleetRepo
	}
	return repositories.FleetRepo{DB: s.db()}
}

func (s AssignmentService) seats() repositories.SeatRepo {
	if s.SeatRepo.DB != nil {
		return s.SeatRepo
	}
	return repositories.SeatRepo{DB: s.db()}
}

// AssignBus sets the bus and materializes the trip's seats from its capacity
// in the same transaction. Reassignment reconciles seat rows without touching
// occupied ones.
func (s AssignmentService) AssignBus(tripID, busID int64) (models.Trip, error) {
	trip, err := s.loadAssignableTrip(tripID)
	if err != nil {
		return trip, err
	}

	bus, err := s.fleet().GetBus(busID)
	if err == sql.ErrNoRows {
		return trip, domain.NotFoundError{Resource: "bus"}
	}
	if err != nil {
		return trip, domain.TransientError{Op: "assign_bus", Err: err}
	}
	if !bus.Active {
		return trip, domain.ValidationError{Field: "busId", Msg: "bus tidak aktif"}
	}
	if bus.Capacity <= 0 {
		return trip, domain.ValidationError{Field: "busId", Msg: "kapasitas bus tidak valid"}
	}

	conflictID, found, err := s.trips().FindOverlapping("bus", busID, tripID, trip.DepartureTime, trip.ArrivalTime)
	if err != nil {
		return trip, domain.TransientError{Op: "assign_bus", Err: err}
	}
	if found {
		metrics.AssignmentConflicts.Inc()
		return trip, domain.ResourceConflictError{Resource: "bus", ResourceID: busID, ConflictingTripID: conflictID}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return trip, domain.TransientError{Op: "assign_bus", Err: err}
	}
	defer tx.Rollback()

	if err := s.trips().SetBus(tx, tripID, busID); err != nil {
		return trip, domain.TransientError{Op: "assign_bus", Err: err}
	}
	if err := s.seats().Materialize(tx, tripID, bus.Capacity); err != nil {
		return trip, domain.TransientError{Op: "assign_bus", Err: err}
	}
	if err := s.seats().TrimAbove(tx, tripID, bus.Capacity); err != nil {
		return trip, domain.TransientError{Op: "assign_bus", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return trip, domain.TransientError{Op: "assign_bus", Err: err}
	}

	utils.LogEvent(s.RequestID, "assignment", "assign_bus", fmt.Sprintf("trip_id=%d bus_id=%d capacity=%d", tripID, busID, bus.Capacity))
	return s.reload(tripID, trip)
}

func (s AssignmentService) AssignDriver(tripID, driverID int64) (models.Trip, error) {
	trip, err := s.loadAssignableTrip(tripID)
	if err != nil {
		return trip, err
	}

	driver, err := s.fleet().GetDriver(driverID)
	if err == sql.ErrNoRows {
		return trip, domain.NotFoundError{Resource: "driver"}
	}
	if err != nil {
		return trip, domain.TransientError{Op: "assign_driver", Err: err}
	}
	if !driver.Active {
		return trip, domain.ValidationError{Field: "driverId", Msg: "driver tidak aktif"}
	}

	conflictID, found, err := s.trips().FindOverlapping("driver", driverID, tripID, trip.DepartureTime, trip.ArrivalTime)
	if err != nil {
		return trip, domain.TransientError{Op: "assign_driver", Err: err}
	}
	if found {
		metrics.AssignmentConflicts.Inc()
		return trip, domain.ResourceConflictError{Resource: "driver", ResourceID: driverID, ConflictingTripID: conflictID}
	}

	if err := s.trips().SetDriver(s.db(), tripID, driverID); err != nil {
		return trip, domain.TransientError{Op: "assign_driver", Err: err}
	}

	utils.LogEvent(s.RequestID, "assignment", "assign_driver", fmt.Sprintf("trip_id=%d driver_id=%d", tripID, driverID))
	return s.reload(tripID, trip)
}

func (s AssignmentService) loadAssignableTrip(tripID int64) (models.Trip, error) {
	trip, err := s.trips().GetByID(tripID)
	if err == sql.ErrNoRows {
		return trip, domain.NotFoundError{Resource: "trip"}
	}
	if err != nil {
		return trip, domain.TransientError{Op: "load_trip", Err: err}
	}
	if trip.Status == models.TripCompleted || trip.Status == models.TripCancelled {
		return trip, domain.ValidationError{Field: "tripId", Msg: "trip sudah selesai atau dibatalkan"}
	}
	return trip, nil
}

func (s AssignmentService) reload(tripID int64, fallback models.Trip) (models.Trip, error) {
	if trip, err := s.trips().GetByID(tripID); err == nil {
		return trip, nil
	}
	return fallback, nil
}
