package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"fleetportal/internal/domain/models"
	"fleetportal/internal/http/middleware"
	"fleetportal/internal/repositories"
	"fleetportal/internal/services"

	"github.com/gin-gonic/gin"
)

type generateTripsRequest struct {
	Date string `json:"date" binding:"required"`
}

// POST /api/trips/generate
// Dipanggil admin atau cron harian; idempoten untuk tanggal yang sama.
func GenerateTrips(c *gin.Context) {
	var req generateTripsRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.GeneratorService{RequestID: middleware.GetRequestID(c)}
	result, err := svc.GenerateDailyTrips(req.Date)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /api/trips?date=2024-06-01&routeId=1&status=SCHEDULED&upcoming=1
func GetTrips(c *gin.Context) {
	filter := repositories.TripFilter{
		Date:   strings.TrimSpace(c.Query("date")),
		Status: strings.ToUpper(strings.TrimSpace(c.Query("status"))),
	}
	if v := strings.TrimSpace(c.Query("routeId")); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.RouteID = id
		}
	}
	upcomingOnly := c.Query("upcoming") == "1"

	svc := services.TripService{RequestID: middleware.GetRequestID(c)}
	trips, err := svc.ListActive(filter, upcomingOnly)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

// GET /api/trips/history
func GetTripHistory(c *gin.Context) {
	filter := repositories.TripFilter{
		Date:   strings.TrimSpace(c.Query("date")),
		Status: strings.ToUpper(strings.TrimSpace(c.Query("status"))),
	}
	if v := strings.TrimSpace(c.Query("routeId")); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.RouteID = id
		}
	}

	svc := services.TripService{RequestID: middleware.GetRequestID(c)}
	trips, err := svc.ListHistory(filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

// GET /api/trips/:id
func GetTripByID(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	svc := services.TripService{RequestID: middleware.GetRequestID(c)}
	trip, err := svc.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// GET /api/trips/:id/availability
func GetTripAvailability(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	svc := services.TripService{RequestID: middleware.GetRequestID(c)}
	availability, err := svc.Availability(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, availability)
}

// GET /api/trips/:id/seats
func GetTripSeats(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	svc := services.TripService{RequestID: middleware.GetRequestID(c)}
	seats, err := svc.SeatMap(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tripId": id, "seats": seats})
}

// GET /api/trips/:id/bookings
func GetTripBookings(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	svc := services.TripService{RequestID: middleware.GetRequestID(c)}
	bookings, err := svc.ActiveBookings(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tripId": id, "bookings": bookings})
}

type assignBusRequest struct {
	BusID int64 `json:"busId" binding:"required"`
}

// PUT /api/trips/:id/assign-bus
func AssignBus(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var req assignBusRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.AssignmentService{RequestID: middleware.GetRequestID(c)}
	trip, err := svc.AssignBus(id, req.BusID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

type assignDriverRequest struct {
	DriverID int64 `json:"driverId" binding:"required"`
}

// PUT /api/trips/:id/assign-driver
func AssignDriver(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var req assignDriverRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.AssignmentService{RequestID: middleware.GetRequestID(c)}
	trip, err := svc.AssignDriver(id, req.DriverID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

type updateTripStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PUT /api/trips/:id/status
func UpdateTripStatus(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var req updateTripStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	status := models.TripStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	switch status {
	case models.TripScheduled, models.TripInProgress, models.TripCompleted, models.TripCancelled, models.TripDelayed:
	default:
		RespondError(c, http.StatusBadRequest, "status tidak dikenal: "+req.Status, nil)
		return
	}

	svc := services.TripService{RequestID: middleware.GetRequestID(c)}
	trip, err := svc.UpdateStatus(id, status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}
