package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	"fleetportal/internal/domain/models"
	"fleetportal/internal/repositories"

	"github.com/gin-gonic/gin"
)

type routeStopPayload struct {
	StopOrder   int     `json:"stopOrder" binding:"required"`
	StationName string  `json:"stationName" binding:"required"`
	DistanceKM  float64 `json:"distanceKm"`
}

type routePayload struct {
	Code            string             `json:"code" binding:"required"`
	Name            string             `json:"name" binding:"required"`
	DurationMinutes int                `json:"durationMinutes" binding:"required"`
	Active          bool               `json:"active"`
	Stops           []routeStopPayload `json:"stops" binding:"required"`
}

type schedulePayload struct {
	StartTime       string `json:"startTime" binding:"required"`
	EndTime         string `json:"endTime" binding:"required"`
	IntervalMinutes int    `json:"intervalMinutes" binding:"required"`
	BasePrice       int64  `json:"basePrice" binding:"required"`
	Active          bool   `json:"active"`
}

// GET /api/routes
func GetRoutes(c *gin.Context) {
	repo := repositories.RouteRepo{}
	routes, err := repo.List()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal mengambil data rute", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

// GET /api/routes/:id
func GetRouteByID(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	repo := repositories.RouteRepo{}
	route, err := repo.GetByID(id)
	if err == sql.ErrNoRows {
		RespondError(c, http.StatusNotFound, "rute tidak ditemukan", nil)
		return
	}
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal mengambil data rute", err)
		return
	}
	c.JSON(http.StatusOK, route)
}

// POST /api/routes
func CreateRoute(c *gin.Context) {
	var req routePayload
	if !BindJSONOrError(c, &req) {
		return
	}
	if len(req.Stops) < 2 {
		RespondError(c, http.StatusBadRequest, "rute butuh minimal 2 stop", nil)
		return
	}
	// stop_order harus berurutan mulai dari 1
	for i, stop := range req.Stops {
		if stop.StopOrder != i+1 {
			RespondError(c, http.StatusBadRequest, "stop_order harus berurutan mulai dari 1", nil)
			return
		}
	}

	route := models.Route{
		Code:            strings.TrimSpace(req.Code),
		Name:            strings.TrimSpace(req.Name),
		DurationMinutes: req.DurationMinutes,
		Active:          req.Active,
	}
	for _, stop := range req.Stops {
		route.Stops = append(route.Stops, models.RouteStop{
			StopOrder:   stop.StopOrder,
			StationName: strings.TrimSpace(stop.StationName),
			DistanceKM:  stop.DistanceKM,
		})
	}

	repo := repositories.RouteRepo{}
	id, err := repo.Create(route)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal menyimpan rute", err)
		return
	}
	route.ID = id
	c.JSON(http.StatusCreated, route)
}

// PUT /api/routes/:id/schedule
func UpsertRouteSchedule(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var req schedulePayload
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.IntervalMinutes <= 0 {
		RespondError(c, http.StatusBadRequest, "interval harus lebih dari 0", nil)
		return
	}

	repo := repositories.RouteRepo{}
	if _, err := repo.GetByID(id); err == sql.ErrNoRows {
		RespondError(c, http.StatusNotFound, "rute tidak ditemukan", nil)
		return
	} else if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal mengambil data rute", err)
		return
	}

	sched := models.Schedule{
		RouteID:         id,
		StartTime:       strings.TrimSpace(req.StartTime),
		EndTime:         strings.TrimSpace(req.EndTime),
		IntervalMinutes: req.IntervalMinutes,
		BasePrice:       req.BasePrice,
		Active:          req.Active,
	}
	schedID, err := repo.UpsertSchedule(id, sched)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal menyimpan schedule", err)
		return
	}
	sched.ID = schedID
	c.JSON(http.StatusOK, sched)
}
