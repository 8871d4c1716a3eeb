package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	"fleetportal/internal/domain/models"
	"fleetportal/internal/repositories"

	"github.com/gin-gonic/gin"
)

type busPayload struct {
	BusCode     string `json:"busCode" binding:"required"`
	PlateNumber string `json:"plateNumber" binding:"required"`
	Capacity    int    `json:"capacity" binding:"required"`
	Active      bool   `json:"active"`
}

// GET /api/buses
func GetBuses(c *gin.Context) {
	repo := repositories.FleetRepo{}
	buses, err := repo.ListBuses()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal mengambil data bus", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"buses": buses})
}

// POST /api/buses
func CreateBus(c *gin.Context) {
	var req busPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Capacity <= 0 {
		RespondError(c, http.StatusBadRequest, "kapasitas harus lebih dari 0", nil)
		return
	}

	repo := repositories.FleetRepo{}
	bus := models.Bus{
		BusCode:     strings.TrimSpace(req.BusCode),
		PlateNumber: strings.TrimSpace(req.PlateNumber),
		Capacity:    req.Capacity,
		Active:      req.Active,
	}
	id, err := repo.CreateBus(bus)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal menyimpan bus", err)
		return
	}
	bus.ID = id
	c.JSON(http.StatusCreated, bus)
}

// PUT /api/buses/:id
func UpdateBus(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var req busPayload
	if !BindJSONOrError(c, &req) {
		return
	}

	repo := repositories.FleetRepo{}
	if _, err := repo.GetBus(id); err == sql.ErrNoRows {
		RespondError(c, http.StatusNotFound, "bus tidak ditemukan", nil)
		return
	} else if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal mengambil data bus", err)
		return
	}

	bus := models.Bus{
		ID:          id,
		BusCode:     strings.TrimSpace(req.BusCode),
		PlateNumber: strings.TrimSpace(req.PlateNumber),
		Capacity:    req.Capacity,
		Active:      req.Active,
	}
	if err := repo.UpdateBus(bus); err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal memperbarui bus", err)
		return
	}
	c.JSON(http.StatusOK, bus)
}

// DELETE /api/buses/:id
func DeleteBus(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	repo := repositories.FleetRepo{}
	if err := repo.DeleteBus(id); err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal menghapus bus", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bus dihapus", "id": id})
}

type driverPayload struct {
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"licenseNumber"`
	Active        bool   `json:"active"`
}

// GET /api/drivers
func GetDrivers(c *gin.Context) {
	repo := repositories.FleetRepo{}
	drivers, err := repo.ListDrivers()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal mengambil data driver", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drivers": drivers})
}

// POST /api/drivers
func CreateDriver(c *gin.Context) {
	var req driverPayload
	if !BindJSONOrError(c, &req) {
		return
	}

	repo := repositories.FleetRepo{}
	driver := models.Driver{
		Name:          strings.TrimSpace(req.Name),
		Phone:         strings.TrimSpace(req.Phone),
		LicenseNumber: strings.TrimSpace(req.LicenseNumber),
		Active:        req.Active,
	}
	id, err := repo.CreateDriver(driver)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal menyimpan driver", err)
		return
	}
	driver.ID = id
	c.JSON(http.StatusCreated, driver)
}

// PUT /api/drivers/:id
func UpdateDriver(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var req driverPayload
	if !BindJSONOrError(c, &req) {
		return
	}

	repo := repositories.FleetRepo{}
	if _, err := repo.GetDriver(id); err == sql.ErrNoRows {
		RespondError(c, http.StatusNotFound, "driver tidak ditemukan", nil)
		return
	} else if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal mengambil data driver", err)
		return
	}

	driver := models.Driver{
		ID:            id,
		Name:          strings.TrimSpace(req.Name),
		Phone:         strings.TrimSpace(req.Phone),
		LicenseNumber: strings.TrimSpace(req.LicenseNumber),
		Active:        req.Active,
	}
	if err := repo.UpdateDriver(driver); err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal memperbarui driver", err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

// DELETE /api/drivers/:id
func DeleteDriver(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	repo := repositories.FleetRepo{}
	if err := repo.DeleteDriver(id); err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal menghapus driver", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "driver dihapus", "id": id})
}
