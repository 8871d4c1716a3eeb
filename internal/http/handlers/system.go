package handlers

import (
	"net/http"

	intconfig "fleetportal/internal/config"
	intdb "fleetportal/internal/db"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "fleet portal berjalan"})
}

func DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database belum terhubung: " + err.Error()})
		return
	}

	tables := gin.H{}
	for _, table := range []string{"routes", "schedules", "trips", "trip_seats", "bookings"} {
		tables[table] = intdb.HasTable(intconfig.DB, table)
	}

	var count int
	err := intconfig.DB.QueryRow("SELECT COUNT(*) FROM trips").Scan(&count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal query ke database: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "koneksi database OK", "trips_in_db": count, "tables": tables})
}
