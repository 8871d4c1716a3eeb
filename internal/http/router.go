package api

import (
	"log"
	stdhttp "net/http"
	"time"

	intconfig "fleetportal/internal/config"
	h "fleetportal/internal/http/handlers"
	"fleetportal/internal/http/middleware"
	"fleetportal/internal/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetJWTSecret(env.JWTSecret)
	admin := middleware.RequireAuth([]byte(env.JWTSecret), "admin")

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Metrics(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	if env.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)

		// Routes (master data)
		routes := api.Group("/routes")
		routes.GET("", h.GetRoutes)
		routes.GET("/:id", h.GetRouteByID)
		routes.POST("", admin, h.CreateRoute)
		routes.PUT("/:id/schedule", admin, h.UpsertRouteSchedule)

		// Trips
		trips := api.Group("/trips")
		trips.GET("", h.GetTrips)
		trips.GET("/history", h.GetTripHistory)
		trips.GET("/:id", h.GetTripByID)
		trips.GET("/:id/availability", h.GetTripAvailability)
		trips.GET("/:id/seats", h.GetTripSeats)
		trips.GET("/:id/bookings", admin, h.GetTripBookings)
		trips.POST("/generate", admin, h.GenerateTrips)
		trips.PUT("/:id/assign-bus", admin, h.AssignBus)
		trips.PUT("/:id/assign-driver", admin, h.AssignDriver)
		trips.PUT("/:id/status", admin, h.UpdateTripStatus)

		// Bookings
		bookings := api.Group("/bookings")
		bookings.POST("", h.CreateBooking)
		bookings.GET("/:id", h.GetBookingByID)
		bookings.POST("/:id/cancel", h.CancelBooking)
		bookings.GET("/:id/e-ticket", h.GetBookingETicket)

		// Fleet
		buses := api.Group("/buses")
		buses.GET("", h.GetBuses)
		buses.POST("", admin, h.CreateBus)
		buses.PUT("/:id", admin, h.UpdateBus)
		buses.DELETE("/:id", admin, h.DeleteBus)

		drivers := api.Group("/drivers")
		drivers.GET("", h.GetDrivers)
		drivers.POST("", admin, h.CreateDriver)
		drivers.PUT("/:id", admin, h.UpdateDriver)
		drivers.DELETE("/:id", admin, h.DeleteDriver)
	}

	return r
}
