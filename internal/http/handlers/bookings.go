package handlers

import (
	"net/http"

	"fleetportal/internal/domain/models"
	"fleetportal/internal/http/middleware"
	"fleetportal/internal/services"

	"github.com/gin-gonic/gin"
)

type createBookingRequest struct {
	TripID          int64  `json:"tripId" binding:"required"`
	Seats           []int  `json:"seats" binding:"required"`
	PassengerName   string `json:"passengerName" binding:"required"`
	PassengerPhone  string `json:"passengerPhone" binding:"required"`
	PickupLocation  string `json:"pickupLocation"`
	DropoffLocation string `json:"dropoffLocation"`
	PaymentMethod   string `json:"paymentMethod"`
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	booking, err := svc.Create(services.CreateBookingInput{
		TripID: req.TripID,
		Seats:  req.Seats,
		Passenger: models.PassengerInfo{
			Name:            req.PassengerName,
			Phone:           req.PassengerPhone,
			PickupLocation:  req.PickupLocation,
			DropoffLocation: req.DropoffLocation,
			PaymentMethod:   req.PaymentMethod,
		},
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GET /api/bookings/:id
func GetBookingByID(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	booking, err := svc.Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// POST /api/bookings/:id/cancel
func CancelBooking(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	if err := svc.Cancel(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking dibatalkan", "id": id})
}

// GET /api/bookings/:id/e-ticket
func GetBookingETicket(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.GenerateETicket(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
