package handlers

import (
	"errors"
	"net/http"

	"fleetportal/internal/domain"
	"fleetportal/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
			"message":    message,
		})
		return
	}
	c.JSON(status, resp)
}

// RespondDomainError maps domain errors to HTTP responses. Seat and resource
// conflicts carry structured details so callers can retry intelligently.
func RespondDomainError(c *gin.Context, err error) {
	var seatErr domain.SeatUnavailableError
	var conflictErr domain.ResourceConflictError

	switch {
	case errors.As(err, &seatErr):
		respondError(c, http.StatusConflict, "seat_unavailable", err.Error(), gin.H{
			"tripId": seatErr.TripID,
			"seats":  seatErr.Seats,
		})
	case errors.As(err, &conflictErr):
		respondError(c, http.StatusConflict, "resource_conflict", err.Error(), gin.H{
			"resource":          conflictErr.Resource,
			"resourceId":        conflictErr.ResourceID,
			"conflictingTripId": conflictErr.ConflictingTripID,
		})
	case domain.IsInvalidTransition(err):
		respondError(c, http.StatusUnprocessableEntity, "invalid_transition", err.Error(), nil)
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsTransient(err):
		respondError(c, http.StatusServiceUnavailable, "transient_error", "storage sedang bermasalah, coba ulangi", nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "terjadi kesalahan", nil)
	}
}
