package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

var messages = map[string]string{
	"invalid_date":          "Invalid date.",
	"invalid_date_or_time":  "Invalid date or time.",
	"invalid_duration":      "Service duration must be positive.",
	"service_not_found":     "Service not found.",
	"barber_not_found":      "Barber not found.",
	"too_soon":              "This time can no longer be booked.",
	"outside_working_hours": "The barber does not work at this time.",
	"barber_time_off":       "The barber is away on this date.",
	"invalid_reference":     "Barber or service no longer exists.",
	"slot_already_booked":   "This time was just booked. Please choose another slot.",
	"booking_not_found":     "Booking not found.",
	"time_off_not_found":    "Time off not found.",
	"not_booking_owner":     "You cannot change this booking.",
	"invalid_transition":    "This status change is not allowed.",
	"invalid_status":        "Unknown booking status.",
	"not_time_off_owner":    "You cannot change this time off.",
	"duplicate_weekday":     "Each weekday can appear only once.",
	"email_taken":           "This e-mail is already registered.",
}

// Respond writes err using the status of its Kind. Errors outside the
// taxonomy become a 500.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		log.Ctx(c.Request.Context()).Error().Err(err).Msg("unhandled error")
		Internal(c, "internal_error", "Unexpected error.")
		return
	}

	msg, ok := messages[be.Code]
	if !ok {
		msg = be.Code
	}

	switch be.Kind {
	case KindValidation:
		BadRequest(c, be.Code, msg)
	case KindConflict:
		Conflict(c, be.Code, msg)
	case KindNotFound:
		NotFound(c, be.Code, msg)
	case KindForbidden:
		Forbidden(c, be.Code, msg)
	case KindUnavailable:
		log.Ctx(c.Request.Context()).Error().Err(be.Err).Str("op", be.Op).Msg("store unavailable")
		Write(c, http.StatusServiceUnavailable, be.Code, "Could not reach the data store. Please try again.")
	default:
		Internal(c, "internal_error", "Unexpected error.")
	}
}
