package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shaik-ahammad/jas01-new-dental/internal/scheduling"
	"github.com/Shaik-ahammad/jas01-new-dental/internal/utils"
)

// respondSchedulingError maps scheduling engine errors onto HTTP responses.
// Conflicts are the only 409; everything else the caller did wrong is a 400
// or 404 and is never retried server-side.
func respondSchedulingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, scheduling.ErrDoctorNotFound),
		errors.Is(err, scheduling.ErrPatientNotFound),
		errors.Is(err, scheduling.ErrAppointmentNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, scheduling.ErrConflict):
		utils.Conflict(c, err.Error())
	case errors.Is(err, scheduling.ErrInvalidSlot),
		errors.Is(err, scheduling.ErrInvalidConfiguration),
		errors.Is(err, scheduling.ErrInvalidState),
		errors.Is(err, scheduling.ErrAlreadyCancelled):
		utils.BadRequest(c, err.Error())
	default:
		utils.InternalServerError(c, err.Error())
	}
}

// parseDay parses a YYYY-MM-DD query value in the server's location.
func parseDay(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, time.Local)
}

// parseSlotTime combines a YYYY-MM-DD date and an HH:MM wall-clock time.
func parseSlotTime(date, clock string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
}
