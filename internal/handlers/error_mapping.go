package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/restaurant-reservations/internal/domain/menu"
	domain "github.com/BruksfildServices01/restaurant-reservations/internal/domain/reservation"
	"github.com/BruksfildServices01/restaurant-reservations/internal/httperr"
	"github.com/BruksfildServices01/restaurant-reservations/internal/logger"
)

const (
	codeStoreUnavailable = "store_unavailable"
	codeInternal         = "internal_error"
)

// writeError renders a use case error. Store details never reach the client.
func writeError(c *gin.Context, err error) {
	if be, ok := httperr.BusinessCode(err); ok {
		switch be.Code {
		case domain.CodeValidation:
			httperr.BadRequest(c, be.Code, validationMessage(be.Field))
		case domain.CodeInvalidDate:
			httperr.BadRequest(c, be.Code, "Reservation date must be today or in the future")
		case domain.CodeSlotConflict:
			httperr.BadRequest(c, be.Code, "This time slot is already booked")
		case domain.CodeInvalidStatus:
			httperr.BadRequest(c, be.Code, "Invalid status")
		case domain.CodeNotFound:
			httperr.NotFound(c, be.Code, "Reservation not found")
		case menu.CodeInvalidCategory:
			httperr.BadRequest(c, be.Code, "Invalid category")
		case menu.CodeNotFound:
			httperr.NotFound(c, be.Code, "Menu item not found")
		default:
			httperr.BadRequest(c, be.Code, "Invalid request")
		}
		return
	}

	if httperr.IsTransient(err) {
		logger.GetLogger().Warnw("store unavailable",
			"path", c.FullPath(),
			"error", err,
		)
		httperr.Unavailable(c, codeStoreUnavailable, "Service temporarily unavailable, please try again")
		return
	}

	logger.GetLogger().Errorw("unexpected error",
		"path", c.FullPath(),
		"error", err,
	)
	httperr.Internal(c, codeInternal, "Something went wrong")
}

func validationMessage(field string) string {
	if field == "" {
		return "All required fields must be provided"
	}
	return "Missing or invalid field: " + field
}

func badRequestBody(c *gin.Context) {
	httperr.BadRequest(c, domain.CodeValidation, "Invalid request body")
}
