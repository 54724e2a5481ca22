package handlers

import (
	"net/http"

	"travelbook/services/booking"
	"travelbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusForCode maps booking error codes to HTTP statuses.
func statusForCode(code string) int {
	switch code {
	case booking.CodePackageNotFound, booking.CodeBookingNotFound:
		return http.StatusNotFound
	case booking.CodeForbidden:
		return http.StatusForbidden
	case booking.CodePaymentProvider:
		return http.StatusBadGateway
	case booking.CodeInvalidSignature:
		return http.StatusBadRequest
	case booking.CodeCategoryNotOffered, booking.CodeDateNotAvailable, booking.CodeDateInPast,
		booking.CodeInvalidTravelerCount, booking.CodeInvalidTransition, booking.CodeInvalidPatch:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError renders a booking service failure. Typed errors keep
// their message (and valid-date list when present); anything else becomes a
// generic failure so provider/internal detail never leaks.
func respondServiceError(c *gin.Context, err error) {
	if be, ok := booking.AsBookingError(err); ok {
		body := gin.H{"message": be.Message, "code": be.Code}
		if len(be.ValidDates) > 0 {
			body["validDates"] = be.ValidDates
		}
		c.JSON(statusForCode(be.Code), body)
		return
	}
	utils.GetLogger().Error("booking operation failed", zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
}
