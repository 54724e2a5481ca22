package handlers

import (
	"net/http"
	"strconv"

	bookingRepo "travelbook/database/repository/booking"
	"travelbook/models"
	"travelbook/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler exposes the staff reconciliation surface.
type AdminHandler struct {
	svc    booking.BookingService
	logger *zap.Logger
}

func NewAdminHandler(svc booking.BookingService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, logger: logger}
}

// ListAllBookings returns the filtered staff list. Query parameters:
// bookingStatus, paymentStatus, from, to (travel-date range, YYYY-MM-DD),
// search, sortBy, sortDir, page, limit.
func (h *AdminHandler) ListAllBookings(c *gin.Context) {
	filter := bookingRepo.AdminFilter{
		BookingStatus: models.BookingStatus(c.Query("bookingStatus")),
		PaymentStatus: models.PaymentStatus(c.Query("paymentStatus")),
		Search:        c.Query("search"),
	}
	if raw := c.Query("from"); raw != "" {
		if t, ok := parseTravelDate(raw); ok {
			filter.TravelFrom = t
		}
	}
	if raw := c.Query("to"); raw != "" {
		if t, ok := parseTravelDate(raw); ok {
			filter.TravelTo = t
		}
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	opts := bookingRepo.ListOptions{
		Page:     page,
		Limit:    limit,
		SortBy:   c.Query("sortBy"),
		SortDesc: c.DefaultQuery("sortDir", "desc") != "asc",
	}

	data, err := h.svc.ListAll(c.Request.Context(), filter, opts)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}
