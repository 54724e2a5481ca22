package handlers

import (
	"net/http"
	"strconv"
	"time"

	"travelbook/models"
	"travelbook/services/booking"
	"travelbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking engine over HTTP.
type BookingHandler struct {
	svc    booking.BookingService
	logger *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, logger: logger}
}

// actorFrom reads the authenticated identity placed by the auth middleware.
func actorFrom(c *gin.Context) booking.Actor {
	return booking.Actor{
		UserID: c.GetString("userID"),
		Role:   c.GetString("role"),
	}
}

// parseTravelDate accepts "2006-01-02" or RFC 3339.
func parseTravelDate(raw string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

type createBookingRequest struct {
	PackageID     string `json:"packageId" binding:"required"`
	Category      string `json:"category" binding:"required"`
	TravelDate    string `json:"travelDate" binding:"required"`
	TotalTraveler int    `json:"totalTraveler" binding:"required"`
	TravelerName  string `json:"travelerName"`
	TravelerEmail string `json:"travelerEmail"`
}

// CreateBooking handles the direct booking path (no hosted payment).
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	travelDate, ok := parseTravelDate(req.TravelDate)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Invalid travel date", "expected YYYY-MM-DD or RFC3339")
		return
	}

	actor := actorFrom(c)
	result, err := h.svc.CreateBooking(c.Request.Context(), booking.CreateInput{
		UserID:        actor.UserID,
		PackageID:     req.PackageID,
		Category:      req.Category,
		TravelDate:    travelDate,
		TotalTraveler: req.TotalTraveler,
		TravelerName:  req.TravelerName,
		TravelerEmail: req.TravelerEmail,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"bookingId": result.BookingID, "booking": result})
}

// ListMyBookings returns the caller's bookings, newest first.
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	data, err := h.svc.ListMine(c.Request.Context(), c.GetString("userID"), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

type updateBookingRequest struct {
	Category      *string  `json:"category"`
	TravelDate    *string  `json:"travelDate"`
	TotalTraveler *int     `json:"totalTraveler"`
	PaymentStatus *string  `json:"paymentStatus"`
	PaidAmount    *float64 `json:"paidAmount"`
	BookingStatus *string  `json:"bookingStatus"`
}

// UpdateBooking applies a partial update. Owner or staff only; totalAmount
// is recomputed server side, never accepted from the client.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	bookingID := c.Param("bookingId")

	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	patch := booking.Patch{
		Category:      req.Category,
		TotalTraveler: req.TotalTraveler,
		PaidAmount:    req.PaidAmount,
	}
	if req.TravelDate != nil {
		t, ok := parseTravelDate(*req.TravelDate)
		if !ok {
			utils.JSONError(c, http.StatusBadRequest, "Invalid travel date", "expected YYYY-MM-DD or RFC3339")
			return
		}
		patch.TravelDate = &t
	}
	if req.PaymentStatus != nil {
		s := models.PaymentStatus(*req.PaymentStatus)
		patch.PaymentStatus = &s
	}
	if req.BookingStatus != nil {
		s := models.BookingStatus(*req.BookingStatus)
		patch.BookingStatus = &s
	}

	updated, err := h.svc.UpdateBooking(c.Request.Context(), bookingID, patch, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.logger.Debug("booking patched", zap.String("bookingId", bookingID))
	c.JSON(http.StatusOK, gin.H{"booking": updated})
}
