package handlers

import (
	"net/http"

	"travelbook/services/booking"
	"travelbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckoutHandler drives the hosted-payment round trip.
type CheckoutHandler struct {
	svc    booking.BookingService
	logger *zap.Logger
}

func NewCheckoutHandler(svc booking.BookingService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{svc: svc, logger: logger}
}

// CreateCheckoutSession starts a hosted checkout for a validated booking
// intent and returns the provider's redirect URL.
func (h *CheckoutHandler) CreateCheckoutSession(c *gin.Context) {
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
	result, err := h.svc.CreateCheckoutSession(c.Request.Context(), booking.CreateInput{
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
	c.JSON(http.StatusOK, result)
}

// StripeWebhook receives provider events. Signature-valid requests are
// always acknowledged 200 so the provider does not retry events this system
// chooses to ignore.
func (h *CheckoutHandler) StripeWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to read request body", err.Error())
		return
	}
	sigHeader := c.GetHeader("Stripe-Signature")

	if err := h.svc.HandleProviderEvent(c.Request.Context(), payload, sigHeader); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
