package booking

import (
	"context"
	"errors"
	"fmt"

	"travelbook/models"
	"travelbook/services/payment"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleProviderEvent verifies a provider webhook and reconciles the matching
// booking. It errors only on an invalid signature or a failed write; events
// this system cannot act on (unknown type, unknown booking, disallowed
// transition) are acknowledged so the provider does not retry-storm them.
// Safe to invoke more than once for the same event.
func (svc *DefaultBookingService) HandleProviderEvent(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := svc.Payment.VerifyEvent(payload, sigHeader)
	if err != nil {
		svc.Logger.Warn("webhook signature verification failed", zap.Error(err))
		return newError(CodeInvalidSignature, "webhook signature verification failed")
	}

	if event.Type != payment.EventCheckoutCompleted {
		svc.Logger.Debug("ignoring provider event", zap.String("type", event.Type))
		return nil
	}

	bookingID := event.Metadata["bookingId"]
	if bookingID == "" {
		svc.Logger.Warn("checkout completed event without bookingId metadata",
			zap.String("sessionId", event.SessionID))
		return nil
	}

	current, err := svc.Repo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			svc.Logger.Warn("checkout completed for unknown booking",
				zap.String("bookingId", bookingID),
				zap.String("sessionId", event.SessionID))
			return nil
		}
		return fmt.Errorf("load booking %s: %w", bookingID, err)
	}

	target := models.State{Booking: models.BookingConfirmed, Payment: models.PaymentPaid}
	if current.State() == target {
		// Redelivery of an already-applied event.
		svc.Logger.Debug("booking already confirmed, ignoring redelivery",
			zap.String("bookingId", bookingID))
		return nil
	}
	if !models.CanTransition(current.State(), target) {
		svc.Logger.Warn("checkout completed event outside allowed transitions",
			zap.String("bookingId", bookingID),
			zap.String("bookingStatus", string(current.BookingStatus)),
			zap.String("paymentStatus", string(current.PaymentStatus)))
		return nil
	}

	paidAmount := event.AmountTotal
	if paidAmount == 0 {
		paidAmount = current.TotalAmount
	}

	set := map[string]interface{}{
		"payment_status": models.PaymentPaid,
		"booking_status": models.BookingConfirmed,
		// Set, never incremented: redelivery converges to the same state.
		"paid_amount": paidAmount,
		"payment_info": &models.PaymentInfo{
			SessionID:       event.SessionID,
			PaymentIntentID: event.PaymentIntentID,
			Amount:          event.AmountTotal,
			Currency:        event.Currency,
		},
	}
	if _, err := svc.Repo.Update(ctx, bookingID, set); err != nil {
		return fmt.Errorf("persist reconciliation for %s: %w", bookingID, err)
	}

	svc.invalidateListCaches(ctx, current.UserID)
	svc.Logger.Info("booking confirmed by provider webhook",
		zap.String("bookingId", bookingID),
		zap.String("sessionId", event.SessionID),
		zap.Float64("paidAmount", paidAmount))
	return nil
}
