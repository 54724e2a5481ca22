package booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"travelbook/models"
	"travelbook/services/notification"
	"travelbook/services/payment"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// CreateCheckoutSession validates the booking intent, opens a hosted
// checkout session with the booking id embedded as metadata, and writes a
// provisional pending/pending record. Payment is only believed once the
// provider's webhook confirms it; an abandoned checkout is simply a booking
// that never gets confirmed.
func (svc *DefaultBookingService) CreateCheckoutSession(ctx context.Context, in CreateInput) (*CheckoutResult, error) {
	pkg, err := svc.PackageRepo.FindActiveByID(ctx, in.PackageID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, newError(CodePackageNotFound, "package not found or inactive")
		}
		return nil, fmt.Errorf("load package %s: %w", in.PackageID, err)
	}

	// Never trust a client-submitted price: the checkout path re-validates
	// exactly like the direct path.
	unitPrice, travelDate, err := ValidateBookingInput(pkg, in.Category, in.TravelDate, in.TotalTraveler, false)
	if err != nil {
		return nil, err
	}

	// The id exists before the provider call so reconciliation never needs a
	// lookup keyed by provider-specific identifiers.
	bookingID := newBookingID()
	category := strings.ToLower(strings.TrimSpace(in.Category))
	totalAmount := unitPrice * float64(in.TotalTraveler)

	checkout := payment.CheckoutInput{
		Title:           fmt.Sprintf("%s (%s)", pkg.Title, category),
		UnitAmountMinor: int64(unitPrice * 100),
		Quantity:        int64(in.TotalTraveler),
		Currency:        svc.Currency,
		SuccessURL:      svc.SuccessURLBase + "?bookingId=" + bookingID,
		CancelURL:       svc.CancelURLBase + "?bookingId=" + bookingID,
		Metadata: map[string]string{
			"bookingId":     bookingID,
			"packageId":     in.PackageID,
			"userId":        in.UserID,
			"travelDate":    travelDate.Format("2006-01-02"),
			"category":      category,
			"totalTraveler": strconv.Itoa(in.TotalTraveler),
		},
	}

	sessionCtx, cancel := context.WithTimeout(ctx, svc.providerTimeout())
	defer cancel()
	session, err := svc.Payment.CreateCheckoutSession(sessionCtx, checkout)
	if err != nil {
		svc.Logger.Error("checkout session creation failed",
			zap.String("bookingId", bookingID), zap.Error(err))
		return nil, newError(CodePaymentProvider, "payment provider could not start checkout")
	}

	booking := &models.Booking{
		BookingID:     bookingID,
		UserID:        in.UserID,
		PackageID:     in.PackageID,
		Category:      category,
		TotalTraveler: in.TotalTraveler,
		TravelDate:    travelDate,
		TotalAmount:   totalAmount,
		PaidAmount:    0,
		PaymentStatus: models.PaymentPending,
		BookingStatus: models.BookingPending,
		PaymentInfo: &models.PaymentInfo{
			SessionID:       session.ID,
			PaymentIntentID: session.PaymentIntentID,
			Amount:          session.AmountTotal,
			Currency:        session.Currency,
		},
		TravelerName:  in.TravelerName,
		TravelerEmail: in.TravelerEmail,
		PackageTitle:  pkg.Title,
	}
	if err := svc.Repo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("persist provisional booking %s: %w", bookingID, err)
	}

	svc.invalidateListCaches(ctx, in.UserID)
	svc.notifyBookingCreated(booking)

	svc.Logger.Info("checkout session created",
		zap.String("bookingId", bookingID),
		zap.String("sessionId", session.ID))
	return &CheckoutResult{BookingID: bookingID, SessionID: session.ID, URL: session.URL}, nil
}

// notifyBookingCreated dispatches the booking-created email without blocking
// or failing the caller.
func (svc *DefaultBookingService) notifyBookingCreated(b *models.Booking) {
	if svc.Notifier == nil || b.TravelerEmail == "" {
		return
	}
	summary := notification.BookingSummary{
		BookingID:     b.BookingID,
		PackageTitle:  b.PackageTitle,
		TravelDate:    b.TravelDate.Format("2006-01-02"),
		TotalTraveler: b.TotalTraveler,
		TotalAmount:   b.TotalAmount,
		Currency:      svc.Currency,
	}
	go func() {
		if err := svc.Notifier.SendBookingCreatedEmail(context.Background(), b.TravelerEmail, summary); err != nil {
			svc.Logger.Warn("booking created notification failed",
				zap.String("bookingId", b.BookingID), zap.Error(err))
		}
	}()
}
