package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"travelbook/models"
	"travelbook/services/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCheckoutSession(t *testing.T) {
	ctx := context.Background()

	t.Run("ProvisionalBookingStaysUnpaidUntilWebhook", func(t *testing.T) {
		env := newTestEnv()
		env.provider.session = &payment.Session{
			ID:          "cs_test_1",
			URL:         "https://checkout.example/cs_test_1",
			AmountTotal: 6000,
			Currency:    "usd",
		}

		result, err := env.svc.CreateCheckoutSession(ctx, CreateInput{
			UserID:        "user-1",
			PackageID:     "pkg-1",
			Category:      "Standard",
			TravelDate:    futureDate(10),
			TotalTraveler: 3,
			TravelerEmail: "traveler@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, "cs_test_1", result.SessionID)
		assert.Equal(t, "https://checkout.example/cs_test_1", result.URL)

		stored, err := env.repo.GetByBookingID(ctx, result.BookingID)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentPending, stored.PaymentStatus)
		assert.Equal(t, models.BookingPending, stored.BookingStatus)
		assert.Equal(t, 0.0, stored.PaidAmount)
		assert.Equal(t, 6000.0, stored.TotalAmount)
		require.NotNil(t, stored.PaymentInfo)
		assert.Equal(t, "cs_test_1", stored.PaymentInfo.SessionID)
	})

	t.Run("MetadataCarriesBookingIntent", func(t *testing.T) {
		env := newTestEnv()
		env.provider.session = &payment.Session{ID: "cs_test_2", URL: "https://checkout.example/cs_test_2"}

		result, err := env.svc.CreateCheckoutSession(ctx, CreateInput{
			UserID:        "user-9",
			PackageID:     "pkg-1",
			Category:      "deluxe",
			TravelDate:    futureDate(20),
			TotalTraveler: 2,
		})
		require.NoError(t, err)

		sent := env.provider.lastCheckout
		assert.Equal(t, result.BookingID, sent.Metadata["bookingId"])
		assert.Equal(t, "pkg-1", sent.Metadata["packageId"])
		assert.Equal(t, "user-9", sent.Metadata["userId"])
		assert.Equal(t, "deluxe", sent.Metadata["category"])
		assert.Equal(t, "2", sent.Metadata["totalTraveler"])
		assert.Equal(t, futureDate(20).Format("2006-01-02"), sent.Metadata["travelDate"])
		assert.Equal(t, int64(3000*100), sent.UnitAmountMinor)
		assert.Equal(t, int64(2), sent.Quantity)
		assert.Contains(t, sent.SuccessURL, "bookingId="+result.BookingID)
	})

	t.Run("ProviderFailureLeavesNoRecord", func(t *testing.T) {
		env := newTestEnv()
		env.provider.sessionErr = errors.New("stripe unavailable")

		_, err := env.svc.CreateCheckoutSession(ctx, CreateInput{
			UserID:        "user-1",
			PackageID:     "pkg-1",
			Category:      "standard",
			TravelDate:    futureDate(10),
			TotalTraveler: 2,
		})
		be, ok := AsBookingError(err)
		require.True(t, ok)
		assert.Equal(t, CodePaymentProvider, be.Code)
		assert.Empty(t, env.repo.bookings)
	})

	t.Run("BookingCreatedNotificationDispatched", func(t *testing.T) {
		env := newTestEnv()
		env.provider.session = &payment.Session{ID: "cs_test_3", URL: "https://checkout.example/cs_test_3"}

		result, err := env.svc.CreateCheckoutSession(ctx, CreateInput{
			UserID:        "user-1",
			PackageID:     "pkg-1",
			Category:      "standard",
			TravelDate:    futureDate(10),
			TotalTraveler: 1,
			TravelerEmail: "traveler@example.com",
		})
		require.NoError(t, err)

		// Dispatch is fire-and-forget on a goroutine.
		require.Eventually(t, func() bool {
			env.notifier.mu.Lock()
			defer env.notifier.mu.Unlock()
			return len(env.notifier.sent) == 1
		}, time.Second, 10*time.Millisecond)
		assert.Equal(t, result.BookingID, env.notifier.sent[0].BookingID)
	})
}
