package payment

import (
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testWebhookSecret = "whsec_test_secret"

func checkoutCompletedPayload() []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_1",
		"api_version": %q,
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_test_1",
				"amount_total": 600000,
				"currency": "usd",
				"payment_intent": "pi_test_1",
				"metadata": {"bookingId": "TB-ABC12345", "userId": "u1"}
			}
		}
	}`, stripe.APIVersion))
}

func signedHeader(payload []byte, secret string) string {
	now := time.Now()
	sig := webhook.ComputeSignature(now, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", now.Unix(), hex.EncodeToString(sig))
}

func TestVerifyEvent(t *testing.T) {
	p := NewStripeProvider("sk_test_key", testWebhookSecret, zap.NewNop())

	t.Run("AcceptsSignedCheckoutEvent", func(t *testing.T) {
		payload := checkoutCompletedPayload()
		event, err := p.VerifyEvent(payload, signedHeader(payload, testWebhookSecret))
		require.NoError(t, err)

		assert.Equal(t, EventCheckoutCompleted, event.Type)
		assert.Equal(t, "cs_test_1", event.SessionID)
		assert.Equal(t, "pi_test_1", event.PaymentIntentID)
		assert.Equal(t, 6000.0, event.AmountTotal)
		assert.Equal(t, "usd", event.Currency)
		assert.Equal(t, "TB-ABC12345", event.Metadata["bookingId"])
	})

	t.Run("RejectsWrongSecret", func(t *testing.T) {
		payload := checkoutCompletedPayload()
		_, err := p.VerifyEvent(payload, signedHeader(payload, "whsec_other_secret"))
		assert.Error(t, err)
	})

	t.Run("RejectsTamperedPayload", func(t *testing.T) {
		payload := checkoutCompletedPayload()
		header := signedHeader(payload, testWebhookSecret)
		tampered := append([]byte(nil), payload...)
		tampered[len(tampered)-2] = ' '
		_, err := p.VerifyEvent(tampered, header)
		assert.Error(t, err)
	})

	t.Run("RejectsMissingHeader", func(t *testing.T) {
		_, err := p.VerifyEvent(checkoutCompletedPayload(), "")
		assert.Error(t, err)
	})

	t.Run("PassesThroughOtherEventTypes", func(t *testing.T) {
		payload := []byte(fmt.Sprintf(`{"id":"evt_2","api_version":%q,"type":"payment_intent.created","data":{"object":{}}}`, stripe.APIVersion))
		event, err := p.VerifyEvent(payload, signedHeader(payload, testWebhookSecret))
		require.NoError(t, err)
		assert.Equal(t, "payment_intent.created", event.Type)
		assert.Empty(t, event.SessionID)
	})
}
