package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// StripeProvider implements Provider on the Stripe hosted checkout API.
type StripeProvider struct {
	client        *client.API
	webhookSecret string
	logger        *zap.Logger
}

// NewStripeProvider builds a StripeProvider from the secret API key and the
// webhook signing secret.
func NewStripeProvider(secretKey, webhookSecret string, logger *zap.Logger) *StripeProvider {
	return &StripeProvider{
		client:        client.New(secretKey, nil),
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// CreateCheckoutSession opens a hosted checkout session carrying the booking
// intent as opaque metadata.
func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, in CheckoutInput) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(in.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(in.Title),
					},
					UnitAmount: stripe.Int64(in.UnitAmountMinor),
				},
				Quantity: stripe.Int64(in.Quantity),
			},
		},
	}
	params.Context = ctx
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := p.client.CheckoutSessions.New(params)
	if err != nil {
		p.logger.Error("stripe checkout session creation failed", zap.Error(err))
		return nil, fmt.Errorf("stripe: create checkout session: %w", err)
	}

	out := &Session{
		ID:          s.ID,
		URL:         s.URL,
		AmountTotal: float64(s.AmountTotal) / 100.0,
		Currency:    string(s.Currency),
	}
	if s.PaymentIntent != nil {
		out.PaymentIntentID = s.PaymentIntent.ID
	}
	return out, nil
}

// VerifyEvent checks the Stripe-Signature header against the webhook secret
// and parses the event. Checkout-session payloads are decoded; other event
// types pass through with just their type so callers can ignore them.
func (p *StripeProvider) VerifyEvent(payload []byte, sigHeader string) (*Event, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, p.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("stripe: webhook signature verification: %w", err)
	}

	out := &Event{Type: string(event.Type)}
	if out.Type != EventCheckoutCompleted {
		return out, nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("stripe: decode checkout session event: %w", err)
	}
	out.SessionID = session.ID
	out.AmountTotal = float64(session.AmountTotal) / 100.0
	out.Currency = string(session.Currency)
	out.Metadata = session.Metadata
	if session.PaymentIntent != nil {
		out.PaymentIntentID = session.PaymentIntent.ID
	}
	return out, nil
}
