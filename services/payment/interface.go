// Package payment abstracts the hosted-payment provider behind a port so the
// booking engine depends on a capability, not on the Stripe SDK.
package payment

import "context"

// EventCheckoutCompleted is the only provider event the reconciler acts on.
const EventCheckoutCompleted = "checkout.session.completed"

// CheckoutInput describes one hosted checkout session to create.
type CheckoutInput struct {
	Title           string
	UnitAmountMinor int64 // per-traveler price in the currency's minor unit
	Quantity        int64
	Currency        string
	SuccessURL      string
	CancelURL       string
	Metadata        map[string]string
}

// Session is the provider's response to a session-creation request.
type Session struct {
	ID              string
	URL             string
	PaymentIntentID string
	AmountTotal     float64
	Currency        string
}

// Event is a verified, parsed provider notification.
type Event struct {
	Type            string
	SessionID       string
	PaymentIntentID string
	AmountTotal     float64
	Currency        string
	Metadata        map[string]string
}

// Provider is the hosted-payment collaborator consumed by the booking core.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, in CheckoutInput) (*Session, error)
	// VerifyEvent authenticates a raw webhook payload against its signature
	// header and returns the parsed event. An invalid signature is an error.
	VerifyEvent(payload []byte, sigHeader string) (*Event, error)
}
