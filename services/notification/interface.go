package notification

import (
	"context"

	"travelbook/models"
)

// BookingSummary aliases the shared payload type for callers of this package.
type BookingSummary = models.BookingSummary

// NotificationService dispatches customer notifications. Every call is
// fire-and-forget from the booking engine's perspective.
type NotificationService interface {
	SendBookingCreatedEmail(ctx context.Context, userEmail string, summary BookingSummary) error
}

// EmailSender is the external mail collaborator the worker hands rendered
// messages to. Mail delivery itself lives outside this service.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}
