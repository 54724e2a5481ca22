package booking

import (
	"context"
	"time"

	"travelbook/database/cache"
	bookingRepo "travelbook/database/repository/booking"
	packageRepo "travelbook/database/repository/travelpackage"
	"travelbook/models"
	"travelbook/services/notification"
	"travelbook/services/payment"

	"go.uber.org/zap"
)

// Actor is the authenticated identity a request acts as. Roles come from the
// identity provider and are trusted as-is.
type Actor struct {
	UserID string
	Role   string
}

// IsStaff reports whether the actor may use staff-only operations.
func (a Actor) IsStaff() bool {
	return a.Role == "admin" || a.Role == "staff"
}

// CreateInput carries everything needed to create a booking. The status and
// paid-amount fields are optional initial overrides used by internal paths;
// client-facing handlers leave them zero.
type CreateInput struct {
	UserID        string
	PackageID     string
	Category      string
	TravelDate    time.Time
	TotalTraveler int

	TravelerName  string
	TravelerEmail string

	PaymentStatus models.PaymentStatus
	BookingStatus models.BookingStatus
	PaidAmount    float64
}

// Patch enumerates the only mutable booking fields. Each is independently
// optional; nil means "leave unchanged".
type Patch struct {
	Category      *string
	TravelDate    *time.Time
	TotalTraveler *int
	PaymentStatus *models.PaymentStatus
	PaidAmount    *float64
	BookingStatus *models.BookingStatus
}

func (p Patch) empty() bool {
	return p.Category == nil && p.TravelDate == nil && p.TotalTraveler == nil &&
		p.PaymentStatus == nil && p.PaidAmount == nil && p.BookingStatus == nil
}

// ListPage is one page of bookings plus its pagination metadata.
type ListPage struct {
	Items      []models.Booking  `json:"items"`
	Pagination models.Pagination `json:"pagination"`
}

// CheckoutResult is returned to the client to start the hosted payment flow.
type CheckoutResult struct {
	BookingID string `json:"bookingId"`
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// BookingService is the booking and payment-reconciliation engine.
type BookingService interface {
	CreateBooking(ctx context.Context, in CreateInput) (*models.Booking, error)
	UpdateBooking(ctx context.Context, bookingID string, patch Patch, actor Actor) (*models.Booking, error)
	ListMine(ctx context.Context, userID string, page, limit int) ([]byte, error)
	ListAll(ctx context.Context, filter bookingRepo.AdminFilter, opts bookingRepo.ListOptions) ([]byte, error)
	CreateCheckoutSession(ctx context.Context, in CreateInput) (*CheckoutResult, error)
	HandleProviderEvent(ctx context.Context, payload []byte, sigHeader string) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo        bookingRepo.BookingRepository
	PackageRepo packageRepo.PackageRepository
	Cache       cache.BookingCache
	Payment     payment.Provider
	Notifier    notification.NotificationService
	Logger      *zap.Logger

	CacheTTL        time.Duration
	Currency        string
	SuccessURLBase  string
	CancelURLBase   string
	ProviderTimeout time.Duration
}

func (svc *DefaultBookingService) cacheTTL() time.Duration {
	if svc.CacheTTL <= 0 {
		return 30 * time.Second
	}
	return svc.CacheTTL
}

func (svc *DefaultBookingService) providerTimeout() time.Duration {
	if svc.ProviderTimeout <= 0 {
		return 15 * time.Second
	}
	return svc.ProviderTimeout
}

// invalidateListCaches drops the owner's cached pages and the whole admin
// prefix. Best-effort: the cache layer absorbs its own failures.
func (svc *DefaultBookingService) invalidateListCaches(ctx context.Context, userID string) {
	svc.Cache.Invalidate(ctx, cache.MineScope(userID), cache.AdminScope())
}
