package booking

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"travelbook/database/cache"
	bookingRepo "travelbook/database/repository/booking"
	"travelbook/models"
	"travelbook/services/payment"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// memBookingRepo is an in-memory BookingRepository keyed by bookingId.
type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *memBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if b.BookingDate.IsZero() {
		b.BookingDate = now
	}
	b.UpdatedAt = now
	clone := *b
	r.bookings[b.BookingID] = &clone
	return nil
}

func (r *memBookingRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	clone := *b
	return &clone, nil
}

func (r *memBookingRepo) Update(ctx context.Context, bookingID string, set map[string]interface{}) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	for field, value := range set {
		switch field {
		case "category":
			b.Category = value.(string)
		case "travel_date":
			b.TravelDate = value.(time.Time)
		case "total_traveler":
			b.TotalTraveler = value.(int)
		case "total_amount":
			b.TotalAmount = value.(float64)
		case "paid_amount":
			b.PaidAmount = value.(float64)
		case "payment_status":
			b.PaymentStatus = value.(models.PaymentStatus)
		case "booking_status":
			b.BookingStatus = value.(models.BookingStatus)
		case "payment_info":
			b.PaymentInfo = value.(*models.PaymentInfo)
		}
	}
	b.UpdatedAt = time.Now().UTC()
	clone := *b
	return &clone, nil
}

func (r *memBookingRepo) ListByUser(ctx context.Context, userID string, opts bookingRepo.ListOptions) ([]models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memBookingRepo) ListAll(ctx context.Context, filter bookingRepo.AdminFilter, opts bookingRepo.ListOptions) ([]models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if filter.BookingStatus != "" && b.BookingStatus != filter.BookingStatus {
			continue
		}
		if filter.PaymentStatus != "" && b.PaymentStatus != filter.PaymentStatus {
			continue
		}
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

// memPackageRepo holds fixture packages by id.
type memPackageRepo struct {
	packages map[string]*models.TravelPackage
}

func (r *memPackageRepo) FindActiveByID(ctx context.Context, id string) (*models.TravelPackage, error) {
	pkg, ok := r.packages[id]
	if !ok || !pkg.IsActive {
		return nil, mongo.ErrNoDocuments
	}
	return pkg, nil
}

func (r *memPackageRepo) List(ctx context.Context, page, limit int) ([]models.TravelPackage, int64, error) {
	var out []models.TravelPackage
	for _, pkg := range r.packages {
		out = append(out, *pkg)
	}
	return out, int64(len(out)), nil
}

// memCache is a real in-process cache so tests can observe staleness and
// invalidation, plus a log of invalidated scopes.
type memCache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	invalidated []string
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte)}
}

func (c *memCache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute cache.ComputeFunc) ([]byte, error) {
	c.mu.Lock()
	if data, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return data, nil
	}
	c.mu.Unlock()

	value, err := compute(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.entries[key] = data
	c.mu.Unlock()
	return data, nil
}

func (c *memCache) Invalidate(ctx context.Context, scopes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, scope := range scopes {
		c.invalidated = append(c.invalidated, scope)
		for key := range c.entries {
			if strings.HasPrefix(key, scope) {
				delete(c.entries, key)
			}
		}
	}
}

// fakeProvider scripts the payment collaborator.
type fakeProvider struct {
	session    *payment.Session
	sessionErr error

	event     *payment.Event
	verifyErr error

	lastCheckout payment.CheckoutInput
}

func (p *fakeProvider) CreateCheckoutSession(ctx context.Context, in payment.CheckoutInput) (*payment.Session, error) {
	p.lastCheckout = in
	if p.sessionErr != nil {
		return nil, p.sessionErr
	}
	return p.session, nil
}

func (p *fakeProvider) VerifyEvent(payload []byte, sigHeader string) (*payment.Event, error) {
	if p.verifyErr != nil {
		return nil, p.verifyErr
	}
	return p.event, nil
}

// fakeNotifier records sent summaries.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []models.BookingSummary
}

func (n *fakeNotifier) SendBookingCreatedEmail(ctx context.Context, userEmail string, summary models.BookingSummary) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, summary)
	return nil
}

func adminFilterNone() bookingRepo.AdminFilter {
	return bookingRepo.AdminFilter{}
}

func adminOptsDefault() bookingRepo.ListOptions {
	return bookingRepo.ListOptions{Page: 1, Limit: 10}
}

// futureDate returns today+days at midnight UTC.
func futureDate(days int) time.Time {
	return DateOnly(time.Now().AddDate(0, 0, days))
}

// fixturePackage offers standard (2000) and deluxe (3000) on two future dates.
func fixturePackage() *models.TravelPackage {
	return &models.TravelPackage{
		ID:    "pkg-1",
		Title: "Sundarban Expedition",
		CategoryAndPrice: []models.CategoryPrice{
			{Category: "standard", Price: 2000},
			{Category: "deluxe", Price: 3000},
		},
		AvailableDates: []time.Time{futureDate(10), futureDate(20)},
		IsActive:       true,
	}
}

type testEnv struct {
	svc      *DefaultBookingService
	repo     *memBookingRepo
	cache    *memCache
	provider *fakeProvider
	notifier *fakeNotifier
}

func newTestEnv() *testEnv {
	repo := newMemBookingRepo()
	cache := newMemCache()
	provider := &fakeProvider{}
	notifier := &fakeNotifier{}
	svc := &DefaultBookingService{
		Repo:           repo,
		PackageRepo:    &memPackageRepo{packages: map[string]*models.TravelPackage{"pkg-1": fixturePackage()}},
		Cache:          cache,
		Payment:        provider,
		Notifier:       notifier,
		Logger:         zap.NewNop(),
		Currency:       "usd",
		SuccessURLBase: "http://localhost/success",
		CancelURLBase:  "http://localhost/cancel",
	}
	return &testEnv{svc: svc, repo: repo, cache: cache, provider: provider, notifier: notifier}
}
