package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"travelbook/database/cache"
	bookingRepo "travelbook/database/repository/booking"
	"travelbook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// newBookingID mints a human-facing booking id. Uniqueness is enforced by
// the repository's unique index.
func newBookingID() string {
	return "TB-" + strings.ToUpper(uuid.NewString()[:8])
}

// CreateBooking validates the request against the current package state and
// persists a new booking. The direct path leaves the optional status fields
// zero and lands in pending/pending.
func (svc *DefaultBookingService) CreateBooking(ctx context.Context, in CreateInput) (*models.Booking, error) {
	pkg, err := svc.PackageRepo.FindActiveByID(ctx, in.PackageID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, newError(CodePackageNotFound, "package not found or inactive")
		}
		return nil, fmt.Errorf("load package %s: %w", in.PackageID, err)
	}

	unitPrice, travelDate, err := ValidateBookingInput(pkg, in.Category, in.TravelDate, in.TotalTraveler, false)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		BookingID:     newBookingID(),
		UserID:        in.UserID,
		PackageID:     in.PackageID,
		Category:      strings.ToLower(strings.TrimSpace(in.Category)),
		TotalTraveler: in.TotalTraveler,
		TravelDate:    travelDate,
		TotalAmount:   unitPrice * float64(in.TotalTraveler),
		PaidAmount:    in.PaidAmount,
		PaymentStatus: models.PaymentPending,
		BookingStatus: models.BookingPending,
		TravelerName:  in.TravelerName,
		TravelerEmail: in.TravelerEmail,
		PackageTitle:  pkg.Title,
	}
	if in.PaymentStatus != "" && in.PaymentStatus.Valid() {
		booking.PaymentStatus = in.PaymentStatus
	}
	if in.BookingStatus != "" && in.BookingStatus.Valid() {
		booking.BookingStatus = in.BookingStatus
	}

	if err := svc.Repo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("persist booking %s: %w", booking.BookingID, err)
	}

	svc.invalidateListCaches(ctx, in.UserID)
	svc.Logger.Info("booking created",
		zap.String("bookingId", booking.BookingID),
		zap.String("userId", booking.UserID),
		zap.Float64("totalAmount", booking.TotalAmount))
	return booking, nil
}

// UpdateBooking applies a closed patch to an existing booking. Only the
// owner or staff may update; category/date/count changes re-validate against
// the current package and recompute the total.
func (svc *DefaultBookingService) UpdateBooking(ctx context.Context, bookingID string, patch Patch, actor Actor) (*models.Booking, error) {
	if patch.empty() {
		return nil, newError(CodeInvalidPatch, "no updatable fields in request")
	}

	current, err := svc.Repo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, newError(CodeBookingNotFound, "booking not found")
		}
		return nil, fmt.Errorf("load booking %s: %w", bookingID, err)
	}

	if current.UserID != actor.UserID && !actor.IsStaff() {
		return nil, newError(CodeForbidden, "not allowed to update this booking")
	}

	set := map[string]interface{}{}

	// Pricing-relevant fields re-run the validator against the package as it
	// is now, not as it was at creation.
	category := current.Category
	travelDate := current.TravelDate
	totalTraveler := current.TotalTraveler
	if patch.Category != nil {
		category = *patch.Category
	}
	if patch.TravelDate != nil {
		travelDate = *patch.TravelDate
	}
	if patch.TotalTraveler != nil {
		totalTraveler = *patch.TotalTraveler
	}
	if patch.Category != nil || patch.TravelDate != nil || patch.TotalTraveler != nil {
		pkg, err := svc.PackageRepo.FindActiveByID(ctx, current.PackageID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, newError(CodePackageNotFound, "package not found or inactive")
			}
			return nil, fmt.Errorf("load package %s: %w", current.PackageID, err)
		}
		unitPrice, normalized, err := ValidateBookingInput(pkg, category, travelDate, totalTraveler, actor.IsStaff())
		if err != nil {
			return nil, err
		}
		set["category"] = strings.ToLower(strings.TrimSpace(category))
		set["travel_date"] = normalized
		set["total_traveler"] = totalTraveler
		set["total_amount"] = unitPrice * float64(totalTraveler)
	}

	// Status fields move through the state machine.
	target := current.State()
	if patch.BookingStatus != nil {
		if !patch.BookingStatus.Valid() {
			return nil, newErrorf(CodeInvalidPatch, "unknown booking status %q", *patch.BookingStatus)
		}
		target.Booking = *patch.BookingStatus
	}
	if patch.PaymentStatus != nil {
		if !patch.PaymentStatus.Valid() {
			return nil, newErrorf(CodeInvalidPatch, "unknown payment status %q", *patch.PaymentStatus)
		}
		target.Payment = *patch.PaymentStatus
	}
	if target != current.State() {
		if !models.CanTransition(current.State(), target) {
			return nil, newErrorf(CodeInvalidTransition,
				"cannot move booking from %s/%s to %s/%s",
				current.BookingStatus, current.PaymentStatus, target.Booking, target.Payment)
		}
		set["booking_status"] = target.Booking
		set["payment_status"] = target.Payment
	}

	if patch.PaidAmount != nil {
		if *patch.PaidAmount < 0 {
			return nil, newError(CodeInvalidPatch, "paid amount cannot be negative")
		}
		set["paid_amount"] = *patch.PaidAmount
	}

	if len(set) == 0 {
		return current, nil
	}

	updated, err := svc.Repo.Update(ctx, bookingID, set)
	if err != nil {
		return nil, fmt.Errorf("persist booking update %s: %w", bookingID, err)
	}

	svc.invalidateListCaches(ctx, current.UserID)
	svc.Logger.Info("booking updated",
		zap.String("bookingId", bookingID),
		zap.String("actor", actor.UserID),
		zap.Bool("staff", actor.IsStaff()))
	return updated, nil
}

// ListMine returns one cached page of the user's bookings as JSON.
func (svc *DefaultBookingService) ListMine(ctx context.Context, userID string, page, limit int) ([]byte, error) {
	opts := bookingRepo.ListOptions{Page: page, Limit: limit}.Normalize()
	key := cache.MineKey(userID, opts.Page, opts.Limit)
	return svc.Cache.GetOrCompute(ctx, key, svc.cacheTTL(), func(ctx context.Context) (interface{}, error) {
		items, total, err := svc.Repo.ListByUser(ctx, userID, opts)
		if err != nil {
			return nil, fmt.Errorf("list bookings for user %s: %w", userID, err)
		}
		return ListPage{Items: items, Pagination: models.NewPagination(total, opts.Page, opts.Limit)}, nil
	})
}

// ListAll returns one cached page of the staff view as JSON.
func (svc *DefaultBookingService) ListAll(ctx context.Context, filter bookingRepo.AdminFilter, opts bookingRepo.ListOptions) ([]byte, error) {
	opts = opts.Normalize()
	key := cache.AdminKey(canonicalAdminQuery(filter, opts))
	return svc.Cache.GetOrCompute(ctx, key, svc.cacheTTL(), func(ctx context.Context) (interface{}, error) {
		items, total, err := svc.Repo.ListAll(ctx, filter, opts)
		if err != nil {
			return nil, fmt.Errorf("list all bookings: %w", err)
		}
		return ListPage{Items: items, Pagination: models.NewPagination(total, opts.Page, opts.Limit)}, nil
	})
}

// canonicalAdminQuery serializes the admin filter deterministically so equal
// queries share one cache entry.
func canonicalAdminQuery(f bookingRepo.AdminFilter, o bookingRepo.ListOptions) string {
	from, to := "", ""
	if !f.TravelFrom.IsZero() {
		from = f.TravelFrom.Format("2006-01-02")
	}
	if !f.TravelTo.IsZero() {
		to = f.TravelTo.Format("2006-01-02")
	}
	dir := "asc"
	if o.SortDesc {
		dir = "desc"
	}
	return fmt.Sprintf("bs=%s|ps=%s|from=%s|to=%s|q=%s|sort=%s:%s|p=%d|l=%d",
		f.BookingStatus, f.PaymentStatus, from, to, strings.ToLower(f.Search), o.SortBy, dir, o.Page, o.Limit)
}
