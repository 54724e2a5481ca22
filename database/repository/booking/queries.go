package bookingRepo

import (
	"context"
	"time"

	"travelbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListByUser returns one page of a user's bookings plus the total count,
// newest first unless the caller overrides the sort.
func (r *mongoBookingRepo) ListByUser(ctx context.Context, userID string, opts ListOptions) ([]models.Booking, int64, error) {
	return r.list(ctx, bson.M{"user_id": userID}, opts)
}

// ListAll returns one page of the staff view with all filters applied.
func (r *mongoBookingRepo) ListAll(ctx context.Context, filter AdminFilter, opts ListOptions) ([]models.Booking, int64, error) {
	query := bson.M{}
	if filter.BookingStatus != "" {
		query["booking_status"] = filter.BookingStatus
	}
	if filter.PaymentStatus != "" {
		query["payment_status"] = filter.PaymentStatus
	}
	if !filter.TravelFrom.IsZero() || !filter.TravelTo.IsZero() {
		dateRange := bson.M{}
		if !filter.TravelFrom.IsZero() {
			dateRange["$gte"] = filter.TravelFrom
		}
		if !filter.TravelTo.IsZero() {
			dateRange["$lte"] = filter.TravelTo
		}
		query["travel_date"] = dateRange
	}
	if filter.Search != "" {
		regex := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"traveler_name": regex},
			bson.M{"traveler_email": regex},
			bson.M{"package_title": regex},
			bson.M{"booking_id": regex},
		}
	}
	return r.list(ctx, query, opts)
}

func (r *mongoBookingRepo) list(ctx context.Context, query bson.M, opts ListOptions) ([]models.Booking, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts = opts.Normalize()

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	direction := 1
	if opts.SortDesc {
		direction = -1
	}
	findOpts := options.Find().
		SetSort(bson.D{{Key: opts.SortBy, Value: direction}}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))

	cursor, err := r.coll.Find(ctx, query, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	bookings := make([]models.Booking, 0, opts.Limit)
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}
