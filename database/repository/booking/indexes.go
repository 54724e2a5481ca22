package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings collection.
func (r *mongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// bookingId is the idempotency anchor for webhook reconciliation.
		{
			Keys:    bson.D{{Key: "booking_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_booking_id"),
		},
		// Primary query pattern for "my bookings".
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "booking_date", Value: -1}},
			Options: options.Index().SetName("user_booking_date_idx"),
		},
		// Staff list filters.
		{
			Keys:    bson.D{{Key: "booking_status", Value: 1}, {Key: "payment_status", Value: 1}},
			Options: options.Index().SetName("status_idx"),
		},
		{
			Keys:    bson.D{{Key: "travel_date", Value: 1}},
			Options: options.Index().SetName("travel_date_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
