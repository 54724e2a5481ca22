package bookingRepo

import (
	"context"
	"log"
	"time"

	"travelbook/database"
	"travelbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AdminFilter narrows the staff booking list. Zero values mean "no filter".
type AdminFilter struct {
	BookingStatus models.BookingStatus
	PaymentStatus models.PaymentStatus
	TravelFrom    time.Time
	TravelTo      time.Time
	Search        string // matched against traveler name/email and package title
}

// ListOptions controls pagination and ordering of list queries.
type ListOptions struct {
	Page     int
	Limit    int
	SortBy   string
	SortDesc bool
}

// Normalize clamps pagination to sane bounds and fills the default sort.
func (o ListOptions) Normalize() ListOptions {
	if o.Page <= 0 {
		o.Page = 1
	}
	if o.Limit <= 0 || o.Limit > 100 {
		o.Limit = 10
	}
	if o.SortBy == "" {
		o.SortBy = "booking_date"
		o.SortDesc = true
	}
	return o
}

// BookingRepository owns Booking persistence. The booking service is its
// only caller.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByBookingID(ctx context.Context, bookingID string) (*models.Booking, error)
	Update(ctx context.Context, bookingID string, set map[string]interface{}) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string, opts ListOptions) ([]models.Booking, int64, error)
	ListAll(ctx context.Context, filter AdminFilter, opts ListOptions) ([]models.Booking, int64, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a BookingRepository backed by MongoDB.
func NewMongoBookingRepo() BookingRepository {
	repo := &mongoBookingRepo{
		coll: database.DB().Collection("bookings"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		log.Printf("booking repo: %v", err)
	}
	return repo
}
