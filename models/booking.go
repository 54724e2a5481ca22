package models

import "time"

// PaymentStatus tracks the money side of a booking.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// BookingStatus tracks the fulfilment side of a booking.
type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingReschedule BookingStatus = "reschedule"
	BookingComplete   BookingStatus = "complete"
	BookingCancelled  BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingReschedule, BookingComplete, BookingCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s BookingStatus) Terminal() bool {
	return s == BookingComplete || s == BookingCancelled
}

// PaymentInfo records the identifiers of an external checkout session.
// Present only once a session has been created for the booking.
type PaymentInfo struct {
	SessionID       string  `bson:"session_id" json:"sessionId"`
	PaymentIntentID string  `bson:"payment_intent_id,omitempty" json:"paymentIntentId,omitempty"`
	Amount          float64 `bson:"amount" json:"amount"`
	Currency        string  `bson:"currency" json:"currency"`
}

// Booking is a traveler's request to purchase a package for a specific
// date, category and traveler count. Owned by the booking repository after
// creation; TotalAmount is always derived, never client supplied.
type Booking struct {
	ID            string        `bson:"id" json:"id"`
	BookingID     string        `bson:"booking_id" json:"bookingId"`
	UserID        string        `bson:"user_id" json:"userId"`
	PackageID     string        `bson:"package_id" json:"packageId"`
	Category      string        `bson:"category" json:"category"`
	TotalTraveler int           `bson:"total_traveler" json:"totalTraveler"`
	TravelDate    time.Time     `bson:"travel_date" json:"travelDate"`
	TotalAmount   float64       `bson:"total_amount" json:"totalAmount"`
	PaidAmount    float64       `bson:"paid_amount" json:"paidAmount"`
	PaymentStatus PaymentStatus `bson:"payment_status" json:"paymentStatus"`
	BookingStatus BookingStatus `bson:"booking_status" json:"bookingStatus"`
	PaymentInfo   *PaymentInfo  `bson:"payment_info,omitempty" json:"paymentInfo,omitempty"`
	BookingDate   time.Time     `bson:"booking_date" json:"bookingDate"`
	UpdatedAt     time.Time     `bson:"updated_at" json:"updatedAt"`

	// Denormalized for the admin list's free-text search.
	TravelerName  string `bson:"traveler_name,omitempty" json:"travelerName,omitempty"`
	TravelerEmail string `bson:"traveler_email,omitempty" json:"travelerEmail,omitempty"`
	PackageTitle  string `bson:"package_title,omitempty" json:"packageTitle,omitempty"`
}

// State is a (bookingStatus, paymentStatus) pair.
type State struct {
	Booking BookingStatus
	Payment PaymentStatus
}

// State returns the booking's current combined state.
func (b *Booking) State() State {
	return State{Booking: b.BookingStatus, Payment: b.PaymentStatus}
}

// CanTransition reports whether moving between two combined states is
// allowed. Terminal booking statuses accept nothing; a transition to the
// state already held is not a transition at all (callers treat it as a
// no-op, which is what makes webhook redelivery safe).
func CanTransition(from, to State) bool {
	if from == to {
		return false
	}
	if from.Booking.Terminal() {
		return false
	}
	if !to.Booking.Valid() || !to.Payment.Valid() {
		return false
	}
	return true
}
