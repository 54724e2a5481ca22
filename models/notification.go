package models

// BookingSummary is the content of a booking-created email.
type BookingSummary struct {
	BookingID     string  `json:"bookingId"`
	PackageTitle  string  `json:"packageTitle"`
	TravelDate    string  `json:"travelDate"`
	TotalTraveler int     `json:"totalTraveler"`
	TotalAmount   float64 `json:"totalAmount"`
	Currency      string  `json:"currency"`
}

// BookingCreatedPayload is the queued form of a booking-created email.
type BookingCreatedPayload struct {
	Email   string         `json:"email"`
	Summary BookingSummary `json:"summary"`
}
