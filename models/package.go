package models

import "time"

// CategoryPrice maps a pricing tier name to its per-traveler price.
type CategoryPrice struct {
	Category string  `bson:"category" json:"category"`
	Price    float64 `bson:"price" json:"price"`
}

// TravelPackage is a sellable itinerary. The booking core reads packages as
// the source of truth for pricing and date legality; content management
// happens elsewhere.
type TravelPackage struct {
	ID               string          `bson:"id" json:"id"`
	Title            string          `bson:"title" json:"title"`
	Overview         string          `bson:"overview" json:"overview"`
	CategoryAndPrice []CategoryPrice `bson:"category_and_price" json:"categoryAndPrice"`
	AvailableDates   []time.Time     `bson:"available_dates" json:"availableDates"`
	IsActive         bool            `bson:"is_active" json:"isActive"`
	CreatedAt        time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time       `bson:"updated_at" json:"updatedAt"`
}
