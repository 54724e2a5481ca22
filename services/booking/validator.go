package booking

import (
	"strings"
	"time"

	"travelbook/models"
)

const (
	minTravelers = 1
	maxTravelers = 20
)

// DateOnly reduces t to its calendar day at midnight UTC. All travel-date
// comparisons in the engine happen on these keys.
func DateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ValidateBookingInput resolves a package, category, date and traveler count
// into the unit price and normalized date, or a typed failure. Pure over the
// already-loaded package; both the direct-booking and checkout paths run it
// before any record is written. Staff edits skip the traveler ceiling.
func ValidateBookingInput(pkg *models.TravelPackage, category string, travelDate time.Time, totalTraveler int, staffEdit bool) (float64, time.Time, error) {
	unitPrice, ok := unitPriceFor(pkg, category)
	if !ok {
		return 0, time.Time{}, newErrorf(CodeCategoryNotOffered,
			"category %q is not offered for this package", category)
	}

	if totalTraveler < minTravelers {
		return 0, time.Time{}, newError(CodeInvalidTravelerCount,
			"total traveler must be a positive number")
	}
	if !staffEdit && totalTraveler > maxTravelers {
		return 0, time.Time{}, newErrorf(CodeInvalidTravelerCount,
			"total traveler must be between %d and %d", minTravelers, maxTravelers)
	}

	normalized := DateOnly(travelDate)
	today := DateOnly(time.Now())
	if normalized.Before(today) {
		return 0, time.Time{}, newError(CodeDateInPast, "selected date is in the past")
	}

	if !dateOffered(pkg, normalized) {
		return 0, time.Time{}, &Error{
			Code:       CodeDateNotAvailable,
			Message:    "selected date is not available",
			ValidDates: formatDates(pkg.AvailableDates),
		}
	}

	return unitPrice, normalized, nil
}

// unitPriceFor matches category case-insensitively against the package's
// priced categories.
func unitPriceFor(pkg *models.TravelPackage, category string) (float64, bool) {
	want := strings.ToLower(strings.TrimSpace(category))
	for _, cp := range pkg.CategoryAndPrice {
		if strings.ToLower(cp.Category) == want {
			return cp.Price, true
		}
	}
	return 0, false
}

func dateOffered(pkg *models.TravelPackage, normalized time.Time) bool {
	for _, d := range pkg.AvailableDates {
		if DateOnly(d).Equal(normalized) {
			return true
		}
	}
	return false
}

func formatDates(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, DateOnly(d).Format("2006-01-02"))
	}
	return out
}
