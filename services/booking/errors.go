package booking

import (
	"errors"
	"fmt"
)

// Error codes for booking failures. Handlers map these to HTTP statuses.
const (
	CodePackageNotFound      = "packageNotFound"
	CodeBookingNotFound      = "bookingNotFound"
	CodeCategoryNotOffered   = "categoryNotOffered"
	CodeDateNotAvailable     = "dateNotAvailable"
	CodeDateInPast           = "dateInPast"
	CodeInvalidTravelerCount = "invalidTravelerCount"
	CodeInvalidTransition    = "invalidStatusTransition"
	CodeInvalidPatch         = "invalidPatch"
	CodeForbidden            = "forbidden"
	CodePaymentProvider      = "paymentProviderError"
	CodeInvalidSignature     = "invalidSignature"
)

// Error is a typed booking failure with a machine code and, for date
// failures, the list of dates that would have been accepted.
type Error struct {
	Code       string
	Message    string
	ValidDates []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, msg string) error {
	return &Error{Code: code, Message: msg}
}

func newErrorf(code, format string, args ...interface{}) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsBookingError unwraps err into *Error when possible.
func AsBookingError(err error) (*Error, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
