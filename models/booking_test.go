package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	pendingPending := State{Booking: BookingPending, Payment: PaymentPending}
	confirmedPaid := State{Booking: BookingConfirmed, Payment: PaymentPaid}

	cases := []struct {
		name string
		from State
		to   State
		want bool
	}{
		{"WebhookEdge", pendingPending, confirmedPaid, true},
		{"SameStateIsNoTransition", confirmedPaid, confirmedPaid, false},
		{"CancelFromPending", pendingPending, State{Booking: BookingCancelled, Payment: PaymentPending}, true},
		{"CompleteFromConfirmed", confirmedPaid, State{Booking: BookingComplete, Payment: PaymentPaid}, true},
		{"NothingLeavesCancelled", State{Booking: BookingCancelled, Payment: PaymentPending}, confirmedPaid, false},
		{"NothingLeavesComplete", State{Booking: BookingComplete, Payment: PaymentPaid}, pendingPending, false},
		{"RefundFromConfirmed", confirmedPaid, State{Booking: BookingCancelled, Payment: PaymentRefunded}, true},
		{"UnknownTargetStatus", pendingPending, State{Booking: "archived", Payment: PaymentPending}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanTransition(tc.from, tc.to))
		})
	}
}

func TestStatusValidity(t *testing.T) {
	assert.True(t, PaymentPaid.Valid())
	assert.False(t, PaymentStatus("settled").Valid())
	assert.True(t, BookingReschedule.Valid())
	assert.False(t, BookingStatus("archived").Valid())
	assert.True(t, BookingCancelled.Terminal())
	assert.True(t, BookingComplete.Terminal())
	assert.False(t, BookingConfirmed.Terminal())
}
