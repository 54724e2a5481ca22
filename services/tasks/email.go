package tasks

import (
	"encoding/json"

	"travelbook/models"

	"github.com/hibiken/asynq"
)

const TypeBookingCreatedEmail = "email:booking_created"

// NewBookingCreatedEmailTask builds the asynq task for a booking-created
// email.
func NewBookingCreatedEmailTask(payload models.BookingCreatedPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBookingCreatedEmail, b), nil
}
