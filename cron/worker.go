package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"travelbook/config"
	"travelbook/models"
	"travelbook/services/notification"
	"travelbook/services/tasks"

	"github.com/hibiken/asynq"
)

// InitEmailWorker runs the async email worker in the background.
func InitEmailWorker(sender notification.EmailSender) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingCreatedEmail, handleBookingCreatedEmail(sender))

	go func() {
		log.Println("[EmailWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[EmailWorker] worker stopped: %v", err)
		}
	}()
}

func handleBookingCreatedEmail(sender notification.EmailSender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.BookingCreatedPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[EmailWorker] invalid payload: %v", err)
			return err
		}

		subject := fmt.Sprintf("Booking %s received", p.Summary.BookingID)
		body := fmt.Sprintf(
			"Your booking %s for %s on %s (%d traveler(s), total %.2f %s) has been received. We will confirm it once payment completes.",
			p.Summary.BookingID,
			p.Summary.PackageTitle,
			p.Summary.TravelDate,
			p.Summary.TotalTraveler,
			p.Summary.TotalAmount,
			p.Summary.Currency,
		)
		return sender.Send(ctx, p.Email, subject, body)
	}
}
