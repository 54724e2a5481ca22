package notification

import (
	"context"
	"fmt"

	"travelbook/models"
	"travelbook/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AsynqNotificationService queues notifications on Redis; the worker in
// cron/ delivers them. Enqueue failures are the caller's to log, never to
// propagate.
type AsynqNotificationService struct {
	Client *asynq.Client
	Logger *zap.Logger
}

func NewAsynqNotificationService(client *asynq.Client, logger *zap.Logger) *AsynqNotificationService {
	return &AsynqNotificationService{Client: client, Logger: logger}
}

func (s *AsynqNotificationService) SendBookingCreatedEmail(ctx context.Context, userEmail string, summary BookingSummary) error {
	task, err := tasks.NewBookingCreatedEmailTask(models.BookingCreatedPayload{
		Email:   userEmail,
		Summary: summary,
	})
	if err != nil {
		return fmt.Errorf("build booking created task: %w", err)
	}
	info, err := s.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue booking created task: %w", err)
	}
	s.Logger.Debug("booking created email queued",
		zap.String("taskId", info.ID),
		zap.String("bookingId", summary.BookingID))
	return nil
}

// LogEmailSender is the development EmailSender: it logs instead of sending.
type LogEmailSender struct {
	Logger *zap.Logger
}

func (s *LogEmailSender) Send(ctx context.Context, to, subject, body string) error {
	s.Logger.Info("email (log sender)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body))
	return nil
}
