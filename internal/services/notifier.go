package services

import (
	"context"
	"time"

	"eventify/internal/clients"
	"eventify/internal/kafka"
	"eventify/internal/models"
)

// ConfirmationNotifier triggers one confirmation notification for a created
// booking. Both implementations are at-most-once: the trigger is attempted
// exactly once and a failure is the caller's to log, never to propagate.
type ConfirmationNotifier interface {
	Notify(ctx context.Context, bookingID int64, userEmail string) error
}

// KafkaNotifier publishes the confirmation trigger to the booking-confirmed
// topic.
type KafkaNotifier struct {
	producer *kafka.Producer
}

func NewKafkaNotifier(producer *kafka.Producer) *KafkaNotifier {
	return &KafkaNotifier{producer: producer}
}

func (n *KafkaNotifier) Notify(ctx context.Context, bookingID int64, userEmail string) error {
	return n.producer.PublishBookingConfirmed(&models.BookingEvent{
		BookingID: bookingID,
		UserEmail: userEmail,
		Status:    "CONFIRMED",
		Timestamp: time.Now(),
	})
}

// DirectNotifier calls the notification service synchronously over HTTP.
type DirectNotifier struct {
	client *clients.NotificationClient
}

func NewDirectNotifier(client *clients.NotificationClient) *DirectNotifier {
	return &DirectNotifier{client: client}
}

func (n *DirectNotifier) Notify(ctx context.Context, bookingID int64, userEmail string) error {
	return n.client.SendEmail(ctx, bookingID, userEmail)
}
