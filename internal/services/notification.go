package services

import (
	"context"
	"fmt"
	"time"

	"eventify/internal/logger"
	"eventify/internal/models"
	"eventify/internal/storage"
)

// MailSender delivers one confirmation email.
type MailSender interface {
	SendBookingConfirmation(toEmail string, bookingID int64) error
}

// NotificationService is the notification sink: it sends the confirmation
// email and records every attempt in the append-only audit log. Nothing here
// is idempotent — replaying a booking id appends another row and sends
// another email.
type NotificationService struct {
	records storage.NotificationStore
	sender  MailSender
	log     *logger.Logger
}

func NewNotificationService(records storage.NotificationStore, sender MailSender, log *logger.Logger) *NotificationService {
	return &NotificationService{
		records: records,
		sender:  sender,
		log:     log,
	}
}

// SendConfirmation attempts delivery and appends one audit row for the
// attempt. The send error is returned so the direct HTTP path can report
// success=false; the queued path ignores it.
func (s *NotificationService) SendConfirmation(ctx context.Context, bookingID int64, userEmail string) error {
	sendErr := s.sender.SendBookingConfirmation(userEmail, bookingID)

	record := &models.NotificationRecord{
		BookingID: bookingID,
		UserEmail: userEmail,
		CreatedAt: time.Now(),
	}
	if sendErr != nil {
		record.Status = models.NotificationFailed
		record.Error = sendErr.Error()
	} else {
		record.Status = models.NotificationSent
		record.Message = "Confirmation email sent successfully"
	}

	if err := s.records.AppendNotification(ctx, record); err != nil {
		// The audit write failing must not mask the delivery outcome.
		s.log.Error("NOTIFY", fmt.Sprintf("Failed to append audit record for booking %d: %v", bookingID, err))
	}

	if sendErr != nil {
		s.log.Error("NOTIFY", fmt.Sprintf("Confirmation for booking %d failed: %v", bookingID, sendErr))
		return sendErr
	}

	s.log.LogMail("CONFIRMED", fmt.Sprintf("Booking %d confirmation delivered to %s", bookingID, userEmail))
	return nil
}

// HandleBookingEvent adapts SendConfirmation to the queue consumer. The
// message was already acknowledged by the time this runs, so the error only
// feeds the consumer's log.
func (s *NotificationService) HandleBookingEvent(event *models.BookingEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.log.LogKafka("RECEIVED", "booking-confirmed", fmt.Sprintf("Confirmation trigger for booking %d", event.BookingID))
	return s.SendConfirmation(ctx, event.BookingID, event.UserEmail)
}

// ListByBooking exposes the audit log for a booking.
func (s *NotificationService) ListByBooking(ctx context.Context, bookingID int64) ([]*models.NotificationRecord, error) {
	return s.records.ListNotificationsByBooking(ctx, bookingID)
}
