package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eventify/internal/logger"
	"eventify/internal/models"
	"eventify/internal/storage"
)

// BookingService is the booking gateway: it persists booking records and
// triggers the confirmation notification. It trusts the payload it is given —
// amount is not recomputed and the user/event references are not checked
// against their owning stores.
type BookingService struct {
	bookings storage.BookingStore
	notifier ConfirmationNotifier
	log      *logger.Logger
}

func NewBookingService(bookings storage.BookingStore, notifier ConfirmationNotifier, log *logger.Logger) *BookingService {
	return &BookingService{
		bookings: bookings,
		notifier: notifier,
		log:      log,
	}
}

// CreateBooking validates the payload, persists one booking row with status
// confirmed and triggers the notification once. The write is a single insert:
// a failure leaves no partial row. The notification outcome never changes the
// result of the booking.
func (s *BookingService) CreateBooking(ctx context.Context, payload *models.BookingPayload) (*models.Booking, error) {
	if err := validatePayload(payload); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		UserID:  payload.UserID,
		EventID: payload.EventID,
		Tickets: payload.Tickets,
		Amount:  payload.Amount,
		Status:  models.BookingConfirmed,
	}

	if err := s.bookings.SaveBooking(ctx, booking); err != nil {
		s.log.Error("BOOKING", fmt.Sprintf("Booking creation failed: %v", err))
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.log.LogBooking("CREATED", fmt.Sprintf("%d", booking.ID), fmt.Sprintf("Booking created for user %d, event %s", booking.UserID, booking.EventID))

	// Best-effort side effect: the booking stands whatever happens here.
	if err := s.notifier.Notify(ctx, booking.ID, payload.UserEmail); err != nil {
		s.log.Error("NOTIFY", fmt.Sprintf("Failed to trigger confirmation for booking %d: %v", booking.ID, err))
	} else {
		s.log.LogBooking("NOTIFIED", fmt.Sprintf("%d", booking.ID), "Confirmation trigger dispatched")
	}

	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	booking, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func (s *BookingService) ListBookingsByUser(ctx context.Context, userID int64) ([]*models.Booking, error) {
	bookings, err := s.bookings.ListBookingsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// validatePayload reports the first missing field. Check order is part of the
// API contract: callers see exactly one field named per failure.
func validatePayload(payload *models.BookingPayload) error {
	if payload.UserID == 0 {
		return &ValidationError{Field: "user_id"}
	}
	if strings.TrimSpace(payload.EventID) == "" {
		return &ValidationError{Field: "event_id"}
	}
	if payload.Tickets <= 0 {
		return &ValidationError{Field: "tickets"}
	}
	if payload.Amount <= 0 {
		return &ValidationError{Field: "amount"}
	}
	if strings.TrimSpace(payload.UserEmail) == "" {
		return &ValidationError{Field: "user_email"}
	}
	return nil
}
