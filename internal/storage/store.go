package storage

import (
	"context"
	"errors"

	"eventify/internal/models"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrInvalidID      = errors.New("malformed id")
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore owns identity records. Exclusively owned by the user service.
type UserStore interface {
	SaveUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// BookingStore owns booking records. Exclusively owned by the booking service.
// user_id and event_id are denormalized copies from other stores; nothing at
// this layer checks they exist.
type BookingStore interface {
	SaveBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	ListBookingsByUser(ctx context.Context, userID int64) ([]*models.Booking, error)
}

// EventStore owns event documents. Edit is a full-record replace with no
// version token, so concurrent writers can overwrite each other.
type EventStore interface {
	CreateEvent(ctx context.Context, event *models.Event) (string, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	ListEvents(ctx context.Context, search string, page, perPage int) ([]models.Event, int64, error)
	UpdateEvent(ctx context.Context, id string, event *models.Event) error
	DeleteEvent(ctx context.Context, id string) error
}

// NotificationStore is the append-only delivery audit log.
type NotificationStore interface {
	AppendNotification(ctx context.Context, record *models.NotificationRecord) error
	ListNotificationsByBooking(ctx context.Context, bookingID int64) ([]*models.NotificationRecord, error)
}
