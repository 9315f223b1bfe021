package models

import (
	"time"

	"github.com/uptrace/bun"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
)

type Booking struct {
	bun.BaseModel `bun:"table:bookings"`

	ID        int64         `json:"id" bun:"id,pk,autoincrement"`
	UserID    int64         `json:"user_id" bun:"user_id"`
	EventID   string        `json:"event_id" bun:"event_id"`
	Tickets   int           `json:"tickets" bun:"tickets"`
	Amount    float64       `json:"amount" bun:"amount"`
	Status    BookingStatus `json:"status" bun:"status"`
	CreatedAt time.Time     `json:"created_at" bun:"created_at"`
}

// BookingRequest is what the orchestrator accepts from the client.
type BookingRequest struct {
	UserID  int64  `json:"user_id"`
	EventID string `json:"event_id"`
	Tickets int    `json:"tickets"`
}

// BookingPayload is the fully-formed payload the orchestrator sends to the
// booking gateway. UserEmail rides along so the notification path never has
// to call back into the user store.
type BookingPayload struct {
	UserID    int64   `json:"user_id"`
	EventID   string  `json:"event_id"`
	Tickets   int     `json:"tickets"`
	Amount    float64 `json:"amount"`
	UserEmail string  `json:"user_email"`
}

// BookingEvent is the message published to the booking-confirmed topic.
type BookingEvent struct {
	BookingID int64     `json:"booking_id"`
	UserEmail string    `json:"user_email"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
