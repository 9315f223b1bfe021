package models

import "time"

type NotificationStatus string

const (
	NotificationSent   NotificationStatus = "sent"
	NotificationFailed NotificationStatus = "failed"
)

// NotificationRecord is one row of the append-only delivery audit log in
// MongoDB. One record per attempt; replays append again.
type NotificationRecord struct {
	ID        string             `json:"id" bson:"_id,omitempty"`
	BookingID int64              `json:"booking_id" bson:"booking_id"`
	UserEmail string             `json:"user_email" bson:"user_email"`
	Status    NotificationStatus `json:"status" bson:"status"`
	Message   string             `json:"message,omitempty" bson:"message,omitempty"`
	Error     string             `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

type SendEmailRequest struct {
	BookingID int64  `json:"booking_id" binding:"required"`
	UserEmail string `json:"user_email" binding:"required,email"`
}

type SendEmailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
