package services

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEventNotFound      = errors.New("event not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotEnoughTickets only fires when the availability check is enabled;
	// the default configuration books regardless.
	ErrNotEnoughTickets = errors.New("not enough tickets available")

	// ErrEventBusy means the per-event inventory lock could not be taken.
	ErrEventBusy = errors.New("event is busy, try again")

	ErrDownstreamTimeout     = errors.New("downstream service timed out")
	ErrDownstreamUnavailable = errors.New("downstream service unavailable")
)

// ValidationError names the first missing or malformed field, which is the
// one piece of error detail that is allowed to reach the client verbatim.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}
