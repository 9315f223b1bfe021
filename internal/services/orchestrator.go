package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventify/internal/clients"
	"eventify/internal/config"
	"eventify/internal/logger"
	"eventify/internal/models"
	"eventify/internal/storage"
	"eventify/internal/utils"
)

// EventGateway is the slice of the event service the orchestrator needs:
// authoritative pricing/availability reads and the full-record edit used for
// the inventory decrement.
type EventGateway interface {
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)
	EditEvent(ctx context.Context, eventID string, req *models.EditEventRequest) error
}

// BookingGateway creates the booking record.
type BookingGateway interface {
	CreateBooking(ctx context.Context, payload *models.BookingPayload) (*models.Booking, error)
}

// InventoryLocker serializes bookings per event when inventory locking is
// enabled. A nil locker (or the flag off) leaves the workflow unsynchronized.
type InventoryLocker interface {
	AcquireEventLock(ctx context.Context, eventID, token string) (bool, error)
	ReleaseEventLock(ctx context.Context, eventID, token string) error
}

// Orchestrator sequences the cross-service booking workflow: user lookup,
// event fetch, booking creation, inventory decrement, all strictly in order
// within one invocation. There is no transaction across the steps — a crash
// after the booking is created leaves the event's inventory over-counted
// until someone reconciles it.
type Orchestrator struct {
	users    storage.UserStore
	events   EventGateway
	bookings BookingGateway
	locks    InventoryLocker
	cfg      config.BookingConfig
	log      *logger.Logger
}

func NewOrchestrator(
	users storage.UserStore,
	events EventGateway,
	bookings BookingGateway,
	locks InventoryLocker,
	cfg config.BookingConfig,
	log *logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		users:    users,
		events:   events,
		bookings: bookings,
		locks:    locks,
		cfg:      cfg,
		log:      log,
	}
}

const (
	lockAttempts   = 3
	lockRetryDelay = 200 * time.Millisecond
)

// CreateBooking runs the workflow for one request and returns the booking
// gateway's response verbatim on success.
func (o *Orchestrator) CreateBooking(ctx context.Context, req *models.BookingRequest) (*models.Booking, error) {
	if req.UserID == 0 {
		return nil, &ValidationError{Field: "user_id"}
	}
	if strings.TrimSpace(req.EventID) == "" {
		return nil, &ValidationError{Field: "event_id"}
	}
	if req.Tickets <= 0 {
		return nil, &ValidationError{Field: "tickets"}
	}

	if o.cfg.LockInventory && o.locks != nil {
		token := utils.GenerateToken()
		if err := o.acquireLock(ctx, req.EventID, token); err != nil {
			return nil, err
		}
		defer func() {
			if err := o.locks.ReleaseEventLock(ctx, req.EventID, token); err != nil {
				o.log.Error("LOCK", fmt.Sprintf("Failed to release inventory lock for event %s: %v", req.EventID, err))
			}
		}()
	}

	// Step 1: the user must exist; its email rides along to the gateway.
	user, err := o.users.GetUser(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			o.log.Warn("ORCHESTRATOR", fmt.Sprintf("Booking rejected: user %d not found", req.UserID))
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// Step 2: authoritative price and availability from the event service.
	event, err := o.events.GetEvent(ctx, req.EventID)
	if err != nil {
		return nil, o.mapDownstream("event-service", err, true)
	}

	// Step 3: amount is computed here, once, and never re-validated.
	amount := float64(req.Tickets) * event.Price

	if o.cfg.CheckAvailability && req.Tickets > event.TicketsAvailable {
		o.log.Warn("ORCHESTRATOR", fmt.Sprintf("Booking rejected: event %s has %d tickets, requested %d",
			event.ID, event.TicketsAvailable, req.Tickets))
		return nil, ErrNotEnoughTickets
	}

	// Step 4: create the booking. Any failure here stops the workflow before
	// inventory is touched.
	payload := &models.BookingPayload{
		UserID:    req.UserID,
		EventID:   req.EventID,
		Tickets:   req.Tickets,
		Amount:    amount,
		UserEmail: user.Email,
	}

	booking, err := o.bookings.CreateBooking(ctx, payload)
	if err != nil {
		return nil, o.mapDownstream("booking-service", err, false)
	}

	o.log.LogBooking("CONFIRMED", fmt.Sprintf("%d", booking.ID),
		fmt.Sprintf("Booking confirmed for user %d on event %s (%d tickets, %.2f)", req.UserID, req.EventID, req.Tickets, amount))

	// Step 5: best-effort inventory decrement. The full record is resent
	// with only tickets_available changed; a failure is logged and swallowed
	// because the booking has already been confirmed to the caller.
	edit := &models.EditEventRequest{
		Name:             event.Name,
		Location:         event.Location,
		Date:             event.Date,
		Price:            event.Price,
		TicketsAvailable: event.TicketsAvailable - req.Tickets,
		Description:      event.Description,
		Picture:          event.Picture,
	}
	if err := o.events.EditEvent(ctx, req.EventID, edit); err != nil {
		o.log.Error("ORCHESTRATOR", fmt.Sprintf("Inventory update failed for event %s after booking %d: %v (inventory is now stale)",
			req.EventID, booking.ID, err))
	}

	// Step 6: the gateway's response goes back verbatim.
	return booking, nil
}

func (o *Orchestrator) acquireLock(ctx context.Context, eventID, token string) error {
	for attempt := 0; attempt < lockAttempts; attempt++ {
		ok, err := o.locks.AcquireEventLock(ctx, eventID, token)
		if err != nil {
			return fmt.Errorf("failed to acquire inventory lock: %w", err)
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}
	return ErrEventBusy
}

// mapDownstream folds client-layer failures into the orchestrator's error
// taxonomy. notFoundIsEvent distinguishes the event fetch (where a 404 means
// the event does not exist) from the gateway call (where a 404 is just a
// broken downstream).
func (o *Orchestrator) mapDownstream(service string, err error, notFoundIsEvent bool) error {
	switch {
	case notFoundIsEvent && errors.Is(err, clients.ErrNotFound):
		o.log.Warn("ORCHESTRATOR", "Booking rejected: event not found")
		return ErrEventNotFound
	case errors.Is(err, clients.ErrTimeout):
		o.log.Error("ORCHESTRATOR", fmt.Sprintf("%s timed out", service))
		return ErrDownstreamTimeout
	default:
		var statusErr *clients.StatusError
		if errors.As(err, &statusErr) {
			o.log.Error("ORCHESTRATOR", fmt.Sprintf("%s failed: %v", service, statusErr))
			return fmt.Errorf("%w: %s", ErrDownstreamUnavailable, service)
		}
		o.log.Error("ORCHESTRATOR", fmt.Sprintf("%s call failed: %v", service, err))
		return fmt.Errorf("%w: %s", ErrDownstreamUnavailable, service)
	}
}
