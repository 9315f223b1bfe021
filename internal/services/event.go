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

// eventsPerPage is the fixed catalogue page size.
const eventsPerPage = 6

type EventService struct {
	events storage.EventStore
	log    *logger.Logger
}

func NewEventService(events storage.EventStore, log *logger.Logger) *EventService {
	return &EventService{events: events, log: log}
}

func (s *EventService) CreateEvent(ctx context.Context, req *models.CreateEventRequest) (*models.Event, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, &ValidationError{Field: "name"}
	}
	if req.Price < 0 {
		return nil, &ValidationError{Field: "price"}
	}
	if req.TicketsAvailable < 0 {
		return nil, &ValidationError{Field: "tickets_available"}
	}

	event := &models.Event{
		Name:             req.Name,
		Location:         req.Location,
		Date:             req.Date,
		Price:            req.Price,
		TicketsAvailable: req.TicketsAvailable,
		Description:      req.Description,
		Picture:          req.Picture,
	}
	if event.Picture == "" {
		event.Picture = models.DefaultEventPicture
	}

	if _, err := s.events.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.log.Info("EVENT", fmt.Sprintf("Event %s created: %q", event.ID, event.Name))
	return event, nil
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.events.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// ListEvents pages through the catalogue with a case-insensitive substring
// match over name, location and description. Page numbering starts at 1, and
// total_pages uses integer division plus one, so it over-counts by one when
// the total is an exact multiple of the page size.
func (s *EventService) ListEvents(ctx context.Context, search string, page int) (*models.EventListResponse, error) {
	if page < 1 {
		page = 1
	}

	events, total, err := s.events.ListEvents(ctx, search, page, eventsPerPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	if events == nil {
		events = []models.Event{}
	}

	return &models.EventListResponse{
		Page:       page,
		TotalPages: int(total)/eventsPerPage + 1,
		Events:     events,
	}, nil
}

// EditEvent is a full-record replace. Callers resend every field; there is no
// partial update and no concurrency token, so concurrent edits can lose one
// writer's changes.
func (s *EventService) EditEvent(ctx context.Context, id string, req *models.EditEventRequest) (*models.Event, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, &ValidationError{Field: "name"}
	}

	event := &models.Event{
		ID:               id,
		Name:             req.Name,
		Location:         req.Location,
		Date:             req.Date,
		Price:            req.Price,
		TicketsAvailable: req.TicketsAvailable,
		Description:      req.Description,
		Picture:          req.Picture,
	}

	if err := s.events.UpdateEvent(ctx, id, event); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	s.log.Info("EVENT", fmt.Sprintf("Event %s updated", id))
	return event, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.events.DeleteEvent(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	s.log.Info("EVENT", fmt.Sprintf("Event %s deleted", id))
	return nil
}
