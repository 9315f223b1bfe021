package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"eventify/internal/models"
)

// In-memory stores for tests and mock-mode runs. They mirror the semantics of
// the real stores, including the unchecked full-replace event update.

type InMemoryUserStore struct {
	mutex  sync.RWMutex
	users  map[int64]*models.User
	nextID int64
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		users:  make(map[int64]*models.User),
		nextID: 1,
	}
}

func (s *InMemoryUserStore) SaveUser(ctx context.Context, user *models.User) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return ErrDuplicateEmail
		}
	}

	user.ID = s.nextID
	s.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *InMemoryUserStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	user, exists := s.users[id]
	if !exists {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *InMemoryUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

type InMemoryBookingStore struct {
	mutex    sync.RWMutex
	bookings map[int64]*models.Booking
	nextID   int64

	// FailNext forces the next SaveBooking to fail, for persistence-error paths.
	FailNext bool
}

func NewInMemoryBookingStore() *InMemoryBookingStore {
	return &InMemoryBookingStore{
		bookings: make(map[int64]*models.Booking),
		nextID:   1,
	}
}

func (s *InMemoryBookingStore) SaveBooking(ctx context.Context, booking *models.Booking) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.FailNext {
		s.FailNext = false
		return fmt.Errorf("failed to save booking: simulated write failure")
	}

	booking.ID = s.nextID
	s.nextID++
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}

	copied := *booking
	s.bookings[booking.ID] = &copied
	return nil
}

func (s *InMemoryBookingStore) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	booking, exists := s.bookings[id]
	if !exists {
		return nil, ErrNotFound
	}
	copied := *booking
	return &copied, nil
}

func (s *InMemoryBookingStore) ListBookingsByUser(ctx context.Context, userID int64) ([]*models.Booking, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var bookings []*models.Booking
	for _, booking := range s.bookings {
		if booking.UserID == userID {
			copied := *booking
			bookings = append(bookings, &copied)
		}
	}
	return bookings, nil
}

// Count returns the number of stored bookings.
func (s *InMemoryBookingStore) Count() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.bookings)
}

type InMemoryEventStore struct {
	mutex  sync.RWMutex
	events map[string]*models.Event
	nextID int64
}

func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		events: make(map[string]*models.Event),
		nextID: 1,
	}
}

func (s *InMemoryEventStore) CreateEvent(ctx context.Context, event *models.Event) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	event.ID = fmt.Sprintf("evt_%06d", s.nextID)
	s.nextID++

	copied := *event
	s.events[event.ID] = &copied
	return event.ID, nil
}

func (s *InMemoryEventStore) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	event, exists := s.events[id]
	if !exists {
		return nil, ErrNotFound
	}
	copied := *event
	return &copied, nil
}

func (s *InMemoryEventStore) ListEvents(ctx context.Context, search string, page, perPage int) ([]models.Event, int64, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var matched []models.Event
	needle := strings.ToLower(search)
	for _, event := range s.events {
		if search == "" ||
			strings.Contains(strings.ToLower(event.Name), needle) ||
			strings.Contains(strings.ToLower(event.Location), needle) ||
			strings.Contains(strings.ToLower(event.Description), needle) {
			matched = append(matched, *event)
		}
	}

	total := int64(len(matched))
	start := (page - 1) * perPage
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + perPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// UpdateEvent blindly replaces the stored document, same as the Mongo store:
// no version token, last writer wins.
func (s *InMemoryEventStore) UpdateEvent(ctx context.Context, id string, event *models.Event) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.events[id]; !exists {
		return ErrNotFound
	}

	copied := *event
	copied.ID = id
	s.events[id] = &copied
	return nil
}

func (s *InMemoryEventStore) DeleteEvent(ctx context.Context, id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.events[id]; !exists {
		return ErrNotFound
	}
	delete(s.events, id)
	return nil
}

type InMemoryNotificationStore struct {
	mutex   sync.RWMutex
	records []*models.NotificationRecord
	nextID  int64
}

func NewInMemoryNotificationStore() *InMemoryNotificationStore {
	return &InMemoryNotificationStore{nextID: 1}
}

func (s *InMemoryNotificationStore) AppendNotification(ctx context.Context, record *models.NotificationRecord) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if record.ID == "" {
		record.ID = fmt.Sprintf("ntf_%06d", s.nextID)
		s.nextID++
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	copied := *record
	s.records = append(s.records, &copied)
	return nil
}

func (s *InMemoryNotificationStore) ListNotificationsByBooking(ctx context.Context, bookingID int64) ([]*models.NotificationRecord, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var records []*models.NotificationRecord
	for _, record := range s.records {
		if record.BookingID == bookingID {
			copied := *record
			records = append(records, &copied)
		}
	}
	return records, nil
}

// Len returns the total number of audit entries.
func (s *InMemoryNotificationStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.records)
}
