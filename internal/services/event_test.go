package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventify/internal/logger"
	"eventify/internal/models"
	"eventify/internal/services"
	"eventify/internal/storage"
)

func newEventService() (*services.EventService, *storage.InMemoryEventStore) {
	store := storage.NewInMemoryEventStore()
	return services.NewEventService(store, logger.NewLogger()), store
}

func TestCreateEventAppliesDefaults(t *testing.T) {
	svc, _ := newEventService()

	event, err := svc.CreateEvent(context.Background(), &models.CreateEventRequest{
		Name:             "Go Conference",
		Location:         "Berlin",
		Date:             "2026-09-01",
		Price:            20.0,
		TicketsAvailable: 5,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, models.DefaultEventPicture, event.Picture, "omitted picture falls back to the placeholder")
}

func TestCreateEventRequiresName(t *testing.T) {
	svc, _ := newEventService()

	_, err := svc.CreateEvent(context.Background(), &models.CreateEventRequest{Location: "Berlin"})
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestEventRoundTrip(t *testing.T) {
	svc, _ := newEventService()

	created, err := svc.CreateEvent(context.Background(), &models.CreateEventRequest{
		Name:             "Go Conference",
		Location:         "Berlin",
		Date:             "2026-09-01",
		Price:            20.0,
		TicketsAvailable: 5,
		Description:      "Two days of Go talks",
	})
	require.NoError(t, err)

	fetched, err := svc.GetEvent(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, fetched.Name)
	assert.Equal(t, 20.0, fetched.Price)
	assert.Equal(t, 5, fetched.TicketsAvailable)

	// Edit resends the whole record with one change.
	edited, err := svc.EditEvent(context.Background(), created.ID, &models.EditEventRequest{
		Name:             fetched.Name,
		Location:         fetched.Location,
		Date:             fetched.Date,
		Price:            fetched.Price,
		TicketsAvailable: 3,
		Description:      fetched.Description,
		Picture:          fetched.Picture,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, edited.TicketsAvailable)

	fetched, err = svc.GetEvent(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, fetched.TicketsAvailable)
}

func TestEditEventDropsOmittedFields(t *testing.T) {
	svc, _ := newEventService()

	created, err := svc.CreateEvent(context.Background(), &models.CreateEventRequest{
		Name:        "Go Conference",
		Description: "Two days of Go talks",
	})
	require.NoError(t, err)

	// A partial edit is still a full replace: fields the caller leaves out
	// are overwritten with their zero values.
	_, err = svc.EditEvent(context.Background(), created.ID, &models.EditEventRequest{Name: "Go Conference"})
	require.NoError(t, err)

	fetched, err := svc.GetEvent(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, fetched.Description)
}

func TestEditEventNotFound(t *testing.T) {
	svc, _ := newEventService()

	_, err := svc.EditEvent(context.Background(), "missing", &models.EditEventRequest{Name: "X"})
	assert.ErrorIs(t, err, services.ErrEventNotFound)
}

func TestDeleteEvent(t *testing.T) {
	svc, _ := newEventService()

	created, err := svc.CreateEvent(context.Background(), &models.CreateEventRequest{Name: "Go Conference"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEvent(context.Background(), created.ID))

	_, err = svc.GetEvent(context.Background(), created.ID)
	assert.ErrorIs(t, err, services.ErrEventNotFound)

	err = svc.DeleteEvent(context.Background(), created.ID)
	assert.ErrorIs(t, err, services.ErrEventNotFound)
}

func TestListEventsPaginationAndSearch(t *testing.T) {
	svc, _ := newEventService()

	for i := 0; i < 8; i++ {
		name := fmt.Sprintf("Concert %d", i)
		if i >= 6 {
			name = fmt.Sprintf("Workshop %d", i)
		}
		_, err := svc.CreateEvent(context.Background(), &models.CreateEventRequest{
			Name:     name,
			Location: "Berlin",
		})
		require.NoError(t, err)
	}

	page1, err := svc.ListEvents(context.Background(), "", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, page1.Page)
	assert.Len(t, page1.Events, 6, "pages hold six events")
	assert.Equal(t, 2, page1.TotalPages)

	page2, err := svc.ListEvents(context.Background(), "", 2)
	require.NoError(t, err)
	assert.Len(t, page2.Events, 2)

	// Search matches case-insensitively across name, location, description.
	workshops, err := svc.ListEvents(context.Background(), "workshop", 1)
	require.NoError(t, err)
	assert.Len(t, workshops.Events, 2)

	berlin, err := svc.ListEvents(context.Background(), "BERLIN", 1)
	require.NoError(t, err)
	assert.Len(t, berlin.Events, 6)

	none, err := svc.ListEvents(context.Background(), "opera", 1)
	require.NoError(t, err)
	assert.NotNil(t, none.Events)
	assert.Empty(t, none.Events)
	assert.Equal(t, 1, none.TotalPages)
}

func TestListEventsPageBeyondEndIsEmpty(t *testing.T) {
	svc, _ := newEventService()

	_, err := svc.CreateEvent(context.Background(), &models.CreateEventRequest{Name: "Solo"})
	require.NoError(t, err)

	page, err := svc.ListEvents(context.Background(), "", 5)
	require.NoError(t, err)
	assert.Empty(t, page.Events)
	assert.Equal(t, 5, page.Page)
}
