package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventify/internal/clients"
	"eventify/internal/config"
	"eventify/internal/handlers"
	"eventify/internal/logger"
	"eventify/internal/models"
	"eventify/internal/services"
	"eventify/internal/storage"
)

type memorySessions struct {
	tokens map[string]int64
}

func (s *memorySessions) SaveSession(ctx context.Context, token string, userID int64) error {
	s.tokens[token] = userID
	return nil
}

func (s *memorySessions) GetSession(ctx context.Context, token string) (int64, error) {
	id, ok := s.tokens[token]
	if !ok {
		return 0, fmt.Errorf("session not found")
	}
	return id, nil
}

type stubMailer struct {
	err  error
	sent []string
}

func (m *stubMailer) SendBookingConfirmation(toEmail string, bookingID int64) error {
	m.sent = append(m.sent, toEmail)
	return m.err
}

// testCluster wires all four services together over httptest, with the user
// service's orchestrator calling the others through real HTTP clients.
type testCluster struct {
	userSrv         *httptest.Server
	eventSrv        *httptest.Server
	bookingSrv      *httptest.Server
	notificationSrv *httptest.Server

	users         *storage.InMemoryUserStore
	events        *storage.InMemoryEventStore
	bookings      *storage.InMemoryBookingStore
	notifications *storage.InMemoryNotificationStore
	mailer        *stubMailer
}

func newTestCluster(t *testing.T, bookingCfg config.BookingConfig) *testCluster {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewLogger()

	c := &testCluster{
		users:         storage.NewInMemoryUserStore(),
		events:        storage.NewInMemoryEventStore(),
		bookings:      storage.NewInMemoryBookingStore(),
		notifications: storage.NewInMemoryNotificationStore(),
		mailer:        &stubMailer{},
	}

	// Notification service.
	notificationService := services.NewNotificationService(c.notifications, c.mailer, log)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	notificationRouter := gin.New()
	notificationRouter.POST("/send-email", notificationHandler.SendEmail)
	notificationRouter.GET("/notifications/:booking_id", notificationHandler.ListByBooking)
	c.notificationSrv = httptest.NewServer(notificationRouter)
	t.Cleanup(c.notificationSrv.Close)

	// Event service.
	eventService := services.NewEventService(c.events, log)
	eventHandler := handlers.NewEventHandler(eventService)
	eventRouter := gin.New()
	eventRouter.GET("/events", eventHandler.ListEvents)
	eventRouter.POST("/events/create", eventHandler.CreateEvent)
	eventRouter.GET("/events/:id", eventHandler.GetEvent)
	eventRouter.PUT("/events/:id/edit", eventHandler.EditEvent)
	eventRouter.DELETE("/events/:id", eventHandler.DeleteEvent)
	c.eventSrv = httptest.NewServer(eventRouter)
	t.Cleanup(c.eventSrv.Close)

	// Booking service, notifying over HTTP so the whole path is exercised.
	notifier := services.NewDirectNotifier(clients.NewNotificationClient(c.notificationSrv.URL))
	bookingService := services.NewBookingService(c.bookings, notifier, log)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	bookingRouter := gin.New()
	bookingRouter.POST("/bookings", bookingHandler.CreateBooking)
	bookingRouter.GET("/bookings/:id", bookingHandler.GetBooking)
	bookingRouter.GET("/users/:id/bookings", bookingHandler.ListUserBookings)
	c.bookingSrv = httptest.NewServer(bookingRouter)
	t.Cleanup(c.bookingSrv.Close)

	// User service with the orchestrator.
	sessions := &memorySessions{tokens: make(map[string]int64)}
	userService := services.NewUserService(c.users, sessions, log)
	eventClient := clients.NewEventClient(c.eventSrv.URL)
	orchestrator := services.NewOrchestrator(
		c.users,
		eventClient,
		clients.NewBookingClient(c.bookingSrv.URL),
		nil,
		bookingCfg,
		log,
	)
	userHandler := handlers.NewUserHandler(userService, orchestrator, eventClient)
	userRouter := gin.New()
	userRouter.POST("/register", userHandler.Register)
	userRouter.POST("/login", userHandler.Login)
	userRouter.GET("/users/:id", userHandler.GetUser)
	userRouter.POST("/bookings", userHandler.CreateBooking)
	userRouter.GET("/events", userHandler.ListEvents)
	c.userSrv = httptest.NewServer(userRouter)
	t.Cleanup(c.userSrv.Close)

	return c
}

func postJSON(t *testing.T, url string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func getJSON(t *testing.T, url string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestBookingWorkflowEndToEnd(t *testing.T) {
	c := newTestCluster(t, config.BookingConfig{NotifyMode: "http"})

	// Register and log in.
	resp, _ := postJSON(t, c.userSrv.URL+"/register", models.RegisterRequest{
		Email:    "alice@example.com",
		Password: "s3cret",
		Name:     "Alice",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, login := postJSON(t, c.userSrv.URL+"/login", models.LoginRequest{
		Username: "alice@example.com",
		Password: "s3cret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, login["access_token"])
	assert.Equal(t, "bearer", login["token_type"])

	// Create an event: 5 tickets at 20 each.
	resp, created := postJSON(t, c.eventSrv.URL+"/events/create", models.CreateEventRequest{
		Name:             "Go Conference",
		Location:         "Berlin",
		Date:             "2026-09-01",
		Price:            20.0,
		TicketsAvailable: 5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	eventID := created["event_id"].(string)
	require.NotEmpty(t, eventID)

	// Book 2 tickets through the orchestrator.
	resp, booking := postJSON(t, c.userSrv.URL+"/bookings", models.BookingRequest{
		UserID:  1,
		EventID: eventID,
		Tickets: 2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 40.0, booking["amount"], "amount is tickets times price")
	assert.Equal(t, "confirmed", booking["status"])
	bookingID := int64(booking["id"].(float64))

	// Inventory was decremented through the full-record edit.
	resp, event := getJSON(t, c.eventSrv.URL+"/events/"+eventID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3.0, event["tickets_available"])

	// The booking is readable from the gateway.
	resp, fetched := getJSON(t, fmt.Sprintf("%s/bookings/%d", c.bookingSrv.URL, bookingID))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, booking["amount"], fetched["amount"])

	// Exactly one confirmation was sent and audited.
	assert.Equal(t, []string{"alice@example.com"}, c.mailer.sent)
	resp, audit := getJSON(t, fmt.Sprintf("%s/notifications/%d", c.notificationSrv.URL, bookingID))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	records := audit["data"].([]interface{})
	require.Len(t, records, 1)
	assert.Equal(t, "sent", records[0].(map[string]interface{})["status"])

	// The catalogue is browsable through the user service too.
	resp, list := getJSON(t, c.userSrv.URL+"/events?search=conference")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, list["events"], 1)
}

func TestBookingUnknownEventReturns404(t *testing.T) {
	c := newTestCluster(t, config.BookingConfig{})

	resp, _ := postJSON(t, c.userSrv.URL+"/register", models.RegisterRequest{
		Email: "bob@example.com", Password: "pw", Name: "Bob",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := postJSON(t, c.userSrv.URL+"/bookings", models.BookingRequest{
		UserID:  1,
		EventID: "65f1a2b3c4d5e6f7a8b9c0d1",
		Tickets: 1,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Event not found", body["error"])
	assert.Equal(t, 0, c.bookings.Count(), "no booking row for a rejected request")
}

func TestBookingUnknownUserReturns404(t *testing.T) {
	c := newTestCluster(t, config.BookingConfig{})

	resp, body := postJSON(t, c.userSrv.URL+"/bookings", models.BookingRequest{
		UserID:  42,
		EventID: "65f1a2b3c4d5e6f7a8b9c0d1",
		Tickets: 1,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found", body["error"])
}

func TestBookingValidationNamesField(t *testing.T) {
	c := newTestCluster(t, config.BookingConfig{})

	resp, body := postJSON(t, c.userSrv.URL+"/bookings", models.BookingRequest{
		EventID: "65f1a2b3c4d5e6f7a8b9c0d1",
		Tickets: 1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "missing required field: user_id", body["error"])
}

func TestGatewayPersistenceFailureLeavesInventoryAlone(t *testing.T) {
	c := newTestCluster(t, config.BookingConfig{})

	resp, _ := postJSON(t, c.userSrv.URL+"/register", models.RegisterRequest{
		Email: "carol@example.com", Password: "pw", Name: "Carol",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, created := postJSON(t, c.eventSrv.URL+"/events/create", models.CreateEventRequest{
		Name: "Go Conference", Price: 20.0, TicketsAvailable: 5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	eventID := created["event_id"].(string)

	c.bookings.FailNext = true
	resp, body := postJSON(t, c.userSrv.URL+"/bookings", models.BookingRequest{
		UserID: 1, EventID: eventID, Tickets: 2,
	})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "Downstream service unavailable", body["error"])

	_, event := getJSON(t, c.eventSrv.URL+"/events/"+eventID)
	assert.Equal(t, 5.0, event["tickets_available"], "inventory untouched when the gateway fails")
	assert.Empty(t, c.mailer.sent)
}

func TestGatewayErrorsAreGeneric(t *testing.T) {
	// Hitting the gateway directly: a storage failure yields a bare 500 with
	// no internal detail.
	c := newTestCluster(t, config.BookingConfig{})

	c.bookings.FailNext = true
	resp, body := postJSON(t, c.bookingSrv.URL+"/bookings", models.BookingPayload{
		UserID: 1, EventID: "e1", Tickets: 1, Amount: 20.0, UserEmail: "alice@example.com",
	})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal server error", body["error"])
	assert.NotContains(t, fmt.Sprint(body), "simulated", "storage detail must not leak")
}

func TestNotificationFailureDoesNotFailBooking(t *testing.T) {
	c := newTestCluster(t, config.BookingConfig{NotifyMode: "http"})
	c.mailer.err = fmt.Errorf("smtp: connection refused")

	resp, _ := postJSON(t, c.userSrv.URL+"/register", models.RegisterRequest{
		Email: "dave@example.com", Password: "pw", Name: "Dave",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, created := postJSON(t, c.eventSrv.URL+"/events/create", models.CreateEventRequest{
		Name: "Go Conference", Price: 20.0, TicketsAvailable: 5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	eventID := created["event_id"].(string)

	resp, booking := postJSON(t, c.userSrv.URL+"/bookings", models.BookingRequest{
		UserID: 1, EventID: eventID, Tickets: 1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "the booking survives a failed notification")
	assert.Equal(t, "confirmed", booking["status"])

	// The failed attempt is still audited.
	bookingID := int64(booking["id"].(float64))
	_, audit := getJSON(t, fmt.Sprintf("%s/notifications/%d", c.notificationSrv.URL, bookingID))
	records := audit["data"].([]interface{})
	require.Len(t, records, 1)
	assert.Equal(t, "failed", records[0].(map[string]interface{})["status"])
}

func TestSendEmailReportsFailureInBody(t *testing.T) {
	c := newTestCluster(t, config.BookingConfig{})
	c.mailer.err = fmt.Errorf("smtp: connection refused")

	resp, body := postJSON(t, c.notificationSrv.URL+"/send-email", models.SendEmailRequest{
		BookingID: 9,
		UserEmail: "alice@example.com",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode, "a transport failure is not an HTTP error")
	assert.Equal(t, false, body["success"])
}

func TestEventEndpoints(t *testing.T) {
	c := newTestCluster(t, config.BookingConfig{})

	resp, _ := getJSON(t, c.eventSrv.URL+"/events/not-there")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, created := postJSON(t, c.eventSrv.URL+"/events/create", models.CreateEventRequest{
		Name: "Go Conference",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	eventID := created["event_id"].(string)

	req, err := http.NewRequest(http.MethodDelete, c.eventSrv.URL+"/events/"+eventID, nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer delResp.Body.Close()
	assert.Equal(t, http.StatusOK, delResp.StatusCode)

	resp, _ = getJSON(t, c.eventSrv.URL+"/events/"+eventID)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLoginFailureReturns401(t *testing.T) {
	c := newTestCluster(t, config.BookingConfig{})

	resp, _ := postJSON(t, c.userSrv.URL+"/login", models.LoginRequest{
		Username: "ghost@example.com",
		Password: "pw",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
}
