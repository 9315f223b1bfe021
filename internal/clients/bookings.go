package clients

import (
	"context"
	"net/http"
	"time"

	"eventify/internal/models"
)

// bookingCallTimeout bounds the gateway call; the orchestrator fails the
// whole operation when it fires.
const bookingCallTimeout = 30 * time.Second

// BookingClient calls the booking gateway.
type BookingClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewBookingClient(baseURL string) *BookingClient {
	return &BookingClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: bookingCallTimeout},
	}
}

// CreateBooking posts the fully-formed payload and returns the created
// booking on 201. Any other status propagates as a StatusError so the
// orchestrator can refuse to touch inventory.
func (c *BookingClient) CreateBooking(ctx context.Context, payload *models.BookingPayload) (*models.Booking, error) {
	endpoint := c.baseURL + "/bookings"

	var booking models.Booking
	status, body, err := doJSON(ctx, c.httpClient, http.MethodPost, endpoint, payload, &booking)
	if err != nil {
		return nil, err
	}
	if status != http.StatusCreated {
		return nil, &StatusError{Service: "booking-service", StatusCode: status, Body: string(body)}
	}
	return &booking, nil
}
