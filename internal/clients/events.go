package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"eventify/internal/models"
)

// EventClient calls the event service. Fetch and edit are the two operations
// the booking workflow needs; list is used by the aggregated browse endpoint.
type EventClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewEventClient(baseURL string) *EventClient {
	return &EventClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *EventClient) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	endpoint := fmt.Sprintf("%s/events/%s", c.baseURL, url.PathEscape(eventID))

	var event models.Event
	status, body, err := doJSON(ctx, c.httpClient, http.MethodGet, endpoint, nil, &event)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusNotFound:
		return nil, ErrNotFound
	case status < 200 || status >= 300:
		return nil, &StatusError{Service: "event-service", StatusCode: status, Body: string(body)}
	}
	return &event, nil
}

// EditEvent resends the full event record; the event service replaces every
// field, so the caller must not drop any.
func (c *EventClient) EditEvent(ctx context.Context, eventID string, req *models.EditEventRequest) error {
	endpoint := fmt.Sprintf("%s/events/%s/edit", c.baseURL, url.PathEscape(eventID))

	status, body, err := doJSON(ctx, c.httpClient, http.MethodPut, endpoint, req, nil)
	if err != nil {
		return err
	}
	switch {
	case status == http.StatusNotFound:
		return ErrNotFound
	case status < 200 || status >= 300:
		return &StatusError{Service: "event-service", StatusCode: status, Body: string(body)}
	}
	return nil
}

func (c *EventClient) ListEvents(ctx context.Context, search string, page int) (*models.EventListResponse, error) {
	params := url.Values{}
	if search != "" {
		params.Set("search", search)
	}
	params.Set("page", strconv.Itoa(page))
	endpoint := fmt.Sprintf("%s/events?%s", c.baseURL, params.Encode())

	var resp models.EventListResponse
	status, body, err := doJSON(ctx, c.httpClient, http.MethodGet, endpoint, nil, &resp)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, &StatusError{Service: "event-service", StatusCode: status, Body: string(body)}
	}
	return &resp, nil
}
