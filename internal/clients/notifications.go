package clients

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"eventify/internal/models"
)

// NotificationClient is the direct (non-queued) trigger path into the
// notification service. Same at-most-once semantics as the queue: the caller
// logs failures and moves on.
type NotificationClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewNotificationClient(baseURL string) *NotificationClient {
	return &NotificationClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *NotificationClient) SendEmail(ctx context.Context, bookingID int64, userEmail string) error {
	endpoint := c.baseURL + "/send-email"

	req := models.SendEmailRequest{BookingID: bookingID, UserEmail: userEmail}
	var resp models.SendEmailResponse
	status, body, err := doJSON(ctx, c.httpClient, http.MethodPost, endpoint, req, &resp)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return &StatusError{Service: "notification-service", StatusCode: status, Body: string(body)}
	}
	if !resp.Success {
		return fmt.Errorf("notification service reported failure: %s", resp.Message)
	}
	return nil
}
