package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"eventify/internal/models"
	"eventify/internal/services"
	"eventify/internal/utils"
)

// NotificationHandler is the direct-call trigger path plus a read endpoint
// over the audit log.
type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// SendEmail triggers one delivery attempt synchronously. A transport failure
// is reported as success=false, not as an HTTP error: the attempt happened
// and was audited.
func (h *NotificationHandler) SendEmail(c *gin.Context) {
	var req models.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	if err := h.notifications.SendConfirmation(c.Request.Context(), req.BookingID, req.UserEmail); err != nil {
		c.JSON(http.StatusOK, models.SendEmailResponse{
			Success: false,
			Message: "Failed to send confirmation email",
		})
		return
	}

	c.JSON(http.StatusOK, models.SendEmailResponse{
		Success: true,
		Message: "Confirmation email sent",
	})
}

func (h *NotificationHandler) ListByBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("booking_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid booking id", ""))
		return
	}

	records, err := h.notifications.ListByBooking(c.Request.Context(), bookingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Internal server error", ""))
		return
	}
	if records == nil {
		records = []*models.NotificationRecord{}
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Notifications retrieved", records))
}
