package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"eventify/internal/models"
	"eventify/internal/services"
	"eventify/internal/utils"
)

// BookingHandler is the booking gateway's HTTP surface.
type BookingHandler struct {
	bookings *services.BookingService
}

func NewBookingHandler(bookings *services.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// CreateBooking persists a booking from a fully-formed payload. The created
// booking is returned bare (not enveloped) because the orchestrator forwards
// this body verbatim to its own caller.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var payload models.BookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	booking, err := h.bookings.CreateBooking(c.Request.Context(), &payload)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, utils.ErrorResponse(validationErr.Error(), ""))
			return
		}
		// Persistence failures stay generic: no internal detail leaves.
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Internal server error", ""))
		return
	}

	c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid booking id", ""))
		return
	}

	booking, err := h.bookings.GetBooking(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Booking not found", ""))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Internal server error", ""))
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) ListUserBookings(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid user id", ""))
		return
	}

	bookings, err := h.bookings.ListBookingsByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Internal server error", ""))
		return
	}
	if bookings == nil {
		bookings = []*models.Booking{}
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Bookings retrieved", bookings))
}
