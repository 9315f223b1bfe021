package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"eventify/internal/models"
	"eventify/internal/services"
	"eventify/internal/storage"
	"eventify/internal/utils"
)

type EventHandler struct {
	events *services.EventService
}

func NewEventHandler(events *services.EventService) *EventHandler {
	return &EventHandler{events: events}
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	resp, err := h.events.ListEvents(c.Request.Context(), c.Query("search"), page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Internal server error", ""))
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	event, err := h.events.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound):
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Event not found", ""))
		case errors.Is(err, storage.ErrInvalidID):
			c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid event id", ""))
		default:
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Internal server error", ""))
		}
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	event, err := h.events.CreateEvent(c.Request.Context(), &req)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, utils.ErrorResponse(validationErr.Error(), ""))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Internal server error", ""))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Event created successfully!",
		"event_id": event.ID,
	})
}

func (h *EventHandler) EditEvent(c *gin.Context) {
	var req models.EditEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	event, err := h.events.EditEvent(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, utils.ErrorResponse(validationErr.Error(), ""))
		case errors.Is(err, services.ErrEventNotFound):
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Event not found", ""))
		case errors.Is(err, storage.ErrInvalidID):
			c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid event id", ""))
		default:
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Internal server error", ""))
		}
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	err := h.events.DeleteEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound):
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Event not found", ""))
		case errors.Is(err, storage.ErrInvalidID):
			c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid event id", ""))
		default:
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Internal server error", ""))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully!"})
}
