package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"eventify/internal/clients"
	"eventify/internal/models"
	"eventify/internal/services"
	"eventify/internal/utils"
)

// UserHandler serves the user store endpoints and the booking orchestration
// endpoint, which lives in the user service because that is where the user
// record (and its email) is local.
type UserHandler struct {
	users        *services.UserService
	orchestrator *services.Orchestrator
	events       *clients.EventClient
}

func NewUserHandler(users *services.UserService, orchestrator *services.Orchestrator, events *clients.EventClient) *UserHandler {
	return &UserHandler{
		users:        users,
		orchestrator: orchestrator,
		events:       events,
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	if _, err := h.users.Register(c.Request.Context(), &req); err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(http.StatusConflict, utils.ErrorResponse("Email already registered", ""))
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, utils.ErrorResponse(validationErr.Error(), ""))
		default:
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Internal server error", ""))
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	token, err := h.users.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, utils.ErrorResponse("Invalid credentials", ""))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Internal server error", ""))
		return
	}

	c.JSON(http.StatusOK, token)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid user id", ""))
		return
	}

	profile, err := h.users.GetProfile(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, utils.ErrorResponse("User not found", ""))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Internal server error", ""))
		return
	}

	c.JSON(http.StatusOK, profile)
}

// CreateBooking is the orchestrated booking entry point.
func (h *UserHandler) CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	booking, err := h.orchestrator.CreateBooking(c.Request.Context(), &req)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, utils.ErrorResponse(validationErr.Error(), ""))
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, utils.ErrorResponse("User not found", ""))
		case errors.Is(err, services.ErrEventNotFound):
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Event not found", ""))
		case errors.Is(err, services.ErrNotEnoughTickets):
			c.JSON(http.StatusConflict, utils.ErrorResponse("Not enough tickets available", ""))
		case errors.Is(err, services.ErrEventBusy):
			c.JSON(http.StatusServiceUnavailable, utils.ErrorResponse("Event is busy, try again", ""))
		case errors.Is(err, services.ErrDownstreamTimeout):
			c.JSON(http.StatusServiceUnavailable, utils.ErrorResponse("Downstream service timed out", ""))
		case errors.Is(err, services.ErrDownstreamUnavailable):
			c.JSON(http.StatusBadGateway, utils.ErrorResponse("Downstream service unavailable", ""))
		default:
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Internal server error", ""))
		}
		return
	}

	// The gateway's booking goes back to the client as-is.
	c.JSON(http.StatusCreated, booking)
}

// ListEvents proxies the event catalogue so browsing and booking share one
// entry point.
func (h *UserHandler) ListEvents(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	resp, err := h.events.ListEvents(c.Request.Context(), c.Query("search"), page)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, utils.ErrorResponse("Event service unavailable", ""))
		return
	}

	c.JSON(http.StatusOK, resp)
}
