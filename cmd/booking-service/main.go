package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"eventify/internal/clients"
	"eventify/internal/config"
	"eventify/internal/handlers"
	"eventify/internal/kafka"
	"eventify/internal/logger"
	"eventify/internal/middleware"
	"eventify/internal/services"
	"eventify/internal/storage"
)

var log *logger.Logger

func main() {
	log = logger.NewLogger()
	defer log.Close()

	if err := godotenv.Load(); err != nil {
		log.Warn("ENV", "Error loading .env file, using environment variables")
	}

	log.LogProcess("STARTUP", "Booking service starting up...")

	cfg := config.Load()
	if os.Getenv("SERVER_PORT") == "" {
		cfg.Server.Port = "5003"
	}
	log.Info("CONFIG", "Configuration loaded successfully")

	log.LogProcess("DATABASE", "Initializing MySQL database...")
	store, err := storage.NewMySQLStore(cfg.Database, log)
	if err != nil {
		log.Fatal("DATABASE", "Failed to initialize MySQL: "+err.Error())
	}
	defer store.Close()

	// The confirmation trigger is queued by default; the direct HTTP path is
	// selected with BOOKING_NOTIFY_MODE=http.
	var notifier services.ConfirmationNotifier
	switch cfg.Booking.NotifyMode {
	case "http":
		notifier = services.NewDirectNotifier(clients.NewNotificationClient(cfg.Services.NotificationServiceURL))
		log.LogProcess("NOTIFY", "Using direct HTTP notification trigger")
	default:
		log.LogProcess("KAFKA", "Initializing Kafka producer...")
		producer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.MockMode, log)
		if err != nil {
			log.Fatal("KAFKA", "Failed to create Kafka producer: "+err.Error())
		}
		defer producer.Close()
		notifier = services.NewKafkaNotifier(producer)
		log.LogKafka("INIT", "producer", "Kafka producer initialized successfully")
	}

	bookingService := services.NewBookingService(store, notifier, log)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	log.LogProcess("HANDLER", "All handlers initialized")

	router := setupRouter(bookingHandler)
	log.LogProcess("ROUTER", "HTTP router configured")

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.LogProcess("SERVER", "Starting HTTP server on port "+cfg.Server.Port)
		log.Info("STARTUP", "Booking service is ready to accept requests")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("SERVER", "Server failed to start: "+err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Warn("SHUTDOWN", "Received shutdown signal, initiating graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("SHUTDOWN", "Server forced to shutdown: "+err.Error())
	}

	log.Info("SHUTDOWN", "Booking service shutdown completed successfully")
}

func setupRouter(bookingHandler *handlers.BookingHandler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())
	router.Use(middleware.RateLimit(log, 100))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
			"service":   "booking-service",
			"version":   "1.0.0",
		})
	})

	router.POST("/bookings", bookingHandler.CreateBooking)
	router.GET("/bookings/:id", bookingHandler.GetBooking)
	router.GET("/users/:id/bookings", bookingHandler.ListUserBookings)

	log.LogProcess("ROUTER", "All routes registered successfully")
	return router
}
