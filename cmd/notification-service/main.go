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

	"eventify/internal/config"
	"eventify/internal/handlers"
	"eventify/internal/kafka"
	"eventify/internal/logger"
	"eventify/internal/mail"
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

	log.LogProcess("STARTUP", "Notification service starting up...")

	cfg := config.Load()
	if os.Getenv("SERVER_PORT") == "" {
		cfg.Server.Port = "5004"
	}
	log.Info("CONFIG", "Configuration loaded successfully")

	log.LogProcess("DATABASE", "Connecting to MongoDB...")
	mongoClient, err := storage.NewMongoClient(context.Background(), cfg.Mongo, log)
	if err != nil {
		log.Fatal("DATABASE", "Failed to connect to MongoDB: "+err.Error())
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Error("DATABASE", "Failed to disconnect MongoDB: "+err.Error())
		}
	}()

	notificationStore := storage.NewMongoNotificationStore(mongoClient, cfg.Mongo.Database, log)
	sender := mail.NewSender(cfg.Mail, log)
	notificationService := services.NewNotificationService(notificationStore, sender, log)

	log.LogProcess("KAFKA", "Initializing Kafka consumer...")
	consumer, err := kafka.NewBookingConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, log)
	if err != nil {
		log.Fatal("KAFKA", "Failed to create Kafka consumer: "+err.Error())
	}
	defer consumer.Close()
	log.LogKafka("INIT", "consumer", "Kafka consumer initialized successfully")

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()

	go func() {
		log.LogKafka("START", "consumer", "Starting Kafka consumer goroutine")
		if err := consumer.ConsumeBookings(consumerCtx, notificationService.HandleBookingEvent); err != nil {
			log.Error("KAFKA", "Consumer error: "+err.Error())
		}
	}()

	notificationHandler := handlers.NewNotificationHandler(notificationService)
	log.LogProcess("HANDLER", "All handlers initialized")

	router := setupRouter(notificationHandler)
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
		log.Info("STARTUP", "Notification service is ready to accept requests")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("SERVER", "Server failed to start: "+err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Warn("SHUTDOWN", "Received shutdown signal, initiating graceful shutdown...")
	stopConsumer()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("SHUTDOWN", "Server forced to shutdown: "+err.Error())
	}

	log.Info("SHUTDOWN", "Notification service shutdown completed successfully")
}

func setupRouter(notificationHandler *handlers.NotificationHandler) *gin.Engine {
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
			"service":   "notification-service",
			"version":   "1.0.0",
		})
	})

	router.POST("/send-email", notificationHandler.SendEmail)
	router.GET("/notifications/:booking_id", notificationHandler.ListByBooking)

	log.LogProcess("ROUTER", "All routes registered successfully")
	return router
}
