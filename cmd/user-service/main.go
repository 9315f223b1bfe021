package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"eventify/internal/clients"
	"eventify/internal/config"
	"eventify/internal/handlers"
	"eventify/internal/logger"
	"eventify/internal/middleware"
	rediswrap "eventify/internal/redis"
	"eventify/internal/services"
	"eventify/internal/storage"
)

// Global logger instance
var log *logger.Logger

func main() {
	log = logger.NewLogger()
	defer log.Close()

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn("ENV", "Error loading .env file, using environment variables")
	}

	log.LogProcess("STARTUP", "User service starting up...")

	cfg := config.Load()
	if os.Getenv("SERVER_PORT") == "" {
		cfg.Server.Port = "5001"
	}
	log.Info("CONFIG", "Configuration loaded successfully")

	log.LogProcess("DATABASE", "Initializing MySQL database...")
	store, err := storage.NewMySQLStore(cfg.Database, log)
	if err != nil {
		log.Fatal("DATABASE", "Failed to initialize MySQL: "+err.Error())
	}
	defer store.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	sessions := rediswrap.NewRedis(redisClient)
	log.LogProcess("SERVICE", "Redis client initialized")

	eventClient := clients.NewEventClient(cfg.Services.EventServiceURL)
	bookingClient := clients.NewBookingClient(cfg.Services.BookingServiceURL)

	userService := services.NewUserService(store, sessions, log)
	orchestrator := services.NewOrchestrator(store, eventClient, bookingClient, sessions2locker(sessions), cfg.Booking, log)
	log.LogProcess("SERVICE", "User service and booking orchestrator initialized")

	userHandler := handlers.NewUserHandler(userService, orchestrator, eventClient)
	log.LogProcess("HANDLER", "All handlers initialized")

	router := setupRouter(userHandler)
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
		log.Info("STARTUP", "User service is ready to accept requests")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("SERVER", "Server failed to start: "+err.Error())
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Warn("SHUTDOWN", "Received shutdown signal, initiating graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("SHUTDOWN", "Server forced to shutdown: "+err.Error())
	}

	log.Info("SHUTDOWN", "User service shutdown completed successfully")
}

// sessions2locker narrows the Redis wrapper to the locker interface so the
// orchestrator does not see the session methods.
func sessions2locker(r *rediswrap.Redis) services.InventoryLocker {
	return r
}

func setupRouter(userHandler *handlers.UserHandler) *gin.Engine {
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
			"service":   "user-service",
			"version":   "1.0.0",
		})
	})

	router.POST("/register", userHandler.Register)
	router.POST("/login", userHandler.Login)
	router.GET("/users/:id", userHandler.GetUser)
	router.POST("/bookings", userHandler.CreateBooking)
	router.GET("/events", userHandler.ListEvents)

	log.LogProcess("ROUTER", "All routes registered successfully")
	return router
}
