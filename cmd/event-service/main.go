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

	log.LogProcess("STARTUP", "Event service starting up...")

	cfg := config.Load()
	if os.Getenv("SERVER_PORT") == "" {
		cfg.Server.Port = "5000"
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

	eventStore := storage.NewMongoEventStore(mongoClient, cfg.Mongo.Database, log)
	eventService := services.NewEventService(eventStore, log)
	eventHandler := handlers.NewEventHandler(eventService)
	log.LogProcess("HANDLER", "All handlers initialized")

	router := setupRouter(eventHandler)
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
		log.Info("STARTUP", "Event service is ready to accept requests")

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

	log.Info("SHUTDOWN", "Event service shutdown completed successfully")
}

func setupRouter(eventHandler *handlers.EventHandler) *gin.Engine {
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
			"service":   "event-service",
			"version":   "1.0.0",
		})
	})

	router.GET("/events", eventHandler.ListEvents)
	router.POST("/events/create", eventHandler.CreateEvent)
	router.GET("/events/:id", eventHandler.GetEvent)
	router.PUT("/events/:id/edit", eventHandler.EditEvent)
	router.DELETE("/events/:id", eventHandler.DeleteEvent)

	log.LogProcess("ROUTER", "All routes registered successfully")
	return router
}
