package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Mongo    MongoConfig
	Kafka    KafkaConfig
	Redis    RedisConfig
	Mail     MailConfig
	Services ServicesConfig
	Booking  BookingConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         string
	Username     string
	Password     string
	Database     string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

type MongoConfig struct {
	URI         string
	Database    string
	MaxPoolSize uint64
	MinPoolSize uint64
	Timeout     time.Duration
}

type KafkaConfig struct {
	Brokers  []string
	GroupID  string
	MockMode bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type MailConfig struct {
	SMTPHost string
	SMTPPort string
	Username string
	Password string
	From     string
}

// ServicesConfig holds the base URLs of the other services the orchestrator
// and the booking gateway call over HTTP.
type ServicesConfig struct {
	EventServiceURL        string
	BookingServiceURL      string
	NotificationServiceURL string
}

// BookingConfig controls the optional hardening of the booking workflow.
// With both flags off (the default) there is no availability check before
// booking and no concurrency control on the inventory decrement.
type BookingConfig struct {
	// CheckAvailability rejects bookings for more tickets than the event
	// currently advertises before the booking record is created.
	CheckAvailability bool
	// LockInventory serializes bookings per event via a Redis lock held
	// across the fetch-book-decrement sequence.
	LockInventory bool
	// NotifyMode selects how the booking gateway triggers the confirmation
	// notification: "kafka" (queued) or "http" (direct call).
	NotifyMode string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnvOrDefault("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Host:         getEnvOrDefault("DB_HOST", "localhost"),
			Port:         getEnvOrDefault("DB_PORT", "3306"),
			Username:     getEnvOrDefault("DB_USER", "root"),
			Password:     getEnvOrDefault("DB_PASS", "password"),
			Database:     getEnvOrDefault("DB_NAME", "eventify"),
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxLifetime:  getDurationEnv("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Mongo: MongoConfig{
			URI:         getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
			Database:    getEnvOrDefault("MONGO_DB", "event_db"),
			MaxPoolSize: uint64(getIntEnv("MONGO_MAX_POOL_SIZE", 100)),
			MinPoolSize: uint64(getIntEnv("MONGO_MIN_POOL_SIZE", 10)),
			Timeout:     getDurationEnv("MONGO_TIMEOUT", 10*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:  strings.Split(getEnvOrDefault("KAFKA_BROKERS", "localhost:9092"), ","),
			GroupID:  getEnvOrDefault("KAFKA_GROUP_ID", "notification-service"),
			MockMode: getBoolEnv("KAFKA_MOCK_MODE", false),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Mail: MailConfig{
			SMTPHost: getEnvOrDefault("MAIL_SERVER", "smtp.gmail.com"),
			SMTPPort: getEnvOrDefault("MAIL_PORT", "587"),
			Username: os.Getenv("MAIL_USERNAME"),
			Password: os.Getenv("MAIL_PASSWORD"),
			From:     getEnvOrDefault("MAIL_FROM", os.Getenv("MAIL_USERNAME")),
		},
		Services: ServicesConfig{
			EventServiceURL:        getEnvOrDefault("EVENT_SERVICE_URL", "http://localhost:5000"),
			BookingServiceURL:      getEnvOrDefault("BOOKING_SERVICE_URL", "http://localhost:5003"),
			NotificationServiceURL: getEnvOrDefault("NOTIFICATION_SERVICE_URL", "http://localhost:5004"),
		},
		Booking: BookingConfig{
			CheckAvailability: getBoolEnv("BOOKING_CHECK_AVAILABILITY", false),
			LockInventory:     getBoolEnv("BOOKING_LOCK_INVENTORY", false),
			NotifyMode:        getEnvOrDefault("BOOKING_NOTIFY_MODE", "kafka"),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
