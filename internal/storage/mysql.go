package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventify/internal/config"
	"eventify/internal/logger"
	"eventify/internal/models"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLStore backs the relational stores (users, bookings). Each service
// binary only uses the tables it owns; the schema for both lives here so one
// migration path covers them.
type MySQLStore struct {
	db  *sql.DB
	log *logger.Logger
}

func NewMySQLStore(cfg config.DatabaseConfig, log *logger.Logger) (*MySQLStore, error) {
	log.LogDatabase("CONNECT", "mysql", fmt.Sprintf("Connecting to MySQL at %s:%s", cfg.Host, cfg.Port))

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Error("DATABASE", "Failed to open MySQL connection: "+err.Error())
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MaxLifetime)

	// Test connection
	if err := db.Ping(); err != nil {
		log.Error("DATABASE", "Failed to ping MySQL: "+err.Error())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &MySQLStore{
		db:  db,
		log: log,
	}

	if err := store.initTables(); err != nil {
		log.Error("DATABASE", "Failed to initialize tables: "+err.Error())
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	log.LogDatabase("SUCCESS", "mysql", "MySQL connection established and tables initialized")
	return store, nil
}

func (s *MySQLStore) initTables() error {
	s.log.LogDatabase("MIGRATE", "mysql", "Creating users and bookings tables if not exists")

	queries := []string{
		`
    CREATE TABLE IF NOT EXISTS users (
        id BIGINT AUTO_INCREMENT PRIMARY KEY,
        email VARCHAR(255) NOT NULL UNIQUE,
        password_hash VARCHAR(255) NOT NULL,
        name VARCHAR(255) NOT NULL,
        created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
        INDEX idx_email (email)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
    `,
		`
    CREATE TABLE IF NOT EXISTS bookings (
        id BIGINT AUTO_INCREMENT PRIMARY KEY,
        user_id BIGINT NOT NULL,
        event_id VARCHAR(64) NOT NULL,
        tickets INT NOT NULL,
        amount DECIMAL(10,2) NOT NULL,
        status VARCHAR(50) NOT NULL,
        created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
        INDEX idx_user_id (user_id),
        INDEX idx_event_id (event_id),
        INDEX idx_status (status)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
    `,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	s.log.LogDatabase("SUCCESS", "mysql", "Users and bookings tables ready")
	return nil
}

func (s *MySQLStore) SaveUser(ctx context.Context, user *models.User) error {
	s.log.LogDatabase("INSERT", "mysql", fmt.Sprintf("Saving user %s", user.Email))

	query := `
    INSERT INTO users (email, password_hash, name, created_at)
    VALUES (?, ?, ?, ?)
    `

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	result, err := s.db.ExecContext(ctx, query, user.Email, user.PasswordHash, user.Name, user.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			s.log.LogDatabase("CONFLICT", "mysql", fmt.Sprintf("Email %s already registered", user.Email))
			return ErrDuplicateEmail
		}
		s.log.Error("DATABASE", fmt.Sprintf("Failed to save user %s: %s", user.Email, err.Error()))
		return fmt.Errorf("failed to save user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read user id: %w", err)
	}
	user.ID = id

	s.log.LogDatabase("SUCCESS", "mysql", fmt.Sprintf("User %s saved with id %d", user.Email, user.ID))
	return nil
}

func (s *MySQLStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	s.log.LogDatabase("SELECT", "mysql", fmt.Sprintf("Fetching user %d", id))

	query := `
    SELECT id, email, password_hash, name, created_at
    FROM users WHERE id = ?
    `

	user := &models.User{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.log.LogDatabase("NOT_FOUND", "mysql", fmt.Sprintf("User %d not found", id))
			return nil, ErrNotFound
		}
		s.log.Error("DATABASE", fmt.Sprintf("Failed to get user %d: %s", id, err.Error()))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (s *MySQLStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.log.LogDatabase("SELECT", "mysql", fmt.Sprintf("Fetching user by email %s", email))

	query := `
    SELECT id, email, password_hash, name, created_at
    FROM users WHERE email = ?
    `

	user := &models.User{}
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.log.Error("DATABASE", fmt.Sprintf("Failed to get user by email: %s", err.Error()))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (s *MySQLStore) SaveBooking(ctx context.Context, booking *models.Booking) error {
	s.log.LogDatabase("INSERT", "mysql", fmt.Sprintf("Saving booking for user %d event %s", booking.UserID, booking.EventID))

	query := `
    INSERT INTO bookings (user_id, event_id, tickets, amount, status, created_at)
    VALUES (?, ?, ?, ?, ?, ?)
    `

	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}

	result, err := s.db.ExecContext(ctx, query,
		booking.UserID, booking.EventID, booking.Tickets, booking.Amount, booking.Status, booking.CreatedAt,
	)
	if err != nil {
		s.log.Error("DATABASE", fmt.Sprintf("Failed to save booking: %s", err.Error()))
		return fmt.Errorf("failed to save booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read booking id: %w", err)
	}
	booking.ID = id

	s.log.LogDatabase("SUCCESS", "mysql", fmt.Sprintf("Booking %d saved successfully", booking.ID))
	return nil
}

func (s *MySQLStore) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	s.log.LogDatabase("SELECT", "mysql", fmt.Sprintf("Fetching booking %d", id))

	query := `
    SELECT id, user_id, event_id, tickets, amount, status, created_at
    FROM bookings WHERE id = ?
    `

	booking := &models.Booking{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&booking.ID, &booking.UserID, &booking.EventID, &booking.Tickets,
		&booking.Amount, &booking.Status, &booking.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.log.LogDatabase("NOT_FOUND", "mysql", fmt.Sprintf("Booking %d not found", id))
			return nil, ErrNotFound
		}
		s.log.Error("DATABASE", fmt.Sprintf("Failed to get booking %d: %s", id, err.Error()))
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return booking, nil
}

func (s *MySQLStore) ListBookingsByUser(ctx context.Context, userID int64) ([]*models.Booking, error) {
	s.log.LogDatabase("SELECT", "mysql", fmt.Sprintf("Listing bookings for user %d", userID))

	query := `
    SELECT id, user_id, event_id, tickets, amount, status, created_at
    FROM bookings
    WHERE user_id = ?
    ORDER BY created_at DESC
    `

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		s.log.Error("DATABASE", fmt.Sprintf("Failed to list bookings: %s", err.Error()))
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		booking := &models.Booking{}
		err := rows.Scan(
			&booking.ID, &booking.UserID, &booking.EventID, &booking.Tickets,
			&booking.Amount, &booking.Status, &booking.CreatedAt,
		)
		if err != nil {
			s.log.Error("DATABASE", fmt.Sprintf("Failed to scan booking row: %s", err.Error()))
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err = rows.Err(); err != nil {
		s.log.Error("DATABASE", fmt.Sprintf("Row iteration error: %s", err.Error()))
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	s.log.LogDatabase("SUCCESS", "mysql", fmt.Sprintf("Listed %d bookings for user %d", len(bookings), userID))
	return bookings, nil
}

func (s *MySQLStore) Close() error {
	s.log.LogDatabase("CLOSE", "mysql", "Closing MySQL connection")
	return s.db.Close()
}

func (s *MySQLStore) HealthCheck() error {
	return s.db.Ping()
}
