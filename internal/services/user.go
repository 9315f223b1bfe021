package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"eventify/internal/logger"
	"eventify/internal/models"
	"eventify/internal/storage"
	"eventify/internal/utils"
)

// SessionStore keeps opaque login tokens. Backed by Redis in production.
type SessionStore interface {
	SaveSession(ctx context.Context, token string, userID int64) error
	GetSession(ctx context.Context, token string) (int64, error)
}

type UserService struct {
	users    storage.UserStore
	sessions SessionStore
	log      *logger.Logger
}

func NewUserService(users storage.UserStore, sessions SessionStore, log *logger.Logger) *UserService {
	return &UserService{
		users:    users,
		sessions: sessions,
		log:      log,
	}
}

func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" {
		return nil, &ValidationError{Field: "email"}
	}
	if req.Password == "" {
		return nil, &ValidationError{Field: "password"}
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, &ValidationError{Field: "name"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(req.Name),
	}

	if err := s.users.SaveUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.log.Info("USER", fmt.Sprintf("New user registered: %s", user.Email))
	return user, nil
}

// Login verifies credentials and issues an opaque bearer token with a TTL.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Username))

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.log.LogSecurity("LOGIN_FAILED", fmt.Sprintf("Bad password for %s", email))
		return nil, ErrInvalidCredentials
	}

	token := utils.GenerateToken()
	if err := s.sessions.SaveSession(ctx, token, user.ID); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.log.Info("USER", fmt.Sprintf("User login: %s", user.Email))
	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      user.ID,
	}, nil
}

func (s *UserService) GetProfile(ctx context.Context, id int64) (*models.UserProfile, error) {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &models.UserProfile{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}, nil
}
