package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventify/internal/logger"
	"eventify/internal/models"
	"eventify/internal/services"
	"eventify/internal/storage"
)

type fakeSessionStore struct {
	sessions map[string]int64
	err      error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]int64)}
}

func (s *fakeSessionStore) SaveSession(ctx context.Context, token string, userID int64) error {
	if s.err != nil {
		return s.err
	}
	s.sessions[token] = userID
	return nil
}

func (s *fakeSessionStore) GetSession(ctx context.Context, token string) (int64, error) {
	id, ok := s.sessions[token]
	if !ok {
		return 0, errors.New("session not found")
	}
	return id, nil
}

func newUserService() (*services.UserService, *fakeSessionStore) {
	sessions := newFakeSessionStore()
	return services.NewUserService(storage.NewInMemoryUserStore(), sessions, logger.NewLogger()), sessions
}

func registerReq() *models.RegisterRequest {
	return &models.RegisterRequest{
		Email:    "alice@example.com",
		Password: "s3cret",
		Name:     "Alice",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, sessions := newUserService()

	user, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "s3cret", user.PasswordHash, "passwords are stored hashed")

	token, err := svc.Login(context.Background(), &models.LoginRequest{
		Username: "alice@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)
	assert.Equal(t, user.ID, token.UserID)

	id, err := sessions.GetSession(context.Background(), token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc, _ := newUserService()

	req := registerReq()
	req.Email = "  Alice@Example.COM "
	user, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	_, err = svc.Login(context.Background(), &models.LoginRequest{
		Username: "ALICE@example.com",
		Password: "s3cret",
	})
	assert.NoError(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newUserService()

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerReq())
	assert.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newUserService()

	cases := []struct {
		name  string
		apply func(*models.RegisterRequest)
		field string
	}{
		{"email", func(r *models.RegisterRequest) { r.Email = "" }, "email"},
		{"password", func(r *models.RegisterRequest) { r.Password = "" }, "password"},
		{"name", func(r *models.RegisterRequest) { r.Name = " " }, "name"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := registerReq()
			tc.apply(req)

			_, err := svc.Register(context.Background(), req)
			var verr *services.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newUserService()

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &models.LoginRequest{Username: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Unknown accounts get the same error as bad passwords.
	_, err = svc.Login(context.Background(), &models.LoginRequest{Username: "nobody@example.com", Password: "s3cret"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestGetProfile(t *testing.T) {
	svc, _ := newUserService()

	user, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	profile, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, profile.Email)
	assert.Equal(t, "Alice", profile.Name)

	_, err = svc.GetProfile(context.Background(), 999)
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}
