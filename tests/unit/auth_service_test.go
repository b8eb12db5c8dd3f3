package unit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"leadhub/internal/config"
	"leadhub/internal/domain"
	"leadhub/internal/repository"
	"leadhub/internal/service/auth"
	"leadhub/tests/mocks"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates Inactive Member", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, new(mocks.SessionRepository), testConfig())

		userRepo.On("ExistsByEmail", ctx, "new@example.com").Return(false, nil).Once()
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "new@example.com" && u.Role == "member" && !u.IsActive
		})).Return(nil).Once()

		user, err := svc.Register(ctx, domain.RegisterInput{
			Name:     "New User",
			Email:    "new@example.com",
			Password: "secret123",
		})

		assert.NoError(t, err)
		assert.False(t, user.IsActive)
		userRepo.AssertExpectations(t)
	})

	t.Run("Weak Password", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, new(mocks.SessionRepository), testConfig())

		_, err := svc.Register(ctx, domain.RegisterInput{
			Name:     "New User",
			Email:    "new@example.com",
			Password: "short",
		})

		assert.ErrorIs(t, err, auth.ErrWeakPassword)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Email Already Registered", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, new(mocks.SessionRepository), testConfig())

		userRepo.On("ExistsByEmail", ctx, "taken@example.com").Return(true, nil).Once()

		_, err := svc.Register(ctx, domain.RegisterInput{
			Name:     "New User",
			Email:    "taken@example.com",
			Password: "secret123",
		})

		assert.ErrorIs(t, err, auth.ErrEmailExists)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessionRepo := new(mocks.SessionRepository)
		svc := auth.NewService(userRepo, sessionRepo, testConfig())

		user := &domain.User{
			ID:           uuid.New(),
			Email:        "alice@example.com",
			PasswordHash: hashPassword(t, "secret123"),
			IsActive:     true,
		}

		userRepo.On("GetByEmail", ctx, "alice@example.com").Return(user, nil).Once()
		sessionRepo.On("Create", ctx, mock.MatchedBy(func(s *repository.Session) bool {
			return s.UserID == user.ID && s.TokenHash != ""
		})).Return(nil).Once()

		loggedIn, tokens, err := svc.Login(ctx, domain.LoginInput{
			Email:    "alice@example.com",
			Password: "secret123",
		})

		assert.NoError(t, err)
		assert.Equal(t, user.ID, loggedIn.ID)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		sessionRepo.AssertExpectations(t)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, new(mocks.SessionRepository), testConfig())

		user := &domain.User{
			ID:           uuid.New(),
			Email:        "alice@example.com",
			PasswordHash: hashPassword(t, "secret123"),
			IsActive:     true,
		}
		userRepo.On("GetByEmail", ctx, "alice@example.com").Return(user, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{
			Email:    "alice@example.com",
			Password: "wrong",
		})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, new(mocks.SessionRepository), testConfig())

		userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{
			Email:    "ghost@example.com",
			Password: "secret123",
		})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("Inactive Account With Valid Credentials", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessionRepo := new(mocks.SessionRepository)
		svc := auth.NewService(userRepo, sessionRepo, testConfig())

		user := &domain.User{
			ID:           uuid.New(),
			Email:        "pending@example.com",
			PasswordHash: hashPassword(t, "secret123"),
			IsActive:     false,
		}
		userRepo.On("GetByEmail", ctx, "pending@example.com").Return(user, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{
			Email:    "pending@example.com",
			Password: "secret123",
		})

		assert.ErrorIs(t, err, auth.ErrAccountInactive)
		sessionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Inactive Account With Wrong Password Reports Credentials First", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := auth.NewService(userRepo, new(mocks.SessionRepository), testConfig())

		user := &domain.User{
			ID:           uuid.New(),
			Email:        "pending@example.com",
			PasswordHash: hashPassword(t, "secret123"),
			IsActive:     false,
		}
		userRepo.On("GetByEmail", ctx, "pending@example.com").Return(user, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{
			Email:    "pending@example.com",
			Password: "wrong",
		})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Unknown Token", func(t *testing.T) {
		sessionRepo := new(mocks.SessionRepository)
		svc := auth.NewService(new(mocks.UserRepository), sessionRepo, testConfig())

		sessionRepo.On("GetByTokenHash", ctx, mock.AnythingOfType("string")).Return(nil, nil).Once()

		_, err := svc.RefreshToken(ctx, "bogus")

		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Rotates Session", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessionRepo := new(mocks.SessionRepository)
		svc := auth.NewService(userRepo, sessionRepo, testConfig())

		user := &domain.User{ID: uuid.New(), Email: "alice@example.com", IsActive: true}
		session := &repository.Session{ID: uuid.New(), UserID: user.ID}

		sessionRepo.On("GetByTokenHash", ctx, mock.AnythingOfType("string")).Return(session, nil).Once()
		userRepo.On("GetByID", ctx, user.ID).Return(user, nil).Once()
		sessionRepo.On("Revoke", ctx, session.ID).Return(nil).Once()
		sessionRepo.On("Create", ctx, mock.AnythingOfType("*repository.Session")).Return(nil).Once()

		tokens, err := svc.RefreshToken(ctx, "old-refresh-token")

		assert.NoError(t, err)
		assert.NotEmpty(t, tokens.RefreshToken)
		sessionRepo.AssertExpectations(t)
	})
}

func TestAuthService_ValidateAccessToken(t *testing.T) {
	ctx := context.Background()
	userRepo := new(mocks.UserRepository)
	sessionRepo := new(mocks.SessionRepository)
	svc := auth.NewService(userRepo, sessionRepo, testConfig())

	user := &domain.User{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		PasswordHash: hashPassword(t, "secret123"),
		IsActive:     true,
	}
	userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
	sessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

	_, tokens, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "secret123"})
	assert.NoError(t, err)

	claims, err := svc.ValidateAccessToken(tokens.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)

	_, err = svc.ValidateAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
