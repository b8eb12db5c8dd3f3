package unit_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"leadhub/internal/domain"
	"leadhub/internal/service/user"
	"leadhub/tests/mocks"
)

func TestUserService_SetActive(t *testing.T) {
	ctx := context.Background()
	actor := &domain.User{ID: uuid.New(), Name: "Admin", Role: "admin"}
	targetID := uuid.New()

	t.Run("Deactivation Revokes Sessions", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessionRepo := new(mocks.SessionRepository)
		svc := user.NewService(userRepo, sessionRepo, nil)

		userRepo.On("GetByID", ctx, targetID).Return(&domain.User{ID: targetID, IsActive: true}, nil).Once()
		userRepo.On("SetActive", ctx, targetID, false).Return(nil).Once()
		sessionRepo.On("RevokeAllForUser", ctx, targetID).Return(nil).Once()

		err := svc.SetActive(ctx, actor, domain.SetActiveInput{UserID: targetID, IsActive: false})

		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
		sessionRepo.AssertExpectations(t)
	})

	t.Run("Activation Keeps Sessions", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessionRepo := new(mocks.SessionRepository)
		svc := user.NewService(userRepo, sessionRepo, nil)

		userRepo.On("GetByID", ctx, targetID).Return(&domain.User{ID: targetID}, nil).Once()
		userRepo.On("SetActive", ctx, targetID, true).Return(nil).Once()

		err := svc.SetActive(ctx, actor, domain.SetActiveInput{UserID: targetID, IsActive: true})

		assert.NoError(t, err)
		sessionRepo.AssertNotCalled(t, "RevokeAllForUser", mock.Anything, mock.Anything)
	})

	t.Run("Self Deactivation Rejected", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := user.NewService(userRepo, new(mocks.SessionRepository), nil)

		err := svc.SetActive(ctx, actor, domain.SetActiveInput{UserID: actor.ID, IsActive: false})

		assert.ErrorIs(t, err, user.ErrSelfDeactivate)
		userRepo.AssertNotCalled(t, "SetActive", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Target Not Found", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := user.NewService(userRepo, new(mocks.SessionRepository), nil)

		userRepo.On("GetByID", ctx, targetID).Return(nil, nil).Once()

		err := svc.SetActive(ctx, actor, domain.SetActiveInput{UserID: targetID, IsActive: false})

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserService_AssignRole(t *testing.T) {
	ctx := context.Background()
	actor := &domain.User{ID: uuid.New(), Role: "superadmin"}
	targetID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := user.NewService(userRepo, new(mocks.SessionRepository), nil)

		userRepo.On("GetByID", ctx, targetID).Return(&domain.User{ID: targetID}, nil).Once()
		userRepo.On("AssignRole", ctx, targetID, "admin").Return(nil).Once()

		err := svc.AssignRole(ctx, actor, domain.AssignRoleInput{UserID: targetID, Role: "admin"})

		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("Invalid Role", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := user.NewService(userRepo, new(mocks.SessionRepository), nil)

		err := svc.AssignRole(ctx, actor, domain.AssignRoleInput{UserID: targetID, Role: "overlord"})

		assert.ErrorIs(t, err, user.ErrInvalidRole)
		userRepo.AssertNotCalled(t, "AssignRole", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	userRepo := new(mocks.UserRepository)
	svc := user.NewService(userRepo, new(mocks.SessionRepository), nil)

	newName := "Alice Cooper"
	userRepo.On("GetByID", ctx, userID).Return(&domain.User{ID: userID, Name: "Alice"}, nil).Once()
	userRepo.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Name == newName
	})).Return(nil).Once()

	updated, err := svc.UpdateProfile(ctx, userID, domain.UpdateProfileInput{Name: &newName})

	assert.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	userRepo.AssertExpectations(t)
}
