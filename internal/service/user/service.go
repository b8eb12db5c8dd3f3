package user

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"leadhub/internal/domain"
	"leadhub/internal/repository"
	"leadhub/internal/service/livesync"
)

var (
	ErrInvalidRole    = errors.New("role must be member, admin or superadmin")
	ErrSelfDeactivate = errors.New("cannot change your own active state")
)

type Service interface {
	List(ctx context.Context) ([]domain.User, error)
	ListActive(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input domain.UpdateProfileInput) (*domain.User, error)
	AssignRole(ctx context.Context, actor *domain.User, input domain.AssignRoleInput) error
	SetActive(ctx context.Context, actor *domain.User, input domain.SetActiveInput) error
}

type service struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	broker      livesync.Broker
}

func NewService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, broker livesync.Broker) Service {
	return &service{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		broker:      broker,
	}
}

func (s *service) List(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.ListAll(ctx)
}

func (s *service) ListActive(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.ListActive(ctx)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input domain.UpdateProfileInput) (*domain.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.AvatarURL != nil {
		user.AvatarURL = input.AvatarURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.signal(ctx)
	return user, nil
}

func (s *service) AssignRole(ctx context.Context, actor *domain.User, input domain.AssignRoleInput) error {
	if !domain.UserRole(input.Role).IsValid() {
		return ErrInvalidRole
	}
	if _, err := s.GetByID(ctx, input.UserID); err != nil {
		return err
	}

	if err := s.userRepo.AssignRole(ctx, input.UserID, input.Role); err != nil {
		return err
	}
	s.signal(ctx)
	return nil
}

// SetActive activates or deactivates an account. Admins cannot flip their
// own state. Deactivation revokes every session, so the user is cut off
// on their next request.
func (s *service) SetActive(ctx context.Context, actor *domain.User, input domain.SetActiveInput) error {
	if actor.ID == input.UserID {
		return ErrSelfDeactivate
	}
	if _, err := s.GetByID(ctx, input.UserID); err != nil {
		return err
	}

	if err := s.userRepo.SetActive(ctx, input.UserID, input.IsActive); err != nil {
		return err
	}

	if !input.IsActive {
		if err := s.sessionRepo.RevokeAllForUser(ctx, input.UserID); err != nil {
			log.Printf("Failed to revoke sessions for deactivated user %s: %v", input.UserID, err)
		}
	}

	s.signal(ctx)
	return nil
}

func (s *service) signal(ctx context.Context) {
	if s.broker == nil {
		return
	}
	if err := s.broker.Publish(ctx, livesync.KeyUsers); err != nil {
		log.Printf("Failed to publish users signal: %v", err)
	}
}
