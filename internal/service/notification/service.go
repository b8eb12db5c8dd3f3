package notification

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"leadhub/internal/domain"
	"leadhub/internal/repository"
	"leadhub/internal/service/livesync"
)

const defaultListLimit = 50

type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error

	NotifyMention(ctx context.Context, toUserID, leadID, actorID uuid.UUID) error
	NotifyAssigned(ctx context.Context, toUserID, leadID, actorID uuid.UUID) error
}

type service struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	leadRepo  repository.LeadRepository
	broker    livesync.Broker
}

func NewService(
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	leadRepo repository.LeadRepository,
	broker livesync.Broker,
) Service {
	return &service{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		leadRepo:  leadRepo,
		broker:    broker,
	}
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	return s.notifRepo.ListByUser(ctx, userID, defaultListLimit)
}

func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *service) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	notif, err := s.notifRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notif == nil || notif.ToUserID != userID {
		return domain.ErrNotificationNotFound
	}

	if err := s.notifRepo.MarkRead(ctx, notificationID); err != nil {
		return err
	}
	s.signal(ctx, userID)
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.notifRepo.MarkAllRead(ctx, userID); err != nil {
		return err
	}
	s.signal(ctx, userID)
	return nil
}

func (s *service) NotifyMention(ctx context.Context, toUserID, leadID, actorID uuid.UUID) error {
	return s.create(ctx, toUserID, leadID, actorID, domain.NotifMention,
		"%s mentioned you on %s")
}

func (s *service) NotifyAssigned(ctx context.Context, toUserID, leadID, actorID uuid.UUID) error {
	return s.create(ctx, toUserID, leadID, actorID, domain.NotifAssigned,
		"%s assigned %s to you")
}

func (s *service) create(ctx context.Context, toUserID, leadID, actorID uuid.UUID, typ domain.NotificationType, format string) error {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return fmt.Errorf("failed to get actor: %w", err)
	}

	lead, err := s.leadRepo.GetByID(ctx, leadID)
	if err != nil {
		return fmt.Errorf("failed to get lead: %w", err)
	}

	company := "a lead"
	if lead != nil {
		company = lead.CompanyName
	}

	notif := &domain.Notification{
		ID:       uuid.New(),
		ToUserID: toUserID,
		LeadID:   leadID,
		Type:     typ,
		Message:  fmt.Sprintf(format, actor.DisplayName(), company),
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return err
	}
	s.signal(ctx, toUserID)
	return nil
}

func (s *service) signal(ctx context.Context, userID uuid.UUID) {
	if s.broker == nil {
		return
	}
	if err := s.broker.Publish(ctx, livesync.KeyNotifications(userID.String())); err != nil {
		log.Printf("Failed to publish notification signal for user %s: %v", userID, err)
	}
}
