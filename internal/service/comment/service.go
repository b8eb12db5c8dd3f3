package comment

import (
	"context"
	"log"

	"github.com/google/uuid"

	"leadhub/internal/domain"
	"leadhub/internal/repository"
	"leadhub/internal/service/livesync"
	"leadhub/internal/service/notification"
)

type Service interface {
	Create(ctx context.Context, leadID, authorID uuid.UUID, input domain.CreateCommentInput) (*domain.Comment, error)
	ListByLead(ctx context.Context, leadID uuid.UUID) ([]domain.Comment, error)
	SetPinned(ctx context.Context, commentID uuid.UUID, pinned bool) error

	// AppendAudit records a system-generated audit line as a comment. It
	// shares storage with user comments and differs only by content
	// convention.
	AppendAudit(ctx context.Context, leadID, actorID uuid.UUID, content string) error
}

type service struct {
	commentRepo repository.CommentRepository
	leadRepo    repository.LeadRepository
	notifSvc    notification.Service
	broker      livesync.Broker
}

func NewService(
	commentRepo repository.CommentRepository,
	leadRepo repository.LeadRepository,
	notifSvc notification.Service,
	broker livesync.Broker,
) Service {
	return &service{
		commentRepo: commentRepo,
		leadRepo:    leadRepo,
		notifSvc:    notifSvc,
		broker:      broker,
	}
}

// Create stores the comment, then drains the pending mentions into one
// notification per mentioned user. Notification failures are logged, not
// returned; the comment itself is already committed.
func (s *service) Create(ctx context.Context, leadID, authorID uuid.UUID, input domain.CreateCommentInput) (*domain.Comment, error) {
	lead, err := s.leadRepo.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrLeadNotFound
	}

	comment := &domain.Comment{
		ID:      uuid.New(),
		LeadID:  leadID,
		UserID:  authorID,
		Content: input.Content,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	for _, mentioned := range input.Mentions {
		if err := s.notifSvc.NotifyMention(ctx, mentioned, leadID, authorID); err != nil {
			log.Printf("Failed to notify mentioned user %s: %v", mentioned, err)
		}
	}

	s.signal(ctx, leadID)
	return comment, nil
}

func (s *service) ListByLead(ctx context.Context, leadID uuid.UUID) ([]domain.Comment, error) {
	return s.commentRepo.ListByLead(ctx, leadID)
}

func (s *service) SetPinned(ctx context.Context, commentID uuid.UUID, pinned bool) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return domain.ErrCommentNotFound
	}

	if err := s.commentRepo.SetPinned(ctx, commentID, pinned); err != nil {
		return err
	}
	s.signal(ctx, comment.LeadID)
	return nil
}

func (s *service) AppendAudit(ctx context.Context, leadID, actorID uuid.UUID, content string) error {
	comment := &domain.Comment{
		ID:      uuid.New(),
		LeadID:  leadID,
		UserID:  actorID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return err
	}
	s.signal(ctx, leadID)
	return nil
}

func (s *service) signal(ctx context.Context, leadID uuid.UUID) {
	if s.broker == nil {
		return
	}
	if err := s.broker.Publish(ctx, livesync.KeyComments(leadID.String())); err != nil {
		log.Printf("Failed to publish comment signal for lead %s: %v", leadID, err)
	}
}
