package lead

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"leadhub/internal/domain"
	"leadhub/internal/repository"
	"leadhub/internal/service/changetrack"
	"leadhub/internal/service/comment"
	"leadhub/internal/service/livesync"
	"leadhub/internal/service/notification"
)

var (
	ErrMissingRequiredFields = errors.New("company name and job role are required")
)

type Service interface {
	Create(ctx context.Context, actor *domain.User, input domain.CreateLeadInput) (*domain.Lead, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error)
	List(ctx context.Context) ([]domain.Lead, error)

	// BeginEdit returns the lead plus the field snapshot the save will be
	// diffed against.
	BeginEdit(ctx context.Context, id uuid.UUID) (*domain.Lead, map[string]any, error)
	Save(ctx context.Context, actor *domain.User, id uuid.UUID, snapshot map[string]any, input domain.UpdateLeadInput) (*domain.Lead, error)

	TransitionStatus(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.TransitionStatusInput) error
	Reassign(ctx context.Context, actor *domain.User, id, assigneeID uuid.UUID) error
	SetCreatedBy(ctx context.Context, actor *domain.User, id, creatorID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error

	StatusHistory(ctx context.Context, id uuid.UUID) ([]domain.StatusHistoryEntry, error)
}

type service struct {
	leadRepo    repository.LeadRepository
	historyRepo repository.StatusHistoryRepository
	userRepo    repository.UserRepository
	commentSvc  comment.Service
	notifSvc    notification.Service
	broker      livesync.Broker
}

func NewService(
	leadRepo repository.LeadRepository,
	historyRepo repository.StatusHistoryRepository,
	userRepo repository.UserRepository,
	commentSvc comment.Service,
	notifSvc notification.Service,
	broker livesync.Broker,
) Service {
	return &service{
		leadRepo:    leadRepo,
		historyRepo: historyRepo,
		userRepo:    userRepo,
		commentSvc:  commentSvc,
		notifSvc:    notifSvc,
		broker:      broker,
	}
}

// Create validates the minimum field set, forces the status to "New" and
// assigns the lead to its creator unless told otherwise. A creation audit
// comment is appended best-effort.
func (s *service) Create(ctx context.Context, actor *domain.User, input domain.CreateLeadInput) (*domain.Lead, error) {
	if input.CompanyName == "" || input.JobRole == "" {
		return nil, ErrMissingRequiredFields
	}

	lead := &domain.Lead{
		ID:                 uuid.New(),
		CompanyName:        input.CompanyName,
		JobRole:            input.JobRole,
		ContactPerson:      input.ContactPerson,
		ContactEmail:       input.ContactEmail,
		ContactPhone:       input.ContactPhone,
		Source:             input.Source,
		Status:             domain.StatusNew,
		Tags:               input.Tags,
		Description:        input.Description,
		JobDescriptionLink: input.JobDescriptionLink,
		CreatedBy:          actor.ID,
		AssignedTo:         actor.ID,
	}

	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, err
	}

	s.audit(ctx, lead.ID, actor.ID, fmt.Sprintf("%s created this lead", actor.DisplayName()))
	s.signalLeads(ctx)
	return lead, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrLeadNotFound
	}
	return lead, nil
}

func (s *service) List(ctx context.Context) ([]domain.Lead, error) {
	return s.leadRepo.ListAll(ctx)
}

func (s *service) BeginEdit(ctx context.Context, id uuid.UUID) (*domain.Lead, map[string]any, error) {
	lead, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return lead, lead.SnapshotFields(), nil
}

// Save diffs the submitted fields against the edit snapshot, appends one
// audit comment per changed field, then persists the full field set. A
// missing snapshot skips change tracking silently. Audit failures are
// logged and never block the save.
func (s *service) Save(ctx context.Context, actor *domain.User, id uuid.UUID, snapshot map[string]any, input domain.UpdateLeadInput) (*domain.Lead, error) {
	lead, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.CompanyName == "" || input.JobRole == "" {
		return nil, ErrMissingRequiredFields
	}

	if snapshot != nil {
		for _, entry := range changetrack.Diff(actor.DisplayName(), snapshot, input.Fields()) {
			s.audit(ctx, id, actor.ID, entry.String())
		}
	}

	lead.CompanyName = input.CompanyName
	lead.JobRole = input.JobRole
	lead.ContactPerson = input.ContactPerson
	lead.ContactEmail = input.ContactEmail
	lead.ContactPhone = input.ContactPhone
	lead.Source = input.Source
	lead.Tags = input.Tags
	lead.Description = input.Description
	lead.JobDescriptionLink = input.JobDescriptionLink

	if err := s.leadRepo.UpdateFields(ctx, lead); err != nil {
		return nil, err
	}

	s.signalLeads(ctx)
	return lead, nil
}

// TransitionStatus is a no-op when the status is unchanged. Otherwise the
// lead row and the history ledger update in one transaction, followed by
// an audit comment.
func (s *service) TransitionStatus(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.TransitionStatusInput) error {
	if !domain.IsValidStatus(input.Status) {
		return domain.ErrInvalidStatus
	}

	lead, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if lead.Status == input.Status {
		return nil
	}

	entry := &domain.StatusHistoryEntry{
		ID:         uuid.New(),
		LeadID:     id,
		FromStatus: lead.Status,
		ToStatus:   input.Status,
		ChangedBy:  actor.ID,
		Notes:      input.Notes,
	}
	if err := s.leadRepo.TransitionStatus(ctx, entry); err != nil {
		return err
	}

	s.audit(ctx, id, actor.ID, fmt.Sprintf("%s changed status from %q to %q",
		actor.DisplayName(), lead.Status, input.Status))
	s.signalLeads(ctx)
	s.signal(ctx, livesync.KeyStatusHistory(id.String()))
	return nil
}

// Reassign persists the new assignee, records the handover as an audit
// comment using display names, and notifies the new assignee.
func (s *service) Reassign(ctx context.Context, actor *domain.User, id, assigneeID uuid.UUID) error {
	lead, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	assignee, err := s.userRepo.GetByID(ctx, assigneeID)
	if err != nil {
		return err
	}
	if assignee == nil {
		return domain.ErrUserNotFound
	}
	if lead.AssignedTo == assigneeID {
		return nil
	}

	previous, err := s.userRepo.GetByID(ctx, lead.AssignedTo)
	if err != nil {
		return err
	}
	previousName := lead.AssignedTo.String()
	if previous != nil {
		previousName = previous.DisplayName()
	}

	if err := s.leadRepo.SetAssignedTo(ctx, id, assigneeID); err != nil {
		return err
	}

	s.audit(ctx, id, actor.ID, fmt.Sprintf("%s reassigned this lead from %s to %s",
		actor.DisplayName(), previousName, assignee.DisplayName()))

	if err := s.notifSvc.NotifyAssigned(ctx, assigneeID, id, actor.ID); err != nil {
		log.Printf("Failed to notify assignee %s: %v", assigneeID, err)
	}

	s.signalLeads(ctx)
	return nil
}

func (s *service) SetCreatedBy(ctx context.Context, actor *domain.User, id, creatorID uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	creator, err := s.userRepo.GetByID(ctx, creatorID)
	if err != nil {
		return err
	}
	if creator == nil {
		return domain.ErrUserNotFound
	}

	if err := s.leadRepo.SetCreatedBy(ctx, id, creatorID); err != nil {
		return err
	}

	s.audit(ctx, id, actor.ID, fmt.Sprintf("%s set the creator to %s",
		actor.DisplayName(), creator.DisplayName()))
	s.signalLeads(ctx)
	return nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.leadRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.signalLeads(ctx)
	return nil
}

func (s *service) StatusHistory(ctx context.Context, id uuid.UUID) ([]domain.StatusHistoryEntry, error) {
	return s.historyRepo.ListByLead(ctx, id)
}

func (s *service) audit(ctx context.Context, leadID, actorID uuid.UUID, content string) {
	if err := s.commentSvc.AppendAudit(ctx, leadID, actorID, content); err != nil {
		log.Printf("Failed to append audit comment on lead %s: %v", leadID, err)
	}
}

func (s *service) signalLeads(ctx context.Context) {
	s.signal(ctx, livesync.KeyLeads)
}

func (s *service) signal(ctx context.Context, key string) {
	if s.broker == nil {
		return
	}
	if err := s.broker.Publish(ctx, key); err != nil {
		log.Printf("Failed to publish %s signal: %v", key, err)
	}
}
