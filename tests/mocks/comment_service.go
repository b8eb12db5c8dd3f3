package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"leadhub/internal/domain"
)

type CommentService struct {
	mock.Mock
}

func (m *CommentService) Create(ctx context.Context, leadID, authorID uuid.UUID, input domain.CreateCommentInput) (*domain.Comment, error) {
	args := m.Called(ctx, leadID, authorID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentService) ListByLead(ctx context.Context, leadID uuid.UUID) ([]domain.Comment, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *CommentService) SetPinned(ctx context.Context, commentID uuid.UUID, pinned bool) error {
	args := m.Called(ctx, commentID, pinned)
	return args.Error(0)
}

func (m *CommentService) AppendAudit(ctx context.Context, leadID, actorID uuid.UUID, content string) error {
	args := m.Called(ctx, leadID, actorID, content)
	return args.Error(0)
}
