package unit_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"leadhub/internal/domain"
	"leadhub/internal/service/comment"
	"leadhub/tests/mocks"
)

func TestCommentService_Create(t *testing.T) {
	ctx := context.Background()
	leadID := uuid.New()
	authorID := uuid.New()

	t.Run("Success With Mentions", func(t *testing.T) {
		commentRepo := new(mocks.CommentRepository)
		leadRepo := new(mocks.LeadRepository)
		notifSvc := new(mocks.NotificationService)
		svc := comment.NewService(commentRepo, leadRepo, notifSvc, nil)

		mentionA := uuid.New()
		mentionB := uuid.New()

		leadRepo.On("GetByID", ctx, leadID).Return(&domain.Lead{ID: leadID}, nil).Once()
		commentRepo.On("Create", ctx, mock.MatchedBy(func(c *domain.Comment) bool {
			return c.LeadID == leadID && c.UserID == authorID && c.Content == "ping @AliceSmith"
		})).Return(nil).Once()
		notifSvc.On("NotifyMention", ctx, mentionA, leadID, authorID).Return(nil).Once()
		notifSvc.On("NotifyMention", ctx, mentionB, leadID, authorID).Return(nil).Once()

		created, err := svc.Create(ctx, leadID, authorID, domain.CreateCommentInput{
			Content:  "ping @AliceSmith",
			Mentions: []uuid.UUID{mentionA, mentionB},
		})

		assert.NoError(t, err)
		assert.Equal(t, leadID, created.LeadID)
		commentRepo.AssertExpectations(t)
		notifSvc.AssertExpectations(t)
	})

	t.Run("Notification Failure Does Not Fail Comment", func(t *testing.T) {
		commentRepo := new(mocks.CommentRepository)
		leadRepo := new(mocks.LeadRepository)
		notifSvc := new(mocks.NotificationService)
		svc := comment.NewService(commentRepo, leadRepo, notifSvc, nil)

		mentioned := uuid.New()

		leadRepo.On("GetByID", ctx, leadID).Return(&domain.Lead{ID: leadID}, nil).Once()
		commentRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		notifSvc.On("NotifyMention", ctx, mentioned, leadID, authorID).Return(assert.AnError).Once()

		created, err := svc.Create(ctx, leadID, authorID, domain.CreateCommentInput{
			Content:  "hello",
			Mentions: []uuid.UUID{mentioned},
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		notifSvc.AssertExpectations(t)
	})

	t.Run("Lead Not Found", func(t *testing.T) {
		commentRepo := new(mocks.CommentRepository)
		leadRepo := new(mocks.LeadRepository)
		svc := comment.NewService(commentRepo, leadRepo, new(mocks.NotificationService), nil)

		leadRepo.On("GetByID", ctx, leadID).Return(nil, nil).Once()

		_, err := svc.Create(ctx, leadID, authorID, domain.CreateCommentInput{Content: "hello"})

		assert.ErrorIs(t, err, domain.ErrLeadNotFound)
		commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCommentService_SetPinned(t *testing.T) {
	ctx := context.Background()
	commentID := uuid.New()
	leadID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		commentRepo := new(mocks.CommentRepository)
		svc := comment.NewService(commentRepo, new(mocks.LeadRepository), new(mocks.NotificationService), nil)

		commentRepo.On("GetByID", ctx, commentID).Return(&domain.Comment{ID: commentID, LeadID: leadID}, nil).Once()
		commentRepo.On("SetPinned", ctx, commentID, true).Return(nil).Once()

		err := svc.SetPinned(ctx, commentID, true)

		assert.NoError(t, err)
		commentRepo.AssertExpectations(t)
	})

	t.Run("Comment Not Found", func(t *testing.T) {
		commentRepo := new(mocks.CommentRepository)
		svc := comment.NewService(commentRepo, new(mocks.LeadRepository), new(mocks.NotificationService), nil)

		commentRepo.On("GetByID", ctx, commentID).Return(nil, nil).Once()

		err := svc.SetPinned(ctx, commentID, true)

		assert.ErrorIs(t, err, domain.ErrCommentNotFound)
		commentRepo.AssertNotCalled(t, "SetPinned", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCommentService_AppendAudit(t *testing.T) {
	ctx := context.Background()
	leadID := uuid.New()
	actorID := uuid.New()

	commentRepo := new(mocks.CommentRepository)
	svc := comment.NewService(commentRepo, new(mocks.LeadRepository), new(mocks.NotificationService), nil)

	commentRepo.On("Create", ctx, mock.MatchedBy(func(c *domain.Comment) bool {
		return c.LeadID == leadID && c.UserID == actorID && c.Content == "Alice created this lead"
	})).Return(nil).Once()

	err := svc.AppendAudit(ctx, leadID, actorID, "Alice created this lead")

	assert.NoError(t, err)
	commentRepo.AssertExpectations(t)
}
