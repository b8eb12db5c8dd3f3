package unit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"leadhub/internal/domain"
	"leadhub/internal/service/dashboard"
	"leadhub/tests/mocks"
)

func TestDashboardService_GetStats(t *testing.T) {
	ctx := context.Background()

	leadRepo := new(mocks.LeadRepository)
	userRepo := new(mocks.UserRepository)
	svc := dashboard.NewService(leadRepo, userRepo, new(mocks.CommentRepository), new(mocks.StatusHistoryRepository), nil)

	now := time.Now()
	leadRepo.On("ListAll", ctx).Return([]domain.Lead{
		{Status: "New", CreatedAt: now},
		{Status: "Contacted", CreatedAt: now},
		{Status: "Closed", CreatedAt: now},
		{Status: "Rejected", CreatedAt: now},
	}, nil).Once()
	userRepo.On("ListAll", ctx).Return([]domain.User{
		{ID: uuid.New(), IsActive: true},
		{ID: uuid.New(), IsActive: false},
	}, nil).Once()

	stats, err := svc.GetStats(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalLeads)
	assert.Equal(t, int64(2), stats.ActiveLeads)
	assert.Equal(t, int64(1), stats.ClosedLeads)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.ActiveUsers)
	assert.InDelta(t, 25.0, stats.SuccessRate, 0.01)

	// Every status appears in the distribution, zero-filled or not.
	assert.Len(t, stats.StatusDistribution, len(domain.Statuses))
	assert.Equal(t, 1, stats.StatusDistribution["New"])
	assert.Equal(t, 0, stats.StatusDistribution["Interviewing"])

	assert.Equal(t, []int{4}, stats.DailyTrend.Counts)
}

func TestDashboardService_RecentActivity(t *testing.T) {
	ctx := context.Background()

	commentRepo := new(mocks.CommentRepository)
	historyRepo := new(mocks.StatusHistoryRepository)
	svc := dashboard.NewService(new(mocks.LeadRepository), new(mocks.UserRepository), commentRepo, historyRepo, nil)

	leadID := uuid.New()
	now := time.Now()

	commentRepo.On("ListRecent", ctx, 20).Return([]domain.Comment{
		{LeadID: leadID, UserID: uuid.New(), Content: "older comment", CreatedAt: now.Add(-2 * time.Hour)},
	}, nil).Once()
	historyRepo.On("ListRecent", ctx, 20).Return([]domain.StatusHistoryEntry{
		{LeadID: leadID, ChangedBy: uuid.New(), FromStatus: "New", ToStatus: "Contacted", ChangedAt: now.Add(-time.Hour)},
	}, nil).Once()

	items, err := svc.RecentActivity(ctx)

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "status_change", items[0].Type)
	assert.Equal(t, "Status changed from New to Contacted", items[0].Message)
	assert.Equal(t, "comment", items[1].Type)
}
