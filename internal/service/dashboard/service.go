package dashboard

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"leadhub/internal/domain"
	"leadhub/internal/pkg/timebucket"
	"leadhub/internal/repository"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 5 * time.Minute

	activityLimit = 20
)

type Stats struct {
	TotalLeads  int64 `json:"total_leads"`
	ActiveLeads int64 `json:"active_leads"`
	ClosedLeads int64 `json:"closed_leads"`
	TotalUsers  int64 `json:"total_users"`
	ActiveUsers int64 `json:"active_users"`

	// SuccessRate is the share of leads that reached Closed, in percent.
	SuccessRate float64 `json:"success_rate"`

	// StatusDistribution covers the full vocabulary; statuses with no
	// leads appear with a zero count so charts keep a stable axis.
	StatusDistribution map[string]int `json:"status_distribution"`

	DailyTrend   timebucket.Series `json:"daily_trend"`
	WeeklyTrend  timebucket.Series `json:"weekly_trend"`
	MonthlyTrend timebucket.Series `json:"monthly_trend"`
}

// ActivityItem is one row of the recent-activity feed.
type ActivityItem struct {
	Type    string    `json:"type"` // "comment" or "status_change"
	LeadID  uuid.UUID `json:"lead_id"`
	ActorID uuid.UUID `json:"actor_id"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

type Service interface {
	GetStats(ctx context.Context) (*Stats, error)
	RecentActivity(ctx context.Context) ([]ActivityItem, error)
}

type service struct {
	leadRepo    repository.LeadRepository
	userRepo    repository.UserRepository
	commentRepo repository.CommentRepository
	historyRepo repository.StatusHistoryRepository
	redis       *redis.Client
}

func NewService(
	leadRepo repository.LeadRepository,
	userRepo repository.UserRepository,
	commentRepo repository.CommentRepository,
	historyRepo repository.StatusHistoryRepository,
	redis *redis.Client,
) Service {
	return &service{
		leadRepo:    leadRepo,
		userRepo:    userRepo,
		commentRepo: commentRepo,
		historyRepo: historyRepo,
		redis:       redis,
	}
}

func (s *service) GetStats(ctx context.Context) (*Stats, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, statsCacheKey).Result(); err == nil {
			var stats Stats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	leads, err := s.leadRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	distribution := make(map[string]int, len(domain.Statuses))
	for _, status := range domain.Statuses {
		distribution[status] = 0
	}

	var active, closed int64
	createdAt := make([]time.Time, 0, len(leads))
	for _, lead := range leads {
		distribution[lead.Status]++
		if domain.IsTerminalStatus(lead.Status) {
			if lead.Status == "Closed" {
				closed++
			}
		} else {
			active++
		}
		createdAt = append(createdAt, lead.CreatedAt)
	}

	var activeUsers int64
	for _, u := range users {
		if u.IsActive {
			activeUsers++
		}
	}

	successRate := 0.0
	if len(leads) > 0 {
		successRate = float64(closed) / float64(len(leads)) * 100
	}

	stats := &Stats{
		TotalLeads:         int64(len(leads)),
		ActiveLeads:        active,
		ClosedLeads:        closed,
		TotalUsers:         int64(len(users)),
		ActiveUsers:        activeUsers,
		SuccessRate:        successRate,
		StatusDistribution: distribution,
		DailyTrend:         timebucket.AggregateSeries(createdAt, timebucket.Daily),
		WeeklyTrend:        timebucket.AggregateSeries(createdAt, timebucket.Weekly),
		MonthlyTrend:       timebucket.AggregateSeries(createdAt, timebucket.Monthly),
	}

	if s.redis != nil {
		if statsJSON, err := json.Marshal(stats); err == nil {
			_ = s.redis.Set(ctx, statsCacheKey, statsJSON, statsCacheTTL).Err()
		}
	}

	return stats, nil
}

// RecentActivity merges recent comments and status changes into one feed,
// newest first.
func (s *service) RecentActivity(ctx context.Context) ([]ActivityItem, error) {
	comments, err := s.commentRepo.ListRecent(ctx, activityLimit)
	if err != nil {
		return nil, err
	}

	transitions, err := s.historyRepo.ListRecent(ctx, activityLimit)
	if err != nil {
		return nil, err
	}

	items := make([]ActivityItem, 0, len(comments)+len(transitions))
	for _, c := range comments {
		items = append(items, ActivityItem{
			Type:    "comment",
			LeadID:  c.LeadID,
			ActorID: c.UserID,
			Message: c.Content,
			At:      c.CreatedAt,
		})
	}
	for _, tr := range transitions {
		items = append(items, ActivityItem{
			Type:    "status_change",
			LeadID:  tr.LeadID,
			ActorID: tr.ChangedBy,
			Message: "Status changed from " + tr.FromStatus + " to " + tr.ToStatus,
			At:      tr.ChangedAt,
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].At.After(items[j].At) })
	if len(items) > activityLimit {
		items = items[:activityLimit]
	}
	return items, nil
}
