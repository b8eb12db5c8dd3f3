package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"leadhub/internal/domain"
)

type StatusHistoryRepository struct {
	mock.Mock
}

func (m *StatusHistoryRepository) ListByLead(ctx context.Context, leadID uuid.UUID) ([]domain.StatusHistoryEntry, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusHistoryEntry), args.Error(1)
}

func (m *StatusHistoryRepository) ListRecent(ctx context.Context, limit int) ([]domain.StatusHistoryEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusHistoryEntry), args.Error(1)
}

func (m *StatusHistoryRepository) DeleteByLead(ctx context.Context, leadID uuid.UUID) error {
	args := m.Called(ctx, leadID)
	return args.Error(0)
}
