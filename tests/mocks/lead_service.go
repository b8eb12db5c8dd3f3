package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"leadhub/internal/domain"
)

type LeadService struct {
	mock.Mock
}

func (m *LeadService) Create(ctx context.Context, actor *domain.User, input domain.CreateLeadInput) (*domain.Lead, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *LeadService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *LeadService) List(ctx context.Context) ([]domain.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Lead), args.Error(1)
}

func (m *LeadService) BeginEdit(ctx context.Context, id uuid.UUID) (*domain.Lead, map[string]any, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Lead), args.Get(1).(map[string]any), args.Error(2)
}

func (m *LeadService) Save(ctx context.Context, actor *domain.User, id uuid.UUID, snapshot map[string]any, input domain.UpdateLeadInput) (*domain.Lead, error) {
	args := m.Called(ctx, actor, id, snapshot, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *LeadService) TransitionStatus(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.TransitionStatusInput) error {
	args := m.Called(ctx, actor, id, input)
	return args.Error(0)
}

func (m *LeadService) Reassign(ctx context.Context, actor *domain.User, id, assigneeID uuid.UUID) error {
	args := m.Called(ctx, actor, id, assigneeID)
	return args.Error(0)
}

func (m *LeadService) SetCreatedBy(ctx context.Context, actor *domain.User, id, creatorID uuid.UUID) error {
	args := m.Called(ctx, actor, id, creatorID)
	return args.Error(0)
}

func (m *LeadService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *LeadService) StatusHistory(ctx context.Context, id uuid.UUID) ([]domain.StatusHistoryEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusHistoryEntry), args.Error(1)
}
