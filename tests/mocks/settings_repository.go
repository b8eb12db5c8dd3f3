package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"leadhub/internal/domain"
)

type SettingsRepository struct {
	mock.Mock
}

func (m *SettingsRepository) GetEmailTemplate(ctx context.Context) (*domain.EmailTemplate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmailTemplate), args.Error(1)
}

func (m *SettingsRepository) SaveEmailTemplate(ctx context.Context, tpl *domain.EmailTemplate) error {
	args := m.Called(ctx, tpl)
	return args.Error(0)
}
