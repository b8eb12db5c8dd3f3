package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"leadhub/internal/domain"
)

type StatusHistoryRepository interface {
	ListByLead(ctx context.Context, leadID uuid.UUID) ([]domain.StatusHistoryEntry, error)
	ListRecent(ctx context.Context, limit int) ([]domain.StatusHistoryEntry, error)
	DeleteByLead(ctx context.Context, leadID uuid.UUID) error
}

type statusHistoryRepository struct {
	db *sqlx.DB
}

func NewStatusHistoryRepository(db *sqlx.DB) StatusHistoryRepository {
	return &statusHistoryRepository{db: db}
}

func (r *statusHistoryRepository) ListByLead(ctx context.Context, leadID uuid.UUID) ([]domain.StatusHistoryEntry, error) {
	var entries []domain.StatusHistoryEntry
	query := `SELECT * FROM status_history WHERE lead_id = $1 ORDER BY changed_at DESC`

	err := r.db.SelectContext(ctx, &entries, query, leadID)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *statusHistoryRepository) ListRecent(ctx context.Context, limit int) ([]domain.StatusHistoryEntry, error) {
	var entries []domain.StatusHistoryEntry
	query := `SELECT * FROM status_history ORDER BY changed_at DESC LIMIT $1`

	err := r.db.SelectContext(ctx, &entries, query, limit)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *statusHistoryRepository) DeleteByLead(ctx context.Context, leadID uuid.UUID) error {
	query := `DELETE FROM status_history WHERE lead_id = $1`
	_, err := r.db.ExecContext(ctx, query, leadID)
	return err
}
