package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"leadhub/internal/domain"
)

// SettingsRepository stores workspace-wide settings. Today that is just the
// single outreach email template, kept as one upserted row.
type SettingsRepository interface {
	GetEmailTemplate(ctx context.Context) (*domain.EmailTemplate, error)
	SaveEmailTemplate(ctx context.Context, tpl *domain.EmailTemplate) error
}

type settingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetEmailTemplate(ctx context.Context) (*domain.EmailTemplate, error) {
	var tpl domain.EmailTemplate
	query := `SELECT subject, body, signature, updated_at FROM email_template WHERE id = 1`

	err := r.db.GetContext(ctx, &tpl, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *settingsRepository) SaveEmailTemplate(ctx context.Context, tpl *domain.EmailTemplate) error {
	query := `
		INSERT INTO email_template (id, subject, body, signature, updated_at)
		VALUES (1, $1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE
		SET subject = EXCLUDED.subject, body = EXCLUDED.body,
			signature = EXCLUDED.signature, updated_at = NOW()
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query, tpl.Subject, tpl.Body, tpl.Signature).Scan(&tpl.UpdatedAt)
}
