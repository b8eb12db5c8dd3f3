package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"leadhub/internal/domain"
)

type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error)
	ListAll(ctx context.Context) ([]domain.Lead, error)
	UpdateFields(ctx context.Context, lead *domain.Lead) error
	SetCreatedBy(ctx context.Context, id, createdBy uuid.UUID) error
	SetAssignedTo(ctx context.Context, id, assignedTo uuid.UUID) error
	TransitionStatus(ctx context.Context, entry *domain.StatusHistoryEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type leadRepository struct {
	db *sqlx.DB
}

func NewLeadRepository(db *sqlx.DB) LeadRepository {
	return &leadRepository{db: db}
}

func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	query := `
		INSERT INTO leads (lead_id, company_name, job_role, contact_person, contact_email,
			contact_phone, source, status, tags, description, job_description_link,
			created_by, assigned_to)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		lead.ID, lead.CompanyName, lead.JobRole, lead.ContactPerson, lead.ContactEmail,
		lead.ContactPhone, lead.Source, lead.Status, pq.Array([]string(lead.Tags)),
		lead.Description, lead.JobDescriptionLink, lead.CreatedBy, lead.AssignedTo,
	).Scan(&lead.CreatedAt, &lead.UpdatedAt)
}

func (r *leadRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	var lead domain.Lead
	query := `SELECT * FROM leads WHERE lead_id = $1`

	err := r.db.GetContext(ctx, &lead, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepository) ListAll(ctx context.Context) ([]domain.Lead, error) {
	var leads []domain.Lead
	query := `SELECT * FROM leads ORDER BY updated_at DESC`

	err := r.db.SelectContext(ctx, &leads, query)
	if err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *leadRepository) UpdateFields(ctx context.Context, lead *domain.Lead) error {
	query := `
		UPDATE leads
		SET company_name = $2, job_role = $3, contact_person = $4, contact_email = $5,
			contact_phone = $6, source = $7, tags = $8, description = $9,
			job_description_link = $10, updated_at = NOW()
		WHERE lead_id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		lead.ID, lead.CompanyName, lead.JobRole, lead.ContactPerson, lead.ContactEmail,
		lead.ContactPhone, lead.Source, pq.Array([]string(lead.Tags)),
		lead.Description, lead.JobDescriptionLink,
	).Scan(&lead.UpdatedAt)
}

func (r *leadRepository) SetCreatedBy(ctx context.Context, id, createdBy uuid.UUID) error {
	query := `UPDATE leads SET created_by = $2, updated_at = NOW() WHERE lead_id = $1`
	_, err := r.db.ExecContext(ctx, query, id, createdBy)
	return err
}

func (r *leadRepository) SetAssignedTo(ctx context.Context, id, assignedTo uuid.UUID) error {
	query := `UPDATE leads SET assigned_to = $2, updated_at = NOW() WHERE lead_id = $1`
	_, err := r.db.ExecContext(ctx, query, id, assignedTo)
	return err
}

// TransitionStatus updates the lead status and appends the history entry in
// one transaction, so the ledger never disagrees with the lead row.
func (r *leadRepository) TransitionStatus(ctx context.Context, entry *domain.StatusHistoryEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	update := `UPDATE leads SET status = $2, updated_at = NOW() WHERE lead_id = $1`
	if _, err := tx.ExecContext(ctx, update, entry.LeadID, entry.ToStatus); err != nil {
		return err
	}

	insert := `
		INSERT INTO status_history (history_id, lead_id, from_status, to_status, changed_by, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING changed_at`
	err = tx.QueryRowxContext(ctx, insert,
		entry.ID, entry.LeadID, entry.FromStatus, entry.ToStatus, entry.ChangedBy, entry.Notes,
	).Scan(&entry.ChangedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *leadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM leads WHERE lead_id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *leadRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM leads`
	err := r.db.GetContext(ctx, &count, query)
	return count, err
}

func (r *leadRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM leads WHERE status = $1`
	err := r.db.GetContext(ctx, &count, query, status)
	return count, err
}
