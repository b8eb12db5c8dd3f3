package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"leadhub/internal/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListByLead(ctx context.Context, leadID uuid.UUID) ([]domain.Comment, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Comment, error)
	SetPinned(ctx context.Context, id uuid.UUID, pinned bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByLead(ctx context.Context, leadID uuid.UUID) error
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (comment_id, lead_id, user_id, content, is_admin_pinned)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		comment.ID, comment.LeadID, comment.UserID, comment.Content, comment.IsAdminPinned,
	).Scan(&comment.CreatedAt)
}

func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	query := `SELECT * FROM comments WHERE comment_id = $1`

	err := r.db.GetContext(ctx, &comment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByLead returns pinned comments first, then the rest newest-first, with
// the author joined in for rendering.
func (r *commentRepository) ListByLead(ctx context.Context, leadID uuid.UUID) ([]domain.Comment, error) {
	query := `
		SELECT c.comment_id, c.lead_id, c.user_id, c.content, c.is_admin_pinned, c.created_at,
			u.user_id AS author_id, u.name AS author_name, u.avatar_url AS author_avatar_url
		FROM comments c
		JOIN users u ON u.user_id = c.user_id
		WHERE c.lead_id = $1
		ORDER BY c.is_admin_pinned DESC, c.created_at DESC`

	rows, err := r.db.QueryxContext(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		var author domain.CommentUser
		if err := rows.Scan(
			&c.ID, &c.LeadID, &c.UserID, &c.Content, &c.IsAdminPinned, &c.CreatedAt,
			&author.ID, &author.Name, &author.AvatarURL,
		); err != nil {
			return nil, err
		}
		c.User = &author
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *commentRepository) ListRecent(ctx context.Context, limit int) ([]domain.Comment, error) {
	var comments []domain.Comment
	query := `SELECT * FROM comments ORDER BY created_at DESC LIMIT $1`

	err := r.db.SelectContext(ctx, &comments, query, limit)
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) SetPinned(ctx context.Context, id uuid.UUID, pinned bool) error {
	query := `UPDATE comments SET is_admin_pinned = $2 WHERE comment_id = $1`
	_, err := r.db.ExecContext(ctx, query, id, pinned)
	return err
}

func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM comments WHERE comment_id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *commentRepository) DeleteByLead(ctx context.Context, leadID uuid.UUID) error {
	query := `DELETE FROM comments WHERE lead_id = $1`
	_, err := r.db.ExecContext(ctx, query, leadID)
	return err
}
