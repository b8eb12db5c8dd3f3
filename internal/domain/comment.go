package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment belongs to exactly one lead. System-generated audit comments
// share this table with user comments; they differ only by content
// convention.
type Comment struct {
	ID            uuid.UUID `json:"id" db:"comment_id"`
	LeadID        uuid.UUID `json:"lead_id" db:"lead_id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	Content       string    `json:"content" db:"content"`
	IsAdminPinned bool      `json:"is_admin_pinned" db:"is_admin_pinned"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`

	User *CommentUser `json:"user,omitempty"`
}

type CommentUser struct {
	ID        uuid.UUID `json:"id" db:"user_id"`
	Name      string    `json:"name" db:"user_name"`
	AvatarURL *string   `json:"avatar_url" db:"user_avatar_url"`
}

type CreateCommentInput struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
	// Mentions holds user ids collected by the autocomplete while the
	// comment was composed; each gets one mention notification on submit.
	Mentions []uuid.UUID `json:"mentions"`
}

type PinCommentInput struct {
	IsPinned bool `json:"is_pinned"`
}
