package domain

import (
	"time"

	"github.com/google/uuid"
)

// StatusHistoryEntry is the append-only ledger of a lead's status
// transitions. Entries are created exactly once per transition and never
// mutated.
type StatusHistoryEntry struct {
	ID         uuid.UUID `json:"id" db:"history_id"`
	LeadID     uuid.UUID `json:"lead_id" db:"lead_id"`
	FromStatus string    `json:"from_status" db:"from_status"`
	ToStatus   string    `json:"to_status" db:"to_status"`
	ChangedBy  uuid.UUID `json:"changed_by" db:"changed_by"`
	ChangedAt  time.Time `json:"changed_at" db:"changed_at"`
	Notes      string    `json:"notes,omitempty" db:"notes"`
}

type TransitionStatusInput struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes"`
}
