package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Lead struct {
	ID                 uuid.UUID      `json:"id" db:"lead_id"`
	CompanyName        string         `json:"company_name" db:"company_name"`
	JobRole            string         `json:"job_role" db:"job_role"`
	ContactPerson      string         `json:"contact_person" db:"contact_person"`
	ContactEmail       string         `json:"contact_email" db:"contact_email"`
	ContactPhone       string         `json:"contact_phone" db:"contact_phone"`
	Source             string         `json:"source" db:"source"`
	Status             string         `json:"status" db:"status"`
	Tags               pq.StringArray `json:"tags" db:"tags"`
	Description        string         `json:"description" db:"description"`
	JobDescriptionLink string         `json:"job_description_link" db:"job_description_link"`
	CreatedBy          uuid.UUID      `json:"created_by" db:"created_by"`
	AssignedTo         uuid.UUID      `json:"assigned_to" db:"assigned_to"`
	CreatedAt          time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at" db:"updated_at"`
}

type CreateLeadInput struct {
	CompanyName        string   `json:"company_name" validate:"required"`
	JobRole            string   `json:"job_role" validate:"required"`
	ContactPerson      string   `json:"contact_person"`
	ContactEmail       string   `json:"contact_email"`
	ContactPhone       string   `json:"contact_phone"`
	Source             string   `json:"source"`
	Tags               []string `json:"tags"`
	Description        string   `json:"description"`
	JobDescriptionLink string   `json:"job_description_link"`
}

// UpdateLeadInput carries the full editable field set of the edit form.
// Fields not present in the form (status, created_by, assigned_to) have
// their own targeted operations.
type UpdateLeadInput struct {
	CompanyName        string   `json:"company_name"`
	JobRole            string   `json:"job_role"`
	ContactPerson      string   `json:"contact_person"`
	ContactEmail       string   `json:"contact_email"`
	ContactPhone       string   `json:"contact_phone"`
	Source             string   `json:"source"`
	Tags               []string `json:"tags"`
	Description        string   `json:"description"`
	JobDescriptionLink string   `json:"job_description_link"`
}

// Fields flattens the input into field-name keyed values for change
// tracking. Keys match the JSON field names users see in audit comments.
func (in UpdateLeadInput) Fields() map[string]any {
	return map[string]any{
		"companyName":        in.CompanyName,
		"jobRole":            in.JobRole,
		"contactPerson":      in.ContactPerson,
		"contactEmail":       in.ContactEmail,
		"contactPhone":       in.ContactPhone,
		"source":             in.Source,
		"tags":               in.Tags,
		"description":        in.Description,
		"jobDescriptionLink": in.JobDescriptionLink,
	}
}

// SnapshotFields mirrors UpdateLeadInput.Fields for a stored lead so the
// two sides of a diff use identical keys.
func (l *Lead) SnapshotFields() map[string]any {
	return map[string]any{
		"companyName":        l.CompanyName,
		"jobRole":            l.JobRole,
		"contactPerson":      l.ContactPerson,
		"contactEmail":       l.ContactEmail,
		"contactPhone":       l.ContactPhone,
		"source":             l.Source,
		"tags":               []string(l.Tags),
		"description":        l.Description,
		"jobDescriptionLink": l.JobDescriptionLink,
	}
}

// LeadFilters is the set of active list filters. Zero values mean "no
// constraint" for that dimension.
type LeadFilters struct {
	Search     string    `json:"search" query:"search"`
	Status     string    `json:"status" query:"status"`
	Tag        string    `json:"tag" query:"tag"`
	CreatedBy  uuid.UUID `json:"created_by" query:"created_by"`
	AssignedTo uuid.UUID `json:"assigned_to" query:"assigned_to"`
}

func (f LeadFilters) IsZero() bool {
	return f.Search == "" && f.Status == "" && f.Tag == "" &&
		f.CreatedBy == uuid.Nil && f.AssignedTo == uuid.Nil
}
