package domain

import "time"

// EmailTemplate is the single stored outreach template. Subject and body
// support {{companyName}}, {{contactPerson}} and {{jobRole}} placeholders;
// the signature is appended verbatim.
type EmailTemplate struct {
	Subject   string    `json:"subject" db:"subject"`
	Body      string    `json:"body" db:"body"`
	Signature string    `json:"signature" db:"signature"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type SaveEmailTemplateInput struct {
	Subject   string `json:"subject" validate:"required"`
	Body      string `json:"body" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}
