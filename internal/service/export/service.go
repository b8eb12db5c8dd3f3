package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"leadhub/internal/domain"
	"leadhub/internal/repository"
	"leadhub/internal/service/lead"
	"leadhub/internal/service/leadfilter"
)

var csvHeader = []string{
	"Company Name", "Job Role", "Contact Person", "Contact Email",
	"Contact Phone", "Source", "Status", "Tags", "Description",
	"Job Description Link", "Created By", "Created At",
}

var importHeader = []string{
	"Company Name", "Job Role", "Contact Person", "Contact Email",
	"Contact Phone", "Source", "Tags", "Description", "Job Description Link",
}

// ImportResult reports the per-row outcome of a bulk import.
type ImportResult struct {
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}

type Service interface {
	ExportCSV(ctx context.Context, filters domain.LeadFilters) ([]byte, error)
	ImportTemplate() []byte
	ImportCSV(ctx context.Context, actor *domain.User, data []byte) (*ImportResult, error)
}

type service struct {
	leadRepo repository.LeadRepository
	userRepo repository.UserRepository
	leadSvc  lead.Service
}

func NewService(leadRepo repository.LeadRepository, userRepo repository.UserRepository, leadSvc lead.Service) Service {
	return &service{
		leadRepo: leadRepo,
		userRepo: userRepo,
		leadSvc:  leadSvc,
	}
}

// ExportCSV writes the filtered lead list. The creator column carries the
// user's display name, not the raw id.
func (s *service) ExportCSV(ctx context.Context, filters domain.LeadFilters) ([]byte, error) {
	leads, err := s.leadRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	leads = leadfilter.Apply(leads, filters)

	names := make(map[uuid.UUID]string)
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		names[users[i].ID] = users[i].DisplayName()
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, l := range leads {
		creator := names[l.CreatedBy]
		if creator == "" {
			creator = l.CreatedBy.String()
		}
		record := []string{
			l.CompanyName, l.JobRole, l.ContactPerson, l.ContactEmail,
			l.ContactPhone, l.Source, l.Status, strings.Join(l.Tags, "; "),
			l.Description, l.JobDescriptionLink, creator,
			l.CreatedAt.Format("2006-01-02"),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ImportTemplate returns a CSV file with just the import header row.
func (s *service) ImportTemplate() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(importHeader)
	w.Flush()
	return buf.Bytes()
}

// ImportCSV creates one lead per row, best-effort. Only company name and
// job role are required; duplicate companies are accepted. Row failures
// are collected, not fatal.
func (s *service) ImportCSV(ctx context.Context, actor *domain.User, data []byte) (*ImportResult, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) > 0 && looksLikeHeader(records[0]) {
		records = records[1:]
	}

	result := &ImportResult{}
	for i, record := range records {
		row := i + 2 // 1-based, after the header
		input, err := rowToInput(record)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", row, err))
			continue
		}

		if _, err := s.leadSvc.Create(ctx, actor, input); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", row, err))
			continue
		}
		result.Imported++
	}
	return result, nil
}

func rowToInput(record []string) (domain.CreateLeadInput, error) {
	field := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	input := domain.CreateLeadInput{
		CompanyName:        field(0),
		JobRole:            field(1),
		ContactPerson:      field(2),
		ContactEmail:       field(3),
		ContactPhone:       field(4),
		Source:             field(5),
		Description:        field(7),
		JobDescriptionLink: field(8),
	}
	if tags := field(6); tags != "" {
		for _, tag := range strings.Split(tags, ";") {
			if t := strings.TrimSpace(tag); t != "" {
				input.Tags = append(input.Tags, t)
			}
		}
	}

	if input.CompanyName == "" || input.JobRole == "" {
		return input, fmt.Errorf("company name and job role are required")
	}
	return input, nil
}

func looksLikeHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "Company Name")
}
