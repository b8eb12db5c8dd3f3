package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"

	"leadhub/internal/config"
	"leadhub/internal/domain"
	"leadhub/internal/repository"
)

var ErrNoRecipient = errors.New("lead has no contact email")

// DefaultTemplate is used until an admin saves a custom one.
var DefaultTemplate = domain.EmailTemplate{
	Subject: "Placement opportunity at {{companyName}}",
	Body: "Dear {{contactPerson}},\n\n" +
		"We would like to discuss the {{jobRole}} opening at {{companyName}} " +
		"with you and explore how our candidates could be a fit.\n",
	Signature: "Best regards,\nPlacement Cell",
}

type Service interface {
	GetTemplate(ctx context.Context) (*domain.EmailTemplate, error)
	SaveTemplate(ctx context.Context, input domain.SaveEmailTemplateInput) (*domain.EmailTemplate, error)
	RenderForLead(tpl *domain.EmailTemplate, lead *domain.Lead) (subject, body string)
	SendOutreach(ctx context.Context, lead *domain.Lead) error
}

type service struct {
	settingsRepo repository.SettingsRepository
	client       *resend.Client
	cfg          *config.Config
}

func NewService(settingsRepo repository.SettingsRepository, cfg *config.Config) Service {
	return &service{
		settingsRepo: settingsRepo,
		client:       resend.NewClient(cfg.ResendAPIKey),
		cfg:          cfg,
	}
}

func (s *service) GetTemplate(ctx context.Context) (*domain.EmailTemplate, error) {
	tpl, err := s.settingsRepo.GetEmailTemplate(ctx)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		fallback := DefaultTemplate
		return &fallback, nil
	}
	return tpl, nil
}

func (s *service) SaveTemplate(ctx context.Context, input domain.SaveEmailTemplateInput) (*domain.EmailTemplate, error) {
	tpl := &domain.EmailTemplate{
		Subject:   input.Subject,
		Body:      input.Body,
		Signature: input.Signature,
	}
	if err := s.settingsRepo.SaveEmailTemplate(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// RenderForLead substitutes the lead's fields into the template
// placeholders and appends the signature.
func (s *service) RenderForLead(tpl *domain.EmailTemplate, lead *domain.Lead) (string, string) {
	replacer := strings.NewReplacer(
		"{{companyName}}", lead.CompanyName,
		"{{contactPerson}}", lead.ContactPerson,
		"{{jobRole}}", lead.JobRole,
	)

	subject := replacer.Replace(tpl.Subject)
	body := replacer.Replace(tpl.Body)
	if tpl.Signature != "" {
		body = body + "\n" + tpl.Signature
	}
	return subject, body
}

func (s *service) SendOutreach(ctx context.Context, lead *domain.Lead) error {
	if lead.ContactEmail == "" {
		return ErrNoRecipient
	}

	tpl, err := s.GetTemplate(ctx)
	if err != nil {
		return err
	}

	subject, body := s.RenderForLead(tpl, lead)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("LeadHub <%s>", s.cfg.FromEmail),
		To:      []string{lead.ContactEmail},
		Subject: subject,
		Text:    body,
	}

	_, err = s.client.Emails.Send(params)
	return err
}
