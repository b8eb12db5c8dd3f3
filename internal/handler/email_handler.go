package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"leadhub/internal/domain"
	"leadhub/internal/middleware"
	"leadhub/internal/service/email"
	"leadhub/internal/service/lead"
)

type EmailHandler struct {
	emailService email.Service
	leadService  lead.Service
}

func NewEmailHandler(emailService email.Service, leadService lead.Service) *EmailHandler {
	return &EmailHandler{emailService: emailService, leadService: leadService}
}

func (h *EmailHandler) GetTemplate(c *fiber.Ctx) error {
	tpl, err := h.emailService.GetTemplate(c.Context())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(tpl)
}

func (h *EmailHandler) SaveTemplate(c *fiber.Ctx) error {
	var input domain.SaveEmailTemplateInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Subject == "" || input.Body == "" {
		return middleware.BadRequest("Subject and body are required")
	}

	tpl, err := h.emailService.SaveTemplate(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(tpl)
}

// Preview renders the stored template against a lead without sending.
func (h *EmailHandler) Preview(c *fiber.Ctx) error {
	leadID, err := uuid.Parse(c.Params("leadId"))
	if err != nil {
		return middleware.BadRequest("Invalid lead ID")
	}

	l, err := h.leadService.GetByID(c.Context(), leadID)
	if err != nil {
		if errors.Is(err, domain.ErrLeadNotFound) {
			return middleware.NotFound("Lead not found")
		}
		return err
	}

	tpl, err := h.emailService.GetTemplate(c.Context())
	if err != nil {
		return err
	}

	subject, body := h.emailService.RenderForLead(tpl, l)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"subject": subject,
		"body":    body,
	})
}

func (h *EmailHandler) SendOutreach(c *fiber.Ctx) error {
	leadID, err := uuid.Parse(c.Params("leadId"))
	if err != nil {
		return middleware.BadRequest("Invalid lead ID")
	}

	l, err := h.leadService.GetByID(c.Context(), leadID)
	if err != nil {
		if errors.Is(err, domain.ErrLeadNotFound) {
			return middleware.NotFound("Lead not found")
		}
		return err
	}

	if err := h.emailService.SendOutreach(c.Context(), l); err != nil {
		if errors.Is(err, email.ErrNoRecipient) {
			return middleware.BadRequest("Lead has no contact email")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Outreach email sent",
	})
}
