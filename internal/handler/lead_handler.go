package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"leadhub/internal/domain"
	"leadhub/internal/middleware"
	"leadhub/internal/service/lead"
	"leadhub/internal/service/leadfilter"
	"leadhub/internal/service/user"
)

type LeadHandler struct {
	leadService lead.Service
	userService user.Service
}

func NewLeadHandler(leadService lead.Service, userService user.Service) *LeadHandler {
	return &LeadHandler{leadService: leadService, userService: userService}
}

func (h *LeadHandler) Create(c *fiber.Ctx) error {
	actor := middleware.GetCurrentUser(c)

	var input domain.CreateLeadInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.leadService.Create(c.Context(), actor, input)
	if err != nil {
		if errors.Is(err, lead.ErrMissingRequiredFields) {
			return middleware.BadRequest("Company name and job role are required")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// List returns leads filtered by the query parameters, applied server-side
// with the same engine the live view uses.
func (h *LeadHandler) List(c *fiber.Ctx) error {
	var filters domain.LeadFilters
	if err := c.QueryParser(&filters); err != nil {
		return middleware.BadRequest("Invalid filter parameters")
	}

	leads, err := h.leadService.List(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(leadfilter.Apply(leads, filters))
}

func (h *LeadHandler) Get(c *fiber.Ctx) error {
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
	return c.Status(fiber.StatusOK).JSON(l)
}

// BeginEdit returns the lead together with the snapshot the client must
// send back on save for change tracking.
func (h *LeadHandler) BeginEdit(c *fiber.Ctx) error {
	leadID, err := uuid.Parse(c.Params("leadId"))
	if err != nil {
		return middleware.BadRequest("Invalid lead ID")
	}

	l, snapshot, err := h.leadService.BeginEdit(c.Context(), leadID)
	if err != nil {
		if errors.Is(err, domain.ErrLeadNotFound) {
			return middleware.NotFound("Lead not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"lead":     l,
		"snapshot": snapshot,
	})
}

func (h *LeadHandler) Save(c *fiber.Ctx) error {
	actor := middleware.GetCurrentUser(c)

	leadID, err := uuid.Parse(c.Params("leadId"))
	if err != nil {
		return middleware.BadRequest("Invalid lead ID")
	}

	var body struct {
		Snapshot map[string]any         `json:"snapshot"`
		Fields   domain.UpdateLeadInput `json:"fields"`
	}
	if err := c.BodyParser(&body); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	l, err := h.leadService.Save(c.Context(), actor, leadID, body.Snapshot, body.Fields)
	if err != nil {
		if errors.Is(err, domain.ErrLeadNotFound) {
			return middleware.NotFound("Lead not found")
		}
		if errors.Is(err, lead.ErrMissingRequiredFields) {
			return middleware.BadRequest("Company name and job role are required")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(l)
}

func (h *LeadHandler) TransitionStatus(c *fiber.Ctx) error {
	actor := middleware.GetCurrentUser(c)

	leadID, err := uuid.Parse(c.Params("leadId"))
	if err != nil {
		return middleware.BadRequest("Invalid lead ID")
	}

	var input domain.TransitionStatusInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.leadService.TransitionStatus(c.Context(), actor, leadID, input); err != nil {
		if errors.Is(err, domain.ErrInvalidStatus) {
			return middleware.BadRequest("Status is not in the configured vocabulary")
		}
		if errors.Is(err, domain.ErrLeadNotFound) {
			return middleware.NotFound("Lead not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Status updated",
	})
}

func (h *LeadHandler) Reassign(c *fiber.Ctx) error {
	actor := middleware.GetCurrentUser(c)

	leadID, err := uuid.Parse(c.Params("leadId"))
	if err != nil {
		return middleware.BadRequest("Invalid lead ID")
	}

	var input struct {
		AssignedTo uuid.UUID `json:"assigned_to"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.leadService.Reassign(c.Context(), actor, leadID, input.AssignedTo); err != nil {
		if errors.Is(err, domain.ErrLeadNotFound) {
			return middleware.NotFound("Lead not found")
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return middleware.NotFound("Assignee not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Lead reassigned",
	})
}

func (h *LeadHandler) SetCreatedBy(c *fiber.Ctx) error {
	actor := middleware.GetCurrentUser(c)

	leadID, err := uuid.Parse(c.Params("leadId"))
	if err != nil {
		return middleware.BadRequest("Invalid lead ID")
	}

	var input struct {
		CreatedBy uuid.UUID `json:"created_by"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.leadService.SetCreatedBy(c.Context(), actor, leadID, input.CreatedBy); err != nil {
		if errors.Is(err, domain.ErrLeadNotFound) {
			return middleware.NotFound("Lead not found")
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return middleware.NotFound("Creator not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Creator updated",
	})
}

func (h *LeadHandler) Delete(c *fiber.Ctx) error {
	leadID, err := uuid.Parse(c.Params("leadId"))
	if err != nil {
		return middleware.BadRequest("Invalid lead ID")
	}

	if err := h.leadService.Delete(c.Context(), leadID); err != nil {
		if errors.Is(err, domain.ErrLeadNotFound) {
			return middleware.NotFound("Lead not found")
		}
		return err
	}
	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *LeadHandler) StatusHistory(c *fiber.Ctx) error {
	leadID, err := uuid.Parse(c.Params("leadId"))
	if err != nil {
		return middleware.BadRequest("Invalid lead ID")
	}

	entries, err := h.leadService.StatusHistory(c.Context(), leadID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(entries)
}
