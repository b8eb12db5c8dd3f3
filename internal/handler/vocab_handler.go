package handler

import (
	"github.com/gofiber/fiber/v2"

	"leadhub/internal/domain"
)

// VocabHandler serves the status/source/tag vocabulary clients use to
// populate pickers, plus the status style mapping.
type VocabHandler struct{}

func NewVocabHandler() *VocabHandler {
	return &VocabHandler{}
}

func (h *VocabHandler) Get(c *fiber.Ctx) error {
	styles := make(map[string]string, len(domain.Statuses))
	for _, status := range domain.Statuses {
		styles[status] = domain.StatusStyle(status)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"statuses":      domain.Statuses,
		"sources":       domain.Sources,
		"tags":          domain.Tags,
		"status_styles": styles,
	})
}
