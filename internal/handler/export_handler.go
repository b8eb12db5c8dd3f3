package handler

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"leadhub/internal/domain"
	"leadhub/internal/middleware"
	"leadhub/internal/service/export"
)

type ExportHandler struct {
	exportService export.Service
}

func NewExportHandler(exportService export.Service) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

func (h *ExportHandler) ExportCSV(c *fiber.Ctx) error {
	var filters domain.LeadFilters
	if err := c.QueryParser(&filters); err != nil {
		return middleware.BadRequest("Invalid filter parameters")
	}

	data, err := h.exportService.ExportCSV(c.Context(), filters)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="leads.csv"`)
	return c.Status(fiber.StatusOK).Send(data)
}

func (h *ExportHandler) ImportTemplate(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="leads-import-template.csv"`)
	return c.Status(fiber.StatusOK).Send(h.exportService.ImportTemplate())
}

func (h *ExportHandler) ImportCSV(c *fiber.Ctx) error {
	actor := middleware.GetCurrentUser(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("CSV file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Failed to open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return middleware.BadRequest("Failed to read uploaded file")
	}

	result, err := h.exportService.ImportCSV(c.Context(), actor, data)
	if err != nil {
		return middleware.BadRequest("Invalid CSV file")
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
