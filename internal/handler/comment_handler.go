package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"leadhub/internal/domain"
	"leadhub/internal/middleware"
	"leadhub/internal/service/comment"
)

type CommentHandler struct {
	commentService comment.Service
}

func NewCommentHandler(commentService comment.Service) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	leadID, err := uuid.Parse(c.Params("leadId"))
	if err != nil {
		return middleware.BadRequest("Invalid lead ID")
	}

	var input domain.CreateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Content == "" {
		return middleware.BadRequest("Comment content is required")
	}

	created, err := h.commentService.Create(c.Context(), leadID, userID, input)
	if err != nil {
		if errors.Is(err, domain.ErrLeadNotFound) {
			return middleware.NotFound("Lead not found")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *CommentHandler) List(c *fiber.Ctx) error {
	leadID, err := uuid.Parse(c.Params("leadId"))
	if err != nil {
		return middleware.BadRequest("Invalid lead ID")
	}

	comments, err := h.commentService.ListByLead(c.Context(), leadID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(comments)
}

func (h *CommentHandler) SetPinned(c *fiber.Ctx) error {
	commentID, err := uuid.Parse(c.Params("commentId"))
	if err != nil {
		return middleware.BadRequest("Invalid comment ID")
	}

	var input domain.PinCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.commentService.SetPinned(c.Context(), commentID, input.IsPinned); err != nil {
		if errors.Is(err, domain.ErrCommentNotFound) {
			return middleware.NotFound("Comment not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Pin state updated",
	})
}
