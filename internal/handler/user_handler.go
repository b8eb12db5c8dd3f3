package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"leadhub/internal/domain"
	"leadhub/internal/middleware"
	"leadhub/internal/service/user"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.List(c.Context())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(users)
}

// Directory returns active users only; it backs the mention autocomplete
// and the assignee picker.
func (h *UserHandler) Directory(c *fiber.Ctx) error {
	users, err := h.userService.ListActive(c.Context())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(users)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	u, err := h.userService.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(u)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	u, err := h.userService.UpdateProfile(c.Context(), userID, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(u)
}

func (h *UserHandler) AssignRole(c *fiber.Ctx) error {
	actor := middleware.GetCurrentUser(c)

	var input domain.AssignRoleInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.userService.AssignRole(c.Context(), actor, input); err != nil {
		if errors.Is(err, user.ErrInvalidRole) {
			return middleware.BadRequest("Role must be member, admin or superadmin")
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Role updated",
	})
}

func (h *UserHandler) SetActive(c *fiber.Ctx) error {
	actor := middleware.GetCurrentUser(c)

	var input domain.SetActiveInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.userService.SetActive(c.Context(), actor, input); err != nil {
		if errors.Is(err, user.ErrSelfDeactivate) {
			return middleware.Forbidden("Cannot change your own active state")
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Active state updated",
	})
}
