package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"leadhub/internal/middleware"
	"leadhub/internal/service/media"
)

type MediaHandler struct {
	mediaService media.Service
}

func NewMediaHandler(mediaService media.Service) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

func (h *MediaHandler) UploadAvatar(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return middleware.BadRequest("Avatar file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Failed to open uploaded file")
	}
	defer file.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	avatarURL, err := h.mediaService.UploadAvatar(c.Context(), userID, fileHeader.Size, mimeType, file)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedType) {
			return middleware.BadRequest("Avatar must be a jpeg, png or webp image")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"avatar_url": avatarURL,
	})
}
