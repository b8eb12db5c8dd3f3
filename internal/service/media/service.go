package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"leadhub/internal/config"
	"leadhub/internal/repository"
	"leadhub/internal/service/livesync"
)

var ErrUnsupportedType = errors.New("avatar must be a jpeg, png or webp image")

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type Service interface {
	UploadAvatar(ctx context.Context, userID uuid.UUID, fileSize int64, mimeType string, reader io.Reader) (string, error)
}

type service struct {
	userRepo    repository.UserRepository
	minioClient *minio.Client
	cfg         *config.Config
	broker      livesync.Broker
}

func NewService(userRepo repository.UserRepository, minioClient *minio.Client, cfg *config.Config, broker livesync.Broker) Service {
	return &service{
		userRepo:    userRepo,
		minioClient: minioClient,
		cfg:         cfg,
		broker:      broker,
	}
}

// UploadAvatar stores the image and points the user's avatar at it. One
// object per user; re-uploading overwrites the previous avatar.
func (s *service) UploadAvatar(ctx context.Context, userID uuid.UUID, fileSize int64, mimeType string, reader io.Reader) (string, error) {
	if !allowedTypes[mimeType] {
		return "", ErrUnsupportedType
	}

	storagePath := fmt.Sprintf("avatars/%s", userID.String())

	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	avatarURL := s.getPublicURL(storagePath)
	if err := s.userRepo.SetAvatarURL(ctx, userID, avatarURL); err != nil {
		return "", err
	}

	if s.broker != nil {
		if err := s.broker.Publish(ctx, livesync.KeyUsers); err != nil {
			log.Printf("Failed to publish users signal: %v", err)
		}
	}
	return avatarURL, nil
}

func (s *service) getPublicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, url.PathEscape(storagePath))
}
