package handler

import (
	"leadhub/internal/service/auth"
	"leadhub/internal/service/comment"
	"leadhub/internal/service/dashboard"
	"leadhub/internal/service/email"
	"leadhub/internal/service/export"
	"leadhub/internal/service/lead"
	"leadhub/internal/service/livesync"
	"leadhub/internal/service/media"
	"leadhub/internal/service/notification"
	"leadhub/internal/service/user"
)

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Lead         *LeadHandler
	Comment      *CommentHandler
	Notification *NotificationHandler
	Dashboard    *DashboardHandler
	Email        *EmailHandler
	Export       *ExportHandler
	Media        *MediaHandler
	Stream       *StreamHandler
	Vocab        *VocabHandler
}

type Services struct {
	Auth         auth.Service
	User         user.Service
	Lead         lead.Service
	Comment      comment.Service
	Notification notification.Service
	Dashboard    dashboard.Service
	Email        email.Service
	Export       export.Service
	Media        media.Service
	Hub          *livesync.Hub
}

func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User),
		Lead:         NewLeadHandler(services.Lead, services.User),
		Comment:      NewCommentHandler(services.Comment),
		Notification: NewNotificationHandler(services.Notification),
		Dashboard:    NewDashboardHandler(services.Dashboard),
		Email:        NewEmailHandler(services.Email, services.Lead),
		Export:       NewExportHandler(services.Export),
		Media:        NewMediaHandler(services.Media),
		Stream:       NewStreamHandler(services.Hub, services.Lead, services.User, services.Comment, services.Notification),
		Vocab:        NewVocabHandler(),
	}
}
