package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User          UserRepository
	Lead          LeadRepository
	StatusHistory StatusHistoryRepository
	Comment       CommentRepository
	Notification  NotificationRepository
	Session       SessionRepository
	Settings      SettingsRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:          NewUserRepository(db),
		Lead:          NewLeadRepository(db),
		StatusHistory: NewStatusHistoryRepository(db),
		Comment:       NewCommentRepository(db),
		Notification:  NewNotificationRepository(db),
		Session:       NewSessionRepository(db),
		Settings:      NewSettingsRepository(db),
	}
}
