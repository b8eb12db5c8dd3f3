package domain

import "errors"

var (
	ErrLeadNotFound         = errors.New("lead not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidStatus        = errors.New("status is not in the configured vocabulary")
)
