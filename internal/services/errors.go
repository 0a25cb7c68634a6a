package services

import "errors"

var (
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrInvalidToken           = errors.New("invalid session token")
	ErrIncorrectPassword      = errors.New("current password is incorrect")
	ErrSMTPNotConfigured      = errors.New("SMTP not configured")
	ErrNotifyAddressMissing   = errors.New("contact notification address not configured")
	ErrMessagingNotConfigured = errors.New("messaging notification not configured")
	ErrEmptyFile              = errors.New("file is empty")
	ErrFileTooLarge           = errors.New("file exceeds 5MB")
	ErrUnsupportedMediaType   = errors.New("file type not allowed")
	ErrInvalidFolder          = errors.New("invalid upload folder")
	ErrInvalidStatus          = errors.New("invalid contact status")
	ErrEmptyContact           = errors.New("contact name and message are required")
)
