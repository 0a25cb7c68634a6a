package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/focodev/site/backend/internal/logger"
	"github.com/focodev/site/backend/internal/metrics"
	"github.com/focodev/site/backend/internal/models"
	"github.com/focodev/site/backend/internal/util"
)

// EmailSender delivers an HTML email.
type EmailSender interface {
	SendEmail(to, subject, htmlBody string) error
}

// Messenger delivers a plain-text chat notification.
type Messenger interface {
	Send(message string) error
}

// ContactInput is an already validated contact form submission.
type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// ContactResult reports the stored message and which channels delivered.
type ContactResult struct {
	Message       *models.ContactMessage
	EmailSent     bool
	MessagingSent bool
}

type ContactService struct {
	db        *gorm.DB
	audit     *AuditService
	mail      EmailSender
	messenger Messenger
	notifyTo  string
	now       func() time.Time
}

func NewContactService(db *gorm.DB, audit *AuditService, mail EmailSender, messenger Messenger, notifyTo string) *ContactService {
	return &ContactService{
		db:        db,
		audit:     audit,
		mail:      mail,
		messenger: messenger,
		notifyTo:  notifyTo,
		now:       time.Now,
	}
}

// Submit stores the message as NEW and then notifies the owner over email
// and messaging in parallel. Only the insert can fail the call, or
// ErrEmptyContact when the name or message is blank once markup is removed.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*ContactResult, error) {
	msg := &models.ContactMessage{
		Name:    util.SanitizeText(in.Name),
		Email:   util.SanitizeText(in.Email),
		Phone:   util.SanitizeText(in.Phone),
		Message: util.SanitizeText(in.Message),
		Status:  models.ContactStatusNew,
	}
	if msg.Name == "" || msg.Message == "" {
		return nil, ErrEmptyContact
	}
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, err
	}
	metrics.IncContactSubmission()

	notice := ContactNotice{
		Name:    msg.Name,
		Email:   msg.Email,
		Phone:   msg.Phone,
		Message: msg.Message,
		Date:    s.now(),
	}

	var emailErr, messagingErr error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		emailErr = guard(func() error { return s.sendEmail(notice) })
	}()
	go func() {
		defer wg.Done()
		messagingErr = guard(func() error { return s.sendMessaging(notice) })
	}()
	wg.Wait()

	s.reportFailure(msg.ID, "email", emailErr)
	s.reportFailure(msg.ID, "messaging", messagingErr)

	result := &ContactResult{Message: msg, EmailSent: emailErr == nil, MessagingSent: messagingErr == nil}
	s.audit.Record("contact_message", "Nova mensagem de contato recebida", map[string]interface{}{
		"id":             msg.ID,
		"email_sent":     result.EmailSent,
		"messaging_sent": result.MessagingSent,
	})
	logger.Log().WithField("contact_id", msg.ID).
		WithField("email_sent", result.EmailSent).
		WithField("messaging_sent", result.MessagingSent).
		Info("contact message received")
	return result, nil
}

func (s *ContactService) sendEmail(n ContactNotice) error {
	if s.mail == nil {
		return ErrSMTPNotConfigured
	}
	if s.notifyTo == "" {
		return ErrNotifyAddressMissing
	}
	subject, body, err := FormatContactEmail(n)
	if err != nil {
		return err
	}
	return s.mail.SendEmail(s.notifyTo, subject, body)
}

func (s *ContactService) sendMessaging(n ContactNotice) error {
	if s.messenger == nil {
		return ErrMessagingNotConfigured
	}
	return s.messenger.Send(FormatContactMessage(n))
}

func (s *ContactService) reportFailure(id, channel string, err error) {
	if err == nil {
		return
	}
	metrics.IncNotificationFailure(channel)
	logger.Log().WithError(err).WithField("contact_id", id).WithField("channel", channel).
		Warn("contact notification failed")
	s.audit.Record("contact_notification_failed", "Falha ao enviar notificação de contato", map[string]interface{}{
		"id":      id,
		"channel": channel,
		"error":   err.Error(),
	})
}

// guard runs fn and turns a panic into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("notifier panic: %v", r)
		}
	}()
	return fn()
}

// List returns a page of contact messages, newest first, optionally filtered
// by status.
func (s *ContactService) List(status models.ContactStatus, page PageRequest) (PageResult[models.ContactMessage], error) {
	query := s.db.Model(&models.ContactMessage{})
	if status != "" {
		if !status.Valid() {
			return PageResult[models.ContactMessage]{}, ErrInvalidStatus
		}
		query = query.Where("status = ?", status)
	}
	return Paginate[models.ContactMessage](query, page, "created_at desc")
}

// ContactStats counts messages per status.
type ContactStats struct {
	Total    int64 `json:"total"`
	New      int64 `json:"new"`
	Resolved int64 `json:"resolved"`
}

func (s *ContactService) Stats() (ContactStats, error) {
	var stats ContactStats
	if err := s.db.Model(&models.ContactMessage{}).Where("status = ?", models.ContactStatusNew).Count(&stats.New).Error; err != nil {
		return stats, err
	}
	if err := s.db.Model(&models.ContactMessage{}).Where("status = ?", models.ContactStatusResolved).Count(&stats.Resolved).Error; err != nil {
		return stats, err
	}
	stats.Total = stats.New + stats.Resolved
	return stats, nil
}

// UpdateStatus moves a message between NEW and RESOLVED.
func (s *ContactService) UpdateStatus(id string, status models.ContactStatus) (*models.ContactMessage, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	var msg models.ContactMessage
	if err := s.db.Where("id = ?", id).First(&msg).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&msg).Update("status", status).Error; err != nil {
		return nil, err
	}
	msg.Status = status
	s.audit.Record("contact_status_updated", "Status da mensagem de contato atualizado", map[string]interface{}{
		"id":     id,
		"status": string(status),
	})
	return &msg, nil
}
