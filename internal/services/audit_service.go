package services

import (
	"gorm.io/gorm"

	"github.com/focodev/site/backend/internal/logger"
	"github.com/focodev/site/backend/internal/metrics"
	"github.com/focodev/site/backend/internal/models"
	"github.com/focodev/site/backend/internal/util"
)

// AuditService appends entries to the logs collection.
type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Record appends one entry. It never fails the caller: write errors are
// logged and counted, then dropped.
func (s *AuditService) Record(action, message string, meta map[string]interface{}) {
	if s == nil || s.db == nil {
		return
	}
	entry := models.LogEntry{Action: action, Message: message, Meta: meta}
	if err := s.db.Create(&entry).Error; err != nil {
		metrics.IncAuditWriteFailure()
		logger.Log().WithError(err).WithField("action", action).
			WithField("message", util.SanitizeForLog(message)).
			Warn("failed to write audit log entry")
	}
}

// List returns a page of entries, newest first, optionally filtered by action.
func (s *AuditService) List(action string, page PageRequest) (PageResult[models.LogEntry], error) {
	query := s.db.Model(&models.LogEntry{})
	if action != "" {
		query = query.Where("action = ?", action)
	}
	return Paginate[models.LogEntry](query, page, "created_at desc")
}
