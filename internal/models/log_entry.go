package models

import (
	"time"

	"gorm.io/gorm"
)

// LogEntry is an append-only audit record of an action taken on the site.
type LogEntry struct {
	ID        string                 `json:"id" gorm:"primaryKey"`
	Action    string                 `json:"action" gorm:"index;not null"`
	Message   string                 `json:"message"`
	Meta      map[string]interface{} `json:"meta,omitempty" gorm:"serializer:json;type:text"`
	CreatedAt time.Time              `json:"createdAt" gorm:"index"`
}

func (LogEntry) TableName() string {
	return "logs"
}

func (l *LogEntry) BeforeCreate(tx *gorm.DB) error {
	assignID(&l.ID)
	return nil
}
