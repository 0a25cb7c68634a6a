package models

import (
	"time"

	"gorm.io/gorm"
)

// ContactStatus tracks whether an admin has handled a message.
type ContactStatus string

const (
	ContactStatusNew      ContactStatus = "NEW"
	ContactStatusResolved ContactStatus = "RESOLVED"
)

// Valid reports whether s is a known contact status.
func (s ContactStatus) Valid() bool {
	return s == ContactStatusNew || s == ContactStatusResolved
}

// ContactMessage is a submission from the public contact form.
type ContactMessage struct {
	ID        string        `json:"id" gorm:"primaryKey"`
	Name      string        `json:"name" gorm:"not null"`
	Email     string        `json:"email" gorm:"not null"`
	Phone     string        `json:"phone,omitempty"`
	Message   string        `json:"message" gorm:"type:text;not null"`
	Status    ContactStatus `json:"status" gorm:"index;default:'NEW'"`
	CreatedAt time.Time     `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func (m *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	assignID(&m.ID)
	if m.Status == "" {
		m.Status = ContactStatusNew
	}
	return nil
}
