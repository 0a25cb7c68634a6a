package models

import (
	"time"

	"gorm.io/gorm"
)

// Service is an offering shown on the home page.
type Service struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	assignID(&s.ID)
	return nil
}

// Project is a portfolio entry addressed publicly by its slug.
type Project struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	Title         string    `json:"title" gorm:"not null"`
	Slug          string    `json:"slug" gorm:"uniqueIndex;not null"`
	Description   string    `json:"description" gorm:"type:text"`
	CoverImageURL string    `json:"coverImageUrl"`
	Images        []Image   `json:"images,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL"`
	CreatedAt     time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}

// Image is a gallery picture, optionally attached to a project.
type Image struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	URL       string    `json:"url" gorm:"not null"`
	Alt       string    `json:"alt"`
	PublicID  string    `json:"publicId"`
	ProjectID *string   `json:"projectId" gorm:"index"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	assignID(&i.ID)
	return nil
}

// Video is an embedded YouTube video.
type Video struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"not null"`
	YoutubeURL   string    `json:"youtubeUrl" gorm:"not null"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	CreatedAt    time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (v *Video) BeforeCreate(tx *gorm.DB) error {
	assignID(&v.ID)
	return nil
}

// InstitutionalText is a keyed block of copy (about, mission, ...).
type InstitutionalText struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Key       string    `json:"key" gorm:"uniqueIndex;not null"`
	Content   string    `json:"content" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"index"`
}

func (t *InstitutionalText) BeforeCreate(tx *gorm.DB) error {
	assignID(&t.ID)
	return nil
}
