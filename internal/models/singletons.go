package models

import "time"

// Fixed keys of the singleton collections. Writes always upsert on these.
const (
	CompanyInfoKey = "company-singleton"
	HomeBannerKey  = "home-banner"
)

// CompanyInfo holds the contact details shown in the footer and contact page.
type CompanyInfo struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Instagram      string    `json:"instagram"`
	Address        string    `json:"address"`
	WhatsappLink   string    `json:"whatsappLink"`
	WhatsappNumber string    `json:"whatsappNumber"`
	AboutText      string    `json:"aboutText" gorm:"type:text"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// HomeBanner is the hero section of the home page.
type HomeBanner struct {
	ID                 string    `json:"id" gorm:"primaryKey"`
	Title              string    `json:"title"`
	Subtitle           string    `json:"subtitle"`
	BackgroundImageURL string    `json:"backgroundImageUrl"`
	CTAText            string    `json:"ctaText"`
	CTALink            string    `json:"ctaLink"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
