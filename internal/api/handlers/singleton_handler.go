package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/focodev/site/backend/internal/api/response"
	"github.com/focodev/site/backend/internal/models"
	"github.com/focodev/site/backend/internal/services"
	"github.com/focodev/site/backend/internal/util"
)

// SingletonHandler serves the two fixed-key records: company info and the
// home banner. Writes upsert; omitted optional fields keep their value.
type SingletonHandler struct {
	contentDeps
}

func NewSingletonHandler(db *gorm.DB, audit *services.AuditService, cache services.PageCache) *SingletonHandler {
	return &SingletonHandler{newContentDeps(db, audit, cache)}
}

type companyRequest struct {
	Name           string `json:"name" binding:"required,min=2"`
	Email          string `json:"email" binding:"omitempty,email"`
	Phone          string `json:"phone"`
	Instagram      string `json:"instagram"`
	Address        string `json:"address"`
	WhatsappLink   string `json:"whatsappLink" binding:"omitempty,url"`
	WhatsappNumber string `json:"whatsappNumber"`
	AboutText      string `json:"aboutText"`
}

func (r *companyRequest) sanitize() {
	r.Name = util.SanitizeText(r.Name)
	r.Phone = util.SanitizeText(r.Phone)
	r.Instagram = util.SanitizeText(r.Instagram)
	r.Address = util.SanitizeText(r.Address)
	r.WhatsappNumber = util.SanitizeText(r.WhatsappNumber)
	r.AboutText = util.SanitizeText(r.AboutText)
}

type bannerRequest struct {
	Title              string `json:"title" binding:"required,min=3"`
	Subtitle           string `json:"subtitle"`
	BackgroundImageURL string `json:"backgroundImageUrl" binding:"omitempty,url"`
	CTAText            string `json:"ctaText"`
	CTALink            string `json:"ctaLink"`
}

func (r *bannerRequest) sanitize() {
	r.Title = util.SanitizeText(r.Title)
	r.Subtitle = util.SanitizeText(r.Subtitle)
	r.CTAText = util.SanitizeText(r.CTAText)
}

// findSingleton loads the record under key; a missing record is nil data,
// not an error.
func findSingleton[T any](db *gorm.DB, key string) (*T, error) {
	rec, err := findByID[T](db, key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return rec, err
}

func (h *SingletonHandler) GetCompany(c *gin.Context) {
	info, err := findSingleton[models.CompanyInfo](h.DB, models.CompanyInfoKey)
	if err != nil {
		storeError(c, err, "get_company")
		return
	}
	response.OK(c, info)
}

func (h *SingletonHandler) UpsertCompany(c *gin.Context) {
	var req companyRequest
	if !bindJSON(c, &req) {
		return
	}

	data := models.CompanyInfo{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Instagram:      req.Instagram,
		Address:        req.Address,
		WhatsappLink:   req.WhatsappLink,
		WhatsappNumber: req.WhatsappNumber,
		AboutText:      req.AboutText,
	}
	var info models.CompanyInfo
	err := h.DB.Where(models.CompanyInfo{ID: models.CompanyInfoKey}).Assign(data).FirstOrCreate(&info).Error
	if err != nil {
		storeError(c, err, "update_company")
		return
	}

	h.Audit.Record("update_company", info.Name, nil)
	h.invalidate(c, "/")
	response.OK(c, info)
}

func (h *SingletonHandler) GetBanner(c *gin.Context) {
	banner, err := findSingleton[models.HomeBanner](h.DB, models.HomeBannerKey)
	if err != nil {
		storeError(c, err, "get_banner")
		return
	}
	response.OK(c, banner)
}

func (h *SingletonHandler) UpsertBanner(c *gin.Context) {
	var req bannerRequest
	if !bindJSON(c, &req) {
		return
	}

	data := models.HomeBanner{
		Title:              req.Title,
		Subtitle:           req.Subtitle,
		BackgroundImageURL: req.BackgroundImageURL,
		CTAText:            req.CTAText,
		CTALink:            req.CTALink,
	}
	var banner models.HomeBanner
	err := h.DB.Where(models.HomeBanner{ID: models.HomeBannerKey}).Assign(data).FirstOrCreate(&banner).Error
	if err != nil {
		storeError(c, err, "update_banner")
		return
	}

	h.Audit.Record("update_banner", banner.Title, nil)
	h.invalidate(c, "/")
	response.OK(c, banner)
}
