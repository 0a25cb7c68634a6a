package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/focodev/site/backend/internal/models"
	"github.com/focodev/site/backend/internal/services"
)

const (
	homeServices = 6
	homeProjects = 6
	homeVideos   = 4
)

// HomeHandler serves the landing page aggregate.
type HomeHandler struct {
	DB    *gorm.DB
	Cache services.PageCache
}

func NewHomeHandler(db *gorm.DB, cache services.PageCache) *HomeHandler {
	if cache == nil {
		cache = services.NoopPageCache{}
	}
	return &HomeHandler{DB: db, Cache: cache}
}

type homePage struct {
	Company  *models.CompanyInfo `json:"company"`
	Banner   *models.HomeBanner  `json:"banner"`
	Services []models.Service    `json:"services"`
	Projects []models.Project    `json:"projects"`
	Videos   []models.Video      `json:"videos"`
	Texts    map[string]string   `json:"texts"`
}

func (h *HomeHandler) Get(c *gin.Context) {
	serveCached(c, h.Cache, "/", h.load)
}

func (h *HomeHandler) load() (interface{}, error) {
	var (
		page homePage
		err  error
	)
	if page.Company, err = findSingleton[models.CompanyInfo](h.DB, models.CompanyInfoKey); err != nil {
		return nil, err
	}
	if page.Banner, err = findSingleton[models.HomeBanner](h.DB, models.HomeBannerKey); err != nil {
		return nil, err
	}

	page.Services = make([]models.Service, 0, homeServices)
	if err := h.DB.Order("created_at desc").Limit(homeServices).Find(&page.Services).Error; err != nil {
		return nil, err
	}

	// Cards only show the cover, so each project carries at most one image.
	page.Projects = make([]models.Project, 0, homeProjects)
	if err := h.DB.Order("created_at desc").Limit(homeProjects).Find(&page.Projects).Error; err != nil {
		return nil, err
	}
	for i := range page.Projects {
		var imgs []models.Image
		if err := h.DB.Where("project_id = ?", page.Projects[i].ID).Order("created_at asc").Limit(1).Find(&imgs).Error; err != nil {
			return nil, err
		}
		page.Projects[i].Images = imgs
	}

	page.Videos = make([]models.Video, 0, homeVideos)
	if err := h.DB.Order("created_at desc").Limit(homeVideos).Find(&page.Videos).Error; err != nil {
		return nil, err
	}

	var texts []models.InstitutionalText
	if err := h.DB.Find(&texts).Error; err != nil {
		return nil, err
	}
	page.Texts = make(map[string]string, len(texts))
	for _, t := range texts {
		page.Texts[t.Key] = t.Content
	}

	return page, nil
}
