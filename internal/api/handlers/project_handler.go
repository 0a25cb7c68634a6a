package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/focodev/site/backend/internal/api/response"
	"github.com/focodev/site/backend/internal/models"
	"github.com/focodev/site/backend/internal/services"
	"github.com/focodev/site/backend/internal/util"
)

type ProjectHandler struct {
	contentDeps
}

func NewProjectHandler(db *gorm.DB, audit *services.AuditService, cache services.PageCache) *ProjectHandler {
	return &ProjectHandler{newContentDeps(db, audit, cache)}
}

type projectRequest struct {
	Title         string `json:"title" binding:"required,min=3"`
	Slug          string `json:"slug" binding:"required,min=3,slug"`
	Description   string `json:"description" binding:"required,min=20"`
	CoverImageURL string `json:"coverImageUrl" binding:"omitempty,url"`
}

func (r *projectRequest) sanitize() {
	r.Title = util.SanitizeText(r.Title)
	r.Description = util.SanitizeText(r.Description)
}

type projectUpdateRequest struct {
	ID            string  `json:"id"`
	Title         *string `json:"title" binding:"omitnil,min=3"`
	Slug          *string `json:"slug" binding:"omitnil,min=3,slug"`
	Description   *string `json:"description" binding:"omitnil,min=20"`
	CoverImageURL *string `json:"coverImageUrl" binding:"omitnil,len=0|url"`
}

func (r *projectUpdateRequest) sanitize() {
	r.Title = util.SanitizeOptional(r.Title)
	r.Description = util.SanitizeOptional(r.Description)
}

func projectPaths(slugs ...string) []string {
	paths := []string{"/", "/projects"}
	for _, s := range slugs {
		paths = append(paths, "/projects/"+s)
	}
	return paths
}

func (h *ProjectHandler) List(c *gin.Context) {
	page, err := services.Paginate[models.Project](h.DB.Model(&models.Project{}), pageRequest(c), "created_at desc")
	if err != nil {
		storeError(c, err, "list_projects")
		return
	}
	response.OK(c, page)
}

// GetBySlug serves a project with its images through the page cache.
func (h *ProjectHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	serveCached(c, h.Cache, "/projects/"+slug, func() (interface{}, error) {
		var project models.Project
		err := h.DB.Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc")
		}).Where("slug = ?", slug).First(&project).Error
		if err != nil {
			return nil, err
		}
		return project, nil
	})
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req projectRequest
	if !bindJSON(c, &req) {
		return
	}

	project := models.Project{
		Title:         req.Title,
		Slug:          req.Slug,
		Description:   req.Description,
		CoverImageURL: req.CoverImageURL,
	}
	if err := h.DB.Create(&project).Error; err != nil {
		storeError(c, err, "create_project")
		return
	}

	h.Audit.Record("create_project", project.Title, map[string]interface{}{"id": project.ID})
	h.invalidate(c, projectPaths(project.Slug)...)
	response.Created(c, project)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	var req projectUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	id := recordID(c, req.ID)
	if id == "" {
		response.Error(c, http.StatusBadRequest, msgIDRequired, nil)
		return
	}

	project, err := findByID[models.Project](h.DB, id)
	if err != nil {
		storeError(c, err, "update_project")
		return
	}
	oldSlug := project.Slug

	ch := changes{}
	ch.set("title", req.Title, nil)
	ch.set("slug", req.Slug, nil)
	ch.set("description", req.Description, nil)
	ch.set("cover_image_url", req.CoverImageURL, nil)
	if err := applyChanges(h.DB, project, id, ch); err != nil {
		storeError(c, err, "update_project")
		return
	}

	h.Audit.Record("update_project", project.Title, map[string]interface{}{"id": project.ID})
	h.invalidate(c, projectPaths(oldSlug, project.Slug)...)
	response.OK(c, project)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id := recordID(c, "")
	if id == "" {
		response.Error(c, http.StatusBadRequest, msgIDRequired, nil)
		return
	}

	project, err := findByID[models.Project](h.DB, id)
	if err != nil {
		storeError(c, err, "delete_project")
		return
	}
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Image{}).Where("project_id = ?", id).Update("project_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(project).Error
	})
	if err != nil {
		storeError(c, err, "delete_project")
		return
	}

	h.Audit.Record("delete_project", project.Title, map[string]interface{}{"id": id})
	h.invalidate(c, projectPaths(project.Slug)...)
	response.OK(c, gin.H{"id": id})
}
