package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/focodev/site/backend/internal/api/middleware"
	"github.com/focodev/site/backend/internal/api/response"
	"github.com/focodev/site/backend/internal/models"
	"github.com/focodev/site/backend/internal/services"
	"github.com/focodev/site/backend/internal/util"
)

type ImageHandler struct {
	contentDeps
	// Storage removes uploaded files when their image is deleted. Optional.
	Storage *services.StorageService
}

func NewImageHandler(db *gorm.DB, audit *services.AuditService, cache services.PageCache, storage *services.StorageService) *ImageHandler {
	return &ImageHandler{contentDeps: newContentDeps(db, audit, cache), Storage: storage}
}

type imageRequest struct {
	URL       string  `json:"url" binding:"required,url"`
	Alt       string  `json:"alt"`
	PublicID  string  `json:"publicId"`
	ProjectID *string `json:"projectId"`
}

func (r *imageRequest) sanitize() {
	r.Alt = util.SanitizeText(r.Alt)
}

type imageUpdateRequest struct {
	ID        string  `json:"id"`
	URL       *string `json:"url" binding:"omitnil,url"`
	Alt       *string `json:"alt"`
	PublicID  *string `json:"publicId"`
	ProjectID *string `json:"projectId"`
}

func (r *imageUpdateRequest) sanitize() {
	r.Alt = util.SanitizeOptional(r.Alt)
}

// List returns images, newest first. ?projectId= narrows to one project.
func (h *ImageHandler) List(c *gin.Context) {
	query := h.DB.Model(&models.Image{})
	if projectID := c.Query("projectId"); projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}
	page, err := services.Paginate[models.Image](query, pageRequest(c), "created_at desc")
	if err != nil {
		storeError(c, err, "list_images")
		return
	}
	response.OK(c, page)
}

// projectExists reports whether an optional project reference resolves.
func (h *ImageHandler) projectExists(id *string) (bool, error) {
	if id == nil || *id == "" {
		return true, nil
	}
	var count int64
	err := h.DB.Model(&models.Project{}).Where("id = ?", *id).Count(&count).Error
	return count > 0, err
}

// invalidateProjects drops the listing, home and detail pages of every
// project referenced by ids. Nil and empty ids are skipped.
func (h *ImageHandler) invalidateProjects(c *gin.Context, ids ...*string) {
	var refs []string
	for _, id := range ids {
		if id != nil && *id != "" {
			refs = append(refs, *id)
		}
	}
	var slugs []string
	if len(refs) > 0 {
		if err := h.DB.Model(&models.Project{}).Where("id IN ?", refs).Pluck("slug", &slugs).Error; err != nil {
			middleware.GetRequestLogger(c).WithError(err).Warn("resolve project slugs for cache invalidation")
		}
	}
	h.invalidate(c, projectPaths(slugs...)...)
}

func (h *ImageHandler) Create(c *gin.Context) {
	var req imageRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ProjectID != nil && *req.ProjectID == "" {
		req.ProjectID = nil
	}
	ok, err := h.projectExists(req.ProjectID)
	if err != nil {
		storeError(c, err, "create_image")
		return
	}
	if !ok {
		response.Error(c, http.StatusBadRequest, msgInvalidData, gin.H{"fields": gin.H{"projectId": "unknown project"}})
		return
	}

	img := models.Image{
		URL:       req.URL,
		Alt:       req.Alt,
		PublicID:  req.PublicID,
		ProjectID: req.ProjectID,
	}
	if err := h.DB.Create(&img).Error; err != nil {
		storeError(c, err, "create_image")
		return
	}

	h.Audit.Record("create_image", img.URL, map[string]interface{}{"id": img.ID})
	h.invalidateProjects(c, img.ProjectID)
	response.Created(c, img)
}

func (h *ImageHandler) Update(c *gin.Context) {
	var req imageUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	id := recordID(c, req.ID)
	if id == "" {
		response.Error(c, http.StatusBadRequest, msgIDRequired, nil)
		return
	}

	img, err := findByID[models.Image](h.DB, id)
	if err != nil {
		storeError(c, err, "update_image")
		return
	}
	ok, err := h.projectExists(req.ProjectID)
	if err != nil {
		storeError(c, err, "update_image")
		return
	}
	if !ok {
		response.Error(c, http.StatusBadRequest, msgInvalidData, gin.H{"fields": gin.H{"projectId": "unknown project"}})
		return
	}

	var previous *string
	if img.ProjectID != nil {
		id := *img.ProjectID
		previous = &id
	}
	ch := changes{}
	ch.set("url", req.URL, nil)
	ch.set("alt", req.Alt, nil)
	ch.set("public_id", req.PublicID, nil)
	if req.ProjectID != nil {
		if *req.ProjectID == "" {
			ch["project_id"] = nil
		} else {
			ch["project_id"] = *req.ProjectID
		}
	}
	if err := applyChanges(h.DB, img, id, ch); err != nil {
		storeError(c, err, "update_image")
		return
	}

	h.Audit.Record("update_image", img.URL, map[string]interface{}{"id": img.ID})
	h.invalidateProjects(c, previous, img.ProjectID)
	response.OK(c, img)
}

func (h *ImageHandler) Delete(c *gin.Context) {
	id := recordID(c, "")
	if id == "" {
		response.Error(c, http.StatusBadRequest, msgIDRequired, nil)
		return
	}

	img, err := findByID[models.Image](h.DB, id)
	if err != nil {
		storeError(c, err, "delete_image")
		return
	}
	if err := h.DB.Delete(img).Error; err != nil {
		storeError(c, err, "delete_image")
		return
	}

	if h.Storage != nil && img.PublicID != "" {
		if err := h.Storage.Delete(img.PublicID); err != nil {
			middleware.GetRequestLogger(c).WithError(err).WithField("public_id", util.SanitizeForLog(img.PublicID)).Warn("uploaded file not removed")
		}
	}

	h.Audit.Record("delete_image", img.URL, map[string]interface{}{"id": id})
	h.invalidateProjects(c, img.ProjectID)
	response.OK(c, gin.H{"id": id})
}
