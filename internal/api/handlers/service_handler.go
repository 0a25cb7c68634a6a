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

type ServiceHandler struct {
	contentDeps
}

func NewServiceHandler(db *gorm.DB, audit *services.AuditService, cache services.PageCache) *ServiceHandler {
	return &ServiceHandler{newContentDeps(db, audit, cache)}
}

type serviceRequest struct {
	Title       string `json:"title" binding:"required,min=3"`
	Description string `json:"description" binding:"required,min=10"`
	ImageURL    string `json:"imageUrl" binding:"omitempty,url"`
}

func (r *serviceRequest) sanitize() {
	r.Title = util.SanitizeText(r.Title)
	r.Description = util.SanitizeText(r.Description)
}

type serviceUpdateRequest struct {
	ID          string  `json:"id"`
	Title       *string `json:"title" binding:"omitnil,min=3"`
	Description *string `json:"description" binding:"omitnil,min=10"`
	ImageURL    *string `json:"imageUrl" binding:"omitnil,len=0|url"`
}

func (r *serviceUpdateRequest) sanitize() {
	r.Title = util.SanitizeOptional(r.Title)
	r.Description = util.SanitizeOptional(r.Description)
}

func (h *ServiceHandler) List(c *gin.Context) {
	page, err := services.Paginate[models.Service](h.DB.Model(&models.Service{}), pageRequest(c), "created_at desc")
	if err != nil {
		storeError(c, err, "list_services")
		return
	}
	response.OK(c, page)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req serviceRequest
	if !bindJSON(c, &req) {
		return
	}

	svc := models.Service{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := h.DB.Create(&svc).Error; err != nil {
		storeError(c, err, "create_service")
		return
	}

	h.Audit.Record("create_service", svc.Title, map[string]interface{}{"id": svc.ID})
	h.invalidate(c, "/")
	response.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	var req serviceUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	id := recordID(c, req.ID)
	if id == "" {
		response.Error(c, http.StatusBadRequest, msgIDRequired, nil)
		return
	}

	svc, err := findByID[models.Service](h.DB, id)
	if err != nil {
		storeError(c, err, "update_service")
		return
	}

	ch := changes{}
	ch.set("title", req.Title, nil)
	ch.set("description", req.Description, nil)
	ch.set("image_url", req.ImageURL, nil)
	if err := applyChanges(h.DB, svc, id, ch); err != nil {
		storeError(c, err, "update_service")
		return
	}

	h.Audit.Record("update_service", svc.Title, map[string]interface{}{"id": svc.ID})
	h.invalidate(c, "/")
	response.OK(c, svc)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id := recordID(c, "")
	if id == "" {
		response.Error(c, http.StatusBadRequest, msgIDRequired, nil)
		return
	}

	svc, err := findByID[models.Service](h.DB, id)
	if err != nil {
		storeError(c, err, "delete_service")
		return
	}
	if err := h.DB.Delete(svc).Error; err != nil {
		storeError(c, err, "delete_service")
		return
	}

	h.Audit.Record("delete_service", svc.Title, map[string]interface{}{"id": id})
	h.invalidate(c, "/")
	response.OK(c, gin.H{"id": id})
}
