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

// TextHandler manages keyed institutional copy. Any signed-in user may edit.
type TextHandler struct {
	contentDeps
}

func NewTextHandler(db *gorm.DB, audit *services.AuditService, cache services.PageCache) *TextHandler {
	return &TextHandler{newContentDeps(db, audit, cache)}
}

type textRequest struct {
	Key     string `json:"key" binding:"required,min=2"`
	Content string `json:"content" binding:"required,min=1"`
}

func (r *textRequest) sanitize() {
	r.Key = util.SanitizeText(r.Key)
	r.Content = util.SanitizeText(r.Content)
}

type textUpdateRequest struct {
	ID      string  `json:"id"`
	Key     *string `json:"key" binding:"omitnil,min=2"`
	Content *string `json:"content" binding:"omitnil,min=1"`
}

func (r *textUpdateRequest) sanitize() {
	r.Key = util.SanitizeOptional(r.Key)
	r.Content = util.SanitizeOptional(r.Content)
}

// List returns every text, most recently edited first.
func (h *TextHandler) List(c *gin.Context) {
	items := make([]models.InstitutionalText, 0)
	if err := h.DB.Order("updated_at desc").Find(&items).Error; err != nil {
		storeError(c, err, "list_texts")
		return
	}
	response.OK(c, items)
}

func (h *TextHandler) GetByKey(c *gin.Context) {
	var text models.InstitutionalText
	if err := h.DB.Where("key = ?", c.Param("key")).First(&text).Error; err != nil {
		storeError(c, err, "get_text")
		return
	}
	response.OK(c, text)
}

func (h *TextHandler) Create(c *gin.Context) {
	var req textRequest
	if !bindJSON(c, &req) {
		return
	}

	text := models.InstitutionalText{
		Key:     req.Key,
		Content: req.Content,
	}
	if err := h.DB.Create(&text).Error; err != nil {
		storeError(c, err, "create_text")
		return
	}

	h.Audit.Record("create_text", text.Key, map[string]interface{}{"id": text.ID})
	h.invalidate(c, "/")
	response.Created(c, text)
}

func (h *TextHandler) Update(c *gin.Context) {
	var req textUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	id := recordID(c, req.ID)
	if id == "" {
		response.Error(c, http.StatusBadRequest, msgIDRequired, nil)
		return
	}

	text, err := findByID[models.InstitutionalText](h.DB, id)
	if err != nil {
		storeError(c, err, "update_text")
		return
	}

	ch := changes{}
	ch.set("key", req.Key, nil)
	ch.set("content", req.Content, nil)
	if err := applyChanges(h.DB, text, id, ch); err != nil {
		storeError(c, err, "update_text")
		return
	}

	h.Audit.Record("update_text", text.Key, map[string]interface{}{"id": text.ID})
	h.invalidate(c, "/")
	response.OK(c, text)
}

func (h *TextHandler) Delete(c *gin.Context) {
	id := recordID(c, "")
	if id == "" {
		response.Error(c, http.StatusBadRequest, msgIDRequired, nil)
		return
	}

	text, err := findByID[models.InstitutionalText](h.DB, id)
	if err != nil {
		storeError(c, err, "delete_text")
		return
	}
	if err := h.DB.Delete(text).Error; err != nil {
		storeError(c, err, "delete_text")
		return
	}

	h.Audit.Record("delete_text", text.Key, map[string]interface{}{"id": id})
	h.invalidate(c, "/")
	response.OK(c, gin.H{"id": id})
}
