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

type VideoHandler struct {
	contentDeps
}

func NewVideoHandler(db *gorm.DB, audit *services.AuditService, cache services.PageCache) *VideoHandler {
	return &VideoHandler{newContentDeps(db, audit, cache)}
}

type videoRequest struct {
	Title        string `json:"title" binding:"required,min=3"`
	YoutubeURL   string `json:"youtubeUrl" binding:"required,url,youtube"`
	ThumbnailURL string `json:"thumbnailUrl" binding:"omitempty,url"`
}

func (r *videoRequest) sanitize() {
	r.Title = util.SanitizeText(r.Title)
}

type videoUpdateRequest struct {
	ID           string  `json:"id"`
	Title        *string `json:"title" binding:"omitnil,min=3"`
	YoutubeURL   *string `json:"youtubeUrl" binding:"omitnil,url,youtube"`
	ThumbnailURL *string `json:"thumbnailUrl" binding:"omitnil,len=0|url"`
}

func (r *videoUpdateRequest) sanitize() {
	r.Title = util.SanitizeOptional(r.Title)
}

func (h *VideoHandler) List(c *gin.Context) {
	page, err := services.Paginate[models.Video](h.DB.Model(&models.Video{}), pageRequest(c), "created_at desc")
	if err != nil {
		storeError(c, err, "list_videos")
		return
	}
	response.OK(c, page)
}

func (h *VideoHandler) Create(c *gin.Context) {
	var req videoRequest
	if !bindJSON(c, &req) {
		return
	}

	video := models.Video{
		Title:        req.Title,
		YoutubeURL:   req.YoutubeURL,
		ThumbnailURL: req.ThumbnailURL,
	}
	if err := h.DB.Create(&video).Error; err != nil {
		storeError(c, err, "create_video")
		return
	}

	h.Audit.Record("create_video", video.Title, map[string]interface{}{"id": video.ID})
	h.invalidate(c, "/")
	response.Created(c, video)
}

func (h *VideoHandler) Update(c *gin.Context) {
	var req videoUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	id := recordID(c, req.ID)
	if id == "" {
		response.Error(c, http.StatusBadRequest, msgIDRequired, nil)
		return
	}

	video, err := findByID[models.Video](h.DB, id)
	if err != nil {
		storeError(c, err, "update_video")
		return
	}

	ch := changes{}
	ch.set("title", req.Title, nil)
	ch.set("youtube_url", req.YoutubeURL, nil)
	ch.set("thumbnail_url", req.ThumbnailURL, nil)
	if err := applyChanges(h.DB, video, id, ch); err != nil {
		storeError(c, err, "update_video")
		return
	}

	h.Audit.Record("update_video", video.Title, map[string]interface{}{"id": video.ID})
	h.invalidate(c, "/")
	response.OK(c, video)
}

func (h *VideoHandler) Delete(c *gin.Context) {
	id := recordID(c, "")
	if id == "" {
		response.Error(c, http.StatusBadRequest, msgIDRequired, nil)
		return
	}

	video, err := findByID[models.Video](h.DB, id)
	if err != nil {
		storeError(c, err, "delete_video")
		return
	}
	if err := h.DB.Delete(video).Error; err != nil {
		storeError(c, err, "delete_video")
		return
	}

	h.Audit.Record("delete_video", video.Title, map[string]interface{}{"id": id})
	h.invalidate(c, "/")
	response.OK(c, gin.H{"id": id})
}
