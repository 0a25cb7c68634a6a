package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/focodev/site/backend/internal/api/middleware"
	"github.com/focodev/site/backend/internal/api/response"
	"github.com/focodev/site/backend/internal/services"
)

// multipartOverhead is the slack allowed on top of the file size for the
// multipart envelope and the folder field.
const multipartOverhead = 1 << 20

type UploadHandler struct {
	Storage *services.StorageService
	Audit   *services.AuditService
}

func NewUploadHandler(storage *services.StorageService, audit *services.AuditService) *UploadHandler {
	return &UploadHandler{Storage: storage, Audit: audit}
}

// Upload stores a multipart "file" under the optional "folder" field.
func (h *UploadHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, services.MaxUploadSize+multipartOverhead)

	if err := c.Request.ParseMultipartForm(services.MaxUploadSize + multipartOverhead); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.Error(c, http.StatusRequestEntityTooLarge, services.ErrFileTooLarge.Error(), nil)
			return
		}
		response.Error(c, http.StatusBadRequest, "multipart form required", nil)
		return
	}

	folder := c.DefaultPostForm("folder", services.DefaultUploadFolder)
	if !services.ValidFolder(folder) {
		response.Error(c, http.StatusBadRequest, services.ErrInvalidFolder.Error(), nil)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "file is required", nil)
		return
	}
	if fh.Size > services.MaxUploadSize {
		response.Error(c, http.StatusRequestEntityTooLarge, services.ErrFileTooLarge.Error(), nil)
		return
	}

	f, err := fh.Open()
	if err != nil {
		storeError(c, err, "upload_file")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, services.MaxUploadSize+1))
	if err != nil {
		storeError(c, err, "upload_file")
		return
	}

	res, err := h.Storage.Upload(data, folder)
	switch {
	case errors.Is(err, services.ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, err.Error(), nil)
		return
	case errors.Is(err, services.ErrUnsupportedMediaType), errors.Is(err, services.ErrEmptyFile), errors.Is(err, services.ErrInvalidFolder):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	case err != nil:
		middleware.GetRequestLogger(c).WithError(err).Error("upload failed")
		response.Error(c, http.StatusInternalServerError, "Upload failed", nil)
		return
	}

	h.Audit.Record("upload_file", res.URL, map[string]interface{}{
		"publicId": res.PublicID,
		"folder":    folder,
		"by":        middleware.GetSession(c).User.Email,
	})
	response.OK(c, res)
}
