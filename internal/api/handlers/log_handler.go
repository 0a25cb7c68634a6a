package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/focodev/site/backend/internal/api/response"
	"github.com/focodev/site/backend/internal/services"
)

// LogHandler exposes the audit trail to administrators.
type LogHandler struct {
	Audit *services.AuditService
}

func NewLogHandler(audit *services.AuditService) *LogHandler {
	return &LogHandler{Audit: audit}
}

func (h *LogHandler) List(c *gin.Context) {
	page, err := h.Audit.List(c.Query("action"), pageRequest(c))
	if err != nil {
		storeError(c, err, "list_logs")
		return
	}
	response.OK(c, page)
}
