package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/focodev/site/backend/internal/api/response"
	"github.com/focodev/site/backend/internal/version"
)

// HealthHandler responds with basic service metadata for uptime checks.
func HealthHandler(c *gin.Context) {
	response.OK(c, gin.H{
		"status":     "ok",
		"service":    version.Name,
		"version":    version.Version,
		"git_commit": version.GitCommit,
		"build_time": version.BuildTime,
	})
}
