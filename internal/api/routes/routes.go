package routes

import (
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/focodev/site/backend/internal/api/handlers"
	"github.com/focodev/site/backend/internal/api/middleware"
	"github.com/focodev/site/backend/internal/config"
	"github.com/focodev/site/backend/internal/database"
	"github.com/focodev/site/backend/internal/logger"
	"github.com/focodev/site/backend/internal/services"
)

// mutator is a collection handler with the three admin writes.
type mutator interface {
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// registerWrites mounts create, update and delete for path behind guard.
// Update and delete take the id from the path, the query string or the body.
func registerWrites(api *gin.RouterGroup, path string, h mutator, guard gin.HandlerFunc) {
	g := api.Group(path, guard)
	g.POST("", h.Create)
	g.PUT("", h.Update)
	g.PUT("/:id", h.Update)
	g.DELETE("", h.Delete)
	g.DELETE("/:id", h.Delete)
}

// Register wires up API routes and performs automatic migrations.
func Register(router *gin.Engine, db *gorm.DB, cfg config.Config) error {
	if err := database.Migrate(db); err != nil {
		return err
	}
	if err := handlers.RegisterValidators(); err != nil {
		return fmt.Errorf("register validators: %w", err)
	}

	auditService := services.NewAuditService(db)
	authService := services.NewAuthService(db, cfg)
	pageCache := services.NewPageCache(cfg.Redis)
	storageService := services.NewStorageService(cfg.UploadDir, cfg.UploadBaseURL)
	contactService := services.NewContactService(
		db,
		auditService,
		services.NewMailService(cfg.SMTP),
		services.NewMessagingService(cfg.MessagingURL),
		cfg.ContactNotifyEmail,
	)

	if strings.HasPrefix(cfg.UploadBaseURL, "/") {
		if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
			return fmt.Errorf("ensure upload directory: %w", err)
		}
		router.Static(cfg.UploadBaseURL, storageService.BaseDir())
	}

	router.GET("/api/v1/health", handlers.HealthHandler)

	api := router.Group("/api/v1")
	api.Use(middleware.SessionGate(authService))

	secure := cfg.IsProduction()
	limits := cfg.RateLimits
	authLimit := middleware.RateLimit("auth", limits.Auth, limits.Window, secure)
	uploadLimit := middleware.RateLimit("upload", limits.Upload, limits.Window, secure)
	contactLimit := middleware.RateLimit("contact", limits.Contact, limits.Window, secure)
	requireAuth := middleware.RequireAuth()
	requireAdmin := middleware.RequireAdmin()

	// Auth
	authHandler := handlers.NewAuthHandler(authService, auditService, secure)
	api.POST("/auth/login", authLimit, authHandler.Login)
	api.POST("/auth/logout", authLimit, authHandler.Logout)
	api.GET("/auth/me", requireAuth, authHandler.Me)
	api.POST("/auth/change-password", authLimit, requireAuth, authHandler.ChangePassword)

	// Public pages
	homeHandler := handlers.NewHomeHandler(db, pageCache)
	api.GET("/home", homeHandler.Get)

	serviceHandler := handlers.NewServiceHandler(db, auditService, pageCache)
	api.GET("/services", serviceHandler.List)
	registerWrites(api, "/services", serviceHandler, requireAdmin)

	projectHandler := handlers.NewProjectHandler(db, auditService, pageCache)
	api.GET("/projects", projectHandler.List)
	api.GET("/projects/:slug", projectHandler.GetBySlug)
	registerWrites(api, "/projects", projectHandler, requireAdmin)

	imageHandler := handlers.NewImageHandler(db, auditService, pageCache, storageService)
	api.GET("/images", imageHandler.List)
	registerWrites(api, "/images", imageHandler, requireAdmin)

	videoHandler := handlers.NewVideoHandler(db, auditService, pageCache)
	api.GET("/videos", videoHandler.List)
	registerWrites(api, "/videos", videoHandler, requireAdmin)

	singletonHandler := handlers.NewSingletonHandler(db, auditService, pageCache)
	api.GET("/company", singletonHandler.GetCompany)
	api.PUT("/company", requireAdmin, singletonHandler.UpsertCompany)
	api.POST("/company", requireAdmin, singletonHandler.UpsertCompany)
	api.GET("/banner", singletonHandler.GetBanner)
	api.PUT("/banner", requireAdmin, singletonHandler.UpsertBanner)
	api.POST("/banner", requireAdmin, singletonHandler.UpsertBanner)

	// Institutional copy is editable by any signed-in user.
	textHandler := handlers.NewTextHandler(db, auditService, pageCache)
	api.GET("/texts", textHandler.List)
	api.GET("/texts/key/:key", textHandler.GetByKey)
	registerWrites(api, "/texts", textHandler, requireAuth)

	// Contact
	contactHandler := handlers.NewContactHandler(contactService)
	api.POST("/contact", contactLimit, contactHandler.Submit)

	// Admin area
	userHandler := handlers.NewUserHandler(db, auditService)
	api.GET("/users", requireAuth, userHandler.List)
	registerWrites(api, "/users", userHandler, requireAdmin)

	admin := api.Group("", requireAdmin)
	{
		admin.GET("/contacts", contactHandler.List)
		admin.GET("/contacts/stats", contactHandler.Stats)
		admin.PUT("/contacts", contactHandler.UpdateStatus)
		admin.PUT("/contacts/:id", contactHandler.UpdateStatus)

		logHandler := handlers.NewLogHandler(auditService)
		admin.GET("/logs", logHandler.List)

		uploadHandler := handlers.NewUploadHandler(storageService, auditService)
		admin.POST("/upload", uploadLimit, uploadHandler.Upload)
	}

	logger.Component("routes").WithField("cache", fmt.Sprintf("%T", pageCache)).Info("API routes registered")
	return nil
}
