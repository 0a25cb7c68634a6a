package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"

	"github.com/focodev/site/backend/internal/api/middleware"
	"github.com/focodev/site/backend/internal/api/response"
	"github.com/focodev/site/backend/internal/services"
)

const (
	msgInvalidData = "Invalid data"
	msgIDRequired  = "ID is required"
	msgNotFound    = "Not found"
	msgConflict    = "A record with this value already exists"
	msgInternal    = "Internal server error"
)

// sanitizer is implemented by requests that carry free text. sanitize
// cleans the fields in place.
type sanitizer interface {
	sanitize()
}

// bindJSON decodes the body into req and writes the 400 envelope with a
// field map when decoding or validation fails.
func bindJSON(c *gin.Context, req interface{}) bool {
	return bindWith(c, req, c.ShouldBindJSON)
}

// bindWith decodes with bind, then sanitizes and validates again so the
// rules hold for the text that is actually stored.
func bindWith(c *gin.Context, req interface{}, bind func(interface{}) error) bool {
	if err := bind(req); err != nil {
		validationError(c, err)
		return false
	}
	s, ok := req.(sanitizer)
	if !ok {
		return true
	}
	s.sanitize()
	if err := binding.Validator.ValidateStruct(req); err != nil {
		validationError(c, err)
		return false
	}
	return true
}

func validationError(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, msgInvalidData, gin.H{"fields": fieldErrors(err)})
}

// storeError maps a persistence error onto the failure taxonomy. Details
// stay in the server log.
func storeError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, msgNotFound, nil)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		response.Error(c, http.StatusConflict, msgConflict, nil)
	default:
		middleware.GetRequestLogger(c).WithError(err).WithField("action", action).Error("store operation failed")
		response.Error(c, http.StatusInternalServerError, msgInternal, nil)
	}
}

// pageRequest reads page and pageSize from the query string.
func pageRequest(c *gin.Context) services.PageRequest {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("pageSize"))
	return services.NewPageRequest(page, size)
}

// recordID takes the id from the path, then the query string, then the
// body.
func recordID(c *gin.Context, bodyID string) string {
	if id := c.Param("id"); id != "" {
		return id
	}
	if id := c.Query("id"); id != "" {
		return id
	}
	return bodyID
}

// changes collects the non-nil fields of a partial update keyed by column.
type changes map[string]interface{}

func (ch changes) set(column string, v *string, clean func(string) string) {
	if v == nil {
		return
	}
	if clean != nil {
		ch[column] = clean(*v)
		return
	}
	ch[column] = *v
}

// contentDeps are shared by the handlers that edit public content.
type contentDeps struct {
	DB    *gorm.DB
	Audit *services.AuditService
	Cache services.PageCache
}

func newContentDeps(db *gorm.DB, audit *services.AuditService, cache services.PageCache) contentDeps {
	if cache == nil {
		cache = services.NoopPageCache{}
	}
	return contentDeps{DB: db, Audit: audit, Cache: cache}
}

// invalidate drops cached public pages after a successful write.
func (d contentDeps) invalidate(c *gin.Context, paths ...string) {
	d.Cache.Invalidate(c.Request.Context(), paths...)
}

func findByID[T any](db *gorm.DB, id string) (*T, error) {
	var rec T
	if err := db.Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// applyChanges writes a partial update and reloads rec.
func applyChanges[T any](db *gorm.DB, rec *T, id string, ch changes) error {
	if len(ch) > 0 {
		if err := db.Model(rec).Updates(map[string]interface{}(ch)).Error; err != nil {
			return err
		}
	}
	return db.Where("id = ?", id).First(rec).Error
}

// serveCached answers from the page cache when possible. On a miss it calls
// load, writes the envelope and stores it under key.
func serveCached(c *gin.Context, cache services.PageCache, key string, load func() (interface{}, error)) {
	ctx := c.Request.Context()
	if body, ok := cache.Get(ctx, key); ok {
		c.Header("X-Cache", "HIT")
		response.Raw(c, body)
		return
	}

	data, err := load()
	if err != nil {
		storeError(c, err, "read "+key)
		return
	}
	body, err := response.Encode(data)
	if err != nil {
		storeError(c, err, "encode "+key)
		return
	}
	cache.Set(ctx, key, body)
	c.Header("X-Cache", "MISS")
	response.Raw(c, body)
}
