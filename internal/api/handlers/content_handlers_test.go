package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focodev/site/backend/internal/models"
	"github.com/focodev/site/backend/internal/services"
)

func TestServiceHandler_Pagination(t *testing.T) {
	db := OpenTestDB(t)
	h := NewServiceHandler(db, services.NewAuditService(db), nil)
	r := newRouter(nil)
	r.GET("/services", h.List)

	for i := 0; i < 12; i++ {
		require.NoError(t, db.Create(&models.Service{Title: fmt.Sprintf("Servico %02d", i), Description: "Descricao longa"}).Error)
	}

	w := doRequest(r, http.MethodGet, "/services?page=2&pageSize=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page pageBody[models.Service]
	decode(t, w, &page)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 5, page.PageSize)
	assert.Equal(t, 3, page.TotalPages)

	w = doRequest(r, http.MethodGet, "/services?page=3&pageSize=5", nil)
	decode(t, w, &page)
	assert.Len(t, page.Items, 2)

	w = doRequest(r, http.MethodGet, "/services?pageSize=1000", nil)
	decode(t, w, &page)
	assert.Equal(t, services.MaxPageSize, page.PageSize)
}

func TestServiceHandler_CRUD(t *testing.T) {
	db := OpenTestDB(t)
	cache := newRecordingCache()
	h := NewServiceHandler(db, services.NewAuditService(db), cache)
	r := newRouter(adminSession())
	r.POST("/services", h.Create)
	r.PUT("/services/:id", h.Update)
	r.DELETE("/services", h.Delete)

	w := doRequest(r, http.MethodPost, "/services", map[string]string{"title": "Ab", "description": "curta"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields := fieldsOf(decode(t, w, nil))
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "description")

	w = doRequest(r, http.MethodPost, "/services", map[string]string{
		"title":       "Arquitetura",
		"description": "Projetos residenciais e comerciais",
		"imageUrl":    "https://cdn.example.com/s.jpg",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var svc models.Service
	decode(t, w, &svc)
	assert.Contains(t, cache.invalidated, "/")

	w = doRequest(r, http.MethodPut, "/services/"+svc.ID, map[string]string{"title": "Interiores"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Service
	decode(t, w, &updated)
	assert.Equal(t, "Interiores", updated.Title)
	assert.Equal(t, svc.Description, updated.Description)

	w = doRequest(r, http.MethodPut, "/services/"+svc.ID, map[string]string{"title": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPut, "/services/missing", map[string]string{"title": "Valido"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodDelete, "/services?id="+svc.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doRequest(r, http.MethodDelete, "/services", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, int64(1), auditCount(t, db, "delete_service"))
}

func TestVideoHandler_RequiresYouTubeLink(t *testing.T) {
	db := OpenTestDB(t)
	h := NewVideoHandler(db, services.NewAuditService(db), nil)
	r := newRouter(adminSession())
	r.POST("/videos", h.Create)
	r.GET("/videos", h.List)

	w := doRequest(r, http.MethodPost, "/videos", map[string]string{"title": "Tour", "youtubeUrl": "https://vimeo.com/123"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, fieldsOf(decode(t, w, nil)), "youtubeUrl")

	w = doRequest(r, http.MethodPost, "/videos", map[string]string{"title": "Tour", "youtubeUrl": "https://youtu.be/abc123"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var page pageBody[models.Video]
	decode(t, doRequest(r, http.MethodGet, "/videos", nil), &page)
	assert.Equal(t, int64(1), page.Total)
}

func TestImageHandler_ProjectReference(t *testing.T) {
	db := OpenTestDB(t)
	h := NewImageHandler(db, services.NewAuditService(db), nil, nil)
	r := newRouter(adminSession())
	r.POST("/images", h.Create)
	r.GET("/images", h.List)

	w := doRequest(r, http.MethodPost, "/images", map[string]string{"url": "https://cdn.example.com/1.jpg", "projectId": "ghost"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, fieldsOf(decode(t, w, nil)), "projectId")

	project := models.Project{Title: "Obra", Slug: "obra", Description: "Descricao do projeto de obra"}
	require.NoError(t, db.Create(&project).Error)

	w = doRequest(r, http.MethodPost, "/images", map[string]string{"url": "https://cdn.example.com/1.jpg", "projectId": project.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = doRequest(r, http.MethodPost, "/images", map[string]string{"url": "https://cdn.example.com/2.jpg"})
	require.Equal(t, http.StatusCreated, w.Code)

	var page pageBody[models.Image]
	decode(t, doRequest(r, http.MethodGet, "/images?projectId="+project.ID, nil), &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "https://cdn.example.com/1.jpg", page.Items[0].URL)
}

func TestTextHandler_KeyLookup(t *testing.T) {
	db := OpenTestDB(t)
	h := NewTextHandler(db, services.NewAuditService(db), nil)
	r := newRouter(adminSession())
	r.POST("/texts", h.Create)
	r.GET("/texts", h.List)
	r.GET("/texts/key/:key", h.GetByKey)

	w := doRequest(r, http.MethodPost, "/texts", map[string]string{"key": "about", "content": "Somos a FocoDev."})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = doRequest(r, http.MethodPost, "/texts", map[string]string{"key": "about", "content": "Outra coisa"})
	assert.Equal(t, http.StatusConflict, w.Code)

	var text models.InstitutionalText
	decode(t, doRequest(r, http.MethodGet, "/texts/key/about", nil), &text)
	assert.Equal(t, "Somos a FocoDev.", text.Content)

	assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodGet, "/texts/key/missing", nil).Code)

	var list []models.InstitutionalText
	decode(t, doRequest(r, http.MethodGet, "/texts", nil), &list)
	assert.Len(t, list, 1)
}

func TestTextHandler_RejectsMarkupOnlyContent(t *testing.T) {
	db := OpenTestDB(t)
	h := NewTextHandler(db, services.NewAuditService(db), nil)
	r := newRouter(adminSession())
	r.POST("/texts", h.Create)
	r.PUT("/texts/:id", h.Update)

	w := doRequest(r, http.MethodPost, "/texts", map[string]string{"key": "about", "content": "<p></p>"})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, fieldsOf(decode(t, w, nil)), "content")

	w = doRequest(r, http.MethodPost, "/texts", map[string]string{"key": "about", "content": "<b>Somos</b> a FocoDev."})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var text models.InstitutionalText
	decode(t, w, &text)
	assert.Equal(t, "Somos a FocoDev.", text.Content)

	w = doRequest(r, http.MethodPut, "/texts/"+text.ID, map[string]string{"content": "<script></script>"})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	var stored models.InstitutionalText
	require.NoError(t, db.First(&stored, "id = ?", text.ID).Error)
	assert.Equal(t, "Somos a FocoDev.", stored.Content)
}

func TestImageHandler_InvalidatesProjectPages(t *testing.T) {
	db := OpenTestDB(t)
	cache := newRecordingCache()
	h := NewImageHandler(db, services.NewAuditService(db), cache, nil)
	r := newRouter(adminSession())
	r.POST("/images", h.Create)
	r.PUT("/images/:id", h.Update)
	r.DELETE("/images/:id", h.Delete)

	obra := models.Project{Title: "Obra", Slug: "obra", Description: "Descricao do projeto de obra"}
	casa := models.Project{Title: "Casa", Slug: "casa", Description: "Descricao do projeto da casa"}
	require.NoError(t, db.Create(&obra).Error)
	require.NoError(t, db.Create(&casa).Error)

	w := doRequest(r, http.MethodPost, "/images", map[string]string{"url": "https://cdn.example.com/1.jpg", "projectId": obra.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var img models.Image
	decode(t, w, &img)
	assert.ElementsMatch(t, []string{"/", "/projects", "/projects/obra"}, cache.invalidated)

	cache.invalidated = nil
	w = doRequest(r, http.MethodPut, "/images/"+img.ID, map[string]string{"projectId": casa.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.ElementsMatch(t, []string{"/", "/projects", "/projects/obra", "/projects/casa"}, cache.invalidated)

	cache.invalidated = nil
	w = doRequest(r, http.MethodDelete, "/images/"+img.ID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.ElementsMatch(t, []string{"/", "/projects", "/projects/casa"}, cache.invalidated)
}

func TestImageHandler_DeleteRemovesUploadedFile(t *testing.T) {
	db := OpenTestDB(t)
	dir := t.TempDir()
	h := NewImageHandler(db, services.NewAuditService(db), nil, services.NewStorageService(dir, "/uploads"))
	r := newRouter(adminSession())
	r.DELETE("/images/:id", h.Delete)

	file := filepath.Join(dir, "projects", "foto.png")
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0o755))
	require.NoError(t, os.WriteFile(file, []byte("png"), 0o644))
	img := models.Image{URL: "/uploads/projects/foto.png", PublicID: "projects/foto.png"}
	require.NoError(t, db.Create(&img).Error)

	w := doRequest(r, http.MethodDelete, "/images/"+img.ID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	_, err := os.Stat(file)
	assert.True(t, os.IsNotExist(err))

	external := models.Image{URL: "https://cdn.example.com/2.jpg", PublicID: "../outside.png"}
	require.NoError(t, db.Create(&external).Error)
	w = doRequest(r, http.MethodDelete, "/images/"+external.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestVideoHandler_UpdateClearsThumbnail(t *testing.T) {
	db := OpenTestDB(t)
	h := NewVideoHandler(db, services.NewAuditService(db), nil)
	r := newRouter(adminSession())
	r.POST("/videos", h.Create)
	r.PUT("/videos/:id", h.Update)

	w := doRequest(r, http.MethodPost, "/videos", map[string]string{
		"title":        "Tour",
		"youtubeUrl":   "https://youtu.be/abc123",
		"thumbnailUrl": "https://cdn.example.com/thumb.jpg",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var video models.Video
	decode(t, w, &video)

	w = doRequest(r, http.MethodPut, "/videos/"+video.ID, map[string]string{"thumbnailUrl": ""})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Video
	decode(t, w, &updated)
	assert.Empty(t, updated.ThumbnailURL)
	assert.Equal(t, "Tour", updated.Title)
}
