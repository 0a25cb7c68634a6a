package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focodev/site/backend/internal/models"
	"github.com/focodev/site/backend/internal/services"
)

func TestSingletonHandler_CompanyUpsertIsIdempotent(t *testing.T) {
	db := OpenTestDB(t)
	cache := newRecordingCache()
	h := NewSingletonHandler(db, services.NewAuditService(db), cache)
	r := newRouter(adminSession())
	r.GET("/company", h.GetCompany)
	r.PUT("/company", h.UpsertCompany)
	r.POST("/company", h.UpsertCompany)

	w := doRequest(r, http.MethodGet, "/company", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":null`)

	body := map[string]string{"name": "FocoDev", "email": "contato@focodev.com", "phone": "11 4000-0000"}
	for _, method := range []string{http.MethodPut, http.MethodPut, http.MethodPost} {
		w = doRequest(r, method, "/company", body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.CompanyInfo{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var info models.CompanyInfo
	decode(t, doRequest(r, http.MethodGet, "/company", nil), &info)
	assert.Equal(t, models.CompanyInfoKey, info.ID)
	assert.Equal(t, "FocoDev", info.Name)
	assert.Equal(t, "11 4000-0000", info.Phone)
	assert.Contains(t, cache.invalidated, "/")
	assert.Equal(t, int64(3), auditCount(t, db, "update_company"))
}

func TestSingletonHandler_CompanyValidation(t *testing.T) {
	db := OpenTestDB(t)
	h := NewSingletonHandler(db, services.NewAuditService(db), nil)
	r := newRouter(adminSession())
	r.PUT("/company", h.UpsertCompany)

	w := doRequest(r, http.MethodPut, "/company", map[string]string{"name": "F", "email": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields := fieldsOf(decode(t, w, nil))
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
}

func TestSingletonHandler_BannerUpsert(t *testing.T) {
	db := OpenTestDB(t)
	h := NewSingletonHandler(db, services.NewAuditService(db), nil)
	r := newRouter(adminSession())
	r.GET("/banner", h.GetBanner)
	r.PUT("/banner", h.UpsertBanner)

	w := doRequest(r, http.MethodPut, "/banner", map[string]string{"title": "Bem-vindo", "subtitle": "Arquitetura"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = doRequest(r, http.MethodPut, "/banner", map[string]string{"title": "Ola de novo"})
	require.Equal(t, http.StatusOK, w.Code)

	var banner models.HomeBanner
	decode(t, doRequest(r, http.MethodGet, "/banner", nil), &banner)
	assert.Equal(t, models.HomeBannerKey, banner.ID)
	assert.Equal(t, "Ola de novo", banner.Title)
	assert.Equal(t, "Arquitetura", banner.Subtitle)
}
