package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/focodev/site/backend/internal/models"
	"github.com/focodev/site/backend/internal/services"
)

type failingMailer struct{}

func (failingMailer) SendEmail(string, string, string) error { return errors.New("smtp down") }

type failingMessenger struct{}

func (failingMessenger) Send(string) error { return errors.New("webhook down") }

func setupContactHandler(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()
	db := OpenTestDB(t)
	audit := services.NewAuditService(db)
	svc := services.NewContactService(db, audit, failingMailer{}, failingMessenger{}, "owner@focodev.com")
	h := NewContactHandler(svc)
	r := newRouter(adminSession())
	r.POST("/contact", h.Submit)
	r.GET("/contacts", h.List)
	r.GET("/contacts/stats", h.Stats)
	r.PUT("/contacts/:id", h.UpdateStatus)
	return r, db
}

func TestContactHandler_SubmitSucceedsWhenNotifiersFail(t *testing.T) {
	r, db := setupContactHandler(t)

	w := doRequest(r, http.MethodPost, "/contact", map[string]string{
		"name":    "Maria Silva",
		"email":   "maria@example.com",
		"message": "Quero um orcamento para reforma.",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	env := decode(t, w, &created)
	assert.True(t, env.OK)

	var msg models.ContactMessage
	require.NoError(t, db.First(&msg, "id = ?", created.ID).Error)
	assert.Equal(t, models.ContactStatusNew, msg.Status)
	assert.Equal(t, int64(2), auditCount(t, db, "contact_notification_failed"))
	assert.Equal(t, int64(1), auditCount(t, db, "contact_message"))
}

func TestContactHandler_SubmitForm(t *testing.T) {
	r, _ := setupContactHandler(t)

	form := url.Values{
		"name":    {"Joao"},
		"email":   {"joao@example.com"},
		"phone":   {"11 98888-7777"},
		"message": {"Mensagem enviada pelo formulario."},
	}
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestContactHandler_SubmitValidation(t *testing.T) {
	r, db := setupContactHandler(t)

	w := doRequest(r, http.MethodPost, "/contact", map[string]string{"name": "M", "email": "nope", "message": "curta"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields := fieldsOf(decode(t, w, nil))
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "message")

	var count int64
	db.Model(&models.ContactMessage{}).Count(&count)
	assert.Zero(t, count)
}

func TestContactHandler_SubmitMarkupOnly(t *testing.T) {
	r, db := setupContactHandler(t)

	w := doRequest(r, http.MethodPost, "/contact", map[string]string{
		"name":    "<b></b>",
		"email":   "ana@x.com",
		"message": "<p></p><p></p><p></p>",
	})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	fields := fieldsOf(decode(t, w, nil))
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "message")

	var count int64
	db.Model(&models.ContactMessage{}).Count(&count)
	assert.Zero(t, count)
	assert.Zero(t, auditCount(t, db, "contact_notification_failed"))
}

func TestContactHandler_AdminFlow(t *testing.T) {
	r, db := setupContactHandler(t)
	msg := models.ContactMessage{Name: "Ana", Email: "ana@example.com", Message: "Mensagem de teste longa"}
	require.NoError(t, db.Create(&msg).Error)

	w := doRequest(r, http.MethodGet, "/contacts?status=BOGUS", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPut, "/contacts/"+msg.ID, map[string]string{"status": "DONE"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPut, "/contacts/"+msg.ID, map[string]string{"status": "RESOLVED"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stats services.ContactStats
	decode(t, doRequest(r, http.MethodGet, "/contacts/stats", nil), &stats)
	assert.Equal(t, int64(1), stats.Total)
	assert.Equal(t, int64(1), stats.Resolved)

	var page pageBody[models.ContactMessage]
	decode(t, doRequest(r, http.MethodGet, "/contacts?status=NEW", nil), &page)
	assert.Zero(t, page.Total)

	assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodPut, "/contacts/missing", map[string]string{"status": "NEW"}).Code)
}
