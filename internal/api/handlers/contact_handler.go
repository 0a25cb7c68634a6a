package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/focodev/site/backend/internal/api/response"
	"github.com/focodev/site/backend/internal/models"
	"github.com/focodev/site/backend/internal/services"
	"github.com/focodev/site/backend/internal/util"
)

type ContactHandler struct {
	Contacts *services.ContactService
}

func NewContactHandler(contacts *services.ContactService) *ContactHandler {
	return &ContactHandler{Contacts: contacts}
}

type contactRequest struct {
	Name    string `json:"name" form:"name" binding:"required,min=2,max=100"`
	Email   string `json:"email" form:"email" binding:"required,email"`
	Phone   string `json:"phone" form:"phone" binding:"omitempty,max=30"`
	Message string `json:"message" form:"message" binding:"required,min=10,max=5000"`
}

func (r *contactRequest) sanitize() {
	r.Name = util.SanitizeText(r.Name)
	r.Email = util.SanitizeText(r.Email)
	r.Phone = util.SanitizeText(r.Phone)
	r.Message = util.SanitizeText(r.Message)
}

type contactStatusRequest struct {
	ID     string               `json:"id"`
	Status models.ContactStatus `json:"status" binding:"required,oneof=NEW RESOLVED"`
}

// Submit accepts the public contact form as JSON or form data. It succeeds
// once the message is stored; notification outcomes are only audited.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contactRequest
	if !bindWith(c, &req, c.ShouldBind) {
		return
	}

	res, err := h.Contacts.Submit(c.Request.Context(), services.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if errors.Is(err, services.ErrEmptyContact) {
		response.Error(c, http.StatusBadRequest, msgInvalidData, nil)
		return
	}
	if err != nil {
		storeError(c, err, "contact_message")
		return
	}
	response.Created(c, gin.H{"id": res.Message.ID})
}

func (h *ContactHandler) List(c *gin.Context) {
	page, err := h.Contacts.List(models.ContactStatus(c.Query("status")), pageRequest(c))
	if errors.Is(err, services.ErrInvalidStatus) {
		response.Error(c, http.StatusBadRequest, msgInvalidData, gin.H{"fields": gin.H{"status": "must be one of: NEW RESOLVED"}})
		return
	}
	if err != nil {
		storeError(c, err, "list_contacts")
		return
	}
	response.OK(c, page)
}

func (h *ContactHandler) Stats(c *gin.Context) {
	stats, err := h.Contacts.Stats()
	if err != nil {
		storeError(c, err, "contact_stats")
		return
	}
	response.OK(c, stats)
}

func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	var req contactStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	id := recordID(c, req.ID)
	if id == "" {
		response.Error(c, http.StatusBadRequest, msgIDRequired, nil)
		return
	}

	msg, err := h.Contacts.UpdateStatus(id, req.Status)
	if err != nil {
		storeError(c, err, "contact_status_updated")
		return
	}
	response.OK(c, msg)
}
