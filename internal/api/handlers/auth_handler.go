package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/focodev/site/backend/internal/api/middleware"
	"github.com/focodev/site/backend/internal/api/response"
	"github.com/focodev/site/backend/internal/services"
)

type AuthHandler struct {
	Auth  *services.AuthService
	Audit *services.AuditService
	// SecureCookie marks the session cookie HTTPS-only.
	SecureCookie bool
}

func NewAuthHandler(auth *services.AuthService, audit *services.AuditService, secureCookie bool) *AuthHandler {
	return &AuthHandler{Auth: auth, Audit: audit, SecureCookie: secureCookie}
}

// setSessionCookie writes the session token as an HttpOnly, SameSite=Lax
// cookie. A negative maxAge clears it.
func setSessionCookie(c *gin.Context, value string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, value, maxAge, "/", "", secure, true)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, user, err := h.Auth.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			middleware.GetRequestLogger(c).Info("sign in rejected")
			response.Error(c, http.StatusUnauthorized, "Invalid email or password", nil)
			return
		}
		storeError(c, err, "sign_in")
		return
	}

	setSessionCookie(c, token, int(h.Auth.TTL().Seconds()), h.SecureCookie)
	h.Audit.Record("sign_in", "User signed in", map[string]interface{}{"id": user.ID, "email": user.Email})

	response.OK(c, gin.H{
		"token": token,
		"user": services.Principal{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	setSessionCookie(c, "", -1, h.SecureCookie)
	if session := middleware.GetSession(c); session.IsAuthenticated() {
		h.Audit.Record("sign_out", "User signed out", map[string]interface{}{"id": session.User.ID, "email": session.User.Email})
	}
	response.OK(c, gin.H{"message": "Signed out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	response.OK(c, middleware.GetSession(c).User)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	session := middleware.GetSession(c)
	err := h.Auth.ChangePassword(session.User.ID, req.CurrentPassword, req.NewPassword)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrIncorrectPassword):
		response.Error(c, http.StatusBadRequest, err.Error(), gin.H{"fields": gin.H{"currentPassword": "incorrect"}})
		return
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	default:
		storeError(c, err, "change_password")
		return
	}

	h.Audit.Record("change_password", "Password changed", map[string]interface{}{"id": session.User.ID})
	response.OK(c, gin.H{"message": "Password updated"})
}
