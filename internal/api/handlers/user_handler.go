package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/focodev/site/backend/internal/api/response"
	"github.com/focodev/site/backend/internal/models"
	"github.com/focodev/site/backend/internal/services"
	"github.com/focodev/site/backend/internal/util"
)

var errLastAdmin = errors.New("cannot remove the last administrator")

type UserHandler struct {
	DB    *gorm.DB
	Audit *services.AuditService
}

func NewUserHandler(db *gorm.DB, audit *services.AuditService) *UserHandler {
	return &UserHandler{DB: db, Audit: audit}
}

type createUserRequest struct {
	Name     string      `json:"name" binding:"required,min=2"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=6"`
	Role     models.Role `json:"role" binding:"omitempty,oneof=ADMIN USER"`
}

func (r *createUserRequest) sanitize() {
	r.Name = util.SanitizeText(r.Name)
}

type updateUserRequest struct {
	ID       string       `json:"id"`
	Name     *string      `json:"name" binding:"omitnil,min=2"`
	Email    *string      `json:"email" binding:"omitnil,email"`
	Password *string      `json:"password" binding:"omitnil,min=6"`
	Role     *models.Role `json:"role" binding:"omitnil,oneof=ADMIN USER"`
}

func (r *updateUserRequest) sanitize() {
	r.Name = util.SanitizeOptional(r.Name)
}

func (h *UserHandler) List(c *gin.Context) {
	page, err := services.Paginate[models.User](h.DB.Model(&models.User{}), pageRequest(c), "created_at desc")
	if err != nil {
		storeError(c, err, "list_users")
		return
	}
	response.OK(c, page)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}

	user := models.User{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	}
	if err := user.SetPassword(req.Password); err != nil {
		storeError(c, err, "create_user")
		return
	}
	if err := h.DB.Create(&user).Error; err != nil {
		storeError(c, err, "create_user")
		return
	}

	h.Audit.Record("create_user", user.Email, map[string]interface{}{"id": user.ID})
	response.Created(c, gin.H{"id": user.ID, "email": user.Email})
}

// otherAdmins counts administrators besides id.
func otherAdmins(tx *gorm.DB, id string) (int64, error) {
	var count int64
	err := tx.Model(&models.User{}).Where("role = ? AND id <> ?", models.RoleAdmin, id).Count(&count).Error
	return count, err
}

func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	id := recordID(c, req.ID)
	if id == "" {
		response.Error(c, http.StatusBadRequest, msgIDRequired, nil)
		return
	}

	var user models.User
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			return err
		}
		if user.IsAdmin() && req.Role != nil && *req.Role != models.RoleAdmin {
			n, err := otherAdmins(tx, id)
			if err != nil {
				return err
			}
			if n == 0 {
				return errLastAdmin
			}
		}

		ch := changes{}
		ch.set("name", req.Name, nil)
		ch.set("email", req.Email, models.NormalizeEmail)
		if req.Role != nil {
			ch["role"] = *req.Role
		}
		if req.Password != nil {
			if err := user.SetPassword(*req.Password); err != nil {
				return err
			}
			ch["password_hash"] = user.PasswordHash
		}
		return applyChanges(tx, &user, id, ch)
	})
	if errors.Is(err, errLastAdmin) {
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err != nil {
		storeError(c, err, "update_user")
		return
	}

	h.Audit.Record("update_user", user.Email, map[string]interface{}{"id": id})
	response.OK(c, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id := recordID(c, "")
	if id == "" {
		response.Error(c, http.StatusBadRequest, msgIDRequired, nil)
		return
	}

	var user models.User
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			return err
		}
		if user.IsAdmin() {
			n, err := otherAdmins(tx, id)
			if err != nil {
				return err
			}
			if n == 0 {
				return errLastAdmin
			}
		}
		return tx.Delete(&user).Error
	})
	if errors.Is(err, errLastAdmin) {
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err != nil {
		storeError(c, err, "delete_user")
		return
	}

	h.Audit.Record("delete_user", user.Email, map[string]interface{}{"id": id})
	response.OK(c, gin.H{"id": id})
}
