package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/application"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/entity"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/interface/middleware"
)

type UserService interface {
	Profile(ctx context.Context, userID string) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID string, in application.UpdateProfileInput) (*entity.User, error)
	UpdatePhoto(ctx context.Context, userID string, up entity.Upload) (*entity.User, error)
	DeletePhoto(ctx context.Context, userID string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	SetRole(ctx context.Context, userID string, role entity.Role) (*entity.User, error)
}

type UserHandler struct {
	Svc            UserService
	MaxUploadBytes int64
	Logger         *logrus.Logger
}

func NewUserHandler(svc UserService, maxUploadBytes int64, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, MaxUploadBytes: maxUploadBytes, Logger: logger}
}

type updateProfileRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Email *string `json:"email" binding:"omitempty,email,max=254"`
}

type setRoleRequest struct {
	Role entity.Role `json:"role" binding:"required,oneof=user admin"`
}

// Me GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.Svc.Profile(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateMe PATCH /api/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), application.UpdateProfileInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdatePhoto PATCH /api/users/me/photo (multipart "file")
func (h *UserHandler) UpdatePhoto(c *gin.Context) {
	up, closeBody, ok := readUpload(c, h.MaxUploadBytes)
	if !ok {
		return
	}
	defer closeBody()

	u, err := h.Svc.UpdatePhoto(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), up)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// DeletePhoto DELETE /api/users/me/photo
func (h *UserHandler) DeletePhoto(c *gin.Context) {
	u, err := h.Svc.DeletePhoto(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// List GET /api/admin/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if users == nil {
		users = []entity.User{}
	}
	c.JSON(http.StatusOK, users)
}

// SetRole PATCH /api/admin/users/:id/role
func (h *UserHandler) SetRole(c *gin.Context) {
	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	u, err := h.Svc.SetRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
