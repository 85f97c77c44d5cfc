package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/container"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/entity"
	handlers "github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/interface/http"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/interface/middleware"
)

// UserModule wires profile routes and the admin user list.
// Protected: GET/PATCH /api/users/me, PATCH/DELETE /api/users/me/photo
// Admin: GET /api/admin/users, PATCH /api/admin/users/:id/role
type UserModule struct {
	Handler *handlers.UserHandler
	Auth    middleware.Authenticator
}

func NewUserModule(h *handlers.UserHandler, auth middleware.Authenticator) *UserModule {
	return &UserModule{Handler: h, Auth: auth}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	me := rg.Group("/users/me")
	me.Use(middleware.Auth(m.Auth))
	// Apply a softer per-IP limiter to all protected routes
	me.Use(
		middleware.RateLimit(container.Cmdable(), 300, time.Minute, middleware.KeyByIP("me"), nil),
		middleware.RateLimit(container.Cmdable(), 120, time.Minute, middleware.KeyByUserID("me"), nil),
	)
	{
		me.GET("", m.Handler.Me)
		me.PATCH("", m.Handler.UpdateMe)
		me.PATCH("/photo", m.Handler.UpdatePhoto)
		me.DELETE("/photo", m.Handler.DeletePhoto)
	}

	admin := rg.Group("/admin")
	admin.Use(middleware.Auth(m.Auth), middleware.RequireRole(entity.RoleAdmin))
	{
		admin.GET("/users", m.Handler.List)
		admin.PATCH("/users/:id/role", m.Handler.SetRole)
	}
}
