package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/container"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/entity"
	handlers "github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/interface/http"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/interface/middleware"
)

// UniversityModule wires the directory routes.
// Public: GET /api/universities, /api/universities/search, /api/universities/:id
// Admin: POST/PUT/DELETE /api/universities[/:id], POST /api/universities/:id/photo
type UniversityModule struct {
	Handler *handlers.UniversityHandler
	Auth    middleware.Authenticator
}

func NewUniversityModule(h *handlers.UniversityHandler, auth middleware.Authenticator) *UniversityModule {
	return &UniversityModule{Handler: h, Auth: auth}
}

func (m *UniversityModule) Register(rg *gin.RouterGroup) {
	searchLimiter := middleware.RateLimit(container.Cmdable(), 60, time.Minute, middleware.KeyByIP("search"), middleware.AllowPrivateIP())

	rg.GET("/universities", m.Handler.List)
	rg.GET("/universities/search", searchLimiter, m.Handler.Search)
	rg.GET("/universities/:id", m.Handler.Get)

	admin := rg.Group("/universities")
	admin.Use(middleware.Auth(m.Auth), middleware.RequireRole(entity.RoleAdmin))
	admin.Use(middleware.RateLimit(container.Cmdable(), 120, time.Minute, middleware.KeyByUserID("universities-admin"), nil))
	{
		admin.POST("", m.Handler.Create)
		admin.PUT("/:id", m.Handler.Update)
		admin.DELETE("/:id", m.Handler.Delete)
		admin.POST("/:id/photo", m.Handler.UploadPhoto)
	}
}
