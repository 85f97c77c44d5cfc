package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/container"
	handlers "github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/interface/http"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/interface/middleware"
)

// AuthModule wires the auth endpoints.
// Public: POST /api/auth/register, /api/auth/login, /api/auth/refresh
// Protected: POST /api/auth/logout
type AuthModule struct {
	Handler *handlers.AuthHandler
	Auth    middleware.Authenticator
}

func NewAuthModule(h *handlers.AuthHandler, auth middleware.Authenticator) *AuthModule {
	return &AuthModule{Handler: h, Auth: auth}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public with rate limiting
	registerLimiter := middleware.RateLimit(container.Cmdable(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)   // 5 req/min per IP
	loginLimiter := middleware.RateLimit(container.Cmdable(), 10, time.Minute, middleware.KeyByIP("login"), nil)     // 10 req/min per IP
	refreshLimiter := middleware.RateLimit(container.Cmdable(), 60, time.Minute, middleware.KeyByIP("refresh"), nil) // 60 req/min per IP

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/refresh", refreshLimiter, m.Handler.Refresh)

	rg.POST("/auth/logout", middleware.Auth(m.Auth), m.Handler.Logout)
}
