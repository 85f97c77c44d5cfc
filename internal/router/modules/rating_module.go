package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/container"
	handlers "github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/interface/http"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/interface/middleware"
)

// RatingModule wires rating submission, averages and the root-level /ranking leaderboard.
type RatingModule struct {
	Handler *handlers.RatingHandler
	Auth    middleware.Authenticator
}

func NewRatingModule(h *handlers.RatingHandler, auth middleware.Authenticator) *RatingModule {
	return &RatingModule{Handler: h, Auth: auth}
}

func (m *RatingModule) Register(rg *gin.RouterGroup) {
	submitLimiter := middleware.RateLimit(container.Cmdable(), 30, time.Minute, middleware.KeyByUserID("ratings"), nil)

	rg.POST("/universities/:id/ratings", middleware.OptionalAuth(m.Auth), submitLimiter, m.Handler.Submit)
	rg.GET("/universities/:id/ratings/average", m.Handler.Average)
}

func (m *RatingModule) RegisterRoot(r gin.IRoutes) {
	r.GET("/ranking", m.Handler.Ranking)
}
