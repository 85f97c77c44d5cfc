package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/container"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/interface/middleware"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// Public metrics endpoint (expvar), rate-limited per IP
	rl := middleware.RateLimit(container.Cmdable(), 120, time.Minute, middleware.KeyByIP("debug"), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
