package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/application"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/entity"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/interface/middleware"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/helpers"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/response"
)

type AuthService interface {
	Register(ctx context.Context, in application.RegisterInput, meta application.RequestMeta) (*entity.User, error)
	Login(ctx context.Context, email, password string, meta application.RequestMeta) (*application.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string, meta application.RequestMeta) (*application.AuthResult, error)
	Logout(ctx context.Context, u *entity.User, claims *helpers.Claims, meta application.RequestMeta) error
}

type AuthHandler struct {
	Svc     AuthService
	Cookies *helpers.Manager
	Logger  *logrus.Logger
	Now     func() time.Time
}

func NewAuthHandler(svc AuthService, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies, Logger: logger, Now: time.Now}
}

type registerRequest struct {
	Email    string  `json:"email" binding:"required,email,max=254"`
	Password string  `json:"password" binding:"required,pwd,max=72"`
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type tokenResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresIn    int64        `json:"expiresIn"`
	User         *entity.User `json:"user"`
}

func requestMeta(c *gin.Context) application.RequestMeta {
	return application.RequestMeta{
		IP:        middleware.ClientIP(c),
		UserAgent: c.GetHeader("User-Agent"),
		Lang:      middleware.Lang(c),
	}
}

func (h *AuthHandler) issue(c *gin.Context, res *application.AuthResult, msgID string) {
	t := res.Tokens
	if h.Cookies != nil {
		h.Cookies.SetPair(c, t.AccessToken, t.AccessTokenExpiry, t.RefreshToken, t.RefreshTokenExpiry)
	}
	payload := tokenResponse{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		ExpiresIn:    int64(t.AccessTokenExpiry.Sub(h.Now()).Seconds()),
		User:         res.User,
	}
	c.JSON(http.StatusOK, response.Success(c, http.StatusOK, payload, middleware.T(c, msgID), nil))
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	}, requestMeta(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(c, http.StatusCreated, u, middleware.T(c, "registered"), nil))
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password, requestMeta(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.issue(c, res, "logged_in")
}

// Refresh POST /api/auth/refresh; token from the body or the refresh cookie.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			invalid(c, err)
			return
		}
	}
	if req.RefreshToken == "" {
		if v, err := c.Cookie(helpers.RefreshCookie); err == nil {
			req.RefreshToken = v
		}
	}
	if req.RefreshToken == "" {
		fail(c, h.Logger, application.ErrInvalidRefreshToken)
		return
	}
	res, err := h.Svc.Refresh(c.Request.Context(), req.RefreshToken, requestMeta(c))
	if err != nil {
		if h.Cookies != nil {
			h.Cookies.Clear(c)
		}
		fail(c, h.Logger, err)
		return
	}
	h.issue(c, res, "token_refreshed")
}

// Logout POST /api/auth/logout (auth required)
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Svc.Logout(c.Request.Context(), middleware.CurrentUser(c), middleware.CurrentClaims(c), requestMeta(c)); err != nil {
		fail(c, h.Logger, err)
		return
	}
	if h.Cookies != nil {
		h.Cookies.Clear(c)
	}
	c.JSON(http.StatusOK, response.Success[any](c, http.StatusOK, nil, middleware.T(c, "logged_out"), nil))
}
