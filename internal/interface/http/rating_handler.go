package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/entity"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/interface/middleware"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/response"
)

type RatingService interface {
	Submit(ctx context.Context, universityID int64, userID string, score int) (*entity.Rating, error)
	Average(ctx context.Context, universityID int64) (entity.AverageRating, error)
	Ranking(ctx context.Context) ([]entity.RankEntry, error)
}

type RatingHandler struct {
	Svc    RatingService
	Logger *logrus.Logger
}

func NewRatingHandler(svc RatingService, logger *logrus.Logger) *RatingHandler {
	return &RatingHandler{Svc: svc, Logger: logger}
}

// userId may be omitted when the caller is authenticated.
type submitRatingRequest struct {
	UserID string `json:"userId" binding:"omitempty,max=128"`
	Score  *int   `json:"score" binding:"required,score"`
}

// Submit POST /api/universities/:id/ratings
func (h *RatingHandler) Submit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req submitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	userID := req.UserID
	if userID == "" {
		if u := middleware.CurrentUser(c); u != nil {
			userID = u.ID
		}
	}
	if userID == "" {
		c.JSON(http.StatusBadRequest, response.Error[any](c, http.StatusBadRequest, middleware.T(c, "validation_failed"), map[string]string{"userId": "is required"}))
		return
	}
	r, err := h.Svc.Submit(c.Request.Context(), id, userID, *req.Score)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// Average GET /api/universities/:id/ratings/average
func (h *RatingHandler) Average(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	avg, err := h.Svc.Average(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, avg)
}

// Ranking GET /ranking
func (h *RatingHandler) Ranking(c *gin.Context) {
	entries, err := h.Svc.Ranking(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if entries == nil {
		entries = []entity.RankEntry{}
	}
	c.JSON(http.StatusOK, entries)
}
