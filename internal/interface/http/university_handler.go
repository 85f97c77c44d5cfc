package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/entity"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/interface/middleware"
)

// UniversityService is the directory behaviour the handler needs.
type UniversityService interface {
	List(ctx context.Context) ([]entity.University, error)
	Get(ctx context.Context, id int64) (*entity.University, error)
	Create(ctx context.Context, f entity.UniversityFields) (*entity.University, error)
	Update(ctx context.Context, id int64, patch entity.UniversityFields) (entity.MutationResult, error)
	Remove(ctx context.Context, id int64) (entity.MutationResult, error)
	AttachPhoto(ctx context.Context, id int64, up entity.Upload) (string, error)
	Search(ctx context.Context, q string, size int) ([]entity.University, error)
}

type UniversityHandler struct {
	Svc            UniversityService
	MaxUploadBytes int64
	Logger         *logrus.Logger
}

func NewUniversityHandler(svc UniversityService, maxUploadBytes int64, logger *logrus.Logger) *UniversityHandler {
	return &UniversityHandler{Svc: svc, MaxUploadBytes: maxUploadBytes, Logger: logger}
}

// createUniversityRequest requires name and description in every locale.
type createUniversityRequest struct {
	PhotoURL            *string               `json:"photoUrl" binding:"omitempty,max=2048"`
	Name                *entity.LocalizedText `json:"name" binding:"required,locales"`
	Description         *entity.LocalizedText `json:"description" binding:"required,locales"`
	Specials            *entity.LocalizedText `json:"specials" binding:"omitempty,localekeys"`
	Financing           *entity.LocalizedText `json:"financing" binding:"omitempty,localekeys"`
	Duration            *entity.LocalizedText `json:"duration" binding:"omitempty,localekeys"`
	ApplicationDeadline *string               `json:"applicationDeadline" binding:"omitempty,isodate"`
	Gender              *entity.LocalizedText `json:"gender" binding:"omitempty,localekeys"`
	Age                 *int                  `json:"age" binding:"omitempty,gte=0,lte=150"`
	Others              *entity.LocalizedText `json:"others" binding:"omitempty,localekeys"`
	Medicine            *entity.LocalizedText `json:"medicine" binding:"omitempty,localekeys"`
	Salary              *entity.LocalizedText `json:"salary" binding:"omitempty,localekeys"`
	Dormitory           *entity.LocalizedText `json:"dormitory" binding:"omitempty,localekeys"`
	Rewards             *entity.LocalizedText `json:"rewards" binding:"omitempty,localekeys"`
	AdditionalOthers    *entity.LocalizedText `json:"additionalOthers" binding:"omitempty,localekeys"`
	OfficialLink        *string               `json:"officialLink" binding:"omitempty,url"`
}

// updateUniversityRequest is a patch; name and description must stay complete when sent.
type updateUniversityRequest struct {
	PhotoURL            *string               `json:"photoUrl" binding:"omitempty,max=2048"`
	Name                *entity.LocalizedText `json:"name" binding:"omitempty,locales"`
	Description         *entity.LocalizedText `json:"description" binding:"omitempty,locales"`
	Specials            *entity.LocalizedText `json:"specials" binding:"omitempty,localekeys"`
	Financing           *entity.LocalizedText `json:"financing" binding:"omitempty,localekeys"`
	Duration            *entity.LocalizedText `json:"duration" binding:"omitempty,localekeys"`
	ApplicationDeadline *string               `json:"applicationDeadline" binding:"omitempty,isodate"`
	Gender              *entity.LocalizedText `json:"gender" binding:"omitempty,localekeys"`
	Age                 *int                  `json:"age" binding:"omitempty,gte=0,lte=150"`
	Others              *entity.LocalizedText `json:"others" binding:"omitempty,localekeys"`
	Medicine            *entity.LocalizedText `json:"medicine" binding:"omitempty,localekeys"`
	Salary              *entity.LocalizedText `json:"salary" binding:"omitempty,localekeys"`
	Dormitory           *entity.LocalizedText `json:"dormitory" binding:"omitempty,localekeys"`
	Rewards             *entity.LocalizedText `json:"rewards" binding:"omitempty,localekeys"`
	AdditionalOthers    *entity.LocalizedText `json:"additionalOthers" binding:"omitempty,localekeys"`
	OfficialLink        *string               `json:"officialLink" binding:"omitempty,url"`
}

func (r createUniversityRequest) fields() entity.UniversityFields {
	return entity.UniversityFields(r)
}

func (r updateUniversityRequest) fields() entity.UniversityFields {
	return entity.UniversityFields(r)
}

// List GET /api/universities
func (h *UniversityHandler) List(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if list == nil {
		list = []entity.University{}
	}
	c.JSON(http.StatusOK, list)
}

// Get GET /api/universities/:id; a missing record is a 200 with null.
func (h *UniversityHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Create POST /api/universities (admin)
func (h *UniversityHandler) Create(c *gin.Context) {
	var req createUniversityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), req.fields())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// Update PUT /api/universities/:id (admin)
func (h *UniversityHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateUniversityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	res, err := h.Svc.Update(c.Request.Context(), id, req.fields())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Delete DELETE /api/universities/:id (admin)
func (h *UniversityHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := h.Svc.Remove(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// UploadPhoto POST /api/universities/:id/photo (admin, multipart "file")
func (h *UniversityHandler) UploadPhoto(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	up, closeBody, ok := readUpload(c, h.MaxUploadBytes)
	if !ok {
		return
	}
	defer closeBody()

	url, err := h.Svc.AttachPhoto(c.Request.Context(), id, up)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": middleware.T(c, "photo_uploaded"), "photoUrl": url})
}

// Search GET /api/universities/search?q=&size=
func (h *UniversityHandler) Search(c *gin.Context) {
	var q struct {
		Q    string `form:"q" binding:"required,max=200"`
		Size int    `form:"size" binding:"omitempty,min=1,max=50"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		invalid(c, err)
		return
	}
	list, err := h.Svc.Search(c.Request.Context(), q.Q, q.Size)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if list == nil {
		list = []entity.University{}
	}
	c.Header("X-Total-Count", strconv.Itoa(len(list)))
	c.JSON(http.StatusOK, list)
}
