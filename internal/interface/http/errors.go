package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/application"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/interface/middleware"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/response"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/validation"
)

// statusFor maps the application error taxonomy to an HTTP status and a message id.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, application.ErrUniversityNotFound):
		return http.StatusNotFound, "university_not_found"
	case errors.Is(err, application.ErrUserNotFound):
		return http.StatusNotFound, "user_not_found"
	case errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, application.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, application.ErrInvalidRefreshToken):
		return http.StatusUnauthorized, "invalid_refresh_token"
	case errors.Is(err, application.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, application.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, application.ErrEmailTaken):
		return http.StatusConflict, "email_taken"
	case errors.Is(err, application.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, application.ErrValidation):
		return http.StatusBadRequest, "validation_failed"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// fail writes the error envelope for a service error. Unexpected errors are logged, never echoed.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	status, id := statusFor(err)
	var detail any
	switch status {
	case http.StatusInternalServerError:
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.FullPath(),
			}).Error("request failed")
		}
	case http.StatusBadRequest:
		detail = map[string]string{"payload": err.Error()}
	}
	c.JSON(status, response.Error[any](c, status, middleware.T(c, id), detail))
}

// invalid writes a 400 with per-field details from a binding error.
func invalid(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.Error[any](c, http.StatusBadRequest, middleware.T(c, "validation_failed"), validation.ToDetails(err)))
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, response.Error[any](c, http.StatusBadRequest, middleware.T(c, "invalid_id"), gin.H{"id": "must be a positive integer"}))
		return 0, false
	}
	return id, true
}
