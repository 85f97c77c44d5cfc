package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/entity"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/interface/middleware"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/response"
)

const uploadField = "file"

// multipart framing on top of the file itself
const multipartSlack = 1 << 20

// readUpload opens the "file" part of a multipart request. On failure the
// response is already written and ok is false. Callers must close the body.
func readUpload(c *gin.Context, maxBytes int64) (up entity.Upload, closer func(), ok bool) {
	if maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartSlack)
	}
	fh, err := c.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, response.Error[any](c, http.StatusRequestEntityTooLarge, middleware.T(c, "file_too_large"), nil))
			return up, nil, false
		}
		c.JSON(http.StatusBadRequest, response.Error[any](c, http.StatusBadRequest, middleware.T(c, "file_required"), nil))
		return up, nil, false
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, response.Error[any](c, http.StatusRequestEntityTooLarge, middleware.T(c, "file_too_large"), gin.H{"max_bytes": maxBytes}))
		return up, nil, false
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error[any](c, http.StatusBadRequest, middleware.T(c, "file_required"), nil))
		return up, nil, false
	}
	return entity.Upload{
		Filename:    fh.Filename,
		ContentType: contentType(fh),
		Size:        fh.Size,
		Body:        f,
	}, func() { _ = f.Close() }, true
}

func contentType(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
