package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/config"
)

// ErrForeignURL is returned by Delete when the url was not issued by the store.
var ErrForeignURL = errors.New("url does not belong to this store")

// Store persists uploaded files and returns the URL they are reachable at.
type Store interface {
	Save(ctx context.Context, key, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// Key builds a deterministic object key: <prefix>/<unix-millis><ext>.
// The extension is taken from the original file name and lower-cased.
func Key(prefix, originalName string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s/%d%s", strings.Trim(prefix, "/"), now.UnixMilli(), ext)
}

// New returns the backend selected by cfg.StorageDriver.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch strings.ToLower(cfg.StorageDriver) {
	case "", "local":
		return NewLocal(cfg.UploadDir, cfg.UploadURLPrefix)
	case "gcs":
		return NewGCS(ctx, cfg.GCSBucket, cfg.GCSCredentialsJSONPath)
	case "s3":
		return NewS3(S3Config{
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PublicURL: cfg.S3PublicURL,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
