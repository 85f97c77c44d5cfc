package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCS stores objects in a Google Cloud Storage bucket with public read access.
type GCS struct {
	client *gcs.Client
	bucket string
}

// NewGCS creates the client. If credsPath is empty, ADC is used.
func NewGCS(ctx context.Context, bucket, credsPath string) (*GCS, error) {
	if bucket == "" {
		return nil, errors.New("gcs: bucket is required")
	}
	var (
		client *gcs.Client
		err    error
	)
	if credsPath == "" {
		client, err = gcs.NewClient(ctx)
	} else {
		client, err = gcs.NewClient(ctx, option.WithCredentialsFile(credsPath))
	}
	if err != nil {
		return nil, err
	}
	return &GCS{client: client, bucket: bucket}, nil
}

func (g *GCS) Save(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	wc := g.client.Bucket(g.bucket).Object(key).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // small files, single request
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	return g.publicURL(key), nil
}

func (g *GCS) Delete(ctx context.Context, url string) error {
	prefix := g.publicURL("")
	if !strings.HasPrefix(url, prefix) {
		return ErrForeignURL
	}
	err := g.client.Bucket(g.bucket).Object(strings.TrimPrefix(url, prefix)).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil
	}
	return err
}

func (g *GCS) Close() error { return g.client.Close() }

func (g *GCS) publicURL(key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, key)
}
