package application

import (
	"context"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/entity"
)

// UniversityIndexer is the full-text index kept next to the database.
type UniversityIndexer interface {
	Index(ctx context.Context, u entity.University) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, q string, size int) ([]int64, error)
	Reindex(ctx context.Context, all []entity.University) error
}

// JobPublisher enqueues background jobs such as emails.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}
