package repository

import (
	"context"
	"time"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByRefreshHash(ctx context.Context, hash string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	SetRefreshHash(ctx context.Context, id string, hash *string, expiresAt *time.Time) error
}

// AuditRepository stores authentication events.
type AuditRepository interface {
	Insert(ctx context.Context, log entity.AuditLog) error
}
