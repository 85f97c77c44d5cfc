package repository

import (
	"context"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/entity"
)

// UniversityRepository persists university records.
// Update and Delete report the number of affected rows and never fail on a missing id.
type UniversityRepository interface {
	List(ctx context.Context) ([]entity.University, error)
	GetByID(ctx context.Context, id int64) (*entity.University, error)
	GetByIDs(ctx context.Context, ids []int64) ([]entity.University, error)
	SearchByName(ctx context.Context, q string, limit int) ([]entity.University, error)
	Create(ctx context.Context, f entity.UniversityFields) (*entity.University, error)
	Update(ctx context.Context, id int64, patch entity.UniversityFields) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// RatingRepository persists ratings and runs the aggregate queries over them.
type RatingRepository interface {
	Create(ctx context.Context, r *entity.Rating) error
	Average(ctx context.Context, universityID int64) (float64, error)
	Ranking(ctx context.Context) ([]entity.RankEntry, error)
}
