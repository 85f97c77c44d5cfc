package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/entity"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/repository"
)

type RatingRepository struct {
	pool *pgxpool.Pool
}

func NewRatingRepository(pool *pgxpool.Pool) *RatingRepository {
	return &RatingRepository{pool: pool}
}

// Create inserts a rating. A missing university surfaces as repository.ErrNotFound.
func (r *RatingRepository) Create(ctx context.Context, rt *entity.Rating) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO rating (user_id, score, university_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, rt.UserID, rt.Score, rt.UniversityID)
	return mapErr(row.Scan(&rt.ID, &rt.CreatedAt))
}

func (r *RatingRepository) Average(ctx context.Context, universityID int64) (float64, error) {
	var avg float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(AVG(score), 0)::float8 FROM rating WHERE university_id = $1`,
		universityID).Scan(&avg)
	return avg, err
}

// Ranking returns one entry per rated university, best first; ties go to the lower id.
func (r *RatingRepository) Ranking(ctx context.Context) ([]entity.RankEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT university_id, AVG(score)::float8 AS avg
		FROM rating
		GROUP BY university_id
		ORDER BY avg DESC, university_id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.RankEntry{}
	for rows.Next() {
		var e entity.RankEntry
		if err := rows.Scan(&e.UniversityID, &e.Avg); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

var _ repository.RatingRepository = (*RatingRepository)(nil)
