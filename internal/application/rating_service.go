package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/entity"
	repo "github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/repository"
)

// RatingService turns raw scores into averages and the leaderboard.
type RatingService struct {
	Ratings      repo.RatingRepository
	Universities repo.UniversityRepository
	Cache        *RankingCache
	Logger       *logrus.Logger
}

func NewRatingService(ratings repo.RatingRepository, universities repo.UniversityRepository, cache *RankingCache, logger *logrus.Logger) *RatingService {
	return &RatingService{Ratings: ratings, Universities: universities, Cache: cache, Logger: logger}
}

// Submit stores a new rating. Neither the user id nor earlier ratings by the
// same user are checked.
func (s *RatingService) Submit(ctx context.Context, universityID int64, userID string, score int) (*entity.Rating, error) {
	if !entity.ValidScore(score) {
		return nil, ErrInvalidScore
	}
	if _, err := s.Universities.GetByID(ctx, universityID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUniversityNotFound
		}
		return nil, err
	}

	r := &entity.Rating{UserID: userID, Score: score, UniversityID: universityID}
	if err := s.Ratings.Create(ctx, r); err != nil {
		// the university was removed in between
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUniversityNotFound
		}
		return nil, err
	}

	ratingsSubmitted.Add(1)
	s.Cache.Invalidate(ctx)
	return r, nil
}

// Average is 0 for a university without ratings, including unknown ids.
func (s *RatingService) Average(ctx context.Context, universityID int64) (entity.AverageRating, error) {
	avg, err := s.Ratings.Average(ctx, universityID)
	if err != nil {
		return entity.AverageRating{}, err
	}
	return entity.AverageRating{UniversityID: universityID, Average: avg}, nil
}

// Ranking lists rated universities by average score, best first; ties are broken by id.
func (s *RatingService) Ranking(ctx context.Context) ([]entity.RankEntry, error) {
	if cached, ok := s.Cache.Get(ctx); ok {
		return cached, nil
	}
	return s.WarmRanking(ctx)
}

// WarmRanking recomputes the leaderboard and refreshes the cache. The result
// is not cached when a rating lands while the query runs.
func (s *RatingService) WarmRanking(ctx context.Context) ([]entity.RankEntry, error) {
	gen, cacheable := s.Cache.Generation(ctx)
	entries, err := s.Ratings.Ranking(ctx)
	if err != nil {
		return nil, err
	}
	if cacheable {
		s.Cache.Set(ctx, gen, entries)
	}
	return entries, nil
}
