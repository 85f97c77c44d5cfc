package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/entity"
	repo "github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/repository"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/storage"
)

const (
	DefaultSearchSize = 10
	MaxSearchSize     = 50
	universityPhotos  = "universities"
)

// UniversityService is the directory of university records.
type UniversityService struct {
	Repo    repo.UniversityRepository
	Index   UniversityIndexer // optional
	Store   storage.Store
	Ranking *RankingCache
	Logger  *logrus.Logger
	// Strict turns update/remove on a missing id into ErrUniversityNotFound.
	Strict bool
	Now    func() time.Time
}

func NewUniversityService(r repo.UniversityRepository, index UniversityIndexer, store storage.Store, ranking *RankingCache, logger *logrus.Logger, strict bool) *UniversityService {
	return &UniversityService{
		Repo:    r,
		Index:   index,
		Store:   store,
		Ranking: ranking,
		Logger:  logger,
		Strict:  strict,
		Now:     time.Now,
	}
}

func (s *UniversityService) List(ctx context.Context) ([]entity.University, error) {
	return s.Repo.List(ctx)
}

// Get returns nil without an error when no university has the id.
func (s *UniversityService) Get(ctx context.Context, id int64) (*entity.University, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	return u, err
}

func (s *UniversityService) Create(ctx context.Context, f entity.UniversityFields) (*entity.University, error) {
	u, err := s.Repo.Create(ctx, f)
	if err != nil {
		return nil, err
	}
	universitiesCreated.Add(1)
	s.index(ctx, *u)
	return u, nil
}

// Update applies the non-nil fields of patch. A missing id is a no-op
// reporting zero affected rows unless Strict is set.
func (s *UniversityService) Update(ctx context.Context, id int64, patch entity.UniversityFields) (entity.MutationResult, error) {
	n, err := s.Repo.Update(ctx, id, patch)
	if err != nil {
		return entity.MutationResult{}, err
	}
	if n == 0 {
		if s.Strict {
			return entity.MutationResult{}, ErrUniversityNotFound
		}
		return entity.MutationResult{Affected: 0}, nil
	}
	s.reindex(ctx, id)
	return entity.MutationResult{Affected: n}, nil
}

// Remove deletes the university; its ratings go with it.
func (s *UniversityService) Remove(ctx context.Context, id int64) (entity.MutationResult, error) {
	prev, err := s.Get(ctx, id)
	if err != nil {
		return entity.MutationResult{}, err
	}
	n, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return entity.MutationResult{}, err
	}
	if n == 0 {
		if s.Strict {
			return entity.MutationResult{}, ErrUniversityNotFound
		}
		return entity.MutationResult{Affected: 0}, nil
	}

	s.Ranking.Invalidate(ctx)
	if prev != nil && prev.PhotoURL != nil {
		s.removeFile(ctx, *prev.PhotoURL)
	}
	if s.Index != nil {
		if err := s.Index.Delete(ctx, id); err != nil {
			s.warn(err, id, "search index delete failed")
		}
	}
	return entity.MutationResult{Affected: n}, nil
}

// AttachPhoto stores the upload under universities/<millis><ext>, points the
// record at it and removes the file it replaced.
func (s *UniversityService) AttachPhoto(ctx context.Context, id int64, up entity.Upload) (string, error) {
	if up.Body == nil {
		return "", ErrEmptyFile
	}
	prev, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if prev == nil {
		return "", ErrUniversityNotFound
	}

	url, err := s.Store.Save(ctx, storage.Key(universityPhotos, up.Filename, s.Now()), up.ContentType, up.Body)
	if err != nil {
		return "", err
	}
	n, err := s.Repo.Update(ctx, id, entity.UniversityFields{PhotoURL: &url})
	if err != nil || n == 0 {
		s.removeFile(ctx, url)
		if err != nil {
			return "", err
		}
		return "", ErrUniversityNotFound
	}

	if prev.PhotoURL != nil && *prev.PhotoURL != url {
		s.removeFile(ctx, *prev.PhotoURL)
	}
	s.reindex(ctx, id)
	return url, nil
}

// Search matches q against names (and descriptions when the index is available).
func (s *UniversityService) Search(ctx context.Context, q string, size int) ([]entity.University, error) {
	if size <= 0 {
		size = DefaultSearchSize
	}
	if size > MaxSearchSize {
		size = MaxSearchSize
	}
	if s.Index != nil {
		ids, err := s.Index.Search(ctx, q, size)
		if err == nil {
			return s.Repo.GetByIDs(ctx, ids)
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("q", q).Warn("search index query failed, falling back to sql")
		}
	}
	return s.Repo.SearchByName(ctx, q, size)
}

// Reindex rebuilds the search index from the database.
func (s *UniversityService) Reindex(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, nil
	}
	all, err := s.Repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.Index.Reindex(ctx, all); err != nil {
		return 0, err
	}
	return len(all), nil
}

func (s *UniversityService) index(ctx context.Context, u entity.University) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, u); err != nil {
		s.warn(err, u.ID, "search index update failed")
	}
}

func (s *UniversityService) reindex(ctx context.Context, id int64) {
	if s.Index == nil {
		return
	}
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		s.warn(err, id, "reload for search index failed")
		return
	}
	s.index(ctx, *u)
}

func (s *UniversityService) removeFile(ctx context.Context, url string) {
	if err := s.Store.Delete(ctx, url); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("url", url).Warn("remove stored file failed")
	}
}

func (s *UniversityService) warn(err error, id int64, msg string) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("university_id", id).Warn(msg)
	}
}
