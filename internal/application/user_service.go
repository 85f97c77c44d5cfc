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

const profilePhotos = "profile"

// UserService manages profiles and, for admins, roles.
type UserService struct {
	Users  repo.UserRepository
	Store  storage.Store
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewUserService(users repo.UserRepository, store storage.Store, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Store: store, Logger: logger, Now: time.Now}
}

type UpdateProfileInput struct {
	Name  *string
	Email *string
}

func (s *UserService) get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (s *UserService) Profile(ctx context.Context, userID string) (*entity.User, error) {
	return s.get(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		u.Name = in.Name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email != u.Email {
			if other, err := s.Users.GetByEmail(ctx, email); err == nil && other.ID != u.ID {
				return nil, ErrEmailTaken
			} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
				return nil, err
			}
			u.Email = email
		}
	}
	if err := s.save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdatePhoto stores a new avatar under profile/<millis><ext> and removes the previous file.
func (s *UserService) UpdatePhoto(ctx context.Context, userID string, up entity.Upload) (*entity.User, error) {
	if up.Body == nil {
		return nil, ErrEmptyFile
	}
	u, err := s.get(ctx, userID)
	if err != nil {
		return nil, err
	}
	url, err := s.Store.Save(ctx, storage.Key(profilePhotos, up.Filename, s.Now()), up.ContentType, up.Body)
	if err != nil {
		return nil, err
	}
	prev := u.ProfilePhoto
	u.ProfilePhoto = &url
	if err := s.save(ctx, u); err != nil {
		s.removeFile(ctx, url)
		return nil, err
	}
	if prev != nil && *prev != url {
		s.removeFile(ctx, *prev)
	}
	return u, nil
}

func (s *UserService) DeletePhoto(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.ProfilePhoto == nil {
		return u, nil
	}
	prev := *u.ProfilePhoto
	u.ProfilePhoto = nil
	if err := s.save(ctx, u); err != nil {
		return nil, err
	}
	s.removeFile(ctx, prev)
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	return s.Users.List(ctx)
}

func (s *UserService) SetRole(ctx context.Context, userID string, role entity.Role) (*entity.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	u, err := s.get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Role == role {
		return u, nil
	}
	u.Role = role
	if err := s.save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) save(ctx context.Context, u *entity.User) error {
	err := s.Users.Update(ctx, u)
	switch {
	case errors.Is(err, repo.ErrDuplicate):
		return ErrEmailTaken
	case errors.Is(err, repo.ErrNotFound):
		return ErrUserNotFound
	}
	return err
}

func (s *UserService) removeFile(ctx context.Context, url string) {
	if s.Store == nil {
		return
	}
	if err := s.Store.Delete(ctx, url); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("url", url).Warn("remove stored file failed")
	}
}
