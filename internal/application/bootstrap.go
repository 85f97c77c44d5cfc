package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/entity"
	repo "github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/repository"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/helpers"
)

// AdminBootstrapper makes sure the designated admin account exists.
// Running it again is a no-op.
type AdminBootstrapper struct {
	Users    repo.UserRepository
	Email    string
	Password string
	Name     string
	Logger   *logrus.Logger
}

func NewAdminBootstrapper(users repo.UserRepository, email, password, name string, logger *logrus.Logger) *AdminBootstrapper {
	return &AdminBootstrapper{Users: users, Email: email, Password: password, Name: name, Logger: logger}
}

// Run reports whether the account had to be created.
func (b *AdminBootstrapper) Run(ctx context.Context) (bool, error) {
	email := normalizeEmail(b.Email)
	if email == "" {
		return false, nil
	}
	_, err := b.Users.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return false, err
	}

	hash, err := helpers.HashPassword(b.Password)
	if err != nil {
		return false, err
	}
	u := &entity.User{Email: email, Password: hash, Role: entity.RoleAdmin}
	if b.Name != "" {
		name := b.Name
		u.Name = &name
	}
	if err := b.Users.Create(ctx, u); err != nil {
		// another instance won the race
		if errors.Is(err, repo.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}
	if b.Logger != nil {
		b.Logger.WithField("email", email).Info("admin account created")
	}
	return true, nil
}
