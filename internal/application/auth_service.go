package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/entity"
	repo "github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/repository"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/helpers"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/mailer"
	mailtpl "github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/mailer/templates"
)

// Audit actions.
const (
	AuditRegister     = "register"
	AuditLoginSuccess = "login_success"
	AuditLoginFailed  = "login_failed"
	AuditRefresh      = "refresh"
	AuditLogout       = "logout"
)

// AuthService verifies credentials and issues tokens.
type AuthService struct {
	Users      repo.UserRepository
	Audit      repo.AuditRepository // optional
	JWT        *helpers.JWTManager
	Redis      redis.Cmdable // optional; enables logout revocation
	Mail       JobPublisher  // optional
	RefreshTTL time.Duration
	AppName    string
	Logger     *logrus.Logger
	Now        func() time.Time
}

func NewAuthService(users repo.UserRepository, audit repo.AuditRepository, jwt *helpers.JWTManager, rdb redis.Cmdable, mail JobPublisher, refreshTTL time.Duration, appName string, logger *logrus.Logger) *AuthService {
	return &AuthService{
		Users:      users,
		Audit:      audit,
		JWT:        jwt,
		Redis:      rdb,
		Mail:       mail,
		RefreshTTL: refreshTTL,
		AppName:    appName,
		Logger:     logger,
		Now:        time.Now,
	}
}

// RequestMeta describes the client of an auth call.
type RequestMeta struct {
	IP        string
	UserAgent string
	Lang      string
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type AuthResult struct {
	User   *entity.User
	Tokens TokenPair
}

type RegisterInput struct {
	Email    string
	Password string
	Name     *string
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput, meta RequestMeta) (*entity.User, error) {
	email := normalizeEmail(in.Email)
	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Email: email, Password: hash, Name: in.Name, Role: entity.RoleUser}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.audit(ctx, u.ID, u.Email, AuditRegister, meta, nil)
	s.sendWelcome(ctx, u, meta.Lang)
	return u, nil
}

// Login checks the password and issues a token pair. A failed attempt
// leaves the stored refresh hash untouched.
func (s *AuthService) Login(ctx context.Context, email, password string, meta RequestMeta) (*AuthResult, error) {
	email = normalizeEmail(email)
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if u == nil || !helpers.CompareHashAndPassword(u.Password, password) {
		loginsFailed.Add(1)
		uid := ""
		if u != nil {
			uid = u.ID
		}
		s.audit(ctx, uid, email, AuditLoginFailed, meta, nil)
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issue(ctx, u)
	if err != nil {
		return nil, err
	}
	s.audit(ctx, u.ID, u.Email, AuditLoginSuccess, meta, nil)
	return &AuthResult{User: u, Tokens: pair}, nil
}

// Refresh rotates both tokens for the owner of refreshToken.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string, meta RequestMeta) (*AuthResult, error) {
	if refreshToken == "" {
		return nil, ErrInvalidRefreshToken
	}
	u, err := s.Users.GetByRefreshHash(ctx, helpers.HashToken(refreshToken))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidRefreshToken
	}
	if err != nil {
		return nil, err
	}
	if u.RefreshExpiresAt != nil && !s.Now().Before(*u.RefreshExpiresAt) {
		return nil, ErrInvalidRefreshToken
	}

	pair, err := s.issue(ctx, u)
	if err != nil {
		return nil, err
	}
	s.audit(ctx, u.ID, u.Email, AuditRefresh, meta, nil)
	return &AuthResult{User: u, Tokens: pair}, nil
}

// Logout drops the refresh token and revokes the access token until it expires.
func (s *AuthService) Logout(ctx context.Context, u *entity.User, claims *helpers.Claims, meta RequestMeta) error {
	if err := s.Users.SetRefreshHash(ctx, u.ID, nil, nil); err != nil && !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	if s.Redis != nil && claims != nil && claims.ExpiresAt != nil {
		if err := helpers.BlacklistToken(ctx, s.Redis, claims.ID, claims.ExpiresAt.Time); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("token blacklist failed")
		}
	}
	s.audit(ctx, u.ID, u.Email, AuditLogout, meta, nil)
	return nil
}

// Authenticate resolves an access token to a live user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*entity.User, *helpers.Claims, error) {
	claims, err := s.JWT.ParseAccessToken(token)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}
	if s.Redis != nil {
		revoked, err := helpers.IsTokenBlacklisted(ctx, s.Redis, claims.ID)
		if err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("token blacklist lookup failed")
		}
		if revoked {
			return nil, nil, ErrInvalidToken
		}
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil, ErrInvalidToken
	}
	if err != nil {
		return nil, nil, err
	}
	return u, claims, nil
}

func (s *AuthService) issue(ctx context.Context, u *entity.User) (TokenPair, error) {
	access, claims, err := s.JWT.GenerateAccessToken(u.ID, string(u.Role))
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return TokenPair{}, err
	}
	refresh, err := helpers.NewOpaqueToken()
	if err != nil {
		return TokenPair{}, err
	}
	rexp := s.Now().Add(s.RefreshTTL)
	hash := helpers.HashToken(refresh)
	if err := s.Users.SetRefreshHash(ctx, u.ID, &hash, &rexp); err != nil {
		return TokenPair{}, err
	}
	u.HashedRefreshToken = &hash
	u.RefreshExpiresAt = &rexp
	return TokenPair{
		AccessToken:        access,
		AccessTokenExpiry:  claims.ExpiresAt.Time,
		RefreshToken:       refresh,
		RefreshTokenExpiry: rexp,
	}, nil
}

func (s *AuthService) audit(ctx context.Context, userID, email, action string, meta RequestMeta, md map[string]any) {
	if s.Audit == nil {
		return
	}
	entry := entity.AuditLog{
		UserID:    userID,
		Email:     email,
		Action:    action,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		Metadata:  md,
		CreatedAt: s.Now(),
	}
	if err := s.Audit.Insert(ctx, entry); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("action", action).Warn("audit log insert failed")
	}
}

func (s *AuthService) sendWelcome(ctx context.Context, u *entity.User, lang string) {
	if s.Mail == nil {
		return
	}
	name := ""
	if u.Name != nil {
		name = *u.Name
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Lang:     lang,
		Data:     map[string]any{"Name": name, "Email": u.Email, "AppName": s.AppName},
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("publish welcome email failed")
	}
}
