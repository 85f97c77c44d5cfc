package handlers

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/application"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/entity"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/helpers"
)

var errBoom = errors.New("boom")

type fakeUniversities struct {
	items    map[int64]*entity.University
	nextID   int64
	created  []entity.UniversityFields
	uploaded []byte
	err      error
}

func newFakeUniversities() *fakeUniversities {
	return &fakeUniversities{items: map[int64]*entity.University{}, nextID: 1}
}

func (f *fakeUniversities) List(context.Context) ([]entity.University, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []entity.University
	for id := int64(1); id < f.nextID; id++ {
		if u, ok := f.items[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUniversities) Get(_ context.Context, id int64) (*entity.University, error) {
	return f.items[id], f.err
}

func (f *fakeUniversities) Create(_ context.Context, in entity.UniversityFields) (*entity.University, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, in)
	u := &entity.University{ID: f.nextID, UniversityFields: in}
	f.items[u.ID] = u
	f.nextID++
	return u, nil
}

func (f *fakeUniversities) Update(_ context.Context, id int64, patch entity.UniversityFields) (entity.MutationResult, error) {
	u, ok := f.items[id]
	if !ok {
		return entity.MutationResult{}, f.err
	}
	u.Merge(patch)
	return entity.MutationResult{Affected: 1}, nil
}

func (f *fakeUniversities) Remove(_ context.Context, id int64) (entity.MutationResult, error) {
	if _, ok := f.items[id]; !ok {
		return entity.MutationResult{}, f.err
	}
	delete(f.items, id)
	return entity.MutationResult{Affected: 1}, nil
}

func (f *fakeUniversities) AttachPhoto(_ context.Context, id int64, up entity.Upload) (string, error) {
	if _, ok := f.items[id]; !ok {
		return "", application.ErrUniversityNotFound
	}
	b, err := io.ReadAll(up.Body)
	if err != nil {
		return "", err
	}
	f.uploaded = b
	return "/uploads/universities/1700000000000.png", nil
}

func (f *fakeUniversities) Search(_ context.Context, q string, _ int) ([]entity.University, error) {
	var out []entity.University
	for _, u := range f.items {
		if u.Name != nil && u.Name.Get(entity.LocaleEN) == q {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeRatings struct {
	submitted []entity.Rating
	averages  map[int64]float64
	ranking   []entity.RankEntry
}

func (f *fakeRatings) Submit(_ context.Context, uniID int64, userID string, score int) (*entity.Rating, error) {
	if uniID == 404 {
		return nil, application.ErrUniversityNotFound
	}
	r := entity.Rating{ID: int64(len(f.submitted) + 1), UniversityID: uniID, UserID: userID, Score: score}
	f.submitted = append(f.submitted, r)
	return &r, nil
}

func (f *fakeRatings) Average(_ context.Context, uniID int64) (entity.AverageRating, error) {
	return entity.AverageRating{UniversityID: uniID, Average: f.averages[uniID]}, nil
}

func (f *fakeRatings) Ranking(context.Context) ([]entity.RankEntry, error) {
	return f.ranking, nil
}

// fakeAuth implements both the handler AuthService and middleware.Authenticator.
type fakeAuth struct {
	users     map[string]*entity.User // by access token
	loggedOut []string
	now       time.Time
}

var (
	testUser  = &entity.User{ID: "11111111-1111-1111-1111-111111111111", Email: "user@example.com", Role: entity.RoleUser}
	testAdmin = &entity.User{ID: "22222222-2222-2222-2222-222222222222", Email: "admin@example.com", Role: entity.RoleAdmin}
)

func newFakeAuth(now time.Time) *fakeAuth {
	return &fakeAuth{users: map[string]*entity.User{"user-token": testUser, "admin-token": testAdmin}, now: now}
}

func (f *fakeAuth) Authenticate(_ context.Context, token string) (*entity.User, *helpers.Claims, error) {
	u, ok := f.users[token]
	if !ok {
		return nil, nil, application.ErrInvalidToken
	}
	c := &helpers.Claims{UserID: u.ID, Role: string(u.Role)}
	c.ID = "jti-" + token
	return u, c, nil
}

func (f *fakeAuth) Register(_ context.Context, in application.RegisterInput, _ application.RequestMeta) (*entity.User, error) {
	if in.Email == testUser.Email {
		return nil, application.ErrEmailTaken
	}
	return &entity.User{ID: "33333333-3333-3333-3333-333333333333", Email: in.Email, Name: in.Name, Role: entity.RoleUser}, nil
}

func (f *fakeAuth) result(u *entity.User) *application.AuthResult {
	return &application.AuthResult{User: u, Tokens: application.TokenPair{
		AccessToken:        "access-" + u.ID,
		AccessTokenExpiry:  f.now.Add(time.Hour),
		RefreshToken:       "refresh-" + u.ID,
		RefreshTokenExpiry: f.now.Add(7 * 24 * time.Hour),
	}}
}

func (f *fakeAuth) Login(_ context.Context, email, password string, _ application.RequestMeta) (*application.AuthResult, error) {
	if email != testUser.Email || password != "password123" {
		return nil, application.ErrInvalidCredentials
	}
	return f.result(testUser), nil
}

func (f *fakeAuth) Refresh(_ context.Context, token string, _ application.RequestMeta) (*application.AuthResult, error) {
	if token != "refresh-"+testUser.ID {
		return nil, application.ErrInvalidRefreshToken
	}
	return f.result(testUser), nil
}

func (f *fakeAuth) Logout(_ context.Context, u *entity.User, claims *helpers.Claims, _ application.RequestMeta) error {
	f.loggedOut = append(f.loggedOut, u.ID+"/"+claims.ID)
	return nil
}

type fakeUsers struct {
	byID map[string]*entity.User
}

func newFakeUsers() *fakeUsers {
	u, a := *testUser, *testAdmin
	return &fakeUsers{byID: map[string]*entity.User{u.ID: &u, a.ID: &a}}
}

func (f *fakeUsers) Profile(_ context.Context, id string) (*entity.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, application.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) UpdateProfile(ctx context.Context, id string, in application.UpdateProfileInput) (*entity.User, error) {
	u, err := f.Profile(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Email != nil && *in.Email == testAdmin.Email && id != testAdmin.ID {
		return nil, application.ErrEmailTaken
	}
	if in.Name != nil {
		u.Name = in.Name
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	return u, nil
}

func (f *fakeUsers) UpdatePhoto(ctx context.Context, id string, up entity.Upload) (*entity.User, error) {
	u, err := f.Profile(ctx, id)
	if err != nil {
		return nil, err
	}
	url := "/uploads/profile/" + up.Filename
	u.ProfilePhoto = &url
	return u, nil
}

func (f *fakeUsers) DeletePhoto(ctx context.Context, id string) (*entity.User, error) {
	u, err := f.Profile(ctx, id)
	if err != nil {
		return nil, err
	}
	u.ProfilePhoto = nil
	return u, nil
}

func (f *fakeUsers) List(context.Context) ([]entity.User, error) {
	return []entity.User{*f.byID[testUser.ID], *f.byID[testAdmin.ID]}, nil
}

func (f *fakeUsers) SetRole(ctx context.Context, id string, role entity.Role) (*entity.User, error) {
	u, err := f.Profile(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Role = role
	return u, nil
}
