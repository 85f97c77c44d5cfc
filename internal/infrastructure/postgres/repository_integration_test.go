//go:build integration

package postgres

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/entity"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/repository"
)

// Run with: TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/infrastructure/postgres/
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	require.NoError(t, RunMigrations(dsn, logger))

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(context.Background(), `TRUNCATE rating, university, users, auth_audit_logs RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return pool
}

func sampleFields(en string) entity.UniversityFields {
	deadline := "2026-07-31"
	return entity.UniversityFields{
		Name:                entity.Text(en, en+"-ru", en+"-tm"),
		Description:         entity.Text("d", "д", "d"),
		ApplicationDeadline: &deadline,
	}
}

func TestUniversityRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewUniversityRepository(testPool(t))

	u, err := repo.Create(ctx, sampleFields("Alpha"))
	require.NoError(t, err)
	assert.Positive(t, u.ID)
	assert.Equal(t, "2026-07-31", *u.ApplicationDeadline)
	assert.Nil(t, u.Specials)
	assert.Nil(t, u.Age)

	age := 18
	n, err := repo.Update(ctx, u.ID, entity.UniversityFields{Age: &age, Specials: entity.Text("s", "с", "s")})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 18, *got.Age)
	assert.Equal(t, "s", got.Specials.Get(entity.LocaleEN))
	assert.Equal(t, "Alpha", got.Name.Get(entity.LocaleEN))

	n, err = repo.Update(ctx, u.ID, entity.UniversityFields{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = repo.Update(ctx, 9999, entity.UniversityFields{Age: &age})
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	n, err = repo.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	_, err = repo.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	n, err = repo.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestUniversityRepository_SearchAndGetByIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewUniversityRepository(testPool(t))

	a, err := repo.Create(ctx, sampleFields("Oguz Han"))
	require.NoError(t, err)
	b, err := repo.Create(ctx, sampleFields("Magtymguly"))
	require.NoError(t, err)

	found, err := repo.SearchByName(ctx, "oguz", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, a.ID, found[0].ID)

	found, err = repo.SearchByName(ctx, "magtymguly-ru", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, err = repo.SearchByName(ctx, "%", 10)
	require.NoError(t, err)
	assert.Empty(t, found)

	ordered, err := repo.GetByIDs(ctx, []int64{b.ID, 777, a.ID})
	require.NoError(t, err)
	require.Len(t, ordered, 2)
	assert.Equal(t, b.ID, ordered[0].ID)
	assert.Equal(t, a.ID, ordered[1].ID)
}

func TestRatingRepository_AggregatesAndCascade(t *testing.T) {
	ctx := context.Background()
	pool := testPool(t)
	unis := NewUniversityRepository(pool)
	ratings := NewRatingRepository(pool)

	a, _ := unis.Create(ctx, sampleFields("A"))
	b, _ := unis.Create(ctx, sampleFields("B"))
	c, _ := unis.Create(ctx, sampleFields("C"))

	for _, s := range []int{4, 5} {
		require.NoError(t, ratings.Create(ctx, &entity.Rating{UniversityID: a.ID, UserID: "u", Score: s}))
	}
	for _, s := range []int{3, 3} {
		require.NoError(t, ratings.Create(ctx, &entity.Rating{UniversityID: b.ID, UserID: "u", Score: s}))
	}

	avg, err := ratings.Average(ctx, a.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, avg, 1e-9)
	avg, err = ratings.Average(ctx, c.ID)
	require.NoError(t, err)
	assert.Zero(t, avg)

	rank, err := ratings.Ranking(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.RankEntry{{UniversityID: a.ID, Avg: 4.5}, {UniversityID: b.ID, Avg: 3}}, rank)

	err = ratings.Create(ctx, &entity.Rating{UniversityID: 424242, UserID: "u", Score: 3})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = unis.Delete(ctx, a.ID)
	require.NoError(t, err)
	var left int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM rating WHERE university_id = $1`, a.ID).Scan(&left))
	assert.Zero(t, left)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	pool := testPool(t)
	users := NewUserRepository(pool)

	u := &entity.User{Email: "a@b.io", Password: "hash"}
	require.NoError(t, users.Create(ctx, u))
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, entity.RoleUser, u.Role)

	assert.ErrorIs(t, users.Create(ctx, &entity.User{Email: "a@b.io", Password: "x"}), repository.ErrDuplicate)

	hash := "deadbeef"
	exp := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	require.NoError(t, users.SetRefreshHash(ctx, u.ID, &hash, &exp))
	got, err := users.GetByRefreshHash(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.True(t, exp.Equal(*got.RefreshExpiresAt))

	require.NoError(t, users.SetRefreshHash(ctx, u.ID, nil, nil))
	_, err = users.GetByRefreshHash(ctx, hash)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = users.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, NewAuditRepository(pool).Insert(ctx, entity.AuditLog{UserID: u.ID, Email: u.Email, Action: "login_success", IP: "127.0.0.1"}))
	require.NoError(t, NewAuditRepository(pool).Insert(ctx, entity.AuditLog{Email: "ghost@b.io", Action: "login_failed", Metadata: map[string]any{"reason": "unknown email"}}))
}
