package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/entity"
	repo "github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/repository"
)

// ── In-memory store shared by the university and rating fakes (cascade delete) ──

type memDB struct {
	mu           sync.Mutex
	universities map[int64]entity.University
	ratings      []entity.Rating
	nextUni      int64
	nextRating   int64
}

func newMemDB() *memDB {
	return &memDB{universities: map[int64]entity.University{}}
}

type mockUniversityRepo struct{ db *memDB }

func (m *mockUniversityRepo) List(_ context.Context) ([]entity.University, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := []entity.University{}
	for _, u := range m.db.universities {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockUniversityRepo) GetByID(_ context.Context, id int64) (*entity.University, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	u, ok := m.db.universities[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

func (m *mockUniversityRepo) GetByIDs(ctx context.Context, ids []int64) ([]entity.University, error) {
	out := []entity.University{}
	for _, id := range ids {
		if u, err := m.GetByID(ctx, id); err == nil {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *mockUniversityRepo) SearchByName(ctx context.Context, q string, limit int) ([]entity.University, error) {
	all, _ := m.List(ctx)
	out := []entity.University{}
	for _, u := range all {
		if u.Name == nil {
			continue
		}
		for _, v := range u.Name.Values() {
			if strings.Contains(strings.ToLower(v), strings.ToLower(q)) {
				out = append(out, u)
				break
			}
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockUniversityRepo) Create(_ context.Context, f entity.UniversityFields) (*entity.University, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.nextUni++
	now := time.Now()
	u := entity.University{ID: m.db.nextUni, UniversityFields: f, CreatedAt: now, UpdatedAt: now}
	m.db.universities[u.ID] = u
	return &u, nil
}

func (m *mockUniversityRepo) Update(_ context.Context, id int64, patch entity.UniversityFields) (int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	u, ok := m.db.universities[id]
	if !ok {
		return 0, nil
	}
	u.Merge(patch)
	u.UpdatedAt = time.Now()
	m.db.universities[id] = u
	return 1, nil
}

func (m *mockUniversityRepo) Delete(_ context.Context, id int64) (int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.universities[id]; !ok {
		return 0, nil
	}
	delete(m.db.universities, id)
	kept := m.db.ratings[:0]
	for _, r := range m.db.ratings {
		if r.UniversityID != id {
			kept = append(kept, r)
		}
	}
	m.db.ratings = kept
	return 1, nil
}

type mockRatingRepo struct {
	db      *memDB
	queries int
}

func (m *mockRatingRepo) Create(_ context.Context, r *entity.Rating) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.universities[r.UniversityID]; !ok {
		return repo.ErrNotFound
	}
	m.db.nextRating++
	r.ID = m.db.nextRating
	r.CreatedAt = time.Now()
	m.db.ratings = append(m.db.ratings, *r)
	return nil
}

func (m *mockRatingRepo) Average(_ context.Context, universityID int64) (float64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	sum, n := 0, 0
	for _, r := range m.db.ratings {
		if r.UniversityID == universityID {
			sum += r.Score
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

func (m *mockRatingRepo) Ranking(_ context.Context) ([]entity.RankEntry, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.queries++
	sums := map[int64][2]int{}
	for _, r := range m.db.ratings {
		s := sums[r.UniversityID]
		sums[r.UniversityID] = [2]int{s[0] + r.Score, s[1] + 1}
	}
	out := []entity.RankEntry{}
	for id, s := range sums {
		out = append(out, entity.RankEntry{UniversityID: id, Avg: float64(s[0]) / float64(s[1])})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Avg != out[j].Avg {
			return out[i].Avg > out[j].Avg
		}
		return out[i].UniversityID < out[j].UniversityID
	})
	return out, nil
}

func (m *mockRatingRepo) count() int {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return len(m.db.ratings)
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	mu    sync.Mutex
	users map[string]entity.User
	next  int
	// failUpdate makes Update return the error once.
	failUpdate error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[string]entity.User{}}
}

func (m *mockUserRepo) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.users {
		if x.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	m.next++
	u.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", m.next)
	if u.Role == "" {
		u.Role = entity.RoleUser
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.users[u.ID] = *u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *mockUserRepo) GetByRefreshHash(_ context.Context, hash string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.HashedRefreshToken != nil && *u.HashedRefreshToken == hash {
			return &u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.User{}
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockUserRepo) Update(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failUpdate; err != nil {
		m.failUpdate = nil
		return err
	}
	if _, ok := m.users[u.ID]; !ok {
		return repo.ErrNotFound
	}
	for _, x := range m.users {
		if x.ID != u.ID && x.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	m.users[u.ID] = *u
	return nil
}

func (m *mockUserRepo) SetRefreshHash(_ context.Context, id string, hash *string, expiresAt *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.HashedRefreshToken = hash
	u.RefreshExpiresAt = expiresAt
	m.users[id] = u
	return nil
}

// ── Mock AuditRepository ──

type mockAuditRepo struct {
	mu   sync.Mutex
	logs []entity.AuditLog
}

func (m *mockAuditRepo) Insert(_ context.Context, l entity.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, l)
	return nil
}

func (m *mockAuditRepo) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.logs))
	for _, l := range m.logs {
		out = append(out, l.Action)
	}
	return out
}

// ── Mock storage.Store ──

type mockStore struct {
	mu    sync.Mutex
	files map[string][]byte
	fail  error
}

func newMockStore() *mockStore {
	return &mockStore{files: map[string][]byte{}}
}

func (m *mockStore) Save(_ context.Context, key, _ string, r io.Reader) (string, error) {
	if m.fail != nil {
		return "", m.fail
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	url := "/uploads/" + key
	m.files[url] = b
	return url, nil
}

func (m *mockStore) Delete(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, url)
	return nil
}

func (m *mockStore) has(url string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[url]
	return ok
}

func (m *mockStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

// ── Mock UniversityIndexer ──

type mockIndexer struct {
	docs      map[int64]entity.University
	searchIDs []int64
	searchErr error
	reindexed int
}

func newMockIndexer() *mockIndexer {
	return &mockIndexer{docs: map[int64]entity.University{}}
}

func (m *mockIndexer) Index(_ context.Context, u entity.University) error {
	m.docs[u.ID] = u
	return nil
}

func (m *mockIndexer) Delete(_ context.Context, id int64) error {
	delete(m.docs, id)
	return nil
}

func (m *mockIndexer) Search(_ context.Context, _ string, _ int) ([]int64, error) {
	return m.searchIDs, m.searchErr
}

func (m *mockIndexer) Reindex(_ context.Context, all []entity.University) error {
	m.reindexed = len(all)
	for _, u := range all {
		m.docs[u.ID] = u
	}
	return nil
}

// ── Mock JobPublisher ──

type mockPublisher struct {
	jobs []any
	err  error
}

func (m *mockPublisher) PublishJSON(_ context.Context, body any) error {
	if m.err != nil {
		return m.err
	}
	m.jobs = append(m.jobs, body)
	return nil
}

func upload(name, body string) entity.Upload {
	return entity.Upload{Filename: name, ContentType: "image/png", Size: int64(len(body)), Body: bytes.NewReader([]byte(body))}
}

var errBoom = errors.New("boom")
