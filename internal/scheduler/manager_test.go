package scheduler

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/entity"
)

type fakeReindexer struct {
	calls int
	err   error
}

func (f *fakeReindexer) Reindex(context.Context) (int, error) {
	f.calls++
	return 3, f.err
}

type fakeWarmer struct{ calls int }

func (f *fakeWarmer) WarmRanking(context.Context) ([]entity.RankEntry, error) {
	f.calls++
	return []entity.RankEntry{{UniversityID: 1, Avg: 5}}, nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestManager_RegistersJobs(t *testing.T) {
	m := New(quietLogger(), &fakeReindexer{}, &fakeWarmer{}, "0 0 */6 * * *", "0 */5 * * * *")
	require.NoError(t, m.Start())
	defer m.Stop()
	assert.Len(t, m.cron.Entries(), 2)
}

func TestManager_EmptySpecDisablesJob(t *testing.T) {
	m := New(quietLogger(), &fakeReindexer{}, &fakeWarmer{}, "", "0 */5 * * * *")
	require.NoError(t, m.Start())
	defer m.Stop()
	assert.Len(t, m.cron.Entries(), 1)
}

func TestManager_InvalidSpec(t *testing.T) {
	m := New(quietLogger(), &fakeReindexer{}, nil, "every tuesday", "")
	assert.Error(t, m.Start())
}

func TestManager_RunJobs(t *testing.T) {
	r, w := &fakeReindexer{}, &fakeWarmer{}
	m := New(quietLogger(), r, w, "", "")

	require.NoError(t, m.RunReindex(context.Background()))
	require.NoError(t, m.RunWarmRanking(context.Background()))
	assert.Equal(t, 1, r.calls)
	assert.Equal(t, 1, w.calls)

	r.err = errors.New("es down")
	assert.Error(t, m.RunReindex(context.Background()))

	// the cron wrapper swallows the error after logging it
	m.job("search_reindex", m.RunReindex)()
	assert.Equal(t, 3, r.calls)
}
