package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/entity"
)

const jobTimeout = 2 * time.Minute

type Reindexer interface {
	Reindex(ctx context.Context) (int, error)
}

type RankingWarmer interface {
	WarmRanking(ctx context.Context) ([]entity.RankEntry, error)
}

// Manager runs the periodic maintenance jobs: search reindex and ranking cache warm-up.
type Manager struct {
	cron        *cron.Cron
	logger      *logrus.Logger
	reindexer   Reindexer
	warmer      RankingWarmer
	reindexSpec string
	warmSpec    string
}

// New creates a manager with seconds precision. An empty schedule disables that job.
func New(logger *logrus.Logger, reindexer Reindexer, warmer RankingWarmer, reindexSpec, warmSpec string) *Manager {
	c := cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	return &Manager{
		cron:        c,
		logger:      logger,
		reindexer:   reindexer,
		warmer:      warmer,
		reindexSpec: reindexSpec,
		warmSpec:    warmSpec,
	}
}

// Start registers the jobs and starts the scheduler.
func (m *Manager) Start() error {
	if m.reindexer != nil && m.reindexSpec != "" {
		if _, err := m.cron.AddFunc(m.reindexSpec, m.job("search_reindex", m.RunReindex)); err != nil {
			return err
		}
	}
	if m.warmer != nil && m.warmSpec != "" {
		if _, err := m.cron.AddFunc(m.warmSpec, m.job("ranking_warm", m.RunWarmRanking)); err != nil {
			return err
		}
	}
	m.cron.Start()
	m.logger.WithField("jobs", len(m.cron.Entries())).Info("cron jobs started")
	return nil
}

// Stop waits for running jobs to finish.
func (m *Manager) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
	m.logger.Info("cron jobs stopped")
}

func (m *Manager) job(name string, run func(context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		start := time.Now()
		entry := m.logger.WithField("job", name)
		if err := run(ctx); err != nil {
			entry.WithError(err).Error("cron job failed")
			return
		}
		entry.WithField("took", time.Since(start).String()).Debug("cron job done")
	}
}

// RunReindex rebuilds the university search index.
func (m *Manager) RunReindex(ctx context.Context) error {
	n, err := m.reindexer.Reindex(ctx)
	if err != nil {
		return err
	}
	m.logger.WithField("documents", n).Info("search index rebuilt")
	return nil
}

// RunWarmRanking recomputes and caches the leaderboard.
func (m *Manager) RunWarmRanking(ctx context.Context) error {
	entries, err := m.warmer.WarmRanking(ctx)
	if err != nil {
		return err
	}
	m.logger.WithField("entries", len(entries)).Debug("ranking cache warmed")
	return nil
}
