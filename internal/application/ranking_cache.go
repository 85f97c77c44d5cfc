package application

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/entity"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/helpers"
)

const (
	rankingCacheKey = "ranking:v1"
	rankingGenKey   = "ranking:gen"
)

// RankingCache holds the last computed leaderboard in Redis.
// A nil cache, or one without a client, never hits.
type RankingCache struct {
	Redis  redis.Cmdable
	TTL    time.Duration
	Logger *logrus.Logger
}

func NewRankingCache(rdb redis.Cmdable, ttl time.Duration, logger *logrus.Logger) *RankingCache {
	return &RankingCache{Redis: rdb, TTL: ttl, Logger: logger}
}

func (c *RankingCache) enabled() bool {
	return c != nil && c.Redis != nil && c.TTL > 0
}

func (c *RankingCache) Get(ctx context.Context) ([]entity.RankEntry, bool) {
	if !c.enabled() {
		return nil, false
	}
	var out []entity.RankEntry
	ok, err := helpers.RedisGetJSON(ctx, c.Redis, rankingCacheKey, &out)
	if err != nil {
		c.warn(err, "ranking cache read failed")
		return nil, false
	}
	return out, ok
}

// Generation reports the invalidation counter to pass to Set. ok is false
// when the cache is off or unreachable; the caller then skips Set.
func (c *RankingCache) Generation(ctx context.Context) (gen string, ok bool) {
	if !c.enabled() {
		return "", false
	}
	gen, err := helpers.RedisGeneration(ctx, c.Redis, rankingGenKey)
	if err != nil {
		c.warn(err, "ranking generation read failed")
		return "", false
	}
	return gen, true
}

// Set stores entries computed after reading gen. If a rating invalidated
// the cache in between, nothing is written.
func (c *RankingCache) Set(ctx context.Context, gen string, entries []entity.RankEntry) bool {
	if !c.enabled() {
		return false
	}
	stored, err := helpers.RedisSetJSONIfGeneration(ctx, c.Redis, rankingCacheKey, rankingGenKey, gen, entries, c.TTL)
	if err != nil {
		c.warn(err, "ranking cache write failed")
		return false
	}
	return stored
}

// Invalidate bumps the generation and drops the cached leaderboard.
func (c *RankingCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	if err := helpers.RedisInvalidate(ctx, c.Redis, rankingCacheKey, rankingGenKey); err != nil {
		c.warn(err, "ranking cache invalidate failed")
	}
}

func (c *RankingCache) warn(err error, msg string) {
	if c.Logger != nil {
		c.Logger.WithError(err).WithField("key", rankingCacheKey).Warn(msg)
	}
}
