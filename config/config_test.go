package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_EXPIRES_IN", "")
	t.Setenv("STRICT_MUTATIONS", "")
	t.Setenv("TRUSTED_PROXIES", "")

	cfg := Load()
	assert.Equal(t, time.Hour, cfg.AccessTTL)
	assert.False(t, cfg.StrictMutations)
	assert.Equal(t, "local", cfg.StorageDriver)
	assert.Equal(t, "/uploads", cfg.UploadURLPrefix)
	assert.Equal(t, 5*time.Minute, cfg.RankingCacheTTL)
	assert.Empty(t, cfg.ESAddrs())
	assert.Nil(t, cfg.TrustedProxyList())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_EXPIRES_IN", "15m")
	t.Setenv("STRICT_MUTATIONS", "true")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("ELASTICSEARCH_ADDRS", " http://es1:9200, ,http://es2:9200 ")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.tm,https://b.tm")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 172.16.0.1")

	cfg := Load()
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.True(t, cfg.StrictMutations)
	assert.EqualValues(t, 25, cfg.DBMaxConns)
	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.ESAddrs())
	assert.Equal(t, []string{"https://a.tm", "https://b.tm"}, cfg.CORSOrigins())
	assert.Equal(t, []string{"10.0.0.0/8", "172.16.0.1"}, cfg.TrustedProxyList())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_EXPIRES_IN", "soon")
	t.Setenv("STRICT_MUTATIONS", "maybe")
	t.Setenv("REDIS_DB", "x")

	cfg := Load()
	assert.Equal(t, time.Hour, cfg.AccessTTL)
	assert.False(t, cfg.StrictMutations)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5432", DBName: "universe", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/universe?sslmode=disable", cfg.PostgresDSN())
}
