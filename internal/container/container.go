package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/config"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/infrastructure/search"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/helpers"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/i18n"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/storage"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	fileStore   storage.Store
	uniIndex    *search.UniversityIndex
	translator  *i18n.Translator

	jwtManager *helpers.JWTManager
	rabbitPub  *helpers.RabbitPublisher
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetStore(s storage.Store)     { fileStore = s }
func GetStore() storage.Store      { return fileStore }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager  { return jwtManager }

func SetUniversityIndex(x *search.UniversityIndex) { uniIndex = x }
func GetUniversityIndex() *search.UniversityIndex  { return uniIndex }
func SetTranslator(t *i18n.Translator)             { translator = t }
func GetTranslator() *i18n.Translator              { return translator }
func SetRabbitPub(p *helpers.RabbitPublisher)      { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher       { return rabbitPub }

// Cmdable returns the Redis client as an interface, nil when Redis is disabled.
func Cmdable() redis.Cmdable {
	if redisClient == nil {
		return nil
	}
	return redisClient
}
