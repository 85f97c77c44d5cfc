package router

import (
	"context"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/application"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/container"
	pginfra "github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/infrastructure/postgres"
	handlers "github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/interface/http"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/router/modules"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/helpers"
)

// Services are the application services shared by HTTP modules and scheduled jobs.
type Services struct {
	Universities *application.UniversityService
	Ratings      *application.RatingService
	Auth         *application.AuthService
	Users        *application.UserService
}

// BuildServices constructs every service from the container singletons.
// Optional infrastructure (Redis, Elasticsearch, RabbitMQ) left unset in the container is skipped.
func BuildServices() *Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	universities := pginfra.NewUniversityRepository(pool)
	ratings := pginfra.NewRatingRepository(pool)
	users := pginfra.NewUserRepository(pool)
	audit := pginfra.NewAuditRepository(pool)

	var index application.UniversityIndexer
	if x := container.GetUniversityIndex(); x != nil {
		index = x
	}
	var mail application.JobPublisher
	if p := container.GetRabbitPub(); p != nil && cfg.MailSendEnabled {
		mail = p
	}

	ranking := application.NewRankingCache(container.Cmdable(), cfg.RankingCacheTTL, logger)

	return &Services{
		Universities: application.NewUniversityService(universities, index, container.GetStore(), ranking, logger, cfg.StrictMutations),
		Ratings:      application.NewRatingService(ratings, universities, ranking, logger),
		Auth:         application.NewAuthService(users, audit, container.GetJWT(), container.Cmdable(), mail, cfg.RefreshTTL, cfg.AppName, logger),
		Users:        application.NewUserService(users, container.GetStore(), logger),
	}
}

func healthChecks() map[string]handlers.Pinger {
	checks := map[string]handlers.Pinger{}
	if pool := container.GetPGPool(); pool != nil {
		checks["postgres"] = handlers.PingFunc(pool.Ping)
	}
	if rdb := container.GetRedis(); rdb != nil {
		checks["redis"] = handlers.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}
	return checks
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry, svc *Services) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(healthChecks())))
	r.Add(modules.NewAuthModule(
		handlers.NewAuthHandler(svc.Auth, helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure), logger),
		svc.Auth,
	))
	r.Add(modules.NewUniversityModule(handlers.NewUniversityHandler(svc.Universities, cfg.MaxUploadBytes, logger), svc.Auth))
	r.Add(modules.NewRatingModule(handlers.NewRatingHandler(svc.Ratings, logger), svc.Auth))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Users, cfg.MaxUploadBytes, logger), svc.Auth))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
