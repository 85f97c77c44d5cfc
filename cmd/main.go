package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/config"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/application"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/container"
	pginfra "github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/infrastructure/postgres"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/infrastructure/search"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/interface/middleware"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/router"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/scheduler"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/helpers"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/i18n"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/storage"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Initialize Postgres pool
	pool, err := pginfra.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), logger); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	// Redis (optional)
	if cfg.RedisAddr != "" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		if err := rdb.Ping(ctx).Err(); err != nil {
			helpers.LogError(logger, "redis unreachable; cache and rate limits degrade gracefully", err, logrus.Fields{"addr": cfg.RedisAddr})
		}
		container.SetRedis(rdb)
	}

	// Upload storage
	store, err := storage.New(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}
	if g, ok := store.(*storage.GCS); ok {
		defer func() { _ = g.Close() }()
	}

	// Elasticsearch (optional)
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(helpers.ESOptions{
			Addrs:      addrs,
			Username:   cfg.ElasticsearchUser,
			Password:   cfg.ElasticsearchPass,
			MaxRetries: cfg.ESMaxRetries,
			Compress:   cfg.ESCompress,
		})
		if err != nil {
			logger.Fatalf("failed to init elasticsearch: %v", err)
		}
		idx := search.NewUniversityIndex(es, cfg.ESUniversitiesIndex)
		if err := idx.EnsureIndex(ctx); err != nil {
			helpers.LogError(logger, "elasticsearch index init failed; search falls back to sql", err, nil)
		} else {
			container.SetUniversityIndex(idx)
		}
	}

	// RabbitMQ publisher for the email worker
	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			helpers.LogError(logger, "rabbitmq unavailable; emails are not queued", err, nil)
		} else {
			defer pub.Close()
			container.SetRabbitPub(pub)
		}
	}

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(pool)
	container.SetStore(store)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTSecret, cfg.AccessTTL))
	container.SetTranslator(i18n.MustNew())

	services := router.BuildServices()

	boot := application.NewAdminBootstrapper(services.Auth.Users, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName, logger)
	if _, err := boot.Run(ctx); err != nil {
		logger.Fatalf("admin bootstrap failed: %v", err)
	}

	if cfg.CronEnabled {
		var reindexer scheduler.Reindexer
		if container.GetUniversityIndex() != nil {
			reindexer = services.Universities
		}
		jobs := scheduler.New(logger, reindexer, services.Ratings, cfg.ReindexSchedule, cfg.RankingWarmSchedule)
		if err := jobs.Start(); err != nil {
			logger.Fatalf("failed to start cron jobs: %v", err)
		}
		defer jobs.Stop()
	}

	// Gin engine and global middleware
	r := gin.New()
	proxies, err := middleware.ParseTrustedProxies(cfg.TrustedProxyList())
	if err != nil {
		logger.Fatalf("invalid TRUSTED_PROXIES: %v", err)
	}
	if err := r.SetTrustedProxies(cfg.TrustedProxyList()); err != nil {
		logger.Fatalf("invalid TRUSTED_PROXIES: %v", err)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(), middleware.RealIP(proxies), middleware.Locale(container.GetTranslator()))
	// CORS
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Language", middleware.RequestIDHeader, "X-RateLimit-Remaining", "X-Total-Count"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(corsCfg))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{cfg.UploadURLPrefix})))
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}
	if local, ok := store.(*storage.Local); ok {
		r.Static(strings.TrimRight(local.URLPrefix(), "/"), local.Dir())
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	router.InitModules(reg, services)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		helpers.LogInfo(logger, "server starting", logrus.Fields{"port": cfg.Port, "storage": cfg.StorageDriver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
		return
	}
	logger.Info("server exited properly")
}
