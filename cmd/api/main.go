// @title                       Job Board API
// @version                     1.0
// @description                 Job postings, external feed ingestion, saved jobs, companies and applications.
// @BasePath                    /api/v1
// @securityDefinitions.apikey  CookieAuth
// @in                          cookie
// @name                        token
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/jobportal/jobboard-api/docs"
	"github.com/jobportal/jobboard-api/internal/api"
	"github.com/jobportal/jobboard-api/internal/api/handler"
	"github.com/jobportal/jobboard-api/internal/api/metrics"
	"github.com/jobportal/jobboard-api/internal/core/service"
	"github.com/jobportal/jobboard-api/internal/infrastructure/config"
	mongodb "github.com/jobportal/jobboard-api/internal/infrastructure/db/mongo"
	redisdb "github.com/jobportal/jobboard-api/internal/infrastructure/db/redis"
	"github.com/jobportal/jobboard-api/internal/infrastructure/http/handlers"
	"github.com/jobportal/jobboard-api/internal/infrastructure/jobfeed"
	"github.com/jobportal/jobboard-api/internal/infrastructure/scheduler"
	"github.com/jobportal/jobboard-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger level comes from config, so fall back to a bare one.
		l := zerolog.New(os.Stderr).With().Timestamp().Logger()
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "jobboard-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	media, err := mongodb.NewMediaStore(db, cfg.MediaBucket, "/api/v1/media/")
	if err != nil {
		return err
	}

	// --- Dependencies ---
	jobRepo := mongodb.NewJobRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	companyRepo := mongodb.NewCompanyRepository(db)
	applicationRepo := mongodb.NewApplicationRepository(db)

	feed := jobfeed.NewClient(jobfeed.Config{
		BaseURL:        cfg.JobFeed.BaseURL,
		Path:           cfg.JobFeed.Path,
		Host:           cfg.JobFeed.Host,
		APIKey:         cfg.JobFeed.APIKey,
		TitleFilter:    cfg.JobFeed.TitleFilter,
		LocationFilter: cfg.JobFeed.LocationFilter,
		Timeout:        cfg.JobFeed.Timeout,
	}, logger.Component("jobfeed"))

	ingestService := service.NewIngestService(feed, jobRepo, redisdb.NewIngestLock(rdb, cfg.JobFeed.LockTTL), logger.Component("ingest"))

	e := api.NewRouter(api.Dependencies{
		Jobs:         service.NewJobService(jobRepo, userRepo, logger.Component("jobs")),
		SavedJobs:    service.NewSavedJobService(userRepo, jobRepo, logger.Component("saved_jobs")),
		Ingest:       ingestService,
		Auth:         service.NewAuthService(userRepo, media, cfg.JWTSecret, cfg.TokenTTL, logger.Component("auth")),
		Users:        service.NewUserService(userRepo, media, logger.Component("users")),
		Companies:    service.NewCompanyService(companyRepo, media, logger.Component("companies")),
		Applications: service.NewApplicationService(applicationRepo, jobRepo, logger.Component("applications")),
		Media:        media,
		Limiter:      redisdb.NewRateLimiter(rdb),
		RateLimit:    cfg.RateLimit.Requests,
		RateWindow:   cfg.RateLimit.Window,
		Readiness: map[string]handlers.Check{
			"mongodb": handlers.MongoCheck(db),
			"redis":   handlers.RedisCheck(rdb),
		},
		JWTSecret:      cfg.JWTSecret,
		Cookie:         handler.CookieConfig{Secure: cfg.CookieSecure, TTL: cfg.TokenTTL},
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Log:            logger.Component("http"),
	})

	// --- Scheduled ingestion ---
	var sched *scheduler.Scheduler
	if cfg.JobFeed.Schedule != "" {
		sched = scheduler.New(cfg.JobFeed.Schedule, ingestService, func(n int, err error, took time.Duration) {
			metrics.ObserveIngest("schedule", n, err, took)
		}, logger.Component("scheduler"))
		if err := sched.Start(ctx); err != nil {
			return err
		}
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Str("env", cfg.Env).Msg("API started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if sched != nil {
		select {
		case <-sched.Stop().Done():
		case <-shutdownCtx.Done():
			log.Warn().Msg("scheduled ingest still running at shutdown")
		}
	}
	return server.Shutdown(shutdownCtx)
}
