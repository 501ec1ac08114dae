package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/jobboard/jobboard/internal/app"
	"github.com/jobboard/jobboard/internal/auth"
	"github.com/jobboard/jobboard/internal/observability"
	"github.com/jobboard/jobboard/internal/platform/cache"
	"github.com/jobboard/jobboard/internal/platform/db"
	"github.com/jobboard/jobboard/internal/portal"
	"github.com/jobboard/jobboard/internal/postings"
	"github.com/jobboard/jobboard/internal/shared"
	"github.com/jobboard/jobboard/internal/token"
	"github.com/jobboard/jobboard/internal/view"
	"github.com/jobboard/jobboard/tasks"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	if cfg.MigrateOnStart {
		if err := db.Migrate(ctx, cfg.PGDSN); err != nil {
			logger.Error("apply migrations", slog.Any("error", err))
			os.Exit(1)
		}
	}

	dbpool, err := db.New(ctx, cfg.PGDSN, db.PoolOptions{MaxConns: cfg.PGMaxConns})
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "jobboard_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	tokens, err := token.NewManager(cfg.JWTSecret, token.DefaultTTL)
	if err != nil {
		logger.Error("init token manager", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}

	var publisher postings.Publisher = postings.NopPublisher{}
	if cfg.AuditEnabled {
		taskClient := tasks.NewClient(redisOpts)
		defer func() {
			if err := taskClient.Close(); err != nil {
				logger.Warn("task client close", slog.Any("error", err))
			}
		}()
		publisher = taskClient
	}

	authService := auth.NewService(auth.NewRepository(dbpool), auth.NewHasher(auth.DefaultCost), tokens)
	postingsService := postings.NewService(postings.NewRepository(dbpool), tokens, publisher, logger)

	inspector := asynq.NewInspector(redisOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		SessionManager:  sessionManager,
		CSRFManager:     csrfManager,
		AuthHandler:     auth.NewHandler(logger, authService),
		PostingsHandler: postings.NewHandler(logger, postingsService),
		PortalHandler:   portal.NewHandler(logger, authService, postingsService, templates, sessionManager, csrfManager),
		TasksHandler:    tasks.NewHandler(inspector, logger),
		Metrics:         metrics,
		HealthCheck: func(r *http.Request) error {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			return dbpool.Ping(ctx)
		},
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("http server", slog.Any("error", err))
		os.Exit(1)
	}
}
