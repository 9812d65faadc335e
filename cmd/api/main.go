package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/user/crm-service/internal/adapter/chromedp_renderer"
	"github.com/user/crm-service/internal/adapter/export"
	"github.com/user/crm-service/internal/adapter/filestore"
	"github.com/user/crm-service/internal/adapter/fsnotify_watcher"
	"github.com/user/crm-service/internal/adapter/postgres"
	redis_adapter "github.com/user/crm-service/internal/adapter/redis"
	"github.com/user/crm-service/internal/adapter/textextract"
	"github.com/user/crm-service/internal/delivery/http/handler"
	"github.com/user/crm-service/internal/delivery/http/request"
	"github.com/user/crm-service/internal/delivery/http/router"
	"github.com/user/crm-service/internal/usecase"
	"github.com/user/crm-service/pkg/config"
	"github.com/user/crm-service/pkg/logger"
	"go.uber.org/zap"
)

const (
	searchResultsPerTable = 5
	inboxDebounce         = 500 * time.Millisecond
	maxConcurrentRenders  = 2
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load(".env")
	if err != nil {
		zap.NewExample().Fatal("could not load config", zap.Error(err))
	}

	// --- Logger ---
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		zap.NewExample().Fatal("could not build logger", zap.Error(err))
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// --- Database Connections ---
	pool, err := postgres.NewPool(ctx, cfg.PostgresURL, cfg.PostgresMaxConns)
	if err != nil {
		log.Fatal("unable to connect to database", zap.Error(err))
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal("schema bootstrap failed", zap.Error(err))
	}
	log.Info("postgres connection pool established")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal("unable to connect to redis", zap.Error(err))
	}
	log.Info("redis connection established")

	// --- Adapters ---
	files, err := filestore.NewLocalStore(cfg.UploadDir)
	if err != nil {
		log.Fatal("upload directory unusable", zap.String("dir", cfg.UploadDir), zap.Error(err))
	}
	renderer := chromedp_renderer.NewChromedpRenderer(maxConcurrentRenders, cfg.RenderTimeout(), log)
	defer renderer.Close()
	sheets := export.NewSheetExporter()

	// --- Repositories ---
	reportRepo := postgres.NewReportRepo(pool)
	searchRepo := postgres.NewSearchRepo(pool, searchResultsPerTable)
	sessionRepo := redis_adapter.NewSessionRepo(rdb)
	queueRepo := redis_adapter.NewQueueRepo(rdb)
	searchCache := redis_adapter.NewSearchCacheRepo(rdb)

	// --- Use Cases ---
	reports := usecase.NewReportUseCase(reportRepo, files, textextract.New(log), sheets, renderer, log)
	auth := usecase.NewAuthUseCase(postgres.NewUserRepo(pool), sessionRepo, cfg.SessionTTL(), log)
	ingest := usecase.NewIngestUseCase(queueRepo, reports, cfg.IngestWorkers, log)

	services := handler.Services{
		Reports:       reports,
		Companies:     usecase.NewCompanyUseCase(postgres.NewCompanyRepo(pool)),
		Contacts:      usecase.NewContactUseCase(postgres.NewContactRepo(pool), sheets),
		Leads:         usecase.NewLeadUseCase(postgres.NewLeadRepo(pool)),
		Activities:    usecase.NewActivityUseCase(postgres.NewActivityRepo(pool)),
		Reminders:     usecase.NewReminderUseCase(postgres.NewReminderRepo(pool)),
		Notifications: usecase.NewNotificationUseCase(postgres.NewNotificationRepo(pool)),
		Compliances:   usecase.NewComplianceUseCase(postgres.NewComplianceRepo(pool)),
		Analytics:     usecase.NewAnalyticsUseCase(postgres.NewAnalyticsRepo(pool)),
		Search:        usecase.NewSearchUseCase(searchRepo, searchCache, cfg.SearchCacheTTL(), log),
		Auth:          auth,
	}

	if cfg.AdminEmail != "" {
		if err := auth.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatal("admin bootstrap failed", zap.Error(err))
		}
		log.Info("admin account ensured", zap.String("email", cfg.AdminEmail))
	}

	// --- Inbox ingestion ---
	var paths <-chan string
	if cfg.InboxDir != "" {
		watcher := fsnotify_watcher.NewInboxWatcher(cfg.InboxDir, inboxDebounce, true, log)
		paths, err = watcher.Watch(ctx)
		if err != nil {
			log.Fatal("cannot watch inbox", zap.String("dir", cfg.InboxDir), zap.Error(err))
		}
		log.Info("watching inbox", zap.String("dir", cfg.InboxDir), zap.Int("workers", cfg.IngestWorkers))
	}
	// Workers also drain paths queued by a previous run.
	ingest.Start(ctx, paths)

	// --- HTTP Server ---
	validator, err := request.NewValidator()
	if err != nil {
		log.Fatal("request schemas failed to compile", zap.Error(err))
	}
	health := map[string]handler.HealthCheck{
		"postgres": pool.Ping,
		"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}
	apiHandler := handler.NewHandler(services, validator, health, cfg.MaxUploadBytes(), log)
	httpRouter := router.New(apiHandler, router.Options{
		AllowedOrigins: cfg.AllowedOrigins(),
		RequestTimeout: cfg.RequestTimeout(),
		UploadDir:      cfg.UploadDir,
		StaticDir:      cfg.StaticDir,
		Auth:           auth,
		Logger:         log,
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           httpRouter,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("could not start server", zap.String("port", cfg.ServerPort), zap.Error(err))
		}
	}()
	log.Info("server started", zap.String("port", cfg.ServerPort))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	stop()
	ingest.Stop()

	log.Info("server exiting")
}
