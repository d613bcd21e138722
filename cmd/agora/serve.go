package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	dbadapter "agora/internal/adapters/database"
	"agora/internal/adapters/httpapi"
	redisadapter "agora/internal/adapters/redis"
	"agora/internal/adapters/web"
	"agora/internal/config"
	communityapp "agora/internal/core/community/service"
	metadataapp "agora/internal/core/metadata/service"
	postapp "agora/internal/core/post/service"
	userapp "agora/internal/core/user/service"
	"agora/internal/metrics"
	"agora/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	shutdownTimeout = 10 * time.Second
	drainTimeout    = 15 * time.Second
)

func serveCmd() *cobra.Command {
	var autoMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), autoMigrate)
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "migrate", true, "apply database migrations before serving")
	return cmd
}

func serve(ctx context.Context, autoMigrate bool) error {
	settings, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	// اتصال به دیتابیس و اجرای مایگریشن‌ها
	db, err := config.OpenDatabase(settings)
	if err != nil {
		return err
	}
	defer closeDatabase(db, logger)
	if autoMigrate {
		if err := dbadapter.Migrate(ctx, db); err != nil {
			return err
		}
		logger.Info("✅ Database migrations completed")
	}

	// اتصال به Redis
	rdb, err := config.NewRedis(ctx, settings)
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	userRepo := dbadapter.NewUserRepositoryDatabase(db)           // آداپتر خروجی
	siteRepo := dbadapter.NewSiteRepositoryDatabase(db)           // آداپتر خروجی
	communityRepo := dbadapter.NewCommunityRepositoryDatabase(db) // آداپتر خروجی
	postRepo := dbadapter.NewPostRepositoryDatabase(db)           // آداپتر خروجی

	httpClient := web.NewHTTPClient(settings.MetadataTimeout)
	dispatcher := workers.NewDispatcher(
		web.NewWebmentionSender(httpClient, settings.UserAgent),
		redisadapter.NewBroadcasterRedis(rdb, logger),
		settings.NotifyWorkers,
		settings.NotifyQueueSize,
		m,
		logger,
	)
	enricher := metadataapp.NewEnricher(
		web.NewMetadataFetcher(httpClient, settings.UserAgent),
		redisadapter.NewMetadataCacheRedis(rdb),
		settings.MetadataTimeout,
		settings.MetadataCacheTTL,
		m,
		logger,
	)

	userSvc := userapp.NewUserService(userRepo, settings.JWTSecret, settings.Hostname, settings.ProtocolAndHostname(), logger) // یوزکیس/سرویس
	guard := communityapp.NewGuard(communityRepo)
	followSvc := communityapp.NewFollowService(userSvc, communityRepo, guard, m, logger) // یوزکیس/سرویس
	// یوزکیس/سرویس
	postSvc := postapp.NewPostService(
		userSvc,
		siteRepo,
		postRepo,
		guard,
		communityapp.NewLanguageResolver(userRepo, communityRepo),
		enricher,
		dispatcher,
		postapp.Settings{
			ProtocolAndHostname: settings.ProtocolAndHostname(),
			MaxTitleLength:      settings.MaxTitleLength,
		},
		m,
		logger,
	)

	if settings.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := httpapi.SetupRoutes(userSvc, postSvc, followSvc, registry, logger) // تزریق یوزکیس به آداپتر ورودی

	// اجرای worker در پس‌زمینه؛ مستقل از ctx درخواست‌ها
	runCtx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()
	dispatcherDone := make(chan struct{})
	go func() {
		defer close(dispatcherDone)
		dispatcher.Run(runCtx)
	}()

	srv := &http.Server{
		Addr:              ":" + settings.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("🚀 App is running", zap.String("addr", srv.Addr), zap.String("hostname", settings.Hostname))
		serverErr <- srv.ListenAndServe()
	}()

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			dispatcher.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case <-sigCtx.Done():
		logger.Info("🛑 Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during server shutdown", zap.Error(err))
	}

	dispatcher.Close()
	select {
	case <-dispatcherDone:
	case <-time.After(drainTimeout):
		logger.Warn("⚠️ Dispatcher did not drain in time")
		cancelRun()
		<-dispatcherDone
	}
	return nil
}

// closeDatabase بستن اتصال دیتابیس
func closeDatabase(db *gorm.DB, logger *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Error getting raw DB", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
	}
}
