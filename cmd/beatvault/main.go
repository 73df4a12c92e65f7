package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/beatvault/beatvault/internal/backend"
	"github.com/beatvault/beatvault/internal/cache"
	"github.com/beatvault/beatvault/internal/config"
	"github.com/beatvault/beatvault/internal/handler"
	"github.com/beatvault/beatvault/internal/job"
	"github.com/beatvault/beatvault/internal/middleware"
	"github.com/beatvault/beatvault/internal/schedule"
	"github.com/beatvault/beatvault/internal/service"
	"github.com/beatvault/beatvault/internal/upload"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "beatvault",
		Short: "beatvault storefront gateway",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the storefront gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))
			return runServer(cfg)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config) error {
	logutil.GetLogger(context.Background()).Info(
		"starting gateway",
		zap.Int("port", cfg.Port),
		zap.String("backend", cfg.Backend.BaseURL),
	)

	api := backend.New(cfg.Backend.BaseURL, time.Duration(cfg.Backend.TimeoutSeconds)*time.Second)
	stateCache := cache.New(cfg.Cache.Size, time.Duration(cfg.Cache.TTLSeconds)*time.Second)

	beatService := service.NewBeatService(api, stateCache)
	subscriptionService := service.NewSubscriptionService(api, stateCache)
	downloadService := service.NewDownloadService(api, stateCache, subscriptionService)

	orchestrator := upload.NewOrchestrator(api, upload.NewTransferer(nil), upload.Config{
		MaxRetries:   cfg.Upload.MaxRetries,
		PollInterval: time.Duration(cfg.Upload.PollIntervalSeconds) * time.Second,
		SpoolDir:     cfg.Upload.SpoolDir,
	}, upload.NewLogNotifier())
	orchestrator.OnComplete = func(ctx context.Context, snap upload.Snapshot) {
		beatService.InvalidateDetail(snap.BeatID)
	}

	deps := handler.RouterDeps{
		Beats:         handler.NewBeatHandler(beatService),
		Uploads:       handler.NewUploadHandler(orchestrator),
		Downloads:     handler.NewDownloadHandler(downloadService),
		Subscriptions: handler.NewSubscriptionHandler(subscriptionService),
		Users:         handler.NewUserHandler(api),
		JWTSecret:     []byte(cfg.JWTSecret),
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(nil),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.New()
	retention := time.Duration(cfg.Upload.SessionRetentionMinutes) * time.Minute
	if err := scheduler.AddJob(job.NewSessionSweepJob(orchestrator, retention), "*/10 * * * *"); err != nil {
		return fmt.Errorf("schedule session sweep: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("gateway stopping...")
	return nil
}
