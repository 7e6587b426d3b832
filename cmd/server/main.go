package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/erik893/video-frame-extractor/internal/domain/port"
	"github.com/erik893/video-frame-extractor/internal/infra/config"
	"github.com/erik893/video-frame-extractor/internal/infra/email"
	"github.com/erik893/video-frame-extractor/internal/infra/ffmpeg"
	"github.com/erik893/video-frame-extractor/internal/infra/httpapi"
	"github.com/erik893/video-frame-extractor/internal/infra/metrics"
	miniostorage "github.com/erik893/video-frame-extractor/internal/infra/minio"
	"github.com/erik893/video-frame-extractor/internal/infra/postgres"
	"github.com/erik893/video-frame-extractor/internal/infra/rabbitmq"
	"github.com/erik893/video-frame-extractor/internal/infra/tracing"
	"github.com/erik893/video-frame-extractor/internal/usecase"
	"github.com/erik893/video-frame-extractor/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	fatalOnErr(err, "load config")

	log, err := logger.New(cfg.LogLevel)
	fatalOnErr(err, "init logger")
	defer log.Sync()

	log.Info("starting video-frame-extractor")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Tracing (non-fatal if the collector is unavailable)
	tp, err := tracing.InitTracer(ctx, cfg.JaegerEndpoint)
	if err != nil {
		log.Warn("tracing init failed, continuing without tracing", zap.Error(err))
	} else {
		defer tp.Shutdown(ctx)
	}

	// Storage with an explicit refreshing credential provider
	credProvider := miniostorage.NewRefreshingProvider(
		miniostorage.StaticFetch(cfg.MinIOAccessKey, cfg.MinIOSecretKey),
		cfg.CredentialTTL,
	)
	storage, err := miniostorage.NewStorage(miniostorage.StorageConfig{
		Endpoint: cfg.MinIOEndpoint,
		UseSSL:   cfg.MinIOUseSSL,
		Bucket:   cfg.MediaBucket,
	}, credProvider.NewCredentials())
	fatalOnErr(err, "create minio storage")
	fatalOnErr(storage.EnsureBucket(ctx), "ensure media bucket")

	// Run audit repository (advisory; skipped when no database is
	// configured)
	var repo port.RunRepository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		fatalOnErr(err, "connect to postgres")
		defer pool.Close()

		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
			log.Warn("migration warning", zap.Error(err))
		}
		repo = postgres.NewRunRepository(pool)
	} else {
		log.Info("no DATABASE_URL configured, run auditing disabled")
	}

	// Event publisher (optional)
	var publisher port.EventPublisher
	if cfg.RabbitMQURL != "" {
		rmqConn, err := amqp.Dial(cfg.RabbitMQURL)
		fatalOnErr(err, "connect to rabbitmq")
		defer rmqConn.Close()

		pub, err := rabbitmq.NewPublisher(rmqConn, cfg.RabbitMQExchange)
		fatalOnErr(err, "create rabbitmq publisher")
		publisher = rabbitmq.NewEventPublisher(pub)
	} else {
		log.Info("no RABBITMQ_URL configured, event publishing disabled")
	}

	// Failure notifier (optional)
	var notifier port.FailureNotifier
	if cfg.NotificationTo != "" {
		notifier = email.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, log)
	}

	// Decoder adapters
	prober := ffmpeg.NewProber(cfg.ProbeTimeout)
	renderer := ffmpeg.NewRenderer(cfg.FFmpegFormat, cfg.RenderTimeout, log)

	// Destination policy for this deployment
	resolver, err := usecase.NewDestinationResolver(cfg.DestinationMode, cfg.FramesFolder, storage)
	fatalOnErr(err, "select destination resolver")

	// Use cases
	extractUC := usecase.NewExtractFramesUseCase(
		storage, prober, renderer, resolver,
		repo, publisher, notifier,
		log,
		usecase.ExtractFramesConfig{
			TempDir:         cfg.TempDir,
			NotifyAddress:   cfg.NotificationTo,
			DownloadTimeout: cfg.DownloadTimeout,
			UploadTimeout:   cfg.UploadTimeout,
		},
	)
	batchUC := usecase.NewBatchExtractUseCase(extractUC.Execute, log)
	countUC := usecase.NewCountMediaUseCase(storage, log)

	// Metrics server
	metricsSrv := metrics.StartMetricsServer(ctx, cfg.MetricsPort, log)

	// HTTP API
	handlers := httpapi.NewHandlers(extractUC, batchUC, countUC, log)
	router := httpapi.NewRouter(handlers, cfg.APIKey)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		log.Info("http server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", zap.Error(err))
			cancel()
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http server shutdown", zap.Error(err))
	}
	metricsSrv.Shutdown(shutdownCtx)

	log.Info("video-frame-extractor stopped")
}

func fatalOnErr(err error, msg string) {
	if err != nil {
		panic(msg + ": " + err.Error())
	}
}
