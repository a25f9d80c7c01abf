package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-nft-ledger/internal/adapter"
	"github.com/feral-file/ff-nft-ledger/internal/bridge"
	"github.com/feral-file/ff-nft-ledger/internal/config"
	"github.com/feral-file/ff-nft-ledger/internal/logger"
	"github.com/feral-file/ff-nft-ledger/internal/metrics"
	"github.com/feral-file/ff-nft-ledger/internal/notifier"
	"github.com/feral-file/ff-nft-ledger/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadDispatcherConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Service:         "webhook-dispatcher",
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "webhook-dispatcher",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.Info("Starting Webhook Dispatcher")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.Fatal("Failed to configure connection pool", zap.Error(err))
	}
	logger.Info("Connected to database")

	dataStore := store.NewPGStore(db)

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	clock := adapter.NewClock()
	httpClient := adapter.NewHTTPClient(cfg.Webhook.HTTPTimeout)
	natsJS := adapter.NewNatsJetStream()
	m := metrics.New()

	webhookNotifier := notifier.NewNotifier(notifier.Config{
		WorkerPoolSize:  cfg.Worker.WorkerPoolSize,
		QueueSize:       cfg.Worker.WorkerQueueSize,
		InitialInterval: cfg.Webhook.InitialInterval,
		MaxInterval:     cfg.Webhook.MaxInterval,
		MaxElapsedTime:  cfg.Webhook.MaxElapsedTime,
	}, dataStore, httpClient, jsonAdapter, clock, m)
	defer webhookNotifier.Close()

	eventBridge, err := bridge.NewBridge(
		bridge.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			ConsumerName:   cfg.NATS.ConsumerName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
			AckWaitTimeout: cfg.NATS.AckWait,
			MaxDeliver:     cfg.NATS.MaxDeliver,
			WorkerPoolSize: cfg.Worker.WorkerPoolSize,
		},
		natsJS,
		webhookNotifier,
		jsonAdapter,
	)
	if err != nil {
		logger.Fatal("Failed to create event bridge", zap.Error(err))
	}
	defer eventBridge.Close()
	logger.Info("Event bridge created", zap.String("stream", cfg.NATS.StreamName), zap.String("consumer", cfg.NATS.ConsumerName))

	// Expose delivery metrics
	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddress,
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 2)

	go func() {
		logger.Info("Serving metrics", zap.String("address", cfg.MetricsAddress))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("metrics server: %w", err)
		}
	}()

	go func() {
		if err := eventBridge.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigCh:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.Error(err, zap.String("component", "dispatcher"))
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(err, zap.String("component", "metrics"))
	}

	logger.Info("Webhook Dispatcher stopped")
}
