package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-nft-ledger/internal/adapter"
	"github.com/feral-file/ff-nft-ledger/internal/api/middleware"
	"github.com/feral-file/ff-nft-ledger/internal/api/server"
	"github.com/feral-file/ff-nft-ledger/internal/api/shared/executor"
	"github.com/feral-file/ff-nft-ledger/internal/config"
	"github.com/feral-file/ff-nft-ledger/internal/ledger"
	"github.com/feral-file/ff-nft-ledger/internal/logger"
	"github.com/feral-file/ff-nft-ledger/internal/messaging"
	"github.com/feral-file/ff-nft-ledger/internal/metrics"
	natsjs "github.com/feral-file/ff-nft-ledger/internal/providers/jetstream"
	"github.com/feral-file/ff-nft-ledger/internal/ratelimit"
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
	cfg, err := config.LoadLedgerAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Service:         "ledger-api",
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "ledger-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Feral File NFT Ledger API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	if err := store.Migrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	jcsAdapter := adapter.NewJCS()
	m := metrics.New()

	// Event publishing is optional; without a broker the journal is still queryable
	var publisher messaging.Publisher = messaging.NopPublisher{}
	if cfg.NATS.URL != "" {
		publisher, err = natsjs.NewPublisher(ctx, natsjs.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("stream", cfg.NATS.StreamName))
	} else {
		logger.WarnCtx(ctx, "NATS URL not configured, ledger events will not be published")
	}
	defer publisher.Close()

	// Initialize the ledger; an existing collection must match the configured parameters
	l, err := ledger.Initialize(ctx, ledger.Config{
		Contract:  cfg.Collection.Contract,
		Chain:     cfg.Collection.ChainID,
		Name:      cfg.Collection.Name,
		Symbol:    cfg.Collection.Symbol,
		MaxSupply: cfg.Collection.MaxSupply,
		Admin:     cfg.Collection.Admin,
		BaseURI:   cfg.Collection.BaseURI,
		URISuffix: cfg.Collection.URISuffix,
	}, dataStore, publisher, clock, jsonAdapter, jcsAdapter, m)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize ledger", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Ledger initialized",
		zap.String("contract", l.Contract()),
		zap.String("name", l.Name()),
		zap.Uint64("max_supply", l.MaxSupply()),
	)

	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		RateLimit: ratelimit.Config{
			RequestsPerSecond: cfg.Server.RateLimit.RequestsPerSecond,
			Burst:             cfg.Server.RateLimit.Burst,
		},
	}
	authConfig := middleware.AuthConfig{
		JWTPublicKey: cfg.Auth.JWTPublicKey,
		APIKeys:      cfg.Auth.APIKeys,
	}

	srv := server.New(serverConfig, executor.NewExecutor(l, dataStore, jsonAdapter), m, authConfig)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("message", "Server forced to shutdown"))
	}

	logger.Info("Ledger API stopped")
}
