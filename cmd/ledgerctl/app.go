package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-nft-ledger/internal/adapter"
	"github.com/feral-file/ff-nft-ledger/internal/api/shared/executor"
	"github.com/feral-file/ff-nft-ledger/internal/config"
	"github.com/feral-file/ff-nft-ledger/internal/ledger"
	"github.com/feral-file/ff-nft-ledger/internal/logger"
	"github.com/feral-file/ff-nft-ledger/internal/messaging"
	natsjs "github.com/feral-file/ff-nft-ledger/internal/providers/jetstream"
	"github.com/feral-file/ff-nft-ledger/internal/store"
)

// app holds the ledger wiring shared by every subcommand
type app struct {
	caller    string
	ledger    ledger.Ledger
	executor  executor.Executor
	publisher messaging.Publisher
}

func (a *app) open(ctx context.Context, cfg *config.CLIConfig) error {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		return fmt.Errorf("configure connection pool: %w", err)
	}
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	dataStore := store.NewPGStore(db)

	jsonAdapter := adapter.NewJSON()

	a.publisher = messaging.NopPublisher{}
	if cfg.NATS.URL != "" {
		a.publisher, err = natsjs.NewPublisher(ctx, natsjs.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			return fmt.Errorf("connect to NATS: %w", err)
		}
	}

	a.ledger, err = ledger.Initialize(ctx, ledger.Config{
		Contract:  cfg.Collection.Contract,
		Chain:     cfg.Collection.ChainID,
		Name:      cfg.Collection.Name,
		Symbol:    cfg.Collection.Symbol,
		MaxSupply: cfg.Collection.MaxSupply,
		Admin:     cfg.Collection.Admin,
		BaseURI:   cfg.Collection.BaseURI,
		URISuffix: cfg.Collection.URISuffix,
	}, dataStore, a.publisher, adapter.NewClock(), jsonAdapter, adapter.NewJCS(), nil)
	if err != nil {
		return fmt.Errorf("initialize ledger: %w", err)
	}

	a.executor = executor.NewExecutor(a.ledger, dataStore, jsonAdapter)
	logger.Debug("Ledger opened", zap.String("contract", a.ledger.Contract()))
	return nil
}

func (a *app) close() {
	if a.publisher != nil {
		a.publisher.Close()
	}
}

// callerOrAdmin returns the --caller flag, falling back to the collection admin
func (a *app) callerOrAdmin() string {
	if a.caller != "" {
		return a.caller
	}
	return a.ledger.Admin()
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
