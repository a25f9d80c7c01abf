package jetstream

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/ff-nft-ledger/internal/adapter"
	"github.com/feral-file/ff-nft-ledger/internal/domain"
	"github.com/feral-file/ff-nft-ledger/internal/logger"
	"github.com/feral-file/ff-nft-ledger/internal/messaging"
)

// SubjectPrefix is the first token of every ledger event subject
const SubjectPrefix = "ledger"

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	// MaxAge bounds how long events are retained in the stream, 0 keeps them forever
	MaxAge time.Duration
}

type publisher struct {
	nc         adapter.NatsConn
	js         adapter.JetStream
	streamName string
	json       adapter.JSON
}

// ConnectionOptions returns the NATS options shared by publishers and consumers
func ConnectionOptions(name string, maxReconnects int, reconnectWait time.Duration) []nats.Option {
	return []nats.Option{
		nats.Name(name),
		nats.MaxReconnects(maxReconnects),
		nats.ReconnectWait(reconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}
}

// NewPublisher connects to NATS, makes sure the ledger stream exists and returns a publisher
func NewPublisher(ctx context.Context, cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Publisher, error) {
	if cfg.StreamName == "" {
		return nil, errors.New("stream name is required")
	}

	nc, js, err := natsJS.Connect(cfg.URL, ConnectionOptions(cfg.ConnectionName, cfg.MaxReconnects, cfg.ReconnectWait)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      cfg.StreamName,
		Subjects:  []string{SubjectPrefix + ".>"},
		Retention: jetstream.LimitsPolicy,
		Storage:   jetstream.FileStorage,
		MaxAge:    cfg.MaxAge,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create stream %s: %w", cfg.StreamName, err)
	}

	return &publisher{
		nc:         nc,
		js:         js,
		streamName: cfg.StreamName,
		json:       jsonAdapter,
	}, nil
}

// PublishEvent publishes a ledger event to NATS JetStream.
// The event id doubles as the message id so redeliveries are deduplicated by the server.
func (p *publisher) PublishEvent(ctx context.Context, event *domain.LedgerEvent) error {
	logger.DebugCtx(ctx, "Publishing ledger event", zap.Any("event", event))

	data, err := p.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := BuildSubject(event)
	if _, err := p.js.Publish(ctx, subject, data, jetstream.WithMsgID(event.EventID)); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// BuildSubject constructs the NATS subject of an event.
// Format: ledger.{contract}.{event_type}, e.g. ledger.0xabc....transfer
func BuildSubject(event *domain.LedgerEvent) string {
	return fmt.Sprintf("%s.%s.%s", SubjectPrefix, strings.ToLower(event.Contract), event.EventType)
}

// Close drains and closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	if err := p.nc.Drain(); err != nil {
		logger.Warn("Failed to drain NATS connection", zap.Error(err))
		p.nc.Close()
	}
}
