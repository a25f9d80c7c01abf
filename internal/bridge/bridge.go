package bridge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/ff-nft-ledger/internal/adapter"
	"github.com/feral-file/ff-nft-ledger/internal/domain"
	"github.com/feral-file/ff-nft-ledger/internal/logger"
	"github.com/feral-file/ff-nft-ledger/internal/notifier"
	natsjs "github.com/feral-file/ff-nft-ledger/internal/providers/jetstream"
)

// FilterSubject matches every ledger event subject
const FilterSubject = natsjs.SubjectPrefix + ".>"

// Config holds the configuration for the event bridge
type Config struct {
	URL            string
	StreamName     string
	ConsumerName   string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	AckWaitTimeout time.Duration
	MaxDeliver     int
	WorkerPoolSize int
}

// Bridge consumes ledger events from JetStream and hands them to the webhook notifier
type Bridge interface {
	// Run consumes until ctx is canceled
	Run(ctx context.Context) error
	// Close closes the bridge and cleans up resources
	Close()
}

type bridge struct {
	nc       adapter.NatsConn
	js       adapter.JetStream
	notifier notifier.Notifier
	json     adapter.JSON
	config   Config
}

// NewBridge creates a new event bridge
func NewBridge(
	cfg Config,
	natsJS adapter.NatsJetStream,
	n notifier.Notifier,
	jsonAdapter adapter.JSON,
) (Bridge, error) {
	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = 1
	}

	nc, js, err := natsJS.Connect(cfg.URL, natsjs.ConnectionOptions(cfg.ConnectionName, cfg.MaxReconnects, cfg.ReconnectWait)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	return &bridge{
		nc:       nc,
		js:       js,
		notifier: n,
		json:     jsonAdapter,
		config:   cfg,
	}, nil
}

// Run starts the event bridge
func (b *bridge) Run(ctx context.Context) error {
	logger.InfoCtx(ctx, "Starting event bridge", zap.String("stream", b.config.StreamName), zap.String("consumer", b.config.ConsumerName))

	consumerConfig := jetstream.ConsumerConfig{
		Durable:       b.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       b.config.AckWaitTimeout,
		MaxDeliver:    b.config.MaxDeliver,
		FilterSubject: FilterSubject,
	}

	consumer, err := b.js.CreateOrUpdateConsumer(ctx, b.config.StreamName, consumerConfig)
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	consumerInfo, err := consumer.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}
	logger.InfoCtx(ctx, "Consumer created/retrieved",
		zap.String("consumer", consumerInfo.Name),
		zap.Uint64("pending", consumerInfo.NumPending))

	msgChan := make(chan adapter.Message, b.config.WorkerPoolSize)
	sub, err := consumer.Consume(func(msg adapter.Message) {
		select {
		case msgChan <- msg:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer sub.Stop()

	pool := pond.NewPool(b.config.WorkerPoolSize, pond.WithContext(ctx))
	defer pool.StopAndWait()

	logger.InfoCtx(ctx, "Started consuming messages")

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Shutting down event bridge",
				zap.Uint64("submittedTasks", pool.SubmittedTasks()),
				zap.Uint64("successfulTasks", pool.SuccessfulTasks()),
				zap.Uint64("failedTasks", pool.FailedTasks()))
			return ctx.Err()
		case msg := <-msgChan:
			pool.Submit(func() {
				b.handleMessage(ctx, msg)
			})
		}
	}
}

// handleMessage processes a single NATS message
func (b *bridge) handleMessage(ctx context.Context, msg adapter.Message) {
	var event domain.LedgerEvent
	if err := b.json.Unmarshal(msg.Data(), &event); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to unmarshal event"), zap.String("subject", msg.Subject()))
		// Unparseable data never becomes parseable
		if err := msg.Term(); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to terminate message"))
		}
		return
	}

	var delivered uint64
	if metadata, err := msg.Metadata(); err == nil && metadata != nil {
		delivered = metadata.NumDelivered
	}

	ctx = logger.WithFields(ctx,
		zap.String("eventID", event.EventID),
		zap.String("eventType", string(event.EventType)))
	logger.InfoCtx(ctx, "Received event",
		zap.String("tokenCID", event.TokenCID().String()),
		zap.Uint64("sequence", event.Sequence),
		zap.Uint64("deliveryCount", delivered))

	if err := b.notifier.Notify(ctx, &event); err != nil {
		if errors.Is(err, notifier.ErrUnknownEventType) {
			logger.ErrorCtx(ctx, err, zap.String("message", "Dropping event"))
			if err := msg.Term(); err != nil {
				logger.ErrorCtx(ctx, err, zap.String("message", "Failed to terminate message"))
			}
			return
		}

		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to notify webhook clients"))
		if err := msg.Nak(); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to NAK message"))
		}
		return
	}

	if err := msg.Ack(); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to ACK message"))
	}
}

// Close closes the bridge and cleans up resources
func (b *bridge) Close() {
	if b.nc == nil {
		return
	}

	if err := b.nc.Drain(); err != nil {
		logger.Warn("Failed to drain NATS connection", zap.Error(err))
		b.nc.Close()
	}
}
