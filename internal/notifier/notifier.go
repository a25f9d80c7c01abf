package notifier

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-nft-ledger/internal/adapter"
	"github.com/feral-file/ff-nft-ledger/internal/domain"
	"github.com/feral-file/ff-nft-ledger/internal/logger"
	"github.com/feral-file/ff-nft-ledger/internal/metrics"
	"github.com/feral-file/ff-nft-ledger/internal/store"
	"github.com/feral-file/ff-nft-ledger/internal/store/schema"
	"github.com/feral-file/ff-nft-ledger/internal/webhook"
)

const (
	USER_AGENT             = "FF-NFT-Ledger-Webhook/1.0"
	MAX_RESPONSE_BODY_SIZE = 4 * 1024
)

// ErrUnknownEventType is returned for ledger events that have no webhook representation
var ErrUnknownEventType = errors.New("unknown event type")

// Config holds the delivery settings of the notifier
type Config struct {
	WorkerPoolSize int
	QueueSize      int
	// Backoff between attempts of a single delivery
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// Notifier delivers ledger events to the webhook clients subscribed to them
//
//go:generate mockgen -source=notifier.go -destination=../mocks/notifier.go -package=mocks -mock_names=Notifier=MockNotifier
type Notifier interface {
	// Notify delivers the event to every matching client and waits for all deliveries to settle.
	// It returns an error when at least one delivery still fails transiently after its retries.
	Notify(ctx context.Context, event *domain.LedgerEvent) error
	// Close waits for in-flight deliveries and releases the worker pool
	Close()
}

type notifier struct {
	config     Config
	store      store.Store
	httpClient adapter.HTTPClient
	json       adapter.JSON
	clock      adapter.Clock
	metrics    *metrics.Metrics
	pool       pond.Pool
}

// NewNotifier creates a new webhook notifier
func NewNotifier(
	cfg Config,
	st store.Store,
	httpClient adapter.HTTPClient,
	jsonAdapter adapter.JSON,
	clock adapter.Clock,
	m *metrics.Metrics,
) Notifier {
	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = 10
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 100
	}

	return &notifier{
		config:     cfg,
		store:      st,
		httpClient: httpClient,
		json:       jsonAdapter,
		clock:      clock,
		metrics:    m,
		pool:       pond.NewPool(cfg.WorkerPoolSize, pond.WithQueueSize(cfg.QueueSize)),
	}
}

// Notify delivers the event to every matching client
func (n *notifier) Notify(ctx context.Context, event *domain.LedgerEvent) error {
	eventType := webhook.EventTypeFor(event.EventType)
	if eventType == "" {
		return fmt.Errorf("%w: %s", ErrUnknownEventType, event.EventType)
	}

	clients, err := n.store.GetActiveWebhookClientsByEventType(ctx, eventType)
	if err != nil {
		return fmt.Errorf("failed to get webhook clients: %w", err)
	}
	if len(clients) == 0 {
		logger.DebugCtx(ctx, "No active webhook clients found for event type", zap.String("eventType", eventType))
		return nil
	}

	we := webhook.NewWebhookEvent(event)
	tasks := make([]pond.Task, 0, len(clients))
	for _, client := range clients {
		tasks = append(tasks, n.pool.SubmitErr(func() error {
			return n.deliver(ctx, client, we)
		}))
	}

	var errs []error
	for _, task := range tasks {
		if err := task.Wait(); err != nil {
			errs = append(errs, err)
		}
	}

	logger.InfoCtx(ctx, "Webhook notification completed",
		zap.String("eventID", event.EventID),
		zap.String("eventType", eventType),
		zap.Int("clients", len(clients)),
		zap.Int("failed", len(errs)))

	return errors.Join(errs...)
}

// deliver posts the event to a single client, retrying transient failures.
// Permanent rejections are logged and swallowed.
func (n *notifier) deliver(ctx context.Context, client *schema.WebhookClient, event webhook.WebhookEvent) error {
	maxAttempts := client.RetryMaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	b := backoff.NewExponentialBackOff()
	if n.config.InitialInterval > 0 {
		b.InitialInterval = n.config.InitialInterval
	}
	if n.config.MaxInterval > 0 {
		b.MaxInterval = n.config.MaxInterval
	}
	b.MaxElapsedTime = n.config.MaxElapsedTime
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(maxAttempts-1)), ctx) //nolint:gosec,G115

	var attempt int
	var result webhook.DeliveryResult
	var permanent bool
	operation := func() error {
		attempt++
		var err error
		result, err = n.post(ctx, client, event)
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			permanent = true
		}
		return err
	}
	notifyOnError := func(err error, next time.Duration) {
		logger.WarnCtx(ctx, "Webhook delivery failed, retrying",
			zap.Error(err),
			zap.String("clientID", client.ClientID),
			zap.String("eventID", event.EventID),
			zap.Int("attempt", attempt),
			zap.Duration("nextRetryIn", next))
	}

	err := backoff.RetryNotify(operation, policy, notifyOnError)
	switch {
	case err == nil:
		n.metrics.RecordDelivery("success")
		logger.InfoCtx(ctx, "Webhook delivered successfully",
			zap.String("clientID", client.ClientID),
			zap.String("eventID", event.EventID),
			zap.Int("statusCode", result.StatusCode),
			zap.Int("attempts", attempt))
		return nil
	case permanent:
		n.metrics.RecordDelivery("rejected")
		logger.WarnCtx(ctx, "Webhook delivery rejected",
			zap.Error(err),
			zap.String("clientID", client.ClientID),
			zap.String("eventID", event.EventID),
			zap.Int("statusCode", result.StatusCode),
			zap.String("body", result.Body))
		return nil
	default:
		n.metrics.RecordDelivery("failed")
		return fmt.Errorf("failed to deliver event %s to client %s after %d attempts: %w",
			event.EventID, client.ClientID, attempt, err)
	}
}

// post performs one signed delivery attempt
func (n *notifier) post(ctx context.Context, client *schema.WebhookClient, event webhook.WebhookEvent) (webhook.DeliveryResult, error) {
	payload, signature, timestamp, err := webhook.GenerateSignedPayload(n.json, client.WebhookSecret, event, n.clock.Now())
	if err != nil {
		return webhook.DeliveryResult{Error: err.Error()}, backoff.Permanent(err)
	}

	headers := map[string]string{
		"Content-Type":          "application/json",
		webhook.SignatureHeader: signature,
		"X-Webhook-Event-ID":    event.EventID,
		"X-Webhook-Event-Type":  event.EventType,
		"X-Webhook-Timestamp":   fmt.Sprintf("%d", timestamp),
		"User-Agent":            USER_AGENT,
	}

	resp, err := n.httpClient.PostWithHeadersNoRetry(ctx, client.WebhookURL, headers, bytes.NewReader(payload))
	if err != nil {
		return webhook.DeliveryResult{Error: err.Error()}, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.WarnCtx(ctx, "failed to close response body", zap.Error(err), zap.String("url", client.WebhookURL))
		}
	}()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, MAX_RESPONSE_BODY_SIZE))
	if err != nil {
		respBody = []byte{}
	}

	result := webhook.DeliveryResult{StatusCode: resp.StatusCode, Body: string(respBody)}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		result.Success = true
		return result, nil
	}

	err = fmt.Errorf("HTTP %d", resp.StatusCode)
	result.Error = err.Error()
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return result, err
	}
	return result, backoff.Permanent(err)
}

// Close waits for in-flight deliveries and releases the worker pool
func (n *notifier) Close() {
	n.pool.StopAndWait()
}
