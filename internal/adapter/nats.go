package adapter

import (
	"context"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// NatsConn defines an interface for NATS connection operations to enable mocking
//
//go:generate mockgen -source=nats.go -destination=../mocks/nats.go -package=mocks -mock_names=NatsConn=MockNatsConn,JetStream=MockJetStream,Consumer=MockNatsConsumer,ConsumeContext=MockConsumeContext,Message=MockJetStreamMessage,NatsJetStream=MockNatsJetStream
type NatsConn interface {
	Close()
	Drain() error
	LastError() error
	ConnectedUrl() string
}

// JetStream defines the subset of jetstream.JetStream the ledger uses
type JetStream interface {
	// CreateOrUpdateStream makes sure the stream exists with the given subjects
	CreateOrUpdateStream(ctx context.Context, cfg jetstream.StreamConfig) error
	Publish(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
	CreateOrUpdateConsumer(ctx context.Context, stream string, cfg jetstream.ConsumerConfig) (Consumer, error)
}

// MessageHandler is called for every message delivered to a consumer
type MessageHandler func(msg Message)

// Consumer defines an interface for NATS JetStream consumers
type Consumer interface {
	Consume(handler MessageHandler, opts ...jetstream.PullConsumeOpt) (ConsumeContext, error)
	Info(ctx context.Context) (*jetstream.ConsumerInfo, error)
}

// ConsumeContext defines an interface for NATS JetStream consume contexts
type ConsumeContext interface {
	Stop()
	Drain()
	Closed() <-chan struct{}
}

// Message defines an interface for NATS JetStream messages
type Message interface {
	Subject() string
	Data() []byte
	Metadata() (*jetstream.MsgMetadata, error)
	Ack() error
	Nak() error
	Term() error
}

// NatsJetStream defines an interface for creating NATS connections and JetStream contexts
type NatsJetStream interface {
	Connect(url string, options ...nats.Option) (NatsConn, JetStream, error)
}

// RealNatsJetStream implements NatsJetStream using the standard nats package
type RealNatsJetStream struct{}

// NewNatsJetStream creates a new real NATS JetStream
func NewNatsJetStream() NatsJetStream {
	return &RealNatsJetStream{}
}

func (n *RealNatsJetStream) Connect(url string, options ...nats.Option) (NatsConn, JetStream, error) {
	nc, err := nats.Connect(url, options...)
	if err != nil {
		return nil, nil, err
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, err
	}

	return nc, &jetStreamAdapter{js: js}, nil
}

// jetStreamAdapter narrows jetstream.JetStream to JetStream, wrapping returned consumers
type jetStreamAdapter struct {
	js jetstream.JetStream
}

func (a *jetStreamAdapter) CreateOrUpdateStream(ctx context.Context, cfg jetstream.StreamConfig) error {
	_, err := a.js.CreateOrUpdateStream(ctx, cfg)
	return err
}

func (a *jetStreamAdapter) Publish(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	return a.js.Publish(ctx, subject, data, opts...)
}

func (a *jetStreamAdapter) CreateOrUpdateConsumer(ctx context.Context, stream string, cfg jetstream.ConsumerConfig) (Consumer, error) {
	consumer, err := a.js.CreateOrUpdateConsumer(ctx, stream, cfg)
	if err != nil {
		return nil, err
	}
	return &consumerAdapter{consumer: consumer}, nil
}

// consumerAdapter forwards to jetstream.Consumer with our handler type
type consumerAdapter struct {
	consumer jetstream.Consumer
}

func (a *consumerAdapter) Consume(handler MessageHandler, opts ...jetstream.PullConsumeOpt) (ConsumeContext, error) {
	return a.consumer.Consume(func(msg jetstream.Msg) {
		handler(msg)
	}, opts...)
}

func (a *consumerAdapter) Info(ctx context.Context) (*jetstream.ConsumerInfo, error) {
	return a.consumer.Info(ctx)
}
