package bridge_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-nft-ledger/internal/adapter"
	"github.com/feral-file/ff-nft-ledger/internal/bridge"
	"github.com/feral-file/ff-nft-ledger/internal/domain"
	"github.com/feral-file/ff-nft-ledger/internal/logger"
	mockspkg "github.com/feral-file/ff-nft-ledger/internal/mocks"
	"github.com/feral-file/ff-nft-ledger/internal/notifier"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testBridgeMocks contains all the mocks needed for testing the bridge
type testBridgeMocks struct {
	ctrl           *gomock.Controller
	natsJS         *mockspkg.MockNatsJetStream
	natsConn       *mockspkg.MockNatsConn
	jetStream      *mockspkg.MockJetStream
	consumer       *mockspkg.MockNatsConsumer
	consumeContext *mockspkg.MockConsumeContext
	notifier       *mockspkg.MockNotifier
}

// setupTestBridge creates all the mocks for testing
func setupTestBridge(t *testing.T) *testBridgeMocks {
	ctrl := gomock.NewController(t)

	return &testBridgeMocks{
		ctrl:           ctrl,
		natsJS:         mockspkg.NewMockNatsJetStream(ctrl),
		natsConn:       mockspkg.NewMockNatsConn(ctrl),
		jetStream:      mockspkg.NewMockJetStream(ctrl),
		consumer:       mockspkg.NewMockNatsConsumer(ctrl),
		consumeContext: mockspkg.NewMockConsumeContext(ctrl),
		notifier:       mockspkg.NewMockNotifier(ctrl),
	}
}

// tearDownTestBridge cleans up the test mocks
func tearDownTestBridge(mocks *testBridgeMocks) {
	mocks.ctrl.Finish()
}

func testConfig() bridge.Config {
	return bridge.Config{
		URL:            "nats://localhost:4222",
		StreamName:     "LEDGER_EVENTS",
		ConsumerName:   "webhook-dispatcher",
		MaxReconnects:  10,
		ReconnectWait:  1 * time.Second,
		ConnectionName: "test-bridge",
		AckWaitTimeout: 30 * time.Second,
		MaxDeliver:     5,
		WorkerPoolSize: 2,
	}
}

func newTestBridge(t *testing.T, mocks *testBridgeMocks, config bridge.Config) bridge.Bridge {
	mocks.natsJS.
		EXPECT().
		Connect(config.URL, gomock.Any()).
		Return(mocks.natsConn, mocks.jetStream, nil)

	b, err := bridge.NewBridge(config, mocks.natsJS, mocks.notifier, adapter.NewJSON())
	require.NoError(t, err)
	require.NotNil(t, b)
	return b
}

// expectConsume wires the consumer and hands the registered handler back to the test
func expectConsume(mocks *testBridgeMocks, config bridge.Config) <-chan adapter.MessageHandler {
	handlers := make(chan adapter.MessageHandler, 1)

	mocks.jetStream.
		EXPECT().
		CreateOrUpdateConsumer(gomock.Any(),
			config.StreamName,
			jetstream.ConsumerConfig{
				Durable:       config.ConsumerName,
				AckPolicy:     jetstream.AckExplicitPolicy,
				AckWait:       config.AckWaitTimeout,
				MaxDeliver:    config.MaxDeliver,
				FilterSubject: "ledger.>",
			}).
		Return(mocks.consumer, nil)
	mocks.consumer.
		EXPECT().
		Info(gomock.Any()).
		Return(&jetstream.ConsumerInfo{Name: config.ConsumerName}, nil)
	mocks.consumer.
		EXPECT().
		Consume(gomock.Any()).
		DoAndReturn(func(handler adapter.MessageHandler, _ ...jetstream.PullConsumeOpt) (adapter.ConsumeContext, error) {
			handlers <- handler
			return mocks.consumeContext, nil
		})
	mocks.consumeContext.EXPECT().Stop()

	return handlers
}

func mintEventJSON() []byte {
	return []byte(`{"event_id":"01JG8XAMPLE1234567890123456","contract":"0xBC4CA0EdA7647A8aB7C2061c2E118A18a936f13D","chain":"eip155:11155111","sequence":1,"event_type":"mint","token_id":1,"caller":"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed","from":"0x0000000000000000000000000000000000000000","to":"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359","tx_hash":"0x01","timestamp":"2024-01-15T10:00:00Z"}`)
}

// runWithMessage starts the bridge, delivers one message and waits for it to settle
func runWithMessage(t *testing.T, mocks *testBridgeMocks, msg adapter.Message, settled <-chan struct{}) {
	config := testConfig()
	b := newTestBridge(t, mocks, config)
	handlers := expectConsume(mocks, config)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- b.Run(ctx)
	}()

	select {
	case handler := <-handlers:
		handler(msg)
	case <-time.After(5 * time.Second):
		t.Fatal("consumer was never started")
	}

	select {
	case <-settled:
	case <-time.After(5 * time.Second):
		t.Fatal("message was never settled")
	}

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("bridge did not stop")
	}
}

func TestBridge_NewBridge_ConnectError(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	mocks.natsJS.
		EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(nil, nil, assert.AnError)

	b, err := bridge.NewBridge(testConfig(), mocks.natsJS, mocks.notifier, adapter.NewJSON())

	assert.Error(t, err)
	assert.Nil(t, b)
	assert.Contains(t, err.Error(), "failed to connect to NATS")
}

func TestBridge_Run_CreateConsumerError(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	config := testConfig()
	b := newTestBridge(t, mocks, config)

	mocks.jetStream.
		EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), config.StreamName, gomock.Any()).
		Return(nil, assert.AnError)

	err := b.Run(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create/update consumer")
}

func TestBridge_Run_ConsumerInfoError(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	config := testConfig()
	b := newTestBridge(t, mocks, config)

	mocks.jetStream.
		EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), config.StreamName, gomock.Any()).
		Return(mocks.consumer, nil)
	mocks.consumer.
		EXPECT().
		Info(gomock.Any()).
		Return(nil, assert.AnError)

	err := b.Run(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get consumer info")
}

func TestBridge_Run_ConsumeError(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	config := testConfig()
	b := newTestBridge(t, mocks, config)

	mocks.jetStream.
		EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), config.StreamName, gomock.Any()).
		Return(mocks.consumer, nil)
	mocks.consumer.
		EXPECT().
		Info(gomock.Any()).
		Return(&jetstream.ConsumerInfo{Name: config.ConsumerName}, nil)
	mocks.consumer.
		EXPECT().
		Consume(gomock.Any()).
		Return(nil, assert.AnError)

	err := b.Run(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create subscription")
}

func TestBridge_HandleMessage_AcksDeliveredEvent(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	msg := mockspkg.NewMockJetStreamMessage(mocks.ctrl)
	settled := make(chan struct{})

	msg.EXPECT().Data().Return(mintEventJSON())
	msg.EXPECT().Metadata().Return(&jetstream.MsgMetadata{NumDelivered: 1}, nil)
	mocks.notifier.
		EXPECT().
		Notify(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *domain.LedgerEvent) error {
			assert.Equal(t, "01JG8XAMPLE1234567890123456", event.EventID)
			assert.Equal(t, domain.EventTypeMint, event.EventType)
			assert.Equal(t, uint64(1), event.TokenID)
			return nil
		})
	msg.EXPECT().Ack().DoAndReturn(func() error {
		close(settled)
		return nil
	})

	runWithMessage(t, mocks, msg, settled)
}

func TestBridge_HandleMessage_NaksOnNotifyFailure(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	msg := mockspkg.NewMockJetStreamMessage(mocks.ctrl)
	settled := make(chan struct{})

	msg.EXPECT().Data().Return(mintEventJSON())
	msg.EXPECT().Metadata().Return(&jetstream.MsgMetadata{NumDelivered: 2}, nil)
	mocks.notifier.
		EXPECT().
		Notify(gomock.Any(), gomock.Any()).
		Return(assert.AnError)
	msg.EXPECT().Nak().DoAndReturn(func() error {
		close(settled)
		return nil
	})

	runWithMessage(t, mocks, msg, settled)
}

func TestBridge_HandleMessage_TermsUnknownEventType(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	msg := mockspkg.NewMockJetStreamMessage(mocks.ctrl)
	settled := make(chan struct{})

	msg.EXPECT().Data().Return(mintEventJSON())
	msg.EXPECT().Metadata().Return(nil, assert.AnError)
	mocks.notifier.
		EXPECT().
		Notify(gomock.Any(), gomock.Any()).
		Return(notifier.ErrUnknownEventType)
	msg.EXPECT().Term().DoAndReturn(func() error {
		close(settled)
		return nil
	})

	runWithMessage(t, mocks, msg, settled)
}

func TestBridge_HandleMessage_TermsInvalidJSON(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	msg := mockspkg.NewMockJetStreamMessage(mocks.ctrl)
	settled := make(chan struct{})

	msg.EXPECT().Data().Return([]byte("{not json"))
	msg.EXPECT().Subject().Return("ledger.0xbc4c.mint")
	msg.EXPECT().Term().DoAndReturn(func() error {
		close(settled)
		return nil
	})

	runWithMessage(t, mocks, msg, settled)
}

func TestBridge_Close(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	b := newTestBridge(t, mocks, testConfig())

	mocks.natsConn.EXPECT().Drain().Return(assert.AnError)
	mocks.natsConn.EXPECT().Close()

	b.Close()
}
