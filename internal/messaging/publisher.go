package messaging

import (
	"context"

	"github.com/feral-file/ff-nft-ledger/internal/domain"
)

// Publisher defines the interface for publishing ledger events to a message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a committed ledger event
	PublishEvent(ctx context.Context, event *domain.LedgerEvent) error
	// Close closes the connection
	Close()
}

// NopPublisher drops every event; used when no broker is configured
type NopPublisher struct{}

// PublishEvent does nothing
func (NopPublisher) PublishEvent(ctx context.Context, event *domain.LedgerEvent) error {
	return nil
}

// Close does nothing
func (NopPublisher) Close() {}
