package store

import (
	"context"

	"gorm.io/datatypes"

	"github.com/feral-file/ff-nft-ledger/internal/domain"
	"github.com/feral-file/ff-nft-ledger/internal/store/schema"
)

// Store defines the interface for ledger persistence
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore,Tx=MockTx
type Store interface {
	// CreateCollection persists a collection if absent and returns the stored collection
	CreateCollection(ctx context.Context, collection *domain.Collection) (*domain.Collection, error)
	// GetCollection retrieves a collection by contract address, nil if absent
	GetCollection(ctx context.Context, contract string) (*domain.Collection, error)
	// GetToken retrieves a token, nil if it was never minted
	GetToken(ctx context.Context, contract string, tokenID uint64) (*domain.Token, error)
	// GetBalance returns the number of tokens owned by an address, 0 if unknown
	GetBalance(ctx context.Context, contract string, owner string) (uint64, error)
	// GetTokensByOwner retrieves the tokens owned by an address ordered by token id
	GetTokensByOwner(ctx context.Context, contract string, owner string, limit int, offset uint64) ([]*domain.Token, uint64, error)
	// GetEvents retrieves journal entries ordered by sequence
	GetEvents(ctx context.Context, filter EventQueryFilter) ([]*domain.LedgerEvent, uint64, error)
	// WithTx runs fn atomically; no change is visible unless fn returns nil
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// CreateWebhookClient registers a webhook client
	CreateWebhookClient(ctx context.Context, input CreateWebhookClientInput) (*schema.WebhookClient, error)
	// GetActiveWebhookClientsByEventType retrieves active clients subscribed to the event type or to "*"
	GetActiveWebhookClientsByEventType(ctx context.Context, eventType string) ([]*schema.WebhookClient, error)
}

// Tx is the set of operations available inside an atomic unit.
// LockCollection must be called first; it serializes writers of the same collection.
type Tx interface {
	// LockCollection loads the collection and holds it for the remainder of the unit
	LockCollection(ctx context.Context, contract string) (*domain.Collection, error)
	// GetToken retrieves a token, nil if it was never minted
	GetToken(ctx context.Context, contract string, tokenID uint64) (*domain.Token, error)
	// CreateToken inserts a token, credits its owner and increments total supply
	CreateToken(ctx context.Context, token *domain.Token) error
	// UpdateOwner moves a token between owners and clears its approval
	UpdateOwner(ctx context.Context, token *domain.Token, from string, to string) error
	// UpdateApproval sets or clears the approved address of a token
	UpdateApproval(ctx context.Context, token *domain.Token, approved *string) error
	// AppendEvent journals an event and advances the collection's event sequence to event.Sequence
	AppendEvent(ctx context.Context, event *domain.LedgerEvent) error
}

// EventQueryFilter represents filtering options for journal queries
type EventQueryFilter struct {
	Contract string
	TokenID  *uint64
	Address  *string
	Limit    int
	Offset   uint64
}

// CreateWebhookClientInput represents the input for registering a webhook client
type CreateWebhookClientInput struct {
	ClientID         string
	WebhookURL       string
	WebhookSecret    string
	EventFilters     datatypes.JSON
	IsActive         bool
	RetryMaxAttempts int
}
