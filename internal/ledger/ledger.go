package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/feral-file/ff-nft-ledger/internal/adapter"
	"github.com/feral-file/ff-nft-ledger/internal/domain"
	"github.com/feral-file/ff-nft-ledger/internal/logger"
	"github.com/feral-file/ff-nft-ledger/internal/messaging"
	"github.com/feral-file/ff-nft-ledger/internal/metrics"
	"github.com/feral-file/ff-nft-ledger/internal/store"
)

// Config holds the immutable parameters of a collection
type Config struct {
	// Contract is the collection address; derived from Admin when empty
	Contract string
	// Chain defaults to Sepolia when empty
	Chain     domain.Chain
	Name      string
	Symbol    string
	MaxSupply uint64
	// Admin is the only account allowed to mint
	Admin string
	// BaseURI and URISuffix wrap the decimal token id; both default when both are empty
	BaseURI   string
	URISuffix string
}

// EventFilter narrows journal queries
type EventFilter struct {
	TokenID *uint64
	Address *string
	Limit   int
	Offset  uint64
}

// Ledger is a capped-supply token ledger.
// Every mutation is atomic: it either fully applies and journals exactly one event, or changes nothing.
//
//go:generate mockgen -source=ledger.go -destination=../mocks/ledger.go -package=mocks -mock_names=Ledger=MockLedger
type Ledger interface {
	// Name returns the collection name
	Name() string
	// Symbol returns the collection symbol
	Symbol() string
	// MaxSupply returns the supply cap
	MaxSupply() uint64
	// Admin returns the minting account
	Admin() string
	// Contract returns the collection address
	Contract() string
	// Collection returns the collection with its current total supply
	Collection(ctx context.Context) (*domain.Collection, error)
	// TotalSupply returns the number of minted tokens
	TotalSupply(ctx context.Context) (uint64, error)

	// Mint creates tokenID owned by to; only the admin may mint
	Mint(ctx context.Context, caller string, to string, tokenID uint64) (*domain.LedgerEvent, error)
	// Approve lets approved transfer tokenID on the owner's behalf; the zero address clears it
	Approve(ctx context.Context, caller string, approved string, tokenID uint64) (*domain.LedgerEvent, error)
	// TransferFrom moves tokenID from its owner to another account and clears its approval
	TransferFrom(ctx context.Context, caller string, from string, to string, tokenID uint64) (*domain.LedgerEvent, error)

	// BalanceOf returns the number of tokens an account owns, 0 for unknown accounts
	BalanceOf(ctx context.Context, owner string) (uint64, error)
	// OwnerOf returns the owner of a minted token
	OwnerOf(ctx context.Context, tokenID uint64) (string, error)
	// GetApproved returns the approved account of a minted token, empty when none
	GetApproved(ctx context.Context, tokenID uint64) (string, error)
	// TokenURI returns the metadata locator of a minted token
	TokenURI(ctx context.Context, tokenID uint64) (string, error)
	// Token returns a minted token
	Token(ctx context.Context, tokenID uint64) (*domain.Token, error)
	// TokensOfOwner returns a page of an account's tokens ordered by id, with the total count
	TokensOfOwner(ctx context.Context, owner string, limit int, offset uint64) ([]*domain.Token, uint64, error)
	// Events returns a page of journal entries ordered by sequence, with the total count
	Events(ctx context.Context, filter EventFilter) ([]*domain.LedgerEvent, uint64, error)
}

type ledger struct {
	// mu serializes mutations issued through this instance
	mu sync.Mutex

	params    domain.Collection
	store     store.Store
	publisher messaging.Publisher
	clock     adapter.Clock
	json      adapter.JSON
	jcs       adapter.JCS
	metrics   *metrics.Metrics
}

// Initialize creates the collection, or reloads it when it was persisted before.
// A persisted collection whose immutable parameters differ from cfg yields ErrCollectionMismatch.
func Initialize(
	ctx context.Context,
	cfg Config,
	st store.Store,
	publisher messaging.Publisher,
	clock adapter.Clock,
	jsonAdapter adapter.JSON,
	jcsAdapter adapter.JCS,
	m *metrics.Metrics,
) (Ledger, error) {
	params, err := cfg.collection()
	if err != nil {
		return nil, err
	}
	params.CreatedAt = clock.Now()

	stored, err := st.CreateCollection(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize collection: %w", err)
	}
	if !stored.SameParams(params) {
		return nil, fmt.Errorf("%w: stored collection %s (%s/%s, max %d, admin %s) differs from configuration",
			domain.ErrCollectionMismatch, stored.Contract, stored.Name, stored.Symbol, stored.MaxSupply, stored.Admin)
	}

	if publisher == nil {
		publisher = messaging.NopPublisher{}
	}

	l := &ledger{
		params:    *stored,
		store:     st,
		publisher: publisher,
		clock:     clock,
		json:      jsonAdapter,
		jcs:       jcsAdapter,
		metrics:   m,
	}
	m.SetTotalSupply(stored.Contract, stored.TotalSupply)

	logger.InfoCtx(ctx, "Collection initialized",
		zap.String("contract", stored.Contract),
		zap.String("chain", string(stored.Chain)),
		zap.String("name", stored.Name),
		zap.String("symbol", stored.Symbol),
		zap.Uint64("maxSupply", stored.MaxSupply),
		zap.Uint64("totalSupply", stored.TotalSupply),
		zap.String("admin", stored.Admin))

	return l, nil
}

// collection validates the configuration and builds the collection it describes
func (cfg Config) collection() (*domain.Collection, error) {
	admin, err := domain.ParseAddress(cfg.Admin)
	if err != nil {
		return nil, fmt.Errorf("invalid admin: %w", err)
	}
	if domain.IsZeroAddress(admin) {
		return nil, fmt.Errorf("invalid admin: %w: zero address", domain.ErrInvalidAddress)
	}

	contract := domain.ContractAddressFor(admin)
	if cfg.Contract != "" {
		contract, err = domain.ParseAddress(cfg.Contract)
		if err != nil {
			return nil, fmt.Errorf("invalid contract: %w", err)
		}
	}

	chain := cfg.Chain
	if chain == "" {
		chain = domain.ChainEthereumSepolia
	}
	if !domain.IsValidChain(chain) {
		return nil, fmt.Errorf("unsupported chain: %s", chain)
	}

	baseURI, suffix := cfg.BaseURI, cfg.URISuffix
	if baseURI == "" && suffix == "" {
		baseURI, suffix = domain.DEFAULT_BASE_URI, domain.DEFAULT_URI_SUFFIX
	}

	return &domain.Collection{
		Contract:  contract,
		Chain:     chain,
		Name:      cfg.Name,
		Symbol:    cfg.Symbol,
		MaxSupply: cfg.MaxSupply,
		Admin:     admin,
		BaseURI:   baseURI,
		URISuffix: suffix,
	}, nil
}

func (l *ledger) Name() string      { return l.params.Name }
func (l *ledger) Symbol() string    { return l.params.Symbol }
func (l *ledger) MaxSupply() uint64 { return l.params.MaxSupply }
func (l *ledger) Admin() string     { return l.params.Admin }
func (l *ledger) Contract() string  { return l.params.Contract }

// Collection returns the collection with its current total supply
func (l *ledger) Collection(ctx context.Context) (*domain.Collection, error) {
	c, err := l.store.GetCollection(ctx, l.params.Contract)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("collection %s not found", l.params.Contract)
	}
	return c, nil
}

// TotalSupply returns the number of minted tokens
func (l *ledger) TotalSupply(ctx context.Context) (uint64, error) {
	c, err := l.Collection(ctx)
	if err != nil {
		return 0, err
	}
	return c.TotalSupply, nil
}

// Mint creates tokenID owned by to
func (l *ledger) Mint(ctx context.Context, caller string, to string, tokenID uint64) (*domain.LedgerEvent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	event, err := l.mint(ctx, caller, to, tokenID)
	l.metrics.RecordOperation(string(domain.EventTypeMint), resultLabel(err))
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Token minted",
		zap.Uint64("tokenID", tokenID),
		zap.String("to", event.To),
		zap.Uint64("sequence", event.Sequence))
	l.publish(ctx, event)
	return event, nil
}

func (l *ledger) mint(ctx context.Context, caller string, to string, tokenID uint64) (*domain.LedgerEvent, error) {
	if domain.NormalizeAddress(caller) != l.params.Admin {
		return nil, fmt.Errorf("%w: only the admin can mint", domain.ErrUnauthorized)
	}
	recipient, err := parseRecipient(to)
	if err != nil {
		return nil, err
	}
	if tokenID == 0 {
		return nil, fmt.Errorf("%w: token id must be positive", domain.ErrInvalidTokenID)
	}

	var event *domain.LedgerEvent
	var supply uint64
	err = l.store.WithTx(ctx, func(tx store.Tx) error {
		c, err := l.lock(ctx, tx)
		if err != nil {
			return err
		}

		existing, err := tx.GetToken(ctx, c.Contract, tokenID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: token %d", domain.ErrAlreadyMinted, tokenID)
		}
		if c.TotalSupply >= c.MaxSupply {
			return fmt.Errorf("%w: max supply %d reached", domain.ErrSupplyExceeded, c.MaxSupply)
		}

		now := l.clock.Now()
		token := &domain.Token{
			Contract:  c.Contract,
			TokenID:   tokenID,
			Owner:     recipient,
			MintedAt:  now,
			UpdatedAt: now,
		}
		if err := tx.CreateToken(ctx, token); err != nil {
			return err
		}

		event, err = l.newEvent(c, domain.EventTypeMint, tokenID, l.params.Admin, now)
		if err != nil {
			return err
		}
		event.From = domain.ETHEREUM_ZERO_ADDRESS
		event.To = recipient
		if err := l.seal(event); err != nil {
			return err
		}
		supply = c.TotalSupply + 1
		return tx.AppendEvent(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	l.metrics.SetTotalSupply(l.params.Contract, supply)
	return event, nil
}

// Approve lets approved transfer tokenID on the owner's behalf
func (l *ledger) Approve(ctx context.Context, caller string, approved string, tokenID uint64) (*domain.LedgerEvent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	event, err := l.approve(ctx, caller, approved, tokenID)
	l.metrics.RecordOperation(string(domain.EventTypeApproval), resultLabel(err))
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Token approval updated",
		zap.Uint64("tokenID", tokenID),
		zap.String("approved", event.Approved),
		zap.Uint64("sequence", event.Sequence))
	l.publish(ctx, event)
	return event, nil
}

func (l *ledger) approve(ctx context.Context, caller string, approved string, tokenID uint64) (*domain.LedgerEvent, error) {
	spender, err := domain.ParseAddress(approved)
	if err != nil {
		return nil, err
	}

	var event *domain.LedgerEvent
	err = l.store.WithTx(ctx, func(tx store.Tx) error {
		c, err := l.lock(ctx, tx)
		if err != nil {
			return err
		}

		token, err := l.existingToken(ctx, tx, c.Contract, tokenID)
		if err != nil {
			return err
		}
		if domain.NormalizeAddress(caller) != token.Owner {
			return fmt.Errorf("%w: only the owner can approve token %d", domain.ErrUnauthorized, tokenID)
		}

		var approvedAddr *string
		if !domain.IsZeroAddress(spender) {
			approvedAddr = &spender
		}

		now := l.clock.Now()
		token.UpdatedAt = now
		if err := tx.UpdateApproval(ctx, token, approvedAddr); err != nil {
			return err
		}

		event, err = l.newEvent(c, domain.EventTypeApproval, tokenID, token.Owner, now)
		if err != nil {
			return err
		}
		event.From = token.Owner
		event.Approved = spender
		if err := l.seal(event); err != nil {
			return err
		}
		return tx.AppendEvent(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

// TransferFrom moves tokenID from its owner to another account
func (l *ledger) TransferFrom(ctx context.Context, caller string, from string, to string, tokenID uint64) (*domain.LedgerEvent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	event, err := l.transferFrom(ctx, caller, from, to, tokenID)
	l.metrics.RecordOperation(string(domain.EventTypeTransfer), resultLabel(err))
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Token transferred",
		zap.Uint64("tokenID", tokenID),
		zap.String("from", event.From),
		zap.String("to", event.To),
		zap.Uint64("sequence", event.Sequence))
	l.publish(ctx, event)
	return event, nil
}

func (l *ledger) transferFrom(ctx context.Context, caller string, from string, to string, tokenID uint64) (*domain.LedgerEvent, error) {
	var event *domain.LedgerEvent
	err := l.store.WithTx(ctx, func(tx store.Tx) error {
		c, err := l.lock(ctx, tx)
		if err != nil {
			return err
		}

		token, err := l.existingToken(ctx, tx, c.Contract, tokenID)
		if err != nil {
			return err
		}
		owner := token.Owner
		if domain.NormalizeAddress(from) != owner {
			return fmt.Errorf("%w: %s does not own token %d", domain.ErrUnauthorized, from, tokenID)
		}
		sender := domain.NormalizeAddress(caller)
		if sender != owner && sender != token.ApprovedAddress() {
			return fmt.Errorf("%w: caller is neither owner nor approved for token %d", domain.ErrUnauthorized, tokenID)
		}
		recipient, err := parseRecipient(to)
		if err != nil {
			return err
		}

		now := l.clock.Now()
		token.UpdatedAt = now
		if err := tx.UpdateOwner(ctx, token, owner, recipient); err != nil {
			return err
		}

		event, err = l.newEvent(c, domain.EventTypeTransfer, tokenID, sender, now)
		if err != nil {
			return err
		}
		event.From = owner
		event.To = recipient
		if err := l.seal(event); err != nil {
			return err
		}
		return tx.AppendEvent(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

// BalanceOf returns the number of tokens an account owns
func (l *ledger) BalanceOf(ctx context.Context, owner string) (uint64, error) {
	account, err := domain.ParseAddress(owner)
	if err != nil {
		return 0, err
	}

	balance, err := l.store.GetBalance(ctx, l.params.Contract, account)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

// OwnerOf returns the owner of a minted token
func (l *ledger) OwnerOf(ctx context.Context, tokenID uint64) (string, error) {
	token, err := l.Token(ctx, tokenID)
	if err != nil {
		return "", err
	}
	return token.Owner, nil
}

// GetApproved returns the approved account of a minted token
func (l *ledger) GetApproved(ctx context.Context, tokenID uint64) (string, error) {
	token, err := l.Token(ctx, tokenID)
	if err != nil {
		return "", err
	}
	return token.ApprovedAddress(), nil
}

// TokenURI returns the metadata locator of a minted token
func (l *ledger) TokenURI(ctx context.Context, tokenID uint64) (string, error) {
	if _, err := l.Token(ctx, tokenID); err != nil {
		return "", err
	}
	return l.params.TokenURI(tokenID), nil
}

// Token returns a minted token
func (l *ledger) Token(ctx context.Context, tokenID uint64) (*domain.Token, error) {
	token, err := l.store.GetToken(ctx, l.params.Contract, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	if token == nil {
		return nil, fmt.Errorf("%w: token %d", domain.ErrNonexistentToken, tokenID)
	}
	return token, nil
}

// TokensOfOwner returns a page of an account's tokens ordered by id
func (l *ledger) TokensOfOwner(ctx context.Context, owner string, limit int, offset uint64) ([]*domain.Token, uint64, error) {
	account, err := domain.ParseAddress(owner)
	if err != nil {
		return nil, 0, err
	}

	tokens, total, err := l.store.GetTokensByOwner(ctx, l.params.Contract, account, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get tokens of owner: %w", err)
	}
	return tokens, total, nil
}

// Events returns a page of journal entries ordered by sequence
func (l *ledger) Events(ctx context.Context, filter EventFilter) ([]*domain.LedgerEvent, uint64, error) {
	query := store.EventQueryFilter{
		Contract: l.params.Contract,
		TokenID:  filter.TokenID,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	}
	if filter.Address != nil {
		account, err := domain.ParseAddress(*filter.Address)
		if err != nil {
			return nil, 0, err
		}
		query.Address = &account
	}

	events, total, err := l.store.GetEvents(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get events: %w", err)
	}
	return events, total, nil
}

// lock takes the collection row for the rest of the unit
func (l *ledger) lock(ctx context.Context, tx store.Tx) (*domain.Collection, error) {
	c, err := tx.LockCollection(ctx, l.params.Contract)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("collection %s not found", l.params.Contract)
	}
	return c, nil
}

func (l *ledger) existingToken(ctx context.Context, tx store.Tx, contract string, tokenID uint64) (*domain.Token, error) {
	token, err := tx.GetToken(ctx, contract, tokenID)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, fmt.Errorf("%w: token %d", domain.ErrNonexistentToken, tokenID)
	}
	return token, nil
}

// publish hands a committed event to the broker; failures never undo the mutation
func (l *ledger) publish(ctx context.Context, event *domain.LedgerEvent) {
	err := l.publisher.PublishEvent(ctx, event)
	l.metrics.RecordPublish(err)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to publish ledger event",
			zap.Error(err),
			zap.String("eventID", event.EventID),
			zap.String("eventType", string(event.EventType)))
	}
}

// parseRecipient validates an account that is about to receive a token
func parseRecipient(to string) (string, error) {
	recipient, err := domain.ParseAddress(to)
	if err != nil {
		return "", err
	}
	if domain.IsZeroAddress(recipient) {
		return "", fmt.Errorf("%w: cannot send to the zero address", domain.ErrInvalidAddress)
	}
	return recipient, nil
}

// resultLabel classifies an operation outcome for metrics
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrAlreadyMinted):
		return "already_minted"
	case errors.Is(err, domain.ErrSupplyExceeded):
		return "supply_exceeded"
	case errors.Is(err, domain.ErrNonexistentToken):
		return "nonexistent_token"
	case errors.Is(err, domain.ErrInvalidAddress), errors.Is(err, domain.ErrInvalidTokenID):
		return "invalid_argument"
	default:
		return "error"
	}
}
