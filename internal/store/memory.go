package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/feral-file/ff-nft-ledger/internal/domain"
	"github.com/feral-file/ff-nft-ledger/internal/store/schema"
)

type tokenKey struct {
	contract string
	tokenID  uint64
}

type balanceKey struct {
	contract string
	owner    string
}

type memoryStore struct {
	mu             sync.RWMutex
	collections    map[string]*domain.Collection
	tokens         map[tokenKey]*domain.Token
	balances       map[balanceKey]uint64
	events         map[string][]*domain.LedgerEvent
	webhookClients []*schema.WebhookClient
	nextClientID   uint64
}

// NewMemoryStore creates a store that keeps the whole ledger in process memory
func NewMemoryStore() Store {
	return &memoryStore{
		collections: make(map[string]*domain.Collection),
		tokens:      make(map[tokenKey]*domain.Token),
		balances:    make(map[balanceKey]uint64),
		events:      make(map[string][]*domain.LedgerEvent),
	}
}

// CreateCollection persists a collection if absent and returns the stored collection
func (s *memoryStore) CreateCollection(ctx context.Context, collection *domain.Collection) (*domain.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.collections[collection.Contract]; ok {
		return copyCollection(existing), nil
	}

	c := copyCollection(collection)
	s.collections[c.Contract] = c
	return copyCollection(c), nil
}

// GetCollection retrieves a collection by contract address
func (s *memoryStore) GetCollection(ctx context.Context, contract string) (*domain.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[contract]
	if !ok {
		return nil, nil
	}
	return copyCollection(c), nil
}

// GetToken retrieves a token
func (s *memoryStore) GetToken(ctx context.Context, contract string, tokenID uint64) (*domain.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tokens[tokenKey{contract, tokenID}]
	if !ok {
		return nil, nil
	}
	return copyToken(t), nil
}

// GetBalance returns the number of tokens owned by an address
func (s *memoryStore) GetBalance(ctx context.Context, contract string, owner string) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.balances[balanceKey{contract, owner}], nil
}

// GetTokensByOwner retrieves the tokens owned by an address ordered by token id
func (s *memoryStore) GetTokensByOwner(ctx context.Context, contract string, owner string, limit int, offset uint64) ([]*domain.Token, uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var owned []*domain.Token
	for k, t := range s.tokens {
		if k.contract == contract && t.Owner == owner {
			owned = append(owned, t)
		}
	}
	slices.SortFunc(owned, func(a, b *domain.Token) int {
		switch {
		case a.TokenID < b.TokenID:
			return -1
		case a.TokenID > b.TokenID:
			return 1
		}
		return 0
	})

	total := uint64(len(owned))
	page := paginate(owned, limit, offset)
	result := make([]*domain.Token, 0, len(page))
	for _, t := range page {
		result = append(result, copyToken(t))
	}
	return result, total, nil
}

// GetEvents retrieves journal entries ordered by sequence
func (s *memoryStore) GetEvents(ctx context.Context, filter EventQueryFilter) ([]*domain.LedgerEvent, uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*domain.LedgerEvent
	for _, e := range s.events[filter.Contract] {
		if filter.TokenID != nil && e.TokenID != *filter.TokenID {
			continue
		}
		if filter.Address != nil && !e.Involves(*filter.Address) {
			continue
		}
		matched = append(matched, e)
	}

	total := uint64(len(matched))
	page := paginate(matched, filter.Limit, filter.Offset)
	result := make([]*domain.LedgerEvent, 0, len(page))
	for _, e := range page {
		ev := *e
		result = append(result, &ev)
	}
	return result, total, nil
}

// WithTx runs fn while holding the store's write lock and applies its staged changes on success
func (s *memoryStore) WithTx(ctx context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{
		store:       s,
		collections: make(map[string]*domain.Collection),
		tokens:      make(map[tokenKey]*domain.Token),
		balances:    make(map[balanceKey]uint64),
		events:      make(map[string][]*domain.LedgerEvent),
	}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tx.commit()
	return nil
}

// CreateWebhookClient registers a webhook client
func (s *memoryStore) CreateWebhookClient(ctx context.Context, input CreateWebhookClientInput) (*schema.WebhookClient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.webhookClients {
		if c.ClientID == input.ClientID {
			return nil, fmt.Errorf("failed to create webhook client: client_id %s already exists", input.ClientID)
		}
	}

	s.nextClientID++
	now := time.Now()
	client := &schema.WebhookClient{
		ID:               s.nextClientID,
		ClientID:         input.ClientID,
		WebhookURL:       input.WebhookURL,
		WebhookSecret:    input.WebhookSecret,
		EventFilters:     input.EventFilters,
		IsActive:         input.IsActive,
		RetryMaxAttempts: input.RetryMaxAttempts,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	s.webhookClients = append(s.webhookClients, client)

	c := *client
	return &c, nil
}

// GetActiveWebhookClientsByEventType retrieves active clients subscribed to the event type or to "*"
func (s *memoryStore) GetActiveWebhookClientsByEventType(ctx context.Context, eventType string) ([]*schema.WebhookClient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var clients []*schema.WebhookClient
	for _, c := range s.webhookClients {
		if !c.IsActive {
			continue
		}
		var filters []string
		if err := json.Unmarshal(c.EventFilters, &filters); err != nil {
			return nil, fmt.Errorf("failed to parse event filters of client %s: %w", c.ClientID, err)
		}
		if slices.Contains(filters, eventType) || slices.Contains(filters, "*") {
			client := *c
			clients = append(clients, &client)
		}
	}
	return clients, nil
}

// memoryTx stages changes on top of the store; reads see staged values first
type memoryTx struct {
	store       *memoryStore
	collections map[string]*domain.Collection
	tokens      map[tokenKey]*domain.Token
	balances    map[balanceKey]uint64
	events      map[string][]*domain.LedgerEvent
}

func (tx *memoryTx) collection(contract string) (*domain.Collection, bool) {
	if c, ok := tx.collections[contract]; ok {
		return c, true
	}
	c, ok := tx.store.collections[contract]
	if !ok {
		return nil, false
	}
	staged := copyCollection(c)
	tx.collections[contract] = staged
	return staged, true
}

func (tx *memoryTx) balance(k balanceKey) uint64 {
	if b, ok := tx.balances[k]; ok {
		return b
	}
	return tx.store.balances[k]
}

func (tx *memoryTx) token(k tokenKey) (*domain.Token, bool) {
	if t, ok := tx.tokens[k]; ok {
		return t, true
	}
	t, ok := tx.store.tokens[k]
	return t, ok
}

// LockCollection loads the collection; the store lock is already held for the unit
func (tx *memoryTx) LockCollection(ctx context.Context, contract string) (*domain.Collection, error) {
	c, ok := tx.collection(contract)
	if !ok {
		return nil, nil
	}
	return copyCollection(c), nil
}

// GetToken retrieves a token, staged changes included
func (tx *memoryTx) GetToken(ctx context.Context, contract string, tokenID uint64) (*domain.Token, error) {
	t, ok := tx.token(tokenKey{contract, tokenID})
	if !ok {
		return nil, nil
	}
	return copyToken(t), nil
}

// CreateToken inserts a token, credits its owner and increments total supply
func (tx *memoryTx) CreateToken(ctx context.Context, token *domain.Token) error {
	k := tokenKey{token.Contract, token.TokenID}
	if _, exists := tx.token(k); exists {
		return fmt.Errorf("failed to create token: %w", domain.ErrAlreadyMinted)
	}

	c, ok := tx.collection(token.Contract)
	if !ok {
		return fmt.Errorf("failed to create token: collection %s not found", token.Contract)
	}
	if c.TotalSupply >= c.MaxSupply {
		return fmt.Errorf("failed to create token: %w", domain.ErrSupplyExceeded)
	}

	tx.tokens[k] = copyToken(token)
	bk := balanceKey{token.Contract, token.Owner}
	tx.balances[bk] = tx.balance(bk) + 1
	c.TotalSupply++
	return nil
}

// UpdateOwner moves a token between owners and clears its approval
func (tx *memoryTx) UpdateOwner(ctx context.Context, token *domain.Token, from string, to string) error {
	k := tokenKey{token.Contract, token.TokenID}
	current, ok := tx.token(k)
	if !ok || current.Owner != from {
		return fmt.Errorf("failed to update owner: %w", domain.ErrNonexistentToken)
	}

	fromKey := balanceKey{token.Contract, from}
	fromBalance := tx.balance(fromKey)
	if fromBalance == 0 {
		return fmt.Errorf("failed to update owner: balance of %s is zero", from)
	}
	tx.balances[fromKey] = fromBalance - 1
	toKey := balanceKey{token.Contract, to}
	tx.balances[toKey] = tx.balance(toKey) + 1

	updated := copyToken(current)
	updated.Owner = to
	updated.Approved = nil
	updated.UpdatedAt = token.UpdatedAt
	tx.tokens[k] = updated
	return nil
}

// UpdateApproval sets or clears the approved address of a token
func (tx *memoryTx) UpdateApproval(ctx context.Context, token *domain.Token, approved *string) error {
	k := tokenKey{token.Contract, token.TokenID}
	current, ok := tx.token(k)
	if !ok {
		return fmt.Errorf("failed to update approval: %w", domain.ErrNonexistentToken)
	}

	updated := copyToken(current)
	updated.Approved = nil
	if approved != nil {
		a := *approved
		updated.Approved = &a
	}
	updated.UpdatedAt = token.UpdatedAt
	tx.tokens[k] = updated
	return nil
}

// AppendEvent journals an event and advances the collection's event sequence
func (tx *memoryTx) AppendEvent(ctx context.Context, event *domain.LedgerEvent) error {
	c, ok := tx.collection(event.Contract)
	if !ok {
		return fmt.Errorf("failed to append event: collection %s not found", event.Contract)
	}
	if event.Sequence != c.EventSeq+1 {
		return fmt.Errorf("failed to append event: sequence %d does not follow %d", event.Sequence, c.EventSeq)
	}

	ev := *event
	tx.events[event.Contract] = append(tx.events[event.Contract], &ev)
	c.EventSeq = event.Sequence
	return nil
}

func (tx *memoryTx) commit() {
	s := tx.store
	for contract, c := range tx.collections {
		s.collections[contract] = c
	}
	for k, t := range tx.tokens {
		s.tokens[k] = t
	}
	for k, b := range tx.balances {
		if b == 0 {
			delete(s.balances, k)
			continue
		}
		s.balances[k] = b
	}
	for contract, events := range tx.events {
		s.events[contract] = append(s.events[contract], events...)
	}
}

func copyCollection(c *domain.Collection) *domain.Collection {
	cp := *c
	return &cp
}

func copyToken(t *domain.Token) *domain.Token {
	cp := *t
	if t.Approved != nil {
		a := *t.Approved
		cp.Approved = &a
	}
	return &cp
}

func paginate[T any](items []T, limit int, offset uint64) []T {
	if offset >= uint64(len(items)) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
