package dto

import (
	"time"

	"github.com/feral-file/ff-nft-ledger/internal/domain"
)

// CollectionResponse represents the collection and its current supply
type CollectionResponse struct {
	Contract    string       `json:"contract"`
	Chain       domain.Chain `json:"chain"`
	Name        string       `json:"name"`
	Symbol      string       `json:"symbol"`
	MaxSupply   uint64       `json:"max_supply"`
	TotalSupply uint64       `json:"total_supply"`
	Admin       string       `json:"admin"`
	CreatedAt   time.Time    `json:"created_at"`
}

// TokenResponse represents a minted token
type TokenResponse struct {
	TokenCID  string    `json:"token_cid"`
	TokenID   uint64    `json:"token_id"`
	Owner     string    `json:"owner"`
	Approved  *string   `json:"approved"`
	TokenURI  string    `json:"token_uri"`
	MintedAt  time.Time `json:"minted_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TokenListResponse represents a page of tokens
type TokenListResponse struct {
	Tokens []TokenResponse `json:"items"`
	Offset uint64          `json:"offset"`
	Total  uint64          `json:"total"`
}

// BalanceResponse represents the balance of an account
type BalanceResponse struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}

// OwnerResponse represents the owner of a token
type OwnerResponse struct {
	TokenID uint64 `json:"token_id"`
	Owner   string `json:"owner"`
}

// ApprovedResponse represents the approved account of a token; empty when none
type ApprovedResponse struct {
	TokenID  uint64 `json:"token_id"`
	Approved string `json:"approved"`
}

// TokenURIResponse represents the metadata locator of a token
type TokenURIResponse struct {
	TokenID  uint64 `json:"token_id"`
	TokenURI string `json:"token_uri"`
}

// EventResponse represents a ledger journal entry
type EventResponse struct {
	EventID   string           `json:"event_id"`
	Sequence  uint64           `json:"sequence"`
	EventType domain.EventType `json:"event_type"`
	TokenCID  string           `json:"token_cid"`
	TokenID   uint64           `json:"token_id"`
	Caller    string           `json:"caller"`
	From      string           `json:"from,omitempty"`
	To        string           `json:"to,omitempty"`
	Approved  string           `json:"approved,omitempty"`
	TxHash    string           `json:"tx_hash"`
	Timestamp time.Time        `json:"timestamp"`
}

// EventListResponse represents a page of journal entries
type EventListResponse struct {
	Events []EventResponse `json:"items"`
	Offset uint64          `json:"offset"`
	Total  uint64          `json:"total"`
}

// CreateWebhookClientResponse represents the response for creating a webhook client.
// The secret is only ever returned here.
type CreateWebhookClientResponse struct {
	ClientID         string    `json:"client_id"`
	WebhookURL       string    `json:"webhook_url"`
	WebhookSecret    string    `json:"webhook_secret"`
	EventFilters     []string  `json:"event_filters"`
	IsActive         bool      `json:"is_active"`
	RetryMaxAttempts int       `json:"retry_max_attempts"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// MapCollectionToDTO maps a domain.Collection to CollectionResponse
func MapCollectionToDTO(c *domain.Collection) *CollectionResponse {
	return &CollectionResponse{
		Contract:    c.Contract,
		Chain:       c.Chain,
		Name:        c.Name,
		Symbol:      c.Symbol,
		MaxSupply:   c.MaxSupply,
		TotalSupply: c.TotalSupply,
		Admin:       c.Admin,
		CreatedAt:   c.CreatedAt,
	}
}

// MapTokenToDTO maps a domain.Token to TokenResponse
func MapTokenToDTO(c *domain.Collection, t *domain.Token) *TokenResponse {
	return &TokenResponse{
		TokenCID:  c.TokenCID(t.TokenID).String(),
		TokenID:   t.TokenID,
		Owner:     t.Owner,
		Approved:  t.Approved,
		TokenURI:  c.TokenURI(t.TokenID),
		MintedAt:  t.MintedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// MapEventToDTO maps a domain.LedgerEvent to EventResponse
func MapEventToDTO(e *domain.LedgerEvent) *EventResponse {
	return &EventResponse{
		EventID:   e.EventID,
		Sequence:  e.Sequence,
		EventType: e.EventType,
		TokenCID:  e.TokenCID().String(),
		TokenID:   e.TokenID,
		Caller:    e.Caller,
		From:      e.From,
		To:        e.To,
		Approved:  e.Approved,
		TxHash:    e.TxHash,
		Timestamp: e.Timestamp,
	}
}
