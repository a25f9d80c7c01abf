package webhook

import (
	"strconv"
	"time"

	"github.com/feral-file/ff-nft-ledger/internal/domain"
)

// Event type constants
const (
	// EventTypeTokenMinted is fired when the admin mints a token
	EventTypeTokenMinted = "token.minted"

	// EventTypeTokenTransferred is fired when a token changes owner
	EventTypeTokenTransferred = "token.transferred"

	// EventTypeTokenApproved is fired when a token's approval is set or cleared
	EventTypeTokenApproved = "token.approved"

	// EventTypeWildcard is a special filter that matches all event types
	EventTypeWildcard = "*"
)

// EventTypes lists every event type a client can subscribe to
var EventTypes = []string{
	EventTypeTokenMinted,
	EventTypeTokenTransferred,
	EventTypeTokenApproved,
}

// IsValidEventFilter checks whether a filter names a known event type or the wildcard
func IsValidEventFilter(filter string) bool {
	if filter == EventTypeWildcard {
		return true
	}
	for _, t := range EventTypes {
		if t == filter {
			return true
		}
	}
	return false
}

// EventTypeFor maps a ledger event type to its webhook event type
func EventTypeFor(eventType domain.EventType) string {
	switch eventType {
	case domain.EventTypeMint:
		return EventTypeTokenMinted
	case domain.EventTypeTransfer:
		return EventTypeTokenTransferred
	case domain.EventTypeApproval:
		return EventTypeTokenApproved
	default:
		return ""
	}
}

// WebhookEvent represents a webhook event to be delivered to clients
type WebhookEvent struct {
	// EventID is the ledger event id (ULID), stable across redeliveries
	EventID string `json:"event_id"`
	// EventType is the type of event (e.g., "token.minted")
	EventType string `json:"event_type"`
	// Timestamp is when the ledger applied the mutation
	Timestamp time.Time `json:"timestamp"`
	// Data contains the event-specific payload
	Data EventData `json:"data"`
}

// EventData contains the webhook event payload
type EventData struct {
	// TokenCID is the canonical token identifier (e.g., "eip155:1:erc721:0xabc...:1234")
	TokenCID string `json:"token_cid"`
	Chain    string `json:"chain"`
	Standard string `json:"standard"`
	Contract string `json:"contract"`
	// TokenNumber is the decimal token id within the contract
	TokenNumber string `json:"token_number"`
	// Sequence is the position of the event in the collection's journal
	Sequence uint64 `json:"sequence"`
	Caller   string `json:"caller"`
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
	Approved string `json:"approved,omitempty"`
	TxHash   string `json:"tx_hash"`
}

// NewWebhookEvent builds the webhook representation of a ledger event
func NewWebhookEvent(event *domain.LedgerEvent) WebhookEvent {
	return WebhookEvent{
		EventID:   event.EventID,
		EventType: EventTypeFor(event.EventType),
		Timestamp: event.Timestamp,
		Data: EventData{
			TokenCID:    event.TokenCID().String(),
			Chain:       string(event.Chain),
			Standard:    string(domain.StandardERC721),
			Contract:    event.Contract,
			TokenNumber: strconv.FormatUint(event.TokenID, 10),
			Sequence:    event.Sequence,
			Caller:      event.Caller,
			From:        event.From,
			To:          event.To,
			Approved:    event.Approved,
			TxHash:      event.TxHash,
		},
	}
}

// DeliveryResult represents the result of a webhook delivery attempt
type DeliveryResult struct {
	// Success indicates whether the delivery was successful
	Success bool
	// StatusCode is the HTTP status code returned by the webhook endpoint
	StatusCode int
	// Body is the response body (limited to 4KB)
	Body string
	// Error contains error details if delivery failed
	Error string
}
