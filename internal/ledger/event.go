package ledger

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/oklog/ulid/v2"

	"github.com/feral-file/ff-nft-ledger/internal/domain"
)

// newEvent builds the next journal entry of a locked collection
func (l *ledger) newEvent(c *domain.Collection, eventType domain.EventType, tokenID uint64, caller string, at time.Time) (*domain.LedgerEvent, error) {
	id, err := ulid.New(ulid.Timestamp(at), ulid.DefaultEntropy())
	if err != nil {
		return nil, fmt.Errorf("failed to generate event id: %w", err)
	}

	return &domain.LedgerEvent{
		EventID:   id.String(),
		Contract:  c.Contract,
		Chain:     c.Chain,
		Sequence:  c.EventSeq + 1,
		EventType: eventType,
		TokenID:   tokenID,
		Caller:    caller,
		Timestamp: at,
	}, nil
}

// seal sets the event's tx hash: keccak256 over the canonical JSON of the event without its hash
func (l *ledger) seal(event *domain.LedgerEvent) error {
	event.TxHash = ""
	body, err := l.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	canonical, err := l.jcs.Transform(body)
	if err != nil {
		return fmt.Errorf("failed to canonicalize event: %w", err)
	}

	event.TxHash = crypto.Keccak256Hash(canonical).Hex()
	return nil
}
