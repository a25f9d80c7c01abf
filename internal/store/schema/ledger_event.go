package schema

import (
	"time"

	"gorm.io/datatypes"
)

// LedgerEventType represents the type of ledger mutation
type LedgerEventType string

const (
	// LedgerEventTypeMint indicates token creation
	LedgerEventTypeMint LedgerEventType = "mint"
	// LedgerEventTypeTransfer indicates token ownership transfer
	LedgerEventTypeTransfer LedgerEventType = "transfer"
	// LedgerEventTypeApproval indicates a single-token approval change
	LedgerEventTypeApproval LedgerEventType = "approval"
)

// LedgerEvent represents the ledger_events table - append-only journal of successful mutations
type LedgerEvent struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// EventID is the ULID assigned when the event was produced
	EventID string `gorm:"column:event_id;not null;uniqueIndex;type:text"`
	// Contract references the collection
	Contract string `gorm:"column:contract;not null;type:text;uniqueIndex:idx_ledger_events_contract_seq,priority:1;index:idx_ledger_events_contract_token,priority:1"`
	// Sequence orders events within a collection, starting at 1
	Sequence int64 `gorm:"column:sequence;not null;uniqueIndex:idx_ledger_events_contract_seq,priority:2"`
	// EventType identifies the mutation
	EventType LedgerEventType `gorm:"column:event_type;not null;type:text"`
	// TokenNumber is the token id the event relates to
	TokenNumber string `gorm:"column:token_number;not null;type:text;index:idx_ledger_events_contract_token,priority:2"`
	// Caller is the address that performed the operation
	Caller string `gorm:"column:caller;not null;type:text"`
	// FromAddress is the previous owner (zero address for mints)
	FromAddress *string `gorm:"column:from_address;type:text"`
	// ToAddress is the new owner
	ToAddress *string `gorm:"column:to_address;type:text"`
	// ApprovedAddress is the newly approved address for approval events
	ApprovedAddress *string `gorm:"column:approved_address;type:text"`
	// TxHash is the keccak256 hash of the canonical event body
	TxHash string `gorm:"column:tx_hash;not null;type:text"`
	// Timestamp is when the mutation was applied
	Timestamp time.Time `gorm:"column:timestamp;not null;type:timestamptz"`
	// Payload contains the complete event as JSON
	Payload datatypes.JSON `gorm:"column:payload;type:jsonb"`
	// CreatedAt is the timestamp when this record was written
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the LedgerEvent model
func (LedgerEvent) TableName() string {
	return "ledger_events"
}
