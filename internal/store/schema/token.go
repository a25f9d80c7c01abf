package schema

import (
	"time"
)

// Token represents the tokens table - one row per minted token
type Token struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Contract references the owning collection
	Contract string `gorm:"column:contract;not null;type:text;uniqueIndex:idx_tokens_contract_number,priority:1;index:idx_tokens_contract_owner,priority:1"`
	// TokenNumber is the token id within the collection (string to support the full uint64 range)
	TokenNumber string `gorm:"column:token_number;not null;type:text;uniqueIndex:idx_tokens_contract_number,priority:2"`
	// Owner is the current owner's address
	Owner string `gorm:"column:owner;not null;type:text;index:idx_tokens_contract_owner,priority:2"`
	// Approved is the address allowed to transfer this token on the owner's behalf
	Approved *string `gorm:"column:approved;type:text"`
	// MintedAt is the timestamp when the token was minted
	MintedAt time.Time `gorm:"column:minted_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp of the last ownership or approval change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Token model
func (Token) TableName() string {
	return "tokens"
}
