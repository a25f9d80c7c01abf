package schema

import (
	"time"
)

// Collection represents the collections table - one row per capped-supply collection
type Collection struct {
	// Contract is the collection's contract address (EIP-55 checksum form)
	Contract string `gorm:"column:contract;primaryKey;type:text"`
	// Chain identifies the blockchain network (CAIP-2, e.g. "eip155:1")
	Chain string `gorm:"column:chain;not null;type:text"`
	// Name is the immutable collection name
	Name string `gorm:"column:name;not null;type:text"`
	// Symbol is the immutable collection symbol
	Symbol string `gorm:"column:symbol;not null;type:text"`
	// MaxSupply caps the number of tokens that can ever be minted
	MaxSupply int64 `gorm:"column:max_supply;not null;check:max_supply >= 0"`
	// TotalSupply is the number of minted tokens
	TotalSupply int64 `gorm:"column:total_supply;not null;default:0;check:total_supply <= max_supply"`
	// Admin is the only address allowed to mint
	Admin string `gorm:"column:admin;not null;type:text"`
	// BaseURI and URISuffix wrap the token id to build token URIs
	BaseURI   string `gorm:"column:base_uri;not null;type:text"`
	URISuffix string `gorm:"column:uri_suffix;not null;type:text"`
	// EventSeq is the sequence number of the last journaled event
	EventSeq int64 `gorm:"column:event_seq;not null;default:0"`
	// CreatedAt is the timestamp when the collection was initialized
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp of the last supply or sequence change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Collection model
func (Collection) TableName() string {
	return "collections"
}
