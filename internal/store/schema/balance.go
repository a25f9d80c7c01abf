package schema

import (
	"time"
)

// Balance represents the balances table - number of tokens each address holds in a collection
type Balance struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Contract references the collection
	Contract string `gorm:"column:contract;not null;type:text;uniqueIndex:idx_balances_contract_owner,priority:1"`
	// OwnerAddress is the holder's address
	OwnerAddress string `gorm:"column:owner_address;not null;type:text;uniqueIndex:idx_balances_contract_owner,priority:2"`
	// Quantity is the number of tokens held
	Quantity int64 `gorm:"column:quantity;not null;default:0;check:quantity >= 0"`
	// CreatedAt is the timestamp when this balance was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this balance was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Balance model
func (Balance) TableName() string {
	return "balances"
}
