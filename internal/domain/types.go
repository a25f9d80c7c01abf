package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainEthereumMainnet Chain = "eip155:1"
	ChainEthereumSepolia Chain = "eip155:11155111"
)

// IsValidChain checks if a chain is valid
func IsValidChain(chain Chain) bool {
	return chain == ChainEthereumMainnet ||
		chain == ChainEthereumSepolia
}

// ChainStandard represents the token standard of the collection
type ChainStandard string

const (
	StandardERC721 ChainStandard = "erc721"
)

// EventType represents the type of ledger event
type EventType string

const (
	EventTypeMint     EventType = "mint"
	EventTypeTransfer EventType = "transfer"
	EventTypeApproval EventType = "approval"
)

// Collection is a capped-supply NFT collection.
// Name, Symbol, MaxSupply, Admin and the URI parts never change after initialization.
type Collection struct {
	Contract    string    `json:"contract"`
	Chain       Chain     `json:"chain"`
	Name        string    `json:"name"`
	Symbol      string    `json:"symbol"`
	MaxSupply   uint64    `json:"max_supply"`
	TotalSupply uint64    `json:"total_supply"`
	Admin       string    `json:"admin"`
	BaseURI     string    `json:"base_uri"`
	URISuffix   string    `json:"uri_suffix"`
	EventSeq    uint64    `json:"event_seq"`
	CreatedAt   time.Time `json:"created_at"`
}

// SameParams reports whether two collections share the same immutable parameters
func (c *Collection) SameParams(other *Collection) bool {
	return c.Contract == other.Contract &&
		c.Chain == other.Chain &&
		c.Name == other.Name &&
		c.Symbol == other.Symbol &&
		c.MaxSupply == other.MaxSupply &&
		c.Admin == other.Admin &&
		c.BaseURI == other.BaseURI &&
		c.URISuffix == other.URISuffix
}

// TokenURI builds the metadata locator for a token id
func (c *Collection) TokenURI(tokenID uint64) string {
	return c.BaseURI + strconv.FormatUint(tokenID, 10) + c.URISuffix
}

// TokenCID returns the canonical identifier of a token of this collection
func (c *Collection) TokenCID(tokenID uint64) TokenCID {
	return NewTokenCID(c.Chain, StandardERC721, c.Contract, strconv.FormatUint(tokenID, 10))
}

// Token is a minted token of a collection
type Token struct {
	Contract  string    `json:"contract"`
	TokenID   uint64    `json:"token_id"`
	Owner     string    `json:"owner"`
	Approved  *string   `json:"approved"`
	MintedAt  time.Time `json:"minted_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ApprovedAddress returns the approved address or empty string when none
func (t *Token) ApprovedAddress() string {
	if t.Approved == nil {
		return ""
	}
	return *t.Approved
}

// LedgerEvent is a journal entry for a successful ledger mutation.
// Mints are recorded with the zero address as From.
type LedgerEvent struct {
	EventID   string    `json:"event_id"`
	Contract  string    `json:"contract"`
	Chain     Chain     `json:"chain"`
	Sequence  uint64    `json:"sequence"`
	EventType EventType `json:"event_type"`
	TokenID   uint64    `json:"token_id"`
	Caller    string    `json:"caller"`
	From      string    `json:"from,omitempty"`
	To        string    `json:"to,omitempty"`
	Approved  string    `json:"approved,omitempty"`
	TxHash    string    `json:"tx_hash"`
	Timestamp time.Time `json:"timestamp"`
}

// TokenCID generates the canonical token ID of the event's token
func (e *LedgerEvent) TokenCID() TokenCID {
	return NewTokenCID(e.Chain, StandardERC721, e.Contract, strconv.FormatUint(e.TokenID, 10))
}

// Involves reports whether the address takes part in the event
func (e *LedgerEvent) Involves(address string) bool {
	return e.From == address || e.To == address || e.Approved == address || e.Caller == address
}

// TokenCID represents the canonical token identifier in format: chain:standard:contract:tokenNumber (e.g., "eip155:1:erc721:0xabc...:1234")
type TokenCID string

// String returns the string representation of the TokenCID
func (t TokenCID) String() string {
	return string(t)
}

// Parse parses the TokenCID into chain, standard, contract address, and token number
func (t TokenCID) Parse() (Chain, ChainStandard, string, string) {
	parts := strings.Split(string(t), ":")
	if len(parts) != 5 {
		return "", "", "", ""
	}
	return Chain(fmt.Sprintf("%s:%s", parts[0], parts[1])), ChainStandard(parts[2]), parts[3], parts[4]
}

// Valid checks if the TokenCID is valid
func (t TokenCID) Valid() bool {
	chain, standard, contractAddress, tokenNumber := t.Parse()
	if !IsValidChain(chain) || standard != StandardERC721 {
		return false
	}
	if !common.IsHexAddress(contractAddress) {
		return false
	}
	_, err := ParseTokenID(tokenNumber)
	return err == nil
}

// NewTokenCID creates a new TokenCID
func NewTokenCID(chain Chain, standard ChainStandard, contractAddress string, tokenNumber string) TokenCID {
	return TokenCID(fmt.Sprintf("%s:%s:%s:%s", chain, standard, contractAddress, tokenNumber))
}

// ParseAddress validates and normalizes an account to its EIP-55 checksum form
func ParseAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	return common.HexToAddress(address).Hex(), nil
}

// NormalizeAddress normalizes an address, leaving malformed input untouched
func NormalizeAddress(address string) string {
	normalized, err := ParseAddress(address)
	if err != nil {
		return address
	}
	return normalized
}

// IsZeroAddress checks whether a normalized address is the zero address
func IsZeroAddress(address string) bool {
	return address == ETHEREUM_ZERO_ADDRESS
}

// ContractAddressFor derives the address a first deployment by the admin would get
func ContractAddressFor(admin string) string {
	return crypto.CreateAddress(common.HexToAddress(admin), 0).Hex()
}

// ParseTokenID parses a decimal token id
func ParseTokenID(s string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTokenID, s)
	}
	return id, nil
}
