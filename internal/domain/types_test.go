package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidChain(t *testing.T) {
	tests := []struct {
		name     string
		chain    Chain
		expected bool
	}{
		{name: "valid ethereum mainnet", chain: ChainEthereumMainnet, expected: true},
		{name: "valid ethereum sepolia", chain: ChainEthereumSepolia, expected: true},
		{name: "invalid empty chain", chain: Chain(""), expected: false},
		{name: "invalid tezos chain", chain: Chain("tezos:mainnet"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidChain(tt.chain))
		})
	}
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "lowercase is checksummed",
			input:    "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
			expected: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		},
		{
			name:     "surrounding whitespace is trimmed",
			input:    "  0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359 ",
			expected: "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		},
		{
			name:     "zero address",
			input:    ETHEREUM_ZERO_ADDRESS,
			expected: ETHEREUM_ZERO_ADDRESS,
		},
		{name: "empty", input: "", wantErr: true},
		{name: "too short", input: "0x1234", wantErr: true},
		{name: "tezos address", input: "tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAddress(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidAddress)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t, "0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB", NormalizeAddress("0xDBF03B407C01E7CD3CBEA99509D93F8DDDC8C6FB"))
	assert.Equal(t, "not-an-address", NormalizeAddress("not-an-address"))
}

func TestParseTokenID(t *testing.T) {
	id, err := ParseTokenID("42")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	for _, input := range []string{"", "-1", "abc", "1.5", "18446744073709551616"} {
		_, err := ParseTokenID(input)
		assert.ErrorIs(t, err, ErrInvalidTokenID, input)
	}
}

func TestCollection_TokenURI(t *testing.T) {
	c := &Collection{BaseURI: DEFAULT_BASE_URI, URISuffix: DEFAULT_URI_SUFFIX}
	assert.Equal(t, "https://example.com/metadata/1.json", c.TokenURI(1))
	assert.Equal(t, "https://example.com/metadata/100.json", c.TokenURI(100))

	c = &Collection{BaseURI: "ipfs://bafy/"}
	assert.Equal(t, "ipfs://bafy/7", c.TokenURI(7))
}

func TestCollection_SameParams(t *testing.T) {
	base := Collection{
		Contract:  "0x1111111111111111111111111111111111111111",
		Chain:     ChainEthereumMainnet,
		Name:      "MyNFT",
		Symbol:    "MNFT",
		MaxSupply: 100,
		Admin:     "0x2222222222222222222222222222222222222222",
		BaseURI:   DEFAULT_BASE_URI,
		URISuffix: DEFAULT_URI_SUFFIX,
	}

	same := base
	same.TotalSupply = 42
	same.EventSeq = 99
	assert.True(t, base.SameParams(&same), "mutable fields are ignored")

	other := base
	other.MaxSupply = 101
	assert.False(t, base.SameParams(&other))

	other = base
	other.Symbol = "OTHER"
	assert.False(t, base.SameParams(&other))
}

func TestTokenCID(t *testing.T) {
	c := &Collection{Chain: ChainEthereumMainnet, Contract: "0x1111111111111111111111111111111111111111"}
	cid := c.TokenCID(12)
	assert.Equal(t, TokenCID("eip155:1:erc721:0x1111111111111111111111111111111111111111:12"), cid)
	assert.True(t, cid.Valid())

	chain, standard, contract, number := cid.Parse()
	assert.Equal(t, ChainEthereumMainnet, chain)
	assert.Equal(t, StandardERC721, standard)
	assert.Equal(t, "0x1111111111111111111111111111111111111111", contract)
	assert.Equal(t, "12", number)

	assert.False(t, TokenCID("eip155:1:erc721:0x11:12").Valid())
	assert.False(t, TokenCID("tezos:mainnet:fa2:KT1abc:1").Valid())
	assert.False(t, TokenCID("garbage").Valid())
}

func TestContractAddressFor(t *testing.T) {
	admin := "0x2222222222222222222222222222222222222222"
	addr := ContractAddressFor(admin)
	parsed, err := ParseAddress(addr)
	require.NoError(t, err)
	assert.Equal(t, addr, parsed)
	assert.Equal(t, addr, ContractAddressFor(admin), "derivation is deterministic")
	assert.NotEqual(t, addr, ContractAddressFor("0x3333333333333333333333333333333333333333"))
}

func TestLedgerEvent_Involves(t *testing.T) {
	e := &LedgerEvent{
		EventType: EventTypeTransfer,
		Caller:    "0xA",
		From:      "0xB",
		To:        "0xC",
	}
	assert.True(t, e.Involves("0xA"))
	assert.True(t, e.Involves("0xB"))
	assert.True(t, e.Involves("0xC"))
	assert.False(t, e.Involves("0xD"))
}
