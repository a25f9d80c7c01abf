package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-nft-ledger/internal/domain"
)

const (
	testAdmin = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	testAlice = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
	testBob   = "0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB"
)

// =============================================================================
// Test Data Builders
// =============================================================================

func seedCollection(t *testing.T, s Store, maxSupply uint64) *domain.Collection {
	t.Helper()

	c, err := s.CreateCollection(context.Background(), &domain.Collection{
		Contract:  domain.ContractAddressFor(testAdmin),
		Chain:     domain.ChainEthereumSepolia,
		Name:      "MyNFT",
		Symbol:    "MNFT",
		MaxSupply: maxSupply,
		Admin:     testAdmin,
		BaseURI:   domain.DEFAULT_BASE_URI,
		URISuffix: domain.DEFAULT_URI_SUFFIX,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	require.NotNil(t, c)
	return c
}

func newTestToken(c *domain.Collection, tokenID uint64, owner string) *domain.Token {
	now := time.Now().UTC()
	return &domain.Token{
		Contract:  c.Contract,
		TokenID:   tokenID,
		Owner:     owner,
		MintedAt:  now,
		UpdatedAt: now,
	}
}

func newTestEvent(c *domain.Collection, seq uint64, eventType domain.EventType, tokenID uint64, from, to string) *domain.LedgerEvent {
	return &domain.LedgerEvent{
		EventID:   fmt.Sprintf("01TESTEVENT%015d", seq),
		Contract:  c.Contract,
		Chain:     c.Chain,
		Sequence:  seq,
		EventType: eventType,
		TokenID:   tokenID,
		Caller:    from,
		From:      from,
		To:        to,
		TxHash:    fmt.Sprintf("0x%064x", seq),
		Timestamp: time.Now().UTC(),
	}
}

// mintTestToken mints a token and journals its event in one unit
func mintTestToken(t *testing.T, s Store, c *domain.Collection, tokenID uint64, owner string) {
	t.Helper()

	ctx := context.Background()
	err := s.WithTx(ctx, func(tx Tx) error {
		locked, err := tx.LockCollection(ctx, c.Contract)
		if err != nil {
			return err
		}
		if err := tx.CreateToken(ctx, newTestToken(c, tokenID, owner)); err != nil {
			return err
		}
		return tx.AppendEvent(ctx, newTestEvent(c, locked.EventSeq+1, domain.EventTypeMint, tokenID, domain.ETHEREUM_ZERO_ADDRESS, owner))
	})
	require.NoError(t, err)
}

// =============================================================================
// Tests
// =============================================================================

func testCreateCollection(t *testing.T, s Store) {
	ctx := context.Background()

	missing, err := s.GetCollection(ctx, testAlice)
	require.NoError(t, err)
	assert.Nil(t, missing)

	c := seedCollection(t, s, 100)
	assert.Equal(t, "MyNFT", c.Name)
	assert.Equal(t, "MNFT", c.Symbol)
	assert.Equal(t, uint64(100), c.MaxSupply)
	assert.Equal(t, uint64(0), c.TotalSupply)
	assert.Equal(t, uint64(0), c.EventSeq)

	// A second create keeps the stored row
	again, err := s.CreateCollection(ctx, &domain.Collection{
		Contract:  c.Contract,
		Chain:     c.Chain,
		Name:      "Other",
		Symbol:    "OTH",
		MaxSupply: 5,
		Admin:     testBob,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.True(t, again.SameParams(c))
}

func testMintAndBalances(t *testing.T, s Store) {
	ctx := context.Background()
	c := seedCollection(t, s, 10)

	mintTestToken(t, s, c, 3, testAlice)
	mintTestToken(t, s, c, 1, testAlice)
	mintTestToken(t, s, c, 2, testBob)

	collection, err := s.GetCollection(ctx, c.Contract)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), collection.TotalSupply)
	assert.Equal(t, uint64(3), collection.EventSeq)

	balance, err := s.GetBalance(ctx, c.Contract, testAlice)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), balance)

	balance, err = s.GetBalance(ctx, c.Contract, testBob)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), balance)

	balance, err = s.GetBalance(ctx, c.Contract, testAdmin)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)

	token, err := s.GetToken(ctx, c.Contract, 3)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, testAlice, token.Owner)
	assert.Nil(t, token.Approved)

	missing, err := s.GetToken(ctx, c.Contract, 4)
	require.NoError(t, err)
	assert.Nil(t, missing)

	tokens, total, err := s.GetTokensByOwner(ctx, c.Contract, testAlice, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	require.Len(t, tokens, 2)
	assert.Equal(t, uint64(1), tokens[0].TokenID)
	assert.Equal(t, uint64(3), tokens[1].TokenID)

	tokens, total, err = s.GetTokensByOwner(ctx, c.Contract, testAlice, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	require.Len(t, tokens, 1)
	assert.Equal(t, uint64(3), tokens[0].TokenID)
}

func testCreateTokenGuards(t *testing.T, s Store) {
	ctx := context.Background()
	c := seedCollection(t, s, 1)
	mintTestToken(t, s, c, 1, testAlice)

	t.Run("duplicate token", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx Tx) error {
			return tx.CreateToken(ctx, newTestToken(c, 1, testBob))
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrAlreadyMinted) || errors.Is(err, domain.ErrSupplyExceeded))
	})

	t.Run("supply exhausted", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx Tx) error {
			return tx.CreateToken(ctx, newTestToken(c, 2, testBob))
		})
		require.ErrorIs(t, err, domain.ErrSupplyExceeded)
	})

	collection, err := s.GetCollection(ctx, c.Contract)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), collection.TotalSupply)

	token, err := s.GetToken(ctx, c.Contract, 1)
	require.NoError(t, err)
	assert.Equal(t, testAlice, token.Owner)
}

func testUpdateOwner(t *testing.T, s Store) {
	ctx := context.Background()
	c := seedCollection(t, s, 10)
	mintTestToken(t, s, c, 7, testAlice)

	approved := testAdmin
	err := s.WithTx(ctx, func(tx Tx) error {
		token, err := tx.GetToken(ctx, c.Contract, 7)
		if err != nil {
			return err
		}
		return tx.UpdateApproval(ctx, token, &approved)
	})
	require.NoError(t, err)

	token, err := s.GetToken(ctx, c.Contract, 7)
	require.NoError(t, err)
	require.NotNil(t, token.Approved)
	assert.Equal(t, testAdmin, *token.Approved)

	err = s.WithTx(ctx, func(tx Tx) error {
		token, err := tx.GetToken(ctx, c.Contract, 7)
		if err != nil {
			return err
		}
		token.UpdatedAt = time.Now().UTC()
		return tx.UpdateOwner(ctx, token, testAlice, testBob)
	})
	require.NoError(t, err)

	token, err = s.GetToken(ctx, c.Contract, 7)
	require.NoError(t, err)
	assert.Equal(t, testBob, token.Owner)
	assert.Nil(t, token.Approved)

	balance, err := s.GetBalance(ctx, c.Contract, testAlice)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)

	balance, err = s.GetBalance(ctx, c.Contract, testBob)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), balance)

	// Moving from a non-owner does nothing
	err = s.WithTx(ctx, func(tx Tx) error {
		return tx.UpdateOwner(ctx, newTestToken(c, 7, testBob), testAlice, testAdmin)
	})
	require.Error(t, err)

	token, err = s.GetToken(ctx, c.Contract, 7)
	require.NoError(t, err)
	assert.Equal(t, testBob, token.Owner)
}

func testUpdateApproval(t *testing.T, s Store) {
	ctx := context.Background()
	c := seedCollection(t, s, 10)
	mintTestToken(t, s, c, 1, testAlice)

	bob := testBob
	err := s.WithTx(ctx, func(tx Tx) error {
		return tx.UpdateApproval(ctx, newTestToken(c, 1, testAlice), &bob)
	})
	require.NoError(t, err)

	token, err := s.GetToken(ctx, c.Contract, 1)
	require.NoError(t, err)
	assert.Equal(t, testBob, token.ApprovedAddress())

	err = s.WithTx(ctx, func(tx Tx) error {
		return tx.UpdateApproval(ctx, newTestToken(c, 1, testAlice), nil)
	})
	require.NoError(t, err)

	token, err = s.GetToken(ctx, c.Contract, 1)
	require.NoError(t, err)
	assert.Equal(t, "", token.ApprovedAddress())

	err = s.WithTx(ctx, func(tx Tx) error {
		return tx.UpdateApproval(ctx, newTestToken(c, 99, testAlice), &bob)
	})
	require.ErrorIs(t, err, domain.ErrNonexistentToken)
}

func testWithTxRollback(t *testing.T, s Store) {
	ctx := context.Background()
	c := seedCollection(t, s, 10)
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx Tx) error {
		if _, err := tx.LockCollection(ctx, c.Contract); err != nil {
			return err
		}
		if err := tx.CreateToken(ctx, newTestToken(c, 1, testAlice)); err != nil {
			return err
		}
		if err := tx.AppendEvent(ctx, newTestEvent(c, 1, domain.EventTypeMint, 1, domain.ETHEREUM_ZERO_ADDRESS, testAlice)); err != nil {
			return err
		}

		// Staged changes are visible inside the unit
		token, err := tx.GetToken(ctx, c.Contract, 1)
		if err != nil {
			return err
		}
		if token == nil {
			return errors.New("staged token not visible")
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	token, err := s.GetToken(ctx, c.Contract, 1)
	require.NoError(t, err)
	assert.Nil(t, token)

	balance, err := s.GetBalance(ctx, c.Contract, testAlice)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)

	collection, err := s.GetCollection(ctx, c.Contract)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), collection.TotalSupply)
	assert.Equal(t, uint64(0), collection.EventSeq)

	events, total, err := s.GetEvents(ctx, EventQueryFilter{Contract: c.Contract})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), total)
	assert.Empty(t, events)
}

func testEvents(t *testing.T, s Store) {
	ctx := context.Background()
	c := seedCollection(t, s, 10)
	mintTestToken(t, s, c, 1, testAlice)
	mintTestToken(t, s, c, 2, testBob)

	err := s.WithTx(ctx, func(tx Tx) error {
		locked, err := tx.LockCollection(ctx, c.Contract)
		if err != nil {
			return err
		}
		return tx.AppendEvent(ctx, newTestEvent(c, locked.EventSeq+1, domain.EventTypeTransfer, 1, testAlice, testBob))
	})
	require.NoError(t, err)

	events, total, err := s.GetEvents(ctx, EventQueryFilter{Contract: c.Contract})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	require.Len(t, events, 3)
	for i, e := range events {
		assert.Equal(t, uint64(i+1), e.Sequence)
	}
	assert.Equal(t, domain.EventTypeTransfer, events[2].EventType)
	assert.Equal(t, testAlice, events[2].From)
	assert.Equal(t, testBob, events[2].To)

	tokenID := uint64(1)
	events, total, err = s.GetEvents(ctx, EventQueryFilter{Contract: c.Contract, TokenID: &tokenID})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventTypeMint, events[0].EventType)

	bob := testBob
	events, total, err = s.GetEvents(ctx, EventQueryFilter{Contract: c.Contract, Address: &bob, Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	require.Len(t, events, 1)
	assert.Equal(t, uint64(3), events[0].Sequence)

	// Sequence gaps are rejected
	err = s.WithTx(ctx, func(tx Tx) error {
		return tx.AppendEvent(ctx, newTestEvent(c, 10, domain.EventTypeTransfer, 1, testBob, testAlice))
	})
	require.Error(t, err)
}

func testWebhookClients(t *testing.T, s Store) {
	ctx := context.Background()

	inputs := []CreateWebhookClientInput{
		{ClientID: "0f2a4c8e-0000-4000-8000-000000000001", WebhookURL: "https://a.example.com/hook", WebhookSecret: "s1", EventFilters: datatypes.JSON(`["mint"]`), IsActive: true, RetryMaxAttempts: 3},
		{ClientID: "0f2a4c8e-0000-4000-8000-000000000002", WebhookURL: "https://b.example.com/hook", WebhookSecret: "s2", EventFilters: datatypes.JSON(`["*"]`), IsActive: true, RetryMaxAttempts: 3},
		{ClientID: "0f2a4c8e-0000-4000-8000-000000000003", WebhookURL: "https://c.example.com/hook", WebhookSecret: "s3", EventFilters: datatypes.JSON(`["mint","transfer"]`), IsActive: false, RetryMaxAttempts: 3},
	}
	for _, in := range inputs {
		client, err := s.CreateWebhookClient(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, in.ClientID, client.ClientID)
		assert.NotZero(t, client.ID)
	}

	clients, err := s.GetActiveWebhookClientsByEventType(ctx, string(domain.EventTypeMint))
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, inputs[0].ClientID, clients[0].ClientID)
	assert.Equal(t, inputs[1].ClientID, clients[1].ClientID)

	clients, err = s.GetActiveWebhookClientsByEventType(ctx, string(domain.EventTypeApproval))
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, inputs[1].ClientID, clients[0].ClientID)
}

// RunStoreTests runs all store tests against an implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"CreateCollection", testCreateCollection},
		{"MintAndBalances", testMintAndBalances},
		{"CreateTokenGuards", testCreateTokenGuards},
		{"UpdateOwner", testUpdateOwner},
		{"UpdateApproval", testUpdateApproval},
		{"WithTxRollback", testWithTxRollback},
		{"Events", testEvents},
		{"WebhookClients", testWebhookClients},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, initDB(t))
		})
	}
}
