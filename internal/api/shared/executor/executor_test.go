package executor

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-nft-ledger/internal/adapter"
	apierrors "github.com/feral-file/ff-nft-ledger/internal/api/shared/errors"
	"github.com/feral-file/ff-nft-ledger/internal/domain"
	"github.com/feral-file/ff-nft-ledger/internal/ledger"
	"github.com/feral-file/ff-nft-ledger/internal/mocks"
	"github.com/feral-file/ff-nft-ledger/internal/store"
)

const (
	testContract = "0xd9145CCE52D386f254917e481eB44e9943F39138"
	testAdmin    = "0x5B38Da6a701c568545dCfcB03FcB875f56beddC4"
	testHolder   = "0xAb8483F64d9C6d1EcF9b849Ae677dD3315835cb2"
)

func testCollection() *domain.Collection {
	return &domain.Collection{
		Contract:    testContract,
		Chain:       domain.ChainEthereumSepolia,
		Name:        "Genesis",
		Symbol:      "GEN",
		MaxSupply:   3,
		TotalSupply: 1,
		Admin:       testAdmin,
		BaseURI:     "ipfs://base/",
		URISuffix:   ".json",
	}
}

func setupExecutor(t *testing.T) (Executor, *mocks.MockLedger, store.Store) {
	t.Helper()
	ctrl := gomock.NewController(t)
	l := mocks.NewMockLedger(ctrl)
	st := store.NewMemoryStore()
	return NewExecutor(l, st, adapter.NewJSON()), l, st
}

func TestExecutor_GetToken(t *testing.T) {
	exec, l, _ := setupExecutor(t)
	ctx := context.Background()

	now := time.Now().UTC()
	l.EXPECT().Token(ctx, uint64(1)).Return(&domain.Token{
		Contract: testContract,
		TokenID:  1,
		Owner:    testHolder,
		MintedAt: now,
	}, nil)
	l.EXPECT().Collection(ctx).Return(testCollection(), nil)

	resp, err := exec.GetToken(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "ipfs://base/1.json", resp.TokenURI)
	assert.Equal(t, "eip155:11155111:erc721:"+testContract+":1", resp.TokenCID)
	assert.Equal(t, testHolder, resp.Owner)
	assert.Nil(t, resp.Approved)
}

func TestExecutor_GetToken_Nonexistent(t *testing.T) {
	exec, l, _ := setupExecutor(t)
	ctx := context.Background()

	l.EXPECT().Token(ctx, uint64(9)).Return(nil, fmt.Errorf("%w: 9", domain.ErrNonexistentToken))

	_, err := exec.GetToken(ctx, 9)
	assert.ErrorIs(t, err, domain.ErrNonexistentToken)
}

func TestExecutor_GetCollection_DatabaseError(t *testing.T) {
	exec, l, _ := setupExecutor(t)
	ctx := context.Background()

	l.EXPECT().Collection(ctx).Return(nil, errors.New("connection refused"))

	_, err := exec.GetCollection(ctx)
	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierrors.ErrCodeDatabaseError, apiErr.Code)
}

func TestExecutor_GetBalance_NormalizesAddress(t *testing.T) {
	exec, l, _ := setupExecutor(t)
	ctx := context.Background()

	lower := "0xab8483f64d9c6d1ecf9b849ae677dd3315835cb2"
	l.EXPECT().BalanceOf(ctx, lower).Return(uint64(2), nil)

	resp, err := exec.GetBalance(ctx, lower)
	require.NoError(t, err)
	assert.Equal(t, testHolder, resp.Address)
	assert.Equal(t, uint64(2), resp.Balance)
}

func TestExecutor_GetTokensOfOwner(t *testing.T) {
	exec, l, _ := setupExecutor(t)
	ctx := context.Background()

	l.EXPECT().Collection(ctx).Return(testCollection(), nil)
	l.EXPECT().TokensOfOwner(ctx, testHolder, 2, uint64(0)).Return([]*domain.Token{
		{Contract: testContract, TokenID: 1, Owner: testHolder},
		{Contract: testContract, TokenID: 3, Owner: testHolder},
	}, uint64(3), nil)

	resp, err := exec.GetTokensOfOwner(ctx, testHolder, 2, 0)
	require.NoError(t, err)
	require.Len(t, resp.Tokens, 2)
	assert.Equal(t, uint64(3), resp.Total)
	assert.Equal(t, "ipfs://base/3.json", resp.Tokens[1].TokenURI)
}

func TestExecutor_GetEvents(t *testing.T) {
	exec, l, _ := setupExecutor(t)
	ctx := context.Background()

	tokenID := uint64(1)
	l.EXPECT().Events(ctx, ledger.EventFilter{TokenID: &tokenID, Limit: 20}).Return([]*domain.LedgerEvent{
		{EventID: "e1", Contract: testContract, Chain: domain.ChainEthereumSepolia, Sequence: 1, EventType: domain.EventTypeMint, TokenID: 1},
	}, uint64(1), nil)

	resp, err := exec.GetEvents(ctx, &tokenID, nil, 20, 0)
	require.NoError(t, err)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "e1", resp.Events[0].EventID)
	assert.Equal(t, "eip155:11155111:erc721:"+testContract+":1", resp.Events[0].TokenCID)
}

func TestExecutor_Mutations(t *testing.T) {
	exec, l, _ := setupExecutor(t)
	ctx := context.Background()

	event := &domain.LedgerEvent{EventID: "e1", Contract: testContract, Chain: domain.ChainEthereumSepolia, TokenID: 1}

	l.EXPECT().Mint(ctx, testAdmin, testHolder, uint64(1)).Return(event, nil)
	l.EXPECT().Approve(ctx, testHolder, testAdmin, uint64(1)).Return(event, nil)
	l.EXPECT().TransferFrom(ctx, testAdmin, testHolder, testAdmin, uint64(1)).
		Return(nil, fmt.Errorf("transfer: %w", domain.ErrUnauthorized))

	resp, err := exec.Mint(ctx, testAdmin, testHolder, 1)
	require.NoError(t, err)
	assert.Equal(t, "e1", resp.EventID)

	_, err = exec.Approve(ctx, testHolder, testAdmin, 1)
	require.NoError(t, err)

	_, err = exec.Transfer(ctx, testAdmin, testHolder, testAdmin, 1)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestExecutor_CreateWebhookClient(t *testing.T) {
	exec, _, st := setupExecutor(t)
	ctx := context.Background()

	resp, err := exec.CreateWebhookClient(ctx, "https://example.com/hook", []string{"token.minted"}, 3)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ClientID)
	assert.Len(t, resp.WebhookSecret, 64)
	assert.True(t, resp.IsActive)
	assert.Equal(t, 3, resp.RetryMaxAttempts)
	assert.Equal(t, []string{"token.minted"}, resp.EventFilters)

	clients, err := st.GetActiveWebhookClientsByEventType(ctx, "token.minted")
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, resp.ClientID, clients[0].ClientID)
}
