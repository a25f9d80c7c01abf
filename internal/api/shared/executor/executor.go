package executor

import (
	"context"
	"fmt"

	"gorm.io/datatypes"

	"github.com/feral-file/ff-nft-ledger/internal/adapter"
	"github.com/feral-file/ff-nft-ledger/internal/api/shared/constants"
	"github.com/feral-file/ff-nft-ledger/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-nft-ledger/internal/api/shared/errors"
	"github.com/feral-file/ff-nft-ledger/internal/domain"
	"github.com/feral-file/ff-nft-ledger/internal/ledger"
	"github.com/feral-file/ff-nft-ledger/internal/store"
	internalTypes "github.com/feral-file/ff-nft-ledger/internal/types"
)

// Executor is the interface for the API executor.
// Ledger failures are returned wrapped around the domain sentinel errors.
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// GetCollection retrieves the collection with its current total supply
	GetCollection(ctx context.Context) (*dto.CollectionResponse, error)

	// GetBalance retrieves the number of tokens an account owns
	GetBalance(ctx context.Context, address string) (*dto.BalanceResponse, error)

	// GetTokensOfOwner retrieves a page of an account's tokens ordered by id
	GetTokensOfOwner(ctx context.Context, address string, limit int, offset uint64) (*dto.TokenListResponse, error)

	// GetToken retrieves a minted token
	GetToken(ctx context.Context, tokenID uint64) (*dto.TokenResponse, error)

	// GetOwner retrieves the owner of a minted token
	GetOwner(ctx context.Context, tokenID uint64) (*dto.OwnerResponse, error)

	// GetApproved retrieves the approved account of a minted token
	GetApproved(ctx context.Context, tokenID uint64) (*dto.ApprovedResponse, error)

	// GetTokenURI retrieves the metadata locator of a minted token
	GetTokenURI(ctx context.Context, tokenID uint64) (*dto.TokenURIResponse, error)

	// GetEvents retrieves a page of journal entries, optionally narrowed to a token or an address
	GetEvents(ctx context.Context, tokenID *uint64, address *string, limit int, offset uint64) (*dto.EventListResponse, error)

	// Mint mints a token on behalf of caller
	Mint(ctx context.Context, caller string, to string, tokenID uint64) (*dto.EventResponse, error)

	// Approve sets or clears the approval of a token on behalf of caller
	Approve(ctx context.Context, caller string, approved string, tokenID uint64) (*dto.EventResponse, error)

	// Transfer moves a token on behalf of caller
	Transfer(ctx context.Context, caller string, from string, to string, tokenID uint64) (*dto.EventResponse, error)

	// CreateWebhookClient registers a webhook client and returns its generated secret
	CreateWebhookClient(ctx context.Context, webhookURL string, eventFilters []string, retryMaxAttempts int) (*dto.CreateWebhookClientResponse, error)
}

type executor struct {
	ledger ledger.Ledger
	store  store.Store
	json   adapter.JSON
}

func NewExecutor(l ledger.Ledger, st store.Store, jsonAdapter adapter.JSON) Executor {
	return &executor{ledger: l, store: st, json: jsonAdapter}
}

func (e *executor) GetCollection(ctx context.Context) (*dto.CollectionResponse, error) {
	c, err := e.ledger.Collection(ctx)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get collection: %v", err))
	}
	return dto.MapCollectionToDTO(c), nil
}

func (e *executor) GetBalance(ctx context.Context, address string) (*dto.BalanceResponse, error) {
	balance, err := e.ledger.BalanceOf(ctx, address)
	if err != nil {
		return nil, err
	}
	return &dto.BalanceResponse{Address: domain.NormalizeAddress(address), Balance: balance}, nil
}

func (e *executor) GetTokensOfOwner(ctx context.Context, address string, limit int, offset uint64) (*dto.TokenListResponse, error) {
	c, err := e.ledger.Collection(ctx)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get collection: %v", err))
	}

	tokens, total, err := e.ledger.TokensOfOwner(ctx, address, limit, offset)
	if err != nil {
		return nil, err
	}

	resp := &dto.TokenListResponse{
		Tokens: make([]dto.TokenResponse, 0, len(tokens)),
		Offset: offset,
		Total:  total,
	}
	for _, t := range tokens {
		resp.Tokens = append(resp.Tokens, *dto.MapTokenToDTO(c, t))
	}
	return resp, nil
}

func (e *executor) GetToken(ctx context.Context, tokenID uint64) (*dto.TokenResponse, error) {
	token, err := e.ledger.Token(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	c, err := e.ledger.Collection(ctx)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get collection: %v", err))
	}
	return dto.MapTokenToDTO(c, token), nil
}

func (e *executor) GetOwner(ctx context.Context, tokenID uint64) (*dto.OwnerResponse, error) {
	owner, err := e.ledger.OwnerOf(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	return &dto.OwnerResponse{TokenID: tokenID, Owner: owner}, nil
}

func (e *executor) GetApproved(ctx context.Context, tokenID uint64) (*dto.ApprovedResponse, error) {
	approved, err := e.ledger.GetApproved(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	return &dto.ApprovedResponse{TokenID: tokenID, Approved: approved}, nil
}

func (e *executor) GetTokenURI(ctx context.Context, tokenID uint64) (*dto.TokenURIResponse, error) {
	uri, err := e.ledger.TokenURI(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	return &dto.TokenURIResponse{TokenID: tokenID, TokenURI: uri}, nil
}

func (e *executor) GetEvents(ctx context.Context, tokenID *uint64, address *string, limit int, offset uint64) (*dto.EventListResponse, error) {
	events, total, err := e.ledger.Events(ctx, ledger.EventFilter{
		TokenID: tokenID,
		Address: address,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.EventListResponse{
		Events: make([]dto.EventResponse, 0, len(events)),
		Offset: offset,
		Total:  total,
	}
	for _, ev := range events {
		resp.Events = append(resp.Events, *dto.MapEventToDTO(ev))
	}
	return resp, nil
}

func (e *executor) Mint(ctx context.Context, caller string, to string, tokenID uint64) (*dto.EventResponse, error) {
	event, err := e.ledger.Mint(ctx, caller, to, tokenID)
	if err != nil {
		return nil, err
	}
	return dto.MapEventToDTO(event), nil
}

func (e *executor) Approve(ctx context.Context, caller string, approved string, tokenID uint64) (*dto.EventResponse, error) {
	event, err := e.ledger.Approve(ctx, caller, approved, tokenID)
	if err != nil {
		return nil, err
	}
	return dto.MapEventToDTO(event), nil
}

func (e *executor) Transfer(ctx context.Context, caller string, from string, to string, tokenID uint64) (*dto.EventResponse, error) {
	event, err := e.ledger.TransferFrom(ctx, caller, from, to, tokenID)
	if err != nil {
		return nil, err
	}
	return dto.MapEventToDTO(event), nil
}

func (e *executor) CreateWebhookClient(ctx context.Context, webhookURL string, eventFilters []string, retryMaxAttempts int) (*dto.CreateWebhookClientResponse, error) {
	clientID, err := internalTypes.GenerateUUID()
	if err != nil {
		return nil, apierrors.NewInternalError("Failed to generate client ID", err.Error())
	}

	secret, err := internalTypes.GenerateSecureToken(constants.WEBHOOK_SECRET_BYTES)
	if err != nil {
		return nil, apierrors.NewInternalError("Failed to generate webhook secret", err.Error())
	}

	filters, err := e.json.Marshal(eventFilters)
	if err != nil {
		return nil, apierrors.NewInternalError("Failed to encode event filters", err.Error())
	}

	client, err := e.store.CreateWebhookClient(ctx, store.CreateWebhookClientInput{
		ClientID:         clientID,
		WebhookURL:       webhookURL,
		WebhookSecret:    secret,
		EventFilters:     datatypes.JSON(filters),
		IsActive:         true,
		RetryMaxAttempts: retryMaxAttempts,
	})
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to create webhook client: %v", err))
	}

	return &dto.CreateWebhookClientResponse{
		ClientID:         client.ClientID,
		WebhookURL:       client.WebhookURL,
		WebhookSecret:    client.WebhookSecret,
		EventFilters:     eventFilters,
		IsActive:         client.IsActive,
		RetryMaxAttempts: client.RetryMaxAttempts,
		CreatedAt:        client.CreatedAt,
		UpdatedAt:        client.UpdatedAt,
	}, nil
}
