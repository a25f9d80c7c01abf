package rest

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-nft-ledger/internal/adapter"
	"github.com/feral-file/ff-nft-ledger/internal/api/middleware"
	"github.com/feral-file/ff-nft-ledger/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-nft-ledger/internal/api/shared/errors"
	"github.com/feral-file/ff-nft-ledger/internal/domain"
	"github.com/feral-file/ff-nft-ledger/internal/metrics"
	"github.com/feral-file/ff-nft-ledger/internal/mocks"
	"github.com/feral-file/ff-nft-ledger/internal/ratelimit"
)

const (
	testAdmin  = "0x5B38Da6a701c568545dCfcB03FcB875f56beddC4"
	testHolder = "0xAb8483F64d9C6d1EcF9b849Ae677dD3315835cb2"
	testAPIKey = "test-api-key"
)

type testRouter struct {
	router   *gin.Engine
	executor *mocks.MockAPIExecutor
	key      *rsa.PrivateKey
}

func setupTestRouter(t *testing.T, debug bool) *testRouter {
	t.Helper()
	return setupTestRouterWithLimiter(t, debug, nil)
}

func setupTestRouterWithLimiter(t *testing.T, debug bool, limiter *ratelimit.Limiter) *testRouter {
	t.Helper()
	gin.SetMode(gin.TestMode)

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	ctrl := gomock.NewController(t)
	exec := mocks.NewMockAPIExecutor(ctrl)

	router := gin.New()
	SetupRoutes(router, NewHandler(debug, exec), metrics.New().Handler(), middleware.AuthConfig{
		JWTPublicKey: string(publicPEM),
		APIKeys:      []string{testAPIKey},
	}, limiter)

	return &testRouter{router: router, executor: exec, key: key}
}

func (tr *testRouter) bearer(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString(tr.key)
	require.NoError(t, err)
	return "Bearer " + signed
}

func (tr *testRouter) do(method, path, auth string, body any) *httptest.ResponseRecorder {
	var data []byte
	if body != nil {
		data, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	tr.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apierrors.APIError {
	t.Helper()
	var apiErr apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	return apiErr
}

func TestHealthCheck(t *testing.T) {
	tr := setupTestRouter(t, false)

	w := tr.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","service":"ff-nft-ledger-api"}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	tr := setupTestRouter(t, false)

	w := tr.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetCollection(t *testing.T) {
	tr := setupTestRouter(t, false)
	tr.executor.EXPECT().GetCollection(gomock.Any()).Return(&dto.CollectionResponse{
		Name:        "Genesis",
		Symbol:      "GEN",
		MaxSupply:   3,
		TotalSupply: 1,
		Admin:       testAdmin,
	}, nil)

	w := tr.do(http.MethodGet, "/api/v1/collection", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.CollectionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Genesis", resp.Name)
	assert.Equal(t, uint64(1), resp.TotalSupply)
}

func TestGetToken_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		setup      func(exec *mocks.MockAPIExecutor)
		wantStatus int
		wantCode   apierrors.ErrorCode
	}{
		{
			name:       "non numeric id",
			path:       "/api/v1/tokens/abc",
			wantStatus: http.StatusBadRequest,
			wantCode:   apierrors.ErrCodeBadRequest,
		},
		{
			name: "nonexistent token",
			path: "/api/v1/tokens/7",
			setup: func(exec *mocks.MockAPIExecutor) {
				exec.EXPECT().GetToken(gomock.Any(), uint64(7)).
					Return(nil, fmt.Errorf("%w: 7", domain.ErrNonexistentToken))
			},
			wantStatus: http.StatusNotFound,
			wantCode:   apierrors.ErrCodeNotFound,
		},
		{
			name: "database failure",
			path: "/api/v1/tokens/1",
			setup: func(exec *mocks.MockAPIExecutor) {
				exec.EXPECT().GetToken(gomock.Any(), uint64(1)).
					Return(nil, apierrors.NewDatabaseError("Failed to get collection"))
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   apierrors.ErrCodeDatabaseError,
		},
		{
			name: "unexpected failure",
			path: "/api/v1/tokens/1",
			setup: func(exec *mocks.MockAPIExecutor) {
				exec.EXPECT().GetToken(gomock.Any(), uint64(1)).
					Return(nil, fmt.Errorf("connection reset"))
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   apierrors.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := setupTestRouter(t, false)
			if tt.setup != nil {
				tt.setup(tr.executor)
			}

			w := tr.do(http.MethodGet, tt.path, "", nil)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, w).Code)
		})
	}
}

func TestTokenReadEndpoints(t *testing.T) {
	tr := setupTestRouter(t, false)
	tr.executor.EXPECT().GetOwner(gomock.Any(), uint64(2)).
		Return(&dto.OwnerResponse{TokenID: 2, Owner: testHolder}, nil)
	tr.executor.EXPECT().GetApproved(gomock.Any(), uint64(2)).
		Return(&dto.ApprovedResponse{TokenID: 2}, nil)
	tr.executor.EXPECT().GetTokenURI(gomock.Any(), uint64(2)).
		Return(&dto.TokenURIResponse{TokenID: 2, TokenURI: "ipfs://base/2.json"}, nil)

	w := tr.do(http.MethodGet, "/api/v1/tokens/2/owner", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"token_id":2,"owner":%q}`, testHolder), w.Body.String())

	w = tr.do(http.MethodGet, "/api/v1/tokens/2/approved", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"token_id":2,"approved":""}`, w.Body.String())

	w = tr.do(http.MethodGet, "/api/v1/tokens/2/uri", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"token_id":2,"token_uri":"ipfs://base/2.json"}`, w.Body.String())
}

func TestGetBalance_InvalidAddress(t *testing.T) {
	tr := setupTestRouter(t, false)
	tr.executor.EXPECT().GetBalance(gomock.Any(), "0xnope").
		Return(nil, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, "0xnope"))

	w := tr.do(http.MethodGet, "/api/v1/accounts/0xnope/balance", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apierrors.ErrCodeBadRequest, decodeError(t, w).Code)
}

func TestListTokensOfOwner_Pagination(t *testing.T) {
	tr := setupTestRouter(t, false)

	t.Run("defaults", func(t *testing.T) {
		tr.executor.EXPECT().GetTokensOfOwner(gomock.Any(), testHolder, 20, uint64(0)).
			Return(&dto.TokenListResponse{Tokens: []dto.TokenResponse{}}, nil)
		w := tr.do(http.MethodGet, "/api/v1/accounts/"+testHolder+"/tokens", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("limit is capped", func(t *testing.T) {
		tr.executor.EXPECT().GetTokensOfOwner(gomock.Any(), testHolder, 100, uint64(5)).
			Return(&dto.TokenListResponse{Tokens: []dto.TokenResponse{}, Offset: 5}, nil)
		w := tr.do(http.MethodGet, "/api/v1/accounts/"+testHolder+"/tokens?limit=500&offset=5", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("zero limit", func(t *testing.T) {
		w := tr.do(http.MethodGet, "/api/v1/accounts/"+testHolder+"/tokens?limit=0", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apierrors.ErrCodeValidationFailed, decodeError(t, w).Code)
	})

	t.Run("negative offset", func(t *testing.T) {
		w := tr.do(http.MethodGet, "/api/v1/accounts/"+testHolder+"/tokens?offset=-1", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListEvents_Filters(t *testing.T) {
	tr := setupTestRouter(t, false)

	t.Run("token and address", func(t *testing.T) {
		tr.executor.EXPECT().
			GetEvents(gomock.Any(), gomock.Any(), gomock.Any(), 10, uint64(0)).
			DoAndReturn(func(_ context.Context, tokenID *uint64, address *string, _ int, _ uint64) (*dto.EventListResponse, error) {
				require.NotNil(t, tokenID)
				require.NotNil(t, address)
				assert.Equal(t, uint64(3), *tokenID)
				assert.Equal(t, testHolder, *address)
				return &dto.EventListResponse{Events: []dto.EventResponse{}}, nil
			})

		w := tr.do(http.MethodGet, "/api/v1/events?token_id=3&address="+testHolder+"&limit=10", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("empty filters are ignored", func(t *testing.T) {
		tr.executor.EXPECT().
			GetEvents(gomock.Any(), gomock.Nil(), gomock.Nil(), 20, uint64(0)).
			Return(&dto.EventListResponse{Events: []dto.EventResponse{}}, nil)

		w := tr.do(http.MethodGet, "/api/v1/events?token_id=&address=", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid token filter", func(t *testing.T) {
		w := tr.do(http.MethodGet, "/api/v1/events?token_id=x", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMint(t *testing.T) {
	t.Run("caller is the jwt subject", func(t *testing.T) {
		tr := setupTestRouter(t, false)
		tr.executor.EXPECT().Mint(gomock.Any(), testAdmin, testHolder, uint64(1)).
			Return(&dto.EventResponse{EventType: domain.EventTypeMint, TokenID: 1, Caller: testAdmin, To: testHolder}, nil)

		w := tr.do(http.MethodPost, "/api/v1/tokens/mint", tr.bearer(t, testAdmin),
			dto.MintRequest{To: testHolder, TokenID: 1})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp dto.EventResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, domain.EventTypeMint, resp.EventType)
	})

	t.Run("api key cannot mint", func(t *testing.T) {
		tr := setupTestRouter(t, false)
		w := tr.do(http.MethodPost, "/api/v1/tokens/mint", "ApiKey "+testAPIKey,
			dto.MintRequest{To: testHolder, TokenID: 1})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		tr := setupTestRouter(t, false)
		w := tr.do(http.MethodPost, "/api/v1/tokens/mint", "", dto.MintRequest{To: testHolder, TokenID: 1})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing recipient", func(t *testing.T) {
		tr := setupTestRouter(t, false)
		w := tr.do(http.MethodPost, "/api/v1/tokens/mint", tr.bearer(t, testAdmin), dto.MintRequest{TokenID: 1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apierrors.ErrCodeValidationFailed, decodeError(t, w).Code)
	})

	ledgerErrors := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   apierrors.ErrorCode
	}{
		{"not the admin", domain.ErrUnauthorized, http.StatusForbidden, apierrors.ErrCodeForbidden},
		{"already minted", domain.ErrAlreadyMinted, http.StatusConflict, apierrors.ErrCodeAlreadyMinted},
		{"supply exhausted", domain.ErrSupplyExceeded, http.StatusConflict, apierrors.ErrCodeSupplyExceeded},
		{"bad recipient", domain.ErrInvalidAddress, http.StatusBadRequest, apierrors.ErrCodeBadRequest},
	}
	for _, tt := range ledgerErrors {
		t.Run(tt.name, func(t *testing.T) {
			tr := setupTestRouter(t, false)
			tr.executor.EXPECT().Mint(gomock.Any(), testHolder, testHolder, uint64(1)).
				Return(nil, fmt.Errorf("mint 1: %w", tt.err))

			w := tr.do(http.MethodPost, "/api/v1/tokens/mint", tr.bearer(t, testHolder),
				dto.MintRequest{To: testHolder, TokenID: 1})
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, w).Code)
		})
	}
}

func TestMint_RateLimitedPerCaller(t *testing.T) {
	limiter := ratelimit.NewLimiter(ratelimit.Config{RequestsPerSecond: 0.001, Burst: 1}, adapter.NewClock())
	tr := setupTestRouterWithLimiter(t, false, limiter)
	tr.executor.EXPECT().Mint(gomock.Any(), gomock.Any(), testHolder, gomock.Any()).
		Return(&dto.EventResponse{EventType: domain.EventTypeMint}, nil).Times(2)

	w := tr.do(http.MethodPost, "/api/v1/tokens/mint", tr.bearer(t, testAdmin), dto.MintRequest{To: testHolder, TokenID: 1})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = tr.do(http.MethodPost, "/api/v1/tokens/mint", tr.bearer(t, testAdmin), dto.MintRequest{To: testHolder, TokenID: 2})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, apierrors.ErrCodeRateLimited, decodeError(t, w).Code)

	// Another caller has its own bucket
	w = tr.do(http.MethodPost, "/api/v1/tokens/mint", tr.bearer(t, testHolder), dto.MintRequest{To: testHolder, TokenID: 2})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestApprove(t *testing.T) {
	tr := setupTestRouter(t, false)
	tr.executor.EXPECT().Approve(gomock.Any(), testHolder, testAdmin, uint64(4)).
		Return(&dto.EventResponse{EventType: domain.EventTypeApproval, TokenID: 4, Approved: testAdmin}, nil)

	w := tr.do(http.MethodPost, "/api/v1/tokens/4/approve", tr.bearer(t, testHolder),
		dto.ApproveRequest{Approved: testAdmin})
	assert.Equal(t, http.StatusOK, w.Code)

	w = tr.do(http.MethodPost, "/api/v1/tokens/4/approve", tr.bearer(t, testHolder), dto.ApproveRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransfer(t *testing.T) {
	tr := setupTestRouter(t, false)
	tr.executor.EXPECT().Transfer(gomock.Any(), testAdmin, testHolder, testAdmin, uint64(4)).
		Return(nil, fmt.Errorf("transfer 4: %w", domain.ErrUnauthorized))

	w := tr.do(http.MethodPost, "/api/v1/tokens/4/transfer", tr.bearer(t, testAdmin),
		dto.TransferRequest{From: testHolder, To: testAdmin})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = tr.do(http.MethodPost, "/api/v1/tokens/x/transfer", tr.bearer(t, testAdmin),
		dto.TransferRequest{From: testHolder, To: testAdmin})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateWebhookClient(t *testing.T) {
	t.Run("api key creates client with default retries", func(t *testing.T) {
		tr := setupTestRouter(t, false)
		tr.executor.EXPECT().
			CreateWebhookClient(gomock.Any(), "https://example.com/hook", []string{"token.minted"}, 5).
			Return(&dto.CreateWebhookClientResponse{ClientID: "c1", WebhookSecret: "s"}, nil)

		w := tr.do(http.MethodPost, "/api/v1/webhooks/clients", "ApiKey "+testAPIKey, dto.CreateWebhookClientRequest{
			WebhookURL:   "https://example.com/hook",
			EventFilters: []string{"token.minted"},
		})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("jwt is rejected", func(t *testing.T) {
		tr := setupTestRouter(t, false)
		w := tr.do(http.MethodPost, "/api/v1/webhooks/clients", tr.bearer(t, testAdmin), dto.CreateWebhookClientRequest{
			WebhookURL:   "https://example.com/hook",
			EventFilters: []string{"token.minted"},
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("plain http outside debug", func(t *testing.T) {
		tr := setupTestRouter(t, false)
		w := tr.do(http.MethodPost, "/api/v1/webhooks/clients", "ApiKey "+testAPIKey, dto.CreateWebhookClientRequest{
			WebhookURL:   "http://example.com/hook",
			EventFilters: []string{"*"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("plain http in debug", func(t *testing.T) {
		tr := setupTestRouter(t, true)
		tr.executor.EXPECT().
			CreateWebhookClient(gomock.Any(), "http://localhost:8080/hook", []string{"*"}, 5).
			Return(&dto.CreateWebhookClientResponse{ClientID: "c1"}, nil)

		w := tr.do(http.MethodPost, "/api/v1/webhooks/clients", "ApiKey "+testAPIKey, dto.CreateWebhookClientRequest{
			WebhookURL:   "http://localhost:8080/hook",
			EventFilters: []string{"*"},
		})
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}
