package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-nft-ledger/internal/api/middleware"
	"github.com/feral-file/ff-nft-ledger/internal/api/shared/constants"
	"github.com/feral-file/ff-nft-ledger/internal/api/shared/dto"
	"github.com/feral-file/ff-nft-ledger/internal/api/shared/executor"
	"github.com/feral-file/ff-nft-ledger/internal/domain"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// GetCollection retrieves the collection with its current supply
	// GET /api/v1/collection
	GetCollection(c *gin.Context)

	// GetBalance retrieves the balance of an account
	// GET /api/v1/accounts/:address/balance
	GetBalance(c *gin.Context)

	// ListTokensOfOwner retrieves the tokens of an account ordered by id
	// GET /api/v1/accounts/:address/tokens?limit=<limit>&offset=<offset>
	ListTokensOfOwner(c *gin.Context)

	// GetToken retrieves a minted token
	// GET /api/v1/tokens/:token_id
	GetToken(c *gin.Context)

	// GetOwner retrieves the owner of a minted token
	// GET /api/v1/tokens/:token_id/owner
	GetOwner(c *gin.Context)

	// GetApproved retrieves the approved account of a minted token
	// GET /api/v1/tokens/:token_id/approved
	GetApproved(c *gin.Context)

	// GetTokenURI retrieves the metadata locator of a minted token
	// GET /api/v1/tokens/:token_id/uri
	GetTokenURI(c *gin.Context)

	// ListEvents retrieves journal entries in sequence order
	// GET /api/v1/events?token_id=<id>&address=<address>&limit=<limit>&offset=<offset>
	ListEvents(c *gin.Context)

	// Mint mints a token; the caller is the authenticated subject
	// POST /api/v1/tokens/mint
	Mint(c *gin.Context)

	// Approve approves an account on a token; the caller is the authenticated subject
	// POST /api/v1/tokens/:token_id/approve
	Approve(c *gin.Context)

	// Transfer transfers a token; the caller is the authenticated subject
	// POST /api/v1/tokens/:token_id/transfer
	Transfer(c *gin.Context)

	// CreateWebhookClient creates a new webhook client (requires authentication via API key)
	// POST /api/v1/webhooks/clients
	CreateWebhookClient(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	debug    bool
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(debug bool, exec executor.Executor) Handler {
	return &handler{
		debug:    debug,
		executor: exec,
	}
}

// GetCollection retrieves the collection with its current supply
func (h *handler) GetCollection(c *gin.Context) {
	collection, err := h.executor.GetCollection(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get collection")
		return
	}

	c.JSON(http.StatusOK, collection)
}

// GetBalance retrieves the balance of an account
func (h *handler) GetBalance(c *gin.Context) {
	address := c.Param("address")

	balance, err := h.executor.GetBalance(c.Request.Context(), address)
	if err != nil {
		respondError(c, err, "Failed to get balance")
		return
	}

	c.JSON(http.StatusOK, balance)
}

// ListTokensOfOwner retrieves the tokens of an account ordered by id
func (h *handler) ListTokensOfOwner(c *gin.Context) {
	address := c.Param("address")

	queryParams, err := ParsePaginationQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if err := queryParams.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.GetTokensOfOwner(c.Request.Context(), address, queryParams.Limit, queryParams.Offset)
	if err != nil {
		respondError(c, err, "Failed to list tokens")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetToken retrieves a minted token
func (h *handler) GetToken(c *gin.Context) {
	tokenID, ok := parseTokenIDParam(c)
	if !ok {
		return
	}

	token, err := h.executor.GetToken(c.Request.Context(), tokenID)
	if err != nil {
		respondError(c, err, "Failed to get token")
		return
	}

	c.JSON(http.StatusOK, token)
}

// GetOwner retrieves the owner of a minted token
func (h *handler) GetOwner(c *gin.Context) {
	tokenID, ok := parseTokenIDParam(c)
	if !ok {
		return
	}

	owner, err := h.executor.GetOwner(c.Request.Context(), tokenID)
	if err != nil {
		respondError(c, err, "Failed to get owner")
		return
	}

	c.JSON(http.StatusOK, owner)
}

// GetApproved retrieves the approved account of a minted token
func (h *handler) GetApproved(c *gin.Context) {
	tokenID, ok := parseTokenIDParam(c)
	if !ok {
		return
	}

	approved, err := h.executor.GetApproved(c.Request.Context(), tokenID)
	if err != nil {
		respondError(c, err, "Failed to get approved account")
		return
	}

	c.JSON(http.StatusOK, approved)
}

// GetTokenURI retrieves the metadata locator of a minted token
func (h *handler) GetTokenURI(c *gin.Context) {
	tokenID, ok := parseTokenIDParam(c)
	if !ok {
		return
	}

	uri, err := h.executor.GetTokenURI(c.Request.Context(), tokenID)
	if err != nil {
		respondError(c, err, "Failed to get token URI")
		return
	}

	c.JSON(http.StatusOK, uri)
}

// ListEvents retrieves journal entries in sequence order
func (h *handler) ListEvents(c *gin.Context) {
	queryParams, err := ParseListEventsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if err := queryParams.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	tokenID, err := queryParams.ParsedTokenID()
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.GetEvents(c.Request.Context(), tokenID, queryParams.Address, queryParams.Limit, queryParams.Offset)
	if err != nil {
		respondError(c, err, "Failed to list events")
		return
	}

	c.JSON(http.StatusOK, response)
}

// Mint mints a token; the caller is the authenticated subject
func (h *handler) Mint(c *gin.Context) {
	var req dto.MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	event, err := h.executor.Mint(c.Request.Context(), middleware.Caller(c), req.To, req.TokenID)
	if err != nil {
		respondError(c, err, "Failed to mint token")
		return
	}

	c.JSON(http.StatusCreated, event)
}

// Approve approves an account on a token; the caller is the authenticated subject
func (h *handler) Approve(c *gin.Context) {
	tokenID, ok := parseTokenIDParam(c)
	if !ok {
		return
	}

	var req dto.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	event, err := h.executor.Approve(c.Request.Context(), middleware.Caller(c), req.Approved, tokenID)
	if err != nil {
		respondError(c, err, "Failed to approve")
		return
	}

	c.JSON(http.StatusOK, event)
}

// Transfer transfers a token; the caller is the authenticated subject
func (h *handler) Transfer(c *gin.Context) {
	tokenID, ok := parseTokenIDParam(c)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	event, err := h.executor.Transfer(c.Request.Context(), middleware.Caller(c), req.From, req.To, tokenID)
	if err != nil {
		respondError(c, err, "Failed to transfer token")
		return
	}

	c.JSON(http.StatusOK, event)
}

// CreateWebhookClient creates a new webhook client (requires authentication via API key)
func (h *handler) CreateWebhookClient(c *gin.Context) {
	var req dto.CreateWebhookClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Validate request body
	if err := req.Validate(h.debug); err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	retryMaxAttempts := constants.DEFAULT_RETRY_MAX_ATTEMPTS
	if req.RetryMaxAttempts != nil {
		retryMaxAttempts = *req.RetryMaxAttempts
	}

	response, err := h.executor.CreateWebhookClient(
		c.Request.Context(),
		req.WebhookURL,
		req.EventFilters,
		retryMaxAttempts,
	)
	if err != nil {
		respondError(c, err, "Failed to create webhook client")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ff-nft-ledger-api",
	})
}

// parseTokenIDParam reads the :token_id path parameter, responding 400 when it is not a decimal integer
func parseTokenIDParam(c *gin.Context) (uint64, bool) {
	tokenID, err := domain.ParseTokenID(c.Param("token_id"))
	if err != nil {
		respondBadRequest(c, "Invalid token ID", err.Error())
		return 0, false
	}
	return tokenID, true
}
