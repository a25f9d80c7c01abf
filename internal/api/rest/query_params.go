package rest

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-nft-ledger/internal/api/shared/constants"
	"github.com/feral-file/ff-nft-ledger/internal/domain"
)

// PaginationQueryParams holds the pagination query parameters shared by list endpoints
type PaginationQueryParams struct {
	Limit  int    `form:"limit,default=20"`
	Offset uint64 `form:"offset,default=0"`
}

// Validate validates the pagination parameters
func (p *PaginationQueryParams) Validate() error {
	if p.Limit < 1 {
		return fmt.Errorf("limit must be between 1 and %d", constants.MAX_PAGE_SIZE)
	}
	return nil
}

// ListEventsQueryParams holds query parameters for GET /events
type ListEventsQueryParams struct {
	PaginationQueryParams

	// Filters
	TokenID *string `form:"token_id"`
	Address *string `form:"address"`
}

// ParsePaginationQuery parses query parameters for paginated endpoints
func ParsePaginationQuery(c *gin.Context) (*PaginationQueryParams, error) {
	var params PaginationQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Cap limit
	if params.Limit > constants.MAX_PAGE_SIZE {
		params.Limit = constants.MAX_PAGE_SIZE
	}

	return &params, nil
}

// ParseListEventsQuery parses query parameters for GET /events
func ParseListEventsQuery(c *gin.Context) (*ListEventsQueryParams, error) {
	var params ListEventsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Cap limit
	if params.Limit > constants.MAX_PAGE_SIZE {
		params.Limit = constants.MAX_PAGE_SIZE
	}

	// Empty filters mean no filter
	if params.TokenID != nil && *params.TokenID == "" {
		params.TokenID = nil
	}
	if params.Address != nil && *params.Address == "" {
		params.Address = nil
	}

	return &params, nil
}

// ParsedTokenID returns the token filter as a token id
func (p *ListEventsQueryParams) ParsedTokenID() (*uint64, error) {
	if p.TokenID == nil {
		return nil, nil
	}
	id, err := domain.ParseTokenID(*p.TokenID)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
