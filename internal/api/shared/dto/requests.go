package dto

import (
	"fmt"
	"strings"

	"github.com/feral-file/ff-nft-ledger/internal/api/shared/constants"
	apierrors "github.com/feral-file/ff-nft-ledger/internal/api/shared/errors"
	internalTypes "github.com/feral-file/ff-nft-ledger/internal/types"
	"github.com/feral-file/ff-nft-ledger/internal/webhook"
)

// MintRequest represents the request body for minting a token
type MintRequest struct {
	To      string `json:"to"`
	TokenID uint64 `json:"token_id"`
}

// Validate validates the request body
func (r *MintRequest) Validate() error {
	if strings.TrimSpace(r.To) == "" {
		return apierrors.NewValidationError("to is required")
	}
	if r.TokenID == 0 {
		return apierrors.NewValidationError("token_id must be a positive integer")
	}
	return nil
}

// ApproveRequest represents the request body for approving an account on a token.
// The zero address clears the approval.
type ApproveRequest struct {
	Approved string `json:"approved"`
}

// Validate validates the request body
func (r *ApproveRequest) Validate() error {
	if strings.TrimSpace(r.Approved) == "" {
		return apierrors.NewValidationError("approved is required")
	}
	return nil
}

// TransferRequest represents the request body for transferring a token
type TransferRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Validate validates the request body
func (r *TransferRequest) Validate() error {
	if strings.TrimSpace(r.From) == "" {
		return apierrors.NewValidationError("from is required")
	}
	if strings.TrimSpace(r.To) == "" {
		return apierrors.NewValidationError("to is required")
	}
	return nil
}

// CreateWebhookClientRequest represents the request body for creating a webhook client
type CreateWebhookClientRequest struct {
	WebhookURL       string   `json:"webhook_url"`
	EventFilters     []string `json:"event_filters"`
	RetryMaxAttempts *int     `json:"retry_max_attempts,omitempty"`
}

// Validate validates the request body; plain http endpoints are only accepted in debug mode
func (r *CreateWebhookClientRequest) Validate(debug bool) error {
	// Validate: webhook URL must be provided
	if r.WebhookURL == "" {
		return apierrors.NewValidationError("webhook_url is required")
	}

	// Validate: webhook URL must be valid
	if debug {
		if !internalTypes.IsValidURL(r.WebhookURL) {
			return apierrors.NewValidationError("webhook_url must be a valid URL")
		}
	} else {
		if !internalTypes.IsHTTPSURL(r.WebhookURL) {
			return apierrors.NewValidationError("webhook_url must be a valid HTTPS URL")
		}
	}

	// Validate: event filters must be provided
	if len(r.EventFilters) == 0 {
		return apierrors.NewValidationError("event_filters is required and must not be empty")
	}

	for _, eventType := range r.EventFilters {
		if !webhook.IsValidEventFilter(eventType) {
			return apierrors.NewValidationError(fmt.Sprintf("unsupported event type: %s. Supported types: %v", eventType, webhook.EventTypes))
		}
	}

	if r.RetryMaxAttempts != nil {
		if *r.RetryMaxAttempts < 1 || *r.RetryMaxAttempts > constants.MAX_RETRY_MAX_ATTEMPTS {
			return apierrors.NewValidationError(fmt.Sprintf("retry_max_attempts must be between 1 and %d", constants.MAX_RETRY_MAX_ATTEMPTS))
		}
	}

	return nil
}
