package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int {
	return &i
}

func TestMintRequest_Validate(t *testing.T) {
	assert.NoError(t, (&MintRequest{To: "0xabc", TokenID: 1}).Validate())
	assert.Error(t, (&MintRequest{To: "  ", TokenID: 1}).Validate())
	assert.Error(t, (&MintRequest{To: "0xabc"}).Validate())
}

func TestTransferRequest_Validate(t *testing.T) {
	assert.NoError(t, (&TransferRequest{From: "0xa", To: "0xb"}).Validate())
	assert.Error(t, (&TransferRequest{To: "0xb"}).Validate())
	assert.Error(t, (&TransferRequest{From: "0xa"}).Validate())
}

func TestCreateWebhookClientRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateWebhookClientRequest
		debug   bool
		wantErr bool
	}{
		{
			name: "valid https",
			req:  CreateWebhookClientRequest{WebhookURL: "https://example.com/hook", EventFilters: []string{"token.minted", "token.transferred"}},
		},
		{
			name: "wildcard",
			req:  CreateWebhookClientRequest{WebhookURL: "https://example.com/hook", EventFilters: []string{"*"}, RetryMaxAttempts: intPtr(10)},
		},
		{
			name:    "missing url",
			req:     CreateWebhookClientRequest{EventFilters: []string{"*"}},
			wantErr: true,
		},
		{
			name:    "http rejected outside debug",
			req:     CreateWebhookClientRequest{WebhookURL: "http://example.com/hook", EventFilters: []string{"*"}},
			wantErr: true,
		},
		{
			name:  "http accepted in debug",
			req:   CreateWebhookClientRequest{WebhookURL: "http://localhost:8080/hook", EventFilters: []string{"*"}},
			debug: true,
		},
		{
			name:    "garbage url in debug",
			req:     CreateWebhookClientRequest{WebhookURL: "not a url", EventFilters: []string{"*"}},
			debug:   true,
			wantErr: true,
		},
		{
			name:    "no filters",
			req:     CreateWebhookClientRequest{WebhookURL: "https://example.com/hook"},
			wantErr: true,
		},
		{
			name:    "unknown filter",
			req:     CreateWebhookClientRequest{WebhookURL: "https://example.com/hook", EventFilters: []string{"token.burned"}},
			wantErr: true,
		},
		{
			name:    "retry too low",
			req:     CreateWebhookClientRequest{WebhookURL: "https://example.com/hook", EventFilters: []string{"*"}, RetryMaxAttempts: intPtr(0)},
			wantErr: true,
		},
		{
			name:    "retry too high",
			req:     CreateWebhookClientRequest{WebhookURL: "https://example.com/hook", EventFilters: []string{"*"}, RetryMaxAttempts: intPtr(11)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate(tt.debug)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
