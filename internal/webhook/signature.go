package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/feral-file/ff-nft-ledger/internal/adapter"
)

// SignatureHeader is the header carrying the payload signature
const SignatureHeader = "X-Webhook-Signature"

// GenerateSignedPayload generates a signed webhook payload with HMAC-SHA256 signature.
// The secret is hex encoded. Returns the JSON payload, signature header value and timestamp.
func GenerateSignedPayload(jsonAdapter adapter.JSON, secret string, event WebhookEvent, now time.Time) (payload []byte, signature string, timestamp int64, err error) {
	key, err := hex.DecodeString(secret)
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to decode hex secret: %w", err)
	}

	payload, err = jsonAdapter.Marshal(event)
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to marshal event: %w", err)
	}

	timestamp = now.Unix()
	signature = Sign(key, timestamp, event.EventID, payload)
	return payload, signature, timestamp, nil
}

// Sign computes "sha256=<hex>" over {timestamp}.{event_id}.{payload}
func Sign(key []byte, timestamp int64, eventID string, payload []byte) string {
	h := hmac.New(sha256.New, key)
	fmt.Fprintf(h, "%d.%s.", timestamp, eventID)
	h.Write(payload)
	return "sha256=" + hex.EncodeToString(h.Sum(nil))
}

// Verify checks a signature header value in constant time
func Verify(secret string, timestamp int64, eventID string, payload []byte, signature string) bool {
	key, err := hex.DecodeString(secret)
	if err != nil {
		return false
	}
	expected := Sign(key, timestamp, eventID, payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}
