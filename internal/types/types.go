package types

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

// IsValidURL checks if a string is an absolute http or https URL
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsHTTPSURL checks if a string is an absolute https URL
func IsHTTPSURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme == "https" && u.Host != ""
}

// GenerateUUID generates a random UUID string
func GenerateUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate uuid: %w", err)
	}
	return id.String(), nil
}

// GenerateSecureToken returns a hex string of length random bytes
func GenerateSecureToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
