package domain

import "errors"

var (
	// ErrUnauthorized is returned when the caller is not allowed to perform the operation
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAlreadyMinted is returned when attempting to mint a token id that already exists
	ErrAlreadyMinted = errors.New("token already minted")

	// ErrSupplyExceeded is returned when a mint would push total supply past max supply
	ErrSupplyExceeded = errors.New("max supply exceeded")

	// ErrNonexistentToken is returned when a token id has never been minted
	ErrNonexistentToken = errors.New("nonexistent token")

	// ErrInvalidAddress is returned for malformed accounts and for the zero address as a recipient
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidTokenID is returned when minting token id 0
	ErrInvalidTokenID = errors.New("invalid token id")

	// ErrCollectionMismatch is returned when a persisted collection differs from the configured one
	ErrCollectionMismatch = errors.New("collection mismatch")
)
