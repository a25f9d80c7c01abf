package domain

const (
	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// Token URI defaults
	DEFAULT_BASE_URI   = "https://example.com/metadata/"
	DEFAULT_URI_SUFFIX = ".json"
)
