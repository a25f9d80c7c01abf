package constants

const (
	MAX_PAGE_SIZE              = 100
	DEFAULT_OFFSET             = uint64(0)
	DEFAULT_TOKENS_LIMIT       = 20
	DEFAULT_EVENTS_LIMIT       = 20
	DEFAULT_RETRY_MAX_ATTEMPTS = 5
	MAX_RETRY_MAX_ATTEMPTS     = 10
	WEBHOOK_SECRET_BYTES       = 32
)
