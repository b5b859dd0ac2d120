package i18n

// Error message translation keys.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyUnauthorized       = "error.unauthorized"
	// ErrKeyInvalidCredentials covers both unknown email and wrong password.
	ErrKeyInvalidCredentials = "error.invalid_credentials"
	ErrKeyForbidden          = "error.forbidden"
	ErrKeyNotFound           = "error.not_found"
	ErrKeyRateLimitExceeded  = "error.rate_limit_exceeded"
	ErrKeyConflict           = "error.conflict"
	ErrKeyInvalidToken       = "error.invalid_token"
	ErrKeyTokenRequired      = "error.token_required"
	ErrKeyTimeout            = "error.timeout"
	ErrKeyUnavailable        = "error.unavailable"
	ErrKeyEmailTaken         = "error.email_taken"

	ErrKeyIncompleteQuote   = "error.quote.incomplete"
	ErrKeyUnknownOption     = "error.quote.unknown_option"
	ErrKeyInvalidStep       = "error.quote.invalid_step"
	ErrKeyInvalidDimensions = "error.quote.invalid_dimensions"
	ErrKeyQuoteNotFound     = "error.quote.not_found"
	ErrKeyInvalidTransition = "error.quote.invalid_transition"
	ErrKeyInvalidCatalog    = "error.catalog.invalid"
	ErrKeyPostNotFound      = "error.post.not_found"
	ErrKeyInvalidPost       = "error.post.invalid"
	ErrKeyIdempotencyReuse  = "error.idempotency.reused_key"
)

// Success message translation keys.
const (
	SuccessKeyQuoteEstimated  = "success.quote_estimated"
	SuccessKeyQuoteSubmitted  = "success.quote_submitted"
	SuccessKeyCatalogPublish  = "success.catalog_published"
	SuccessKeyContactReceived = "success.contact_received"
)
