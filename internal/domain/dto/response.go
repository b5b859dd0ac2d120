package dto

import (
	"net/http"
	"time"
)

// Error codes carried in ErrorResponse.Error.
const (
	ErrCodeInvalidRequest  = "invalid_request"
	ErrCodeUnauthorized    = "unauthorized"
	ErrCodeForbidden       = "forbidden"
	ErrCodeNotFound        = "not_found"
	ErrCodeConflict        = "conflict"
	ErrCodePayloadTooLarge = "payload_too_large"
	// ErrCodeUnprocessable is a well-formed request naming things the
	// active catalog does not offer, or a transition the quote cannot take.
	ErrCodeUnprocessable = "unprocessable"
	ErrCodeRateLimit     = "rate_limit_exceeded"
	ErrCodeTimeout       = "timeout"
	ErrCodeUnavailable   = "service_unavailable"
	ErrCodeInternal      = "internal_error"
)

var statusCodes = map[int]string{
	http.StatusBadRequest:            ErrCodeInvalidRequest,
	http.StatusUnauthorized:          ErrCodeUnauthorized,
	http.StatusForbidden:             ErrCodeForbidden,
	http.StatusNotFound:              ErrCodeNotFound,
	http.StatusRequestTimeout:        ErrCodeTimeout,
	http.StatusConflict:              ErrCodeConflict,
	http.StatusRequestEntityTooLarge: ErrCodePayloadTooLarge,
	http.StatusUnprocessableEntity:   ErrCodeUnprocessable,
	http.StatusTooManyRequests:       ErrCodeRateLimit,
	http.StatusServiceUnavailable:    ErrCodeUnavailable,
	http.StatusGatewayTimeout:        ErrCodeTimeout,
}

// SuccessResponse is the envelope around every successful payload.
// @Description Successful API response wrapper
type SuccessResponse struct {
	Data      any       `json:"data" swaggertype:"object"`
	RequestID string    `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time `json:"timestamp" example:"2026-03-02T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse is the envelope around every failure.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message,omitempty" example:"Quote is missing required selections"`
	// Details maps a field to what is wrong with it.
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2026-03-02T10:00:00Z"`
} // @name ErrorResponse

// NewError stamps an error envelope with the current time.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: code, Message: message, Timestamp: time.Now()}
}

func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// ErrCodeFromStatus maps an HTTP status to its error code. Unlisted
// statuses are internal errors.
func ErrCodeFromStatus(status int) string {
	if code, ok := statusCodes[status]; ok {
		return code
	}
	return ErrCodeInternal
}
