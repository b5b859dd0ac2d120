package dto

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewError(t *testing.T) {
	before := time.Now()
	resp := NewError(ErrCodeUnprocessable, "unknown finish")

	assert.Equal(t, ErrCodeUnprocessable, resp.Error)
	assert.Equal(t, "unknown finish", resp.Message)
	assert.Empty(t, resp.RequestID)
	assert.False(t, resp.Timestamp.Before(before))
}

func TestErrorResponse_WithRequestIDLeavesOriginal(t *testing.T) {
	base := NewError(ErrCodeConflict, "quote already accepted")
	tagged := base.WithRequestID("req-42")

	assert.Equal(t, "req-42", tagged.RequestID)
	assert.Empty(t, base.RequestID)
	assert.Equal(t, base.Message, tagged.Message)
}

func TestErrCodeFromStatus(t *testing.T) {
	cases := map[int]string{
		http.StatusBadRequest:            ErrCodeInvalidRequest,
		http.StatusUnauthorized:          ErrCodeUnauthorized,
		http.StatusForbidden:             ErrCodeForbidden,
		http.StatusNotFound:              ErrCodeNotFound,
		http.StatusRequestTimeout:        ErrCodeTimeout,
		http.StatusConflict:              ErrCodeConflict,
		http.StatusRequestEntityTooLarge: ErrCodePayloadTooLarge,
		http.StatusUnprocessableEntity:   ErrCodeUnprocessable,
		http.StatusTooManyRequests:       ErrCodeRateLimit,
		http.StatusInternalServerError:   ErrCodeInternal,
		http.StatusBadGateway:            ErrCodeInternal,
		http.StatusServiceUnavailable:    ErrCodeUnavailable,
		http.StatusGatewayTimeout:        ErrCodeTimeout,
		http.StatusTeapot:                ErrCodeInternal,
	}
	for status, want := range cases {
		t.Run(strconv.Itoa(status), func(t *testing.T) {
			assert.Equal(t, want, ErrCodeFromStatus(status))
		})
	}
}
