package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/coating-service/internal/domain/dto"
	"github.com/guttosm/coating-service/internal/i18n"
)

const (
	// IdempotencyKeyHeader is the request header carrying the client's key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the store.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	maxIdempotencyKeyLength   = 255
)

// Idempotency replays the stored response for a repeated Idempotency-Key on
// POST, PUT and PATCH requests. Keys are scoped to the caller and route. The
// same key with a different body is rejected with 422; a retry that arrives
// while the first request is still running gets 409. Server errors are not
// stored so the client can retry them.
func Idempotency(store *IdempotencyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil || !idempotentMethod(c.Request.Method) {
			c.Next()
			return
		}
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			abortIdempotency(c, http.StatusBadRequest, dto.ErrCodeInvalidRequest, i18n.ErrKeyInvalidRequest)
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			abortIdempotency(c, http.StatusBadRequest, dto.ErrCodeInvalidRequest, i18n.ErrKeyInvalidRequestBody)
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		storeKey := scopedKey(c, key)
		fingerprint := fingerprintOf(body)

		if existing, claimed := store.begin(storeKey, fingerprint); !claimed {
			switch {
			case existing.Fingerprint != fingerprint:
				abortIdempotency(c, http.StatusUnprocessableEntity, dto.ErrCodeUnprocessable, i18n.ErrKeyIdempotencyReuse)
			case existing.inFlight():
				abortIdempotency(c, http.StatusConflict, dto.ErrCodeConflict, i18n.ErrKeyConflict)
			default:
				c.Header(IdempotencyReplayedHeader, "true")
				c.Data(existing.StatusCode, existing.ContentType, existing.Body)
				c.Abort()
			}
			return
		}

		writer := &capturingWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		defer func() {
			if r := recover(); r != nil {
				store.release(storeKey)
				panic(r)
			}
		}()

		c.Next()

		status := writer.Status()
		if status >= http.StatusInternalServerError {
			store.release(storeKey)
			return
		}
		store.complete(storeKey, &cachedResponse{
			Fingerprint: fingerprint,
			StatusCode:  status,
			ContentType: writer.Header().Get("Content-Type"),
			Body:        writer.body.Bytes(),
		})
	}
}

func idempotentMethod(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch
}

// scopedKey ties key to the caller and route so two users cannot collide.
func scopedKey(c *gin.Context, key string) string {
	owner := "ip:" + c.ClientIP()
	if id := GetUserID(c); !id.IsZero() {
		owner = "user:" + id.Hex()
	}
	return owner + "|" + c.Request.Method + "|" + c.Request.URL.Path + "|" + key
}

func fingerprintOf(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

func abortIdempotency(c *gin.Context, status int, code, key string) {
	message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
	c.AbortWithStatusJSON(status, dto.NewError(code, message).WithRequestID(GetRequestID(c)))
}

// capturingWriter copies the response body while it is written.
type capturingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *capturingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
