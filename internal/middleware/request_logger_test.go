package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/coating-service/internal/domain/model"
)

func Test_getLogLevel(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusOK, model.LevelInfo},
		{http.StatusCreated, model.LevelInfo},
		{http.StatusFound, model.LevelInfo},
		{http.StatusBadRequest, model.LevelWarn},
		{http.StatusUnprocessableEntity, model.LevelWarn},
		{http.StatusInternalServerError, model.LevelError},
		{http.StatusServiceUnavailable, model.LevelError},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, getLogLevel(tt.status))
		})
	}
}

func TestRequestLogger(t *testing.T) {
	t.Run("persists the request with http details", func(t *testing.T) {
		svc, entries := captureService(t)
		r := newTestEngine(RequestID(), RequestLogger(svc))
		r.POST("/api/quotes/estimate", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

		req := httptest.NewRequest(http.MethodPost, "/api/quotes/estimate", nil)
		req.Header.Set(RequestIDHeader, "req-1")
		req.Header.Set("User-Agent", "quote-form/1.0")
		r.ServeHTTP(httptest.NewRecorder(), req)

		e := receiveEntry(t, entries)
		assert.Equal(t, model.LevelWarn, e.Level)
		assert.Equal(t, "HTTP request", e.Message)
		assert.Equal(t, "req-1", e.RequestID)
		require.NotNil(t, e.HTTP)
		assert.Equal(t, http.MethodPost, e.HTTP.Method)
		assert.Equal(t, "/api/quotes/estimate", e.HTTP.Path)
		assert.Equal(t, http.StatusBadRequest, e.HTTP.Status)
		assert.Equal(t, "quote-form/1.0", e.HTTP.UserAgent)
		assert.Nil(t, e.Actor)
	})

	t.Run("captures the authenticated actor and handler error", func(t *testing.T) {
		svc, entries := captureService(t)
		userID := primitive.NewObjectID()
		r := newTestEngine(RequestID(), RequestLogger(svc), asUser(userID, "ana@example.com", model.RoleCustomer))
		r.GET("/api/quotes", func(c *gin.Context) {
			_ = c.Error(assert.AnError)
			c.Status(http.StatusInternalServerError)
		})

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/quotes", nil))

		e := receiveEntry(t, entries)
		assert.Equal(t, model.LevelError, e.Level)
		require.NotNil(t, e.Actor)
		assert.Equal(t, userID.Hex(), e.Actor.UserID)
		assert.Equal(t, "ana@example.com", e.Actor.Email)
		assert.Equal(t, assert.AnError.Error(), e.Error)
	})

	t.Run("nil logging service only logs to console", func(t *testing.T) {
		StopAsyncLogger()
		r := newTestEngine(RequestID(), RequestLogger(nil))
		r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
