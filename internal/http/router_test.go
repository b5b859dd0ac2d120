package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/coating-service/internal/middleware"
	"github.com/guttosm/coating-service/internal/service"
)

func publicOnlyConfig() RouterConfig {
	cfg := testRouterConfig()
	cfg.CatalogService = service.NewCatalogService(nil, nil)
	cfg.QuoteService = service.NewQuoteService(cfg.CatalogService, nil)
	return cfg
}

func TestNewRouter_WithoutAuthOnlyPublicRoutes(t *testing.T) {
	router := NewRouter(NewHealthHandler(), publicOnlyConfig())

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/readyz", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/api/catalog", http.StatusOK},
		{http.MethodPost, "/api/auth/login", http.StatusNotFound},
		{http.MethodPost, "/api/quotes", http.StatusNotFound},
		{http.MethodGet, "/api/admin/logs", http.StatusNotFound},
		{http.MethodGet, "/api/posts", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := doRequest(router, tt.method, tt.path, "")
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestNewRouter_SetsRequestID(t *testing.T) {
	router := NewRouter(NewHealthHandler(), publicOnlyConfig())

	w := doRequest(router, http.MethodGet, "/api/catalog", "", middleware.RequestIDHeader, "client-id-1")

	assert.Equal(t, "client-id-1", w.Header().Get(middleware.RequestIDHeader))
}

func TestNewRouter_SwaggerBasicAuth(t *testing.T) {
	cfg := publicOnlyConfig()
	cfg.SwaggerUser = "docs"
	cfg.SwaggerPass = "secret"
	router := NewRouter(NewHealthHandler(), cfg)

	w := doRequest(router, http.MethodGet, "/swagger/index.html", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(router, http.MethodGet, "/swagger/index.html", "", "Authorization", "Basic ZG9jczpzZWNyZXQ=")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewRouter_RateLimit(t *testing.T) {
	cfg := publicOnlyConfig()
	cfg.RateLimit = 2
	router := NewRouter(NewHealthHandler(), cfg)

	for range 2 {
		require.Equal(t, http.StatusOK, doRequest(router, http.MethodGet, "/api/catalog", "").Code)
	}
	w := doRequest(router, http.MethodGet, "/api/catalog", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestNewRouter_BodyLimit(t *testing.T) {
	cfg := publicOnlyConfig()
	cfg.MaxBodyBytes = 32
	router := NewRouter(NewHealthHandler(), cfg)

	w := doRequest(router, http.MethodPost, "/api/quotes/estimate",
		`{"material":"steel","coating":{"type":"standard","finish":"glossy"},"color":{"type":"standard"},"quantity":1}`)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
