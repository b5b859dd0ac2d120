package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	origins := []string{"http://localhost:3000", "https://coating.example"}

	tests := []struct {
		name           string
		method         string
		origin         string
		expectedStatus int
		allowOrigin    string
	}{
		{name: "preflight from allowed origin", method: http.MethodOptions, origin: "https://coating.example", expectedStatus: http.StatusNoContent, allowOrigin: "https://coating.example"},
		{name: "simple request from allowed origin", method: http.MethodGet, origin: "http://localhost:3000", expectedStatus: http.StatusOK, allowOrigin: "http://localhost:3000"},
		{name: "request from unknown origin", method: http.MethodGet, origin: "https://evil.example", expectedStatus: http.StatusForbidden},
		{name: "same-site request without origin", method: http.MethodGet, origin: "", expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestEngine(CORS(origins))
			r.GET("/api/catalog", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(tt.method, "/api/catalog", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.method == http.MethodOptions {
				req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.allowOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			if tt.allowOrigin != "" {
				assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
			}
		})
	}
}

func TestCORS_EmptyOriginsFallsBackToLocalhost(t *testing.T) {
	r := newTestEngine(CORS(nil))
	r.GET("/api/catalog", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
