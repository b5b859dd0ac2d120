package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/coating-service/internal/domain/dto"
	"github.com/guttosm/coating-service/internal/mocks"
	"github.com/guttosm/coating-service/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testToken = "test-access-token"

// testRouterConfig returns a config without rate limiting so tests can
// send as many requests as they like.
func testRouterConfig() RouterConfig {
	cfg := DefaultRouterConfig()
	cfg.RateLimit = 0
	return cfg
}

// withAuth wires mock auth and access services that accept testToken for
// a user holding roles and grant exactly perms.
func withAuth(t *testing.T, cfg *RouterConfig, userID primitive.ObjectID, roles []string, perms ...string) (*mocks.MockAuthService, *mocks.MockAccessService) {
	t.Helper()
	auth := new(mocks.MockAuthService)
	access := new(mocks.MockAccessService)

	auth.On("ValidateToken", mock.Anything, testToken).Return(&dto.Claims{
		UserID: userID,
		Email:  "user@example.com",
		Roles:  roles,
	}, nil).Maybe()
	auth.On("ValidateToken", mock.Anything, mock.Anything).Return(nil, service.ErrInvalidToken).Maybe()

	for _, p := range perms {
		access.On("HasPermission", mock.Anything, mock.Anything, p).Return(true, nil).Maybe()
	}
	access.On("HasPermission", mock.Anything, mock.Anything, mock.Anything).Return(false, nil).Maybe()

	cfg.AuthService = auth
	cfg.AccessService = access
	return auth, access
}

func doRequest(router http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func bearer() []string {
	return []string{"Authorization", "Bearer " + testToken}
}

// decodeData unmarshals the data field of a success envelope into T.
func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Data      json.RawMessage `json:"data"`
		RequestID string          `json:"request_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	require.NotEmpty(t, envelope.RequestID)

	var out T
	require.NoError(t, json.Unmarshal(envelope.Data, &out), string(envelope.Data))
	return out
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}
