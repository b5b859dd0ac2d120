package dto

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/coating-service/internal/domain/model"
)

// assertInvalid checks err is a ValidationError on field with message.
func assertInvalid(t *testing.T, err error, field, message string) {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "want ValidationError, got %v", err)
	assert.Equal(t, field, verr.Field)
	assert.Equal(t, message, verr.Message)
}

func TestLoginRequest_Validate(t *testing.T) {
	t.Run("accepts and normalizes", func(t *testing.T) {
		req := LoginRequest{Email: " Shop@Example.COM", Password: "password123"}
		require.NoError(t, req.Validate())
		assert.Equal(t, "shop@example.com", req.Email)
	})

	rejects := []struct {
		name, email, password, field, message string
	}{
		{"blank email", "   ", "password123", "email", "email is required"},
		{"short password", "shop@example.com", "12345", "password", "password must be at least 6 characters"},
		{"empty password", "shop@example.com", "", "password", "password must be at least 6 characters"},
	}
	for _, tc := range rejects {
		t.Run(tc.name, func(t *testing.T) {
			req := LoginRequest{Email: tc.email, Password: tc.password}
			assertInvalid(t, req.Validate(), tc.field, tc.message)
		})
	}
}

func TestRegisterRequest_Validate(t *testing.T) {
	t.Run("accepts with and without company", func(t *testing.T) {
		for _, company := range []string{"  Acme Gates ", ""} {
			req := RegisterRequest{Email: "Ana@Example.com ", Password: "password123", Name: " Ana ", Company: company}
			require.NoError(t, req.Validate())
			assert.Equal(t, "ana@example.com", req.Email)
			assert.Equal(t, "Ana", req.Name)
			assert.Equal(t, strings.TrimSpace(company), req.Company)
		}
	})

	valid := func() RegisterRequest {
		return RegisterRequest{Email: "ana@example.com", Password: "password123", Name: "Ana"}
	}
	rejects := []struct {
		name           string
		mutate         func(*RegisterRequest)
		field, message string
	}{
		{"blank email", func(r *RegisterRequest) { r.Email = "  " }, "email", "email is required"},
		{"short password", func(r *RegisterRequest) { r.Password = "12345" }, "password", "password must be at least 6 characters"},
		{"password past bcrypt limit", func(r *RegisterRequest) { r.Password = strings.Repeat("p", 73) }, "password", "password must be at most 72 bytes"},
		{"whitespace name", func(r *RegisterRequest) { r.Name = "\t " }, "name", "name is required"},
	}
	for _, tc := range rejects {
		t.Run(tc.name, func(t *testing.T) {
			req := valid()
			tc.mutate(&req)
			assertInvalid(t, req.Validate(), tc.field, tc.message)
		})
	}
}

func TestNewUserResponse(t *testing.T) {
	id := primitive.NewObjectID()
	resp := NewUserResponse(&model.User{
		ID:       id,
		Email:    "ana@example.com",
		Password: "hash",
		Name:     "Ana",
		Company:  "Acme Gates",
		Roles:    []string{model.RoleCustomer},
	})

	assert.Equal(t, id.Hex(), resp.ID)
	assert.Equal(t, "Acme Gates", resp.Company)
	assert.Equal(t, []string{"customer"}, resp.Roles)
}
