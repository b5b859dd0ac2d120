// Package dto defines Data Transfer Objects for authentication.
package dto

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/coating-service/internal/domain/model"
)

// LoginRequest represents the JSON request body for the login endpoint.
//
// @Description Request to authenticate a user
// @Example {"email": "user@example.com", "password": "password123"}
type LoginRequest struct {
	// Email is the user's email address.
	Email string `json:"email" binding:"required,email" example:"user@example.com"`
	// Password is the user's password.
	Password string `json:"password" binding:"required,min=6" example:"password123"`
} // @name LoginRequest

// RegisterRequest represents the JSON request body for the register endpoint.
//
// @Description Request to register a new user
// @Example {"email": "user@example.com", "password": "password123", "name": "John Doe", "company": "Acme Gates"}
type RegisterRequest struct {
	// Email is the user's email address.
	Email string `json:"email" binding:"required,email" example:"user@example.com"`
	// Password is the user's password (minimum 6 characters).
	Password string `json:"password" binding:"required,min=6,max=72" example:"password123"`
	// Name is the user's full name.
	Name string `json:"name" binding:"required,max=120" example:"John Doe"`
	// Company is the customer's business name (optional).
	Company string `json:"company,omitempty" binding:"max=120" example:"Acme Gates"`
} // @name RegisterRequest

// LoginResponse represents the JSON response body for the login endpoint.
//
// @Description Successful authentication response with JWT tokens
// @Example {"token": "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...", "refresh_token": "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...", "user": {"email": "user@example.com", "name": "John Doe"}}
type LoginResponse struct {
	// Token is the JWT access token.
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	// RefreshToken is the JWT refresh token.
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	// User contains the authenticated user information.
	User UserResponse `json:"user"`
} // @name LoginResponse

// TokenPair is an issued access token and its refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // seconds
}

// Claims identify the caller of an authenticated request.
type Claims struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
	Name   string             `json:"name"`
	Roles  []string           `json:"roles"`
}

// UserResponse represents user information in API responses.
type UserResponse struct {
	ID string `json:"id" example:"65f1c2e8a4b7c9d0e1f2a3b4"`
	// Email is the user's email address.
	Email string `json:"email" example:"user@example.com"`
	// Name is the user's full name.
	Name    string   `json:"name,omitempty" example:"John Doe"`
	Company string   `json:"company,omitempty" example:"Acme Gates"`
	Roles   []string `json:"roles" example:"customer"`
} // @name UserResponse

// NewUserResponse converts a user to its public representation.
func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:      u.ID.Hex(),
		Email:   u.Email,
		Name:    u.Name,
		Company: u.Company,
		Roles:   u.Roles,
	}
}

// minPasswordLength and maxPasswordLength bound passwords; bcrypt ignores
// everything past 72 bytes.
const (
	minPasswordLength = 6
	maxPasswordLength = 72
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkCredentials(email, password string) error {
	switch {
	case email == "":
		return &ValidationError{Field: "email", Message: "email is required"}
	case len(password) < minPasswordLength:
		return &ValidationError{Field: "password", Message: "password must be at least 6 characters"}
	}
	return nil
}

// Validate normalizes the email and checks the credentials are usable.
func (r *LoginRequest) Validate() error {
	r.Email = normalizeEmail(r.Email)
	return checkCredentials(r.Email, r.Password)
}

// Validate normalizes the email and name and checks what binding tags
// cannot express.
func (r *RegisterRequest) Validate() error {
	r.Email = normalizeEmail(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	r.Company = strings.TrimSpace(r.Company)
	if err := checkCredentials(r.Email, r.Password); err != nil {
		return err
	}
	if len(r.Password) > maxPasswordLength {
		return &ValidationError{Field: "password", Message: "password must be at most 72 bytes"}
	}
	if r.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	return nil
}
