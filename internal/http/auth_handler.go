package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/coating-service/internal/domain/dto"
	"github.com/guttosm/coating-service/internal/i18n"
	"github.com/guttosm/coating-service/internal/middleware"
	"github.com/guttosm/coating-service/internal/service"
)

// RefreshTokenHeader carries the refresh token on refresh and logout.
const RefreshTokenHeader = "X-Refresh-Token"

// AuthHandler provides HTTP handlers for authentication routes.
type AuthHandler struct {
	authService service.AuthService
	logging     service.LoggingService
}

// NewAuthHandler creates a new authentication handler. logging may be nil.
func NewAuthHandler(authService service.AuthService, logging service.LoggingService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logging:     logging,
	}
}

// Login handles POST /api/auth/login requests.
//
// @Summary      Login user
// @Description  Authenticates a user and returns a JWT token pair
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Login credentials"
// @Success      200 {object} dto.SuccessResponse{data=dto.LoginResponse} "Successful login"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid credentials"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.InvalidInput(err)
		return
	}
	if err := req.Validate(); err != nil {
		invalidField(builder, err)
		return
	}

	tokenPair, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			middleware.AuditLogError(h.logging, c, middleware.ActionLoginFailed, "Failed login attempt", err, map[string]any{
				"email": req.Email,
			})
		}
		builder.ServiceError(err)
		return
	}

	c.Set(middleware.UserIDKey, user.ID)
	c.Set(middleware.UserEmailKey, user.Email)
	middleware.AuditLog(h.logging, c, middleware.ActionLogin, "User logged in", nil)

	builder.SuccessOK(dto.LoginResponse{
		Token:        tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         dto.NewUserResponse(user),
	})
}

// Register handles POST /api/auth/register requests.
//
// @Summary      Register new customer
// @Description  Creates a customer account and returns a JWT token pair
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "Registration information"
// @Success      201 {object} dto.SuccessResponse{data=dto.LoginResponse} "Successful registration"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      409 {object} dto.ErrorResponse "Conflict - email already registered"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.InvalidInput(err)
		return
	}
	if err := req.Validate(); err != nil {
		invalidField(builder, err)
		return
	}

	tokenPair, user, err := h.authService.Register(c.Request.Context(), service.Registration{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Company:  req.Company,
	})
	if err != nil {
		builder.ServiceError(err)
		return
	}

	c.Set(middleware.UserIDKey, user.ID)
	c.Set(middleware.UserEmailKey, user.Email)
	middleware.AuditLog(h.logging, c, middleware.ActionRegister, "Customer registered", map[string]any{
		"company": user.Company,
	})

	builder.SuccessCreated(dto.LoginResponse{
		Token:        tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         dto.NewUserResponse(user),
	})
}

// RefreshToken handles POST /api/auth/refresh requests.
//
// @Summary      Refresh access token
// @Description  Exchanges the refresh token in the X-Refresh-Token header for a new token pair. The old refresh token stops working.
// @Tags         Auth
// @Produce      json
// @Param        X-Refresh-Token header string true "Refresh token"
// @Success      200 {object} dto.SuccessResponse{data=dto.LoginResponse} "New token pair"
// @Failure      400 {object} dto.ErrorResponse "Bad request - missing refresh token"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid refresh token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	builder := NewResponseBuilder(c)

	refreshToken := c.GetHeader(RefreshTokenHeader)
	if refreshToken == "" {
		builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidRequest,
			errors.New("missing refresh token"), map[string]string{RefreshTokenHeader: "required"})
		return
	}

	tokenPair, err := h.authService.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		builder.ServiceError(err)
		return
	}

	builder.SuccessOK(dto.LoginResponse{
		Token:        tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
	})
}

// Logout handles POST /api/auth/logout requests.
//
// @Summary      Logout user
// @Description  Revokes the bearer access token and deletes the refresh token from the X-Refresh-Token header, when present.
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Param        X-Refresh-Token header string false "Refresh token"
// @Success      204 "Logged out"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	err := h.authService.Logout(c.Request.Context(), middleware.BearerToken(c), c.GetHeader(RefreshTokenHeader))
	if err != nil {
		NewResponseBuilder(c).ServiceError(err)
		return
	}

	middleware.AuditLog(h.logging, c, middleware.ActionLogout, "User logged out", nil)
	c.Status(http.StatusNoContent)
}

// invalidField reports a dto.ValidationError as a 400 naming the field.
func invalidField(builder *ResponseBuilder, err error) {
	var ve *dto.ValidationError
	if errors.As(err, &ve) {
		builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err,
			map[string]string{ve.Field: ve.Message})
		return
	}
	builder.InvalidInput(err)
}
