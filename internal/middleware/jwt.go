package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/coating-service/internal/domain/dto"
	"github.com/guttosm/coating-service/internal/domain/model"
	"github.com/guttosm/coating-service/internal/i18n"
	"github.com/guttosm/coating-service/internal/service"
)

// Context keys set by JWTAuth.
const (
	UserIDKey     = "user_id"
	UserEmailKey  = "user_email"
	UserRolesKey  = "user_roles"
	UserClaimsKey = "user_claims"
)

// JWTAuth returns a middleware that requires a valid bearer access token and
// stores its claims in the context.
func JWTAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, key := bearerToken(c.GetHeader("Authorization"))
		if key != "" {
			abortUnauthorized(c, key)
			return
		}

		claims, err := authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c, i18n.ErrKeyInvalidToken)
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRolesKey, claims.Roles)
		c.Set(UserClaimsKey, claims)
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header. The second
// return value is the translation key of the problem, empty when the header
// is usable.
func bearerToken(header string) (string, string) {
	if header == "" {
		return "", i18n.ErrKeyTokenRequired
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", i18n.ErrKeyInvalidToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", i18n.ErrKeyTokenRequired
	}
	return token, ""
}

// BearerToken returns the bearer token of the request, or "".
func BearerToken(c *gin.Context) string {
	token, _ := bearerToken(c.GetHeader("Authorization"))
	return token
}

func abortUnauthorized(c *gin.Context, key string) {
	message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewError(dto.ErrCodeUnauthorized, message).WithRequestID(GetRequestID(c)))
}

// GetClaims returns the claims stored by JWTAuth.
func GetClaims(c *gin.Context) (*dto.Claims, bool) {
	v, ok := c.Get(UserClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*dto.Claims)
	return claims, ok && claims != nil
}

// GetUserID returns the authenticated user id, or the zero id.
func GetUserID(c *gin.Context) primitive.ObjectID {
	if v, ok := c.Get(UserIDKey); ok {
		if id, ok := v.(primitive.ObjectID); ok {
			return id
		}
	}
	return primitive.NilObjectID
}

// GetUserRoles returns the authenticated user's roles.
func GetUserRoles(c *gin.Context) []string {
	if v, ok := c.Get(UserRolesKey); ok {
		if roles, ok := v.([]string); ok {
			return roles
		}
	}
	return nil
}

func actorFromContext(c *gin.Context) *model.Actor {
	id := GetUserID(c)
	email := c.GetString(UserEmailKey)
	if id.IsZero() && email == "" {
		return nil
	}
	actor := &model.Actor{Email: email}
	if !id.IsZero() {
		actor.UserID = id.Hex()
	}
	return actor
}
