package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/coating-service/internal/domain/dto"
	"github.com/guttosm/coating-service/internal/i18n"
	"github.com/guttosm/coating-service/internal/logger"
	"github.com/guttosm/coating-service/internal/service"
)

// RequirePermission returns a middleware that lets the request through only
// when one of the caller's roles grants permission. It must run after JWTAuth.
func RequirePermission(accessService service.AccessService, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := i18n.GetLocale(c)
		requestID := GetRequestID(c)

		if _, ok := GetClaims(c); !ok {
			message := i18n.GetTranslator().Translate(i18n.ErrKeyUnauthorized, locale)
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewError(dto.ErrCodeUnauthorized, message).WithRequestID(requestID))
			return
		}

		allowed, err := accessService.HasPermission(c.Request.Context(), GetUserRoles(c), permission)
		if err != nil {
			log := logger.WithRequestID(requestID)
			log.Error().Err(err).Str("permission", permission).Msg("Permission check failed")
			message := i18n.GetTranslator().Translate(i18n.ErrKeyUnavailable, locale)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable,
				dto.NewError(dto.ErrCodeUnavailable, message).WithRequestID(requestID))
			return
		}
		if !allowed {
			message := i18n.GetTranslator().Translate(i18n.ErrKeyForbidden, locale)
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewError(dto.ErrCodeForbidden, message).WithRequestID(requestID))
			return
		}

		c.Next()
	}
}
