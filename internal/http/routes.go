package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/coating-service/internal/middleware"
)

// PublicRouteGroup defines routes that don't require authentication.
type PublicRouteGroup interface {
	// RegisterPublicRoutes registers public routes to the given router group.
	RegisterPublicRoutes(rg *gin.RouterGroup)
}

// ProtectedRouteGroup defines routes that require authentication.
type ProtectedRouteGroup interface {
	// RegisterProtectedRoutes registers routes behind JWTAuth. Permission
	// checks are added per route.
	RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}

// permission returns the middleware guarding a route with perm.
func permission(cfg *RouterConfig, perm string) gin.HandlerFunc {
	return middleware.RequirePermission(cfg.AccessService, perm)
}
