package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/coating-service/internal/domain/model"
)

// ContentRoutes registers the blog, contact and log endpoints.
type ContentRoutes struct {
	blog    *BlogHandler
	contact *ContactHandler
	logs    *LogsHandler
}

// NewContentRoutes creates a ContentRoutes. Handlers whose service is not
// configured are left out.
func NewContentRoutes(cfg *RouterConfig) *ContentRoutes {
	r := &ContentRoutes{}
	if cfg.BlogService != nil {
		r.blog = NewBlogHandler(cfg.BlogService, cfg.LoggingService)
	}
	if cfg.ContactService != nil {
		r.contact = NewContactHandler(cfg.ContactService, cfg.LoggingService)
	}
	if cfg.LoggingService != nil {
		r.logs = NewLogsHandler(cfg.LoggingService)
	}
	return r
}

// RegisterPublicRoutes registers reading posts and the contact form.
func (r *ContentRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	if r.blog != nil {
		rg.GET("/posts", r.blog.List)
		rg.GET("/posts/:slug", r.blog.Get)
	}
	if r.contact != nil {
		rg.POST("/contact", r.contact.Submit)
	}
}

// RegisterProtectedRoutes registers post editing, the contact inbox and log search.
func (r *ContentRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	admin := rg.Group("/admin")
	if r.blog != nil {
		admin.POST("/posts", permission(cfg, model.PermPostsWrite), r.blog.Save)
		admin.DELETE("/posts/:slug", permission(cfg, model.PermPostsWrite), r.blog.Delete)
	}
	if r.contact != nil {
		admin.GET("/contact", permission(cfg, model.PermContactRead), r.contact.List)
	}
	if r.logs != nil {
		admin.GET("/logs", permission(cfg, model.PermLogsRead), r.logs.Search)
	}
}
