package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/coating-service/internal/domain/dto"
	"github.com/guttosm/coating-service/internal/middleware"
	"github.com/guttosm/coating-service/internal/service"
)

// BlogHandler serves published posts and lets editors manage them.
type BlogHandler struct {
	blog    service.BlogService
	logging service.LoggingService
}

// NewBlogHandler creates a BlogHandler. logging may be nil.
func NewBlogHandler(blog service.BlogService, logging service.LoggingService) *BlogHandler {
	return &BlogHandler{blog: blog, logging: logging}
}

// List handles GET /api/posts.
//
// @Summary      List posts
// @Description  Returns published posts, newest first, without their bodies.
// @Tags         Blog
// @Produce      json
// @Param        limit query int false "Page size (max 100)" default(20)
// @Param        skip query int false "Results to skip" default(0)
// @Success      200 {object} dto.SuccessResponse{data=dto.Page[model.Post]} "Posts"
// @Failure      400 {object} dto.ErrorResponse "Invalid paging"
// @Router       /api/posts [get]
func (h *BlogHandler) List(c *gin.Context) {
	builder := NewResponseBuilder(c)

	q, err := BindQuery[dto.PageQuery](c)
	if err != nil {
		builder.InvalidInput(err)
		return
	}
	page := q.Normalized()

	posts, total, err := h.blog.List(c.Request.Context(), page.Limit, page.Skip)
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(dto.NewPage(posts, total, page))
}

// Get handles GET /api/posts/:slug.
//
// @Summary      Read a post
// @Description  Returns a published post rendered to sanitized HTML, with share links.
// @Tags         Blog
// @Produce      json
// @Param        slug path string true "Post slug" example(why-powder-coating-lasts)
// @Success      200 {object} dto.SuccessResponse{data=model.RenderedPost} "Post"
// @Failure      404 {object} dto.ErrorResponse "Post not found"
// @Router       /api/posts/{slug} [get]
func (h *BlogHandler) Get(c *gin.Context) {
	builder := NewResponseBuilder(c)

	post, err := h.blog.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(post)
}

// Save handles POST /api/admin/posts.
//
// @Summary      Create or update a post
// @Description  Takes a markdown document with YAML front matter (title, slug, summary, tags, published). A post with the same slug is replaced.
// @Tags         Admin
// @Accept       text/markdown
// @Produce      json
// @Param        request body string true "Markdown source with front matter"
// @Success      200 {object} dto.SuccessResponse{data=model.Post} "Saved post"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure      403 {object} dto.ErrorResponse "Insufficient permissions"
// @Failure      413 {object} dto.ErrorResponse "Body too large"
// @Failure      422 {object} dto.ErrorResponse "Front matter or body invalid"
// @Security     BearerAuth
// @Router       /api/admin/posts [post]
func (h *BlogHandler) Save(c *gin.Context) {
	builder := NewResponseBuilder(c)

	source, err := io.ReadAll(c.Request.Body)
	if err != nil {
		builder.InvalidInput(err)
		return
	}

	post, err := h.blog.Save(c.Request.Context(), source)
	if err != nil {
		builder.ServiceError(err)
		return
	}

	middleware.AuditLog(h.logging, c, middleware.ActionPostSaved, "Post saved", map[string]any{
		"slug":      post.Slug,
		"published": post.Published,
	})
	builder.SuccessOK(post)
}

// Delete handles DELETE /api/admin/posts/:slug.
//
// @Summary      Delete a post
// @Tags         Admin
// @Param        slug path string true "Post slug"
// @Success      204 "Deleted"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure      403 {object} dto.ErrorResponse "Insufficient permissions"
// @Failure      404 {object} dto.ErrorResponse "Post not found"
// @Security     BearerAuth
// @Router       /api/admin/posts/{slug} [delete]
func (h *BlogHandler) Delete(c *gin.Context) {
	slug := c.Param("slug")
	if err := h.blog.Delete(c.Request.Context(), slug); err != nil {
		NewResponseBuilder(c).ServiceError(err)
		return
	}

	middleware.AuditLog(h.logging, c, middleware.ActionPostDeleted, "Post deleted", map[string]any{"slug": slug})
	c.Status(http.StatusNoContent)
}
