package http

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/coating-service/internal/catalog"
	"github.com/guttosm/coating-service/internal/domain/dto"
	"github.com/guttosm/coating-service/internal/i18n"
	"github.com/guttosm/coating-service/internal/middleware"
	"github.com/guttosm/coating-service/internal/service"
)

const maxVersionsLimit = 100

// CatalogHandler exposes the active catalog and lets admins publish new versions.
type CatalogHandler struct {
	catalogs service.CatalogService
	logging  service.LoggingService
}

// NewCatalogHandler creates a CatalogHandler. logging may be nil.
func NewCatalogHandler(catalogs service.CatalogService, logging service.LoggingService) *CatalogHandler {
	return &CatalogHandler{catalogs: catalogs, logging: logging}
}

// Get handles GET /api/catalog.
//
// @Summary      Active catalog
// @Description  Returns every option the quote form offers, with prices and discount rules.
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.CatalogResponse} "Active catalog"
// @Router       /api/catalog [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	snap := h.catalogs.Snapshot()
	c.Header("ETag", strconv.Quote(snap.Checksum))
	if match := c.GetHeader("If-None-Match"); match != "" && match == strconv.Quote(snap.Checksum) {
		c.Status(http.StatusNotModified)
		return
	}
	NewResponseBuilder(c).SuccessOK(dto.CatalogResponse{
		Version:  snap.Version,
		Checksum: snap.Checksum,
		Catalog:  snap.Catalog.Spec(),
	})
}

// Publish handles PUT /api/admin/catalog.
//
// @Summary      Publish a catalog
// @Description  Validates the catalog in the body (JSON or YAML) and makes it the active version. Publishing a catalog identical to the active one is a no-op.
// @Tags         Admin
// @Accept       json,application/yaml
// @Produce      json
// @Param        request body catalog.Spec true "Full catalog"
// @Success      200 {object} dto.SuccessResponse{data=dto.CatalogResponse} "Active catalog after publishing"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure      403 {object} dto.ErrorResponse "Insufficient permissions"
// @Failure      409 {object} dto.ErrorResponse "Concurrent publish"
// @Failure      413 {object} dto.ErrorResponse "Body too large"
// @Failure      422 {object} dto.ErrorResponse "Catalog failed validation"
// @Security     BearerAuth
// @Router       /api/admin/catalog [put]
func (h *CatalogHandler) Publish(c *gin.Context) {
	builder := NewResponseBuilder(c)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		builder.InvalidInput(err)
		return
	}
	// YAML is a superset of JSON, so one decoder covers both content types.
	spec, err := catalog.Decode(bytes.NewReader(body))
	if err != nil {
		builder.ServiceError(err)
		return
	}

	createdBy := c.GetString(middleware.UserEmailKey)
	version, err := h.catalogs.Publish(c.Request.Context(), spec, createdBy)
	if err != nil {
		builder.ServiceError(err)
		return
	}

	middleware.AuditLog(h.logging, c, middleware.ActionCatalogPublish, "Catalog published", map[string]any{
		"version":  version.Version,
		"checksum": version.Checksum,
	})

	snap := h.catalogs.Snapshot()
	builder.SuccessOK(dto.CatalogResponse{
		Version:  snap.Version,
		Checksum: snap.Checksum,
		Catalog:  snap.Catalog.Spec(),
	})
}

// Versions handles GET /api/admin/catalog/versions.
//
// @Summary      Catalog history
// @Description  Lists published catalog versions, newest first.
// @Tags         Admin
// @Produce      json
// @Param        limit query int false "Versions to return (max 100)" default(20)
// @Success      200 {object} dto.SuccessResponse{data=[]model.CatalogVersion} "Versions"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure      403 {object} dto.ErrorResponse "Insufficient permissions"
// @Security     BearerAuth
// @Router       /api/admin/catalog/versions [get]
func (h *CatalogHandler) Versions(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit := dto.DefaultPageLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxVersionsLimit {
			builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err,
				map[string]string{"limit": "between 1 and 100"})
			return
		}
		limit = n
	}

	versions, err := h.catalogs.Versions(c.Request.Context(), limit)
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(versions)
}
