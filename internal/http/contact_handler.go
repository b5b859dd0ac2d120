package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/coating-service/internal/domain/dto"
	"github.com/guttosm/coating-service/internal/middleware"
	"github.com/guttosm/coating-service/internal/service"
)

// ContactHandler stores contact form messages and lists them for staff.
type ContactHandler struct {
	contacts service.ContactService
	logging  service.LoggingService
}

// NewContactHandler creates a ContactHandler. logging may be nil.
func NewContactHandler(contacts service.ContactService, logging service.LoggingService) *ContactHandler {
	return &ContactHandler{contacts: contacts, logging: logging}
}

// Submit handles POST /api/contact.
//
// @Summary      Send a contact request
// @Description  Stores a message for the shop, optionally about an existing quote.
// @Tags         Contact
// @Accept       json
// @Produce      json
// @Param        request body dto.ContactRequestInput true "Contact form"
// @Success      201 {object} dto.SuccessResponse{data=model.ContactRequest} "Stored request"
// @Failure      400 {object} dto.ErrorResponse "Invalid input"
// @Failure      503 {object} dto.ErrorResponse "Database unavailable"
// @Router       /api/contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	builder := NewResponseBuilder(c)

	in, err := BindJSON[dto.ContactRequestInput](c)
	if err != nil {
		builder.InvalidInput(err)
		return
	}

	saved, err := h.contacts.Submit(c.Request.Context(), in.ToModel())
	if err != nil {
		builder.ServiceError(err)
		return
	}

	middleware.AuditLog(h.logging, c, middleware.ActionContactReceived, "Contact request received", map[string]any{
		"id":              saved.ID,
		"quote_reference": saved.QuoteReference,
	})
	builder.SuccessCreated(saved)
}

// List handles GET /api/admin/contact.
//
// @Summary      List contact requests
// @Description  Returns contact requests, newest first.
// @Tags         Admin
// @Produce      json
// @Param        limit query int false "Page size (max 100)" default(20)
// @Param        skip query int false "Results to skip" default(0)
// @Success      200 {object} dto.SuccessResponse{data=[]model.ContactRequest} "Contact requests"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure      403 {object} dto.ErrorResponse "Insufficient permissions"
// @Security     BearerAuth
// @Router       /api/admin/contact [get]
func (h *ContactHandler) List(c *gin.Context) {
	builder := NewResponseBuilder(c)

	q, err := BindQuery[dto.PageQuery](c)
	if err != nil {
		builder.InvalidInput(err)
		return
	}
	page := q.Normalized()

	requests, err := h.contacts.List(c.Request.Context(), page.Limit, page.Skip)
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(requests)
}
