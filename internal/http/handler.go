package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/coating-service/internal/domain/dto"
	"github.com/guttosm/coating-service/internal/domain/model"
	"github.com/guttosm/coating-service/internal/logger"
	"github.com/guttosm/coating-service/internal/middleware"
	"github.com/guttosm/coating-service/internal/service"
)

// QuoteHandler serves quote estimation, the quote form and saved quotes.
type QuoteHandler struct {
	quotes   service.QuoteService
	catalogs service.CatalogService
	access   service.AccessService
	logging  service.LoggingService
}

// NewQuoteHandler creates a QuoteHandler. access and logging may be nil.
func NewQuoteHandler(quotes service.QuoteService, catalogs service.CatalogService, access service.AccessService, logging service.LoggingService) *QuoteHandler {
	return &QuoteHandler{quotes: quotes, catalogs: catalogs, access: access, logging: logging}
}

// Estimate handles POST /api/quotes/estimate.
//
// @Summary      Estimate a quote
// @Description  Prices a complete quote request against the active catalog without saving it. Unknown option ids price as zero.
// @Tags         Quotes
// @Accept       json
// @Produce      json
// @Param        Accept-Language header string false "Preferred language (en, pt, nl)"
// @Param        request body dto.QuoteInput true "Quote selections"
// @Success      200 {object} dto.SuccessResponse{data=dto.EstimateResponse} "Itemized price"
// @Failure      400 {object} dto.ErrorResponse "Invalid input or missing selections"
// @Failure      429 {object} dto.ErrorResponse "Too many requests"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/quotes/estimate [post]
func (h *QuoteHandler) Estimate(c *gin.Context) {
	builder := NewResponseBuilder(c)

	in, err := BindJSON[dto.QuoteInput](c)
	if err != nil {
		builder.InvalidInput(err)
		return
	}

	breakdown, err := h.quotes.Estimate(c.Request.Context(), in.ToModel())
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(dto.EstimateResponse{
		Breakdown:      dto.NewBreakdownResponse(breakdown),
		CatalogVersion: h.catalogVersion(),
	})
}

// Draft handles POST /api/quotes/draft.
//
// @Summary      Apply a quote form step
// @Description  Applies one typed step of the multi-step quote form to the client-held draft. Returns the new draft, the next step to show and, once every required selection is made, a running estimate.
// @Tags         Quotes
// @Accept       json
// @Produce      json
// @Param        request body dto.DraftRequest true "Draft and step update"
// @Success      200 {object} dto.SuccessResponse{data=dto.DraftResponse} "Updated draft"
// @Failure      400 {object} dto.ErrorResponse "Invalid step or update"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/quotes/draft [post]
func (h *QuoteHandler) Draft(c *gin.Context) {
	builder := NewResponseBuilder(c)

	in, err := BindJSON[dto.DraftRequest](c)
	if err != nil {
		builder.InvalidInput(err)
		return
	}

	step := service.FormStep(in.Step)
	update, err := service.DecodeStepUpdate(step, in.Update)
	if err != nil {
		builder.ServiceError(err)
		return
	}
	next, err := service.Reduce(draftFromState(in.Draft), update)
	if err != nil {
		builder.ServiceError(err)
		return
	}

	resp := dto.DraftResponse{
		Draft:    stateFromDraft(next),
		NextStep: string(next.NextStep()),
		Missing:  next.Request.Missing(),
	}
	if req, err := next.QuoteRequest(); err == nil {
		breakdown, err := h.quotes.Estimate(c.Request.Context(), req)
		if err != nil {
			builder.ServiceError(err)
			return
		}
		estimate := dto.NewBreakdownResponse(breakdown)
		resp.Estimate = &estimate
	}
	builder.SuccessOK(resp)
}

// Submit handles POST /api/quotes.
//
// @Summary      Save a quote
// @Description  Prices the request in strict mode and saves it under a new reference. Every option id must exist in the active catalog. Send an Idempotency-Key to make retries safe.
// @Tags         Quotes
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.QuoteInput true "Quote selections"
// @Success      201 {object} dto.SuccessResponse{data=dto.QuoteResponse} "Saved quote"
// @Failure      400 {object} dto.ErrorResponse "Invalid input or missing selections"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure      403 {object} dto.ErrorResponse "Insufficient permissions"
// @Failure      409 {object} dto.ErrorResponse "Request with this Idempotency-Key still running"
// @Failure      422 {object} dto.ErrorResponse "Unknown option ids or reused Idempotency-Key"
// @Failure      503 {object} dto.ErrorResponse "Database unavailable"
// @Security     BearerAuth
// @Router       /api/quotes [post]
func (h *QuoteHandler) Submit(c *gin.Context) {
	builder := NewResponseBuilder(c)

	in, err := BindJSON[dto.QuoteInput](c)
	if err != nil {
		builder.InvalidInput(err)
		return
	}

	start := time.Now()
	record, err := h.quotes.Submit(c.Request.Context(), middleware.GetUserID(c), in.ToModel())
	if err != nil {
		builder.ServiceError(err)
		return
	}

	log := logger.WithRequestID(middleware.GetRequestID(c))
	log.Info().
		Str("reference", record.Reference).
		Str("total", record.Breakdown.Total.StringFixed(2)).
		Dur("duration", time.Since(start)).
		Msg("Quote submitted")
	middleware.AuditLog(h.logging, c, middleware.ActionQuoteSubmitted, "Quote submitted", map[string]any{
		"reference":       record.Reference,
		"total":           record.Breakdown.Total.StringFixed(2),
		"catalog_version": record.CatalogVersion,
	})
	builder.SuccessCreated(dto.NewQuoteResponse(record))
}

// ListMine handles GET /api/quotes.
//
// @Summary      List my quotes
// @Description  Returns the caller's saved quotes, newest first.
// @Tags         Quotes
// @Produce      json
// @Param        limit query int false "Page size (max 100)" default(20)
// @Param        skip query int false "Results to skip" default(0)
// @Success      200 {object} dto.SuccessResponse{data=dto.Page[dto.QuoteResponse]} "Quotes"
// @Failure      400 {object} dto.ErrorResponse "Invalid paging"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid token"
// @Security     BearerAuth
// @Router       /api/quotes [get]
func (h *QuoteHandler) ListMine(c *gin.Context) {
	builder := NewResponseBuilder(c)

	q, err := BindQuery[dto.PageQuery](c)
	if err != nil {
		builder.InvalidInput(err)
		return
	}
	page := q.Normalized()

	quotes, total, err := h.quotes.ListByUser(c.Request.Context(), middleware.GetUserID(c), page.Limit, page.Skip)
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(dto.NewPage(dto.NewQuoteResponses(quotes), total, page))
}

// Get handles GET /api/quotes/:reference.
//
// @Summary      Get a quote
// @Description  Returns one saved quote. Customers only see their own quotes.
// @Tags         Quotes
// @Produce      json
// @Param        reference path string true "Quote reference" example(QT-LZ3K9M2A-7QX)
// @Success      200 {object} dto.SuccessResponse{data=dto.QuoteResponse} "Quote"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure      404 {object} dto.ErrorResponse "Quote not found"
// @Security     BearerAuth
// @Router       /api/quotes/{reference} [get]
func (h *QuoteHandler) Get(c *gin.Context) {
	builder := NewResponseBuilder(c)

	viewer := service.Viewer{UserID: middleware.GetUserID(c), Admin: h.canReview(c)}
	record, err := h.quotes.Get(c.Request.Context(), c.Param("reference"), viewer)
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(dto.NewQuoteResponse(record))
}

// ListAll handles GET /api/admin/quotes.
//
// @Summary      List every quote
// @Description  Returns all saved quotes, newest first.
// @Tags         Admin
// @Produce      json
// @Param        limit query int false "Page size (max 100)" default(20)
// @Param        skip query int false "Results to skip" default(0)
// @Success      200 {object} dto.SuccessResponse{data=dto.Page[dto.QuoteResponse]} "Quotes"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure      403 {object} dto.ErrorResponse "Insufficient permissions"
// @Security     BearerAuth
// @Router       /api/admin/quotes [get]
func (h *QuoteHandler) ListAll(c *gin.Context) {
	builder := NewResponseBuilder(c)

	q, err := BindQuery[dto.PageQuery](c)
	if err != nil {
		builder.InvalidInput(err)
		return
	}
	page := q.Normalized()

	quotes, total, err := h.quotes.ListAll(c.Request.Context(), page.Limit, page.Skip)
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(dto.NewPage(dto.NewQuoteResponses(quotes), total, page))
}

// UpdateStatus handles PATCH /api/admin/quotes/:reference/status.
//
// @Summary      Review a quote
// @Description  Accepts or rejects a submitted quote. Reviewed quotes cannot change again.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        reference path string true "Quote reference"
// @Param        request body dto.StatusUpdateRequest true "New status"
// @Success      200 {object} dto.SuccessResponse{data=dto.QuoteResponse} "Reviewed quote"
// @Failure      400 {object} dto.ErrorResponse "Invalid status"
// @Failure      404 {object} dto.ErrorResponse "Quote not found"
// @Failure      409 {object} dto.ErrorResponse "Quote already reviewed"
// @Security     BearerAuth
// @Router       /api/admin/quotes/{reference}/status [patch]
func (h *QuoteHandler) UpdateStatus(c *gin.Context) {
	builder := NewResponseBuilder(c)

	in, err := BindJSON[dto.StatusUpdateRequest](c)
	if err != nil {
		builder.InvalidInput(err)
		return
	}

	reference := c.Param("reference")
	record, err := h.quotes.UpdateStatus(c.Request.Context(), reference, model.QuoteStatus(in.Status))
	if err != nil {
		builder.ServiceError(err)
		return
	}

	middleware.AuditLog(h.logging, c, middleware.ActionQuoteReviewed, "Quote reviewed", map[string]any{
		"reference": record.Reference,
		"status":    string(record.Status),
	})
	builder.SuccessOK(dto.NewQuoteResponse(record))
}

func (h *QuoteHandler) catalogVersion() int {
	if h.catalogs == nil {
		return 0
	}
	if snap := h.catalogs.Snapshot(); snap != nil {
		return snap.Version
	}
	return 0
}

// canReview reports whether the caller may read every quote. A failed
// lookup only narrows what the caller sees.
func (h *QuoteHandler) canReview(c *gin.Context) bool {
	if h.access == nil {
		return false
	}
	ok, err := h.access.HasPermission(c.Request.Context(), middleware.GetUserRoles(c), model.PermQuotesReview)
	if err != nil {
		log := logger.WithRequestID(middleware.GetRequestID(c))
		log.Warn().Err(err).Msg("Review permission check failed")
		return false
	}
	return ok
}

func draftFromState(s dto.DraftState) service.QuoteDraft {
	d := service.QuoteDraft{Request: s.Request.ToModel()}
	for _, step := range s.Completed {
		d.Completed = append(d.Completed, service.FormStep(step))
	}
	return d
}

func stateFromDraft(d service.QuoteDraft) dto.DraftState {
	s := dto.DraftState{Request: dto.NewQuoteInput(d.Request), Completed: make([]string, 0, len(d.Completed))}
	for _, step := range d.Completed {
		s.Completed = append(s.Completed, string(step))
	}
	return s
}
