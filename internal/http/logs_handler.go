package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/coating-service/internal/domain/dto"
	"github.com/guttosm/coating-service/internal/service"
)

// LogsHandler searches persisted request and audit logs.
type LogsHandler struct {
	logging service.LoggingService
}

// NewLogsHandler creates a LogsHandler.
func NewLogsHandler(logging service.LoggingService) *LogsHandler {
	return &LogsHandler{logging: logging}
}

// Search handles GET /api/admin/logs.
//
// @Summary      Search logs
// @Description  Filters persisted request and audit logs, newest first.
// @Tags         Admin
// @Produce      json
// @Param        request_id query string false "Request id"
// @Param        level query string false "info, warn or error"
// @Param        action query string false "Audit action, e.g. catalog.published"
// @Param        user_id query string false "Actor user id"
// @Param        since query string false "RFC 3339 lower bound"
// @Param        until query string false "RFC 3339 upper bound"
// @Param        limit query int false "Page size (max 100)" default(20)
// @Param        skip query int false "Results to skip" default(0)
// @Success      200 {object} dto.SuccessResponse{data=dto.Page[model.LogEntry]} "Log entries"
// @Failure      400 {object} dto.ErrorResponse "Invalid filter"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure      403 {object} dto.ErrorResponse "Insufficient permissions"
// @Security     BearerAuth
// @Router       /api/admin/logs [get]
func (h *LogsHandler) Search(c *gin.Context) {
	builder := NewResponseBuilder(c)

	q, err := BindQuery[dto.LogQuery](c)
	if err != nil {
		builder.InvalidInput(err)
		return
	}
	q.PageQuery = q.PageQuery.Normalized()

	entries, total, err := h.logging.Search(c.Request.Context(), q.ToFilter())
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(dto.NewPage(entries, total, q.PageQuery))
}
