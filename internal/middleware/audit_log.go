package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/coating-service/internal/domain/model"
	"github.com/guttosm/coating-service/internal/service"
)

// Audit actions recorded by the handlers.
const (
	ActionLogin           = "auth.login"
	ActionLoginFailed     = "auth.login_failed"
	ActionRegister        = "auth.register"
	ActionLogout          = "auth.logout"
	ActionQuoteSubmitted  = "quote.submitted"
	ActionQuoteReviewed   = "quote.reviewed"
	ActionCatalogPublish  = "catalog.published"
	ActionPostSaved       = "post.saved"
	ActionPostDeleted     = "post.deleted"
	ActionContactReceived = "contact.received"
)

// AuditLog records a user action such as a login or a catalog publish.
func AuditLog(loggingService service.LoggingService, c *gin.Context, action, message string, fields map[string]any) {
	if loggingService == nil {
		return
	}
	persist(loggingService, auditEntry(c, model.LevelInfo, action, message, fields))
}

// AuditLogError records a failed user action.
func AuditLogError(loggingService service.LoggingService, c *gin.Context, action, message string, err error, fields map[string]any) {
	if loggingService == nil {
		return
	}
	entry := auditEntry(c, model.LevelError, action, message, fields)
	if err != nil {
		entry.Error = err.Error()
	}
	persist(loggingService, entry)
}

func auditEntry(c *gin.Context, level, action, message string, fields map[string]any) *model.LogEntry {
	return &model.LogEntry{
		Timestamp: time.Now().UTC(),
		Level:     level,
		Message:   message,
		RequestID: GetRequestID(c),
		Action:    action,
		HTTP: &model.HTTPInfo{
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		},
		Actor:  actorFromContext(c),
		Fields: fields,
	}
}
