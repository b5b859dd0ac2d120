package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guttosm/coating-service/internal/domain/model"
	"github.com/guttosm/coating-service/internal/logger"
	"github.com/guttosm/coating-service/internal/service"
)

// RequestLogger returns a middleware that logs every request to the console
// and, when loggingService is set, persists it through the async logger.
func RequestLogger(loggingService service.LoggingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := GetRequestID(c)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		info := &model.HTTPInfo{
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			Status:     status,
			DurationMS: latency.Milliseconds(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
		}

		log := logger.WithRequestID(requestID)
		var event *zerolog.Event
		switch getLogLevel(status) {
		case model.LevelError:
			event = log.Error()
		case model.LevelWarn:
			event = log.Warn()
		default:
			event = log.Info()
		}
		event.
			Str("method", info.Method).
			Str("path", info.Path).
			Int("status_code", status).
			Int64("duration_ms", info.DurationMS).
			Str("ip", info.IP).
			Str("user_agent", info.UserAgent).
			Msg("HTTP request")

		if loggingService == nil {
			return
		}
		entry := &model.LogEntry{
			Timestamp: time.Now().UTC(),
			Level:     getLogLevel(status),
			Message:   "HTTP request",
			RequestID: requestID,
			HTTP:      info,
			Actor:     actorFromContext(c),
		}
		if len(c.Errors) > 0 {
			entry.Error = c.Errors.Last().Error()
		}
		persist(loggingService, entry)
	}
}

// getLogLevel maps an HTTP status to the persisted log level.
func getLogLevel(statusCode int) string {
	switch {
	case statusCode >= 500:
		return model.LevelError
	case statusCode >= 400:
		return model.LevelWarn
	default:
		return model.LevelInfo
	}
}
