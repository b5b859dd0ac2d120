package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Log levels persisted with each entry.
const (
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// HTTPInfo describes the request a log entry was produced for.
type HTTPInfo struct {
	Method     string `bson:"method" json:"method"`
	Path       string `bson:"path" json:"path"`
	Status     int    `bson:"status,omitempty" json:"status,omitempty"`
	DurationMS int64  `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"`
	IP         string `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent  string `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
}

// Actor is the authenticated user behind an action.
type Actor struct {
	UserID string `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Email  string `bson:"email,omitempty" json:"email,omitempty"`
}

// LogEntry is a request or audit record stored in the logs collection.
type LogEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	Level     string             `bson:"level" json:"level"`
	Message   string             `bson:"message" json:"message"`
	RequestID string             `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Action    string             `bson:"action,omitempty" json:"action,omitempty"`
	HTTP      *HTTPInfo          `bson:"http,omitempty" json:"http,omitempty"`
	Actor     *Actor             `bson:"actor,omitempty" json:"actor,omitempty"`
	Error     string             `bson:"error,omitempty" json:"error,omitempty"`
	Fields    map[string]any     `bson:"fields,omitempty" json:"fields,omitempty"`
}

// With sets a context field and returns the entry for chaining.
func (e *LogEntry) With(key string, value any) *LogEntry {
	if e.Fields == nil {
		e.Fields = make(map[string]any)
	}
	e.Fields[key] = value
	return e
}

// LogFilter narrows a log search. Zero values are ignored.
type LogFilter struct {
	RequestID string
	Level     string
	Action    string
	UserID    string
	Since     *time.Time
	Until     *time.Time
	Limit     int
	Skip      int
}
