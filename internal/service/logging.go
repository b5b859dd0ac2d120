package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/coating-service/internal/domain/model"
	"github.com/guttosm/coating-service/internal/repository"
)

const (
	defaultLogLimit = 50
	maxLogLimit     = 500
)

// LoggingService persists request and audit logs and searches them.
type LoggingService interface {
	// Record stores entries, filling in missing ids and timestamps.
	Record(ctx context.Context, entries ...*model.LogEntry) error
	// Search returns entries matching the filter, newest first, with the total match count.
	Search(ctx context.Context, filter model.LogFilter) ([]model.LogEntry, int64, error)
}

// LoggingServiceImpl implements LoggingService.
type LoggingServiceImpl struct {
	repo repository.LogsRepositoryInterface
	now  func() time.Time
}

// NewLoggingService creates a new logging service implementation.
func NewLoggingService(repo repository.LogsRepositoryInterface) *LoggingServiceImpl {
	return &LoggingServiceImpl{repo: repo, now: time.Now}
}

// Record stores entries, filling in missing ids and timestamps.
func (s *LoggingServiceImpl) Record(ctx context.Context, entries ...*model.LogEntry) error {
	if s.repo == nil {
		return ErrRepositoryNotConfigured
	}
	batch := make([]*model.LogEntry, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		if e.ID.IsZero() {
			e.ID = primitive.NewObjectID()
		}
		if e.Timestamp.IsZero() {
			e.Timestamp = s.now().UTC()
		}
		if e.Level == "" {
			e.Level = model.LevelInfo
		}
		batch = append(batch, e)
	}
	if len(batch) == 0 {
		return nil
	}
	return s.repo.Insert(ctx, batch...)
}

// Search returns entries matching the filter, newest first. The limit is
// clamped to [1, 500] and defaults to 50.
func (s *LoggingServiceImpl) Search(ctx context.Context, filter model.LogFilter) ([]model.LogEntry, int64, error) {
	if s.repo == nil {
		return nil, 0, ErrRepositoryNotConfigured
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultLogLimit
	case filter.Limit > maxLogLimit:
		filter.Limit = maxLogLimit
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}

	entries, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("find logs: %w", err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count logs: %w", err)
	}
	return entries, total, nil
}
