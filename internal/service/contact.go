package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/guttosm/coating-service/internal/domain/model"
	"github.com/guttosm/coating-service/internal/repository"
)

// ContactIDPrefix marks contact request ids.
const ContactIDPrefix = "CR_"

// ContactService stores and lists contact form submissions.
type ContactService interface {
	Submit(ctx context.Context, req model.ContactRequest) (*model.ContactRequest, error)
	List(ctx context.Context, limit, skip int) ([]model.ContactRequest, error)
}

// ContactServiceImpl implements ContactService.
type ContactServiceImpl struct {
	repo  repository.ContactRepositoryInterface
	now   func() time.Time
	newID func() string
}

// NewContactService creates a new contact service.
func NewContactService(repo repository.ContactRepositoryInterface) *ContactServiceImpl {
	return &ContactServiceImpl{
		repo:  repo,
		now:   time.Now,
		newID: func() string { return ContactIDPrefix + ulid.Make().String() },
	}
}

// Submit assigns an id and stores the request.
func (s *ContactServiceImpl) Submit(ctx context.Context, req model.ContactRequest) (*model.ContactRequest, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	c := req
	c.ID = s.newID()
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Phone = strings.TrimSpace(c.Phone)
	c.Message = strings.TrimSpace(c.Message)
	c.QuoteReference = strings.ToUpper(strings.TrimSpace(c.QuoteReference))
	c.Handled = false
	c.CreatedAt = s.now().UTC()

	if err := s.repo.Create(ctx, &c); err != nil {
		return nil, fmt.Errorf("save contact request: %w", err)
	}
	return &c, nil
}

// List returns contact requests, newest first.
func (s *ContactServiceImpl) List(ctx context.Context, limit, skip int) ([]model.ContactRequest, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.List(ctx, limit, skip)
}
