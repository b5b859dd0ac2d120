package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/guttosm/coating-service/internal/catalog"
	"github.com/guttosm/coating-service/internal/circuitbreaker"
	"github.com/guttosm/coating-service/internal/i18n"
	"github.com/guttosm/coating-service/internal/service"
)

// ServiceError writes the response for an error returned by a service.
func (b *ResponseBuilder) ServiceError(err error) {
	var (
		incomplete *service.IncompleteQuoteError
		unknown    *service.UnknownOptionError
		stepErr    *service.StepError
		dimErr     *service.InvalidDimensionsError
	)
	switch {
	case errors.As(err, &incomplete):
		details := make(map[string]string, len(incomplete.Missing))
		for _, field := range incomplete.Missing {
			details[field] = "required"
		}
		b.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyIncompleteQuote, err, details)
	case errors.As(err, &unknown):
		details := make(map[string]string, len(unknown.Options))
		for _, opt := range unknown.Options {
			details[opt] = "unknown"
		}
		b.ErrorWithDetails(http.StatusUnprocessableEntity, i18n.ErrKeyUnknownOption, err, details)
	case errors.As(err, &dimErr):
		b.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidDimensions, err,
			map[string]string{"dimensions." + dimErr.Field: dimErr.Err.Error()})
	case errors.As(err, &stepErr):
		b.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidStep, err,
			map[string]string{string(stepErr.Step) + "." + stepErr.Field: stepErr.Message})
	case errors.Is(err, service.ErrQuoteNotFound):
		b.Error(http.StatusNotFound, i18n.ErrKeyQuoteNotFound, err)
	case errors.Is(err, service.ErrInvalidTransition):
		b.Error(http.StatusConflict, i18n.ErrKeyInvalidTransition, err)
	case errors.Is(err, catalog.ErrInvalidCatalog):
		b.ErrorWithDetails(http.StatusUnprocessableEntity, i18n.ErrKeyInvalidCatalog, err,
			map[string]string{"catalog": err.Error()})
	case errors.Is(err, service.ErrCatalogConflict):
		b.Error(http.StatusConflict, i18n.ErrKeyConflict, err)
	case errors.Is(err, service.ErrPostNotFound):
		b.Error(http.StatusNotFound, i18n.ErrKeyPostNotFound, err)
	case errors.Is(err, service.ErrInvalidPost):
		b.ErrorWithDetails(http.StatusUnprocessableEntity, i18n.ErrKeyInvalidPost, err,
			map[string]string{"post": err.Error()})
	case errors.Is(err, service.ErrUserExists):
		b.Error(http.StatusConflict, i18n.ErrKeyEmailTaken, err)
	case errors.Is(err, service.ErrInvalidCredentials):
		b.Error(http.StatusUnauthorized, i18n.ErrKeyInvalidCredentials, err)
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrTokenRevoked):
		b.Error(http.StatusUnauthorized, i18n.ErrKeyInvalidToken, err)
	case errors.Is(err, circuitbreaker.ErrCircuitOpen), errors.Is(err, service.ErrRepositoryNotConfigured):
		b.Error(http.StatusServiceUnavailable, i18n.ErrKeyUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded):
		b.Error(http.StatusGatewayTimeout, i18n.ErrKeyTimeout, err)
	default:
		b.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}
