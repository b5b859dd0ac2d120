package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/coating-service/internal/catalog"
	"github.com/guttosm/coating-service/internal/domain/model"
	"github.com/guttosm/coating-service/internal/metrics"
	"github.com/guttosm/coating-service/internal/repository"
)

var (
	// ErrRepositoryNotConfigured is returned when the repository is not configured.
	ErrRepositoryNotConfigured = errors.New("repository not configured")
	// ErrCatalogConflict is returned when another publish claimed the same version.
	ErrCatalogConflict = errors.New("catalog version was published concurrently")
)

// CatalogSnapshot is the catalog quotes are currently priced against.
// Version is 0 until a version has been loaded from or published to the store.
type CatalogSnapshot struct {
	Version  int
	Checksum string
	Catalog  *catalog.Catalog
	// Estimator prices unknown ids at zero; Strict rejects them.
	Estimator QuoteCalculator
	Strict    QuoteCalculator
}

// CatalogService owns the active catalog and swaps it when a new version is published.
type CatalogService interface {
	Snapshot() *CatalogSnapshot
	Load(ctx context.Context) error
	Refresh(ctx context.Context) (bool, error)
	Publish(ctx context.Context, spec catalog.Spec, createdBy string) (*model.CatalogVersion, error)
	Versions(ctx context.Context, limit int) ([]model.CatalogVersion, error)
	Watch(ctx context.Context, interval time.Duration)
}

// CatalogServiceImpl implements CatalogService.
type CatalogServiceImpl struct {
	repo    repository.CatalogRepositoryInterface
	seed    *catalog.Catalog
	opts    []CalculatorOption
	current atomic.Pointer[CatalogSnapshot]
}

// NewCatalogService creates a catalog service that prices against seed until
// Load finds a published version. A nil seed means the built-in default.
func NewCatalogService(repo repository.CatalogRepositoryInterface, seed *catalog.Catalog, opts ...CalculatorOption) *CatalogServiceImpl {
	if seed == nil {
		seed = catalog.Default()
	}
	s := &CatalogServiceImpl{repo: repo, seed: seed, opts: opts}
	checksum, _, err := encodeCatalog(seed)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to checksum seed catalog")
	}
	s.current.Store(s.snapshot(0, checksum, seed))
	return s
}

func (s *CatalogServiceImpl) snapshot(version int, checksum string, cat *catalog.Catalog) *CatalogSnapshot {
	strict := append(append([]CalculatorOption(nil), s.opts...), WithStrictCatalog())
	return &CatalogSnapshot{
		Version:   version,
		Checksum:  checksum,
		Catalog:   cat,
		Estimator: NewQuoteCalculator(cat, s.opts...),
		Strict:    NewQuoteCalculator(cat, strict...),
	}
}

// Snapshot returns the active catalog. The result is immutable.
func (s *CatalogServiceImpl) Snapshot() *CatalogSnapshot {
	return s.current.Load()
}

// Load activates the newest published version. When nothing has been
// published yet the seed catalog is published as version 1.
func (s *CatalogServiceImpl) Load(ctx context.Context) error {
	if s.repo == nil {
		return ErrRepositoryNotConfigured
	}
	loaded, err := s.Refresh(ctx)
	if err != nil {
		return err
	}
	if loaded || s.Snapshot().Version > 0 {
		return nil
	}
	_, err = s.Publish(ctx, s.seed.Spec(), "system")
	return err
}

// Refresh swaps in the active stored version when it is newer than the one
// in memory. It reports whether a swap happened.
func (s *CatalogServiceImpl) Refresh(ctx context.Context) (bool, error) {
	if s.repo == nil {
		return false, ErrRepositoryNotConfigured
	}
	active, err := s.repo.Active(ctx)
	if err != nil {
		return false, fmt.Errorf("load active catalog: %w", err)
	}
	if active == nil || active.Version <= s.Snapshot().Version {
		return false, nil
	}

	cat, err := catalog.Load(strings.NewReader(active.Document))
	if err != nil {
		return false, fmt.Errorf("catalog version %d: %w", active.Version, err)
	}
	s.swap(active.Version, active.Checksum, cat)
	return true, nil
}

// Publish validates spec, stores it as the next version and makes it active.
// Publishing the document that is already active is a no-op that returns
// the active version.
func (s *CatalogServiceImpl) Publish(ctx context.Context, spec catalog.Spec, createdBy string) (*model.CatalogVersion, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	cat, err := catalog.New(spec)
	if err != nil {
		metrics.RecordCatalogPublish("invalid", 0)
		return nil, err
	}
	checksum, doc, err := encodeCatalog(cat)
	if err != nil {
		metrics.RecordCatalogPublish("error", 0)
		return nil, err
	}

	if cur := s.Snapshot(); cur.Version > 0 && cur.Checksum == checksum {
		if v, err := s.repo.FindByVersion(ctx, cur.Version); err == nil && v != nil && v.Active {
			metrics.RecordCatalogPublish("unchanged", cur.Version)
			return v, nil
		}
	}

	v, err := s.repo.Publish(ctx, doc, checksum, createdBy)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			metrics.RecordCatalogPublish("conflict", 0)
			return nil, fmt.Errorf("%w: %w", ErrCatalogConflict, err)
		}
		metrics.RecordCatalogPublish("error", 0)
		return nil, fmt.Errorf("publish catalog: %w", err)
	}

	s.swap(v.Version, checksum, cat)
	metrics.RecordCatalogPublish("success", v.Version)
	log.Info().
		Int("version", v.Version).
		Str("checksum", checksum).
		Str("created_by", createdBy).
		Msg("Catalog published")
	return v, nil
}

// Versions lists published versions, newest first.
func (s *CatalogServiceImpl) Versions(ctx context.Context, limit int) ([]model.CatalogVersion, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.List(ctx, limit)
}

// Watch refreshes the catalog every interval until ctx is done, so versions
// published by another instance are picked up.
func (s *CatalogServiceImpl) Watch(ctx context.Context, interval time.Duration) {
	if s.repo == nil || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Refresh(ctx); err != nil && ctx.Err() == nil {
				log.Warn().Err(err).Msg("Catalog refresh failed")
			}
		}
	}
}

func (s *CatalogServiceImpl) swap(version int, checksum string, cat *catalog.Catalog) {
	prev := s.current.Swap(s.snapshot(version, checksum, cat))
	if prev != nil && prev.Version != version {
		log.Info().Int("from", prev.Version).Int("to", version).Msg("Active catalog swapped")
	}
}

// encodeCatalog returns the YAML document for cat and its sha256 checksum.
func encodeCatalog(cat *catalog.Catalog) (checksum, doc string, err error) {
	var buf bytes.Buffer
	if err := catalog.Encode(&buf, cat.Spec()); err != nil {
		return "", "", err
	}
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:]), buf.String(), nil
}
