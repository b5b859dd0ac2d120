package middleware

import (
	"sync"
	"time"

	"github.com/guttosm/coating-service/internal/service/cache"
)

// cachedResponse is a finished response kept for replay. A zero StatusCode
// marks a request that is still being handled.
type cachedResponse struct {
	Fingerprint string
	StatusCode  int
	ContentType string
	Body        []byte
}

func (r *cachedResponse) inFlight() bool { return r.StatusCode == 0 }

// DefaultIdempotencyTTL is how long a stored response can be replayed.
const DefaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore remembers responses by idempotency key.
type IdempotencyStore struct {
	mu    sync.Mutex
	items cache.Cache[string, *cachedResponse]
}

// NewIdempotencyStore keeps up to capacity responses for ttl each.
func NewIdempotencyStore(capacity int, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{items: cache.New[string, *cachedResponse]("idempotency", capacity, ttl)}
}

// begin claims key for a request with the given body fingerprint. When the
// key is already known the stored entry is returned and nothing is claimed.
func (s *IdempotencyStore) begin(key, fingerprint string) (*cachedResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.items.Get(key); ok {
		return existing, false
	}
	s.items.Set(key, &cachedResponse{Fingerprint: fingerprint})
	return nil, true
}

func (s *IdempotencyStore) complete(key string, resp *cachedResponse) {
	s.items.Set(key, resp)
}

func (s *IdempotencyStore) release(key string) {
	s.items.Invalidate(key)
}

// Stop ends the background expiry sweep.
func (s *IdempotencyStore) Stop() {
	s.items.Stop()
}
