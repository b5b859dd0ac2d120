//go:build integration

// Package testutil runs a MongoDB testcontainer shared by a package's
// integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// DefaultMongoImage is used unless MONGODB_TEST_IMAGE is set.
const DefaultMongoImage = "mongo:7.0"

// maxDBNameLength keeps generated names under MongoDB's 64 byte limit
// with room for the suffix.
const maxDBNameLength = 48

// MongoDBContainer is a running MongoDB testcontainer.
type MongoDBContainer struct {
	Container testcontainers.Container
	URI       string
}

var (
	shared     *MongoDBContainer
	sharedErr  error
	sharedOnce sync.Once
	sharedMu   sync.RWMutex
	dbCounter  atomic.Uint64
)

// StartMongoDB starts a MongoDB container and returns its connection URI.
func StartMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	image := os.Getenv("MONGODB_TEST_IMAGE")
	if image == "" {
		image = DefaultMongoImage
	}

	startCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	c, err := mongodb.Run(startCtx, image)
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", image, err)
	}
	uri, err := c.ConnectionString(startCtx)
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("connection string: %w", err)
	}
	return &MongoDBContainer{Container: c, URI: uri}, nil
}

// Terminate stops the container.
func (m *MongoDBContainer) Terminate(ctx context.Context) error {
	if m == nil || m.Container == nil {
		return nil
	}
	if err := m.Container.Terminate(ctx); err != nil {
		return fmt.Errorf("terminate container: %w", err)
	}
	return nil
}

// SharedMongoDB starts the package's container on first use.
func SharedMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	sharedOnce.Do(func() {
		c, err := StartMongoDB(ctx)
		sharedMu.Lock()
		shared, sharedErr = c, err
		sharedMu.Unlock()
	})

	sharedMu.RLock()
	defer sharedMu.RUnlock()
	return shared, sharedErr
}

// SetupTestMainWithMongoDB runs the package's tests against a shared
// container and terminates it afterwards.
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	if _, err := SharedMongoDB(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "mongodb testcontainer: %v\n", err)
		return 1
	}

	code := m.Run()

	sharedMu.Lock()
	err := shared.Terminate(ctx)
	shared = nil
	sharedMu.Unlock()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return code
}

// GetSharedContainerURI returns the shared container's URI. It panics when
// TestMain did not start one.
func GetSharedContainerURI() string {
	sharedMu.RLock()
	defer sharedMu.RUnlock()
	if shared == nil {
		panic("shared MongoDB container not started; call SetupTestMainWithMongoDB from TestMain")
	}
	return shared.URI
}

// SanitizeDBName turns a test name into a unique database name. Characters
// MongoDB rejects in database names become underscores.
func SanitizeDBName(testName string) string {
	var b strings.Builder
	for _, r := range testName {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
		if b.Len() >= maxDBNameLength {
			break
		}
	}
	return b.String() + "_" + strconv.FormatUint(dbCounter.Add(1), 36) + strconv.FormatInt(time.Now().UnixNano()%1e6, 36)
}
