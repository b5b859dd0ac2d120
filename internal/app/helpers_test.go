package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/coating-service/internal/catalog"
	"github.com/guttosm/coating-service/internal/mocks"
)

// writeCatalogFile writes the built-in catalog with steel repriced.
func writeCatalogFile(t *testing.T, steel int64) string {
	t.Helper()
	spec := catalog.Default().Spec()
	for i := range spec.Materials {
		if spec.Materials[i].ID == "steel" {
			spec.Materials[i].BasePrice = decimal.NewFromInt(steel)
		}
	}
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, catalog.Encode(f, spec))
	return path
}

// mockDatabase returns components backed by repository mocks. Nothing in
// the constructors touches them.
func mockDatabase() *DatabaseComponents {
	return &DatabaseComponents{
		CatalogRepo: new(mocks.MockCatalogRepositoryInterface),
		QuoteRepo:   new(mocks.MockQuoteRepositoryInterface),
		LogsRepo:    new(mocks.MockLogsRepositoryInterface),
		UserRepo:    new(mocks.MockUserRepositoryInterface),
		RoleRepo:    new(mocks.MockRoleRepositoryInterface),
		TokenRepo:   new(mocks.MockTokenRepositoryInterface),
		PostRepo:    new(mocks.MockPostRepositoryInterface),
		ContactRepo: new(mocks.MockContactRepositoryInterface),
	}
}
