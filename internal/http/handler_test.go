package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/coating-service/internal/domain/dto"
	"github.com/guttosm/coating-service/internal/domain/model"
	"github.com/guttosm/coating-service/internal/middleware"
	"github.com/guttosm/coating-service/internal/mocks"
	"github.com/guttosm/coating-service/internal/service"
)

// estimateRouter prices against the built-in catalog without a database.
func estimateRouter() http.Handler {
	cfg := testRouterConfig()
	cfg.CatalogService = service.NewCatalogService(nil, nil)
	cfg.QuoteService = service.NewQuoteService(cfg.CatalogService, nil)
	return NewRouter(NewHealthHandler(), cfg)
}

func TestQuoteHandler_Estimate(t *testing.T) {
	router := estimateRouter()

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		check          func(*testing.T, dto.BreakdownResponse)
	}{
		{
			name:           "single part",
			body:           `{"material":"steel","coating":{"type":"standard","finish":"glossy"},"color":{"type":"standard"},"quantity":1}`,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, b dto.BreakdownResponse) {
				assert.Equal(t, "50.00", b.Base)
				assert.Equal(t, "50.00", b.Total)
				assert.Equal(t, "0.00", b.TotalDiscount)
			},
		},
		{
			name:           "bulk tier",
			body:           `{"material":"steel","coating":{"type":"standard","finish":"glossy"},"color":{"type":"standard"},"quantity":10}`,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, b dto.BreakdownResponse) {
				assert.Equal(t, "500.00", b.Subtotal)
				assert.Equal(t, "50.00", b.BulkDiscount)
				assert.Equal(t, "450.00", b.Total)
			},
		},
		{
			name:           "bundle on top of bulk",
			body:           `{"material":"steel","coating":{"type":"standard","finish":"glossy"},"color":{"type":"standard"},"quantity":10,"addons":["extraCoating","specialPrimer"]}`,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, b dto.BreakdownResponse) {
				assert.Equal(t, "545.00", b.Subtotal)
				assert.Equal(t, "54.50", b.BulkDiscount)
				assert.Equal(t, "54.50", b.BundleDiscount)
				assert.Equal(t, "436.00", b.Total)
			},
		},
		{
			name:           "promo code in lower case",
			body:           `{"material":"steel","coating":{"type":"standard","finish":"glossy"},"color":{"type":"standard"},"quantity":10,"promo_code":"holiday"}`,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, b dto.BreakdownResponse) {
				assert.Equal(t, "75.00", b.SeasonalDiscount)
				assert.Equal(t, "375.00", b.Total)
			},
		},
		{
			name:           "unknown option prices as zero",
			body:           `{"material":"steel","coating":{"type":"standard","finish":"glossy"},"color":{"type":"standard"},"quantity":1,"addons":["goldLeaf"]}`,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, b dto.BreakdownResponse) {
				assert.Equal(t, "0.00", b.Addons)
				assert.Equal(t, "50.00", b.Total)
			},
		},
		{
			name:           "missing selections",
			body:           `{"material":"steel","quantity":1}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative dimension",
			body:           `{"material":"steel","dimensions":{"length":-1},"quantity":1}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "dimension with a huge exponent",
			body:           `{"material":"steel","dimensions":{"length":1e1000000,"width":2,"height":1},"coating":{"type":"standard","finish":"glossy"},"color":{"type":"standard"},"quantity":1}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "dimension past the limit",
			body:           `{"material":"steel","dimensions":{"length":10001,"width":2,"height":1},"coating":{"type":"standard","finish":"glossy"},"color":{"type":"standard"},"quantity":1}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			body:           `{"material":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodPost, "/api/quotes/estimate", tt.body)
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.check != nil {
				resp := decodeData[dto.EstimateResponse](t, w)
				tt.check(t, resp.Breakdown)
			}
		})
	}
}

func TestQuoteHandler_Estimate_ReportsMissingFields(t *testing.T) {
	w := doRequest(estimateRouter(), http.MethodPost, "/api/quotes/estimate", `{"material":"steel","quantity":1}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrCodeInvalidRequest, resp.Error)
	assert.Equal(t, "required", resp.Details["coating.type"])
	assert.Equal(t, "required", resp.Details["color.type"])
	assert.NotContains(t, resp.Details, "material")
}

func TestQuoteHandler_Draft(t *testing.T) {
	router := estimateRouter()

	t.Run("first step has no estimate", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/quotes/draft", `{"step":"material","update":{"material":"steel"}}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decodeData[dto.DraftResponse](t, w)
		assert.Equal(t, "steel", resp.Draft.Request.Material)
		assert.Equal(t, []string{"material"}, resp.Draft.Completed)
		assert.Equal(t, "dimensions", resp.NextStep)
		assert.Nil(t, resp.Estimate)
	})

	t.Run("complete draft is estimated", func(t *testing.T) {
		body := `{
			"draft": {
				"request": {"material":"steel","coating":{"type":"standard","finish":"glossy"},"color":{"type":"standard"},"quantity":1},
				"completed": ["material","dimensions","coating","color"]
			},
			"step": "quantity",
			"update": {"quantity": 10}
		}`
		w := doRequest(router, http.MethodPost, "/api/quotes/draft", body)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decodeData[dto.DraftResponse](t, w)
		assert.Equal(t, 10, resp.Draft.Request.Quantity)
		assert.Empty(t, resp.Missing)
		require.NotNil(t, resp.Estimate)
		assert.Equal(t, "450.00", resp.Estimate.Total)
	})

	t.Run("unknown step", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/quotes/draft", `{"step":"payment","update":{}}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid update", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/quotes/draft", `{"step":"quantity","update":{"quantity":-3}}`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Contains(t, resp.Details, "quantity.quantity")
	})

	t.Run("oversized dimensions update", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/quotes/draft",
			`{"step":"dimensions","update":{"length":1e1000000,"width":2,"height":1}}`)

		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		resp := decodeError(t, w)
		assert.Equal(t, "must be at most 10000", resp.Details["dimensions.length"])
	})

	tampered := []struct {
		name  string
		draft string
		field string
	}{
		{
			name:  "unknown unit",
			draft: `{"request":{"material":"steel","dimensions":{"length":1,"width":1,"height":1,"unit":"feet"},"coating":{"type":"standard","finish":"glossy"},"color":{"type":"standard"},"quantity":1}}`,
			field: "draft.request.dimensions.unit",
		},
		{
			name:  "huge dimension",
			draft: `{"request":{"material":"steel","dimensions":{"length":1e50000000,"width":1,"height":1},"coating":{"type":"standard","finish":"glossy"},"color":{"type":"standard"},"quantity":1}}`,
			field: "draft.request.dimensions.length",
		},
		{
			name:  "too many addons",
			draft: `{"request":{"addons":["a","b","c","d","e","f","g","h","i","j","k","l","m","n","o","p","q","r","s","t","u"]}}`,
			field: "draft.request.addons",
		},
		{
			name:  "unknown completed step",
			draft: `{"request":{"material":"steel"},"completed":["payment"]}`,
			field: "draft.completed[0]",
		},
	}
	for _, tc := range tampered {
		t.Run("tampered draft: "+tc.name, func(t *testing.T) {
			body := `{"draft":` + tc.draft + `,"step":"quantity","update":{"quantity":10}}`
			w := doRequest(router, http.MethodPost, "/api/quotes/draft", body)

			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Contains(t, decodeError(t, w).Details, tc.field)
		})
	}
}

func quoteRecord(userID primitive.ObjectID) *model.QuoteRecord {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return &model.QuoteRecord{
		Reference:      "QT-LZ3K9M2A-7QX",
		UserID:         userID,
		Status:         model.QuoteStatusSubmitted,
		CatalogVersion: 2,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func protectedQuoteRouter(t *testing.T, userID primitive.ObjectID, perms ...string) (http.Handler, *mocks.MockQuoteService) {
	t.Helper()
	cfg := testRouterConfig()
	quotes := new(mocks.MockQuoteService)
	cfg.QuoteService = quotes
	cfg.CatalogService = service.NewCatalogService(nil, nil)
	withAuth(t, &cfg, userID, []string{model.RoleCustomer}, perms...)

	store := middleware.NewIdempotencyStore(100, time.Minute)
	t.Cleanup(store.Stop)
	cfg.Idempotency = store
	return NewRouter(NewHealthHandler(), cfg), quotes
}

const validQuoteBody = `{"material":"steel","coating":{"type":"standard","finish":"glossy"},"color":{"type":"standard"},"quantity":10}`

func TestQuoteHandler_Submit(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("saves the quote", func(t *testing.T) {
		router, quotes := protectedQuoteRouter(t, userID, model.PermQuotesWrite)
		quotes.On("Submit", mock.Anything, userID, mock.MatchedBy(func(r model.QuoteRequest) bool {
			return r.MaterialID == "steel" && r.Quantity == 10
		})).Return(quoteRecord(userID), nil).Once()

		w := doRequest(router, http.MethodPost, "/api/quotes", validQuoteBody, bearer()...)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		resp := decodeData[dto.QuoteResponse](t, w)
		assert.Equal(t, "QT-LZ3K9M2A-7QX", resp.Reference)
		assert.Equal(t, "submitted", resp.Status)
		quotes.AssertExpectations(t)
	})

	t.Run("unknown option is rejected", func(t *testing.T) {
		router, quotes := protectedQuoteRouter(t, userID, model.PermQuotesWrite)
		quotes.On("Submit", mock.Anything, userID, mock.Anything).
			Return(nil, &service.UnknownOptionError{Options: []string{"addon:goldLeaf"}}).Once()

		w := doRequest(router, http.MethodPost, "/api/quotes", validQuoteBody, bearer()...)

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "unknown", decodeError(t, w).Details["addon:goldLeaf"])
	})

	t.Run("requires a token", func(t *testing.T) {
		router, quotes := protectedQuoteRouter(t, userID, model.PermQuotesWrite)

		w := doRequest(router, http.MethodPost, "/api/quotes", validQuoteBody)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		quotes.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("requires write permission", func(t *testing.T) {
		router, quotes := protectedQuoteRouter(t, userID, model.PermQuotesRead)

		w := doRequest(router, http.MethodPost, "/api/quotes", validQuoteBody, bearer()...)

		assert.Equal(t, http.StatusForbidden, w.Code)
		quotes.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("database down", func(t *testing.T) {
		router, quotes := protectedQuoteRouter(t, userID, model.PermQuotesWrite)
		quotes.On("Submit", mock.Anything, userID, mock.Anything).Return(nil, service.ErrRepositoryNotConfigured).Once()

		w := doRequest(router, http.MethodPost, "/api/quotes", validQuoteBody, bearer()...)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestQuoteHandler_Submit_IdempotentRetry(t *testing.T) {
	userID := primitive.NewObjectID()
	router, quotes := protectedQuoteRouter(t, userID, model.PermQuotesWrite)
	quotes.On("Submit", mock.Anything, userID, mock.Anything).Return(quoteRecord(userID), nil).Once()

	headers := append(bearer(), middleware.IdempotencyKeyHeader, "retry-1")
	first := doRequest(router, http.MethodPost, "/api/quotes", validQuoteBody, headers...)
	second := doRequest(router, http.MethodPost, "/api/quotes", validQuoteBody, headers...)

	require.Equal(t, http.StatusCreated, first.Code)
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get(middleware.IdempotencyReplayedHeader))
	quotes.AssertNumberOfCalls(t, "Submit", 1)

	changed := doRequest(router, http.MethodPost, "/api/quotes",
		`{"material":"aluminum","coating":{"type":"standard","finish":"glossy"},"color":{"type":"standard"},"quantity":1}`, headers...)
	assert.Equal(t, http.StatusUnprocessableEntity, changed.Code)
}

func TestQuoteHandler_Get(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("owner reads own quote", func(t *testing.T) {
		router, quotes := protectedQuoteRouter(t, userID, model.PermQuotesRead)
		quotes.On("Get", mock.Anything, "QT-LZ3K9M2A-7QX", service.Viewer{UserID: userID}).
			Return(quoteRecord(userID), nil).Once()

		w := doRequest(router, http.MethodGet, "/api/quotes/QT-LZ3K9M2A-7QX", "", bearer()...)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "QT-LZ3K9M2A-7QX", decodeData[dto.QuoteResponse](t, w).Reference)
	})

	t.Run("reviewer sees every quote", func(t *testing.T) {
		router, quotes := protectedQuoteRouter(t, userID, model.PermQuotesRead, model.PermQuotesReview)
		quotes.On("Get", mock.Anything, "QT-LZ3K9M2A-7QX", service.Viewer{UserID: userID, Admin: true}).
			Return(quoteRecord(primitive.NewObjectID()), nil).Once()

		w := doRequest(router, http.MethodGet, "/api/quotes/QT-LZ3K9M2A-7QX", "", bearer()...)

		assert.Equal(t, http.StatusOK, w.Code)
		quotes.AssertExpectations(t)
	})

	t.Run("hidden or missing quote", func(t *testing.T) {
		router, quotes := protectedQuoteRouter(t, userID, model.PermQuotesRead)
		quotes.On("Get", mock.Anything, "QT-UNKNOWN0-AAA", mock.Anything).Return(nil, service.ErrQuoteNotFound).Once()

		w := doRequest(router, http.MethodGet, "/api/quotes/QT-UNKNOWN0-AAA", "", bearer()...)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestQuoteHandler_ListMine(t *testing.T) {
	userID := primitive.NewObjectID()
	router, quotes := protectedQuoteRouter(t, userID, model.PermQuotesRead)
	quotes.On("ListByUser", mock.Anything, userID, 5, 10).
		Return([]model.QuoteRecord{*quoteRecord(userID)}, int64(11), nil).Once()

	w := doRequest(router, http.MethodGet, "/api/quotes?limit=5&skip=10", "", bearer()...)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	page := decodeData[dto.Page[dto.QuoteResponse]](t, w)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(11), page.Total)
	assert.Equal(t, 5, page.Limit)

	w = doRequest(router, http.MethodGet, "/api/quotes?limit=500", "", bearer()...)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuoteHandler_UpdateStatus(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("accepts a submitted quote", func(t *testing.T) {
		router, quotes := protectedQuoteRouter(t, userID, model.PermQuotesReview)
		accepted := quoteRecord(userID)
		accepted.Status = model.QuoteStatusAccepted
		quotes.On("UpdateStatus", mock.Anything, "QT-LZ3K9M2A-7QX", model.QuoteStatusAccepted).Return(accepted, nil).Once()

		w := doRequest(router, http.MethodPatch, "/api/admin/quotes/QT-LZ3K9M2A-7QX/status", `{"status":"accepted"}`, bearer()...)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "accepted", decodeData[dto.QuoteResponse](t, w).Status)
	})

	t.Run("already reviewed", func(t *testing.T) {
		router, quotes := protectedQuoteRouter(t, userID, model.PermQuotesReview)
		quotes.On("UpdateStatus", mock.Anything, "QT-LZ3K9M2A-7QX", model.QuoteStatusRejected).
			Return(nil, service.ErrInvalidTransition).Once()

		w := doRequest(router, http.MethodPatch, "/api/admin/quotes/QT-LZ3K9M2A-7QX/status", `{"status":"rejected"}`, bearer()...)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("status must be a review outcome", func(t *testing.T) {
		router, _ := protectedQuoteRouter(t, userID, model.PermQuotesReview)

		w := doRequest(router, http.MethodPatch, "/api/admin/quotes/QT-LZ3K9M2A-7QX/status", `{"status":"submitted"}`, bearer()...)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("customers cannot review", func(t *testing.T) {
		router, _ := protectedQuoteRouter(t, userID, model.PermQuotesRead, model.PermQuotesWrite)

		w := doRequest(router, http.MethodPatch, "/api/admin/quotes/QT-LZ3K9M2A-7QX/status", `{"status":"accepted"}`, bearer()...)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
