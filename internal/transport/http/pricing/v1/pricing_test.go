package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/jewelry-pricing/internal/model"
	"github.com/you-humble/jewelry-pricing/internal/transport/http/pricing/v1/mocks"
)

type deps struct {
	products  *mocks.MockProductService
	materials *mocks.MockMaterialService
	sync      *mocks.MockPriceSyncService
}

func newRouter(d deps) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/v1", NewPricingHandler(d.products, d.materials, d.sync).Routes)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler(t *testing.T) {
	t.Parallel()

	syncedAt := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		setup  func(d deps)
		assert func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:   "calculate",
			method: http.MethodPost,
			path:   "/api/v1/pricing/calculate",
			body: `{"metals":[{"weight_grams":10,"price_per_gram":6200}],
				"making_charge":{"type":"Fixed","value":5000},"wastage_charge":{"type":"fixed","value":2000},"gst_percentage":3}`,
			setup: func(d deps) {
				d.products.
					On("Calculate", mock.Anything, mock.MatchedBy(func(in model.PriceInput) bool {
						return len(in.Metals) == 1 && in.MakingCharge.Type == model.ChargeTypeFixed && in.MakingCharge.Value == 5000
					})).
					Return(model.Pricing{MetalTotal: 62000, TotalPrice: 71070}, nil).
					Once()
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, rec.Code)
				var got pricingDTO
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, 71070.0, got.TotalPrice)
			},
		},
		{
			name:   "malformed body",
			method: http.MethodPost,
			path:   "/api/v1/pricing/calculate",
			body:   `{"metals":`,
			setup:  func(d deps) {},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			},
		},
		{
			name:   "create product conflict",
			method: http.MethodPost,
			path:   "/api/v1/products",
			body:   `{"name":"Ring","sku":"R-1"}`,
			setup: func(d deps) {
				d.products.On("Create", mock.Anything, mock.Anything).
					Return((*model.Product)(nil), fmt.Errorf("product.service.Create: %w", model.ErrProductConflict)).
					Once()
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusConflict, rec.Code)
			},
		},
		{
			name:   "create product",
			method: http.MethodPost,
			path:   "/api/v1/products",
			body:   `{"name":"Ring","metals":[{"material_id":"m-1","variant_id":"v-1","weight":4}],"making_charge":{"type":"percentage","value":10}}`,
			setup: func(d deps) {
				d.products.
					On("Create", mock.Anything, mock.MatchedBy(func(p model.ProductParams) bool {
						return p.Name == "Ring" && p.MakingCharge.Type == model.ChargeTypePercentage && p.Metals[0].Weight == 4
					})).
					Return(&model.Product{ID: "p-1", Name: "Ring", Pricing: model.Pricing{TotalPrice: 27280}}, nil).
					Once()
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusCreated, rec.Code)
				var got productResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, "p-1", got.ID)
				assert.Equal(t, 27280.0, got.Pricing.TotalPrice)
				assert.NotNil(t, got.Metals)
			},
		},
		{
			name:   "get product not found",
			method: http.MethodGet,
			path:   "/api/v1/products/p-404",
			setup: func(d deps) {
				d.products.On("Product", mock.Anything, "p-404").Return((*model.Product)(nil), model.ErrProductNotFound).Once()
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusNotFound, rec.Code)
			},
		},
		{
			name:   "update product",
			method: http.MethodPut,
			path:   "/api/v1/products/p-1",
			body:   `{"name":"Ring v2"}`,
			setup: func(d deps) {
				d.products.On("Update", mock.Anything, "p-1", mock.Anything).Return(&model.Product{ID: "p-1", Name: "Ring v2"}, nil).Once()
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
			},
		},
		{
			name:   "list materials",
			method: http.MethodGet,
			path:   "/api/v1/materials/Metal",
			setup: func(d deps) {
				d.materials.On("ListMaterials", mock.Anything, model.EntityTypeMetal).
					Return([]*model.Material{{ID: "m-1", Type: model.EntityTypeMetal, Name: "Gold"}}, nil).
					Once()
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, rec.Code)
				var got []materialResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				require.Len(t, got, 1)
				assert.Equal(t, "Gold", got[0].Name)
			},
		},
		{
			name:   "get material invalid type",
			method: http.MethodGet,
			path:   "/api/v1/materials/pearl/x",
			setup: func(d deps) {
				d.materials.On("Material", mock.Anything, model.EntityType("pearl"), "x").
					Return((*model.Material)(nil), errors.Join(model.ErrValidation, errors.New(`unknown entity type "pearl"`))).
					Once()
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Contains(t, rec.Body.String(), "unknown entity type")
			},
		},
		{
			name:   "sync missing price",
			method: http.MethodPost,
			path:   "/api/v1/price-sync",
			body:   `{"entity_type":"metal","entity_id":"m-1","variant_id":"v-1"}`,
			setup:  func(d deps) {},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			},
		},
		{
			name:   "sync with partial failure is 200",
			method: http.MethodPost,
			path:   "/api/v1/price-sync",
			body:   `{"entity_type":"metal","entity_id":"m-1","variant_id":"v-1","new_price":6400}`,
			setup: func(d deps) {
				params := model.SyncParams{EntityType: model.EntityTypeMetal, EntityID: "m-1", VariantID: "v-1", NewPrice: 6400}
				d.sync.On("Synchronize", mock.Anything, params).Return(&model.SyncResult{
					EntityType:     model.EntityTypeMetal,
					EntityID:       "m-1",
					VariantID:      "v-1",
					NewPrice:       6400,
					SyncedProducts: 1,
					Outcomes: []model.ProductOutcome{
						{ProductID: "p-1"},
						{ProductID: "p-2", Err: errors.New("write conflict")},
					},
					SyncedAt: syncedAt,
				}, nil).Once()
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, rec.Code)
				var got syncResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, 1, got.SyncedProducts)
				require.Len(t, got.FailedProducts, 1)
				assert.Equal(t, "p-2", got.FailedProducts[0].ProductID)
				assert.Equal(t, "write conflict", got.FailedProducts[0].Error)
			},
		},
		{
			name:   "sync variant not found",
			method: http.MethodPost,
			path:   "/api/v1/price-sync",
			body:   `{"entity_type":"gemstone","entity_id":"g-1","variant_id":"nope","new_price":1}`,
			setup: func(d deps) {
				d.sync.On("Synchronize", mock.Anything, mock.Anything).Return((*model.SyncResult)(nil), model.ErrVariantNotFound).Once()
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusNotFound, rec.Code)
			},
		},
		{
			name:   "preview",
			method: http.MethodPost,
			path:   "/api/v1/price-sync/preview",
			body:   `{"entity_type":"metal","entity_id":"m-1","variant_id":"v-1","new_price":6400}`,
			setup: func(d deps) {
				d.sync.On("Preview", mock.Anything, mock.Anything).Return(&model.SyncPreview{
					Products:   []model.PreviewItem{{ProductID: "p-1", CurrentTotal: 100, NewTotal: 110, Delta: 10}},
					TotalDelta: 10,
				}, nil).Once()
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, rec.Code)
				var got previewResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, 10.0, got.TotalDelta)
				assert.Equal(t, 110.0, got.Products[0].NewTotal)
			},
		},
		{
			name:   "history",
			method: http.MethodGet,
			path:   "/api/v1/price-history?entity_type=metal&entity_id=m-1&limit=20",
			setup: func(d deps) {
				d.sync.On("History", mock.Anything, model.HistoryFilter{EntityType: model.EntityTypeMetal, EntityID: "m-1", Limit: 20}).
					Return([]model.PriceHistoryEntry{{ID: "h-1", AffectedProducts: 3, CreatedAt: syncedAt}}, nil).
					Once()
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, rec.Code)
				var got []historyEntryDTO
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				require.Len(t, got, 1)
				assert.Equal(t, 3, got[0].AffectedProducts)
			},
		},
		{
			name:   "history bad limit",
			method: http.MethodGet,
			path:   "/api/v1/price-history?limit=ten",
			setup:  func(d deps) {},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			},
		},
		{
			name:   "internal error hides details",
			method: http.MethodGet,
			path:   "/api/v1/price-history",
			setup: func(d deps) {
				d.sync.On("History", mock.Anything, mock.Anything).Return(nil, errors.New("mongo: connection refused")).Once()
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusInternalServerError, rec.Code)
				assert.NotContains(t, rec.Body.String(), "mongo")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := deps{
				products:  mocks.NewMockProductService(t),
				materials: mocks.NewMockMaterialService(t),
				sync:      mocks.NewMockPriceSyncService(t),
			}
			tt.setup(d)

			tt.assert(t, do(t, newRouter(d), tt.method, tt.path, tt.body))
		})
	}
}
