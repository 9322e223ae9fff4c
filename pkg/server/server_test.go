package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/elonfeng/prodradar/internal/pipeline"
	"github.com/elonfeng/prodradar/internal/quota"
	"github.com/elonfeng/prodradar/internal/store"
	"github.com/elonfeng/prodradar/pkg/product"
	"github.com/elonfeng/prodradar/pkg/score"
	"github.com/elonfeng/prodradar/pkg/tier"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	srv      *Server
	store    *store.SQLiteStore
	products []product.Product
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	log := zap.NewNop().Sugar()

	db, err := store.New(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	var products []product.Product
	for i := 0; i < 12; i++ {
		p := product.Product{
			Source:               product.SourceAliExpress,
			ExternalID:           string(rune('a' + i)),
			Name:                 "Gadget " + string(rune('A'+i)),
			Category:             "Kitchen",
			CostPrice:            5,
			SuggestedRetailPrice: 40,
			ShippingWeight:       200,
			GoogleTrendsGrowth:   100,
			SalesVelocity:        100,
			SocialMomentum:       float64(i * 8),
		}
		require.NoError(t, db.UpsertProduct(ctx, &p))
		products = append(products, p)
	}

	engine := pipeline.NewEngine(db, score.DefaultThresholds(), 2, log)
	_, err = engine.Refresh(ctx)
	require.NoError(t, err)

	srv := New(db, engine, tier.DefaultPolicy(), quota.New(client), Options{}, log)
	return &testEnv{srv: srv, store: db, products: products}
}

func (e *testEnv) do(t *testing.T, method, path string, tr tier.Tier, body []byte) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if tr != "" {
		req.Header.Set(headerTier, string(tr))
	}
	req.Header.Set(headerUser, "user-1")

	rec := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestHealth(t *testing.T) {
	env := setupTestServer(t)
	rec, body := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestProductsAreGatedByTier(t *testing.T) {
	env := setupTestServer(t)

	rec, body := env.do(t, http.MethodGet, "/api/v1/products?limit=50", tier.Free, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].([]any)
	assert.Len(t, data, 10)
	assert.NotContains(t, data[0].(map[string]any), "overall_score")

	_, body = env.do(t, http.MethodGet, "/api/v1/products?limit=50", tier.Starter, nil)
	data = body["data"].([]any)
	assert.Len(t, data, 12)
	assert.Contains(t, data[0].(map[string]any), "overall_score")

	_, body = env.do(t, http.MethodGet, "/api/v1/products?limit=50", "platinum", nil)
	assert.Equal(t, "FREE", body["tier"])
}

func TestProductsCapHoldsAcrossPages(t *testing.T) {
	env := setupTestServer(t)

	seen := map[string]bool{}
	for _, path := range []string{
		"/api/v1/products?limit=4&page=1",
		"/api/v1/products?limit=4&page=2",
		"/api/v1/products?limit=4&page=3",
		"/api/v1/products?limit=10&page=2",
	} {
		rec, body := env.do(t, http.MethodGet, path, tier.Free, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		pagination := body["pagination"].(map[string]any)
		assert.Equal(t, float64(10), pagination["total"])
		for _, item := range body["data"].([]any) {
			seen[item.(map[string]any)["id"].(string)] = true
		}
	}
	assert.Len(t, seen, 10)

	_, body := env.do(t, http.MethodGet, "/api/v1/products?limit=10&page=2", tier.Free, nil)
	assert.Empty(t, body["data"].([]any))

	_, body = env.do(t, http.MethodGet, "/api/v1/products?limit=10&page=2", tier.Starter, nil)
	assert.Len(t, body["data"].([]any), 2)
}

func TestHiddenScoresIgnoreScoreFilters(t *testing.T) {
	env := setupTestServer(t)

	ids := func(body map[string]any) []string {
		var out []string
		for _, item := range body["data"].([]any) {
			out = append(out, item.(map[string]any)["id"].(string))
		}
		return out
	}

	_, base := env.do(t, http.MethodGet, "/api/v1/products", tier.Free, nil)
	require.Len(t, ids(base), 10)

	for _, query := range []string{"min_score=95", "sort_by=overall_score&sort_order=asc", "sort_by=social_momentum"} {
		_, body := env.do(t, http.MethodGet, "/api/v1/products?"+query, tier.Free, nil)
		assert.Equal(t, ids(base), ids(body), query)
		assert.Equal(t, float64(10), body["pagination"].(map[string]any)["total"], query)
	}

	_, body := env.do(t, http.MethodGet, "/api/v1/products?min_score=95", tier.Starter, nil)
	assert.Less(t, len(ids(body)), 12)
}

func TestSavedProducts(t *testing.T) {
	env := setupTestServer(t)
	id := env.products[3].ID

	rec, body := env.do(t, http.MethodPost, "/api/v1/products/"+id+"/save", tier.Free, []byte(`{"notes":"try on Reels"}`))
	require.Equal(t, http.StatusCreated, rec.Code)
	saved := body["data"].(map[string]any)
	assert.Equal(t, "try on Reels", saved["notes"])
	assert.NotContains(t, saved["product"].(map[string]any), "overall_score")

	rec, body = env.do(t, http.MethodPost, "/api/v1/products/"+id+"/save", tier.Free, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "product already saved", body["error"])

	rec, _ = env.do(t, http.MethodPost, "/api/v1/products/missing/save", tier.Free, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body = env.do(t, http.MethodGet, "/api/v1/products/saved", tier.Free, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["count"])
	item := body["data"].([]any)[0].(map[string]any)
	assert.Equal(t, id, item["product_id"])
	assert.NotContains(t, item["product"].(map[string]any), "overall_score")

	_, body = env.do(t, http.MethodGet, "/api/v1/products/saved", tier.Pro, nil)
	item = body["data"].([]any)[0].(map[string]any)
	assert.Contains(t, item["product"].(map[string]any), "overall_score")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/saved", nil)
	anon := httptest.NewRecorder()
	env.srv.Handler().ServeHTTP(anon, req)
	assert.Equal(t, http.StatusUnauthorized, anon.Code)

	rec, _ = env.do(t, http.MethodDelete, "/api/v1/products/"+id+"/save", tier.Free, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = env.do(t, http.MethodDelete, "/api/v1/products/"+id+"/save", tier.Free, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductDetail(t *testing.T) {
	env := setupTestServer(t)
	id := env.products[11].ID

	rec, body := env.do(t, http.MethodGet, "/api/v1/products/"+id, tier.Starter, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, body, "score_history")
	for _, c := range body["creatives"].([]any) {
		assert.NotEqual(t, "VIDEO_SCRIPT", c.(map[string]any)["type"])
	}

	_, body = env.do(t, http.MethodGet, "/api/v1/products/"+id, tier.Pro, nil)
	assert.Len(t, body["score_history"].([]any), 1)
	assert.Len(t, body["creatives"].([]any), 10)

	rec, _ = env.do(t, http.MethodGet, "/api/v1/products/missing", tier.Pro, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductDetailQuota(t *testing.T) {
	env := setupTestServer(t)
	id := env.products[0].ID

	for i := 0; i < 5; i++ {
		rec, _ := env.do(t, http.MethodGet, "/api/v1/products/"+id, tier.Free, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, body := env.do(t, http.MethodGet, "/api/v1/products/"+id, tier.Free, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, float64(5), body["limit"])

	rec, _ = env.do(t, http.MethodGet, "/api/v1/products/"+id, tier.Agency, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHistoryRequiresEntitlement(t *testing.T) {
	env := setupTestServer(t)
	id := env.products[0].ID

	rec, body := env.do(t, http.MethodGet, "/api/v1/products/"+id+"/history", tier.Starter, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "PRO", body["required_tier"])

	rec, body = env.do(t, http.MethodGet, "/api/v1/products/"+id+"/history?days=7", tier.Pro, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["count"])

	rec, _ = env.do(t, http.MethodGet, "/api/v1/products/"+id+"/history?days=91", tier.Pro, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreativesEndpoint(t *testing.T) {
	env := setupTestServer(t)
	id := env.products[11].ID

	_, body := env.do(t, http.MethodGet, "/api/v1/products/"+id+"/creatives", tier.Free, nil)
	assert.Equal(t, float64(7), body["count"])
	assert.Equal(t, float64(3), body["locked"])
}

func TestDashboardAndTrends(t *testing.T) {
	env := setupTestServer(t)

	rec, body := env.do(t, http.MethodGet, "/api/v1/dashboard", tier.Pro, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := body["data"].(map[string]any)
	assert.Equal(t, float64(12), stats["new_products_today"])
	assert.Equal(t, "Kitchen", stats["top_category"])
	assert.Len(t, stats["hot_products"].([]any), 6)

	rec, body = env.do(t, http.MethodGet, "/api/v1/trends?range=30d", tier.Pro, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["trending_categories"].([]any), 1)
	assert.Len(t, body["new_entries"].([]any), 10)

	rec, _ = env.do(t, http.MethodGet, "/api/v1/trends?range=1y", tier.Pro, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	_, body = env.do(t, http.MethodGet, "/api/v1/categories", tier.Free, nil)
	assert.Equal(t, float64(1), body["count"])
}

func TestScoreEndpoint(t *testing.T) {
	env := setupTestServer(t)
	payload := []byte(`{"name":"Neck Fan","category":"Outdoor","cost_price":5,"suggested_retail_price":40,
		"shipping_weight":200,"google_trends_growth":100,"sales_velocity":100,"social_momentum":100}`)

	rec, body := env.do(t, http.MethodPost, "/api/v1/score", tier.Pro, payload)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "AGENCY", body["required_tier"])

	rec, body = env.do(t, http.MethodPost, "/api/v1/score", tier.Agency, payload)
	require.Equal(t, http.StatusOK, rec.Code)
	result := body["result"].(map[string]any)
	assert.Equal(t, float64(100), result["overall_score"])
	assert.Len(t, body["creatives"].([]any), 10)

	rec, _ = env.do(t, http.MethodPost, "/api/v1/score", tier.Agency, []byte("{"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTiers(t *testing.T) {
	env := setupTestServer(t)

	_, body := env.do(t, http.MethodGet, "/api/v1/tiers", tier.Starter, nil)
	assert.Len(t, body["data"].([]any), 4)
	assert.Equal(t, "STARTER", body["current"])
}
