package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/elonfeng/prodradar/pkg/creative"
	"github.com/elonfeng/prodradar/pkg/product"
	"github.com/elonfeng/prodradar/pkg/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testProduct(externalID, category string) product.Product {
	return product.Product{
		Source:               product.SourceAliExpress,
		ExternalID:           externalID,
		Name:                 "Portable Blender " + externalID,
		Category:             category,
		KeyFeatures:          []string{"USB rechargeable", "blends in 30 seconds"},
		CostPrice:            8,
		SuggestedRetailPrice: 29.99,
		GoogleTrendsGrowth:   120,
		SalesVelocity:        300,
		SocialMomentum:       2,
		AdLibraryCount:       10,
		ShopifyStoreCount:    4,
		AmazonSellerCount:    12,
	}
}

func TestUpsertProductKeepsIdentity(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	p := testProduct("ae-1", "Kitchen")
	require.NoError(t, s.UpsertProduct(ctx, &p))
	require.NotEmpty(t, p.ID)
	firstID := p.ID

	again := testProduct("ae-1", "Kitchen")
	again.Name = "Portable Blender Pro"
	require.NoError(t, s.UpsertProduct(ctx, &again))
	assert.Equal(t, firstID, again.ID)

	got, err := s.GetProduct(ctx, firstID)
	require.NoError(t, err)
	assert.Equal(t, "Portable Blender Pro", got.Name)
	assert.Equal(t, []string{"USB rechargeable", "blends in 30 seconds"}, got.KeyFeatures)
	assert.Nil(t, got.OverallScore)
	assert.True(t, got.IsActive)
}

func TestGetProductNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveScoresWritesSnapshot(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	p := testProduct("ae-2", "Fitness")
	require.NoError(t, s.UpsertProduct(ctx, &p))

	r := score.Result{TrendScore: 80, CompetitionScore: 70, MarginScore: 60, OverallScore: 72, IsHotProduct: true}
	at := time.Now().UTC()
	require.NoError(t, s.SaveScores(ctx, &p, r, at))

	got, err := s.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.OverallScore)
	assert.Equal(t, 72, *got.OverallScore)
	assert.True(t, got.IsHotProduct)

	history, err := s.GetScoreHistory(ctx, p.ID, at.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 80, history[0].TrendScore)
	assert.Equal(t, 120.0, history[0].GoogleTrendsGrowth)

	recent, err := s.RecentSnapshots(ctx, p.ID, 5)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestSaveScoresUnknownProduct(t *testing.T) {
	s := setupTestStore(t)

	p := product.Product{ID: "ghost"}
	err := s.SaveScores(context.Background(), &p, score.Result{}, time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListProducts(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	scores := []int{40, 90, 65}
	for i, overall := range scores {
		p := testProduct(string(rune('a'+i)), "Kitchen")
		require.NoError(t, s.UpsertProduct(ctx, &p))
		require.NoError(t, s.SaveScores(ctx, &p, score.Result{OverallScore: overall}, time.Now()))
	}
	other := testProduct("z", "Pets")
	require.NoError(t, s.UpsertProduct(ctx, &other))

	page, err := s.ListProducts(ctx, ProductListOpts{Category: "Kitchen", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	require.Len(t, page.Products, 2)
	assert.Equal(t, 90, *page.Products[0].OverallScore)
	assert.Equal(t, 65, *page.Products[1].OverallScore)

	page, err = s.ListProducts(ctx, ProductListOpts{MinScore: 60, SortBy: "overall_score", SortOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, page.Products, 2)
	assert.Equal(t, 65, *page.Products[0].OverallScore)

	page, err = s.ListProducts(ctx, ProductListOpts{SortBy: "name; DROP TABLE products", Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 100, page.Pagination.Limit)
	assert.Len(t, page.Products, 4)
}

func TestListProductsMaxItems(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		p := testProduct(string(rune('a'+i)), "Kitchen")
		require.NoError(t, s.UpsertProduct(ctx, &p))
		require.NoError(t, s.SaveScores(ctx, &p, score.Result{OverallScore: 40 + i}, time.Now()))
	}

	seen := map[string]bool{}
	for page := 1; page <= 4; page++ {
		got, err := s.ListProducts(ctx, ProductListOpts{Page: page, Limit: 4, MaxItems: 10})
		require.NoError(t, err)
		assert.Equal(t, 10, got.Pagination.Total)
		assert.Equal(t, 3, got.Pagination.TotalPages)
		for _, p := range got.Products {
			seen[p.ID] = true
		}
		switch page {
		case 3:
			assert.Len(t, got.Products, 2)
		case 4:
			assert.Empty(t, got.Products)
		}
	}
	assert.Len(t, seen, 10)

	first, err := s.ListProducts(ctx, ProductListOpts{Limit: 20, MaxItems: 10})
	require.NoError(t, err)
	require.Len(t, first.Products, 10)
	assert.Equal(t, 51, *first.Products[0].OverallScore)
	assert.Equal(t, 42, *first.Products[9].OverallScore)
}

func TestUpsertProductsContinuesPastFailures(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.db.Exec(`
		CREATE TRIGGER reject_bad BEFORE INSERT ON products
		WHEN NEW.external_id = 'bad'
		BEGIN SELECT RAISE(ABORT, 'rejected'); END;
	`)
	require.NoError(t, err)

	batch := []product.Product{testProduct("a", "Kitchen"), testProduct("bad", "Kitchen"), testProduct("c", "Kitchen")}
	stored, err := s.UpsertProducts(ctx, batch)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
	assert.Equal(t, 2, stored)

	active, err := s.ActiveProducts(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.ElementsMatch(t, []string{"a", "c"}, []string{active[0].ExternalID, active[1].ExternalID})
}

func TestSavedProducts(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	first := testProduct("a", "Kitchen")
	require.NoError(t, s.UpsertProduct(ctx, &first))
	second := testProduct("b", "Pets")
	require.NoError(t, s.UpsertProduct(ctx, &second))

	saved, err := s.SaveProduct(ctx, "user-1", first.ID, "test on TikTok")
	require.NoError(t, err)
	assert.Equal(t, first.Name, saved.Product.Name)

	_, err = s.SaveProduct(ctx, "user-1", first.ID, "")
	assert.ErrorIs(t, err, ErrAlreadySaved)
	_, err = s.SaveProduct(ctx, "user-1", "missing", "")
	assert.ErrorIs(t, err, ErrNotFound)

	time.Sleep(time.Millisecond)
	_, err = s.SaveProduct(ctx, "user-1", second.ID, "")
	require.NoError(t, err)
	_, err = s.SaveProduct(ctx, "user-2", first.ID, "")
	require.NoError(t, err)

	list, err := s.ListSavedProducts(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ProductID)
	assert.Equal(t, "Pets", list[0].Product.Category)
	assert.Equal(t, "test on TikTok", list[1].Notes)
	assert.Equal(t, []string{"USB rechargeable", "blends in 30 seconds"}, list[1].Product.KeyFeatures)

	require.NoError(t, s.UnsaveProduct(ctx, "user-1", first.ID))
	assert.ErrorIs(t, s.UnsaveProduct(ctx, "user-1", first.ID), ErrNotFound)

	list, err = s.ListSavedProducts(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	empty, err := s.ListSavedProducts(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestReplaceCreatives(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	p := testProduct("ae-3", "Beauty")
	require.NoError(t, s.UpsertProduct(ctx, &p))

	set := creative.Build(p.Brief())
	require.NoError(t, s.ReplaceCreatives(ctx, p.ID, set))
	require.NoError(t, s.ReplaceCreatives(ctx, p.ID, creative.Build(p.Brief())))

	got, err := s.ListCreatives(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got, len(set))
	assert.Equal(t, creative.TypeAdCopy, got[0].Type)

	last := got[len(got)-1]
	assert.Equal(t, creative.TypeVideoScript, last.Type)
	require.NotNil(t, last.VideoScript)
	assert.NotEmpty(t, last.VideoScript.Scenes)
}

func TestDashboardAggregates(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	dayStart := time.Now().UTC().Truncate(24 * time.Hour)
	for i, overall := range []int{90, 71, 50} {
		category := "Kitchen"
		if i == 2 {
			category = "Pets"
		}
		p := testProduct(string(rune('a'+i)), category)
		require.NoError(t, s.UpsertProduct(ctx, &p))
		require.NoError(t, s.SaveScores(ctx, &p,
			score.Result{TrendScore: overall, OverallScore: overall}, time.Now()))
	}

	stats, err := s.DashboardStats(ctx, dayStart, 70)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.NewProductsToday)
	assert.Equal(t, 70, stats.AverageScore)
	assert.Equal(t, "Kitchen", stats.TopCategory)
	assert.Len(t, stats.HotProducts, 2)

	cats, err := s.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []CategoryCount{{Category: "Kitchen", Count: 2}, {Category: "Pets", Count: 1}}, cats)

	trending, err := s.TrendingCategories(ctx, dayStart)
	require.NoError(t, err)
	require.Len(t, trending, 2)
	assert.Equal(t, "Kitchen", trending[0].Category)
	assert.InDelta(t, 80.5, trending[0].AvgScore, 0.001)

	movers, err := s.TopMovers(ctx, 70, 10)
	require.NoError(t, err)
	assert.Len(t, movers, 2)

	entries, err := s.NewEntries(ctx, dayStart, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestMarkAlerted(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	p := testProduct("ae-4", "Kitchen")
	require.NoError(t, s.UpsertProduct(ctx, &p))
	require.NoError(t, s.MarkAlerted(ctx, p.ID, time.Now().UTC()))

	got, err := s.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.AlertedAt)
}
