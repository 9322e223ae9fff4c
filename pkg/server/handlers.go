package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/elonfeng/prodradar/internal/store"
	"github.com/elonfeng/prodradar/pkg/product"
	"github.com/elonfeng/prodradar/pkg/tier"
	"github.com/go-chi/chi/v5"
)

const (
	moverTrendScore = 70
	listLimit       = 10
)

var trendRanges = map[string]time.Duration{
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
	"90d": 90 * 24 * time.Hour,
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := store.ProductListOpts{
		Page:      atoiDefault(q.Get("page"), 1),
		Limit:     atoiDefault(q.Get("limit"), 20),
		Category:  q.Get("category"),
		Source:    product.Source(q.Get("source")),
		MinScore:  atoiDefault(q.Get("min_score"), 0),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}

	t := tierFrom(r.Context())
	s.restrictListing(&opts, t)
	if opts.MaxItems < 0 {
		writeJSON(w, http.StatusOK, map[string]any{
			"data":       []product.Product{},
			"pagination": store.Pagination{Page: 1, Limit: opts.Limit},
			"tier":       t,
		})
		return
	}

	page, err := s.store.ListProducts(r.Context(), opts)
	if err != nil {
		s.internalError(w, err)
		return
	}

	products := s.gateProducts(page.Products, t)

	writeJSON(w, http.StatusOK, map[string]any{
		"data":       products,
		"pagination": page.Pagination,
		"tier":       t,
	})
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	t := tierFrom(ctx)

	p, ok := s.loadProduct(w, r)
	if !ok {
		return
	}

	res, err := s.quota.Consume(ctx, userFrom(ctx), s.policy.DetailViewsLimit(t), s.now())
	if err != nil {
		s.internalError(w, err)
		return
	}
	if !res.Allowed {
		writeJSON(w, http.StatusTooManyRequests, map[string]any{
			"error": "daily detail view limit reached",
			"limit": res.Limit,
			"used":  res.Used,
		})
		return
	}

	resp := map[string]any{
		"data": tier.HideScores(s.policy, []product.Product{*p}, t)[0],
	}

	if s.policy.CanAccess(t, tier.ScoreHistory) {
		history, err := s.store.RecentSnapshots(ctx, p.ID, 30)
		if err != nil {
			s.internalError(w, err)
			return
		}
		resp["score_history"] = history
	}

	creatives, err := s.store.ListCreatives(ctx, p.ID)
	if err != nil {
		s.internalError(w, err)
		return
	}
	resp["creatives"] = tier.FilterCreatives(s.policy, creatives, t)

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreatives(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadProduct(w, r)
	if !ok {
		return
	}

	creatives, err := s.store.ListCreatives(r.Context(), p.ID)
	if err != nil {
		s.internalError(w, err)
		return
	}

	visible := tier.FilterCreatives(s.policy, creatives, tierFrom(r.Context()))
	writeJSON(w, http.StatusOK, map[string]any{
		"data":   visible,
		"count":  len(visible),
		"locked": len(creatives) - len(visible),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	t := tierFrom(r.Context())
	if !s.policy.CanAccess(t, tier.ScoreHistory) {
		s.upgradeRequired(w, tier.ScoreHistory)
		return
	}

	days := 30
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 90 {
			writeError(w, http.StatusBadRequest, "days must be between 1 and 90")
			return
		}
		days = n
	}

	p, ok := s.loadProduct(w, r)
	if !ok {
		return
	}

	since := s.now().Add(-time.Duration(days) * 24 * time.Hour)
	history, err := s.store.GetScoreHistory(r.Context(), p.ID, since)
	if err != nil {
		s.internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  history,
		"count": len(history),
		"days":  days,
	})
}

func (s *Server) handleSaveProduct(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var body struct {
		Notes string `json:"notes"`
	}
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&body)
	if err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	saved, err := s.store.SaveProduct(r.Context(), user, chi.URLParam(r, "id"), body.Notes)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "product not found")
		return
	case errors.Is(err, store.ErrAlreadySaved):
		writeError(w, http.StatusBadRequest, "product already saved")
		return
	case err != nil:
		s.internalError(w, err)
		return
	}

	t := tierFrom(r.Context())
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    tier.HideScores(s.policy, []store.SavedProduct{*saved}, t)[0],
	})
}

func (s *Server) handleUnsaveProduct(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	err := s.store.UnsaveProduct(r.Context(), user, chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "product not in saved collection")
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleSavedProducts(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	saved, err := s.store.ListSavedProducts(r.Context(), user)
	if err != nil {
		s.internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  tier.HideScores(s.policy, saved, tierFrom(r.Context())),
		"count": len(saved),
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	stats, err := s.store.DashboardStats(r.Context(), dayStart, s.engine.Thresholds().Hot)
	if err != nil {
		s.internalError(w, err)
		return
	}

	t := tierFrom(r.Context())
	stats.HotProducts = tier.HideScores(s.policy, stats.HotProducts, t)
	if !s.policy.CanAccess(t, tier.ShowScores) {
		stats.AverageScore = 0
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": stats})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.Categories(r.Context())
	if err != nil {
		s.internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  categories,
		"count": len(categories),
	})
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	rng := r.URL.Query().Get("range")
	if rng == "" {
		rng = "7d"
	}
	window, ok := trendRanges[rng]
	if !ok {
		writeError(w, http.StatusBadRequest, "range must be one of 7d, 30d, 90d")
		return
	}

	ctx := r.Context()
	now := s.now()

	categories, err := s.store.TrendingCategories(ctx, now.Add(-window))
	if err != nil {
		s.internalError(w, err)
		return
	}
	movers, err := s.store.TopMovers(ctx, moverTrendScore, listLimit)
	if err != nil {
		s.internalError(w, err)
		return
	}
	entries, err := s.store.NewEntries(ctx, now.Add(-trendRanges["7d"]), listLimit)
	if err != nil {
		s.internalError(w, err)
		return
	}

	t := tierFrom(ctx)
	writeJSON(w, http.StatusOK, map[string]any{
		"range":               rng,
		"trending_categories": categories,
		"top_movers":          tier.HideScores(s.policy, movers, t),
		"new_entries":         tier.HideScores(s.policy, entries, t),
	})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	t := tierFrom(r.Context())
	if !s.policy.CanAccess(t, tier.APIAccess) {
		s.upgradeRequired(w, tier.APIAccess)
		return
	}

	var p product.Product
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	out := s.engine.Evaluate(p)
	writeJSON(w, http.StatusOK, map[string]any{
		"result":    out.Result,
		"creatives": tier.FilterCreatives(s.policy, out.Creatives, t),
	})
}

func (s *Server) handleTiers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"data":    s.policy.Table(),
		"current": tierFrom(r.Context()),
	})
}

// restrictListing caps the listing at the tier's daily allowance and, when
// scores are hidden, drops score filters and score orderings. A negative
// MaxItems means the tier may list nothing.
func (s *Server) restrictListing(opts *store.ProductListOpts, t tier.Tier) {
	switch limit := s.policy.ProductsLimit(t); {
	case limit == tier.Unlimited:
	case limit <= 0:
		opts.MaxItems = -1
	default:
		opts.MaxItems = limit
	}

	if s.policy.CanAccess(t, tier.ShowScores) {
		return
	}
	opts.MinScore = 0
	if opts.SortBy != "first_seen_at" && opts.SortBy != "firstSeenAt" {
		opts.SortBy = ""
		opts.SortOrder = ""
	}
}

// gateProducts applies the tier's daily product allowance, then hides scores.
func (s *Server) gateProducts(products []product.Product, t tier.Tier) []product.Product {
	visible := tier.FilterProducts(s.policy, products, t)
	return tier.HideScores(s.policy, visible, t)
}

func (s *Server) loadProduct(w http.ResponseWriter, r *http.Request) (*product.Product, bool) {
	p, err := s.store.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return nil, false
	}
	if err != nil {
		s.internalError(w, err)
		return nil, false
	}
	return p, true
}

// requireUser returns the caller's X-User-ID, answering 401 for anonymous callers.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Header.Get(headerUser) == "" {
		writeError(w, http.StatusUnauthorized, "user id required")
		return "", false
	}
	return userFrom(r.Context()), true
}

func (s *Server) upgradeRequired(w http.ResponseWriter, f tier.Feature) {
	writeJSON(w, http.StatusForbidden, map[string]any{
		"error":         "upgrade required",
		"feature":       f,
		"required_tier": s.policy.MinimumTierForFeature(f),
	})
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.log.Errorw("request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
