package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/elonfeng/prodradar/pkg/creative"
	"github.com/elonfeng/prodradar/pkg/product"
	"github.com/elonfeng/prodradar/pkg/score"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound is returned when a product or saved entry does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadySaved is returned when a user saves a product twice.
	ErrAlreadySaved = errors.New("already saved")
)

// Snapshot is one entry of a product's score history.
type Snapshot struct {
	ID                 int64     `db:"id" json:"id"`
	ProductID          string    `db:"product_id" json:"product_id"`
	TrendScore         int       `db:"trend_score" json:"trend_score"`
	CompetitionScore   int       `db:"competition_score" json:"competition_score"`
	MarginScore        int       `db:"margin_score" json:"margin_score"`
	OverallScore       int       `db:"overall_score" json:"overall_score"`
	GoogleTrendsGrowth float64   `db:"google_trends_growth" json:"google_trends_growth"`
	SocialMomentum     float64   `db:"social_momentum" json:"social_momentum"`
	AdLibraryCount     float64   `db:"ad_library_count" json:"ad_library_count"`
	ShopifyStoreCount  float64   `db:"shopify_store_count" json:"shopify_store_count"`
	RecordedAt         time.Time `db:"recorded_at" json:"recorded_at"`
}

// ProductListOpts controls product listing.
type ProductListOpts struct {
	Page      int
	Limit     int
	Category  string
	Source    product.Source
	MinScore  int
	SortBy    string
	SortOrder string
	// MaxItems caps the listing to the first MaxItems products of the ordering.
	// Pages past the cap are empty. Zero means no cap.
	MaxItems int
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// ProductPage is a page of products.
type ProductPage struct {
	Products   []product.Product `json:"products"`
	Pagination Pagination        `json:"pagination"`
}

// CategoryCount is a category with its active product count.
type CategoryCount struct {
	Category string `db:"category" json:"category"`
	Count    int    `db:"cnt" json:"count"`
}

// CategoryTrend is a category ranked by its average overall score.
type CategoryTrend struct {
	Category     string  `db:"category" json:"category"`
	ProductCount int     `db:"cnt" json:"product_count"`
	AvgScore     float64 `db:"avg_score" json:"avg_score"`
}

// DashboardStats summarizes the catalogue.
type DashboardStats struct {
	NewProductsToday int               `json:"new_products_today"`
	AverageScore     int               `json:"average_score"`
	TopCategory      string            `json:"top_category,omitempty"`
	HotProducts      []product.Product `json:"hot_products"`
}

// SavedProduct is a product a user bookmarked, with optional notes.
type SavedProduct struct {
	ID        string          `db:"id" json:"id"`
	UserID    string          `db:"user_id" json:"user_id"`
	ProductID string          `db:"product_id" json:"product_id"`
	Notes     string          `db:"notes" json:"notes"`
	SavedAt   time.Time       `db:"saved_at" json:"saved_at"`
	Product   product.Product `db:"-" json:"product"`
}

// WithoutScores returns a copy with the embedded product's scores cleared.
func (sp SavedProduct) WithoutScores() SavedProduct {
	sp.Product = sp.Product.WithoutScores()
	return sp
}

// Store is the persistence interface.
type Store interface {
	UpsertProduct(ctx context.Context, p *product.Product) error
	UpsertProducts(ctx context.Context, ps []product.Product) (int, error)
	GetProduct(ctx context.Context, id string) (*product.Product, error)
	ListProducts(ctx context.Context, opts ProductListOpts) (*ProductPage, error)
	ActiveProducts(ctx context.Context) ([]product.Product, error)

	SaveScores(ctx context.Context, p *product.Product, r score.Result, at time.Time) error
	GetScoreHistory(ctx context.Context, productID string, since time.Time) ([]Snapshot, error)
	RecentSnapshots(ctx context.Context, productID string, limit int) ([]Snapshot, error)
	MarkAlerted(ctx context.Context, productID string, at time.Time) error

	ReplaceCreatives(ctx context.Context, productID string, creatives []creative.AdCreative) error
	ListCreatives(ctx context.Context, productID string) ([]creative.AdCreative, error)

	SaveProduct(ctx context.Context, userID, productID, notes string) (*SavedProduct, error)
	UnsaveProduct(ctx context.Context, userID, productID string) error
	ListSavedProducts(ctx context.Context, userID string) ([]SavedProduct, error)

	DashboardStats(ctx context.Context, dayStart time.Time, hotThreshold int) (*DashboardStats, error)
	Categories(ctx context.Context) ([]CategoryCount, error)
	TrendingCategories(ctx context.Context, since time.Time) ([]CategoryTrend, error)
	TopMovers(ctx context.Context, minTrend, limit int) ([]product.Product, error)
	NewEntries(ctx context.Context, since time.Time, limit int) ([]product.Product, error)
	HotProducts(ctx context.Context, minScore, limit int) ([]product.Product, error)

	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// New opens a SQLite database and runs migrations.
func New(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) UpsertProduct(ctx context.Context, p *product.Product) error {
	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.FirstSeenAt.IsZero() {
		p.FirstSeenAt = now
	}
	p.UpdatedAt = now
	p.IsActive = true

	images, _ := json.Marshal(nonNil(p.ImageURLs))
	features, _ := json.Marshal(nonNil(p.KeyFeatures))
	pains, _ := json.Marshal(nonNil(p.PainPoints))

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (id, source, external_id, name, description, category, target_demographic, source_url,
			image_urls, key_features, pain_points, cost_price, suggested_retail_price, original_price, shipping_weight,
			google_trends_growth, sales_velocity, social_momentum, ad_library_count, shopify_store_count, amazon_seller_count,
			is_active, first_seen_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT(source, external_id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			category = excluded.category,
			target_demographic = excluded.target_demographic,
			source_url = excluded.source_url,
			image_urls = excluded.image_urls,
			key_features = excluded.key_features,
			pain_points = excluded.pain_points,
			cost_price = excluded.cost_price,
			suggested_retail_price = excluded.suggested_retail_price,
			original_price = excluded.original_price,
			shipping_weight = excluded.shipping_weight,
			google_trends_growth = excluded.google_trends_growth,
			sales_velocity = excluded.sales_velocity,
			social_momentum = excluded.social_momentum,
			ad_library_count = excluded.ad_library_count,
			shopify_store_count = excluded.shopify_store_count,
			amazon_seller_count = excluded.amazon_seller_count,
			is_active = 1,
			updated_at = excluded.updated_at
	`, p.ID, p.Source, p.ExternalID, p.Name, p.Description, p.Category, p.TargetDemographic, p.SourceURL,
		string(images), string(features), string(pains), p.CostPrice, p.SuggestedRetailPrice, p.OriginalPrice, p.ShippingWeight,
		p.GoogleTrendsGrowth, p.SalesVelocity, p.SocialMomentum, p.AdLibraryCount, p.ShopifyStoreCount, p.AmazonSellerCount,
		p.FirstSeenAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert product %s/%s: %w", p.Source, p.ExternalID, err)
	}

	// An existing row keeps its id and first-seen time.
	var existing struct {
		ID          string    `db:"id"`
		FirstSeenAt time.Time `db:"first_seen_at"`
	}
	err = s.db.GetContext(ctx, &existing,
		"SELECT id, first_seen_at FROM products WHERE source = ? AND external_id = ?", p.Source, p.ExternalID)
	if err != nil {
		return fmt.Errorf("reload product %s/%s: %w", p.Source, p.ExternalID, err)
	}
	p.ID = existing.ID
	p.FirstSeenAt = existing.FirstSeenAt
	return nil
}

// UpsertProducts stores every product it can and returns how many were stored.
// A failing product does not stop the batch; failures are joined into the error.
func (s *SQLiteStore) UpsertProducts(ctx context.Context, ps []product.Product) (int, error) {
	var (
		stored int
		errs   []error
	)
	for i := range ps {
		if err := s.UpsertProduct(ctx, &ps[i]); err != nil {
			errs = append(errs, err)
			continue
		}
		stored++
	}
	return stored, errors.Join(errs...)
}

func (s *SQLiteStore) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	var p product.Product
	err := s.db.GetContext(ctx, &p, "SELECT * FROM products WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get product %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	decodeProduct(&p)
	return &p, nil
}

var sortColumns = map[string]string{
	"overall_score":     "overall_score",
	"overallScore":      "overall_score",
	"trend_score":       "trend_score",
	"trendScore":        "trend_score",
	"competition_score": "competition_score",
	"competitionScore":  "competition_score",
	"margin_score":      "margin_score",
	"marginScore":       "margin_score",
	"first_seen_at":     "first_seen_at",
	"firstSeenAt":       "first_seen_at",
}

func (s *SQLiteStore) ListProducts(ctx context.Context, opts ProductListOpts) (*ProductPage, error) {
	where := " WHERE is_active = 1"
	var args []any

	if opts.Category != "" {
		where += " AND category = ?"
		args = append(args, opts.Category)
	}
	if opts.Source != "" {
		where += " AND source = ?"
		args = append(args, opts.Source)
	}
	if opts.MinScore > 0 {
		where += " AND overall_score >= ?"
		args = append(args, opts.MinScore)
	}

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM products"+where, args...); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	column, ok := sortColumns[opts.SortBy]
	if !ok {
		column = "overall_score"
	}
	order := "DESC"
	if opts.SortOrder == "asc" {
		order = "ASC"
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	offset := (page - 1) * limit
	window := limit
	if opts.MaxItems > 0 {
		total = min(total, opts.MaxItems)
		window = min(limit, opts.MaxItems-offset)
	}

	products := []product.Product{}
	if window > 0 {
		query := fmt.Sprintf("SELECT * FROM products%s ORDER BY %s IS NULL, %s %s, first_seen_at DESC, id LIMIT ? OFFSET ?",
			where, column, column, order)
		args = append(args, window, offset)

		var err error
		products, err = s.selectProducts(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
	}

	return &ProductPage{
		Products: products,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}, nil
}

func (s *SQLiteStore) ActiveProducts(ctx context.Context) ([]product.Product, error) {
	products, err := s.selectProducts(ctx, "SELECT * FROM products WHERE is_active = 1 ORDER BY first_seen_at, id")
	if err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}
	return products, nil
}

// SaveScores writes the latest scores onto the product and appends a history snapshot.
func (s *SQLiteStore) SaveScores(ctx context.Context, p *product.Product, r score.Result, at time.Time) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save scores %s: %w", p.ID, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE products SET trend_score = ?, competition_score = ?, margin_score = ?, overall_score = ?,
			is_hot_product = ?, scored_at = ?
		WHERE id = ?
	`, r.TrendScore, r.CompetitionScore, r.MarginScore, r.OverallScore, r.IsHotProduct, at, p.ID)
	if err != nil {
		return fmt.Errorf("update scores %s: %w", p.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update scores %s: %w", p.ID, ErrNotFound)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO score_snapshots (product_id, trend_score, competition_score, margin_score, overall_score,
			google_trends_growth, social_momentum, ad_library_count, shopify_store_count, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, r.TrendScore, r.CompetitionScore, r.MarginScore, r.OverallScore,
		p.GoogleTrendsGrowth, p.SocialMomentum, p.AdLibraryCount, p.ShopifyStoreCount, at)
	if err != nil {
		return fmt.Errorf("add snapshot %s: %w", p.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit scores %s: %w", p.ID, err)
	}
	p.ApplyScores(r, at)
	return nil
}

func (s *SQLiteStore) GetScoreHistory(ctx context.Context, productID string, since time.Time) ([]Snapshot, error) {
	snaps := []Snapshot{}
	err := s.db.SelectContext(ctx, &snaps,
		"SELECT * FROM score_snapshots WHERE product_id = ? AND recorded_at >= ? ORDER BY recorded_at, id",
		productID, since)
	if err != nil {
		return nil, fmt.Errorf("get score history %s: %w", productID, err)
	}
	return snaps, nil
}

// RecentSnapshots returns up to limit snapshots, newest first.
func (s *SQLiteStore) RecentSnapshots(ctx context.Context, productID string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 30
	}
	snaps := []Snapshot{}
	err := s.db.SelectContext(ctx, &snaps,
		"SELECT * FROM score_snapshots WHERE product_id = ? ORDER BY recorded_at DESC, id DESC LIMIT ?",
		productID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent snapshots %s: %w", productID, err)
	}
	return snaps, nil
}

func (s *SQLiteStore) MarkAlerted(ctx context.Context, productID string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, "UPDATE products SET alerted_at = ? WHERE id = ?", at, productID)
	if err != nil {
		return fmt.Errorf("mark alerted %s: %w", productID, err)
	}
	return nil
}

const creativeColumns = "id, product_id, type, platform, framework, headline, primary_text, description, call_to_action, image_prompt, video_script, generated_at"

// ReplaceCreatives swaps a product's creative set for a freshly generated one.
func (s *SQLiteStore) ReplaceCreatives(ctx context.Context, productID string, creatives []creative.AdCreative) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace creatives %s: %w", productID, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM ad_creatives WHERE product_id = ?", productID); err != nil {
		return fmt.Errorf("delete creatives %s: %w", productID, err)
	}

	now := time.Now().UTC()
	for i := range creatives {
		c := &creatives[i]
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		c.ProductID = productID
		if c.GeneratedAt.IsZero() {
			c.GeneratedAt = now
		}
		if c.VideoScript != nil {
			data, err := json.Marshal(c.VideoScript)
			if err != nil {
				return fmt.Errorf("marshal video script: %w", err)
			}
			c.VideoScriptJSON = string(data)
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO ad_creatives (`+creativeColumns+`, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, c.ID, c.ProductID, c.Type, c.Platform, c.Framework, c.Headline, c.PrimaryText, c.Description,
			c.CallToAction, c.ImagePrompt, c.VideoScriptJSON, c.GeneratedAt, i)
		if err != nil {
			return fmt.Errorf("insert creative %s: %w", productID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit creatives %s: %w", productID, err)
	}
	return nil
}

func (s *SQLiteStore) ListCreatives(ctx context.Context, productID string) ([]creative.AdCreative, error) {
	creatives := []creative.AdCreative{}
	err := s.db.SelectContext(ctx, &creatives,
		"SELECT "+creativeColumns+" FROM ad_creatives WHERE product_id = ? ORDER BY position",
		productID)
	if err != nil {
		return nil, fmt.Errorf("list creatives %s: %w", productID, err)
	}

	for i := range creatives {
		if creatives[i].VideoScriptJSON == "" {
			continue
		}
		var script creative.VideoScript
		if err := json.Unmarshal([]byte(creatives[i].VideoScriptJSON), &script); err == nil {
			creatives[i].VideoScript = &script
		}
	}
	return creatives, nil
}

// SaveProduct bookmarks a product for a user. Saving the same product twice
// returns ErrAlreadySaved, and an unknown product returns ErrNotFound.
func (s *SQLiteStore) SaveProduct(ctx context.Context, userID, productID, notes string) (*SavedProduct, error) {
	p, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	sp := &SavedProduct{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: productID,
		Notes:     notes,
		SavedAt:   time.Now().UTC(),
		Product:   *p,
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO saved_products (id, user_id, product_id, notes, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, product_id) DO NOTHING
	`, sp.ID, sp.UserID, sp.ProductID, sp.Notes, sp.SavedAt)
	if err != nil {
		return nil, fmt.Errorf("save product %s: %w", productID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("save product %s: %w", productID, ErrAlreadySaved)
	}
	return sp, nil
}

func (s *SQLiteStore) UnsaveProduct(ctx context.Context, userID, productID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM saved_products WHERE user_id = ? AND product_id = ?", userID, productID)
	if err != nil {
		return fmt.Errorf("unsave product %s: %w", productID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("unsave product %s: %w", productID, ErrNotFound)
	}
	return nil
}

// ListSavedProducts returns a user's saved products, most recently saved first.
func (s *SQLiteStore) ListSavedProducts(ctx context.Context, userID string) ([]SavedProduct, error) {
	saved := []SavedProduct{}
	err := s.db.SelectContext(ctx, &saved,
		"SELECT * FROM saved_products WHERE user_id = ? ORDER BY saved_at DESC, id DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("list saved products %s: %w", userID, err)
	}
	if len(saved) == 0 {
		return saved, nil
	}

	products, err := s.selectProducts(ctx, `
		SELECT p.* FROM products p
		JOIN saved_products sp ON sp.product_id = p.id
		WHERE sp.user_id = ?
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved products %s: %w", userID, err)
	}
	byID := make(map[string]product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for i := range saved {
		saved[i].Product = byID[saved[i].ProductID]
	}
	return saved, nil
}

func (s *SQLiteStore) DashboardStats(ctx context.Context, dayStart time.Time, hotThreshold int) (*DashboardStats, error) {
	var stats DashboardStats

	err := s.db.GetContext(ctx, &stats.NewProductsToday,
		"SELECT COUNT(*) FROM products WHERE is_active = 1 AND first_seen_at >= ?", dayStart)
	if err != nil {
		return nil, fmt.Errorf("count new products: %w", err)
	}

	var avg sql.NullFloat64
	if err := s.db.GetContext(ctx, &avg, "SELECT AVG(overall_score) FROM products WHERE is_active = 1"); err != nil {
		return nil, fmt.Errorf("average score: %w", err)
	}
	stats.AverageScore = int(math.Round(avg.Float64))

	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) > 0 {
		stats.TopCategory = categories[0].Category
	}

	stats.HotProducts, err = s.HotProducts(ctx, hotThreshold, 6)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *SQLiteStore) Categories(ctx context.Context) ([]CategoryCount, error) {
	out := []CategoryCount{}
	err := s.db.SelectContext(ctx, &out, `
		SELECT category, COUNT(*) AS cnt FROM products
		WHERE is_active = 1
		GROUP BY category
		ORDER BY cnt DESC, category
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) TrendingCategories(ctx context.Context, since time.Time) ([]CategoryTrend, error) {
	out := []CategoryTrend{}
	err := s.db.SelectContext(ctx, &out, `
		SELECT category, COUNT(*) AS cnt, COALESCE(AVG(overall_score), 0) AS avg_score FROM products
		WHERE is_active = 1 AND first_seen_at >= ?
		GROUP BY category
		ORDER BY avg_score DESC, category
		LIMIT 10
	`, since)
	if err != nil {
		return nil, fmt.Errorf("trending categories: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) TopMovers(ctx context.Context, minTrend, limit int) ([]product.Product, error) {
	products, err := s.selectProducts(ctx,
		"SELECT * FROM products WHERE is_active = 1 AND trend_score >= ? ORDER BY trend_score DESC, id LIMIT ?",
		minTrend, limit)
	if err != nil {
		return nil, fmt.Errorf("top movers: %w", err)
	}
	return products, nil
}

func (s *SQLiteStore) NewEntries(ctx context.Context, since time.Time, limit int) ([]product.Product, error) {
	products, err := s.selectProducts(ctx,
		"SELECT * FROM products WHERE is_active = 1 AND first_seen_at >= ? ORDER BY first_seen_at DESC, id LIMIT ?",
		since, limit)
	if err != nil {
		return nil, fmt.Errorf("new entries: %w", err)
	}
	return products, nil
}

func (s *SQLiteStore) HotProducts(ctx context.Context, minScore, limit int) ([]product.Product, error) {
	products, err := s.selectProducts(ctx,
		"SELECT * FROM products WHERE is_active = 1 AND overall_score >= ? ORDER BY overall_score DESC, id LIMIT ?",
		minScore, limit)
	if err != nil {
		return nil, fmt.Errorf("hot products: %w", err)
	}
	return products, nil
}

func (s *SQLiteStore) selectProducts(ctx context.Context, query string, args ...any) ([]product.Product, error) {
	products := []product.Product{}
	if err := s.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, err
	}
	for i := range products {
		decodeProduct(&products[i])
	}
	return products, nil
}

func decodeProduct(p *product.Product) {
	json.Unmarshal([]byte(p.ImageURLsJSON), &p.ImageURLs)
	json.Unmarshal([]byte(p.KeyFeaturesJSON), &p.KeyFeatures)
	json.Unmarshal([]byte(p.PainPointsJSON), &p.PainPoints)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
