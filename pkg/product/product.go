package product

import (
	"time"

	"github.com/elonfeng/prodradar/pkg/creative"
	"github.com/elonfeng/prodradar/pkg/score"
)

// Source identifies where a product candidate was scraped from.
type Source string

const (
	SourceAliExpress Source = "ALIEXPRESS"
	SourceCJ         Source = "CJ_DROPSHIPPING"
	SourceAmazon     Source = "AMAZON"
	SourceTikTok     Source = "TIKTOK_SHOP"
	SourceFeed       Source = "FEED"
	SourceManual     Source = "MANUAL"
)

// Product is a scored product candidate. Score fields are nil until the first
// scoring run, and are cleared again when a subscription tier may not see them.
type Product struct {
	ID                string   `json:"id" db:"id"`
	Source            Source   `json:"source" db:"source"`
	ExternalID        string   `json:"external_id" db:"external_id"`
	Name              string   `json:"name" db:"name"`
	Description       string   `json:"description,omitempty" db:"description"`
	Category          string   `json:"category" db:"category"`
	TargetDemographic string   `json:"target_demographic,omitempty" db:"target_demographic"`
	SourceURL         string   `json:"source_url,omitempty" db:"source_url"`
	ImageURLs         []string `json:"image_urls,omitempty" db:"-"`
	KeyFeatures       []string `json:"key_features,omitempty" db:"-"`
	PainPoints        []string `json:"pain_points,omitempty" db:"-"`

	CostPrice            float64 `json:"cost_price" db:"cost_price"`
	SuggestedRetailPrice float64 `json:"suggested_retail_price" db:"suggested_retail_price"`
	OriginalPrice        float64 `json:"original_price,omitempty" db:"original_price"`
	ShippingWeight       float64 `json:"shipping_weight,omitempty" db:"shipping_weight"`

	GoogleTrendsGrowth float64 `json:"google_trends_growth" db:"google_trends_growth"`
	SalesVelocity      float64 `json:"sales_velocity" db:"sales_velocity"`
	SocialMomentum     float64 `json:"social_momentum" db:"social_momentum"`
	AdLibraryCount     float64 `json:"ad_library_count" db:"ad_library_count"`
	ShopifyStoreCount  float64 `json:"shopify_store_count" db:"shopify_store_count"`
	AmazonSellerCount  float64 `json:"amazon_seller_count" db:"amazon_seller_count"`

	TrendScore       *int `json:"trend_score,omitempty" db:"trend_score"`
	CompetitionScore *int `json:"competition_score,omitempty" db:"competition_score"`
	MarginScore      *int `json:"margin_score,omitempty" db:"margin_score"`
	OverallScore     *int `json:"overall_score,omitempty" db:"overall_score"`
	IsHotProduct     bool `json:"is_hot_product" db:"is_hot_product"`

	IsActive    bool       `json:"is_active" db:"is_active"`
	FirstSeenAt time.Time  `json:"first_seen_at" db:"first_seen_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	ScoredAt    *time.Time `json:"scored_at,omitempty" db:"scored_at"`
	AlertedAt   *time.Time `json:"-" db:"alerted_at"`

	ImageURLsJSON   string `json:"-" db:"image_urls"`
	KeyFeaturesJSON string `json:"-" db:"key_features"`
	PainPointsJSON  string `json:"-" db:"pain_points"`
}

// ScoreInput assembles the raw signals the scorer consumes.
func (p Product) ScoreInput() score.Input {
	return score.Input{
		Trend: score.TrendInput{
			GoogleTrendsGrowth: p.GoogleTrendsGrowth,
			SalesVelocity:      p.SalesVelocity,
			SocialMomentum:     p.SocialMomentum,
		},
		Competition: score.CompetitionInput{
			AdLibraryCount:    p.AdLibraryCount,
			ShopifyStoreCount: p.ShopifyStoreCount,
			AmazonSellerCount: p.AmazonSellerCount,
		},
		Margin: score.MarginInput{
			CostPrice:            p.CostPrice,
			SuggestedRetailPrice: p.SuggestedRetailPrice,
			ShippingWeight:       p.ShippingWeight,
		},
	}
}

// ApplyScores copies a scoring result onto the product.
func (p *Product) ApplyScores(r score.Result, at time.Time) {
	p.TrendScore = intPtr(r.TrendScore)
	p.CompetitionScore = intPtr(r.CompetitionScore)
	p.MarginScore = intPtr(r.MarginScore)
	p.OverallScore = intPtr(r.OverallScore)
	p.IsHotProduct = r.IsHotProduct
	p.ScoredAt = &at
}

// Brief is the subset of product attributes the creative generators read.
func (p Product) Brief() creative.Brief {
	return creative.Brief{
		ProductName:       p.Name,
		Description:       p.Description,
		Category:          p.Category,
		TargetDemographic: p.TargetDemographic,
		KeyFeatures:       p.KeyFeatures,
		PainPoints:        p.PainPoints,
		Price:             p.SuggestedRetailPrice,
		OriginalPrice:     p.OriginalPrice,
	}
}

// WithoutScores returns a copy with all four score fields cleared.
func (p Product) WithoutScores() Product {
	p.TrendScore = nil
	p.CompetitionScore = nil
	p.MarginScore = nil
	p.OverallScore = nil
	return p
}

// Overall returns the overall score and whether one has been computed.
func (p Product) Overall() (int, bool) {
	if p.OverallScore == nil {
		return 0, false
	}
	return *p.OverallScore, true
}

func intPtr(v int) *int { return &v }
