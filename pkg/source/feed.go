package source

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/elonfeng/prodradar/pkg/product"
	"github.com/elonfeng/prodradar/pkg/score"
	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
	"go.uber.org/zap"
)

// MerchantFeed is a named supplier product feed URL.
type MerchantFeed struct {
	Name     string
	URL      string
	Category string
}

// Feed collects product candidates from RSS/Atom merchant feeds carrying
// Google Merchant (g:) attributes.
type Feed struct {
	client       *http.Client
	parser       *gofeed.Parser
	feeds        []MerchantFeed
	targetMargin float64
	log          *zap.SugaredLogger
}

// NewFeed creates a new merchant feed source. Items without a retail price
// are priced to reach targetMargin percent gross margin.
func NewFeed(feeds []MerchantFeed, targetMargin float64, log *zap.SugaredLogger) *Feed {
	return &Feed{
		client:       &http.Client{Timeout: 30 * time.Second},
		parser:       gofeed.NewParser(),
		feeds:        feeds,
		targetMargin: targetMargin,
		log:          log,
	}
}

func (f *Feed) Name() Kind { return KindFeed }

func (f *Feed) Collect(ctx context.Context) ([]Candidate, error) {
	var all []Candidate

	for _, feed := range f.feeds {
		candidates, err := f.collectFeed(ctx, feed)
		if err != nil {
			f.log.Warnw("merchant feed failed", "feed", feed.Name, "error", err)
			continue
		}
		all = append(all, candidates...)
	}

	return all, nil
}

func (f *Feed) collectFeed(ctx context.Context, feed MerchantFeed) ([]Candidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create feed request %s: %w", feed.Name, err)
	}
	req.Header.Set("User-Agent", "prodradar/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", feed.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed %s status %d", feed.Name, resp.StatusCode)
	}

	parsed, err := f.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feed.Name, err)
	}

	var candidates []Candidate
	for _, entry := range parsed.Items {
		if c, ok := f.toCandidate(feed, entry); ok {
			candidates = append(candidates, c)
		}
	}
	return candidates, nil
}

func (f *Feed) toCandidate(feed MerchantFeed, entry *gofeed.Item) (Candidate, bool) {
	g := entry.Extensions["g"]

	id := merchantValue(g, "id")
	if id == "" {
		id = entry.GUID
	}
	if id == "" || entry.Title == "" {
		return Candidate{}, false
	}

	link := merchantValue(g, "link")
	if link == "" {
		link = entry.Link
	}

	var images []string
	if img := merchantValue(g, "image_link"); img != "" {
		images = append(images, img)
	}
	for _, e := range g["additional_image_link"] {
		images = append(images, strings.TrimSpace(e.Value))
	}
	if entry.Image != nil && len(images) == 0 {
		images = append(images, entry.Image.URL)
	}

	category := feed.Category
	if category == "" {
		category = lastSegment(merchantValue(g, "product_type"))
	}
	if category == "" && len(entry.Categories) > 0 {
		category = entry.Categories[0]
	}

	weight := parseWeight(merchantValue(g, "shipping_weight"))
	listPrice := parsePrice(merchantValue(g, "price"))
	salePrice := parsePrice(merchantValue(g, "sale_price"))
	cost := parsePrice(merchantValue(g, "cost_of_goods_sold"))

	var retail, original float64
	if cost > 0 {
		retail = listPrice
		if salePrice > 0 {
			retail, original = salePrice, listPrice
		}
	} else {
		// Supplier feeds list their own price.
		cost = listPrice
	}
	if cost <= 0 {
		return Candidate{}, false
	}
	if retail <= 0 {
		retail = roundCents(score.SuggestedRetailPrice(cost, f.targetMargin, weight))
	}

	return Candidate{Product: product.Product{
		Source:               product.SourceFeed,
		ExternalID:           feed.Name + ":" + id,
		Name:                 strings.TrimSpace(entry.Title),
		Description:          strings.TrimSpace(entry.Description),
		Category:             category,
		SourceURL:            link,
		ImageURLs:            images,
		CostPrice:            cost,
		SuggestedRetailPrice: retail,
		OriginalPrice:        original,
		ShippingWeight:       weight,
	}}, true
}

func merchantValue(g map[string][]ext.Extension, name string) string {
	values := g[name]
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0].Value)
}

// parsePrice reads values like "29.99 USD".
func parsePrice(s string) float64 {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimPrefix(fields[0], "$"), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// parseWeight reads values like "350 g", "1.2 kg" or "2 lb" and returns grams.
func parseWeight(s string) float64 {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || v < 0 {
		return 0
	}
	unit := "g"
	if len(fields) > 1 {
		unit = fields[1]
	}
	switch unit {
	case "kg":
		return v * 1000
	case "lb":
		return v * 453.592
	case "oz":
		return v * 28.3495
	default:
		return v
	}
}

func lastSegment(productType string) string {
	parts := strings.Split(productType, ">")
	return strings.TrimSpace(parts[len(parts)-1])
}

func roundCents(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
