package source

import (
	"context"
	"fmt"

	"github.com/elonfeng/prodradar/pkg/product"
	"github.com/elonfeng/prodradar/pkg/score"
)

// Kind identifies which collector produced or enriched a candidate.
type Kind string

const (
	KindFile   Kind = "file"
	KindFeed   Kind = "feed"
	KindReddit Kind = "reddit"
)

// Candidate is a product as reported by a source. Sources may fill the ready
// 0-100 signals directly or leave them zero and report raw period values instead.
type Candidate struct {
	product.Product

	SearchInterestCurrent  float64 `json:"search_interest_current,omitempty"`
	SearchInterestPrevious float64 `json:"search_interest_previous,omitempty"`
	OrdersThisWeek         float64 `json:"orders_this_week,omitempty"`
	OrdersLastWeek         float64 `json:"orders_last_week,omitempty"`
	RedditUpvotes          float64 `json:"reddit_upvotes,omitempty"`
	PinterestSaves         float64 `json:"pinterest_saves,omitempty"`
}

// Resolve returns the product with any missing trend signal derived from raw values.
func (c Candidate) Resolve(categoryAverage float64) product.Product {
	p := c.Product

	if p.GoogleTrendsGrowth == 0 && (c.SearchInterestCurrent > 0 || c.SearchInterestPrevious > 0) {
		p.GoogleTrendsGrowth = score.GoogleTrendsGrowth(c.SearchInterestCurrent, c.SearchInterestPrevious)
	}
	if p.SalesVelocity == 0 && (c.OrdersThisWeek > 0 || c.OrdersLastWeek > 0) {
		p.SalesVelocity = score.SalesVelocity(c.OrdersThisWeek, c.OrdersLastWeek)
	}
	if p.SocialMomentum == 0 && (c.RedditUpvotes > 0 || c.PinterestSaves > 0) {
		p.SocialMomentum = score.SocialMomentum(c.RedditUpvotes, c.PinterestSaves, categoryAverage)
	}

	return p
}

// Key is the identity a candidate is stored under.
func (c Candidate) Key() string {
	return fmt.Sprintf("%s:%s", c.Source, c.ExternalID)
}

// Source is the interface every collector must implement.
type Source interface {
	Name() Kind
	Collect(ctx context.Context) ([]Candidate, error)
}

// Enricher adds signals to candidates collected by other sources.
type Enricher interface {
	Name() Kind
	Enrich(ctx context.Context, candidates []Candidate) error
}

// AllKinds returns all known collector kinds.
func AllKinds() []Kind {
	return []Kind{KindFile, KindFeed, KindReddit}
}
