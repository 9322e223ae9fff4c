package source

import (
	"context"

	"github.com/elonfeng/prodradar/pkg/product"
	"go.uber.org/zap"
)

// Collector runs every source, filters the candidates, applies enrichers
// and resolves derived signals into products ready to store.
type Collector struct {
	sources         []Source
	enrichers       []Enricher
	filter          *Filter
	categoryAverage float64
	log             *zap.SugaredLogger
}

// NewCollector creates a collector. categoryAverage is the social engagement
// a typical product in a category receives over the same period.
func NewCollector(sources []Source, enrichers []Enricher, filter *Filter, categoryAverage float64, log *zap.SugaredLogger) *Collector {
	return &Collector{
		sources:         sources,
		enrichers:       enrichers,
		filter:          filter,
		categoryAverage: categoryAverage,
		log:             log,
	}
}

// Sources returns the configured sources.
func (c *Collector) Sources() []Source { return c.sources }

// Collect gathers products from all sources. A failing source or enricher is
// logged and skipped.
func (c *Collector) Collect(ctx context.Context) []product.Product {
	var candidates []Candidate
	seen := make(map[string]bool)

	for _, src := range c.sources {
		found, err := src.Collect(ctx)
		if err != nil {
			c.log.Warnw("source failed", "source", src.Name(), "error", err)
			continue
		}

		kept := c.filter.Apply(found)
		added := 0
		for _, cand := range kept {
			if seen[cand.Key()] {
				continue
			}
			seen[cand.Key()] = true
			candidates = append(candidates, cand)
			added++
		}
		c.log.Infow("collected", "source", src.Name(), "found", len(found), "kept", added)
	}

	for _, e := range c.enrichers {
		if err := e.Enrich(ctx, candidates); err != nil {
			c.log.Warnw("enricher failed", "enricher", e.Name(), "error", err)
		}
	}

	products := make([]product.Product, len(candidates))
	for i, cand := range candidates {
		products[i] = cand.Resolve(c.categoryAverage)
	}
	return products
}
