package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/elonfeng/prodradar/internal/store"
	"github.com/elonfeng/prodradar/pkg/creative"
	"github.com/elonfeng/prodradar/pkg/product"
	"github.com/elonfeng/prodradar/pkg/score"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Outcome is the result of evaluating one product.
type Outcome struct {
	Product   product.Product       `json:"product"`
	Result    score.Result          `json:"result"`
	Creatives []creative.AdCreative `json:"creatives,omitempty"`
	Err       error                 `json:"-"`
}

// Engine scores products and regenerates their creatives.
type Engine struct {
	store      store.Store
	thresholds score.Thresholds
	workers    int
	log        *zap.SugaredLogger
	now        func() time.Time
}

// NewEngine creates a new pipeline engine.
func NewEngine(s store.Store, thresholds score.Thresholds, workers int, log *zap.SugaredLogger) *Engine {
	if workers <= 0 {
		workers = 8
	}
	return &Engine{
		store:      s,
		thresholds: thresholds,
		workers:    workers,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Thresholds returns the classification policy in use.
func (e *Engine) Thresholds() score.Thresholds { return e.thresholds }

// Evaluate scores a product and builds its creative set when it qualifies.
// It performs no I/O and is deterministic for a given product.
func (e *Engine) Evaluate(p product.Product) Outcome {
	result := score.Calculate(p.ScoreInput(), e.thresholds)

	out := Outcome{Product: p, Result: result}
	if e.thresholds.ShouldGenerateCreatives(result.OverallScore) {
		out.Creatives = creative.Build(p.Brief())
	}
	return out
}

// Refresh scores every active product, appends a score snapshot for each and
// replaces the creatives of qualifying products. Outcomes are in store order.
// A product that fails to persist is logged and reported on its Outcome.
func (e *Engine) Refresh(ctx context.Context) ([]Outcome, error) {
	products, err := e.store.ActiveProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	outcomes := make([]Outcome, len(products))
	at := e.now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i := range products {
		p := products[i]

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = e.apply(gctx, p, at)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("refresh scores: %w", err)
	}

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	e.log.Infow("scores refreshed", "products", len(outcomes), "failed", failed)

	return outcomes, nil
}

func (e *Engine) apply(ctx context.Context, p product.Product, at time.Time) Outcome {
	out := e.Evaluate(p)

	if err := e.store.SaveScores(ctx, &out.Product, out.Result, at); err != nil {
		e.log.Warnw("save scores failed", "product", p.ID, "error", err)
		out.Err = err
		return out
	}

	if len(out.Creatives) == 0 {
		return out
	}
	if err := e.store.ReplaceCreatives(ctx, p.ID, out.Creatives); err != nil {
		e.log.Warnw("save creatives failed", "product", p.ID, "error", err)
		out.Err = err
	}
	return out
}
