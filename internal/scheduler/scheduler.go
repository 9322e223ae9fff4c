package scheduler

import (
	"context"
	"time"

	"github.com/elonfeng/prodradar/internal/pipeline"
	"github.com/elonfeng/prodradar/internal/store"
	"github.com/elonfeng/prodradar/pkg/alert"
	"github.com/elonfeng/prodradar/pkg/source"
	"github.com/elonfeng/prodradar/pkg/tier"
	"go.uber.org/zap"
)

// Scheduler runs periodic collection, scoring and alerting.
type Scheduler struct {
	store      store.Store
	collector  *source.Collector
	engine     *pipeline.Engine
	alertMgr   *alert.Manager
	alertTier  tier.Tier
	collectInt time.Duration
	scoreInt   time.Duration
	log        *zap.SugaredLogger
}

// New creates a new scheduler. alertTier is the lowest tier entitled to alerts.
func New(
	s store.Store,
	collector *source.Collector,
	engine *pipeline.Engine,
	alertMgr *alert.Manager,
	alertTier tier.Tier,
	collectInt, scoreInt time.Duration,
	log *zap.SugaredLogger,
) *Scheduler {
	if collectInt == 0 {
		collectInt = time.Hour
	}
	if scoreInt == 0 {
		scoreInt = 6 * time.Hour
	}
	return &Scheduler{
		store:      s,
		collector:  collector,
		engine:     engine,
		alertMgr:   alertMgr,
		alertTier:  alertTier,
		collectInt: collectInt,
		scoreInt:   scoreInt,
		log:        log,
	}
}

// Run starts the scheduler loop. Blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	collectTicker := time.NewTicker(s.collectInt)
	scoreTicker := time.NewTicker(s.scoreInt)
	defer collectTicker.Stop()
	defer scoreTicker.Stop()

	// Run immediately on start.
	s.Collect(ctx)
	s.ScoreAndAlert(ctx)

	s.log.Infow("scheduler running", "collect_every", s.collectInt, "score_every", s.scoreInt)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return ctx.Err()
		case <-collectTicker.C:
			s.Collect(ctx)
		case <-scoreTicker.C:
			s.ScoreAndAlert(ctx)
		}
	}
}

// Collect gathers candidates from every source and stores them.
func (s *Scheduler) Collect(ctx context.Context) int {
	products := s.collector.Collect(ctx)
	stored, err := s.store.UpsertProducts(ctx, products)
	if err != nil {
		s.log.Errorw("store products failed", "failed", len(products)-stored, "error", err)
	}
	s.log.Infow("collection finished", "products", stored)
	return stored
}

// ScoreAndAlert refreshes every score and alerts once per product crossing
// the alert threshold. A failed alert leaves the product for the next run.
func (s *Scheduler) ScoreAndAlert(ctx context.Context) int {
	outcomes, err := s.engine.Refresh(ctx)
	if err != nil {
		s.log.Errorw("score refresh failed", "error", err)
		return 0
	}

	if s.alertMgr == nil || !s.alertMgr.HasNotifiers() {
		return 0
	}

	alerted := 0
	for _, o := range outcomes {
		if o.Err != nil || !o.Result.ShouldTriggerAlert || o.Product.AlertedAt != nil {
			continue
		}

		n := alert.NewProductNotification(o.Product, s.alertTier)
		if err := s.alertMgr.Broadcast(ctx, n); err != nil {
			s.log.Warnw("alert failed", "product", o.Product.ID, "error", err)
			continue
		}

		if err := s.store.MarkAlerted(ctx, o.Product.ID, time.Now().UTC()); err != nil {
			s.log.Warnw("mark alerted failed", "product", o.Product.ID, "error", err)
			continue
		}
		s.log.Infow("alerted", "product", o.Product.Name, "score", o.Result.OverallScore)
		alerted++
	}
	return alerted
}
