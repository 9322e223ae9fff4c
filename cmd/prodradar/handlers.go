package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/elonfeng/prodradar/internal/config"
	"github.com/elonfeng/prodradar/internal/logger"
	"github.com/elonfeng/prodradar/internal/pipeline"
	"github.com/elonfeng/prodradar/internal/quota"
	"github.com/elonfeng/prodradar/internal/scheduler"
	"github.com/elonfeng/prodradar/internal/store"
	"github.com/elonfeng/prodradar/pkg/alert"
	"github.com/elonfeng/prodradar/pkg/product"
	"github.com/elonfeng/prodradar/pkg/server"
	"github.com/elonfeng/prodradar/pkg/source"
	"github.com/elonfeng/prodradar/pkg/tier"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// app bundles what every command needs.
type app struct {
	cfg    *config.Config
	log    *zap.SugaredLogger
	db     *store.SQLiteStore
	policy *tier.Policy
}

func openApp() (*app, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, err
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	return &app{cfg: cfg, log: log, db: db, policy: cfg.TierPolicy()}, nil
}

func (a *app) Close() {
	a.db.Close()
	a.log.Sync()
}

func (a *app) engine() *pipeline.Engine {
	return pipeline.NewEngine(a.db, a.cfg.Scoring.Thresholds, a.cfg.Scoring.Workers, a.log)
}

func (a *app) sources() []source.Source {
	var sources []source.Source
	cfg := a.cfg.Sources

	if cfg.File.Enabled && len(cfg.File.Paths) > 0 {
		sources = append(sources, source.NewFile(cfg.File.Paths, a.log.Named("file")))
	}
	if cfg.Feeds.Enabled {
		feeds := make([]source.MerchantFeed, len(cfg.Feeds.Feeds))
		for i, f := range cfg.Feeds.Feeds {
			feeds[i] = source.MerchantFeed{Name: f.Name, URL: f.URL, Category: f.Category}
		}
		sources = append(sources, source.NewFeed(feeds, a.cfg.Scoring.TargetMargin, a.log.Named("feed")))
	}

	return sources
}

func (a *app) enrichers() []source.Enricher {
	var enrichers []source.Enricher
	r := a.cfg.Sources.Reddit
	if r.Enabled && r.ClientID != "" {
		enrichers = append(enrichers, source.NewReddit(r.ClientID, r.ClientSecret, r.Subreddits, a.log.Named("reddit")))
	}
	return enrichers
}

func (a *app) collector(sources []source.Source) *source.Collector {
	filter := source.NewFilter(a.cfg.Filter.ExcludeKeywords, a.cfg.Filter.Categories)
	return source.NewCollector(sources, a.enrichers(), filter, a.cfg.Sources.Reddit.CategoryAverage, a.log)
}

func (a *app) alertManager() *alert.Manager {
	var notifiers []alert.Notifier
	cfg := a.cfg.Alerts

	if cfg.Slack.Enabled && cfg.Slack.WebhookURL != "" {
		notifiers = append(notifiers, alert.NewSlack(cfg.Slack.WebhookURL))
	}
	if cfg.Discord.Enabled && cfg.Discord.WebhookURL != "" {
		notifiers = append(notifiers, alert.NewDiscord(cfg.Discord.WebhookURL))
	}
	if cfg.Webhook.Enabled && cfg.Webhook.URL != "" {
		notifiers = append(notifiers, alert.NewWebhook(cfg.Webhook.URL, cfg.Webhook.Secret))
	}

	return alert.NewManager(notifiers)
}

// quota connects the detail-view counter, or returns nil when Redis is not configured.
func (a *app) quota(ctx context.Context) (*quota.Counter, error) {
	r := a.cfg.Redis
	if r.Addr == "" {
		a.log.Warn("redis not configured, detail view limits disabled")
		return nil, nil
	}
	return quota.Connect(ctx, r.Addr, r.Password, r.DB)
}

func (a *app) server(ctx context.Context, port int) (*server.Server, func(), error) {
	q, err := a.quota(ctx)
	if err != nil {
		return nil, nil, err
	}

	if port == 0 {
		port = a.cfg.Server.Port
	}
	opts := server.Options{Port: port, AllowedOrigins: a.cfg.Server.AllowedOrigins}
	srv := server.New(a.db, a.engine(), a.policy, q, opts, a.log.Named("http"))
	return srv, func() { q.Close() }, nil
}

func runCollect(only []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	sources := a.sources()
	if len(only) > 0 {
		wanted := make(map[string]bool)
		for _, s := range only {
			wanted[strings.ToLower(strings.TrimSpace(s))] = true
		}
		var picked []source.Source
		for _, s := range sources {
			if wanted[string(s.Name())] {
				picked = append(picked, s)
			}
		}
		if len(picked) == 0 {
			return fmt.Errorf("no matching sources for: %s", strings.Join(only, ", "))
		}
		sources = picked
	}

	ctx := context.Background()
	products := a.collector(sources).Collect(ctx)
	stored, err := a.db.UpsertProducts(ctx, products)
	fmt.Fprintf(os.Stderr, "stored %d of %d products from %d sources\n", stored, len(products), len(sources))
	if err != nil {
		return fmt.Errorf("store products: %w", err)
	}
	return nil
}

func runScore(jsonOutput bool) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	outcomes, err := a.engine().Refresh(context.Background())
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(outcomes)
	}

	if len(outcomes) == 0 {
		fmt.Println("no products found (try collecting first: prodradar collect)")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "OVERALL\tTREND\tCOMP\tMARGIN\tHOT\tCREATIVES\tPRODUCT")
	for _, o := range outcomes {
		r := o.Result
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%s\t%d\t%s\n",
			r.OverallScore, r.TrendScore, r.CompetitionScore, r.MarginScore,
			yesNo(r.IsHotProduct), len(o.Creatives), o.Product.Name)
	}
	return w.Flush()
}

type productsOpts struct {
	json     bool
	tier     string
	category string
	minScore int
	limit    int
}

func runProducts(opts productsOpts) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	page, err := a.db.ListProducts(context.Background(), store.ProductListOpts{
		Category: opts.category,
		MinScore: opts.minScore,
		Limit:    opts.limit,
	})
	if err != nil {
		return err
	}

	t := tier.ParseTier(opts.tier)
	products := tier.HideScores(a.policy, tier.FilterProducts(a.policy, page.Products, t), t)

	if opts.json {
		return printJSON(products)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tOVERALL\tHOT\tCATEGORY\tRETAIL\tPRODUCT")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t$%.2f\t%s\n",
			p.ID, overallText(p), yesNo(p.IsHotProduct), p.Category, p.SuggestedRetailPrice, p.Name)
	}
	return w.Flush()
}

func runCreatives(productID, tierName string, jsonOutput bool) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	if _, err := a.db.GetProduct(ctx, productID); err != nil {
		return err
	}

	creatives, err := a.db.ListCreatives(ctx, productID)
	if err != nil {
		return err
	}
	creatives = tier.FilterCreatives(a.policy, creatives, tier.ParseTier(tierName))

	if jsonOutput {
		return printJSON(creatives)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tPLATFORM\tFRAMEWORK\tHEADLINE")
	for _, c := range creatives {
		headline := c.Headline
		if c.VideoScript != nil {
			headline = fmt.Sprintf("%s (%ds)", c.VideoScript.Type, c.VideoScript.TotalDuration)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Type, c.Platform, c.Framework, headline)
	}
	return w.Flush()
}

func runTiers() error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIER\tPRODUCTS/DAY\tVIEWS/DAY\tSCORES\tAD COPY\tIMAGES\tVIDEO\tAPI\tALERTS\tHISTORY")
	for _, row := range a.policy.Table() {
		l := row.Limits
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n", row.Tier,
			limitText(l.ProductsPerDay), limitText(l.DetailViewsPerDay),
			yesNo(l.ShowScores), yesNo(l.AdCopyAccess), yesNo(l.ImageAccess), yesNo(l.VideoScriptAccess),
			yesNo(l.APIAccess), yesNo(l.EmailAlerts), yesNo(l.ScoreHistory))
	}
	return w.Flush()
}

func runServe(port int) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv, closeQuota, err := a.server(ctx, port)
	if err != nil {
		return err
	}
	defer closeQuota()

	return srv.ListenAndServe(ctx)
}

func runDaemon(port int) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv, closeQuota, err := a.server(ctx, port)
	if err != nil {
		return err
	}
	defer closeQuota()

	sched := scheduler.New(a.db, a.collector(a.sources()), a.engine(), a.alertManager(),
		a.policy.MinimumTierForFeature(tier.EmailAlerts),
		a.cfg.Schedule.ParseCollectInterval(),
		a.cfg.Schedule.ParseScoreInterval(),
		a.log.Named("scheduler"),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := sched.Run(gctx); err != nil && ctx.Err() == nil {
			return fmt.Errorf("scheduler: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return srv.ListenAndServe(gctx)
	})

	err = g.Wait()
	a.log.Info("shut down")
	return err
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func overallText(p product.Product) string {
	if v, ok := p.Overall(); ok {
		return fmt.Sprintf("%d", v)
	}
	return "-"
}

func limitText(n int) string {
	if n == tier.Unlimited {
		return "unlimited"
	}
	return fmt.Sprintf("%d", n)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
