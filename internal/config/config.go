package config

import (
	"fmt"
	"os"
	"time"

	"github.com/elonfeng/prodradar/internal/logger"
	"github.com/elonfeng/prodradar/pkg/score"
	"github.com/elonfeng/prodradar/pkg/tier"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Database DatabaseConfig            `yaml:"database"`
	Redis    RedisConfig               `yaml:"redis"`
	Schedule ScheduleConfig            `yaml:"schedule"`
	Sources  SourcesConfig             `yaml:"sources"`
	Scoring  ScoringConfig             `yaml:"scoring"`
	Tiers    map[tier.Tier]tier.Limits `yaml:"tiers"`
	Alerts   AlertsConfig              `yaml:"alerts"`
	Server   ServerConfig              `yaml:"server"`
	Filter   FilterConfig              `yaml:"filter"`
	Logger   logger.Config             `yaml:"logger"`
}

// DatabaseConfig configures SQLite storage.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// RedisConfig configures the detail-view quota counter. Quotas are not
// enforced when Addr is empty.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// ScheduleConfig configures collection and scoring intervals.
type ScheduleConfig struct {
	CollectInterval string `yaml:"collect_interval"`
	ScoreInterval   string `yaml:"score_interval"`
}

// ParseCollectInterval returns the collect interval as time.Duration.
func (s ScheduleConfig) ParseCollectInterval() time.Duration {
	d, err := time.ParseDuration(s.CollectInterval)
	if err != nil {
		return time.Hour
	}
	return d
}

// ParseScoreInterval returns the scoring interval as time.Duration.
func (s ScheduleConfig) ParseScoreInterval() time.Duration {
	d, err := time.ParseDuration(s.ScoreInterval)
	if err != nil {
		return 6 * time.Hour
	}
	return d
}

// SourcesConfig holds configuration for all candidate sources.
type SourcesConfig struct {
	File   FileConfig   `yaml:"file"`
	Feeds  FeedsConfig  `yaml:"feeds"`
	Reddit RedditConfig `yaml:"reddit"`
}

// FileConfig for JSON candidate drops written by scraper jobs.
type FileConfig struct {
	Enabled bool     `yaml:"enabled"`
	Paths   []string `yaml:"paths"`
}

// FeedsConfig for merchant product feeds.
type FeedsConfig struct {
	Enabled bool       `yaml:"enabled"`
	Feeds   []FeedItem `yaml:"feeds"`
}

// FeedItem is a single merchant feed entry.
type FeedItem struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
}

// RedditConfig for the social momentum enricher.
type RedditConfig struct {
	Enabled         bool     `yaml:"enabled"`
	ClientID        string   `yaml:"client_id"`
	ClientSecret    string   `yaml:"client_secret"`
	Subreddits      []string `yaml:"subreddits"`
	CategoryAverage float64  `yaml:"category_average"`
}

// ScoringConfig configures classification and batch scoring.
type ScoringConfig struct {
	Thresholds   score.Thresholds `yaml:"thresholds"`
	Workers      int              `yaml:"workers"`
	TargetMargin float64          `yaml:"target_margin"`
}

// AlertsConfig configures alert destinations.
type AlertsConfig struct {
	Slack   SlackConfig   `yaml:"slack"`
	Discord DiscordConfig `yaml:"discord"`
	Webhook WebhookConfig `yaml:"webhook"`
}

// SlackConfig for Slack webhook alerts.
type SlackConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// DiscordConfig for Discord webhook alerts.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// WebhookConfig for generic webhook alerts.
type WebhookConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Secret  string `yaml:"secret"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// FilterConfig configures candidate filtering.
type FilterConfig struct {
	ExcludeKeywords []string `yaml:"exclude_keywords"`
	Categories      []string `yaml:"categories"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "./prodradar.db"},
		Schedule: ScheduleConfig{
			CollectInterval: "1h",
			ScoreInterval:   "6h",
		},
		Sources: SourcesConfig{
			File: FileConfig{Enabled: true, Paths: []string{"./candidates.json"}},
			Reddit: RedditConfig{
				Subreddits:      []string{"shutupandtakemymoney", "BuyItForLife", "gadgets", "ProductPorn"},
				CategoryAverage: 500,
			},
		},
		Scoring: ScoringConfig{
			Thresholds:   score.DefaultThresholds(),
			Workers:      8,
			TargetMargin: 60,
		},
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Logger: logger.Config{Level: "info", Mode: "development", Encoding: "console"},
	}
}

// Load reads configuration from a YAML file and applies env var overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// TierPolicy builds the immutable tier table from the built-in limits and any overrides.
func (c *Config) TierPolicy() *tier.Policy {
	return tier.NewPolicy(c.Tiers)
}

// applyEnvOverrides overrides config values with environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PRODRADAR_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("PRODRADAR_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("PRODRADAR_LOG_LEVEL"); v != "" {
		cfg.Logger.Level = v
	}
	if v := os.Getenv("REDDIT_CLIENT_ID"); v != "" {
		cfg.Sources.Reddit.ClientID = v
	}
	if v := os.Getenv("REDDIT_CLIENT_SECRET"); v != "" {
		cfg.Sources.Reddit.ClientSecret = v
	}
	if v := os.Getenv("SLACK_WEBHOOK_URL"); v != "" {
		cfg.Alerts.Slack.WebhookURL = v
		cfg.Alerts.Slack.Enabled = true
	}
	if v := os.Getenv("DISCORD_WEBHOOK_URL"); v != "" {
		cfg.Alerts.Discord.WebhookURL = v
		cfg.Alerts.Discord.Enabled = true
	}
	if v := os.Getenv("PRODRADAR_WEBHOOK_URL"); v != "" {
		cfg.Alerts.Webhook.URL = v
		cfg.Alerts.Webhook.Enabled = true
	}
}
