package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/elonfeng/prodradar/pkg/product"
	"github.com/elonfeng/prodradar/pkg/tier"
)

// Notification announces a product that crossed the alert threshold.
type Notification struct {
	Title   string          `json:"title"`
	Body    string          `json:"body"`
	URL     string          `json:"url,omitempty"`
	Score   int             `json:"score"`
	Product product.Product `json:"product"`
	MinTier tier.Tier       `json:"min_tier"`
	SentAt  time.Time       `json:"sent_at"`
}

// NewProductNotification builds the alert for p. minTier is the lowest tier
// subscribed to alert emails; downstream mailers fan out from it.
func NewProductNotification(p product.Product, minTier tier.Tier) *Notification {
	overall, _ := p.Overall()
	return &Notification{
		Title:   "Hot product: " + p.Name,
		Body:    summary(p),
		URL:     p.SourceURL,
		Score:   overall,
		Product: p,
		MinTier: minTier,
		SentAt:  time.Now().UTC(),
	}
}

func summary(p product.Product) string {
	return fmt.Sprintf("%s | cost $%.2f, retail $%.2f | trend %s, competition %s, margin %s",
		p.Category, p.CostPrice, p.SuggestedRetailPrice,
		scoreText(p.TrendScore), scoreText(p.CompetitionScore), scoreText(p.MarginScore))
}

func scoreText(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

// Notifier delivers alerts to a specific destination.
type Notifier interface {
	Name() string
	Send(ctx context.Context, n *Notification) error
}

// Manager broadcasts notifications to all registered notifiers.
type Manager struct {
	notifiers []Notifier
}

// NewManager creates a new alert manager.
func NewManager(notifiers []Notifier) *Manager {
	return &Manager{notifiers: notifiers}
}

// HasNotifiers returns true if at least one notifier is configured.
func (m *Manager) HasNotifiers() bool {
	return len(m.notifiers) > 0
}

// Broadcast sends a notification to all registered notifiers.
func (m *Manager) Broadcast(ctx context.Context, n *Notification) error {
	var errs []error
	for _, notifier := range m.notifiers {
		if err := notifier.Send(ctx, n); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", notifier.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// postJSON marshals payload and posts it, treating any 2xx as success.
func postJSON(ctx context.Context, client *http.Client, url, name string, payload any, headers map[string]string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", name, err)
	}
	return post(ctx, client, url, name, body, headers)
}

func post(ctx context.Context, client *http.Client, url, name string, body []byte, headers map[string]string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "prodradar/1.0")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("send %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s status %d", name, resp.StatusCode)
	}
	return nil
}
