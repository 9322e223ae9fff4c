package alert

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Discord sends notifications via Discord webhook.
type Discord struct {
	client     *http.Client
	webhookURL string
}

// NewDiscord creates a new Discord notifier.
func NewDiscord(webhookURL string) *Discord {
	return &Discord{
		client:     &http.Client{Timeout: 10 * time.Second},
		webhookURL: webhookURL,
	}
}

func (d *Discord) Name() string { return "discord" }

func (d *Discord) Send(ctx context.Context, n *Notification) error {
	p := n.Product
	embed := map[string]any{
		"title":       fmt.Sprintf("🔥 %s", n.Title),
		"description": fmt.Sprintf("**Score:** %d\n\n%s", n.Score, n.Body),
		"color":       0xFF6600,
		"timestamp":   n.SentAt.Format(time.RFC3339),
		"fields": []map[string]any{
			{"name": "Category", "value": p.Category, "inline": true},
			{"name": "Source", "value": string(p.Source), "inline": true},
			{"name": "Retail", "value": fmt.Sprintf("$%.2f", p.SuggestedRetailPrice), "inline": true},
		},
	}
	if n.URL != "" {
		embed["url"] = n.URL
	}

	payload := map[string]any{
		"embeds": []map[string]any{embed},
	}
	return postJSON(ctx, d.client, d.webhookURL, "discord webhook", payload, nil)
}
