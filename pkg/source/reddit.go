package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	redditAuthURL = "https://www.reddit.com/api/v1/access_token"
	redditAPIURL  = "https://oauth.reddit.com"
)

// Reddit enriches candidates with the upvotes of recent posts mentioning them.
type Reddit struct {
	client       *http.Client
	clientID     string
	clientSecret string
	subreddits   []string
	authURL      string
	apiURL       string
	log          *zap.SugaredLogger
	mu           sync.Mutex
	token        string
	tokenExpiry  time.Time
}

// NewReddit creates a new Reddit enricher.
func NewReddit(clientID, clientSecret string, subreddits []string, log *zap.SugaredLogger) *Reddit {
	if len(subreddits) == 0 {
		subreddits = []string{
			"shutupandtakemymoney", "BuyItForLife", "gadgets",
			"TikTokMadeMeBuyIt", "amazonfinds",
		}
	}
	return &Reddit{
		client:       &http.Client{Timeout: 30 * time.Second},
		clientID:     clientID,
		clientSecret: clientSecret,
		subreddits:   subreddits,
		authURL:      redditAuthURL,
		apiURL:       redditAPIURL,
		log:          log,
	}
}

func (r *Reddit) Name() Kind { return KindReddit }

// Enrich sets RedditUpvotes on candidates that carry no social signal yet.
func (r *Reddit) Enrich(ctx context.Context, candidates []Candidate) error {
	if err := r.authenticate(ctx); err != nil {
		return fmt.Errorf("reddit auth: %w", err)
	}

	for i := range candidates {
		c := &candidates[i]
		if c.SocialMomentum > 0 || c.RedditUpvotes > 0 {
			continue
		}

		upvotes, err := r.searchUpvotes(ctx, c.Name)
		if err != nil {
			r.log.Warnw("reddit search failed", "product", c.Name, "error", err)
			continue
		}
		c.RedditUpvotes = float64(upvotes)
	}

	return nil
}

func (r *Reddit) authenticate(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.token != "" && time.Now().Before(r.tokenExpiry) {
		return nil
	}

	data := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.authURL, strings.NewReader(data.Encode()))
	if err != nil {
		return err
	}

	req.SetBasicAuth(r.clientID, r.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "prodradar/1.0")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("reddit token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("reddit auth status %d", resp.StatusCode)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return fmt.Errorf("decode reddit token: %w", err)
	}

	r.token = tokenResp.AccessToken
	r.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn-60) * time.Second)
	return nil
}

// searchUpvotes sums the score of this week's posts in the tracked
// subreddits whose title mentions the product.
func (r *Reddit) searchUpvotes(ctx context.Context, name string) (int, error) {
	q := url.Values{
		"q":           {fmt.Sprintf("%q", name)},
		"restrict_sr": {"on"},
		"sort":        {"top"},
		"t":           {"week"},
		"limit":       {"50"},
	}
	reqURL := fmt.Sprintf("%s/r/%s/search.json?%s", r.apiURL, strings.Join(r.subreddits, "+"), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+r.token)
	req.Header.Set("User-Agent", "prodradar/1.0")

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("search reddit %q: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("reddit search status %d", resp.StatusCode)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return 0, fmt.Errorf("decode reddit search: %w", err)
	}

	needle := strings.ToLower(name)
	total := 0
	for _, child := range listing.Data.Children {
		post := child.Data
		if post.Stickied || !strings.Contains(strings.ToLower(post.Title), needle) {
			continue
		}
		if post.Score > 0 {
			total += post.Score
		}
	}
	return total, nil
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Permalink string `json:"permalink"`
	Score     int    `json:"score"`
	Stickied  bool   `json:"stickied"`
}
