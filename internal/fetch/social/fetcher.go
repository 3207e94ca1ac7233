// Package social retrieves individual social-media posts through a read-only
// platform API instead of scraping the heavily scripted web UI.
package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/readpage/internal/reader"
)

// minPostLength rejects API responses whose text body is effectively empty.
const minPostLength = 10

// Config controls the API client.
type Config struct {
	Endpoint string
	Timeout  time.Duration
}

// Fetcher implements reader.Strategy against the FxTwitter status API. It is
// applicable only to URLs that classify as social-media posts; anything else
// returns absent without network I/O.
type Fetcher struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

// New builds a Fetcher.
func New(cfg Config, logger *zap.Logger) *Fetcher {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://api.fxtwitter.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Name identifies the strategy in chain order.
func (f *Fetcher) Name() reader.StrategyName {
	return reader.StrategySocial
}

// Attempt resolves the canonical post path, calls the status API, and formats
// the structured response as Markdown.
func (f *Fetcher) Attempt(ctx context.Context, url string) (string, error) {
	user, id, ok := reader.SocialPostPath(url)
	if !ok {
		return "", fmt.Errorf("%s is not a recognizable post url", url)
	}

	endpoint := fmt.Sprintf("%s/%s/status/%s", strings.TrimRight(f.cfg.Endpoint, "/"), user, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build status request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("status api call: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			f.logger.Debug("close status api body", zap.Error(closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status api returned %d", resp.StatusCode)
	}

	var payload statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode status api response: %w", err)
	}
	if payload.Tweet == nil || len(strings.TrimSpace(payload.Tweet.Text)) < minPostLength {
		return "", fmt.Errorf("status api returned no usable text for %s", url)
	}
	return payload.Tweet.markdown(), nil
}

type statusResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Tweet   *post  `json:"tweet"`
}

type post struct {
	URL       string `json:"url"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
	Author    struct {
		Name       string `json:"name"`
		ScreenName string `json:"screen_name"`
	} `json:"author"`
	Replies  int `json:"replies"`
	Retweets int `json:"retweets"`
	Likes    int `json:"likes"`
	Views    int `json:"views"`
	Media    *struct {
		Photos []mediaItem `json:"photos"`
		Videos []mediaItem `json:"videos"`
	} `json:"media"`
}

type mediaItem struct {
	URL string `json:"url"`
}

// markdown renders the structured post as readable Markdown: author, body,
// media links, engagement counters, timestamp, canonical source link.
func (p *post) markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s (@%s)\n\n", p.Author.Name, p.Author.ScreenName)
	b.WriteString(strings.TrimSpace(p.Text))
	b.WriteString("\n")
	if p.Media != nil {
		for _, photo := range p.Media.Photos {
			fmt.Fprintf(&b, "\n![photo](%s)\n", photo.URL)
		}
		for _, video := range p.Media.Videos {
			fmt.Fprintf(&b, "\n[video](%s)\n", video.URL)
		}
	}
	fmt.Fprintf(&b, "\n---\n%d replies · %d retweets · %d likes · %d views\n", p.Replies, p.Retweets, p.Likes, p.Views)
	if p.CreatedAt != "" {
		fmt.Fprintf(&b, "\nPosted: %s\n", p.CreatedAt)
	}
	if p.URL != "" {
		fmt.Fprintf(&b, "\nSource: %s\n", p.URL)
	}
	return b.String()
}
