// Package readerapi delegates rendering and extraction to a third-party
// reader service that returns cleaned Markdown directly.
package readerapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/readpage/internal/reader"
)

// maxResponseBytes bounds how much of the reader response we will buffer.
const maxResponseBytes = 4 << 20

// Config controls the reader client. APIKey is optional; when present it is
// sent as a bearer token for the higher rate limit tier.
type Config struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// Fetcher implements reader.Strategy against a Jina-style reader endpoint:
// GET {endpoint}/{url} returns the page as Markdown.
type Fetcher struct {
	cfg       Config
	client    *http.Client
	validator reader.Validator
	logger    *zap.Logger
}

// New builds a Fetcher.
func New(cfg Config, validator reader.Validator, logger *zap.Logger) *Fetcher {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://r.jina.ai"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		cfg:       cfg,
		client:    &http.Client{Timeout: cfg.Timeout},
		validator: validator,
		logger:    logger,
	}
}

// Name identifies the strategy in chain order.
func (f *Fetcher) Name() reader.StrategyName {
	return reader.StrategyReader
}

// Attempt asks the reader service for the URL and validates the returned text.
func (f *Fetcher) Attempt(ctx context.Context, url string) (string, error) {
	endpoint := strings.TrimRight(f.cfg.Endpoint, "/") + "/" + url
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build reader request: %w", err)
	}
	req.Header.Set("Accept", "text/plain")
	req.Header.Set("X-Return-Format", "markdown")
	if f.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.cfg.APIKey)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("reader api call: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			f.logger.Debug("close reader api body", zap.Error(closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reader api returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read reader api body: %w", err)
	}
	markdown := strings.TrimSpace(string(body))
	if !f.validator.IsValid(markdown) {
		return "", fmt.Errorf("reader api returned unusable content for %s", url)
	}
	return markdown, nil
}
