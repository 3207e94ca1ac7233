// Package direct implements the cheapest retrieval strategy: a plain HTTP GET
// with browser-like headers, executed through a Colly collector.
package direct

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/JakeFAU/readpage/internal/reader"
)

// Config controls collector behavior.
type Config struct {
	UserAgent string
	Timeout   time.Duration
}

// Fetcher implements reader.Strategy with a single-shot Colly visit. The
// collector follows redirects and enforces the configured request timeout;
// the shared converter and validator decide whether the body is usable.
type Fetcher struct {
	cfg       Config
	base      *colly.Collector
	converter reader.Converter
	validator reader.Validator
	logger    *zap.Logger
}

// New builds a Fetcher.
func New(cfg Config, converter reader.Converter, validator reader.Validator, logger *zap.Logger) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	base := colly.NewCollector(colly.Async(false))
	base.IgnoreRobotsTxt = true
	// Force refetches hit the same URL again; never dedup visits.
	base.AllowURLRevisit = true
	base.WithTransport(newHTTPTransport())
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		cfg:       cfg,
		base:      base,
		converter: converter,
		validator: validator,
		logger:    logger,
	}
}

// Name identifies the strategy in chain order.
func (f *Fetcher) Name() reader.StrategyName {
	return reader.StrategyDirect
}

// Attempt fetches the URL, converts the HTML body to Markdown, and validates
// it. Every failure mode is returned as an error so the orchestrator can fall
// through to the next strategy.
func (f *Fetcher) Attempt(ctx context.Context, url string) (string, error) {
	var (
		body     []byte
		fetchErr error
	)
	collector := f.base.Clone()
	collector.IgnoreRobotsTxt = true
	if f.cfg.UserAgent != "" {
		collector.UserAgent = f.cfg.UserAgent
	}
	collector.SetRequestTimeout(f.cfg.Timeout)

	collector.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
	})
	collector.OnResponse(func(r *colly.Response) {
		body = append([]byte(nil), r.Body...)
	})
	collector.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	if err := f.runCollector(ctx, collector, url, &fetchErr); err != nil {
		return "", err
	}

	markdown, err := f.converter.ToMarkdown(string(body))
	if err != nil {
		return "", fmt.Errorf("direct convert: %w", err)
	}
	if !f.validator.IsValid(markdown) {
		return "", fmt.Errorf("direct fetch of %s produced unusable content", url)
	}
	return markdown, nil
}

func (f *Fetcher) runCollector(ctx context.Context, collector *colly.Collector, url string, fetchErr *error) error {
	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(url)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("direct fetch canceled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("direct visit failed: %w", err)
		}
		if *fetchErr != nil {
			return fmt.Errorf("direct response failed: %w", *fetchErr)
		}
		return nil
	}
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
	}
}
