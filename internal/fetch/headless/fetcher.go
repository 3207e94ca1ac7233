package headless

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/JakeFAU/readpage/internal/reader"
)

// stealthScript hides the usual automation markers from page-side scripts
// before any of them run.
const stealthScript = `
Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
Object.defineProperty(navigator, 'plugins', { get: () => [1, 2, 3] });
Object.defineProperty(navigator, 'languages', { get: () => ['en-US', 'en'] });
window.chrome = window.chrome || { runtime: {} };
`

// Config controls the rendered-browser strategy.
type Config struct {
	NavTimeout       time.Duration
	SettleTime       time.Duration
	UserAgent        string
	BlockedDomains   []string
	BlockedMediaExts []string
	DomainQPS        float64
}

// Fetcher implements reader.Strategy by rendering the page in the shared
// browser. Its output is accepted unconditionally: there is no cheaper option
// left to fall back to.
type Fetcher struct {
	cfg            Config
	browser        *Browser
	blocked        *blocklist
	converter      reader.Converter
	domainLimiters sync.Map
	logger         *zap.Logger
}

// New builds a Fetcher sharing the given browser manager.
func New(cfg Config, browser *Browser, converter reader.Converter, logger *zap.Logger) *Fetcher {
	if cfg.NavTimeout <= 0 {
		cfg.NavTimeout = 45 * time.Second
	}
	if cfg.SettleTime <= 0 {
		cfg.SettleTime = 3 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		cfg:       cfg,
		browser:   browser,
		blocked:   newBlocklist(cfg.BlockedDomains, cfg.BlockedMediaExts),
		converter: converter,
		logger:    logger,
	}
}

// Name identifies the strategy in chain order.
func (f *Fetcher) Name() reader.StrategyName {
	return reader.StrategyHeadless
}

// Attempt renders the URL, waits for dynamic content to settle, and converts
// the final DOM to Markdown.
func (f *Fetcher) Attempt(ctx context.Context, rawURL string) (string, error) {
	if err := f.waitDomainBudget(ctx, rawURL); err != nil {
		return "", fmt.Errorf("render rate limit: %w", err)
	}

	browserCtx, err := f.browser.acquire()
	if err != nil {
		return "", err
	}

	html, err := f.render(browserCtx, rawURL)
	if err != nil {
		return "", err
	}

	markdown, err := f.converter.ToMarkdown(html)
	if err != nil {
		return "", fmt.Errorf("headless convert: %w", err)
	}
	if strings.TrimSpace(markdown) == "" {
		return "", fmt.Errorf("headless render of %s produced no text", rawURL)
	}
	return markdown, nil
}

func (f *Fetcher) render(browserCtx context.Context, rawURL string) (string, error) {
	tabCtx, cancelTab := chromedp.NewContext(browserCtx)
	defer cancelTab()

	taskCtx, cancelTask := context.WithTimeout(tabCtx, f.cfg.NavTimeout)
	defer cancelTask()

	if err := chromedp.Run(taskCtx, f.setupActions()...); err != nil {
		return "", fmt.Errorf("tab setup: %w", err)
	}

	// Primary wait: document body ready. Some pages never fire it under
	// blocked trackers, so fall back to a fixed wait on a fresh navigation.
	if err := chromedp.Run(taskCtx,
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		f.logger.Debug("primary wait failed, using fallback", zap.String("url", rawURL), zap.Error(err))
		if taskCtx.Err() != nil {
			return "", fmt.Errorf("navigation timed out: %w", taskCtx.Err())
		}
		if err := chromedp.Run(taskCtx,
			chromedp.Navigate(rawURL),
			chromedp.Sleep(2*time.Second),
		); err != nil {
			return "", fmt.Errorf("fallback navigation: %w", err)
		}
	}

	var html string
	if err := chromedp.Run(taskCtx,
		chromedp.Sleep(f.cfg.SettleTime),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	); err != nil {
		return "", fmt.Errorf("extract html: %w", err)
	}
	return html, nil
}

func (f *Fetcher) setupActions() []chromedp.Action {
	return []chromedp.Action{
		network.Enable(),
		chromedp.ActionFunc(func(ctx context.Context) error {
			if patterns := f.blocked.patterns(); len(patterns) > 0 {
				if err := network.SetBlockedURLs(patterns).Do(ctx); err != nil {
					return fmt.Errorf("set blocked urls: %w", err)
				}
			}
			if _, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx); err != nil {
				return fmt.Errorf("install stealth script: %w", err)
			}
			return nil
		}),
	}
}

func (f *Fetcher) waitDomainBudget(ctx context.Context, rawURL string) error {
	if f.cfg.DomainQPS <= 0 {
		return nil
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse render url: %w", err)
	}
	host := strings.ToLower(parsed.Hostname())
	val, _ := f.domainLimiters.LoadOrStore(host, rate.NewLimiter(rate.Limit(f.cfg.DomainQPS), 1))
	limiter, ok := val.(*rate.Limiter)
	if !ok {
		return fmt.Errorf("unexpected limiter type %T", val)
	}
	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait limiter: %w", err)
	}
	return nil
}
