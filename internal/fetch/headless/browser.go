// Package headless drives the last-resort retrieval strategy: a shared
// long-lived Chrome instance rendering pages that only produce content after
// script execution.
package headless

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// Browser owns the shared chromedp allocator and browser contexts. The
// browser process is launched lazily on first acquire and reused across
// calls; if it has dropped, acquire relaunches it transparently. The mutex
// prevents duplicate launches under concurrent cold starts.
type Browser struct {
	mu            sync.Mutex
	userAgent     string
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	logger        *zap.Logger
}

// NewBrowser prepares the manager without launching anything.
func NewBrowser(userAgent string, logger *zap.Logger) *Browser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Browser{userAgent: userAgent, logger: logger}
}

// acquire returns a live browser context, launching or relaunching Chrome if
// needed. Idempotent while the instance stays connected.
func (b *Browser) acquire() (context.Context, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browserCtx != nil && b.browserCtx.Err() == nil {
		return b.browserCtx, nil
	}
	if b.browserCancel != nil {
		b.logger.Info("headless browser disconnected, relaunching")
		b.browserCancel()
		b.browserCancel = nil
		b.browserCtx = nil
	}

	if b.allocCtx == nil || b.allocCtx.Err() != nil {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", "new"),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("hide-scrollbars", true),
			chromedp.Flag("enable-automation", false),
			chromedp.Flag("disable-blink-features", "AutomationControlled"),
		)
		if b.userAgent != "" {
			opts = append(opts, chromedp.UserAgent(b.userAgent))
		}
		b.allocCtx, b.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	}

	browserCtx, browserCancel := chromedp.NewContext(b.allocCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		return nil, fmt.Errorf("launch headless browser: %w", err)
	}
	b.browserCtx = browserCtx
	b.browserCancel = browserCancel
	return b.browserCtx, nil
}

// Shutdown tears down the browser and allocator. Safe to call more than once.
func (b *Browser) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.browserCancel != nil {
		b.browserCancel()
		b.browserCancel = nil
		b.browserCtx = nil
	}
	if b.allocCancel != nil {
		b.allocCancel()
		b.allocCancel = nil
		b.allocCtx = nil
	}
}
