package headless

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JakeFAU/readpage/internal/convert"
	"github.com/JakeFAU/readpage/internal/reader"
)

func TestNewAppliesDefaults(t *testing.T) {
	t.Parallel()

	f := New(Config{}, NewBrowser("", nil), convert.NewMarkdown(), nil)
	if f.cfg.NavTimeout != 45*time.Second {
		t.Fatalf("expected default nav timeout, got %v", f.cfg.NavTimeout)
	}
	if f.cfg.SettleTime != 3*time.Second {
		t.Fatalf("expected default settle time, got %v", f.cfg.SettleTime)
	}
	if f.Name() != reader.StrategyHeadless {
		t.Fatalf("unexpected strategy name %q", f.Name())
	}
}

func TestWaitDomainBudget(t *testing.T) {
	t.Parallel()

	f := New(Config{DomainQPS: 0}, nil, nil, nil)
	if err := f.waitDomainBudget(context.Background(), "://bad"); err != nil {
		t.Fatalf("qps 0 must not inspect the url: %v", err)
	}

	limited := New(Config{DomainQPS: 100}, nil, nil, nil)
	if err := limited.waitDomainBudget(context.Background(), "://bad"); err == nil {
		t.Fatal("expected parse error")
	}
	if err := limited.waitDomainBudget(context.Background(), "https://example.com"); err != nil {
		t.Fatalf("first token should be free: %v", err)
	}
}

func TestAttemptRendersDynamicContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<!doctype html><html><body><script>
document.body.innerHTML = '<article><p>content injected after load</p></article>';
</script></body></html>`)
	}))
	defer srv.Close()

	browser := NewBrowser("", nil)
	defer browser.Shutdown()
	f := New(Config{NavTimeout: 15 * time.Second, SettleTime: time.Second}, browser, convert.NewMarkdown(), nil)

	content, err := f.Attempt(context.Background(), srv.URL)
	if err != nil {
		t.Skipf("chromedp unavailable: %v", err)
	}
	if !strings.Contains(content, "content injected after load") {
		t.Fatalf("rendered markdown missing dynamic content: %q", content)
	}
}
