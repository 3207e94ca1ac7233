package reader

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeStrategy struct {
	name    StrategyName
	content string
	err     error
	calls   int
}

func (f *fakeStrategy) Name() StrategyName { return f.name }

func (f *fakeStrategy) Attempt(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}

type fakeCache struct {
	entries map[string]string
	puts    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (c *fakeCache) Get(url string) (string, bool) {
	content, ok := c.entries[url]
	return content, ok
}

func (c *fakeCache) Put(url, content string) {
	c.puts++
	c.entries[url] = content
}

var errAbsent = errors.New("nothing usable")

func TestReadPageFallsThroughToReaderAPI(t *testing.T) {
	t.Parallel()

	direct := &fakeStrategy{name: StrategyDirect, err: errAbsent}
	social := &fakeStrategy{name: StrategySocial, content: "should not be used"}
	readerAPI := &fakeStrategy{name: StrategyReader, content: strings.Repeat("x", 300)}
	headless := &fakeStrategy{name: StrategyHeadless, content: "rendered"}
	svc := NewService(direct, social, readerAPI, headless, newFakeCache(), nil)

	result, err := svc.ReadPage(context.Background(), Request{URL: "https://example.com/a"})
	require.NoError(t, err)
	require.Equal(t, StrategyReader, result.Strategy)
	require.Equal(t, strings.Repeat("x", 300), result.Content)
	require.Equal(t, 1, direct.calls)
	require.Equal(t, 0, social.calls, "social strategy is inapplicable to general URLs")
	require.Equal(t, 1, readerAPI.calls)
	require.Equal(t, 0, headless.calls, "headless must never run once a cheaper strategy succeeds")
}

func TestReadPageSocialChainOrder(t *testing.T) {
	t.Parallel()

	direct := &fakeStrategy{name: StrategyDirect, err: errAbsent}
	social := &fakeStrategy{name: StrategySocial, content: "post body"}
	readerAPI := &fakeStrategy{name: StrategyReader, content: "reader"}
	svc := NewService(direct, social, readerAPI, nil, nil, nil)

	result, err := svc.ReadPage(context.Background(), Request{URL: "https://x.com/gopher/status/42"})
	require.NoError(t, err)
	require.Equal(t, StrategySocial, result.Strategy)
	require.Equal(t, 1, direct.calls, "direct is still tried first for posts")
	require.Equal(t, 0, readerAPI.calls)
}

func TestReadPageCacheHitSkipsStrategies(t *testing.T) {
	t.Parallel()

	direct := &fakeStrategy{name: StrategyDirect, content: "fresh"}
	store := newFakeCache()
	store.entries["https://example.com/cached"] = "cached content"
	svc := NewService(direct, nil, nil, nil, store, nil)

	result, err := svc.ReadPage(context.Background(), Request{URL: "https://example.com/cached"})
	require.NoError(t, err)
	require.True(t, result.Cached)
	require.Equal(t, StrategyCache, result.Strategy)
	require.Equal(t, "cached content", result.Content)
	require.Equal(t, 0, direct.calls, "a cache hit must not invoke any strategy")
}

func TestReadPageForceRefetchBypassesAndOverwrites(t *testing.T) {
	t.Parallel()

	direct := &fakeStrategy{name: StrategyDirect, content: "fresh content"}
	store := newFakeCache()
	store.entries["https://example.com/stale"] = "old content"
	svc := NewService(direct, nil, nil, nil, store, nil)

	result, err := svc.ReadPage(context.Background(), Request{URL: "https://example.com/stale", ForceRefetch: true})
	require.NoError(t, err)
	require.False(t, result.Cached)
	require.Equal(t, 1, direct.calls)
	require.Equal(t, "fresh content", store.entries["https://example.com/stale"])
	require.Equal(t, 1, store.puts)
}

func TestReadPageExhaustionNamesURL(t *testing.T) {
	t.Parallel()

	direct := &fakeStrategy{name: StrategyDirect, err: errAbsent}
	readerAPI := &fakeStrategy{name: StrategyReader, err: errAbsent}
	headless := &fakeStrategy{name: StrategyHeadless, err: errAbsent}
	svc := NewService(direct, nil, readerAPI, headless, nil, nil)

	_, err := svc.ReadPage(context.Background(), Request{URL: "https://example.com/gone"})
	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	require.Contains(t, err.Error(), "https://example.com/gone")
	require.Equal(t, 1, direct.calls)
	require.Equal(t, 1, readerAPI.calls)
	require.Equal(t, 1, headless.calls)
}

func TestReadPageAppliesObjectiveFilter(t *testing.T) {
	t.Parallel()

	direct := &fakeStrategy{name: StrategyDirect, content: "Price: $10\nShipping: free\nContact us"}
	svc := NewService(direct, nil, nil, nil, nil, nil)

	result, err := svc.ReadPage(context.Background(), Request{
		URL:       "https://example.com/p",
		Objective: "price shipping",
	})
	require.NoError(t, err)
	require.Equal(t, "Price: $10\nShipping: free", result.Content)
}

func TestReadPageObjectiveAppliedToCacheHits(t *testing.T) {
	t.Parallel()

	store := newFakeCache()
	store.entries["https://example.com/c"] = "alpha line\nbeta line"
	svc := NewService(nil, nil, nil, nil, store, nil)

	result, err := svc.ReadPage(context.Background(), Request{URL: "https://example.com/c", Objective: "beta"})
	require.NoError(t, err)
	require.Equal(t, "beta line", result.Content)
}

func TestReadPageCachesUnfilteredContent(t *testing.T) {
	t.Parallel()

	direct := &fakeStrategy{name: StrategyDirect, content: "keep me\ndrop me"}
	store := newFakeCache()
	svc := NewService(direct, nil, nil, nil, store, nil)

	_, err := svc.ReadPage(context.Background(), Request{URL: "https://example.com/f", Objective: "keep"})
	require.NoError(t, err)
	require.Equal(t, "keep me\ndrop me", store.entries["https://example.com/f"],
		"the cache stores the full content so later objectives can re-filter")
}

func TestReadPageMissingURL(t *testing.T) {
	t.Parallel()

	svc := NewService(nil, nil, nil, nil, nil, nil)
	_, err := svc.ReadPage(context.Background(), Request{})
	require.ErrorIs(t, err, ErrMissingURL)
}
