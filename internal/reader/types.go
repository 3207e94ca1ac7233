// Package reader implements the fallback-chain retrieval engine: ordered
// content-acquisition strategies, the validity classifier that gates them,
// and objective-based filtering of the final text.
package reader

import (
	"context"
	"fmt"
)

// StrategyName identifies which acquisition strategy produced a result.
type StrategyName string

// Known strategy names, in chain order.
const (
	StrategyDirect   StrategyName = "direct"
	StrategySocial   StrategyName = "social_api"
	StrategyReader   StrategyName = "reader_api"
	StrategyHeadless StrategyName = "headless"
	StrategyCache    StrategyName = "cache"
)

// Class is the derived URL classification; it selects the strategy chain.
type Class string

// URL classes.
const (
	ClassGeneral    Class = "general"
	ClassSocialPost Class = "social_post"
)

// Request captures one retrieval call. Immutable for the duration of the call.
type Request struct {
	URL          string `json:"url"`
	Objective    string `json:"objective,omitempty"`
	ForceRefetch bool   `json:"force_refetch,omitempty"`
}

// Result is the successful outcome of a retrieval.
type Result struct {
	URL      string       `json:"url"`
	Content  string       `json:"content"`
	Strategy StrategyName `json:"strategy"`
	Cached   bool         `json:"cached"`
}

// Strategy is one concrete method of obtaining page content. A returned error
// means "absent, try the next strategy" and is never fatal on its own;
// timeouts, non-2xx statuses, and validator rejections are all folded into it.
type Strategy interface {
	Name() StrategyName
	Attempt(ctx context.Context, url string) (string, error)
}

// Validator classifies retrieved text as usable or junk.
type Validator interface {
	IsValid(text string) bool
}

// Converter turns raw HTML into readable Markdown with page chrome stripped.
type Converter interface {
	ToMarkdown(html string) (string, error)
}

// ContentCache is the time-bounded URL -> Markdown store consulted before any
// strategy runs.
type ContentCache interface {
	Get(url string) (string, bool)
	Put(url, content string)
}

// ExhaustedError is returned when every applicable strategy came back absent.
type ExhaustedError struct {
	URL string
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all retrieval strategies exhausted for %s", e.URL)
}
