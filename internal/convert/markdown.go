// Package convert turns raw HTML into readable Markdown. It strips page
// chrome with goquery before handing the surviving fragment to the
// html-to-markdown converter.
package convert

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// chromeSelectors match elements that never carry readable content.
var chromeSelectors = []string{
	"script",
	"style",
	"noscript",
	"iframe",
	"svg",
	"nav",
	"header",
	"footer",
	"aside",
	"form",
	"[role=navigation]",
	"[role=banner]",
	"[aria-hidden=true]",
}

// mainSelectors are tried in order when looking for the primary content
// region; the largest text-bearing match wins.
var mainSelectors = []string{
	"main",
	"article",
	"[role=main]",
	"#content",
	"#main",
	".post-content",
	".article-body",
}

// Markdown implements reader.Converter.
type Markdown struct{}

// NewMarkdown creates the converter.
func NewMarkdown() *Markdown {
	return &Markdown{}
}

// ToMarkdown prunes non-content elements, prefers the semantic main/article
// region when one exists, and renders the remainder as Markdown.
func (Markdown) ToMarkdown(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	for _, sel := range chromeSelectors {
		doc.Find(sel).Remove()
	}

	fragment, err := contentFragment(doc)
	if err != nil {
		return "", err
	}

	md, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return strings.TrimSpace(md), nil
}

// contentFragment returns the HTML of the best content region, falling back
// to the whole body.
func contentFragment(doc *goquery.Document) (string, error) {
	var best *goquery.Selection
	bestLen := 0
	for _, sel := range mainSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if n := len(strings.TrimSpace(s.Text())); n > bestLen {
				best = s
				bestLen = n
			}
		})
	}
	if best == nil {
		best = doc.Find("body")
	}
	if best.Length() == 0 {
		// Fragments without a body tag still convert fine as-is.
		html, err := doc.Html()
		if err != nil {
			return "", fmt.Errorf("serialize html: %w", err)
		}
		return html, nil
	}
	html, err := goquery.OuterHtml(best.First())
	if err != nil {
		return "", fmt.Errorf("serialize fragment: %w", err)
	}
	return html, nil
}
