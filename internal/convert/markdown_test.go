package convert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToMarkdownStripsChrome(t *testing.T) {
	t.Parallel()

	html := `<html><head><script>console.log("tracking")</script></head><body>
<nav><a href="/">Home</a><a href="/about">About</a></nav>
<p>Actual page text readers care about.</p>
<footer>Copyright corp</footer>
</body></html>`

	md, err := NewMarkdown().ToMarkdown(html)
	require.NoError(t, err)
	require.Contains(t, md, "Actual page text readers care about.")
	require.NotContains(t, md, "console.log")
	require.NotContains(t, md, "About")
	require.NotContains(t, md, "Copyright corp")
}

func TestToMarkdownPrefersArticle(t *testing.T) {
	t.Parallel()

	html := `<html><body>
<div class="sidebar">Trending: ten things you will not believe</div>
<article><h1>Headline</h1><p>The body of the story, long enough to win the
largest-content-region comparison against the sidebar text.</p></article>
</body></html>`

	md, err := NewMarkdown().ToMarkdown(html)
	require.NoError(t, err)
	require.Contains(t, md, "Headline")
	require.Contains(t, md, "body of the story")
	require.NotContains(t, md, "Trending")
}

func TestToMarkdownHeadings(t *testing.T) {
	t.Parallel()

	md, err := NewMarkdown().ToMarkdown(`<body><h2>Section</h2><p>text</p></body>`)
	require.NoError(t, err)
	require.Contains(t, md, "## Section")
	require.Contains(t, md, "text")
}

func TestToMarkdownEmptyInput(t *testing.T) {
	t.Parallel()

	md, err := NewMarkdown().ToMarkdown("")
	require.NoError(t, err)
	require.Equal(t, "", md)
}
