package goquery_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/llmfeeder"
	"github.com/fwojciec/llmfeeder/goquery"
	"github.com/fwojciec/llmfeeder/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<!DOCTYPE html>
<html>
<head>
<title>Doc Title</title>
<meta name="author" content=" Ann Writer ">
<meta property="og:site_name" content="Example Blog">
<meta property="article:published_time" content="2024-03-05T10:00:00Z">
<script>var x = 1;</script>
</head>
<body>
<nav><a href="/">Home</a></nav>
<main><h1>Hello</h1><p>Main body text.</p><script>alert(1)</script><style>p{}</style></main>
<footer>Footer</footer>
</body>
</html>`

func snapshot(html string) *llmfeeder.Snapshot {
	return &llmfeeder.Snapshot{
		URL:   "https://www.example.com/posts/1",
		Title: "Doc Title",
		HTML:  html,
	}
}

func failingParser() *mock.ArticleParser {
	return &mock.ArticleParser{
		ParseFn: func(string, string) (*llmfeeder.Article, error) {
			return nil, errors.New("parse failed")
		},
	}
}

func TestExtractor_FullPage(t *testing.T) {
	t.Parallel()

	ext := goquery.NewExtractor(failingParser())

	content, meta, err := ext.Extract(snapshot(articlePage), llmfeeder.ScopeFullPage)

	require.NoError(t, err)
	assert.Nil(t, meta)
	assert.Equal(t, llmfeeder.ScopeFullPage, content.Scope)
	assert.Equal(t, "https://www.example.com/posts/1", content.BaseURL)

	html := content.HTML()
	assert.Contains(t, html, "Main body text.")
	assert.Contains(t, html, "<nav>")
	assert.NotContains(t, html, "<script")
	assert.NotContains(t, html, "<style")
}

func TestExtractor_Selection(t *testing.T) {
	t.Parallel()

	t.Run("uses selection html", func(t *testing.T) {
		t.Parallel()

		snap := snapshot(articlePage)
		snap.Selection = "<p>Only <b>this</b> part</p>"
		ext := goquery.NewExtractor(failingParser())

		content, meta, err := ext.Extract(snap, llmfeeder.ScopeSelection)

		require.NoError(t, err)
		assert.Nil(t, meta)
		assert.Equal(t, "<p>Only <b>this</b> part</p>", content.HTML())
	})

	t.Run("fails when selection is empty", func(t *testing.T) {
		t.Parallel()

		ext := goquery.NewExtractor(failingParser())

		_, _, err := ext.Extract(snapshot(articlePage), llmfeeder.ScopeSelection)

		require.Error(t, err)
		assert.Equal(t, llmfeeder.ENOSELECTION, llmfeeder.ErrorCode(err))
	})

	t.Run("fails when selection has only whitespace text", func(t *testing.T) {
		t.Parallel()

		snap := snapshot(articlePage)
		snap.Selection = "<p>  \n </p>"
		ext := goquery.NewExtractor(failingParser())

		_, _, err := ext.Extract(snap, llmfeeder.ScopeSelection)

		require.Error(t, err)
		assert.Equal(t, llmfeeder.ENOSELECTION, llmfeeder.ErrorCode(err))
	})
}

func TestExtractor_MainContent(t *testing.T) {
	t.Parallel()

	t.Run("uses parsed article and completes metadata", func(t *testing.T) {
		t.Parallel()

		var gotURL string
		parser := &mock.ArticleParser{
			ParseFn: func(_ string, pageURL string) (*llmfeeder.Article, error) {
				gotURL = pageURL
				return &llmfeeder.Article{
					Excerpt:     "Summary",
					ContentHTML: "<div><p>Article body</p></div>",
				}, nil
			},
		}
		ext := goquery.NewExtractor(parser)

		content, meta, err := ext.Extract(snapshot(articlePage), llmfeeder.ScopeMainContent)

		require.NoError(t, err)
		assert.Equal(t, "https://www.example.com/posts/1", gotURL)
		assert.Equal(t, "<div><p>Article body</p></div>", content.HTML())
		require.NotNil(t, meta)
		assert.Equal(t, &llmfeeder.ArticleMetadata{
			Title:         "Doc Title",
			Author:        "Ann Writer",
			SiteName:      "Example Blog",
			PublishedTime: "2024-03-05",
			Excerpt:       "Summary",
		}, meta)
	})

	t.Run("prefers article fields over meta tags", func(t *testing.T) {
		t.Parallel()

		parser := &mock.ArticleParser{
			ParseFn: func(string, string) (*llmfeeder.Article, error) {
				return &llmfeeder.Article{
					Title:         "Article Title",
					Byline:        "Byline Author",
					SiteName:      "Parsed Site",
					PublishedTime: "2020-01-01",
					ContentHTML:   "<p>Body</p>",
				}, nil
			},
		}
		ext := goquery.NewExtractor(parser)

		_, meta, err := ext.Extract(snapshot(articlePage), llmfeeder.ScopeMainContent)

		require.NoError(t, err)
		assert.Equal(t, "Article Title", meta.Title)
		assert.Equal(t, "Byline Author", meta.Author)
		assert.Equal(t, "Parsed Site", meta.SiteName)
		assert.Equal(t, "2020-01-01", meta.PublishedTime)
	})

	t.Run("falls back to hostname for site name", func(t *testing.T) {
		t.Parallel()

		parser := &mock.ArticleParser{
			ParseFn: func(string, string) (*llmfeeder.Article, error) {
				return &llmfeeder.Article{ContentHTML: "<p>Body</p>"}, nil
			},
		}
		ext := goquery.NewExtractor(parser)

		_, meta, err := ext.Extract(snapshot(`<html><head></head><body><p>x</p></body></html>`), llmfeeder.ScopeMainContent)

		require.NoError(t, err)
		assert.Equal(t, "www.example.com", meta.SiteName)
		assert.Empty(t, meta.Author)
		assert.Empty(t, meta.PublishedTime)
	})

	t.Run("falls back to main element when parse fails", func(t *testing.T) {
		t.Parallel()

		ext := goquery.NewExtractor(failingParser())

		content, meta, err := ext.Extract(snapshot(articlePage), llmfeeder.ScopeMainContent)

		require.NoError(t, err)
		assert.Nil(t, meta)
		html := content.HTML()
		assert.Contains(t, html, "<main>")
		assert.Contains(t, html, "Main body text.")
		assert.NotContains(t, html, "Footer")
	})

	t.Run("falls back when parsed content is empty", func(t *testing.T) {
		t.Parallel()

		parser := &mock.ArticleParser{
			ParseFn: func(string, string) (*llmfeeder.Article, error) {
				return &llmfeeder.Article{Title: "T", ContentHTML: "  "}, nil
			},
		}
		ext := goquery.NewExtractor(parser)

		content, meta, err := ext.Extract(snapshot(`<html><body><div id="content">Inner</div><p>Other</p></body></html>`), llmfeeder.ScopeMainContent)

		require.NoError(t, err)
		assert.Nil(t, meta)
		assert.Equal(t, `<div id="content">Inner</div>`, content.HTML())
	})

	t.Run("falls back to body without a parser", func(t *testing.T) {
		t.Parallel()

		ext := goquery.NewExtractor(nil)

		content, _, err := ext.Extract(snapshot(`<html><body><p>Plain</p></body></html>`), llmfeeder.ScopeMainContent)

		require.NoError(t, err)
		assert.Equal(t, "<body><p>Plain</p></body>", content.HTML())
	})
}

func TestSelectHTML(t *testing.T) {
	t.Parallel()

	got, err := goquery.SelectHTML(`<html><body><p class="x">One</p><p>Skip</p><p class="x">Two</p></body></html>`, "p.x")

	require.NoError(t, err)
	assert.Equal(t, `<p class="x">One</p><p class="x">Two</p>`, got)
}
