package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/llmfeeder"
	"github.com/fwojciec/llmfeeder/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("extracts title from meta tags", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Getting Started - My Docs</title>
<meta property="og:title" content="Getting Started Guide">
</head>
<body>
<nav>Navigation here</nav>
<main>
<h1>Getting Started</h1>
<p>This is the main content of the documentation page.</p>
</main>
<footer>Footer content</footer>
</body>
</html>`

		p := trafilatura.NewParser()
		article, err := p.Parse(html, "https://docs.example.com/start")

		require.NoError(t, err)
		assert.NotEmpty(t, article.Title)
	})

	t.Run("extracts main content without boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav><ul><li><a href="/">Home</a></li><li><a href="/docs">Docs</a></li></ul></nav>
<article>
<h1>Article Title</h1>
<p>This is the first paragraph with substantial content about the topic at hand.</p>
<p>This is the second paragraph that continues the discussion with more details.</p>
</article>
</body>
</html>`

		p := trafilatura.NewParser()
		article, err := p.Parse(html, "")

		require.NoError(t, err)
		assert.Contains(t, article.ContentHTML, "first paragraph with substantial content")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		p := trafilatura.NewParser()
		_, err := p.Parse("", "")

		require.Error(t, err)
		assert.Equal(t, llmfeeder.EINVALID, llmfeeder.ErrorCode(err))
	})
}
