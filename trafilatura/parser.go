package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/llmfeeder"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Parser implements llmfeeder.ArticleParser at compile time.
var _ llmfeeder.ArticleParser = (*Parser)(nil)

// Parser wraps go-trafilatura to find the primary article of a document.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse processes a full HTML document and returns its main article.
func (p *Parser) Parse(rawHTML string, pageURL string) (*llmfeeder.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, llmfeeder.Errorf(llmfeeder.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	if pageURL != "" {
		if u, err := url.Parse(pageURL); err == nil {
			opts.OriginalURL = u
		}
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	article := &llmfeeder.Article{
		Title:       result.Metadata.Title,
		Byline:      result.Metadata.Author,
		SiteName:    result.Metadata.Sitename,
		Excerpt:     result.Metadata.Description,
		ContentHTML: contentHTML,
	}
	if !result.Metadata.Date.IsZero() {
		article.PublishedTime = result.Metadata.Date.Format("2006-01-02")
	}
	return article, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
