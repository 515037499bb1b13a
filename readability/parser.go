package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/llmfeeder"
	"github.com/go-shiori/go-readability"
)

// Ensure Parser implements llmfeeder.ArticleParser at compile time.
var _ llmfeeder.ArticleParser = (*Parser)(nil)

// Parser wraps go-readability to find the primary article of a document.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse processes a full HTML document and returns its main article.
// pageURL resolves relative references; it may be empty.
func (p *Parser) Parse(rawHTML string, pageURL string) (*llmfeeder.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, llmfeeder.Errorf(llmfeeder.EINVALID, "empty HTML input")
	}

	var u *url.URL
	if pageURL != "" {
		parsed, err := url.Parse(pageURL)
		if err != nil {
			return nil, llmfeeder.Errorf(llmfeeder.EINVALID, "invalid page URL %q", pageURL)
		}
		u = parsed
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), u)
	if err != nil {
		return nil, err
	}

	result := &llmfeeder.Article{
		Title:       strings.TrimSpace(article.Title),
		Byline:      strings.TrimSpace(article.Byline),
		SiteName:    strings.TrimSpace(article.SiteName),
		Excerpt:     strings.TrimSpace(article.Excerpt),
		ContentHTML: article.Content,
	}
	if article.PublishedTime != nil {
		result.PublishedTime = article.PublishedTime.UTC().Format("2006-01-02")
	}
	return result, nil
}
