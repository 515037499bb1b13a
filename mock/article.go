package mock

import "github.com/fwojciec/llmfeeder"

var _ llmfeeder.ArticleParser = (*ArticleParser)(nil)

// ArticleParser is a mock implementation of llmfeeder.ArticleParser.
type ArticleParser struct {
	ParseFn func(rawHTML string, pageURL string) (*llmfeeder.Article, error)
}

func (p *ArticleParser) Parse(rawHTML string, pageURL string) (*llmfeeder.Article, error) {
	return p.ParseFn(rawHTML, pageURL)
}
