package mock

import "github.com/fwojciec/llmfeeder"

var _ llmfeeder.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of llmfeeder.Extractor.
type Extractor struct {
	ExtractFn func(snapshot *llmfeeder.Snapshot, scope llmfeeder.ContentScope) (*llmfeeder.Content, *llmfeeder.ArticleMetadata, error)
}

func (e *Extractor) Extract(snapshot *llmfeeder.Snapshot, scope llmfeeder.ContentScope) (*llmfeeder.Content, *llmfeeder.ArticleMetadata, error) {
	return e.ExtractFn(snapshot, scope)
}

var _ llmfeeder.Sanitizer = (*Sanitizer)(nil)

// Sanitizer is a mock implementation of llmfeeder.Sanitizer.
type Sanitizer struct {
	CleanFn func(content *llmfeeder.Content, opts llmfeeder.SanitizeOptions)
}

func (s *Sanitizer) Clean(content *llmfeeder.Content, opts llmfeeder.SanitizeOptions) {
	s.CleanFn(content, opts)
}
