package mock

import (
	"context"

	"github.com/fwojciec/llmfeeder"
)

var _ llmfeeder.Converter = (*Converter)(nil)

// Converter is a mock implementation of llmfeeder.Converter.
type Converter struct {
	ConvertFn func(content *llmfeeder.Content, settings llmfeeder.Settings) (string, error)
}

func (c *Converter) Convert(content *llmfeeder.Content, settings llmfeeder.Settings) (string, error) {
	return c.ConvertFn(content, settings)
}

var _ llmfeeder.DocumentConverter = (*DocumentConverter)(nil)

// DocumentConverter is a mock implementation of llmfeeder.DocumentConverter.
type DocumentConverter struct {
	ConvertFn func(ctx context.Context, tab *llmfeeder.Tab, settings llmfeeder.Settings) *llmfeeder.ConversionResult
}

func (c *DocumentConverter) Convert(ctx context.Context, tab *llmfeeder.Tab, settings llmfeeder.Settings) *llmfeeder.ConversionResult {
	return c.ConvertFn(ctx, tab, settings)
}

var _ llmfeeder.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of llmfeeder.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
