// Package gemini counts tokens with the Gemini tokenizer.
package gemini

import (
	"context"
	"fmt"
	"sync"

	"github.com/fwojciec/llmfeeder"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

// DefaultModel is the model whose vocabulary is used when none is given.
const DefaultModel = "gemini-2.0-flash"

var _ llmfeeder.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens using the Gemini local tokenizer. The
// vocabulary is loaded on first use, so constructing a TokenCounter is
// cheap even when no conversion ends up counting tokens.
type TokenCounter struct {
	model string

	once sync.Once
	tok  *tokenizer.LocalTokenizer
	err  error
}

// NewTokenCounter creates a new TokenCounter for the given model.
// An empty model selects DefaultModel.
func NewTokenCounter(model string) *TokenCounter {
	if model == "" {
		model = DefaultModel
	}
	return &TokenCounter{model: model}
}

// Model returns the tokenizer model name.
func (tc *TokenCounter) Model() string {
	return tc.model
}

// CountTokens counts the number of tokens in the given text.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	tc.once.Do(func() {
		tc.tok, tc.err = tokenizer.NewLocalTokenizer(tc.model)
	})
	if tc.err != nil {
		return 0, fmt.Errorf("load tokenizer %s: %w", tc.model, tc.err)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(text, "user"),
	}

	result, err := tc.tok.CountTokens(contents, nil)
	if err != nil {
		return 0, err
	}

	return int(result.TotalTokens), nil
}
