package llmfeeder

import (
	"context"
	"regexp"
)

// TokenCounter estimates the number of LLM tokens in text.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}

var _ TokenCounter = HeuristicCounter{}

// pretokenRe splits text roughly the way BPE tokenizers pre-tokenize it.
var pretokenRe = regexp.MustCompile(`'s|'t|'re|'ve|'m|'ll|'d| ?\p{L}+| ?\p{N}+| ?[^\s\p{L}\p{N}]+|\s+`)

// HeuristicCounter approximates a BPE tokenizer without a vocabulary: every
// pre-token costs one token per four bytes (at least one), plus one token of
// overhead for the message.
type HeuristicCounter struct{}

// CountTokens returns the approximate token count of text.
func (HeuristicCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	count := 0
	for _, piece := range pretokenRe.FindAllString(text, -1) {
		n := (len(piece) + 3) / 4
		if n < 1 {
			n = 1
		}
		count += n
	}
	return count + 1, nil
}
