package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/llmfeeder"
	"github.com/fwojciec/llmfeeder/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenCounter(t *testing.T) {
	t.Parallel()

	assert.Equal(t, gemini.DefaultModel, gemini.NewTokenCounter("").Model())
	assert.Equal(t, "gemini-2.5-flash", gemini.NewTokenCounter("gemini-2.5-flash").Model())
}

func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	tc := gemini.NewTokenCounter(gemini.DefaultModel)

	// Verify it implements the interface
	var _ llmfeeder.TokenCounter = tc

	t.Run("empty string returns zero without loading the vocabulary", func(t *testing.T) {
		t.Parallel()

		count, err := gemini.NewTokenCounter("no-such-model").CountTokens(context.Background(), "")

		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("unknown model fails on first count", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.NewTokenCounter("no-such-model").CountTokens(context.Background(), "Hello")

		assert.Error(t, err)
	})

	t.Run("counts tokens in text", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "Hello, world!")

		require.NoError(t, err)
		assert.Positive(t, count)
	})

	t.Run("longer text returns more tokens", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		shortCount, err := tc.CountTokens(ctx, "Hello")
		require.NoError(t, err)

		longCount, err := tc.CountTokens(ctx, "Hello, this is a much longer piece of text that should have more tokens than just a single word.")
		require.NoError(t, err)

		assert.Greater(t, longCount, shortCount)
	})
}
