package llmfeeder_test

import (
	"context"
	"testing"

	"github.com/fwojciec/llmfeeder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeuristicCounter_CountTokens(t *testing.T) {
	t.Parallel()

	t.Run("empty text has no tokens", func(t *testing.T) {
		t.Parallel()

		n, err := llmfeeder.HeuristicCounter{}.CountTokens(context.Background(), "")

		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("counts short words as one token each plus overhead", func(t *testing.T) {
		t.Parallel()

		n, err := llmfeeder.HeuristicCounter{}.CountTokens(context.Background(), "Hi you!")

		require.NoError(t, err)
		// "Hi" (1) + " you" (1) + "!" (1) + overhead (1)
		assert.Equal(t, 4, n)
	})

	t.Run("long words cost more tokens", func(t *testing.T) {
		t.Parallel()

		short, err := llmfeeder.HeuristicCounter{}.CountTokens(context.Background(), "cat")
		require.NoError(t, err)
		long, err := llmfeeder.HeuristicCounter{}.CountTokens(context.Background(), "internationalization")
		require.NoError(t, err)

		assert.Greater(t, long, short)
	})
}
