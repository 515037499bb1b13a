package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/llmfeeder"
	"github.com/fwojciec/llmfeeder/mock"
	lfslog "github.com/fwojciec/llmfeeder/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingTabLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("logs load with bytes frames and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.TabLoader{
			LoadFn: func(ctx context.Context, url string) (*llmfeeder.Tab, error) {
				snap := &llmfeeder.Snapshot{
					URL:    url,
					HTML:   "<html>content</html>",
					Frames: []llmfeeder.Frame{{Index: 0}},
				}
				return llmfeeder.NewTab(1, snap, nil, nil), nil
			},
		}

		loader := lfslog.NewLoggingTabLoader(inner, logger)
		tab, err := loader.Load(context.Background(), "https://example.com/docs")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/docs", tab.Snapshot.URL)
		output := buf.String()
		assert.Contains(t, output, "load tab")
		assert.Contains(t, output, "url=https://example.com/docs")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "frames=1")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.TabLoader{
			LoadFn: func(ctx context.Context, url string) (*llmfeeder.Tab, error) {
				return nil, errors.New("network error")
			},
		}

		loader := lfslog.NewLoggingTabLoader(inner, logger)
		_, err := loader.Load(context.Background(), "https://example.com/docs")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "load tab")
		assert.Contains(t, output, "bytes=0")
		assert.Contains(t, output, "err=\"network error\"")
	})
}
