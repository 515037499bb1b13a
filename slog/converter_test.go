package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/llmfeeder"
	"github.com/fwojciec/llmfeeder/mock"
	lfslog "github.com/fwojciec/llmfeeder/slog"
	"github.com/stretchr/testify/assert"
)

func TestLoggingConverter_Convert(t *testing.T) {
	t.Parallel()

	tab := llmfeeder.NewTab(1, &llmfeeder.Snapshot{URL: "https://example.com/a"}, nil, nil)

	t.Run("logs successful conversion", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.DocumentConverter{
			ConvertFn: func(ctx context.Context, tab *llmfeeder.Tab, settings llmfeeder.Settings) *llmfeeder.ConversionResult {
				return &llmfeeder.ConversionResult{Success: true, Markdown: "# Hello", TokenCount: 3}
			},
		}

		conv := lfslog.NewLoggingConverter(inner, logger)
		result := conv.Convert(context.Background(), tab, llmfeeder.DefaultSettings())

		assert.True(t, result.Success)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "msg=convert")
		assert.Contains(t, output, "scope=mainContent")
		assert.Contains(t, output, "url=https://example.com/a")
		assert.Contains(t, output, "chars=7")
		assert.Contains(t, output, "tokens=3")
	})

	t.Run("logs failure code as a warning", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.DocumentConverter{
			ConvertFn: func(ctx context.Context, tab *llmfeeder.Tab, settings llmfeeder.Settings) *llmfeeder.ConversionResult {
				return llmfeeder.FailedResult("https://example.com/a", llmfeeder.Errorf(llmfeeder.ENOCONTENT, "empty"))
			},
		}

		conv := lfslog.NewLoggingConverter(inner, logger)
		result := conv.Convert(context.Background(), tab, llmfeeder.DefaultSettings())

		assert.False(t, result.Success)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "code=no_content")
	})
}
