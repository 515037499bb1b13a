package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/llmfeeder"
)

// Ensure LoggingConverter implements llmfeeder.DocumentConverter.
var _ llmfeeder.DocumentConverter = (*LoggingConverter)(nil)

// LoggingConverter wraps a DocumentConverter with debug logging.
type LoggingConverter struct {
	next   llmfeeder.DocumentConverter
	logger *slog.Logger
}

// NewLoggingConverter creates a new LoggingConverter.
func NewLoggingConverter(next llmfeeder.DocumentConverter, logger *slog.Logger) *LoggingConverter {
	return &LoggingConverter{next: next, logger: logger}
}

// Convert delegates to the wrapped converter and logs the outcome.
func (c *LoggingConverter) Convert(ctx context.Context, tab *llmfeeder.Tab, settings llmfeeder.Settings) *llmfeeder.ConversionResult {
	begin := time.Now()
	result := c.next.Convert(ctx, tab, settings)

	attrs := []any{
		"scope", string(settings.Scope()),
		"success", result.Success,
		"duration", time.Since(begin),
	}
	if tab != nil && tab.Snapshot != nil {
		attrs = append(attrs, "url", tab.Snapshot.URL)
	}
	if result.Success {
		attrs = append(attrs, "chars", len(result.Markdown), "tokens", result.TokenCount)
		if len(result.Warnings) > 0 {
			attrs = append(attrs, "warnings", len(result.Warnings))
		}
		c.logger.Info("convert", attrs...)
	} else {
		attrs = append(attrs, "code", result.Code, "err", result.Details)
		c.logger.Warn("convert", attrs...)
	}
	return result
}
