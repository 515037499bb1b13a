package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/llmfeeder"
)

// Ensure LoggingTabLoader implements llmfeeder.TabLoader.
var _ llmfeeder.TabLoader = (*LoggingTabLoader)(nil)

// LoggingTabLoader wraps a TabLoader with debug logging.
type LoggingTabLoader struct {
	next   llmfeeder.TabLoader
	logger *slog.Logger
}

// NewLoggingTabLoader creates a new LoggingTabLoader.
func NewLoggingTabLoader(next llmfeeder.TabLoader, logger *slog.Logger) *LoggingTabLoader {
	return &LoggingTabLoader{next: next, logger: logger}
}

// Load delegates to the wrapped loader and logs the snapshot size.
func (l *LoggingTabLoader) Load(ctx context.Context, url string) (tab *llmfeeder.Tab, err error) {
	defer func(begin time.Time) {
		var bytes, frames int
		if tab != nil && tab.Snapshot != nil {
			bytes = len(tab.Snapshot.HTML)
			frames = len(tab.Snapshot.Frames)
		}
		l.logger.Info("load tab",
			"url", url,
			"bytes", bytes,
			"frames", frames,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Load(ctx, url)
}
