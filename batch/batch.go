// Package batch drives the conversion pipeline across several documents.
// Documents are loaded, converted and closed one at a time, and their
// results are merged or archived afterwards.
package batch

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/llmfeeder"
)

// Orchestrator converts a list of documents sequentially.
type Orchestrator struct {
	Loader    llmfeeder.TabLoader
	Converter llmfeeder.DocumentConverter

	// RateLimiter, if set, paces loads per host.
	RateLimiter llmfeeder.DomainLimiter

	// RetryDelays overrides DefaultRetryDelays.
	RetryDelays []time.Duration

	// Logger, if set, receives retry and close failures.
	Logger *slog.Logger
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string

	// Result is set for ProgressCompleted and ProgressFailed.
	Result *llmfeeder.ConversionResult
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// ProcessMany converts urls in order, one at a time. A failing document is
// recorded in its slot and never aborts the batch. progress may be nil.
func (o *Orchestrator) ProcessMany(ctx context.Context, urls []string, settings llmfeeder.Settings, progress ProgressFunc) *BatchResult {
	total := len(urls)
	if progress == nil {
		progress = func(ProgressEvent) {}
	}
	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	results := make([]*llmfeeder.ConversionResult, 0, total)
	for i, u := range urls {
		result := o.process(ctx, u, settings)
		results = append(results, result)

		typ := ProgressCompleted
		if !result.Success {
			typ = ProgressFailed
		}
		progress(ProgressEvent{
			Type:      typ,
			Completed: i + 1,
			Total:     total,
			URL:       u,
			Result:    result,
		})
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return &BatchResult{Results: results}
}

// process loads, converts and closes a single document.
func (o *Orchestrator) process(ctx context.Context, rawURL string, settings llmfeeder.Settings) *llmfeeder.ConversionResult {
	if err := ctx.Err(); err != nil {
		return llmfeeder.FailedResult(rawURL, llmfeeder.Errorf(llmfeeder.ETIMEOUT, "batch stopped: %v", err))
	}

	delays := o.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	tab, err := LoadWithRetry(ctx, rawURL, o.load, o.Logger, delays)
	if err != nil {
		return llmfeeder.FailedResult(rawURL, err)
	}
	defer func() {
		if err := tab.Close(); err != nil && o.Logger != nil {
			o.Logger.Warn("close tab", "url", rawURL, "err", err)
		}
	}()

	result := o.Converter.Convert(ctx, tab, settings)
	if result == nil {
		return llmfeeder.FailedResult(rawURL, llmfeeder.Errorf(llmfeeder.EINTERNAL, "converter returned no result"))
	}
	return result
}

func (o *Orchestrator) load(ctx context.Context, rawURL string) (*llmfeeder.Tab, error) {
	if o.RateLimiter != nil {
		if err := o.RateLimiter.Wait(ctx, hostname(rawURL)); err != nil {
			return nil, err
		}
	}
	return o.Loader.Load(ctx, rawURL)
}

func hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
