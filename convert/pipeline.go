// Package convert runs the single-document conversion pipeline: extraction,
// iframe stitching, sanitizing, Markdown conversion and post-processing.
package convert

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/llmfeeder"
)

// DefaultTimeout bounds a whole conversion run.
const DefaultTimeout = 15 * time.Second

// largeContentSize is the serialized size above which a run is flagged in
// the debug transcript.
const largeContentSize = 1000000

var _ llmfeeder.DocumentConverter = (*Pipeline)(nil)

// Pipeline converts documents. Runs for different tabs may overlap, but a
// second call for a tab whose run is still in flight fails with EBUSY. A
// tab is released as soon as its run completes or times out; the result of
// a timed-out run is discarded.
type Pipeline struct {
	Extractor llmfeeder.Extractor
	Stitcher  llmfeeder.Stitcher
	Sanitizer llmfeeder.Sanitizer
	Converter llmfeeder.Converter

	// Tokens estimates the token count of the output. Optional.
	Tokens llmfeeder.TokenCounter

	// Debug records the transcript of debug-mode runs. Optional.
	Debug llmfeeder.DebugLog

	// Timeout bounds each run. Zero means DefaultTimeout.
	Timeout time.Duration

	mu       sync.Mutex
	inFlight map[int]struct{}
}

// Convert runs the pipeline for tab. It always returns a result.
func (p *Pipeline) Convert(ctx context.Context, tab *llmfeeder.Tab, settings llmfeeder.Settings) *llmfeeder.ConversionResult {
	if tab == nil || tab.Snapshot == nil {
		return llmfeeder.FailedResult("", llmfeeder.Errorf(llmfeeder.ENOCONTENT, "no document"))
	}
	pageURL := tab.Snapshot.URL

	if !p.acquire(tab.ID) {
		return llmfeeder.FailedResult(pageURL, llmfeeder.Errorf(llmfeeder.EBUSY, "a conversion is already in progress"))
	}
	defer p.release(tab.ID)

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	p.debug().Start(settings.DebugMode)

	done := make(chan *llmfeeder.ConversionResult, 1)
	go func() {
		done <- p.safeRun(ctx, tab, settings)
	}()

	select {
	case result := <-done:
		return result
	case <-ctx.Done():
		p.debug().Log("Conversion timed out", "timeout", timeout.String())
		return llmfeeder.FailedResult(pageURL, llmfeeder.Errorf(llmfeeder.ETIMEOUT, "conversion timed out after %s", timeout))
	}
}

func (p *Pipeline) acquire(id int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.inFlight[id]; ok {
		return false
	}
	if p.inFlight == nil {
		p.inFlight = make(map[int]struct{})
	}
	p.inFlight[id] = struct{}{}
	return true
}

func (p *Pipeline) release(id int) {
	p.mu.Lock()
	delete(p.inFlight, id)
	p.mu.Unlock()
}

// safeRun converts panics into failed results.
func (p *Pipeline) safeRun(ctx context.Context, tab *llmfeeder.Tab, settings llmfeeder.Settings) (result *llmfeeder.ConversionResult) {
	defer func() {
		if r := recover(); r != nil {
			p.debug().Log("Conversion panicked", "panic", fmt.Sprint(r))
			result = llmfeeder.FailedResult(tab.Snapshot.URL, llmfeeder.Errorf(llmfeeder.EINTERNAL, "conversion panicked: %v", r))
		}
	}()
	return p.run(ctx, tab, settings)
}

func (p *Pipeline) run(ctx context.Context, tab *llmfeeder.Tab, settings llmfeeder.Settings) *llmfeeder.ConversionResult {
	debug := p.debug()
	snap := tab.Snapshot
	scope := settings.Scope()

	debug.Log("Conversion started",
		"url", snap.URL,
		"contentScope", string(scope),
		"preserveTables", settings.PreserveTables,
		"includeImages", settings.IncludeImages,
		"includeTitle", settings.IncludeTitle,
	)

	content, meta, err := p.Extractor.Extract(snap, scope)
	if err != nil {
		debug.Log("Content extraction failed", "error", err.Error())
		return llmfeeder.FailedResult(snap.URL, err)
	}
	size := utf8.RuneCountInString(content.HTML())
	debug.Log("Content extracted", "innerHTMLLength", size)
	if size > largeContentSize {
		debug.Log("Large content detected", "size", size)
	}

	warnings, records := p.Stitcher.Stitch(ctx, content, snap, tab.Frames, llmfeeder.StitchOptions{
		Append:        scope == llmfeeder.ScopeMainContent,
		PreserveLinks: settings.PreserveIframeLinks,
	})
	debug.Log("Iframe warnings", "count", len(warnings), "frames", len(records))
	if err := ctx.Err(); err != nil {
		return llmfeeder.FailedResult(snap.URL, llmfeeder.Errorf(llmfeeder.ETIMEOUT, "conversion timed out: %v", err))
	}

	p.Sanitizer.Clean(content, llmfeeder.SanitizeOptions{IncludeImages: settings.IncludeImages})

	markdown, err := p.convert(content, settings)
	if err != nil {
		debug.Log("Conversion failed", "error", err.Error())
		return llmfeeder.FailedResult(snap.URL, err)
	}
	debug.Log("Conversion successful",
		"markdownLength", len(markdown),
		"hasTables", strings.Contains(markdown, "| --- |"),
	)

	for _, w := range warnings {
		if note := w.Note(); note != "" {
			markdown += note
			debug.Log("Added iframe warning", "count", w.Count)
		}
	}

	markdown = llmfeeder.PostProcess(markdown, settings, meta, llmfeeder.PageInfo{
		Title: snap.Title,
		URL:   snap.URL,
	})

	result := &llmfeeder.ConversionResult{
		Success:  true,
		URL:      snap.URL,
		Title:    title(snap, meta),
		Markdown: markdown,
		Warnings: warnings,
	}
	if p.Tokens != nil {
		if n, err := p.Tokens.CountTokens(ctx, markdown); err == nil {
			result.TokenCount = n
		} else {
			debug.Log("Token counting failed", "error", err.Error())
		}
	}
	return result
}

// convert runs the converter, retrying once on a truncated prefix when a
// large document fails or converts to nothing.
func (p *Pipeline) convert(content *llmfeeder.Content, settings llmfeeder.Settings) (string, error) {
	markdown, err := p.Converter.Convert(content, settings)
	if err == nil && strings.TrimSpace(markdown) != "" {
		return markdown, nil
	}
	if err == nil {
		err = llmfeeder.Errorf(llmfeeder.ENOCONTENT, "conversion resulted in empty markdown")
	}

	raw := content.HTML()
	if utf8.RuneCountInString(raw) <= llmfeeder.MaxConvertSize {
		return "", err
	}

	p.debug().Log("Retrying conversion on truncated content", "error", err.Error())
	truncated, perr := llmfeeder.NewContent(string([]rune(raw)[:llmfeeder.MaxConvertSize]), content.BaseURL, content.Scope)
	if perr != nil {
		return "", err
	}
	markdown, terr := p.Converter.Convert(truncated, settings)
	if terr != nil {
		return "", fmt.Errorf("convert truncated content: %w", terr)
	}
	if strings.TrimSpace(markdown) == "" {
		return "", err
	}
	return markdown + llmfeeder.TruncationNote, nil
}

func (p *Pipeline) debug() llmfeeder.DebugLog {
	if p.Debug == nil {
		return llmfeeder.NopDebugLog{}
	}
	return p.Debug
}

func title(snap *llmfeeder.Snapshot, meta *llmfeeder.ArticleMetadata) string {
	if t := strings.TrimSpace(snap.Title); t != "" {
		return t
	}
	if meta != nil && meta.Title != "" {
		return meta.Title
	}
	return "Untitled"
}
