package slog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/llmfeeder"
)

// Ensure DebugLog implements llmfeeder.DebugLog.
var _ llmfeeder.DebugLog = (*DebugLog)(nil)

// DebugLog keeps the transcript of the most recent debug-mode run in a
// bounded buffer. Entries are recorded through a slog.Handler, so Logger
// can also be handed to components that log with slog.
type DebugLog struct {
	mu      sync.Mutex
	enabled bool
	max     int
	entries []debugEntry
	logger  *slog.Logger
}

type debugEntry struct {
	time    time.Time
	message string
	data    map[string]any
}

// NewDebugLog creates a DebugLog holding at most llmfeeder.MaxDebugLogEntries
// entries.
func NewDebugLog() *DebugLog {
	d := &DebugLog{max: llmfeeder.MaxDebugLogEntries}
	d.logger = slog.New(&debugHandler{log: d})
	return d
}

// Logger returns a logger that writes into the transcript while a debug run
// is active.
func (d *DebugLog) Logger() *slog.Logger {
	return d.logger
}

// Start begins a run. Enabling clears the previous transcript.
func (d *DebugLog) Start(enabled bool) {
	d.mu.Lock()
	d.enabled = enabled
	if enabled {
		d.entries = nil
	}
	d.mu.Unlock()

	if enabled {
		d.Log("Debug mode enabled", "timestamp", time.Now().UTC().Format(time.RFC3339))
	}
}

// Log records msg with key/value attributes when the run is in debug mode.
func (d *DebugLog) Log(msg string, args ...any) {
	d.logger.Info(msg, args...)
}

// Transcript returns the entries as "[time] message" lines, each followed by
// its attributes as indented JSON.
func (d *DebugLog) Transcript() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	lines := make([]string, 0, len(d.entries))
	for _, e := range d.entries {
		line := "[" + e.time.UTC().Format("2006-01-02T15:04:05.000Z") + "] " + e.message
		if len(e.data) > 0 {
			if b, err := json.MarshalIndent(e.data, "  ", "  "); err == nil {
				line += "\n  " + string(b)
			}
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (d *DebugLog) isEnabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enabled
}

func (d *DebugLog) add(e debugEntry) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.enabled {
		return
	}
	d.entries = append(d.entries, e)
	if over := len(d.entries) - d.max; over > 0 {
		d.entries = append(d.entries[:0:0], d.entries[over:]...)
	}
}

// debugHandler is the slog.Handler feeding a DebugLog.
type debugHandler struct {
	log    *DebugLog
	attrs  []slog.Attr
	groups []string
}

func (h *debugHandler) Enabled(context.Context, slog.Level) bool {
	return h.log.isEnabled()
}

func (h *debugHandler) Handle(_ context.Context, r slog.Record) error {
	data := make(map[string]any)
	for _, a := range h.attrs {
		addAttr(data, a)
	}
	prefix := strings.Join(h.groups, ".")
	r.Attrs(func(a slog.Attr) bool {
		if prefix != "" {
			a.Key = prefix + "." + a.Key
		}
		addAttr(data, a)
		return true
	})
	h.log.add(debugEntry{time: r.Time, message: r.Message, data: data})
	return nil
}

func (h *debugHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	prefix := strings.Join(h.groups, ".")
	next := &debugHandler{log: h.log, groups: h.groups}
	next.attrs = append(next.attrs, h.attrs...)
	for _, a := range attrs {
		if prefix != "" {
			a.Key = prefix + "." + a.Key
		}
		next.attrs = append(next.attrs, a)
	}
	return next
}

func (h *debugHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := &debugHandler{log: h.log, attrs: h.attrs}
	next.groups = append(append([]string(nil), h.groups...), name)
	return next
}

// addAttr stores a in data as a JSON-friendly value.
func addAttr(data map[string]any, a slog.Attr) {
	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindGroup:
		group := make(map[string]any)
		for _, ga := range v.Group() {
			addAttr(group, ga)
		}
		data[a.Key] = group
	case slog.KindDuration:
		data[a.Key] = v.Duration().String()
	case slog.KindTime:
		data[a.Key] = v.Time().UTC().Format(time.RFC3339)
	case slog.KindAny:
		switch x := v.Any().(type) {
		case error:
			data[a.Key] = x.Error()
		case fmt.Stringer:
			data[a.Key] = x.String()
		default:
			data[a.Key] = x
		}
	default:
		data[a.Key] = v.Any()
	}
}
