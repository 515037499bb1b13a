package mock

import "github.com/fwojciec/llmfeeder"

var _ llmfeeder.DebugLog = (*DebugLog)(nil)

// DebugLog is a mock implementation of llmfeeder.DebugLog.
type DebugLog struct {
	StartFn      func(enabled bool)
	LogFn        func(msg string, args ...any)
	TranscriptFn func() string
}

func (d *DebugLog) Start(enabled bool) {
	d.StartFn(enabled)
}

func (d *DebugLog) Log(msg string, args ...any) {
	d.LogFn(msg, args...)
}

func (d *DebugLog) Transcript() string {
	return d.TranscriptFn()
}
