package llmfeeder

// MaxDebugLogEntries bounds the debug transcript.
const MaxDebugLogEntries = 500

// DebugLog records pipeline events for the most recent debug-mode run.
type DebugLog interface {
	// Start begins a run. When enabled, previous entries are cleared and
	// subsequent Log calls are recorded; otherwise Log is a no-op.
	Start(enabled bool)

	// Log records an event with key/value attributes.
	Log(msg string, args ...any)

	// Transcript returns the newline-joined, timestamped entries.
	Transcript() string
}

// NopDebugLog discards everything.
type NopDebugLog struct{}

func (NopDebugLog) Start(bool) {}

func (NopDebugLog) Log(string, ...any) {}

func (NopDebugLog) Transcript() string { return "" }
