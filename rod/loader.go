package rod

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/llmfeeder"
)

// DefaultLoadTimeout bounds navigation and snapshotting of one document.
const DefaultLoadTimeout = 30 * time.Second

// Ensure TabLoader implements llmfeeder.TabLoader at compile time.
var _ llmfeeder.TabLoader = (*TabLoader)(nil)

// TabLoader opens each document in its own browser page. The page stays
// open until the Tab is closed so cross-origin frames can be queried
// during conversion.
type TabLoader struct {
	manager *BrowserManager
	timeout time.Duration
	nextID  atomic.Int64
}

// LoaderOption configures a TabLoader.
type LoaderOption func(*TabLoader)

// WithLoadTimeout sets the navigation timeout.
// Defaults to DefaultLoadTimeout if not specified.
func WithLoadTimeout(d time.Duration) LoaderOption {
	return func(l *TabLoader) {
		l.timeout = d
	}
}

// NewTabLoader creates a TabLoader that opens pages through manager.
func NewTabLoader(manager *BrowserManager, opts ...LoaderOption) *TabLoader {
	l := &TabLoader{
		manager: manager,
		timeout: DefaultLoadTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load navigates to url, waits for the load event and captures a snapshot.
func (l *TabLoader) Load(ctx context.Context, url string) (tab *llmfeeder.Tab, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, release, err := l.manager.NewPage()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = release()
		}
	}()

	loadCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	p := page.Context(loadCtx)

	if err := p.Navigate(url); err != nil {
		return nil, fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := p.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait for %s: %w", url, err)
	}

	res, err := p.Eval(snapshotJS)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", url, err)
	}
	var snap llmfeeder.Snapshot
	if err := json.Unmarshal([]byte(res.Value.Str()), &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot of %s: %w", url, err)
	}
	if snap.BaseURL == snap.URL {
		snap.BaseURL = ""
	}

	transport := NewFrameTransport(page)
	return llmfeeder.NewTab(int(l.nextID.Add(1)), &snap, transport, release), nil
}
