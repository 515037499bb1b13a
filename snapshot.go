package llmfeeder

import (
	"context"
	"net/url"
)

// Snapshot is an immutable capture of a page's DOM at the moment conversion
// starts. A conversion run parses it afresh, so a Snapshot is never mutated
// and may be discarded once the run completes.
type Snapshot struct {
	// URL is the page location.
	URL string `json:"url"`

	// BaseURL is the document base URI used to resolve relative links.
	// Empty means URL.
	BaseURL string `json:"baseUrl,omitempty"`

	// Title is the document title.
	Title string `json:"title"`

	// HTML is the serialized document.
	HTML string `json:"html"`

	// Selection is the HTML of the live selection range, if any.
	Selection string `json:"selection,omitempty"`

	// Frames lists the document's iframes in document order.
	Frames []Frame `json:"frames,omitempty"`
}

// Base returns the URI relative references are resolved against.
func (s *Snapshot) Base() string {
	if s.BaseURL != "" {
		return s.BaseURL
	}
	return s.URL
}

// Hostname returns the host name of the page URL, or "" if it cannot be parsed.
func (s *Snapshot) Hostname() string {
	u, err := url.Parse(s.URL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// Frame describes one iframe of the original document.
type Frame struct {
	// Index is the frame's position among the document's iframes.
	Index int `json:"index"`

	Src       string `json:"src,omitempty"`
	Srcdoc    string `json:"srcdoc,omitempty"`
	Title     string `json:"title,omitempty"`
	AriaLabel string `json:"ariaLabel,omitempty"`

	// Hidden is true when the frame is not rendered (no offset parent).
	Hidden bool `json:"hidden,omitempty"`

	// SameOrigin is true when the frame's document was script-accessible
	// when the snapshot was taken. Body then holds its body HTML.
	SameOrigin bool   `json:"sameOrigin,omitempty"`
	Body       string `json:"body,omitempty"`
}

// Source returns the frame's effective source: src, then srcdoc, then about:blank.
func (f Frame) Source() string {
	switch {
	case f.Src != "":
		return f.Src
	case f.Srcdoc != "":
		return f.Srcdoc
	default:
		return "about:blank"
	}
}

// Label returns a human-readable frame label.
func (f Frame) Label() string {
	switch {
	case f.Title != "":
		return f.Title
	case f.AriaLabel != "":
		return f.AriaLabel
	default:
		return "Embedded content"
	}
}

// Tab is a loaded document context: a snapshot plus the transport that
// reaches its embedded frames.
type Tab struct {
	ID       int
	Snapshot *Snapshot

	// Frames reaches cross-origin frames. Nil means no frame can be reached.
	Frames FrameTransport

	closeFn func() error
}

// NewTab returns a Tab. closeFn, if non-nil, is called by Close.
func NewTab(id int, snapshot *Snapshot, frames FrameTransport, closeFn func() error) *Tab {
	return &Tab{ID: id, Snapshot: snapshot, Frames: frames, closeFn: closeFn}
}

// Close releases resources held by the document context.
func (t *Tab) Close() error {
	if t == nil || t.closeFn == nil {
		return nil
	}
	return t.closeFn()
}

// TabLoader opens document contexts by URL.
// Implementations hide HTTP vs browser selection.
type TabLoader interface {
	Load(ctx context.Context, url string) (*Tab, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
