package llmfeeder

import (
	"context"
	"strconv"
	"time"
)

// Cross-frame protocol actions.
const (
	ActionExtractContent  = "extract_content"
	ActionExtractResponse = "extract_content_response"
)

// Frame extraction defaults.
const (
	DefaultFrameTimeout   = 1 * time.Second
	DefaultFrameBatchSize = 5

	// MinFrameContentLength is the trimmed text length a frame must exceed
	// to be merged.
	MinFrameContentLength = 50
)

// FrameRequest asks a frame for its content.
type FrameRequest struct {
	Action    string `json:"action"`
	MessageID string `json:"messageId"`
}

// FrameResponse answers a FrameRequest. A nil Content means the frame had
// too little extractable text.
type FrameResponse struct {
	Action    string  `json:"action"`
	MessageID string  `json:"messageId"`
	Content   *string `json:"content"`
}

// FrameTransport carries the cross-frame protocol to a document's frames.
type FrameTransport interface {
	// Post sends req to frame. Responses arrive asynchronously through the
	// functions registered with Subscribe.
	Post(ctx context.Context, frame Frame, req FrameRequest) error

	// Subscribe registers fn for every response. The returned function
	// removes the registration.
	Subscribe(fn func(FrameResponse)) (unsubscribe func())
}

// FrameAccess classifies how a frame's content was obtained.
type FrameAccess string

// Frame accessibility classes.
const (
	FrameSameOrigin             FrameAccess = "sameOrigin"
	FrameCrossOriginReachable   FrameAccess = "crossOriginReachable"
	FrameCrossOriginUnreachable FrameAccess = "crossOriginUnreachable"
)

// FrameRecord is the outcome for one original iframe position.
type FrameRecord struct {
	Index  int
	Src    string
	Title  string
	Access FrameAccess

	// HTML is the extracted body HTML. Empty when nothing was merged.
	HTML string
}

// Warning types.
const (
	WarningCrossOriginIframe = "crossOriginIframe"
)

// MaxWarningSamples caps the frame samples attached to a warning.
const MaxWarningSamples = 3

// FrameSample identifies an unreachable frame in a warning.
type FrameSample struct {
	Src   string `json:"src"`
	Title string `json:"title"`
}

// Warning is a non-fatal condition attached to a conversion result.
type Warning struct {
	Type    string        `json:"type"`
	Count   int           `json:"count"`
	Details []FrameSample `json:"details,omitempty"`
}

// Note renders the warning as a Markdown note appended to the output.
// Returns "" for warning types that are not rendered.
func (w Warning) Note() string {
	if w.Type != WarningCrossOriginIframe {
		return ""
	}
	return "\n\n---\n> **Note:** This page contains " + strconv.Itoa(w.Count) +
		" cross-origin iframe(s) that could not be accessed due to browser security policies." +
		" Some content may be missing. Links to these iframes have been preserved where possible.\n"
}

// StitchOptions configures a Stitcher run.
type StitchOptions struct {
	// Append appends extracted frame content as "Embedded Content N"
	// sections instead of replacing iframe elements in place.
	Append bool

	// PreserveLinks replaces unreachable iframes with a link to their source.
	PreserveLinks bool
}

// Stitcher merges iframe content into a content tree.
type Stitcher interface {
	// Stitch augments content with the frames of snapshot, reaching
	// cross-origin frames through transport (which may be nil). Frame
	// failures never fail the run; they are reported as warnings.
	Stitch(ctx context.Context, content *Content, snapshot *Snapshot, transport FrameTransport, opts StitchOptions) ([]Warning, []FrameRecord)
}
