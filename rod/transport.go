package rod

import (
	"context"
	"fmt"

	"github.com/fwojciec/llmfeeder"
	"github.com/fwojciec/llmfeeder/iframe"
	"github.com/go-rod/rod"
)

// Ensure FrameTransport implements llmfeeder.FrameTransport at compile time.
var _ llmfeeder.FrameTransport = (*FrameTransport)(nil)

// FrameTransport reaches a page's frames over the DevTools protocol, which
// is not bound by the same-origin policy. It answers extraction requests on
// the frame's behalf, asynchronously, through the embedded Hub. A frame that
// cannot be entered never answers and times out.
type FrameTransport struct {
	iframe.Hub

	page *rod.Page
}

// NewFrameTransport creates a FrameTransport for page.
func NewFrameTransport(page *rod.Page) *FrameTransport {
	return &FrameTransport{page: page}
}

// Post locates frame by index and schedules its answer.
func (t *FrameTransport) Post(ctx context.Context, frame llmfeeder.Frame, req llmfeeder.FrameRequest) error {
	els, err := t.page.Context(ctx).Elements("iframe")
	if err != nil {
		return fmt.Errorf("list frames: %w", err)
	}
	if frame.Index < 0 || frame.Index >= len(els) {
		return fmt.Errorf("frame %d not found", frame.Index)
	}

	go t.answer(ctx, els[frame.Index], req)
	return nil
}

func (t *FrameTransport) answer(ctx context.Context, el *rod.Element, req llmfeeder.FrameRequest) {
	fp, err := el.Context(ctx).Frame()
	if err != nil {
		return
	}
	res, err := fp.Context(ctx).Eval(frameBodyJS)
	if err != nil {
		return
	}
	if resp, ok := iframe.Respond(req, res.Value.Str()); ok {
		t.Publish(resp)
	}
}
