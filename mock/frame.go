package mock

import (
	"context"

	"github.com/fwojciec/llmfeeder"
)

var _ llmfeeder.Stitcher = (*Stitcher)(nil)

// Stitcher is a mock implementation of llmfeeder.Stitcher.
type Stitcher struct {
	StitchFn func(ctx context.Context, content *llmfeeder.Content, snapshot *llmfeeder.Snapshot, transport llmfeeder.FrameTransport, opts llmfeeder.StitchOptions) ([]llmfeeder.Warning, []llmfeeder.FrameRecord)
}

func (s *Stitcher) Stitch(ctx context.Context, content *llmfeeder.Content, snapshot *llmfeeder.Snapshot, transport llmfeeder.FrameTransport, opts llmfeeder.StitchOptions) ([]llmfeeder.Warning, []llmfeeder.FrameRecord) {
	return s.StitchFn(ctx, content, snapshot, transport, opts)
}

var _ llmfeeder.FrameTransport = (*FrameTransport)(nil)

// FrameTransport is a mock implementation of llmfeeder.FrameTransport.
type FrameTransport struct {
	PostFn      func(ctx context.Context, frame llmfeeder.Frame, req llmfeeder.FrameRequest) error
	SubscribeFn func(fn func(llmfeeder.FrameResponse)) func()
}

func (t *FrameTransport) Post(ctx context.Context, frame llmfeeder.Frame, req llmfeeder.FrameRequest) error {
	return t.PostFn(ctx, frame, req)
}

func (t *FrameTransport) Subscribe(fn func(llmfeeder.FrameResponse)) func() {
	return t.SubscribeFn(fn)
}
