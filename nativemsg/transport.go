package nativemsg

import (
	"context"

	"github.com/fwojciec/llmfeeder"
	"github.com/fwojciec/llmfeeder/iframe"
)

var _ llmfeeder.FrameTransport = (*frameTransport)(nil)

// frameRequest is the extraction request relayed to the extension, which
// forwards it to the frame at FrameIndex.
type frameRequest struct {
	Action     string `json:"action"`
	MessageID  string `json:"messageId"`
	FrameIndex int    `json:"frameIndex"`
}

// frameTransport relays frame requests through the host's output stream.
// Responses come back as extract_content_response messages on the input.
type frameTransport struct {
	iframe.Hub

	host *Host
}

func (t *frameTransport) Post(ctx context.Context, frame llmfeeder.Frame, req llmfeeder.FrameRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.host.send(frameRequest{
		Action:     req.Action,
		MessageID:  req.MessageID,
		FrameIndex: frame.Index,
	})
}
