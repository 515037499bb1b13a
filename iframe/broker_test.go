package iframe_test

import (
	"testing"

	"github.com/fwojciec/llmfeeder"
	"github.com/fwojciec/llmfeeder/iframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroker(t *testing.T) {
	t.Parallel()

	t.Run("delivers response to matching id", func(t *testing.T) {
		t.Parallel()

		b := iframe.NewBroker()
		ch := b.Register("id-1")
		content := "<p>hi</p>"

		ok := b.Resolve(llmfeeder.FrameResponse{
			Action:    llmfeeder.ActionExtractResponse,
			MessageID: "id-1",
			Content:   &content,
		})

		require.True(t, ok)
		resp := <-ch
		require.NotNil(t, resp.Content)
		assert.Equal(t, content, *resp.Content)
		assert.Zero(t, b.Pending())
	})

	t.Run("ignores unknown ids", func(t *testing.T) {
		t.Parallel()

		b := iframe.NewBroker()
		b.Register("id-1")

		ok := b.Resolve(llmfeeder.FrameResponse{Action: llmfeeder.ActionExtractResponse, MessageID: "id-2"})

		assert.False(t, ok)
		assert.Equal(t, 1, b.Pending())
	})

	t.Run("ignores wrong action", func(t *testing.T) {
		t.Parallel()

		b := iframe.NewBroker()
		b.Register("id-1")

		ok := b.Resolve(llmfeeder.FrameResponse{Action: "other", MessageID: "id-1"})

		assert.False(t, ok)
	})

	t.Run("ignores late duplicate", func(t *testing.T) {
		t.Parallel()

		b := iframe.NewBroker()
		b.Register("id-1")
		resp := llmfeeder.FrameResponse{Action: llmfeeder.ActionExtractResponse, MessageID: "id-1"}

		assert.True(t, b.Resolve(resp))
		assert.False(t, b.Resolve(resp))
	})

	t.Run("cancel removes entry", func(t *testing.T) {
		t.Parallel()

		b := iframe.NewBroker()
		b.Register("id-1")
		b.Cancel("id-1")

		assert.Zero(t, b.Pending())
		assert.False(t, b.Resolve(llmfeeder.FrameResponse{Action: llmfeeder.ActionExtractResponse, MessageID: "id-1"}))
	})
}

func TestHub(t *testing.T) {
	t.Parallel()

	var h iframe.Hub
	var got []string
	unsubscribe := h.Subscribe(func(resp llmfeeder.FrameResponse) {
		got = append(got, resp.MessageID)
	})

	h.Publish(llmfeeder.FrameResponse{MessageID: "a"})
	unsubscribe()
	unsubscribe()
	h.Publish(llmfeeder.FrameResponse{MessageID: "b"})

	assert.Equal(t, []string{"a"}, got)
}

func TestRespond(t *testing.T) {
	t.Parallel()

	req := llmfeeder.FrameRequest{Action: llmfeeder.ActionExtractContent, MessageID: "m-1"}

	t.Run("returns cleaned content", func(t *testing.T) {
		t.Parallel()

		body := "<p>This frame has plenty of text to be worth extracting for sure.</p><script>x()</script><iframe src=\"x\"></iframe>"

		resp, ok := iframe.Respond(req, body)

		require.True(t, ok)
		assert.Equal(t, llmfeeder.ActionExtractResponse, resp.Action)
		assert.Equal(t, "m-1", resp.MessageID)
		require.NotNil(t, resp.Content)
		assert.Equal(t, "<p>This frame has plenty of text to be worth extracting for sure.</p>", *resp.Content)
	})

	t.Run("returns null content for short text", func(t *testing.T) {
		t.Parallel()

		resp, ok := iframe.Respond(req, "<p>tiny</p>")

		require.True(t, ok)
		assert.Nil(t, resp.Content)
	})

	t.Run("ignores other actions", func(t *testing.T) {
		t.Parallel()

		_, ok := iframe.Respond(llmfeeder.FrameRequest{Action: "ping"}, "<p>x</p>")

		assert.False(t, ok)
	})
}
