package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/llmfeeder"
	main "github.com/fwojciec/llmfeeder/cmd/llmfeeder"
	"github.com/fwojciec/llmfeeder/mock"
	"github.com/fwojciec/llmfeeder/nativemsg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("answers requests until stdin ends", func(t *testing.T) {
		t.Parallel()

		stdin := &bytes.Buffer{}
		require.NoError(t, nativemsg.WriteMessage(stdin, nativemsg.Request{Action: nativemsg.ActionPing, ID: []byte(`1`)}))
		require.NoError(t, nativemsg.WriteMessage(stdin, nativemsg.Request{
			Action:   nativemsg.ActionConvert,
			ID:       []byte(`2`),
			Document: &llmfeeder.Snapshot{URL: "https://example.com/", Title: "Example", HTML: "<p>hi</p>"},
		}))

		converter := &mock.DocumentConverter{
			ConvertFn: func(_ context.Context, tab *llmfeeder.Tab, _ llmfeeder.Settings) *llmfeeder.ConversionResult {
				return &llmfeeder.ConversionResult{Success: true, URL: tab.Snapshot.URL, Markdown: "hi"}
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdin:  stdin,
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Host:   &nativemsg.Host{Converter: converter},
		}

		err := (&main.ServeCmd{}).Run(deps)

		require.NoError(t, err)

		replies := map[string]nativemsg.Response{}
		for range 2 {
			var resp nativemsg.Response
			require.NoError(t, nativemsg.ReadMessage(stdout, &resp))
			replies[string(resp.ID)] = resp
		}
		assert.True(t, replies["1"].Success)
		assert.True(t, replies["2"].Success)
		assert.Equal(t, "hi", replies["2"].Markdown)
	})

	t.Run("reports a malformed stream", func(t *testing.T) {
		t.Parallel()

		stdin := bytes.NewBuffer([]byte{5, 0, 0, 0, '{', 'x', 'x', 'x', 'x'})
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdin:  stdin,
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Host:   &nativemsg.Host{Converter: &mock.DocumentConverter{}},
		}

		err := (&main.ServeCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
