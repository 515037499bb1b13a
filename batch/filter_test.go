package batch_test

import (
	"testing"

	"github.com/fwojciec/llmfeeder/batch"
	"github.com/stretchr/testify/assert"
)

func TestFilterTabURLs(t *testing.T) {
	t.Parallel()

	urls := []string{
		"https://example.com/a",
		"chrome://settings",
		"",
		"edge://newtab",
		"about:blank",
		"chrome-extension://abc/popup.html",
		"moz-extension://abc/popup.html",
		"http://example.com/b",
	}

	assert.Equal(t, []string{"https://example.com/a", "http://example.com/b"}, batch.FilterTabURLs(urls))
}
