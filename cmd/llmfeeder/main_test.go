package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	main "github.com/fwojciec/llmfeeder/cmd/llmfeeder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = `<!DOCTYPE html>
<html>
<head><title>Greeting</title></head>
<body>
<nav><a href="/home">Home</a></nav>
<article>
<h2>Hello</h2>
<p>World of tests.</p>
</article>
</body>
</html>`

func newTestMain(t *testing.T) *main.Main {
	t.Helper()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	return m
}

func newPageServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(testPage))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	for _, cmd := range []string{"convert", "serve", "settings", "history"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
	assert.Contains(t, helpOutput, "Usage:", "Help should have Kong-style Usage prefix")
	assert.Contains(t, helpOutput, "Flags:", "Help should have Kong-style Flags section")
}

func TestMain_Run_NoArgsIsAnError(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	stdout := &bytes.Buffer{}

	err := m.Run(context.Background(), nil, stdout, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
	assert.Contains(t, stdout.String(), "Usage:")
}

func TestMain_Run_SettingsPersist(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	ctx := context.Background()

	err := m.Run(ctx, []string{"settings", "set", "includeImages", "true"}, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	stdout := &bytes.Buffer{}
	err = m.Run(ctx, []string{"settings"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), `includeImages = "true"`)
	assert.Contains(t, stdout.String(), `preserveTables = "true"`)
}

func TestMain_Run_ConvertsPageOverHTTP(t *testing.T) {
	t.Parallel()

	srv := newPageServer(t)
	m := newTestMain(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"convert", srv.URL + "/page", "--set", "contentScope=fullPage"}, stdout, stderr)

	require.NoError(t, err, stderr.String())
	assert.Contains(t, stdout.String(), "Hello")
	assert.Contains(t, stdout.String(), "World of tests.")
	assert.Contains(t, stderr.String(), "Converted 1 tab")
}

func TestMain_Run_ConvertsSelector(t *testing.T) {
	t.Parallel()

	srv := newPageServer(t)
	m := newTestMain(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"convert", srv.URL + "/page", "--selector", "article p"}, stdout, stderr)

	require.NoError(t, err, stderr.String())
	assert.Contains(t, stdout.String(), "World of tests.")
	assert.NotContains(t, stdout.String(), "Home")
}

func TestMain_Run_SavedConversionsAppearInHistory(t *testing.T) {
	t.Parallel()

	srv := newPageServer(t)
	m := newTestMain(t)
	ctx := context.Background()

	err := m.Run(ctx, []string{"convert", srv.URL + "/page", "--set", "contentScope=fullPage", "--save"}, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	stdout := &bytes.Buffer{}
	err = m.Run(ctx, []string{"history"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "Greeting")
	assert.Contains(t, stdout.String(), srv.URL+"/page")
}
