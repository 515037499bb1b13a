package batch_test

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/fwojciec/llmfeeder"
	"github.com/fwojciec/llmfeeder/batch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(title, markdown string) *llmfeeder.ConversionResult {
	return &llmfeeder.ConversionResult{Success: true, Title: title, Markdown: markdown}
}

func failed() *llmfeeder.ConversionResult {
	return llmfeeder.FailedResult("https://example.com", llmfeeder.Errorf(llmfeeder.ENOCONTENT, "empty"))
}

func TestBatchResult_Merge(t *testing.T) {
	t.Parallel()

	t.Run("joins successes in order", func(t *testing.T) {
		t.Parallel()

		r := &batch.BatchResult{Results: []*llmfeeder.ConversionResult{ok("A", "a"), failed(), ok("B", "b"), ok("C", "c")}}

		merged, err := r.Merge()

		require.NoError(t, err)
		assert.Equal(t, "a\n\n---\n\nb\n\n---\n\nc", merged)
	})

	t.Run("single success has no delimiter", func(t *testing.T) {
		t.Parallel()

		r := &batch.BatchResult{Results: []*llmfeeder.ConversionResult{ok("A", "a")}}

		merged, err := r.Merge()

		require.NoError(t, err)
		assert.Equal(t, "a", merged)
	})

	t.Run("returns EALLFAILED without successes", func(t *testing.T) {
		t.Parallel()

		r := &batch.BatchResult{Results: []*llmfeeder.ConversionResult{failed(), failed()}}

		_, err := r.Merge()

		assert.Equal(t, llmfeeder.EALLFAILED, llmfeeder.ErrorCode(err))
	})

	t.Run("returns EALLFAILED for an empty batch", func(t *testing.T) {
		t.Parallel()

		_, err := (&batch.BatchResult{}).Merge()

		assert.Equal(t, llmfeeder.EALLFAILED, llmfeeder.ErrorCode(err))
	})
}

func TestBatchResult_Summary(t *testing.T) {
	t.Parallel()

	r := &batch.BatchResult{Results: []*llmfeeder.ConversionResult{ok("A", "a"), failed(), ok("B", "b")}}

	summary := r.Summary()

	assert.Equal(t, 2, summary.SuccessCount)
	assert.Equal(t, 1, summary.FailCount)
	assert.Equal(t, "2 tabs (1 failed)", summary.Message())
}

func TestBatchResult_Archive(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC)

	t.Run("writes one entry per success with unique names", func(t *testing.T) {
		t.Parallel()

		r := &batch.BatchResult{Results: []*llmfeeder.ConversionResult{
			ok("Getting Started", "first"),
			failed(),
			ok("Getting Started", "second"),
			ok("a/b: c?", "third"),
		}}

		data, name, err := r.Archive(now)

		require.NoError(t, err)
		assert.Equal(t, "llmfeeder-export-2024-03-09-3tabs.zip", name)

		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		require.NoError(t, err)
		files := make(map[string]string)
		var names []string
		for _, f := range zr.File {
			rc, err := f.Open()
			require.NoError(t, err)
			b, err := io.ReadAll(rc)
			require.NoError(t, err)
			require.NoError(t, rc.Close())
			files[f.Name] = string(b)
			names = append(names, f.Name)
		}
		assert.Equal(t, []string{"Getting_Started.md", "Getting_Started_1.md", "ab_c.md"}, names)
		assert.Equal(t, "first", files["Getting_Started.md"])
		assert.Equal(t, "second", files["Getting_Started_1.md"])
		assert.Equal(t, "third", files["ab_c.md"])
	})

	t.Run("falls back to untitled entries", func(t *testing.T) {
		t.Parallel()

		r := &batch.BatchResult{Results: []*llmfeeder.ConversionResult{ok("", "x"), ok("???", "y")}}

		data, _, err := r.Archive(now)

		require.NoError(t, err)
		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		require.NoError(t, err)
		require.Len(t, zr.File, 2)
		assert.Equal(t, "untitled.md", zr.File[0].Name)
		assert.Equal(t, "untitled_1.md", zr.File[1].Name)
	})

	t.Run("returns EALLFAILED without successes", func(t *testing.T) {
		t.Parallel()

		r := &batch.BatchResult{Results: []*llmfeeder.ConversionResult{failed()}}

		_, _, err := r.Archive(now)

		assert.Equal(t, llmfeeder.EALLFAILED, llmfeeder.ErrorCode(err))
	})
}

func TestArchiveName(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 12, 31, 23, 30, 0, 0, time.FixedZone("X", -2*60*60))

	assert.Equal(t, "llmfeeder-export-2025-01-01-1tabs.zip", batch.ArchiveName(now, 1))
}
