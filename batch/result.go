package batch

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/llmfeeder"
)

// MergeDelimiter separates documents in merged output.
const MergeDelimiter = "\n\n---\n\n"

// BatchResult holds the per-document results of a batch in input order.
type BatchResult struct {
	Results []*llmfeeder.ConversionResult `json:"results"`
}

// Summary counts successes and failures.
func (r *BatchResult) Summary() llmfeeder.BatchSummary {
	var s llmfeeder.BatchSummary
	for _, res := range r.Results {
		if res.Success {
			s.SuccessCount++
		} else {
			s.FailCount++
		}
	}
	return s
}

// Successes returns the successful results in input order.
func (r *BatchResult) Successes() []*llmfeeder.ConversionResult {
	var out []*llmfeeder.ConversionResult
	for _, res := range r.Results {
		if res.Success {
			out = append(out, res)
		}
	}
	return out
}

// Merge joins the Markdown of every successful result with MergeDelimiter.
// Returns EALLFAILED if nothing succeeded.
func (r *BatchResult) Merge() (string, error) {
	ok := r.Successes()
	if len(ok) == 0 {
		return "", llmfeeder.Errorf(llmfeeder.EALLFAILED, "no tabs were successfully converted")
	}
	parts := make([]string, len(ok))
	for i, res := range ok {
		parts[i] = res.Markdown
	}
	return strings.Join(parts, MergeDelimiter), nil
}

// Archive packs one Markdown file per successful result into a ZIP archive
// and returns it with its file name. Entries are named after the result
// titles, with _1, _2, ... appended on collision.
// Returns EALLFAILED if nothing succeeded.
func (r *BatchResult) Archive(now time.Time) (data []byte, filename string, err error) {
	ok := r.Successes()
	if len(ok) == 0 {
		return nil, "", llmfeeder.Errorf(llmfeeder.EALLFAILED, "no tabs were successfully converted")
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	var names llmfeeder.FilenameSet
	for _, res := range ok {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     names.Unique(res.Title) + ".md",
			Method:   zip.Deflate,
			Modified: now,
		})
		if err != nil {
			return nil, "", fmt.Errorf("create archive entry: %w", err)
		}
		if _, err := w.Write([]byte(res.Markdown)); err != nil {
			return nil, "", fmt.Errorf("write archive entry: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, "", fmt.Errorf("close archive: %w", err)
	}

	return buf.Bytes(), ArchiveName(now, len(ok)), nil
}

// ArchiveName returns the export file name for n documents produced on
// now's UTC date.
func ArchiveName(now time.Time, n int) string {
	return fmt.Sprintf("llmfeeder-export-%s-%dtabs.zip", now.UTC().Format("2006-01-02"), n)
}
