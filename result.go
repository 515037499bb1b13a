package llmfeeder

import (
	"context"
	"strconv"
)

// ConversionResult is the outcome of converting one document. It is
// immutable once produced.
type ConversionResult struct {
	Success    bool   `json:"success"`
	URL        string `json:"url,omitempty"`
	Title      string `json:"title,omitempty"`
	Markdown   string `json:"markdown,omitempty"`
	TokenCount int    `json:"tokenCount,omitempty"`

	// Code is the error code on failure.
	Code string `json:"code,omitempty"`

	// Error is the short user-facing message on failure.
	Error string `json:"error,omitempty"`

	// Details is the technical detail of a failure.
	Details string `json:"details,omitempty"`

	Warnings []Warning `json:"warnings,omitempty"`
}

// FailedResult builds a failure result from err.
func FailedResult(url string, err error) *ConversionResult {
	code := ErrorCode(err)
	return &ConversionResult{
		URL:     url,
		Code:    code,
		Error:   UserMessage(code),
		Details: err.Error(),
	}
}

// DocumentConverter runs the whole pipeline for one document context.
type DocumentConverter interface {
	// Convert never returns nil and never panics; failures are reported in
	// the result.
	Convert(ctx context.Context, tab *Tab, settings Settings) *ConversionResult
}

// BatchSummary counts the outcomes of a batch.
type BatchSummary struct {
	SuccessCount int `json:"successCount"`
	FailCount    int `json:"failCount"`
}

// Message renders the summary as "N tabs (M failed)".
func (s BatchSummary) Message() string {
	msg := strconv.Itoa(s.SuccessCount) + " tab"
	if s.SuccessCount != 1 {
		msg += "s"
	}
	if s.FailCount > 0 {
		msg += " (" + strconv.Itoa(s.FailCount) + " failed)"
	}
	return msg
}
