package llmfeeder

import (
	"context"
	"time"
)

// HistoryEntry is a saved conversion.
type HistoryEntry struct {
	ID          string       `json:"id"`
	URL         string       `json:"url"`
	Title       string       `json:"title"`
	Scope       ContentScope `json:"scope"`
	Markdown    string       `json:"markdown"`
	ContentHash string       `json:"contentHash"`
	TokenCount  int          `json:"tokenCount"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *HistoryEntry) Validate() error {
	if e.URL == "" {
		return Errorf(EINVALID, "history entry URL required")
	}
	if e.Markdown == "" {
		return Errorf(EINVALID, "history entry markdown required")
	}
	return nil
}

// NewHistoryEntry builds an unsaved entry from a successful result.
func NewHistoryEntry(result *ConversionResult, scope ContentScope) *HistoryEntry {
	return &HistoryEntry{
		URL:        result.URL,
		Title:      result.Title,
		Scope:      scope,
		Markdown:   result.Markdown,
		TokenCount: result.TokenCount,
	}
}

// HistoryService represents a service for managing saved conversions.
type HistoryService interface {
	// CreateEntry saves entry, assigning its ID, hash and timestamp.
	CreateEntry(ctx context.Context, entry *HistoryEntry) error

	// FindEntryByID retrieves an entry by ID.
	// Returns ENOTFOUND if the entry does not exist.
	FindEntryByID(ctx context.Context, id string) (*HistoryEntry, error)

	// FindEntries retrieves entries matching the filter, newest first.
	FindEntries(ctx context.Context, filter HistoryFilter) ([]*HistoryEntry, error)

	// DeleteEntry permanently removes an entry.
	// Returns ENOTFOUND if the entry does not exist.
	DeleteEntry(ctx context.Context, id string) error
}

// HistoryFilter represents a filter for FindEntries.
type HistoryFilter struct {
	ID          *string `json:"id"`
	URL         *string `json:"url"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
