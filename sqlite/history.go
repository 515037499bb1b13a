package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/llmfeeder"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ llmfeeder.HistoryService = (*HistoryService)(nil)

// HistoryService implements llmfeeder.HistoryService using SQLite.
type HistoryService struct {
	db *DB
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(db *DB) *HistoryService {
	return &HistoryService{db: db}
}

// ContentHash returns the xxhash of markdown as lowercase hex.
func ContentHash(markdown string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(markdown))
}

// CreateEntry saves a new entry.
func (s *HistoryService) CreateEntry(ctx context.Context, entry *llmfeeder.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	entry.ID = uuid.New().String()
	entry.ContentHash = ContentHash(entry.Markdown)
	entry.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history (id, url, title, scope, markdown, content_hash, token_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.URL, entry.Title, string(entry.Scope), entry.Markdown, entry.ContentHash,
		entry.TokenCount, formatTime(entry.CreatedAt))

	return err
}

// FindEntryByID retrieves an entry by ID.
func (s *HistoryService) FindEntryByID(ctx context.Context, id string) (*llmfeeder.HistoryEntry, error) {
	entries, err := s.FindEntries(ctx, llmfeeder.HistoryFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, llmfeeder.Errorf(llmfeeder.ENOTFOUND, "history entry not found")
	}
	return entries[0], nil
}

// FindEntries retrieves entries matching the filter, newest first.
func (s *HistoryService) FindEntries(ctx context.Context, filter llmfeeder.HistoryFilter) ([]*llmfeeder.HistoryEntry, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, url, title, scope, markdown, content_hash, token_count, created_at
		FROM history WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*llmfeeder.HistoryEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// DeleteEntry permanently removes an entry.
func (s *HistoryService) DeleteEntry(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM history WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return llmfeeder.Errorf(llmfeeder.ENOTFOUND, "history entry not found")
	}
	return nil
}

func scanEntry(rows *sql.Rows) (*llmfeeder.HistoryEntry, error) {
	var entry llmfeeder.HistoryEntry
	var scope, createdAt string

	if err := rows.Scan(&entry.ID, &entry.URL, &entry.Title, &scope, &entry.Markdown,
		&entry.ContentHash, &entry.TokenCount, &createdAt); err != nil {
		return nil, err
	}
	entry.Scope = llmfeeder.ContentScope(scope)

	t, err := parseTime(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	entry.CreatedAt = t
	return &entry, nil
}
