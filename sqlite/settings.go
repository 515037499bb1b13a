package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/llmfeeder"
)

// Compile-time interface verification.
var _ llmfeeder.SettingsStore = (*SettingsStore)(nil)

// SettingsStore implements llmfeeder.SettingsStore with one row per setting.
type SettingsStore struct {
	db *DB
}

// NewSettingsStore creates a new SettingsStore.
func NewSettingsStore(db *DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// LoadSettings applies the stored rows on top of DefaultSettings. Rows that
// no longer name a valid setting are ignored.
func (s *SettingsStore) LoadSettings(ctx context.Context) (llmfeeder.Settings, error) {
	settings := llmfeeder.DefaultSettings()

	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return settings, err
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return settings, err
		}
		if err := settings.Set(key, value); err != nil && llmfeeder.ErrorCode(err) != llmfeeder.EINVALID {
			return settings, err
		}
	}
	return settings, rows.Err()
}

// SaveSettings replaces every stored setting in a single transaction.
func (s *SettingsStore) SaveSettings(ctx context.Context, settings llmfeeder.Settings) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := formatTime(time.Now())
	for key, value := range settings.Values() {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, key, value, now); err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}
	return tx.Commit()
}
