package mock

import (
	"context"

	"github.com/fwojciec/llmfeeder"
)

var _ llmfeeder.HistoryService = (*HistoryService)(nil)

// HistoryService is a mock implementation of llmfeeder.HistoryService.
type HistoryService struct {
	CreateEntryFn   func(ctx context.Context, entry *llmfeeder.HistoryEntry) error
	FindEntryByIDFn func(ctx context.Context, id string) (*llmfeeder.HistoryEntry, error)
	FindEntriesFn   func(ctx context.Context, filter llmfeeder.HistoryFilter) ([]*llmfeeder.HistoryEntry, error)
	DeleteEntryFn   func(ctx context.Context, id string) error
}

func (s *HistoryService) CreateEntry(ctx context.Context, entry *llmfeeder.HistoryEntry) error {
	return s.CreateEntryFn(ctx, entry)
}

func (s *HistoryService) FindEntryByID(ctx context.Context, id string) (*llmfeeder.HistoryEntry, error) {
	return s.FindEntryByIDFn(ctx, id)
}

func (s *HistoryService) FindEntries(ctx context.Context, filter llmfeeder.HistoryFilter) ([]*llmfeeder.HistoryEntry, error) {
	return s.FindEntriesFn(ctx, filter)
}

func (s *HistoryService) DeleteEntry(ctx context.Context, id string) error {
	return s.DeleteEntryFn(ctx, id)
}
