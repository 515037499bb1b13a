package mock

import (
	"context"

	"github.com/fwojciec/llmfeeder"
)

var _ llmfeeder.SettingsStore = (*SettingsStore)(nil)

// SettingsStore is a mock implementation of llmfeeder.SettingsStore.
type SettingsStore struct {
	LoadSettingsFn func(ctx context.Context) (llmfeeder.Settings, error)
	SaveSettingsFn func(ctx context.Context, s llmfeeder.Settings) error
}

func (s *SettingsStore) LoadSettings(ctx context.Context) (llmfeeder.Settings, error) {
	return s.LoadSettingsFn(ctx)
}

func (s *SettingsStore) SaveSettings(ctx context.Context, settings llmfeeder.Settings) error {
	return s.SaveSettingsFn(ctx, settings)
}
