package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/llmfeeder"
	main "github.com/fwojciec/llmfeeder/cmd/llmfeeder"
	"github.com/fwojciec/llmfeeder/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore returns a SettingsStore mock backed by a single value.
func memoryStore(s *llmfeeder.Settings) *mock.SettingsStore {
	return &mock.SettingsStore{
		LoadSettingsFn: func(context.Context) (llmfeeder.Settings, error) {
			return *s, nil
		},
		SaveSettingsFn: func(_ context.Context, v llmfeeder.Settings) error {
			*s = v
			return nil
		},
	}
}

func TestSettingsShowCmd_Run(t *testing.T) {
	t.Parallel()

	stored := llmfeeder.DefaultSettings()
	stored.IncludeImages = true
	stdout := &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:      context.Background(),
		Stdout:   stdout,
		Stderr:   &bytes.Buffer{},
		Settings: memoryStore(&stored),
	}

	err := (&main.SettingsShowCmd{}).Run(deps)

	require.NoError(t, err)
	output := stdout.String()
	assert.Contains(t, output, `includeImages = "true"`)
	assert.Contains(t, output, `contentScope = "mainContent"`)
	assert.Contains(t, output, `preserveIframeLinks = "true"`)
	for _, key := range llmfeeder.SettingKeys() {
		assert.Contains(t, output, key)
	}
}

func TestSettingsSetCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("saves the changed setting", func(t *testing.T) {
		t.Parallel()

		stored := llmfeeder.DefaultSettings()
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Settings: memoryStore(&stored),
		}

		err := (&main.SettingsSetCmd{Key: "contentScope", Value: "fullPage"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, llmfeeder.ScopeFullPage, stored.ContentScope)
		assert.True(t, stored.PreserveTables, "other settings are kept")
		assert.Equal(t, "contentScope = \"fullPage\"\n", stdout.String())
	})

	t.Run("rejects invalid values without saving", func(t *testing.T) {
		t.Parallel()

		saved := false
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Settings: &mock.SettingsStore{
				LoadSettingsFn: func(context.Context) (llmfeeder.Settings, error) {
					return llmfeeder.DefaultSettings(), nil
				},
				SaveSettingsFn: func(context.Context, llmfeeder.Settings) error {
					saved = true
					return nil
				},
			},
		}

		err := (&main.SettingsSetCmd{Key: "includeImages", Value: "sometimes"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, llmfeeder.EINVALID, llmfeeder.ErrorCode(err))
		assert.False(t, saved)
		assert.Contains(t, stderr.String(), "Known settings")
	})
}

func TestSettingsResetCmd_Run(t *testing.T) {
	t.Parallel()

	stored := llmfeeder.DefaultSettings()
	stored.DebugMode = true
	stored.ContentScope = llmfeeder.ScopeSelection
	deps := &main.Dependencies{
		Ctx:      context.Background(),
		Stdout:   &bytes.Buffer{},
		Stderr:   &bytes.Buffer{},
		Settings: memoryStore(&stored),
	}

	err := (&main.SettingsResetCmd{}).Run(deps)

	require.NoError(t, err)
	assert.Equal(t, llmfeeder.DefaultSettings(), stored)
}
