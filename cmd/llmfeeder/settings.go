package main

import (
	"fmt"

	"github.com/fwojciec/llmfeeder"
)

// Run executes the settings show command.
func (c *SettingsShowCmd) Run(deps *Dependencies) error {
	settings, err := deps.Settings.LoadSettings(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmfeeder.ErrorMessage(err))
		return err
	}

	values := settings.Values()
	for _, key := range llmfeeder.SettingKeys() {
		fmt.Fprintf(deps.Stdout, "%s = %q\n", key, values[key])
	}
	return nil
}

// Run executes the settings set command.
func (c *SettingsSetCmd) Run(deps *Dependencies) error {
	settings, err := deps.Settings.LoadSettings(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmfeeder.ErrorMessage(err))
		return err
	}

	if err := settings.Set(c.Key, c.Value); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmfeeder.ErrorMessage(err))
		fmt.Fprintf(deps.Stderr, "Known settings: %v\n", llmfeeder.SettingKeys())
		return err
	}

	if err := deps.Settings.SaveSettings(deps.Ctx, settings); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmfeeder.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s = %q\n", c.Key, settings.Values()[c.Key])
	return nil
}

// Run executes the settings reset command.
func (c *SettingsResetCmd) Run(deps *Dependencies) error {
	if err := deps.Settings.SaveSettings(deps.Ctx, llmfeeder.DefaultSettings()); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmfeeder.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, "Settings restored to defaults.")
	return nil
}
