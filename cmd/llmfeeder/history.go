package main

import (
	"fmt"

	"github.com/fwojciec/llmfeeder"
)

// Run executes the history list command.
func (c *HistoryListCmd) Run(deps *Dependencies) error {
	filter := llmfeeder.HistoryFilter{Limit: c.Limit}
	if c.URL != "" {
		filter.URL = &c.URL
	}

	entries, err := deps.History.FindEntries(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmfeeder.ErrorMessage(err))
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(deps.Stdout, "No saved conversions. Use 'llmfeeder convert --save' to keep one.")
		return nil
	}

	for _, e := range entries {
		title := e.Title
		if title == "" {
			title = e.URL
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %6d tokens  %s\n     %s\n",
			e.ID, e.CreatedAt.Local().Format("2006-01-02 15:04"), e.TokenCount, title, e.URL)
	}
	return nil
}

// Run executes the history show command.
func (c *HistoryShowCmd) Run(deps *Dependencies) error {
	entry, err := deps.History.FindEntryByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmfeeder.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, entry.Markdown)
	return nil
}

// Run executes the history delete command.
func (c *HistoryDeleteCmd) Run(deps *Dependencies) error {
	if err := deps.History.DeleteEntry(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmfeeder.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Deleted %s\n", c.ID)
	return nil
}
