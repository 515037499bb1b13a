package main

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/fwojciec/llmfeeder"
	"github.com/fwojciec/llmfeeder/batch"
	"github.com/fwojciec/llmfeeder/goquery"
)

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	settings, err := c.settings(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmfeeder.ErrorMessage(err))
		return err
	}

	urls := batch.FilterTabURLs(c.URLs)
	if len(urls) == 0 {
		err := llmfeeder.Errorf(llmfeeder.EINVALID, "no convertible URLs given")
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmfeeder.ErrorMessage(err))
		return err
	}

	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressCompleted:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] %s (%d tokens)\n", event.Completed, event.Total, event.URL, event.Result.TokenCount)
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] skip %s: %s\n", event.Completed, event.Total, event.URL, event.Result.Error)
		}
	}

	result := deps.Batch.ProcessMany(deps.Ctx, urls, settings, progress)
	summary := result.Summary()
	if summary.SuccessCount == 0 {
		err := llmfeeder.Errorf(llmfeeder.EALLFAILED, "all %d pages failed", summary.FailCount)
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmfeeder.ErrorMessage(err))
		return err
	}

	if err := c.write(deps, result); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmfeeder.ErrorMessage(err))
		return err
	}

	if c.Save {
		for _, r := range result.Successes() {
			entry := llmfeeder.NewHistoryEntry(r, settings.Scope())
			if err := deps.History.CreateEntry(deps.Ctx, entry); err != nil {
				fmt.Fprintf(deps.Stderr, "error: saving %s: %s\n", r.URL, llmfeeder.ErrorMessage(err))
				return err
			}
			fmt.Fprintf(deps.Stderr, "  saved %s as %s\n", r.URL, entry.ID)
		}
	}

	fmt.Fprintf(deps.Stderr, "Converted %s\n", summary.Message())
	return nil
}

// settings resolves the run's settings: saved defaults, then --set
// overrides in key order. A selector implies selection scope.
func (c *ConvertCmd) settings(deps *Dependencies) (llmfeeder.Settings, error) {
	settings := llmfeeder.DefaultSettings()
	if deps.Settings != nil {
		s, err := deps.Settings.LoadSettings(deps.Ctx)
		if err != nil {
			return settings, err
		}
		settings = s
	}

	for _, key := range slices.Sorted(maps.Keys(c.Set)) {
		if err := settings.Set(key, c.Set[key]); err != nil {
			return settings, err
		}
	}

	if c.Selector != "" {
		settings.ContentScope = llmfeeder.ScopeSelection
	}
	return settings, nil
}

// write delivers the successful results: a zip archive, one merged
// document, or one file per page. Without an output directory Markdown
// goes to stdout.
func (c *ConvertCmd) write(deps *Dependencies, result *batch.BatchResult) error {
	now := deps.now()

	if c.Zip {
		data, name, err := result.Archive(now)
		if err != nil {
			return err
		}
		path, err := deps.Exporter.WriteArchive(data, name)
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, path)
		return nil
	}

	if c.Merge || c.Out == "" {
		md, err := result.Merge()
		if err != nil {
			return err
		}
		if c.Out == "" {
			fmt.Fprintln(deps.Stdout, md)
			return nil
		}
		name := strings.TrimSuffix(batch.ArchiveName(now, len(result.Successes())), ".zip")
		path, err := deps.Exporter.WriteMarkdown(name, md)
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, path)
		return nil
	}

	for _, r := range result.Successes() {
		path, err := deps.Exporter.WriteMarkdown(r.Title, r.Markdown)
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, path)
	}
	return nil
}

var _ llmfeeder.TabLoader = (*selectionLoader)(nil)

// selectionLoader fills each snapshot's selection with the elements
// matching a CSS selector, standing in for a user's text selection.
type selectionLoader struct {
	next     llmfeeder.TabLoader
	selector string
}

func (l *selectionLoader) Load(ctx context.Context, url string) (*llmfeeder.Tab, error) {
	tab, err := l.next.Load(ctx, url)
	if err != nil {
		return nil, err
	}

	sel, err := goquery.SelectHTML(tab.Snapshot.HTML, l.selector)
	if err != nil {
		_ = tab.Close()
		return nil, err
	}
	snap := *tab.Snapshot
	snap.Selection = sel
	tab.Snapshot = &snap
	return tab, nil
}
