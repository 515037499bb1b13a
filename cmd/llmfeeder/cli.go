package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/llmfeeder"
	"github.com/fwojciec/llmfeeder/batch"
	"github.com/fwojciec/llmfeeder/fs"
	"github.com/fwojciec/llmfeeder/nativemsg"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Settings llmfeeder.SettingsStore
	History  llmfeeder.HistoryService

	// Batch and Exporter are wired for the convert command.
	Batch    *batch.Orchestrator
	Exporter *fs.Exporter

	// Host is wired for the serve command.
	Host *nativemsg.Host

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

func (d *Dependencies) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Debug bool `help:"Log pipeline events to stderr"`

	Convert  ConvertCmd  `cmd:"" help:"Convert web pages to Markdown"`
	Serve    ServeCmd    `cmd:"" help:"Run the native messaging host on stdin/stdout"`
	Settings SettingsCmd `cmd:"" help:"Show or change the saved default settings"`
	History  HistoryCmd  `cmd:"" help:"List, show or delete saved conversions"`
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	URLs      []string          `arg:"" name:"url" help:"Page URLs to convert"`
	Set       map[string]string `short:"s" help:"Override a setting for this run (key=value, repeatable)"`
	Browser   bool              `short:"b" help:"Load pages in a headless browser instead of over HTTP"`
	Parser    string            `default:"readability" enum:"readability,trafilatura" help:"Main content parser (readability, trafilatura)"`
	Selector  string            `help:"CSS selector whose matches stand in for a text selection"`
	Merge     bool              `xor:"output" help:"Merge all pages into one Markdown document"`
	Zip       bool              `xor:"output" help:"Write one Markdown file per page into a zip archive"`
	Out       string            `short:"o" type:"path" help:"Output directory (default: print to stdout)"`
	Tokenizer string            `default:"heuristic" enum:"heuristic,gemini" help:"Token estimator (heuristic, gemini)"`
	Save      bool              `help:"Save successful conversions to history"`
	Timeout   time.Duration     `default:"15s" help:"Per-page conversion timeout"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Browser bool `short:"b" help:"Load requested URLs in a headless browser"`
}

// SettingsCmd is the "settings" subcommand group.
type SettingsCmd struct {
	Show  SettingsShowCmd  `cmd:"" default:"1" help:"Show the saved default settings"`
	Set   SettingsSetCmd   `cmd:"" help:"Change one saved default setting"`
	Reset SettingsResetCmd `cmd:"" help:"Restore the built-in defaults"`
}

// SettingsShowCmd is the "settings show" subcommand.
type SettingsShowCmd struct{}

// SettingsSetCmd is the "settings set" subcommand.
type SettingsSetCmd struct {
	Key   string `arg:"" help:"Setting name"`
	Value string `arg:"" help:"New value"`
}

// SettingsResetCmd is the "settings reset" subcommand.
type SettingsResetCmd struct{}

// HistoryCmd is the "history" subcommand group.
type HistoryCmd struct {
	List   HistoryListCmd   `cmd:"" default:"1" help:"List saved conversions, newest first"`
	Show   HistoryShowCmd   `cmd:"" help:"Print a saved conversion"`
	Delete HistoryDeleteCmd `cmd:"" help:"Delete a saved conversion"`
}

// HistoryListCmd is the "history list" subcommand.
type HistoryListCmd struct {
	URL   string `help:"Only show conversions of this URL"`
	Limit int    `short:"n" default:"20" help:"Maximum number of entries"`
}

// HistoryShowCmd is the "history show" subcommand.
type HistoryShowCmd struct {
	ID string `arg:"" help:"Entry ID"`
}

// HistoryDeleteCmd is the "history delete" subcommand.
type HistoryDeleteCmd struct {
	ID string `arg:"" help:"Entry ID"`
}
