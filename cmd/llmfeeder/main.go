package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/llmfeeder"
	"github.com/fwojciec/llmfeeder/batch"
	"github.com/fwojciec/llmfeeder/convert"
	"github.com/fwojciec/llmfeeder/fs"
	"github.com/fwojciec/llmfeeder/gemini"
	"github.com/fwojciec/llmfeeder/goquery"
	"github.com/fwojciec/llmfeeder/htmltomarkdown"
	lfhttp "github.com/fwojciec/llmfeeder/http"
	"github.com/fwojciec/llmfeeder/iframe"
	"github.com/fwojciec/llmfeeder/nativemsg"
	"github.com/fwojciec/llmfeeder/readability"
	"github.com/fwojciec/llmfeeder/rod"
	lfslog "github.com/fwojciec/llmfeeder/slog"
	"github.com/fwojciec/llmfeeder/sqlite"
	"github.com/fwojciec/llmfeeder/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Stdin feeds the serve command.
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	SettingsStore  llmfeeder.SettingsStore
	HistoryService llmfeeder.HistoryService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("llmfeeder"),
		kong.Description("Convert web pages into clean Markdown for LLM chats."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'llmfeeder --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set LLMFEEDER_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.SettingsStore = sqlite.NewSettingsStore(m.DB)
	m.HistoryService = sqlite.NewHistoryService(m.DB)
	deps.Settings = m.SettingsStore
	deps.History = m.HistoryService

	level := slog.LevelWarn
	if cli.Debug {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	switch cmd {
	case "convert":
		c := cli.Convert
		loader, closeLoader, err := newTabLoader(c.Browser, stderr)
		if err != nil {
			return err
		}
		defer closeLoader()
		if c.Selector != "" {
			loader = &selectionLoader{next: loader, selector: c.Selector}
		}

		pipeline := newPipeline(articleParser(c.Parser), tokenCounter(c.Tokenizer), llmfeeder.NopDebugLog{}, c.Timeout)
		converter, loader := decorate(pipeline, loader, cli.Debug, logger)

		deps.Batch = &batch.Orchestrator{
			Loader:      loader,
			Converter:   converter,
			RateLimiter: batch.NewDomainLimiter(batch.DefaultRequestsPerSecond, 1),
			Logger:      logger,
		}

		out := c.Out
		if out == "" {
			out = "."
		}
		deps.Exporter = fs.NewExporter(out)

	case "serve":
		loader, closeLoader, err := newTabLoader(cli.Serve.Browser, stderr)
		if err != nil {
			return err
		}
		defer closeLoader()

		debugLog := lfslog.NewDebugLog()
		pipeline := newPipeline(readability.NewParser(), llmfeeder.HeuristicCounter{}, debugLog, convert.DefaultTimeout)
		converter, loader := decorate(pipeline, loader, cli.Debug, logger)

		deps.Host = &nativemsg.Host{
			Converter: converter,
			Loader:    loader,
			Settings:  deps.Settings,
			Debug:     debugLog,
			Logger:    logger,
		}
	}

	return kongCtx.Run(deps)
}

// newPipeline assembles the single-document conversion pipeline.
func newPipeline(parser llmfeeder.ArticleParser, tokens llmfeeder.TokenCounter, debug llmfeeder.DebugLog, timeout time.Duration) *convert.Pipeline {
	stitcher := iframe.NewStitcher()
	stitcher.Debug = debug

	return &convert.Pipeline{
		Extractor: goquery.NewExtractor(parser),
		Stitcher:  stitcher,
		Sanitizer: goquery.NewSanitizer(),
		Converter: htmltomarkdown.NewConverter(),
		Tokens:    tokens,
		Debug:     debug,
		Timeout:   timeout,
	}
}

// newTabLoader returns the HTTP loader, or the browser loader when browser
// is set. The returned close function releases the browser.
func newTabLoader(browser bool, stderr io.Writer) (llmfeeder.TabLoader, func() error, error) {
	if !browser {
		return lfhttp.NewTabLoader(lfhttp.NewFetcher()), func() error { return nil }, nil
	}

	manager, err := rod.NewBrowserManager()
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		return nil, nil, fmt.Errorf("failed to start browser: %w", err)
	}
	return rod.NewTabLoader(manager), manager.Close, nil
}

// decorate wraps the converter and loader with logging when debug is set.
func decorate(pipeline *convert.Pipeline, loader llmfeeder.TabLoader, debug bool, logger *slog.Logger) (llmfeeder.DocumentConverter, llmfeeder.TabLoader) {
	if !debug {
		return pipeline, loader
	}
	return lfslog.NewLoggingConverter(pipeline, logger), lfslog.NewLoggingTabLoader(loader, logger)
}

func articleParser(name string) llmfeeder.ArticleParser {
	if name == "trafilatura" {
		return trafilatura.NewParser()
	}
	return readability.NewParser()
}

func tokenCounter(name string) llmfeeder.TokenCounter {
	if name == "gemini" {
		return gemini.NewTokenCounter(gemini.DefaultModel)
	}
	return llmfeeder.HeuristicCounter{}
}

func defaultDBPath() string {
	if path := os.Getenv("LLMFEEDER_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "llmfeeder.db"
	}
	dir := filepath.Join(home, ".llmfeeder")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "llmfeeder.db")
}
