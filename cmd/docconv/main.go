package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docconv"
	"github.com/fwojciec/docconv/convert"
	"github.com/fwojciec/docconv/goquery"
	"github.com/fwojciec/docconv/htmltomarkdown"
	dchttp "github.com/fwojciec/docconv/http"
	"github.com/fwojciec/docconv/mimetype"
	dcslog "github.com/fwojciec/docconv/slog"
	"github.com/fwojciec/docconv/template"
	"github.com/fwojciec/docconv/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()
	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	_ = m.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Browser renders sources of modes with render enabled. It is
	// launched on first use.
	Browser *lazyBrowser
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Browser: &lazyBrowser{}}
}

// Close releases the browser if one was launched.
func (m *Main) Close() error {
	return m.Browser.Close()
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docconv"),
		kong.Description("Convert web documents with transformation templates"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docconv --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	fsys := os.DirFS(cli.ConfigDir)
	deps.Configs = yaml.NewConfigService(fsys)
	deps.Converter = m.newConverter(cli, fsys, deps.Logger)

	return kongCtx.Run(deps)
}

// newConverter wires the conversion pipeline. Templates are read from the
// config directory.
func (m *Main) newConverter(cli *CLI, fsys fs.FS, logger *slog.Logger) *convert.Converter {
	fetcher := dchttp.NewFetcher(
		dchttp.WithTimeout(cli.FetchTimeout),
		dchttp.WithMaxImageBytes(cli.MaxImageBytes),
	)
	transformer := template.NewTransformer(fsys, htmltomarkdown.NewConverter())

	m.Browser.timeout = cli.FetchTimeout

	c := &convert.Converter{
		Source:       dcslog.NewLoggingSource(fetcher, logger),
		RenderSource: dcslog.NewLoggingSource(m.Browser, logger),
		Normalizer:   goquery.NewNormalizer(),
		Extractors: map[string]docconv.ImageExtractor{
			docconv.ExtractorRegexp: convert.NewRegexpExtractor(),
			docconv.ExtractorDOM:    goquery.NewImageExtractor(),
		},
		Images:       dcslog.NewLoggingImageFetcher(fetcher, logger),
		Detector:     mimetype.NewDetector(),
		Transformer:  dcslog.NewLoggingTransformer(transformer, logger),
		Logger:       logger,
		Concurrency:  cli.Concurrency,
		FetchTimeout: cli.FetchTimeout,
		Timeout:      cli.Timeout,
	}
	if cli.RateLimit > 0 {
		c.RateLimiter = convert.NewDomainLimiter(cli.RateLimit, cli.Concurrency)
	}
	return c
}
