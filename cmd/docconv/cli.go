package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/docconv"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Configs   docconv.ConfigService
	Converter docconv.Converter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	ConfigDir     string        `short:"C" default:"." type:"existingdir" help:"Directory holding mode configs and templates"`
	Concurrency   int           `short:"c" default:"8" help:"Concurrent image fetch limit"`
	FetchTimeout  time.Duration `default:"10s" help:"Timeout per source or image fetch"`
	Timeout       time.Duration `short:"t" default:"2m" help:"Timeout per conversion"`
	MaxImageBytes int64         `default:"20971520" help:"Largest image that is inlined"`
	RateLimit     float64       `default:"0" help:"Image fetches per second per host (0 disables limiting)"`
	Debug         bool          `short:"d" help:"Log debug output"`

	Convert ConvertCmd `cmd:"" help:"Convert a document to a file"`
	Serve   ServeCmd   `cmd:"" help:"Serve conversions over HTTP"`
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	Source string            `arg:"" help:"Source document URL"`
	Mode   string            `short:"m" help:"Conversion mode (selects config_<mode>.yaml)"`
	Token  string            `env:"DOCCONV_TOKEN" help:"Bearer token sent with the source request"`
	Param  map[string]string `short:"p" help:"Transformation parameter as name=value (repeatable)"`
	Output string            `short:"o" help:"Output file, or - for stdout (default: derived from the source URL)"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `short:"a" default:":8080" help:"Listen address"`
}
