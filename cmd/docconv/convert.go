package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/docconv"
	"github.com/fwojciec/docconv/fs"
)

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	cfg, err := deps.Configs.FindConfig(c.Mode)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docconv.ErrorMessage(err))
		return err
	}

	req := &docconv.Request{
		Source: c.Source,
		Token:  c.Token,
		Config: cfg,
		Params: c.Param,
	}

	if c.Output == "-" {
		return c.convert(deps, req, deps.Stdout)
	}

	path := c.Output
	if path == "" {
		path = fs.OutputName(c.Source, cfg.MediaType)
	}

	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer func() { _ = f.Abort() }()

	if err := c.convert(deps, req, f); err != nil {
		return err
	}
	if err := f.Commit(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	fmt.Fprintf(deps.Stdout, "Wrote %s\n", f.Path())
	return nil
}

func (c *ConvertCmd) convert(deps *Dependencies, req *docconv.Request, w io.Writer) error {
	if err := deps.Converter.Convert(deps.Ctx, req, w); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docconv.ErrorMessage(err))
		return err
	}
	return nil
}
