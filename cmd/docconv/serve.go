package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	dchttp "github.com/fwojciec/docconv/http"
)

// shutdownTimeout bounds how long in-flight conversions may finish after
// the server is asked to stop.
const shutdownTimeout = 30 * time.Second

// Run executes the serve command. It blocks until the context is done.
func (c *ServeCmd) Run(deps *Dependencies) error {
	ln, err := net.Listen("tcp", c.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", c.Addr, err)
	}
	return c.Serve(deps, ln)
}

// Serve serves conversions on ln until the context is done, then shuts the
// server down gracefully.
func (c *ServeCmd) Serve(deps *Dependencies, ln net.Listener) error {
	srv := &http.Server{
		Handler:           dchttp.NewHandler(deps.Configs, deps.Converter, deps.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	deps.Logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-deps.Ctx.Done():
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
