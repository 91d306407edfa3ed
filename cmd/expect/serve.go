package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/expect"
	"github.com/aretw0/expect/internal/presentation/tui"
	httpAdapter "github.com/aretw0/expect/pkg/adapters/http"
	"github.com/aretw0/expect/pkg/observability"
	"github.com/spf13/cobra"
)

var (
	servePort    int
	serveMetrics bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP validation server",
	Long: `Starts a JSON API over HTTP for validating values, browsing patterns
and managing stored schemas. Schema changes are pushed to /events
subscribers; with the file store, edits made on disk are picked up live.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (defaults to the configured http.port)")
	serveCmd.Flags().BoolVar(&serveMetrics, "metrics", true, "Expose Prometheus metrics on /metrics")
}

func runServe(cmd *cobra.Command, args []string) error {
	var (
		validatorOpts []expect.Option
		serverOpts    []httpAdapter.Option
	)
	if serveMetrics {
		metrics := observability.NewMetrics(observability.WithProcessMetrics())
		validatorOpts = append(validatorOpts, expect.WithHooks(metrics.Hooks()))
		serverOpts = append(serverOpts, httpAdapter.WithMetrics(metrics.Handler()))
	}

	a, err := loadApp(cmd.ErrOrStderr(), validatorOpts...)
	if err != nil {
		return err
	}
	defer a.Close()

	port := a.cfg.HTTP.Port
	if servePort != 0 {
		port = servePort
	}

	server := httpAdapter.NewServer(a.validator, serverOpts...)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	changes, err := a.validator.Watch(ctx)
	switch {
	case errors.Is(err, expect.ErrNotWatchable):
		a.logger.Debug("store does not report changes; live reload disabled")
	case err != nil:
		return fmt.Errorf("failed to watch schemas: %w", err)
	default:
		go func() {
			for name := range changes {
				server.Notify(name)
			}
		}()
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		if tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(os.Stdout)
		}
		a.logger.Info("starting expect server", "address", srv.Addr, "store", a.cfg.Store.Driver)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		a.logger.Info("shutting down")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		a.logger.Info("server stopped gracefully")
		return nil
	}
}
