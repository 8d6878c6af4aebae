package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nadzzz/copilot/internal/answer"
	"github.com/nadzzz/copilot/internal/backend"
	"github.com/nadzzz/copilot/internal/config"
	"github.com/nadzzz/copilot/internal/dispatch"
	"github.com/nadzzz/copilot/internal/health"
	"github.com/nadzzz/copilot/internal/transport"
	grpctransport "github.com/nadzzz/copilot/internal/transport/grpc"
	httptransport "github.com/nadzzz/copilot/internal/transport/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the copilot daemon",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	slog.Info("copilot starting", "version", version)

	// Root context with signal handling for graceful shutdown.
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reg := backend.FromConfig(cfg.Backends)
	if countAvailable(reg) == 0 {
		slog.Warn("no AI backend is available, only built-in answers will be served")
	}

	engine := answer.New(reg, answer.WithBudget(cfg.Backends.Budget()))
	dispatcher := dispatch.New(engine)

	transports := enabledTransports(cfg.Transports)
	if len(transports) == 0 {
		return errors.New("no transports enabled, enable at least one in config")
	}

	return serve(ctx, cfg, reg, dispatcher.Handle, transports)
}

func enabledTransports(cfg config.TransportsConfig) []transport.Transport {
	var transports []transport.Transport
	if cfg.HTTP.Enabled {
		transports = append(transports, httptransport.New(cfg.HTTP))
	}
	if cfg.GRPC.Enabled {
		transports = append(transports, grpctransport.New(cfg.GRPC))
	}
	return transports
}

// serve runs the health server and every transport until ctx is cancelled or
// one of them fails.
func serve(ctx context.Context, cfg *config.Config, reg health.StatusReporter, handler transport.Handler, transports []transport.Transport) error {
	healthServer := health.New(cfg.Server.HealthPort, reg)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return healthServer.ListenAndServe(gctx)
	})
	for _, t := range transports {
		g.Go(func() error {
			slog.Info("starting transport", "name", t.Name())
			if err := t.Listen(gctx, handler); err != nil {
				return fmt.Errorf("%s transport: %w", t.Name(), err)
			}
			return nil
		})
	}

	healthServer.SetReady(true)
	slog.Info("copilot ready",
		"transports", len(transports),
		"health_port", cfg.Server.HealthPort)

	<-gctx.Done()
	healthServer.SetReady(false)
	slog.Info("shutdown signal received, draining...")

	for _, t := range transports {
		if err := t.Close(); err != nil {
			slog.Error("transport close error", "name", t.Name(), "error", err)
		}
	}

	err := g.Wait()
	slog.Info("copilot stopped")
	return err
}

func countAvailable(reg *backend.Registry) int {
	n := 0
	for _, s := range reg.Status() {
		if s.Available {
			n++
		}
	}
	return n
}
