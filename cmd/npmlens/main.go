// # cmd/npmlens/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"npmlens/internal/app"
	"npmlens/internal/config"
	"npmlens/internal/output"
	"npmlens/internal/shared/observability"
)

const VERSION = "1.0.0"

var (
	configPath string
	verbose    bool
	quiet      bool
	format     string
	noColor    bool
	ascii      bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		if ctx.Err() != nil {
			// Interrupted; conventional exit status for SIGINT.
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "npmlens",
		Short:         "Explore npm package structure and function signatures",
		Version:       VERSION,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "./npmlens.toml", "Path to config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log warnings and errors")
	root.PersistentFlags().StringVarP(&format, "output", "o", "", "Output format: pretty or json")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().BoolVar(&ascii, "ascii", false, "Use ASCII labels instead of icons")

	root.AddCommand(newTreeCommand())
	root.AddCommand(newSigCommand())

	return root
}

// setup loads the config, applies flag overrides, and builds the app. The
// returned shutdown func flushes traces and closes the cache. override, when
// non-nil, adjusts the config after flags but before the app is built.
func setup(ctx context.Context, override func(*config.Config)) (*app.App, output.Formatter, func(), error) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	if quiet {
		logLevel = slog.LevelWarn
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	if format != "" {
		cfg.Output.Format = format
	}
	// NO_COLOR is honored here once; the formatters never read the
	// environment themselves.
	if noColor || os.Getenv("NO_COLOR") != "" {
		cfg.Output.NoColor = true
	}
	if ascii {
		cfg.Output.ForceASCII()
	}
	if override != nil {
		override(cfg)
	}

	a, err := app.New(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	traceShutdown, err := observability.SetupTracing(ctx, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		logger.Warn("tracing unavailable", "err", err)
		traceShutdown = func(context.Context) error { return nil }
	}

	if cfg.Telemetry.MetricsAddr != "" {
		go serveMetrics(cfg.Telemetry.MetricsAddr, logger)
	}

	shutdown := func() {
		if err := traceShutdown(context.Background()); err != nil {
			logger.Debug("trace shutdown", "err", err)
		}
		if err := a.Close(); err != nil {
			logger.Debug("close", "err", err)
		}
	}

	return a, output.NewFormatter(cfg.Output.Format, cfg.Output), shutdown, nil
}

func serveMetrics(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	logger.Info("metrics endpoint listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Warn("metrics endpoint stopped", "err", err)
	}
}
