// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Command epgtrans downloads a gzip XMLTV guide, keeps the configured
// channels, translates programme titles and descriptions and writes the
// result as a new XMLTV file.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ManuGH/epgtrans/internal/config"
	"github.com/ManuGH/epgtrans/internal/jobs"
	xglog "github.com/ManuGH/epgtrans/internal/log"
	"github.com/ManuGH/epgtrans/internal/metrics"
	"github.com/ManuGH/epgtrans/internal/telemetry"
)

var (
	version   = "v0.1.0"
	commit    = "none"
	buildDate = "unknown"
)

const (
	serviceName = "epgtrans"

	// envConfigPath names a config file used when -config is absent.
	envConfigPath = "EPGTRANS_CONFIG"

	shutdownTimeout = 5 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, jobs.Deps{})
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code:
// 0 on success, 1 on a failed run, 2 on usage errors.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, deps jobs.Deps) int {
	if len(args) > 0 && args[0] == "config" {
		return runConfigCLI(args[1:], stdout, stderr)
	}

	fs := flag.NewFlagSet(serviceName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	showVersion := fs.Bool("version", false, "print version and exit")
	configPath := fs.String("config", "", "path to config file (YAML)")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s (commit: %s, built: %s)\n", version, commit, buildDate)
		return 0
	}

	// Safe defaults until the configuration is loaded.
	xglog.Configure(xglog.Config{
		Level:   "info",
		Output:  stderr,
		Service: serviceName,
		Version: version,
	})
	logger := xglog.WithComponent("main")

	path := resolveConfigPath(*configPath)
	cfg, err := config.NewLoader(path, version).Load()
	if err != nil {
		logger.Error().Err(err).Str(xglog.FieldPath, path).Msg("failed to load configuration")
		return 1
	}

	xglog.Configure(xglog.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Output:  stderr,
		Service: serviceName,
		Version: version,
	})
	logger = xglog.WithComponent("main")
	logger.Info().
		Str(xglog.FieldEvent, "startup").
		Str("commit", commit).
		Str("build_date", buildDate).
		Str(xglog.FieldPath, path).
		Msg("starting epgtrans")

	provider, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Tracing.Enabled,
		ServiceName:    serviceName,
		ServiceVersion: version,
		ExporterType:   cfg.Tracing.Exporter,
		Endpoint:       cfg.Tracing.Endpoint,
		SamplingRate:   cfg.Tracing.SamplingRate,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize tracing")
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("tracing shutdown failed")
		}
	}()

	stats, runErr := jobs.Run(ctx, cfg, deps)

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Warn().Err(err).Str(xglog.FieldPath, cfg.MetricsTextfile).Msg("failed to write metrics textfile")
		}
	}

	if runErr != nil {
		logger.Error().Err(runErr).Str(xglog.FieldEvent, "run.failed").Msg("run failed")
		return 1
	}

	logger.Info().
		Str(xglog.FieldEvent, "job.complete").
		Str(xglog.FieldPath, stats.OutputPath).
		Dur("duration", stats.Duration).
		Msg("job complete")
	return 0
}

func resolveConfigPath(flagValue string) string {
	if p := strings.TrimSpace(flagValue); p != "" {
		return p
	}
	return strings.TrimSpace(os.Getenv(envConfigPath))
}
