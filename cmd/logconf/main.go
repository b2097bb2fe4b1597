package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/airflow-logconf/internal/application"
	"github.com/eugenenazirov/airflow-logconf/internal/config"
	"github.com/eugenenazirov/airflow-logconf/internal/logconf"
	"github.com/eugenenazirov/airflow-logconf/internal/logging"
	"github.com/eugenenazirov/airflow-logconf/internal/render"
)

var signalNotify = signal.Notify

func main() {
	app := kingpin.New("logconf", "Builds the logging configuration a managed Airflow environment installs at startup, shipping task, DAG-processing, and subprocess logs to CloudWatch")
	configFile := app.Flag("config", "Path to YAML configuration file").String()
	logLevel := app.Flag("log-level", "Diagnostics log level (debug, info, warn, error)").String()
	logFile := app.Flag("log-file", "Write diagnostics to a rolling file in addition to stdout").String()

	renderCmd := app.Command("render", "Render the logging configuration mapping for the current environment").Default()
	renderFormat := renderCmd.Flag("format", "Output format (json or yaml)").Default("json").String()
	renderOutput := renderCmd.Flag("output", "Write the mapping to a file instead of stdout").Short('o').String()
	renderCompact := renderCmd.Flag("compact", "Emit compact JSON").Bool()

	checkCmd := app.Command("check", "Validate the logging environment and report per-source shipping status")

	serveCmd := app.Command("serve", "Expose the effective configuration over HTTP for inspection")
	servePort := serveCmd.Flag("port", "HTTP port exposed by the service").String()
	rateLimitRPSFlag := serveCmd.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := serveCmd.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
	}

	if *logLevel != "" {
		overrides.LogLevel = logLevel
	}

	if *logFile != "" {
		overrides.LogFile = logFile
	}

	if *servePort != "" {
		overrides.Port = servePort
	}

	if *rateLimitRPSFlag >= 0 {
		overrides.RateLimitRPS = rateLimitRPSFlag
	}

	if *rateLimitBurstFlag >= 0 {
		overrides.RateLimitBurst = rateLimitBurstFlag
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		app.Fatalf("failed to load configuration: %v", err)
	}

	switch command {
	case renderCmd.FullCommand():
		if err := runRender(os.Stdout, cfg, *renderFormat, *renderOutput, *renderCompact); err != nil {
			app.Fatalf("%v", err)
		}

	case checkCmd.FullCommand():
		if err := runCheck(os.Stdout, cfg); err != nil {
			app.Fatalf("%v", err)
		}

	case serveCmd.FullCommand():
		logger, err := logging.New(logging.Options{
			Level:      cfg.LogLevel,
			FilePath:   cfg.LogFile,
			MaxSizeMB:  cfg.LogFileMaxSizeMB,
			MaxBackups: cfg.LogFileMaxBackups,
			MaxAgeDays: cfg.LogFileMaxAgeDays,
		})
		if err != nil {
			app.Fatalf("failed to initialize logger: %v", err)
		}
		defer func() {
			_ = logger.Sync()
		}()

		srv, err := application.New(cfg, logger)
		if err != nil {
			logger.Fatal("failed to initialize application", zap.Error(err))
		}

		if err := srv.Start(); err != nil {
			logger.Fatal("failed to start server", zap.Error(err))
		}

		shutdown(srv.Server(), cfg.ShutdownGracePeriod, logger)
	}
}

// runRender builds the mapping and writes it to stdout or the requested file.
func runRender(stdout io.Writer, cfg config.Config, format, output string, compact bool) error {
	f, err := render.ParseFormat(format)
	if err != nil {
		return err
	}

	built, err := logconf.Build(cfg.Shipping)
	if err != nil {
		return fmt.Errorf("build logging configuration: %w", err)
	}

	data, err := render.Render(built, f, compact)
	if err != nil {
		return err
	}

	if output == "" || output == "-" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}

// runCheck builds the mapping once to surface environment errors, then prints
// the per-source shipping status.
func runCheck(w io.Writer, cfg config.Config) error {
	built, err := logconf.Build(cfg.Shipping)
	if err != nil {
		return fmt.Errorf("logging environment is invalid: %w", err)
	}

	for _, source := range logconf.Sources() {
		ship := cfg.Shipping.Sources[source]
		if ship.LogGroupARN == "" {
			fmt.Fprintf(w, "%-16s local file logging (no log group configured)\n", source)
			continue
		}

		arn, err := logconf.ParseLogGroupARN(ship.LogGroupARN)
		if err != nil {
			return fmt.Errorf("source %s: %w", source, err)
		}

		state := "shipping disabled"
		if ship.Enabled {
			state = "shipping enabled"
		}
		fmt.Fprintf(w, "%-16s %s level=%s region=%s group=%s\n", source, state, ship.LogLevel, arn.Region, arn.Name)
	}

	fmt.Fprintf(w, "\nconfiguration valid: %d handlers, %d loggers\n", len(built.Handlers), len(built.Loggers))
	return nil
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
