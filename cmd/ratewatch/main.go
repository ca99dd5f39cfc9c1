package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ratewatch/ratewatch/internal/config"
	"github.com/ratewatch/ratewatch/pkg/log"
	"github.com/ratewatch/ratewatch/pkg/mailer"
	"github.com/ratewatch/ratewatch/pkg/monitor"
	"github.com/ratewatch/ratewatch/pkg/objstore"
	"github.com/ratewatch/ratewatch/pkg/schedule"
	"github.com/ratewatch/ratewatch/pkg/version"
)

var (
	configFile   = flag.String("config", "", "Configuration file path")
	scheduleSpec = flag.String("schedule", "", "Cron expression for repeated runs (default: run once and exit)")
	logFormat    = flag.String("log-format", "", "Log format (text, json); overrides config")
	showHelp     = flag.Bool("help", false, "Show help")
	showVer      = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Parse()

	if *showHelp {
		flag.Usage()
		return
	}
	if *showVer {
		fmt.Println(version.Info())
		return
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	format := cfg.Log.Format
	if *logFormat != "" {
		format = *logFormat
	}
	logger := newLogger(cfg.Debug, format)

	logger.Info("Starting ratewatch", log.Str("version", version.Version))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("Received signal", log.Str("signal", sig.String()))
		cancel()
	}()

	fetcher, err := objstore.New(ctx, cfg.S3.Region)
	if err != nil {
		logger.Fatal("Failed to create S3 client", log.Err(err))
	}
	sender, err := mailer.New(ctx, cfg.S3.Region)
	if err != nil {
		logger.Fatal("Failed to create SES client", log.Err(err))
	}

	m := monitor.New(cfg, fetcher, sender, logger)

	spec := cfg.Schedule
	if *scheduleSpec != "" {
		spec = *scheduleSpec
	}

	if spec == "" {
		runOnce(ctx, m, logger)
		return
	}

	runner := schedule.NewRunner(logger)
	if err := runner.Start(spec, func() { runOnce(ctx, m, logger) }); err != nil {
		logger.Fatal("Invalid schedule expression", log.Str("spec", spec), log.Err(err))
	}

	<-ctx.Done()
	runner.Stop()
}

// runOnce executes a single invocation. A nil result means the check
// terminated without completing; the cause has already been logged.
func runOnce(ctx context.Context, m *monitor.Monitor, logger log.Logger) {
	if result := m.Run(ctx); result != nil {
		logger.Debug("Invocation complete",
			log.Bool("stale", result.Stale),
			log.Str("message", result.Message))
	}
}

func newLogger(debug bool, format string) log.Logger {
	// Informational lines only appear in debug mode; errors are always
	// logged.
	level := log.ErrorLevel
	if debug {
		level = log.DebugLevel
	}

	opts := []log.LoggerOption{log.WithLevel(level)}
	switch strings.ToLower(format) {
	case "json":
		opts = append(opts, log.WithFormatter(&log.JSONFormatter{}))
	case "", "text":
		opts = append(opts, log.WithFormatter(log.NewTextFormatter()))
	default:
		fmt.Fprintf(os.Stderr, "Invalid log format: %s, defaulting to 'text'\n", format)
		opts = append(opts, log.WithFormatter(log.NewTextFormatter()))
	}
	return log.NewLogger(opts...)
}
