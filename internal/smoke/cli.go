package smoke

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/okian/marquee/pkg/logger"
)

// Log rotation settings for run logs.
const (
	logMaxSizeMB  = 10
	logMaxBackups = 1
	logMaxAgeDays = 1
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string, verbose bool) error {
	if logFile == "" {
		logFile = "smoke_" + time.Now().Format("20060102_150405") + ".log"
	}

	if err := logger.Init(logger.WithFile(logFile, logMaxSizeMB, logMaxBackups, logMaxAgeDays)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		if err := logger.SetLevelString("debug"); err != nil {
			return fmt.Errorf("failed to set log level: %w", err)
		}
	}

	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the smoke tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Marquee Smoke Test
==================

Drives a running Marquee instance over REST: adds movies concurrently,
checks counts, genre filtering and dice, then removes what it added.

Usage:
  go run ./cmd/smoke [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:4000")
  -movies int
        Number of movies to add and remove (default 200)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 10s)
  -log string
        Log file for run output (default: smoke_TIMESTAMP.log)
  -verbose
        Enable debug logging
  -help
        Show this help message

The run assumes no other client mutates the catalog while it is running.
`)
}
